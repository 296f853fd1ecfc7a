package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/haberesoft/contable_app/internal/core/domain"
	portsrepo "github.com/haberesoft/contable_app/internal/core/ports/repositories"
	portssvc "github.com/haberesoft/contable_app/internal/core/ports/services"
	"github.com/haberesoft/contable_app/internal/core/services"
	"github.com/haberesoft/contable_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetDiarioRows(ctx context.Context, companyID string, filter portsrepo.ReportFilter, limit int, nextToken *string) ([]domain.DiarioRow, *string, error) {
	args := m.Called(ctx, companyID, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedToken = &tokenVal
	}
	return args.Get(0).([]domain.DiarioRow), returnedToken, args.Error(2)
}

func (m *MockReportingRepository) GetMayorMovements(ctx context.Context, companyID string, filter portsrepo.ReportFilter, accountCode *string) ([]portsrepo.LedgerMovement, error) {
	args := m.Called(ctx, companyID, filter, accountCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.LedgerMovement), args.Error(1)
}

func (m *MockReportingRepository) GetBalanceTotals(ctx context.Context, companyID string, filter portsrepo.ReportFilter) ([]portsrepo.AccountTotals, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.AccountTotals), args.Error(1)
}

// --- Test suite ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	service           portssvc.LedgerSvcFacade

	companyID string
	cajaID    string
	ventasID  string
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.mockReportingRepo = new(MockReportingRepository)
	s.service = services.NewLedgerService(s.mockReportingRepo)

	s.companyID = uuid.NewString()
	s.cajaID = uuid.NewString()
	s.ventasID = uuid.NewString()
}

func (s *LedgerServiceTestSuite) movement(accountID, code, name string, accType domain.AccountType, day int, number int64, debe, haber int64) portsrepo.LedgerMovement {
	return portsrepo.LedgerMovement{
		EntryID:     uuid.NewString(),
		EntryDate:   time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC),
		EntryNumber: number,
		AccountID:   accountID,
		AccountCode: code,
		AccountName: name,
		AccountType: accType,
		Description: "Venta al contado",
		Debe:        decimal.NewFromInt(debe),
		Haber:       decimal.NewFromInt(haber),
	}
}

func (s *LedgerServiceTestSuite) TestDiarioPassesTokenThrough() {
	ctx := context.Background()
	rows := []domain.DiarioRow{
		{
			EntryDate:   time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
			EntryNumber: 1,
			EntryID:     uuid.NewString(),
			AccountCode: "1.1.01",
			AccountName: "Caja",
			Description: "Venta al contado",
			Debe:        decimal.NewFromInt(1000),
			Haber:       decimal.Zero,
		},
	}

	s.mockReportingRepo.On("GetDiarioRows", ctx, s.companyID, mock.AnythingOfType("repositories.ReportFilter"), 100, (*string)(nil)).
		Return(rows, "token-abc", nil).Once()

	resp, err := s.service.Diario(ctx, s.companyID, dto.DiarioParams{})

	s.Require().NoError(err)
	s.Require().Len(resp.Rows, 1)
	s.Require().NotNil(resp.NextToken)
	s.Equal("token-abc", *resp.NextToken)
	s.mockReportingRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestDiarioAppliesDefaultLimit() {
	ctx := context.Background()

	s.mockReportingRepo.On("GetDiarioRows", ctx, s.companyID, mock.Anything, 100, (*string)(nil)).
		Return([]domain.DiarioRow{}, nil, nil).Once()

	resp, err := s.service.Diario(ctx, s.companyID, dto.DiarioParams{Limit: -5})

	s.Require().NoError(err)
	s.Empty(resp.Rows)
	s.Nil(resp.NextToken)
}

func (s *LedgerServiceTestSuite) TestMayorRunningBalance() {
	ctx := context.Background()
	movements := []portsrepo.LedgerMovement{
		s.movement(s.cajaID, "1.1.01", "Caja", domain.Asset, 5, 1, 1000, 0),
		s.movement(s.ventasID, "4.1.01", "Ventas", domain.Income, 5, 1, 0, 1000),
		s.movement(s.cajaID, "1.1.01", "Caja", domain.Asset, 8, 2, 0, 300),
	}

	s.mockReportingRepo.On("GetMayorMovements", ctx, s.companyID, mock.Anything, (*string)(nil)).
		Return(movements, nil).Once()

	resp, err := s.service.Mayor(ctx, s.companyID, dto.ReportParams{}, nil)

	s.Require().NoError(err)
	s.Require().Len(resp.Accounts, 2)

	// Accounts keep first-appearance order of the underlying movement stream.
	caja := resp.Accounts[0]
	s.Equal("1.1.01", caja.AccountCode)
	s.Require().Len(caja.Movements, 2)
	s.True(caja.Movements[0].Saldo.Equal(decimal.NewFromInt(1000)))
	s.True(caja.Movements[1].Saldo.Equal(decimal.NewFromInt(700)))
	s.True(caja.SaldoFinal.Equal(decimal.NewFromInt(700)))

	// Credit-normal accounts carry a negative debe-minus-haber balance.
	ventas := resp.Accounts[1]
	s.Equal("4.1.01", ventas.AccountCode)
	s.True(ventas.SaldoFinal.Equal(decimal.NewFromInt(-1000)))
}

func (s *LedgerServiceTestSuite) TestMayorSingleAccountFilter() {
	ctx := context.Background()
	code := "1.1.01"
	movements := []portsrepo.LedgerMovement{
		s.movement(s.cajaID, code, "Caja", domain.Asset, 5, 1, 1000, 0),
	}

	s.mockReportingRepo.On("GetMayorMovements", ctx, s.companyID, mock.Anything, &code).
		Return(movements, nil).Once()

	resp, err := s.service.Mayor(ctx, s.companyID, dto.ReportParams{}, &code)

	s.Require().NoError(err)
	s.Require().Len(resp.Accounts, 1)
	s.Equal(code, resp.Accounts[0].AccountCode)
}

func (s *LedgerServiceTestSuite) balanceTotals(cajaDebe, cajaHaber, ventasDebe, ventasHaber int64) []portsrepo.AccountTotals {
	return []portsrepo.AccountTotals{
		{
			AccountID:   s.cajaID,
			AccountCode: "1.1.01",
			AccountName: "Caja",
			AccountType: domain.Asset,
			TotalDebe:   decimal.NewFromInt(cajaDebe),
			TotalHaber:  decimal.NewFromInt(cajaHaber),
		},
		{
			AccountID:   s.ventasID,
			AccountCode: "4.1.01",
			AccountName: "Ventas",
			AccountType: domain.Income,
			TotalDebe:   decimal.NewFromInt(ventasDebe),
			TotalHaber:  decimal.NewFromInt(ventasHaber),
		},
	}
}

func (s *LedgerServiceTestSuite) TestBalanceSplitsSaldoBySign() {
	ctx := context.Background()

	s.mockReportingRepo.On("GetBalanceTotals", ctx, s.companyID, mock.Anything).
		Return(s.balanceTotals(1500, 300, 0, 1200), nil).Once()

	report, err := s.service.BalanceSumasYSaldos(ctx, s.companyID, dto.ReportParams{})

	s.Require().NoError(err)
	s.Require().Len(report.Rows, 2)

	caja := report.Rows[0]
	s.True(caja.SaldoDeudor.Equal(decimal.NewFromInt(1200)))
	s.True(caja.SaldoAcreedor.IsZero(), "At most one saldo column per account")

	ventas := report.Rows[1]
	s.True(ventas.SaldoDeudor.IsZero())
	s.True(ventas.SaldoAcreedor.Equal(decimal.NewFromInt(1200)))

	s.True(report.TotalDebe.Equal(decimal.NewFromInt(1500)))
	s.True(report.TotalHaber.Equal(decimal.NewFromInt(1500)))
	s.True(report.TotalSaldoDeudor.Equal(report.TotalSaldoAcreedor))
	s.True(report.Consistent)
}

func (s *LedgerServiceTestSuite) TestBalanceFlagsInconsistency() {
	ctx := context.Background()

	// Debe and haber totals five units apart: beyond any rounding tolerance,
	// which indicates corrupted confirmed entries.
	s.mockReportingRepo.On("GetBalanceTotals", ctx, s.companyID, mock.Anything).
		Return(s.balanceTotals(1500, 0, 0, 1495), nil).Once()

	report, err := s.service.BalanceSumasYSaldos(ctx, s.companyID, dto.ReportParams{})

	s.Require().NoError(err)
	s.False(report.Consistent, "Out-of-balance ledgers are flagged, not silently served")
}

func (s *LedgerServiceTestSuite) TestBalanceEmptyLedger() {
	ctx := context.Background()

	s.mockReportingRepo.On("GetBalanceTotals", ctx, s.companyID, mock.Anything).
		Return([]portsrepo.AccountTotals{}, nil).Once()

	report, err := s.service.BalanceSumasYSaldos(ctx, s.companyID, dto.ReportParams{})

	s.Require().NoError(err)
	s.Empty(report.Rows)
	s.True(report.Consistent, "An empty ledger balances trivially")
	s.True(report.TotalDebe.IsZero())
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
