package services_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/haberesoft/contable_app/internal/apperrors"
	"github.com/haberesoft/contable_app/internal/core/domain"
	portsrepo "github.com/haberesoft/contable_app/internal/core/ports/repositories"
	portssvc "github.com/haberesoft/contable_app/internal/core/ports/services"
	"github.com/haberesoft/contable_app/internal/core/services"
	"github.com/haberesoft/contable_app/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock EntryRepository ---
type MockEntryRepository struct {
	mock.Mock
}

var _ portsrepo.EntryRepositoryWithTx = (*MockEntryRepository)(nil)

func (m *MockEntryRepository) SaveEntry(ctx context.Context, entry domain.Entry, lines []domain.EntryLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockEntryRepository) UpdateDraftEntry(ctx context.Context, entry domain.Entry, lines []domain.EntryLine, expectedVersion int64) error {
	args := m.Called(ctx, entry, lines, expectedVersion)
	return args.Error(0)
}

func (m *MockEntryRepository) ConfirmEntry(ctx context.Context, entryID string, expectedVersion int64, actorID string, now time.Time) (int64, error) {
	args := m.Called(ctx, entryID, expectedVersion, actorID, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEntryRepository) VoidEntry(ctx context.Context, entryID string, expectedVersion int64, actorID string, reason string, now time.Time) error {
	args := m.Called(ctx, entryID, expectedVersion, actorID, reason, now)
	return args.Error(0)
}

func (m *MockEntryRepository) DeleteDraftEntry(ctx context.Context, entryID string, expectedVersion int64) error {
	args := m.Called(ctx, entryID, expectedVersion)
	return args.Error(0)
}

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.EntryLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntryLine), args.Error(1)
}

func (m *MockEntryRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.EntryLine, error) {
	args := m.Called(ctx, entryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.EntryLine), args.Error(1)
}

func (m *MockEntryRepository) ListEntriesByCompany(ctx context.Context, companyID string, filter portsrepo.ListEntriesFilter, limit int, nextToken *string) ([]domain.Entry, *string, error) {
	args := m.Called(ctx, companyID, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedToken = &tokenVal
	}
	return args.Get(0).([]domain.Entry), returnedToken, args.Error(2)
}

func (m *MockEntryRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockEntryRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockEntryRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) GetAccountByID(ctx context.Context, companyID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByCode(ctx context.Context, companyID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, companyID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, companyID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock PeriodReaderSvc ---
type MockPeriodReaderService struct {
	mock.Mock
}

var _ portssvc.PeriodReaderSvc = (*MockPeriodReaderService)(nil)

func (m *MockPeriodReaderService) GetPeriodByID(ctx context.Context, companyID string, periodID string) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, companyID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodReaderService) ListPeriods(ctx context.Context, companyID string) ([]domain.FiscalPeriod, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodReaderService) IsPostable(ctx context.Context, companyID string, date time.Time) (string, error) {
	args := m.Called(ctx, companyID, date)
	return args.String(0), args.Error(1)
}

// --- Test suite ---
type EntryServiceTestSuite struct {
	suite.Suite
	mockEntryRepo *MockEntryRepository
	mockAccounts  *MockAccountService
	mockPeriods   *MockPeriodReaderService
	service       portssvc.EntrySvcFacade

	companyID string
	actorID   string
	periodID  string

	cashAccount     domain.Account
	salesAccount    domain.Account
	clientAccount   domain.Account
	groupAccount    domain.Account
	inactiveAccount domain.Account
}

func (s *EntryServiceTestSuite) SetupTest() {
	s.mockEntryRepo = new(MockEntryRepository)
	s.mockAccounts = new(MockAccountService)
	s.mockPeriods = new(MockPeriodReaderService)
	s.service = services.NewEntryService(s.mockEntryRepo, s.mockAccounts, s.mockPeriods)

	s.companyID = uuid.NewString()
	s.actorID = uuid.NewString()
	s.periodID = uuid.NewString()

	s.cashAccount = domain.Account{
		AccountID:      uuid.NewString(),
		CompanyID:      s.companyID,
		Code:           "1.1.01",
		Name:           "Caja",
		AccountType:    domain.Asset,
		NormalSide:     domain.Debe,
		PostingAllowed: true,
		IsActive:       true,
	}
	s.salesAccount = domain.Account{
		AccountID:      uuid.NewString(),
		CompanyID:      s.companyID,
		Code:           "4.1.01",
		Name:           "Ventas",
		AccountType:    domain.Income,
		NormalSide:     domain.Haber,
		PostingAllowed: true,
		IsActive:       true,
	}
	s.clientAccount = domain.Account{
		AccountID:            uuid.NewString(),
		CompanyID:            s.companyID,
		Code:                 "1.1.03",
		Name:                 "Clientes",
		AccountType:          domain.Asset,
		NormalSide:           domain.Debe,
		PostingAllowed:       true,
		RequiresCounterparty: true,
		IsActive:             true,
	}
	s.groupAccount = domain.Account{
		AccountID:      uuid.NewString(),
		CompanyID:      s.companyID,
		Code:           "1",
		Name:           "Activo",
		AccountType:    domain.Asset,
		NormalSide:     domain.Debe,
		PostingAllowed: false,
		IsActive:       true,
	}
	s.inactiveAccount = domain.Account{
		AccountID:      uuid.NewString(),
		CompanyID:      s.companyID,
		Code:           "5.9.99",
		Name:           "Cuenta Baja",
		AccountType:    domain.Expense,
		NormalSide:     domain.Debe,
		PostingAllowed: true,
		IsActive:       false,
	}
}

func (s *EntryServiceTestSuite) accountsMap(accounts ...domain.Account) map[string]domain.Account {
	m := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		m[a.AccountID] = a
	}
	return m
}

func (s *EntryServiceTestSuite) createRequest(debe, haber int64) dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Kind: string(domain.KindOperation),
		Memo: "Venta al contado",
		Lines: []dto.CreateEntryLineRequest{
			{AccountID: s.cashAccount.AccountID, Side: "DEBIT", Amount: decimal.NewFromInt(debe)},
			{AccountID: s.salesAccount.AccountID, Side: "CREDIT", Amount: decimal.NewFromInt(haber)},
		},
	}
}

func (s *EntryServiceTestSuite) TestCreateEntrySuccess() {
	ctx := context.Background()
	req := s.createRequest(1000, 1000)

	s.mockPeriods.On("IsPostable", ctx, s.companyID, req.Date).Return(s.periodID, nil).Once()
	s.mockAccounts.On("GetAccountsByIDs", ctx, s.companyID,
		[]string{s.cashAccount.AccountID, s.salesAccount.AccountID}).
		Return(s.accountsMap(s.cashAccount, s.salesAccount), nil).Once()
	s.mockEntryRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.Entry"), mock.AnythingOfType("[]domain.EntryLine")).Return(nil).Once()

	entry, err := s.service.CreateEntry(ctx, s.companyID, req, s.actorID)

	s.Require().NoError(err)
	s.Require().NotNil(entry)
	s.Equal(domain.Draft, entry.Status)
	s.Equal(int64(1), entry.Version)
	s.Equal(s.periodID, entry.PeriodID)
	s.Nil(entry.EntryNumber, "Drafts never carry an entry number")
	s.Equal(s.actorID, entry.CreatedBy)
	s.Require().Len(entry.Lines, 2)
	s.Equal(1, entry.Lines[0].LineNo)
	s.Equal(2, entry.Lines[1].LineNo)
	s.Equal(req.Memo, entry.Lines[0].Description, "Line description defaults to the entry memo")

	s.mockEntryRepo.AssertExpectations(s.T())
	s.mockAccounts.AssertExpectations(s.T())
	s.mockPeriods.AssertExpectations(s.T())
}

func (s *EntryServiceTestSuite) TestCreateEntryAllowsUnbalancedDraft() {
	// Drafts may be transiently unbalanced; only confirmation enforces balance.
	ctx := context.Background()
	req := s.createRequest(1000, 400)

	s.mockPeriods.On("IsPostable", ctx, s.companyID, req.Date).Return(s.periodID, nil).Once()
	s.mockAccounts.On("GetAccountsByIDs", ctx, s.companyID, mock.Anything).
		Return(s.accountsMap(s.cashAccount, s.salesAccount), nil).Once()
	s.mockEntryRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := s.service.CreateEntry(ctx, s.companyID, req, s.actorID)

	s.Require().NoError(err)
	s.Equal(domain.Draft, entry.Status)
	s.mockEntryRepo.AssertExpectations(s.T())
}

func (s *EntryServiceTestSuite) TestCreateEntryMemoMissing() {
	ctx := context.Background()
	req := s.createRequest(1000, 1000)
	req.Memo = "   "

	_, err := s.service.CreateEntry(ctx, s.companyID, req, s.actorID)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrMemoMissing)
	s.mockEntryRepo.AssertNotCalled(s.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (s *EntryServiceTestSuite) TestCreateEntryClosedPeriod() {
	ctx := context.Background()
	req := s.createRequest(1000, 1000)

	s.mockPeriods.On("IsPostable", ctx, s.companyID, req.Date).Return("", services.ErrPeriodClosed).Once()

	_, err := s.service.CreateEntry(ctx, s.companyID, req, s.actorID)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrPeriodClosed)
	s.mockEntryRepo.AssertNotCalled(s.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (s *EntryServiceTestSuite) TestCreateEntryGroupAccountRejected() {
	ctx := context.Background()
	req := s.createRequest(1000, 1000)
	req.Lines[0].AccountID = s.groupAccount.AccountID

	s.mockPeriods.On("IsPostable", ctx, s.companyID, req.Date).Return(s.periodID, nil).Once()
	s.mockAccounts.On("GetAccountsByIDs", ctx, s.companyID, mock.Anything).
		Return(s.accountsMap(s.groupAccount, s.salesAccount), nil).Once()

	_, err := s.service.CreateEntry(ctx, s.companyID, req, s.actorID)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrAccountNotPostable)
}

func (s *EntryServiceTestSuite) TestCreateEntryInactiveAccountRejected() {
	ctx := context.Background()
	req := s.createRequest(1000, 1000)
	req.Lines[0].AccountID = s.inactiveAccount.AccountID

	s.mockPeriods.On("IsPostable", ctx, s.companyID, req.Date).Return(s.periodID, nil).Once()
	s.mockAccounts.On("GetAccountsByIDs", ctx, s.companyID, mock.Anything).
		Return(s.accountsMap(s.inactiveAccount, s.salesAccount), nil).Once()

	_, err := s.service.CreateEntry(ctx, s.companyID, req, s.actorID)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrAccountInactive)
}

func (s *EntryServiceTestSuite) TestCreateEntryCounterpartyRequired() {
	ctx := context.Background()
	req := s.createRequest(1000, 1000)
	req.Lines[0].AccountID = s.clientAccount.AccountID

	s.mockPeriods.On("IsPostable", ctx, s.companyID, req.Date).Return(s.periodID, nil).Once()
	s.mockAccounts.On("GetAccountsByIDs", ctx, s.companyID, mock.Anything).
		Return(s.accountsMap(s.clientAccount, s.salesAccount), nil).Once()

	_, err := s.service.CreateEntry(ctx, s.companyID, req, s.actorID)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrCounterpartyNeeded)

	// Same request with a counterparty passes.
	counterparty := uuid.NewString()
	req.Lines[0].CounterpartyID = &counterparty
	s.mockPeriods.On("IsPostable", ctx, s.companyID, req.Date).Return(s.periodID, nil).Once()
	s.mockAccounts.On("GetAccountsByIDs", ctx, s.companyID, mock.Anything).
		Return(s.accountsMap(s.clientAccount, s.salesAccount), nil).Once()
	s.mockEntryRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	_, err = s.service.CreateEntry(ctx, s.companyID, req, s.actorID)
	s.Require().NoError(err)
}

func (s *EntryServiceTestSuite) draftEntry(version int64) *domain.Entry {
	return &domain.Entry{
		EntryID:   uuid.NewString(),
		CompanyID: s.companyID,
		PeriodID:  s.periodID,
		EntryDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Kind:      domain.KindOperation,
		Origin:    domain.OriginManual,
		Memo:      "Venta al contado",
		Status:    domain.Draft,
		Version:   version,
	}
}

func (s *EntryServiceTestSuite) balancedLines(entryID string) []domain.EntryLine {
	return []domain.EntryLine{
		{LineID: uuid.NewString(), EntryID: entryID, LineNo: 1, AccountID: s.cashAccount.AccountID, Side: domain.Debe, Amount: decimal.NewFromInt(1000), Description: "Venta al contado"},
		{LineID: uuid.NewString(), EntryID: entryID, LineNo: 2, AccountID: s.salesAccount.AccountID, Side: domain.Haber, Amount: decimal.NewFromInt(1000), Description: "Venta al contado"},
	}
}

func (s *EntryServiceTestSuite) TestConfirmEntrySuccess() {
	ctx := context.Background()
	entry := s.draftEntry(3)
	lines := s.balancedLines(entry.EntryID)

	s.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockEntryRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return(lines, nil).Once()
	s.mockPeriods.On("IsPostable", ctx, s.companyID, entry.EntryDate).Return(s.periodID, nil).Once()
	s.mockEntryRepo.On("ConfirmEntry", ctx, entry.EntryID, int64(3), s.actorID, mock.AnythingOfType("time.Time")).
		Return(int64(41), nil).Once()

	confirmed, err := s.service.ConfirmEntry(ctx, s.companyID, entry.EntryID, 3, s.actorID)

	s.Require().NoError(err)
	s.Equal(domain.Confirmed, confirmed.Status)
	s.Require().NotNil(confirmed.EntryNumber)
	s.Equal(int64(41), *confirmed.EntryNumber)
	s.Equal(int64(4), confirmed.Version)
	s.Require().NotNil(confirmed.ConfirmedBy)
	s.Equal(s.actorID, *confirmed.ConfirmedBy)

	s.mockEntryRepo.AssertExpectations(s.T())
	s.mockPeriods.AssertExpectations(s.T())
}

func (s *EntryServiceTestSuite) TestConfirmEntryUnbalanced() {
	ctx := context.Background()
	entry := s.draftEntry(1)
	lines := s.balancedLines(entry.EntryID)
	// Two units apart: outside the one-unit tolerance.
	lines[1].Amount = decimal.NewFromInt(998)

	s.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockEntryRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return(lines, nil).Once()

	_, err := s.service.ConfirmEntry(ctx, s.companyID, entry.EntryID, 1, s.actorID)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrUnbalanced)
	s.mockEntryRepo.AssertNotCalled(s.T(), "ConfirmEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *EntryServiceTestSuite) TestConfirmEntryWithinTolerance() {
	// One unit apart confirms: the tolerance absorbs caller-side rounding.
	ctx := context.Background()
	entry := s.draftEntry(1)
	lines := s.balancedLines(entry.EntryID)
	lines[1].Amount = decimal.NewFromInt(999)

	s.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockEntryRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return(lines, nil).Once()
	s.mockPeriods.On("IsPostable", ctx, s.companyID, entry.EntryDate).Return(s.periodID, nil).Once()
	s.mockEntryRepo.On("ConfirmEntry", ctx, entry.EntryID, int64(1), s.actorID, mock.AnythingOfType("time.Time")).
		Return(int64(7), nil).Once()

	confirmed, err := s.service.ConfirmEntry(ctx, s.companyID, entry.EntryID, 1, s.actorID)

	s.Require().NoError(err)
	s.Equal(int64(7), *confirmed.EntryNumber)
}

func (s *EntryServiceTestSuite) TestConfirmEntryStaleVersion() {
	ctx := context.Background()
	entry := s.draftEntry(5)

	s.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	_, err := s.service.ConfirmEntry(ctx, s.companyID, entry.EntryID, 4, s.actorID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConcurrentModification)
	s.mockEntryRepo.AssertNotCalled(s.T(), "ConfirmEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *EntryServiceTestSuite) TestConfirmEntryTooFewLines() {
	ctx := context.Background()
	entry := s.draftEntry(1)
	lines := s.balancedLines(entry.EntryID)[:1]

	s.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockEntryRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return(lines, nil).Once()

	_, err := s.service.ConfirmEntry(ctx, s.companyID, entry.EntryID, 1, s.actorID)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrTooFewLines)
}

func (s *EntryServiceTestSuite) TestConfirmEntryAlreadyConfirmed() {
	ctx := context.Background()
	entry := s.draftEntry(2)
	entry.Status = domain.Confirmed

	s.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	_, err := s.service.ConfirmEntry(ctx, s.companyID, entry.EntryID, 2, s.actorID)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrEntryNotDraft)
}

func (s *EntryServiceTestSuite) TestVoidEntrySuccess() {
	ctx := context.Background()
	entry := s.draftEntry(2)
	entry.Status = domain.Confirmed
	number := int64(12)
	entry.EntryNumber = &number

	s.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockEntryRepo.On("VoidEntry", ctx, entry.EntryID, int64(2), s.actorID, "duplicado", mock.AnythingOfType("time.Time")).Return(nil).Once()

	voided, err := s.service.VoidEntry(ctx, s.companyID, entry.EntryID, 2, s.actorID, "duplicado")

	s.Require().NoError(err)
	s.Equal(domain.Voided, voided.Status)
	s.Require().NotNil(voided.VoidReason)
	s.Equal("duplicado", *voided.VoidReason)
	s.Equal(number, *voided.EntryNumber, "Voided entries keep their number")
	s.mockEntryRepo.AssertExpectations(s.T())
}

func (s *EntryServiceTestSuite) TestVoidEntryReasonRequired() {
	ctx := context.Background()

	_, err := s.service.VoidEntry(ctx, s.companyID, uuid.NewString(), 1, s.actorID, "  ")

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrReasonMissing)
	s.mockEntryRepo.AssertNotCalled(s.T(), "VoidEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *EntryServiceTestSuite) TestVoidEntryNotConfirmed() {
	ctx := context.Background()
	entry := s.draftEntry(1)

	s.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	_, err := s.service.VoidEntry(ctx, s.companyID, entry.EntryID, 1, s.actorID, "error de carga")

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrEntryNotConfirmed)
}

func (s *EntryServiceTestSuite) TestDeleteEntryOnlyDrafts() {
	ctx := context.Background()
	entry := s.draftEntry(2)
	entry.Status = domain.Voided

	s.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	err := s.service.DeleteEntry(ctx, s.companyID, entry.EntryID, 2, s.actorID)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrEntryNotDraft)
	s.mockEntryRepo.AssertNotCalled(s.T(), "DeleteDraftEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (s *EntryServiceTestSuite) TestDeleteDraftSuccess() {
	ctx := context.Background()
	entry := s.draftEntry(1)

	s.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockEntryRepo.On("DeleteDraftEntry", ctx, entry.EntryID, int64(1)).Return(nil).Once()

	err := s.service.DeleteEntry(ctx, s.companyID, entry.EntryID, 1, s.actorID)

	s.Require().NoError(err)
	s.mockEntryRepo.AssertExpectations(s.T())
}

func (s *EntryServiceTestSuite) TestUpdateEntryNotDraft() {
	ctx := context.Background()
	entry := s.draftEntry(2)
	entry.Status = domain.Confirmed
	memo := "nuevo memo"

	s.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	_, err := s.service.UpdateEntry(ctx, s.companyID, entry.EntryID, dto.UpdateEntryRequest{Version: 2, Memo: &memo}, s.actorID)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrEntryNotDraft)
	s.mockEntryRepo.AssertNotCalled(s.T(), "UpdateDraftEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *EntryServiceTestSuite) TestGetEntryAcrossCompanyBoundary() {
	ctx := context.Background()
	entry := s.draftEntry(1)
	entry.CompanyID = uuid.NewString() // belongs to someone else

	s.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	_, err := s.service.GetEntryByID(ctx, s.companyID, entry.EntryID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound, "Foreign entries read as not found, never as forbidden")
}

func (s *EntryServiceTestSuite) TestListEntriesIncludesVoided() {
	ctx := context.Background()
	voided := *s.draftEntry(3)
	voided.Status = domain.Voided
	entries := []domain.Entry{voided}

	s.mockEntryRepo.On("ListEntriesByCompany", ctx, s.companyID, mock.AnythingOfType("repositories.ListEntriesFilter"), 20, (*string)(nil)).
		Return(entries, nil, nil).Once()
	s.mockEntryRepo.On("FindLinesByEntryIDs", ctx, []string{voided.EntryID}).
		Return(map[string][]domain.EntryLine{}, nil).Once()

	resp, err := s.service.ListEntries(ctx, s.companyID, dto.ListEntriesParams{})

	s.Require().NoError(err)
	s.Require().Len(resp.Entries, 1)
	s.Equal(string(domain.Voided), resp.Entries[0].Status, "Audit listing keeps voided entries visible")
}

func (s *EntryServiceTestSuite) TestCreateEntryPeriodClosesBeforeCommit() {
	// The repository re-checks the period inside the insert transaction; a
	// period closed between validation and commit surfaces as a conflict.
	ctx := context.Background()
	req := s.createRequest(1000, 1000)

	s.mockPeriods.On("IsPostable", ctx, s.companyID, req.Date).Return(s.periodID, nil).Once()
	s.mockAccounts.On("GetAccountsByIDs", ctx, s.companyID, mock.Anything).
		Return(s.accountsMap(s.cashAccount, s.salesAccount), nil).Once()
	s.mockEntryRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything).
		Return(fmt.Errorf("%w: fiscal period %s is closed", apperrors.ErrConflict, s.periodID)).Once()

	_, err := s.service.CreateEntry(ctx, s.companyID, req, s.actorID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
}

// numberingEntryRepo layers a mutex-guarded number counter over the mock so
// concurrent confirmations exercise the reservation contract the sequence
// row lock provides in the database.
type numberingEntryRepo struct {
	MockEntryRepository
	mu       sync.Mutex
	last     int64
	assigned []int64
}

func (r *numberingEntryRepo) ConfirmEntry(ctx context.Context, entryID string, expectedVersion int64, actorID string, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last++
	r.assigned = append(r.assigned, r.last)
	return r.last, nil
}

func (s *EntryServiceTestSuite) TestConfirmEntryNumbersUnderConcurrentConfirms() {
	repo := new(numberingEntryRepo)
	service := services.NewEntryService(repo, s.mockAccounts, s.mockPeriods)

	const n = 16
	entries := make([]*domain.Entry, n)
	for i := range entries {
		entry := s.draftEntry(1)
		entries[i] = entry
		repo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil).Once()
		repo.On("FindLinesByEntryID", mock.Anything, entry.EntryID).Return(s.balancedLines(entry.EntryID), nil).Once()
	}
	s.mockPeriods.On("IsPostable", mock.Anything, s.companyID, mock.AnythingOfType("time.Time")).Return(s.periodID, nil)

	numbers := make([]int64, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			confirmed, err := service.ConfirmEntry(context.Background(), s.companyID, entries[i].EntryID, 1, s.actorID)
			if err != nil {
				errs[i] = err
				return
			}
			numbers[i] = *confirmed.EntryNumber
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		s.Require().NoError(err, "confirm %d failed", i)
	}

	// Every confirmation got a distinct number and the full set is gapless.
	sorted := append([]int64{}, numbers...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	for i, num := range sorted {
		s.Equal(int64(i+1), num, "Numbers must be unique and gapless")
	}

	// Reservation order is strictly increasing: no number is ever reused or
	// handed out ahead of an earlier reservation.
	s.Require().Len(repo.assigned, n)
	for i, num := range repo.assigned {
		s.Equal(int64(i+1), num)
	}
}

func TestEntryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EntryServiceTestSuite))
}
