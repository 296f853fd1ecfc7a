package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	entryDate := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, 3, 15, 14, 30, 45, 123456789, time.UTC)
	entryID := "7f9c34a1-53f2-4f6e-9c2d-8b1a5e0d4c21"

	token := EncodeToken(entryDate, createdAt, entryID)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedDate, decodedCreatedAt, decodedEntryID, err := DecodeToken(token)
	assert.NoError(t, err)
	assert.Equal(t, entryDate, decodedDate, "Entry date should match after decode")
	assert.Equal(t, createdAt, decodedCreatedAt, "Created at time should match after decode")
	assert.Equal(t, entryID, decodedEntryID, "Entry ID should match after decode")

	// Zero time values survive the round trip
	zeroToken := EncodeToken(time.Time{}, time.Time{}, "")
	decodedZeroDate, decodedZeroTime, decodedZeroID, err := DecodeToken(zeroToken)
	assert.NoError(t, err)
	assert.True(t, decodedZeroDate.IsZero())
	assert.True(t, decodedZeroTime.IsZero())
	assert.Empty(t, decodedZeroID)
}

func TestTokenDisambiguatesEqualTimestamps(t *testing.T) {
	// Entries inserted in the same batch share entry_date and created_at; the
	// entry ID is the tiebreaker that lets the next page resume after the
	// exact row instead of skipping its twins.
	entryDate := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

	tokenA := EncodeToken(entryDate, createdAt, "aaaaaaaa-0000-0000-0000-000000000001")
	tokenB := EncodeToken(entryDate, createdAt, "bbbbbbbb-0000-0000-0000-000000000002")
	assert.NotEqual(t, tokenA, tokenB, "Same-timestamp rows must produce distinct tokens")

	_, _, idA, err := DecodeToken(tokenA)
	assert.NoError(t, err)
	_, _, idB, err := DecodeToken(tokenB)
	assert.NoError(t, err)
	assert.NotEqual(t, idA, idB)
}

func TestDecodeTokenInvalid(t *testing.T) {
	_, _, _, err := DecodeToken("not-base64!!!")
	assert.Error(t, err, "Invalid base64 should fail")

	// Valid base64 but missing the separators
	_, _, _, err = DecodeToken("c2luZ2xlZmllbGQ=")
	assert.Error(t, err, "Token without separators should fail")

	// Two fields only: the entry ID part is missing
	_, _, _, err = DecodeToken(EncodeMultiFieldToken("2025-03-15T00:00:00Z", "2025-03-15T00:00:00Z"))
	assert.Error(t, err, "Token without the entry ID field should fail")

	_, _, _, err = DecodeToken(EncodeMultiFieldToken("not-a-date", "also-not-a-date", "some-id"))
	assert.Error(t, err, "Unparseable dates should fail")
}

func TestMultiFieldToken(t *testing.T) {
	fields := []string{"2025-03-15T00:00:00Z", "42", "3"}

	token := EncodeMultiFieldToken(fields...)
	assert.NotEmpty(t, token)

	decoded, err := DecodeMultiFieldToken(token)
	assert.NoError(t, err)
	assert.Equal(t, fields, decoded)

	_, err = DecodeMultiFieldToken("%%%invalid%%%")
	assert.Error(t, err)
}
