package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStruct_JournalEntryRequest(t *testing.T) {
	req := dto.CreateJournalEntryRequest{
		EntryDate:   time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		Description: "Cash sale",
		Lines: []dto.JournalLineRequest{
			{AccountID: "cash"},
			{AccountID: ""},
		},
	}

	err := Struct(req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	var ve *apperrors.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "lines[1].accountID", ve.Field)
	assert.Equal(t, "is required", ve.Message)
}

func TestStruct_MissingDescription(t *testing.T) {
	err := Struct(dto.CreateAccountRequest{Code: "1000", AccountType: "ASSET"})
	var ve *apperrors.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "name", ve.Field)
}

func TestStruct_Valid(t *testing.T) {
	err := Struct(dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: "ASSET"})
	assert.NoError(t, err)
}
