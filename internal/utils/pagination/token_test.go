package pagination_test

import (
	"testing"
	"time"

	"github.com/contabix/contabix_backend/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryTokenRoundTrip(t *testing.T) {
	entryDate := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	token := pagination.EncodeEntryToken(entryDate, 42)

	gotDate, gotNumber, err := pagination.DecodeEntryToken(token)
	require.NoError(t, err)
	assert.True(t, gotDate.Equal(entryDate))
	assert.Equal(t, int64(42), gotNumber)
}

func TestDecodeEntryToken_Invalid(t *testing.T) {
	_, _, err := pagination.DecodeEntryToken("not-base64!!")
	assert.Error(t, err)

	_, _, err = pagination.DecodeEntryToken("bm8gc2VwYXJhdG9y") // "no separator"
	assert.Error(t, err)
}

func TestMultiFieldTokenRoundTrip(t *testing.T) {
	token := pagination.EncodeMultiFieldToken("2026-01-15", "42", "DRAFT")

	fields, err := pagination.DecodeMultiFieldToken(token)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-01-15", "42", "DRAFT"}, fields)
}
