package pagination_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightbooks/bright_books_app/internal/utils/pagination"
)

func TestTokenRoundTrip(t *testing.T) {
	journalDate := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2024, 6, 15, 10, 30, 0, 123456789, time.UTC)

	token := pagination.EncodeToken(journalDate, createdAt)
	gotDate, gotCreated, err := pagination.DecodeToken(token)

	require.NoError(t, err)
	assert.True(t, gotDate.Equal(journalDate))
	assert.True(t, gotCreated.Equal(createdAt))
}

func TestDecodeToken_Invalid(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-base64!!")
	assert.Error(t, err)

	_, _, err = pagination.DecodeToken("aGVsbG8=") // "hello", no separator
	assert.Error(t, err)
}

func TestSeqTokenRoundTrip(t *testing.T) {
	token := pagination.EncodeSeqToken(42, 3)
	seq, lineNo, err := pagination.DecodeSeqToken(token)

	require.NoError(t, err)
	assert.Equal(t, int64(42), seq)
	assert.Equal(t, 3, lineNo)
}

func TestDecodeSeqToken_Invalid(t *testing.T) {
	_, _, err := pagination.DecodeSeqToken("%%%")
	assert.Error(t, err)
}
