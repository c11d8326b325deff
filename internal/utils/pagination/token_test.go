package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	cursor := Cursor{
		TransactionDate: time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt:       time.Date(2024, 5, 15, 14, 30, 45, 123456789, time.UTC),
		ID:              "6f1c2a3e-1111-2222-3333-444455556666",
	}

	token := EncodeToken(cursor)
	assert.NotEmpty(t, token, "Token should not be empty")

	decoded, err := DecodeToken(token)
	assert.NoError(t, err)
	assert.Equal(t, cursor, decoded)

	// Current time survives with nanosecond precision.
	now := time.Now().UTC()
	decodedNow, err := DecodeToken(EncodeToken(Cursor{TransactionDate: now, CreatedAt: now, ID: "x"}))
	assert.NoError(t, err)
	assert.True(t, now.Equal(decodedNow.CreatedAt))
}

func TestDecodeTokenError(t *testing.T) {
	_, err := DecodeToken("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	noSeparator := base64.URLEncoding.EncodeToString([]byte("2024-05-15T00:00:00Z"))
	_, err = DecodeToken(noSeparator)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	badDate := base64.URLEncoding.EncodeToString([]byte("notadate|2024-05-15T14:30:45Z|id"))
	_, err = DecodeToken(badDate)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "transaction date parse")

	emptyID := base64.URLEncoding.EncodeToString([]byte("2024-05-15T00:00:00Z|2024-05-15T14:30:45Z|"))
	_, err = DecodeToken(emptyID)
	assert.Error(t, err)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, ClampLimit(0))
	assert.Equal(t, DefaultLimit, ClampLimit(-5))
	assert.Equal(t, 25, ClampLimit(25))
	assert.Equal(t, MaxLimit, ClampLimit(5000))
}
