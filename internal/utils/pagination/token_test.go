package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeCursor(t *testing.T) {
	c := Cursor{
		Date:      time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2026, 5, 15, 14, 30, 45, 123456789, time.UTC),
		ID:        "6f1c2a9e-0d4b-4a57-9a52-3d1d2f7d8e10",
	}

	token := EncodeCursor(c)
	assert.NotEmpty(t, token)

	decoded, err := DecodeCursor(token)
	require.NoError(t, err)
	assert.True(t, c.Date.Equal(decoded.Date))
	assert.True(t, c.CreatedAt.Equal(decoded.CreatedAt))
	assert.Equal(t, c.ID, decoded.ID)
}

func TestDecodeCursor_Invalid(t *testing.T) {
	_, err := DecodeCursor("%%%")
	assert.Error(t, err)

	_, err = DecodeCursor(EncodeCursor(Cursor{})[:4])
	assert.Error(t, err)
}

func TestCursorBefore(t *testing.T) {
	day := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	at := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	c := Cursor{Date: day, CreatedAt: at, ID: "m"}

	assert.True(t, c.Before(day.AddDate(0, 0, -1), at, "z"))
	assert.False(t, c.Before(day.AddDate(0, 0, 1), at, "a"))
	assert.True(t, c.Before(day, at.Add(-time.Second), "z"))
	assert.True(t, c.Before(day, at, "a"))
	assert.False(t, c.Before(day, at, "m"))
}

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, NormalizeLimit(0, 100))
	assert.Equal(t, 100, NormalizeLimit(500, 100))
	assert.Equal(t, 7, NormalizeLimit(7, 100))
}
