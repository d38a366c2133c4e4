package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	createdAt := time.Date(2025, 5, 14, 10, 30, 0, 123456789, time.UTC)
	id := "9a1f2b3c-0000-4000-8000-000000000001"

	token := EncodeToken(createdAt, id)
	gotTime, gotID, err := DecodeToken(token)

	require.NoError(t, err)
	assert.True(t, createdAt.Equal(gotTime))
	assert.Equal(t, id, gotID)
}

func TestDecodeToken_InvalidBase64(t *testing.T) {
	_, _, err := DecodeToken("not-base64!!")
	assert.Error(t, err)
}

func TestDecodeToken_MissingSeparator(t *testing.T) {
	token := "bm8tc2VwYXJhdG9y" // "no-separator"
	_, _, err := DecodeToken(token)
	assert.Error(t, err)
}

func TestDecodeToken_EmptyID(t *testing.T) {
	token := EncodeToken(time.Now().UTC(), "")
	_, _, err := DecodeToken(token)
	assert.Error(t, err)
}
