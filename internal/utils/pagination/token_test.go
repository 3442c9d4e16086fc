package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	createdAt := time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.UTC)

	token := EncodeToken(createdAt)
	decoded, err := DecodeToken(token)

	require.NoError(t, err)
	assert.True(t, createdAt.Equal(decoded))
}

func TestDecodeToken_Invalid(t *testing.T) {
	_, err := DecodeToken("not-base64!!")
	assert.Error(t, err)

	_, err = DecodeToken("aGVsbG8=") // valid base64, not a timestamp
	assert.Error(t, err)
}
