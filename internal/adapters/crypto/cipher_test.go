package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKDF() KDFConfig {
	return KDFConfig{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16}
}

func TestCipherRoundTrip(t *testing.T) {
	t.Parallel()

	c, err := NewCipher("s3cret", testKDF())
	require.NoError(t, err)

	tokens := []string{"", "a", "eyJhbGciOiJIUzI1NiJ9.eyJleHAiOjF9.sig", strings.Repeat("x", 4096)}
	for _, token := range tokens {
		envelope, err := c.Encrypt(token)
		require.NoError(t, err)

		got, err := c.Decrypt(envelope)
		require.NoError(t, err)
		assert.Equal(t, token, got)
	}
}

func TestCipherUsesFreshSaltAndNonce(t *testing.T) {
	t.Parallel()

	c, err := NewCipher("s3cret", testKDF())
	require.NoError(t, err)

	first, err := c.Encrypt("token")
	require.NoError(t, err)
	second, err := c.Encrypt("token")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(first, "xc1."))
}

func TestCipherDecryptWithWrongSecretFails(t *testing.T) {
	t.Parallel()

	a, err := NewCipher("alpha", testKDF())
	require.NoError(t, err)
	b, err := NewCipher("bravo", testKDF())
	require.NoError(t, err)

	envelope, err := a.Encrypt("token")
	require.NoError(t, err)

	_, err = b.Decrypt(envelope)
	assert.ErrorContains(t, err, "decrypt token")
}

func TestCipherDecryptRejectsMalformedEnvelopes(t *testing.T) {
	t.Parallel()

	c, err := NewCipher("s3cret", testKDF())
	require.NoError(t, err)

	tests := []struct {
		name     string
		envelope string
	}{
		{name: "empty", envelope: ""},
		{name: "plain token", envelope: "header.payload.sig"},
		{name: "wrong prefix", envelope: "xc2.AA.AA.AA"},
		{name: "bad base64", envelope: "xc1.!!.AA.AA"},
		{name: "short nonce", envelope: "xc1.AAAAAAAAAAAAAAAAAAAAAA.AA.AA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Decrypt(tt.envelope)
			assert.ErrorIs(t, err, ErrInvalidEnvelope)
		})
	}
}

func TestNewCipherValidatesInput(t *testing.T) {
	t.Parallel()

	_, err := NewCipher("  ", testKDF())
	assert.ErrorIs(t, err, ErrEmptySecret)

	bad := testKDF()
	bad.Memory = 1024
	_, err = NewCipher("s3cret", bad)
	assert.ErrorIs(t, err, errInvalidKDFConfig)

	bad = testKDF()
	bad.Iterations = 0
	_, err = NewCipher("s3cret", bad)
	assert.ErrorIs(t, err, errInvalidKDFConfig)
}
