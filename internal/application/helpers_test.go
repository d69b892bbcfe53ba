package application

import (
	"testing"
	"time"

	"github.com/bnema/marvel-dashboard/internal/adapters/crypto"
	tomlstore "github.com/bnema/marvel-dashboard/internal/adapters/storage/toml"
	"github.com/bnema/marvel-dashboard/internal/ports/mocks"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-signing-key"))
	require.NoError(t, err)
	return token
}

func tokenExpiringIn(t *testing.T, d time.Duration, roles ...string) string {
	t.Helper()

	claims := jwt.MapClaims{"sub": "auth0|42", "exp": testNow.Add(d).Unix()}
	if roles != nil {
		claims["roles"] = roles
	}
	return signedToken(t, claims)
}

func newTestStorage(t *testing.T) *tomlstore.Store {
	t.Helper()

	store, err := tomlstore.NewStore(t.TempDir() + "/storage.toml")
	require.NoError(t, err)
	return store
}

func newTestCredentials(t *testing.T) *CredentialStore {
	t.Helper()

	cipher, err := crypto.NewCipher("correct horse battery staple", crypto.KDFConfig{
		Memory:      8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
	})
	require.NoError(t, err)

	return NewCredentialStore(newTestStorage(t), cipher)
}

func fixedClock(t *testing.T, now time.Time) *mocks.MockClock {
	t.Helper()

	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now().Return(now).Maybe()
	return clock
}
