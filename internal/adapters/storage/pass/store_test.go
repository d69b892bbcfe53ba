package pass

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/marvel-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePutUsesPassInsert(t *testing.T) {
	t.Parallel()

	called := false
	store := &Store{
		prefix: DefaultPrefix,
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			called = true
			assert.Equal(t, context.Background(), ctx)
			assert.Equal(t, []string{"insert", "-m", "-f", "marvel-dashboard/auth_token"}, args)
			assert.Equal(t, "ciphertext\n", input)
			return "", "", nil
		},
	}

	err := store.Put(context.Background(), "auth_token", "ciphertext")
	require.NoError(t, err)
	assert.True(t, called)
}

func TestStoreGetUsesPassShowAndTrimsTrailingNewline(t *testing.T) {
	t.Parallel()

	store := &Store{
		prefix: "custom",
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"show", "custom/location"}, args)
			assert.Empty(t, input)
			return "/?tab=series\n", "", nil
		},
	}

	value, err := store.Get(context.Background(), "location")
	require.NoError(t, err)
	assert.Equal(t, "/?tab=series", value)
}

func TestStoreDeleteUsesPassRemove(t *testing.T) {
	t.Parallel()

	store := &Store{
		prefix: DefaultPrefix,
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"rm", "-f", "marvel-dashboard/auth_token"}, args)
			assert.Empty(t, input)
			return "", "", nil
		},
	}

	err := store.Delete(context.Background(), "auth_token")
	require.NoError(t, err)
}

func TestStoreMissingEntryMapsToNotFound(t *testing.T) {
	t.Parallel()

	store := &Store{
		prefix: DefaultPrefix,
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "Error: marvel-dashboard/auth_token is not in the password store.", errors.New("exit status 1")
		},
	}

	_, err := store.Get(context.Background(), "auth_token")
	require.ErrorIs(t, err, domain.ErrStorageKeyNotFound)

	require.NoError(t, store.Delete(context.Background(), "auth_token"))
}

func TestStoreGetReturnsClearError(t *testing.T) {
	t.Parallel()

	store := &Store{
		prefix: DefaultPrefix,
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "gpg: decryption failed", errors.New("exit status 2")
		},
	}

	_, err := store.Get(context.Background(), "auth_token")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrStorageKeyNotFound)
	assert.ErrorContains(t, err, "pass get")
	assert.ErrorContains(t, err, "marvel-dashboard/auth_token")
	assert.ErrorContains(t, err, "decryption failed")
}

func TestNewStoreDefaultsPrefix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultPrefix, NewStore(" / ").prefix)
	assert.Equal(t, "team/marvel", NewStore("/team/marvel/").prefix)
}
