package tokens_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	rperrors "github.com/jrsteele09/research-platform-client/internal/errors"
	"github.com/jrsteele09/research-platform-client/tokens"
	"github.com/jrsteele09/research-platform-client/tokens/storefake"
)

func TestManager_LoadHydratesFromStore(t *testing.T) {
	store := storefake.NewFakeStoreWith(map[string]string{
		tokens.AccessTokenKey:  "A1",
		tokens.RefreshTokenKey: "R1",
	})

	m := tokens.NewManager(store)
	require.False(t, m.IsAuthenticated())
	require.NoError(t, m.Load())

	require.True(t, m.IsAuthenticated())
	require.Equal(t, tokens.Session{AccessToken: "A1", RefreshToken: "R1"}, m.Current())
}

func TestManager_LoadEmptyStore(t *testing.T) {
	m := tokens.NewManager(storefake.NewFakeStore())
	require.NoError(t, m.Load())
	require.False(t, m.IsAuthenticated())
	require.False(t, m.Current().HasRefreshToken())
}

func TestManager_SetAndClear(t *testing.T) {
	store := storefake.NewFakeStore()
	m := tokens.NewManager(store)

	require.NoError(t, m.Set("a", "b"))
	require.True(t, m.IsAuthenticated())

	v, err := store.Get(tokens.AccessTokenKey)
	require.NoError(t, err)
	require.Equal(t, "a", v)
	v, err = store.Get(tokens.RefreshTokenKey)
	require.NoError(t, err)
	require.Equal(t, "b", v)

	require.NoError(t, m.Clear())
	require.False(t, m.IsAuthenticated())
	require.Equal(t, tokens.Session{}, m.Current())
	require.Equal(t, 0, store.Len())

	_, err = store.Get(tokens.AccessTokenKey)
	require.ErrorIs(t, err, rperrors.ErrNotFound)
}

func TestManager_PersistFailureStillUpdatesMemory(t *testing.T) {
	store := storefake.NewFakeStore()
	store.WriteErr = errors.New("disk full")
	m := tokens.NewManager(store)

	err := m.Set("a", "b")
	require.Error(t, err)
	require.Contains(t, err.Error(), "disk full")
	require.Contains(t, err.Error(), tokens.AccessTokenKey)
	require.Contains(t, err.Error(), tokens.RefreshTokenKey)
	require.True(t, m.IsAuthenticated())

	require.Error(t, m.Clear())
	require.False(t, m.IsAuthenticated())
}

func TestManager_ReplaceAccessToken(t *testing.T) {
	store := storefake.NewFakeStore()
	m := tokens.NewManager(store)
	require.NoError(t, m.Set("A1", "R1"))

	replaced, err := m.ReplaceAccessToken("R1", "A2")
	require.NoError(t, err)
	require.True(t, replaced)
	require.Equal(t, tokens.Session{AccessToken: "A2", RefreshToken: "R1"}, m.Current())

	require.NoError(t, m.Clear())
	replaced, err = m.ReplaceAccessToken("R1", "A3")
	require.NoError(t, err)
	require.False(t, replaced)
	require.Equal(t, tokens.Session{}, m.Current())
	require.Equal(t, 0, store.Len())
}

func TestManager_ClearSession(t *testing.T) {
	m := tokens.NewManager(storefake.NewFakeStore())
	require.NoError(t, m.Set("A2", "R2"))

	cleared, err := m.ClearSession("R1")
	require.NoError(t, err)
	require.False(t, cleared)
	require.Equal(t, tokens.Session{AccessToken: "A2", RefreshToken: "R2"}, m.Current())

	cleared, err = m.ClearSession("R2")
	require.NoError(t, err)
	require.True(t, cleared)
	require.False(t, m.IsAuthenticated())
}
