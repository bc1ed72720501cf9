package apiclient_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/research-platform-client/apiclient"
	rperrors "github.com/jrsteele09/research-platform-client/internal/errors"
	"github.com/jrsteele09/research-platform-client/tokens"
	"github.com/jrsteele09/research-platform-client/tokens/storefake"
)

func TestNew_StripsTrailingSlash(t *testing.T) {
	client, err := apiclient.New("http://localhost:8000/api/")
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8000/api", client.BaseURL())
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := apiclient.New("  ")
	require.ErrorIs(t, err, rperrors.ErrInvalidBaseURL)
}

func TestNew_HydratesSessionFromStore(t *testing.T) {
	store := storefake.NewFakeStoreWith(map[string]string{
		tokens.AccessTokenKey:  "T1",
		tokens.RefreshTokenKey: "R1",
	})

	client, err := apiclient.New("http://localhost:8000/api", apiclient.WithStore(store))
	require.NoError(t, err)
	require.True(t, client.IsAuthenticated())
	require.Equal(t, tokens.Session{AccessToken: "T1", RefreshToken: "R1"}, client.Session())
}

func TestNew_EmptyStoreLeavesSessionUnset(t *testing.T) {
	client, err := apiclient.New("http://localhost:8000/api", apiclient.WithStore(storefake.NewFakeStore()))
	require.NoError(t, err)
	require.False(t, client.IsAuthenticated())
	require.Equal(t, tokens.Session{}, client.Session())
}

func TestClient_TokenLifecycle(t *testing.T) {
	store := storefake.NewFakeStore()
	client, err := apiclient.New("http://localhost:8000/api", apiclient.WithStore(store))
	require.NoError(t, err)

	require.NoError(t, client.SetTokens("a", "b"))
	require.True(t, client.IsAuthenticated())

	access, err := store.Get(tokens.AccessTokenKey)
	require.NoError(t, err)
	require.Equal(t, "a", access)
	refresh, err := store.Get(tokens.RefreshTokenKey)
	require.NoError(t, err)
	require.Equal(t, "b", refresh)

	require.NoError(t, client.ClearTokens())
	require.False(t, client.IsAuthenticated())
	require.Equal(t, 0, store.Len())
}

func TestClient_DefaultStoreIsInMemory(t *testing.T) {
	client, err := apiclient.New("http://localhost:8000/api")
	require.NoError(t, err)

	require.NoError(t, client.SetTokens("a", "b"))
	require.True(t, client.IsAuthenticated())

	other, err := apiclient.New("http://localhost:8000/api")
	require.NoError(t, err)
	require.False(t, other.IsAuthenticated())
}
