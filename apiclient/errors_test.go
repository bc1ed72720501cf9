package apiclient_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/research-platform-client/apiclient"
)

func TestAPIError_Body(t *testing.T) {
	f := setupTestFixture(t, signedIn)
	f.api.handle("/services/service-requests/", respond(http.StatusBadRequest, map[string]any{
		"detail": "Validation failed",
		"field_errors": map[string]any{
			"title": []string{"This field is required."},
		},
		"priority": []string{"\"asap\" is not a valid choice."},
		"code":     "invalid",
	}))

	_, err := f.client.Services.CreateServiceRequest(context.Background(), map[string]any{"priority": "asap"})
	apiErr, ok := apiclient.AsAPIError(err)
	require.True(t, ok)
	require.Equal(t, "api error (status 400): Validation failed", apiErr.Error())

	body, err := apiErr.Body()
	require.NoError(t, err)
	require.Equal(t, "Validation failed", body.Detail)
	require.Equal(t, []string{"This field is required."}, body.FieldErrors["title"])
	require.Equal(t, "invalid", body.Extra["code"])

	require.Equal(t, map[string][]string{
		"title":    {"This field is required."},
		"priority": {"\"asap\" is not a valid choice."},
	}, apiErr.FieldErrors())
}

func TestStatusOf(t *testing.T) {
	status, ok := apiclient.StatusOf(errors.New("plain"))
	require.False(t, ok)
	require.Zero(t, status)

	f := setupTestFixture(t, signedIn)
	_, err := f.client.Request(context.Background(), "/missing/", nil)

	status, ok = apiclient.StatusOf(err)
	require.True(t, ok)
	require.Equal(t, http.StatusNotFound, status)
	require.True(t, apiclient.IsStatus(err, http.StatusNotFound))
	require.False(t, apiclient.IsNetworkError(err))
}
