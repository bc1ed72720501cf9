package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrsteele09/research-platform-client/apimodel"
	"github.com/jrsteele09/research-platform-client/internal/errors"
)

type AuthEndpoints struct {
	client *Client
}

// Login authenticates and stores the returned token pair. A persistence
// failure is returned alongside the response; the session is usable anyway.
func (a *AuthEndpoints) Login(ctx context.Context, email, password string) (*apimodel.LoginResponse, error) {
	resp, err := send[apimodel.LoginResponse](ctx, a.client, http.MethodPost, "/auth/login/",
		apimodel.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if resp.Access == "" {
		return nil, newInvalidBodyError(fmt.Errorf("login: %w", errors.ErrEmptyAccessToken))
	}

	if err := a.client.SetTokens(resp.Access, resp.Refresh); err != nil {
		return resp, fmt.Errorf("persist session: %w", err)
	}
	return resp, nil
}

// Logout notifies the server and clears the session whatever the outcome.
func (a *AuthEndpoints) Logout(ctx context.Context) (err error) {
	defer func() {
		if clearErr := a.client.ClearTokens(); clearErr != nil && err == nil {
			err = fmt.Errorf("clear session: %w", clearErr)
		}
	}()
	return a.client.do(ctx, http.MethodPost, "/auth/logout/", nil, nil)
}

// Register creates an account. Data is usually an apimodel.RegisterRequest.
func (a *AuthEndpoints) Register(ctx context.Context, data any) (*apimodel.User, error) {
	return send[apimodel.User](ctx, a.client, http.MethodPost, "/auth/register/", data)
}

func (a *AuthEndpoints) CurrentUser(ctx context.Context) (*apimodel.User, error) {
	return get[apimodel.User](ctx, a.client, "/auth/users/me/", nil)
}

func (a *AuthEndpoints) UpdateProfile(ctx context.Context, data any) (*apimodel.User, error) {
	return send[apimodel.User](ctx, a.client, http.MethodPut, "/auth/users/me/", data)
}

func (a *AuthEndpoints) Users(ctx context.Context, params Params) (*apimodel.Page[apimodel.User], error) {
	return get[apimodel.Page[apimodel.User]](ctx, a.client, "/auth/users/", params)
}

// PendingUsers lists registrations awaiting approval. Admin only.
func (a *AuthEndpoints) PendingUsers(ctx context.Context, params Params) (*apimodel.Page[apimodel.User], error) {
	return get[apimodel.Page[apimodel.User]](ctx, a.client, "/auth/users/pending/", params)
}

// ApproveUser approves or rejects a registration. Admin only.
func (a *AuthEndpoints) ApproveUser(ctx context.Context, id int, approved bool) (*apimodel.User, error) {
	return send[apimodel.User](ctx, a.client, http.MethodPatch, fmt.Sprintf("/auth/users/%d/approve/", id),
		apimodel.UserApproval{IsApproved: approved})
}
