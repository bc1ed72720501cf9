package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jrsteele09/research-platform-client/apimodel"
	"github.com/jrsteele09/research-platform-client/internal/errors"
	"github.com/jrsteele09/research-platform-client/tokens"
)

// RefreshAccessToken exchanges the refresh token for a new access token. The
// refresh token itself is kept. A rejected or failed exchange clears the
// session; a cancelled ctx does not. It never returns an error: the result
// only says whether a retry is worthwhile.
func (c *Client) RefreshAccessToken(ctx context.Context) bool {
	return c.refresh(ctx, "")
}

// refresh runs one refresh. With coalescing enabled concurrent callers share
// a single call, and a caller whose rejected token has already been replaced
// reuses the replacement instead of refreshing again. The shared call is
// detached from any one caller's cancellation; each caller only stops
// waiting when its own ctx ends.
func (c *Client) refresh(ctx context.Context, rejectedToken string) bool {
	if !c.coalesceRefresh {
		return c.doRefresh(ctx)
	}

	if current := c.tokens.Current(); rejectedToken != "" && current.HasAccessToken() && current.AccessToken != rejectedToken {
		return true
	}

	shared := context.WithoutCancel(ctx)
	ch := c.refreshGroup.DoChan("refresh", func() (any, error) {
		return c.doRefresh(shared), nil
	})
	select {
	case res := <-ch:
		return res.Val.(bool)
	case <-ctx.Done():
		return false
	}
}

func (c *Client) doRefresh(ctx context.Context) bool {
	session := c.tokens.Current()
	if !session.HasRefreshToken() {
		c.logger.Debug().Msg("No refresh token, skipping token refresh")
		return false
	}

	ctx, span := c.tracer.Start(ctx, "apiclient.RefreshAccessToken")
	defer span.End()

	access, err := c.exchange(ctx, session.RefreshToken)
	if err != nil {
		span.RecordError(err)
		if ctx.Err() != nil {
			c.logger.Debug().Err(err).Msg("Token refresh abandoned, session kept")
			return false
		}
		c.logger.Err(err).Str("endpoint", RefreshEndpoint).Msg("Token refresh failed")
		if _, clearErr := c.tokens.ClearSession(session.RefreshToken); clearErr != nil {
			c.logger.Warn().Err(clearErr).Msg("Failed to clear persisted tokens")
		}
		return false
	}

	replaced, err := c.tokens.ReplaceAccessToken(session.RefreshToken, access)
	if !replaced {
		c.logger.Debug().Msg("Session changed during token refresh, result discarded")
		return false
	}
	if err != nil {
		c.logger.Warn().Err(err).Msg("Refreshed access token was not persisted")
	}
	c.logger.Debug().Msg("Access token refreshed")
	return true
}

func (c *Client) exchange(ctx context.Context, refreshToken string) (string, error) {
	body, err := json.Marshal(apimodel.RefreshRequest{Refresh: refreshToken})
	if err != nil {
		return "", err
	}

	header := http.Header{}
	header.Set(headerContentType, contentTypeJSON)

	resp, err := c.send(ctx, http.MethodPost, RefreshEndpoint, header, body, tokens.Session{})
	if err != nil {
		return "", newNetworkError(err)
	}

	raw, apiErr := decodeResponse(resp)
	if apiErr != nil {
		return "", apiErr
	}

	var out apimodel.RefreshResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode refresh response: %w", err)
	}
	if out.Access == "" {
		return "", errors.ErrEmptyAccessToken
	}
	return out.Access, nil
}
