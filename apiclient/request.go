package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jrsteele09/research-platform-client/tokens"
)

const (
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	headerRequestID     = "X-Request-ID"

	contentTypeJSON = "application/json"
)

// RequestOptions describes a single call. The zero value is a GET with the
// default JSON headers.
type RequestOptions struct {
	Method string
	// Headers are merged over {Content-Type: application/json}. Supplying
	// Authorization suppresses the automatic bearer header.
	Headers map[string]string
	Body    []byte
}

type response struct {
	status int
	body   []byte
}

// Request issues a call to endpoint, relative to the base URL.
//
// The current access token is attached as a bearer header. A 401 triggers at
// most one token refresh followed by one retry with the new token, unless the
// endpoint is the refresh endpoint itself. Non-2xx responses and transport
// failures are returned as *APIError. A 204 yields a nil body.
func (c *Client) Request(ctx context.Context, endpoint string, opts *RequestOptions) (json.RawMessage, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}

	header := http.Header{}
	header.Set(headerContentType, contentTypeJSON)
	for k, v := range opts.Headers {
		header.Set(k, v)
	}

	return c.execute(ctx, opts.Method, endpoint, header, opts.Body)
}

func (c *Client) execute(ctx context.Context, method, endpoint string, header http.Header, body []byte) (json.RawMessage, error) {
	if method == "" {
		method = http.MethodGet
	}

	ctx, span := c.tracer.Start(ctx, "apiclient.Request",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", endpoint),
		))
	defer span.End()

	// A caller supplied Authorization header is sent as is.
	var auth tokens.Session
	if header.Get(headerAuthorization) == "" {
		auth = c.tokens.Current()
	}
	sentToken := auth.AccessToken
	if sentToken == "" {
		sentToken = strings.TrimPrefix(header.Get(headerAuthorization), "Bearer ")
	}

	resp, err := c.send(ctx, method, endpoint, header, body, auth)
	if err != nil {
		return nil, c.fail(span, newNetworkError(err))
	}

	if resp.status == http.StatusUnauthorized && c.tokens.Current().HasRefreshToken() && !isRefreshEndpoint(endpoint) {
		span.AddEvent("token refresh")
		refreshed := c.refresh(ctx, sentToken)
		if err := ctx.Err(); err != nil {
			return nil, c.fail(span, newNetworkError(err))
		}
		if refreshed {
			header.Del(headerAuthorization)
			auth = c.tokens.Current()
			span.SetAttributes(attribute.Bool("apiclient.retried", true))

			resp, err = c.send(ctx, method, endpoint, header, body, auth)
			if err != nil {
				return nil, c.fail(span, newNetworkError(err))
			}
		}
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.status))

	out, apiErr := decodeResponse(resp)
	if apiErr != nil {
		return nil, c.fail(span, apiErr)
	}
	return out, nil
}

// send performs one HTTP exchange. The access token of auth, when present,
// is attached as the bearer credential.
func (c *Client) send(ctx context.Context, method, endpoint string, header http.Header, body []byte, auth tokens.Session) (*response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header = header.Clone()
	if auth.HasAccessToken() {
		auth.SetAuthHeader(req)
	}

	requestID := uuid.NewString()
	req.Header.Set(headerRequestID, requestID)

	res, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).
			Str("method", method).
			Str("endpoint", endpoint).
			Str("request_id", requestID).
			Msg("Request failed before a response")
		return nil, err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Int("status", res.StatusCode).
		Str("request_id", requestID).
		Msg("Request completed")

	return &response{status: res.StatusCode, body: data}, nil
}

func decodeResponse(resp *response) (json.RawMessage, *APIError) {
	if resp.status < 200 || resp.status > 299 {
		data := errorData(resp.body)

		message := defaultErrorMessage
		if detail, ok := data["detail"].(string); ok && detail != "" {
			message = detail
		}
		return nil, &APIError{Status: resp.status, Message: message, Data: data}
	}

	if resp.status == http.StatusNoContent || len(bytes.TrimSpace(resp.body)) == 0 {
		return nil, nil
	}

	var raw json.RawMessage
	if err := json.Unmarshal(resp.body, &raw); err != nil {
		return nil, newInvalidBodyError(fmt.Errorf("status %d: %w", resp.status, err))
	}
	return raw, nil
}

// errorData parses an error body. Bodies that are JSON but not an object
// (a list of messages, a bare string) are kept under ErrorsKey; anything
// unparseable yields an empty map.
func errorData(body []byte) map[string]any {
	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil || parsed == nil {
		return map[string]any{}
	}
	if obj, ok := parsed.(map[string]any); ok {
		return obj
	}
	return map[string]any{ErrorsKey: parsed}
}

func (c *Client) fail(span trace.Span, err *APIError) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Message)
	return err
}

func isRefreshEndpoint(endpoint string) bool {
	path, _, _ := strings.Cut(endpoint, "?")
	return path == RefreshEndpoint
}
