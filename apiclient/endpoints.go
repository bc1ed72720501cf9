package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
)

// do marshals in as the JSON body, when present, and decodes the response
// into out, when both are present.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body []byte
	if in != nil {
		var err error
		if body, err = json.Marshal(in); err != nil {
			return newInvalidInputError(err)
		}
	}

	raw, err := c.Request(ctx, path, &RequestOptions{Method: method, Body: body})
	if err != nil {
		return err
	}
	return decodeInto(raw, out)
}

func decodeInto(raw json.RawMessage, out any) error {
	if out == nil || raw == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return newInvalidBodyError(err)
	}
	return nil
}

func get[T any](ctx context.Context, c *Client, path string, params Params) (*T, error) {
	out := new(T)
	if err := c.do(ctx, http.MethodGet, withQuery(path, params), nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func send[T any](ctx context.Context, c *Client, method, path string, in any) (*T, error) {
	out := new(T)
	if err := c.do(ctx, method, path, in, out); err != nil {
		return nil, err
	}
	return out, nil
}
