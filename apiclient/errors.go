package apiclient

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/jrsteele09/research-platform-client/apimodel"
	internalerrors "github.com/jrsteele09/research-platform-client/internal/errors"
)

const (
	defaultErrorMessage = "Request failed"
	networkErrorMessage = "Network error"
	invalidBodyMessage  = "Invalid response body"
	invalidInputMessage = "Invalid request body"

	// OriginalErrorKey holds the underlying failure in Data for status-0 errors.
	OriginalErrorKey = "originalError"
	// ErrorsKey holds an error body that parsed as JSON but was not an object.
	ErrorsKey = "errors"
)

// APIError is the single error kind returned by the client.
// Status is the HTTP status, or 0 when no usable response was obtained
// (connection failure, cancelled context, unreadable or non-JSON body).
type APIError struct {
	Status  int
	Message string
	Data    map[string]any

	err error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		if e.err != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.err)
		}
		return e.Message
	}
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// Unwrap exposes the transport failure behind a status-0 error.
func (e *APIError) Unwrap() error {
	return e.err
}

// Body decodes Data into the typed error view.
func (e *APIError) Body() (*apimodel.ErrorBody, error) {
	var body apimodel.ErrorBody
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &body,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(e.Data); err != nil {
		return nil, fmt.Errorf("decode error body: %w", err)
	}
	return &body, nil
}

// FieldErrors collects per-field validation messages, whether the server
// nested them under field_errors or returned them at the top level.
func (e *APIError) FieldErrors() map[string][]string {
	out := make(map[string][]string)
	body, err := e.Body()
	if err != nil {
		return out
	}
	for k, v := range body.FieldErrors {
		out[k] = v
	}
	for k, v := range body.Extra {
		if msgs, ok := stringList(v); ok {
			out[k] = msgs
		}
	}
	return out
}

func stringList(v any) ([]string, bool) {
	items, ok := v.([]any)
	if !ok || len(items) == 0 {
		return nil, false
	}
	msgs := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		msgs = append(msgs, s)
	}
	return msgs, true
}

func newLocalError(message string, err error) *APIError {
	return &APIError{
		Status:  0,
		Message: message,
		Data:    map[string]any{OriginalErrorKey: err.Error()},
		err:     err,
	}
}

func newNetworkError(err error) *APIError {
	return newLocalError(networkErrorMessage, err)
}

func newInvalidBodyError(err error) *APIError {
	return newLocalError(invalidBodyMessage, fmt.Errorf("%w: %w", internalerrors.ErrInvalidResponse, err))
}

func newInvalidInputError(err error) *APIError {
	return newLocalError(invalidInputMessage, fmt.Errorf("%w: %w", internalerrors.ErrInvalidRequest, err))
}

// AsAPIError returns the APIError in err's chain, if any.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNetworkError reports whether err is a status-0 APIError caused by the
// transport rather than by an unusable request or response body.
func IsNetworkError(err error) bool {
	apiErr, ok := AsAPIError(err)
	if !ok || apiErr.Status != 0 {
		return false
	}
	return !errors.Is(err, internalerrors.ErrInvalidResponse) && !errors.Is(err, internalerrors.ErrInvalidRequest)
}

// StatusOf returns the HTTP status carried by err. ok is false when err is
// not an APIError.
func StatusOf(err error) (status int, ok bool) {
	apiErr, ok := AsAPIError(err)
	if !ok {
		return 0, false
	}
	return apiErr.Status, true
}

// IsStatus reports whether err is an APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == status
}
