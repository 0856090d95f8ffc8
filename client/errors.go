package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"

	interrors "github.com/jrsteele09/go-tenant-client/internal/errors"
)

// APIError carries a non-success backend response. Detail is the backend's
// own message when the error body provided one.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// Unwrap maps the status onto the error taxonomy so callers can branch with
// errors.Is without inspecting status codes.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return interrors.ErrNotFound
	}
	return interrors.ErrRequestFailed
}

func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apiErr
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Detail = payload.Detail
	}
	return apiErr
}

// Fallback applies the per-operation error taxonomy: auth failures pass
// through untouched for the session layer, backend detail messages are
// surfaced verbatim, and anything else is wrapped with the operation's
// generic message.
func Fallback(err error, msg string) error {
	if err == nil {
		return nil
	}
	if interrors.Is(err, interrors.ErrAuthInvalid) {
		return err
	}
	var apiErr *APIError
	if interrors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr
	}
	return errors.Wrap(err, msg)
}
