package planka

import (
	"net/http"
	"strings"

	"github.com/juju/errors"
)

// APIError is the raw failure returned by the Planka API: the HTTP status
// and the server's message body. It is always wrapped in one of the
// juju/errors classifications, so callers match on errors.IsNotFound,
// errors.IsForbidden, errors.IsNotValid, errors.IsAlreadyExists, or
// IsTransient below.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return http.StatusText(e.StatusCode)
	}
	return e.Body
}

// classifyResponse turns a non-2xx response into a typed failure.
func classifyResponse(op string, status int, body []byte) error {
	apiErr := &APIError{
		StatusCode: status,
		Body:       strings.TrimSpace(string(body)),
	}
	switch {
	case status == http.StatusNotFound:
		return errors.NewNotFound(apiErr, op)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return errors.NewForbidden(apiErr, op)
	case status == http.StatusConflict:
		return errors.NewAlreadyExists(apiErr, op)
	case status == http.StatusTooManyRequests || status >= 500:
		// Transient server-side failure; the transport has already
		// exhausted its retry budget by the time this is seen.
		return errors.Annotatef(apiErr, "%s: HTTP %d", op, status)
	case status >= 400:
		return errors.NewNotValid(apiErr, op)
	}
	return errors.Annotatef(apiErr, "%s: unexpected HTTP %d", op, status)
}

// StatusCode extracts the HTTP status from a classified failure, or 0 when
// the error did not come from an API response.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsTransient reports whether the failure is a 429 or 5xx response.
func IsTransient(err error) bool {
	code := StatusCode(err)
	return code == http.StatusTooManyRequests || code >= 500
}
