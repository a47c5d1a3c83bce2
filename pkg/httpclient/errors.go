package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/thelegendaryarticuno/myfashion/pkg/errors"
)

// messageBody is the error body shape the fashion backend returns on
// non-2xx responses: a bare human-readable message.
type messageBody struct {
	Message string `json:"message"`
}

// ParseResponseError reads the body of a non-2xx HTTP response and
// translates it into an AppError, preserving the upstream message verbatim
// so it can be surfaced to the user. The response body is fully consumed
// and closed.
func ParseResponseError(resp *http.Response, upstream string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", upstream, resp.StatusCode, err)
	}

	message := ""
	var body messageBody
	if json.Unmarshal(bodyBytes, &body) == nil {
		message = body.Message
	}
	if message == "" {
		message = string(bodyBytes)
	}

	return mapUpstreamError(resp.StatusCode, message, upstream)
}

// mapUpstreamError translates an upstream HTTP status code and message into
// an AppError with equivalent semantics.
func mapUpstreamError(status int, message, upstream string) error {
	switch {
	case status == http.StatusNotFound:
		return apperrors.NotFound(upstream, message)
	case status == http.StatusBadRequest:
		return apperrors.InvalidInput(message)
	case status == http.StatusUnauthorized:
		return apperrors.Unauthorized(message)
	case status == http.StatusForbidden:
		return apperrors.Forbidden(message)
	case status == http.StatusConflict:
		return apperrors.Conflict(message)
	case status == http.StatusGone:
		return apperrors.Gone(message)
	case status == http.StatusServiceUnavailable:
		return apperrors.Unavailable(message)
	case status >= 500:
		return fmt.Errorf("%s server error (%d): %s", upstream, status, message)
	default:
		return &apperrors.AppError{
			Code:    "UPSTREAM_ERROR",
			Message: message,
			Status:  status,
		}
	}
}

// IsClientError reports whether the HTTP status code is a 4xx client error.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}
