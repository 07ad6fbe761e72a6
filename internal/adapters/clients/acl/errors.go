package acl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jsamuelsen/ritual-service/internal/adapters/clients"
	"github.com/jsamuelsen/ritual-service/internal/domain"
)

// ErrorResponse is a provider error body.
// OpenAI nests details under "error"; open-meteo sets "error": true and puts
// the message in "reason".
type ErrorResponse struct {
	Detail ErrorDetail
	Reason string
}

// ErrorDetail is the nested error object used by OpenAI.
type ErrorDetail struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Param   string `json:"param"`
	Code    string `json:"code"`
}

// GetCode returns the provider code, falling back to the error type.
func (e *ErrorResponse) GetCode() string {
	if e.Detail.Code != "" {
		return e.Detail.Code
	}

	return e.Detail.Type
}

// GetMessage returns the most specific message available.
func (e *ErrorResponse) GetMessage() string {
	if e.Detail.Message != "" {
		return e.Detail.Message
	}

	return e.Reason
}

// Provider error codes that map to something more specific than the HTTP status.
const (
	ExternalCodeContentPolicy     = "content_policy_violation"
	ExternalCodeInvalidAPIKey     = "invalid_api_key"
	ExternalCodeRateLimited       = "rate_limit_exceeded"
	ExternalCodeInsufficientQuota = "insufficient_quota"
	ExternalCodeModelNotFound     = "model_not_found"
)

// ParseErrorResponse decodes a provider error body.
// Returns nil if the body is empty, not JSON, or carries no message or code.
func ParseErrorResponse(body string) *ErrorResponse {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil
	}

	var raw struct {
		Error  json.RawMessage `json:"error"`
		Reason string          `json:"reason"`
	}

	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return nil
	}

	errResp := ErrorResponse{Reason: raw.Reason}

	if len(raw.Error) > 0 && raw.Error[0] == '{' {
		if err := json.Unmarshal(raw.Error, &errResp.Detail); err != nil {
			return nil
		}
	}

	if errResp.GetCode() == "" && errResp.GetMessage() == "" {
		return nil
	}

	return &errResp
}

// TranslateError maps a clients error to a domain error.
// Returns nil for nil. Context errors are wrapped, not translated.
func TranslateError(err error, serviceName, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s %s: %w", serviceName, operation, err)
	}

	var se *clients.StatusError
	if errors.As(err, &se) {
		return mapStatusCode(se.StatusCode, ParseErrorResponse(se.Body), serviceName, operation)
	}

	switch {
	case errors.Is(err, clients.ErrCircuitOpen):
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("circuit breaker open during %s", operation))

	case errors.Is(err, clients.ErrMaxRetriesExceeded):
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("max retries exceeded during %s", operation))

	case errors.Is(err, clients.ErrDecode):
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("malformed response to %s", operation))

	default:
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("%s failed: %v", operation, err))
	}
}

func mapStatusCode(status int, errResp *ErrorResponse, serviceName, operation string) error {
	message := defaultMessageForStatus(status, operation)

	if errResp != nil {
		if errResp.GetMessage() != "" {
			message = errResp.GetMessage()
		}

		if mapped := MapExternalCode(errResp.GetCode(), message, errResp.Detail.Param, serviceName, operation); mapped != nil {
			return mapped
		}
	}

	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		field := ""
		if errResp != nil {
			field = errResp.Detail.Param
		}

		return domain.NewValidationError(field, message)

	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.NewForbiddenError(operation, message)

	case http.StatusConflict:
		return domain.NewConflictError(serviceName, message)

	case http.StatusNotFound:
		// A missing endpoint or model is misconfiguration on our side, not a
		// missing entity the caller asked for.
		return domain.NewUnavailableError(serviceName, message)

	default:
		if status >= http.StatusInternalServerError || status == http.StatusTooManyRequests {
			return domain.NewUnavailableError(serviceName, message)
		}

		return domain.NewValidationError("", message)
	}
}

func defaultMessageForStatus(status int, operation string) string {
	switch status {
	case http.StatusNotFound:
		return "endpoint not found"
	case http.StatusBadRequest:
		return "invalid request"
	case http.StatusUnauthorized:
		return "authentication required"
	case http.StatusForbidden:
		return "access denied"
	case http.StatusTooManyRequests:
		return "rate limit exceeded"
	case http.StatusServiceUnavailable:
		return "service temporarily unavailable"
	default:
		return fmt.Sprintf("%s failed with status %d", operation, status)
	}
}

// MapExternalCode maps a provider error code to a domain error.
// Returns nil for codes with no specific mapping so the HTTP status decides.
func MapExternalCode(code, message, param, serviceName, operation string) error {
	switch code {
	case ExternalCodeContentPolicy:
		if param == "" {
			param = "prompt"
		}

		return domain.NewValidationError(param, message)

	case ExternalCodeInvalidAPIKey:
		return domain.NewForbiddenError(operation, "invalid api key")

	case ExternalCodeRateLimited, ExternalCodeInsufficientQuota, ExternalCodeModelNotFound:
		return domain.NewUnavailableError(serviceName, message)

	default:
		return nil
	}
}
