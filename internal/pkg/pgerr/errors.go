package pgerr

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const (
	CodeNotFound            = "NOT_FOUND"
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInternalError       = "INTERNAL_ERROR"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeTooManyRequests     = "TOO_MANY_REQUESTS"
)

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = New(fiber.StatusNotFound, CodeNotFound, "resource not found with given parameters")

	// ErrInvalidReq is returned when a request is invalid.
	ErrInvalidReq = New(fiber.StatusBadRequest, CodeInvalidRequest, "invalid request: some or all request parameters are invalid")

	// ErrInternalError is returned when an internal error occurs.
	ErrInternalError = New(fiber.StatusInternalServerError, CodeInternalError, "internal server error occurred")

	// ErrUpstreamUnavailable is returned when match data could not be fetched completely. The
	// response is never cached, so a retry may succeed.
	ErrUpstreamUnavailable = New(fiber.StatusInternalServerError, CodeUpstreamUnavailable, "match data is temporarily unavailable")

	// ErrUnauthorized is returned when an admin request carries no valid key.
	ErrUnauthorized = New(fiber.StatusUnauthorized, CodeUnauthorized, "unauthorized")

	// ErrTooManyRequests is returned when a client asks for too many uncached date ranges.
	ErrTooManyRequests = New(fiber.StatusTooManyRequests, CodeTooManyRequests, "too many requests: rankings over custom date ranges are rate limited")
)

type Extras map[string]interface{}

type APIError struct {
	StatusCode int    `example:"400"`
	ErrorCode  string `example:"INVALID_REQUEST"`
	Message    string `example:"invalid request: some or all request parameters are invalid"`
	Extras     *Extras
}

func New(statusCode int, errorCode string, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

func (e APIError) Msg(format string, parts ...interface{}) *APIError {
	e.Message = fmt.Sprintf(format, parts...)
	return &e
}

func (e APIError) WithExtras(extras Extras) *APIError {
	e.Extras = &extras
	return &e
}

func NewInvalidViolations(violations interface{}) *APIError {
	// copy ErrInvalidReq as e
	e := *ErrInvalidReq
	e.Extras = &Extras{
		"violations": violations,
	}
	return &e
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Message)
}
