package pgerr

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestImmutable(t *testing.T) {
	e := New(400, "INVALID_REQUEST", "invalid request: some or all request parameters are invalid")
	changedE := e.Msg("%s", "changed")
	if e.Message == "changed" {
		t.Errorf("Expected immutable error with message not equal to 'changed', got '%s'", e.Message)
	}
	if changedE.Message != "changed" {
		t.Errorf("Expected immutable error with message equal to 'changed', got '%s'", changedE.Message)
	}
}

func TestWithExtrasDoesNotTouchSentinel(t *testing.T) {
	e := ErrUpstreamUnavailable.WithExtras(Extras{"range": "2026-10-05|2026-10-12"})
	assert.Nil(t, ErrUpstreamUnavailable.Extras)
	assert.Equal(t, "2026-10-05|2026-10-12", (*e.Extras)["range"])
	assert.Equal(t, 500, e.StatusCode)
}

func TestErrorsAs(t *testing.T) {
	wrapped := errors.Wrap(ErrUnauthorized, "admin")
	var apiErr *APIError
	assert.True(t, errors.As(wrapped, &apiErr))
	assert.Equal(t, CodeUnauthorized, apiErr.ErrorCode)
	assert.Equal(t, "UNAUTHORIZED: unauthorized", apiErr.Error())
}
