package errors_test

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/Rajat-oss/Skillspring-AI-2/internal/errors"
)

func TestDomainError_MessageFormat(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := errors.Unavailable("executing request", cause)

	msg := err.Error()
	if !strings.Contains(msg, "UNAVAILABLE") {
		t.Errorf("Error() = %q, want the type prefix", msg)
	}
	if !strings.Contains(msg, "connection refused") {
		t.Errorf("Error() = %q, want the cause included", msg)
	}

	withoutCause := errors.NotFound("snapshot missing", nil)
	if got := withoutCause.Error(); got != "NOT_FOUND: snapshot missing" {
		t.Errorf("Error() = %q", got)
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := errors.Internal("decoding response", cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is did not reach the wrapped cause")
	}
}

func TestDomainError_CapturesStack(t *testing.T) {
	tests := []struct {
		name string
		err  *errors.DomainError
	}{
		{"with cause", errors.RateLimit("throttled", stderrors.New("429"))},
		{"without cause", errors.InvalidInput("bad category", nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.err.StackTrace()) == 0 {
				t.Error("no stack captured")
			}
		})
	}
}

func TestConstructorsSetType(t *testing.T) {
	tests := []struct {
		err  *errors.DomainError
		want errors.ErrorType
	}{
		{errors.NotFound("x", nil), errors.ErrTypeNotFound},
		{errors.InvalidInput("x", nil), errors.ErrTypeInvalidInput},
		{errors.Internal("x", nil), errors.ErrTypeInternal},
		{errors.Unavailable("x", nil), errors.ErrTypeUnavailable},
		{errors.RateLimit("x", nil), errors.ErrTypeRateLimit},
	}

	for _, tt := range tests {
		if tt.err.Type != tt.want {
			t.Errorf("Type = %s, want %s", tt.err.Type, tt.want)
		}
	}
}
