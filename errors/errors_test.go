package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestAppErrorError(t *testing.T) {
	e := SessionNotFound("sess-1")
	if e.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected 404, got %d", e.HTTPStatus)
	}
	if e.Code != ErrCodeSessionNotFound {
		t.Errorf("unexpected code: %s", e.Code)
	}
	if e.Details["session_id"] != "sess-1" {
		t.Errorf("expected session id detail, got %+v", e.Details)
	}
}

func TestWithCauseAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	e := ProviderUnavailable(cause)
	if e.Unwrap() != cause {
		t.Fatal("expected Unwrap to return the cause")
	}
	if !e.Retryable {
		t.Fatal("provider unavailability should be retryable")
	}
}

func TestRetryableCodes(t *testing.T) {
	cases := map[ErrorCode]bool{
		ErrCodeProviderUnavailable: true,
		ErrCodeProviderTimeout:     true,
		ErrCodeAgentTimeout:        true,
		ErrCodeAgentUnavailable:    false,
		ErrCodeUnauthorized:        false,
		ErrCodeSessionNotFound:     false,
	}
	for code, want := range cases {
		if got := IsRetryableCode(code); got != want {
			t.Errorf("IsRetryableCode(%s) = %v, want %v", code, got, want)
		}
	}
}

func TestAsAppError(t *testing.T) {
	e := AgentRuntime("tasks", fmt.Errorf("boom"))
	wrapped := fmt.Errorf("orchestrate: %w", e)

	got, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to find the AppError")
	}
	if got.Code != ErrCodeAgentRuntime {
		t.Errorf("unexpected code: %s", got.Code)
	}

	if _, ok := AsAppError(fmt.Errorf("plain")); ok {
		t.Fatal("plain error should not convert")
	}
}

func TestToResponse(t *testing.T) {
	e := Unauthorized("Invalid API key")
	resp := e.ToResponse()
	if resp.Error.Code != ErrCodeUnauthorized {
		t.Errorf("unexpected code: %s", resp.Error.Code)
	}
	if resp.Error.Message != "Invalid API key" {
		t.Errorf("unexpected message: %s", resp.Error.Message)
	}
}

func TestWithDetail(t *testing.T) {
	e := Validation("bad payload").WithDetail("field", "audio")
	if e.Details["field"] != "audio" {
		t.Fatalf("expected detail, got %+v", e.Details)
	}
}
