package validation

import (
	"encoding/base64"
	"testing"

	"github.com/skillsenselab/aurascribe/errors"
)

func TestValidatorRequired(t *testing.T) {
	v := New().Required("session_id", "").Required("event", "start_recording")

	appErr := v.Validate()
	if appErr == nil {
		t.Fatal("expected validation error")
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("unexpected code: %s", appErr.Code)
	}
	if len(v.Errors()) != 1 {
		t.Errorf("expected 1 field error, got %d", len(v.Errors()))
	}
	if v.Errors()[0].Field != "session_id" {
		t.Errorf("unexpected field: %s", v.Errors()[0].Field)
	}
}

func TestValidatorRequiredUUID(t *testing.T) {
	if New().RequiredUUID("id", "not-a-uuid").Validate() == nil {
		t.Error("expected error for malformed UUID")
	}
	if New().RequiredUUID("id", "00000000-0000-0000-0000-000000000000").Validate() == nil {
		t.Error("expected error for nil UUID")
	}
	if err := New().RequiredUUID("id", "0b9af23c-17a9-44ac-9a75-7d24e2fcfe3f").Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidatorRequiredBase64(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("audio bytes"))
	if err := New().RequiredBase64("audio", encoded).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if New().RequiredBase64("audio", "!!not base64!!").Validate() == nil {
		t.Error("expected error for invalid base64")
	}
	if New().RequiredBase64("audio", "").Validate() == nil {
		t.Error("expected error for empty value")
	}
}

func TestValidatorLanguageTag(t *testing.T) {
	valid := []string{"", "fr", "en", "fr-CA", "en-US"}
	for _, tag := range valid {
		if err := New().LanguageTag("language", tag).Validate(); err != nil {
			t.Errorf("LanguageTag(%q): unexpected error: %v", tag, err)
		}
	}
	invalid := []string{"F", "français", "1234"}
	for _, tag := range invalid {
		if New().LanguageTag("language", tag).Validate() == nil {
			t.Errorf("LanguageTag(%q): expected error", tag)
		}
	}
}

func TestValidatorOneOf(t *testing.T) {
	allowed := []string{"low", "medium", "high"}
	if err := New().OneOf("confidence", "medium", allowed).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if New().OneOf("confidence", "extreme", allowed).Validate() == nil {
		t.Error("expected error for disallowed value")
	}
}

func TestStructValidate(t *testing.T) {
	type transcribeRequest struct {
		Audio    string `json:"audio" validate:"required,base64"`
		Language string `json:"language" validate:"omitempty,bcp47_language_tag"`
	}

	encoded := base64.StdEncoding.EncodeToString([]byte("pcm"))
	if err := Validate(transcribeRequest{Audio: encoded, Language: "fr-CA"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err := Validate(transcribeRequest{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("unexpected code: %s", appErr.Code)
	}
}
