// Package validation provides input validation for API handlers and
// websocket event payloads.
//
// It supports struct tag validation (via the validator library) for request
// bodies, and a fluent Validator for programmatic checks where tags do not
// fit, such as websocket events decoded into loose maps.
//
// # Struct Tag Validation
//
//	type TranscribeRequest struct {
//	    Audio    string `json:"audio" validate:"required,base64"`
//	    Language string `json:"language" validate:"omitempty,bcp47_language_tag"`
//	}
//	err := validation.Validate(req)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("session_id", sessionID)
//	if appErr := v.Validate(); appErr != nil { ... }
package validation
