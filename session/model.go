package session

import (
	"strings"
	"time"
)

// Status is the lifecycle state of a session.
type Status string

const (
	StatusActive  Status = "active"
	StatusStopped Status = "stopped"
	StatusExpired Status = "expired"
)

// Session is one live dictation encounter.
type Session struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id,omitempty"`
	Language      string `json:"language"`
	SelectedModel string `json:"selected_model"`
	Status        Status `json:"status"`
	Transcript    string `json:"transcript"`
	ChunkCount    int    `json:"chunk_count"`
	Persona       string `json:"persona,omitempty"`
	// PatientContext carries opaque clinical context strings. The core
	// pipeline stores and returns them without interpretation.
	PatientContext map[string]string `json:"patient_context,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// IsActive reports whether the session still accepts transcript text.
func (s *Session) IsActive() bool {
	return s.Status == StatusActive
}

// AppendTranscript appends newly recognized text to the transcript buffer,
// space-joined. Appends are ignored for non-active sessions so the
// transcript never mutates after stop.
func (s *Session) AppendTranscript(text string) bool {
	if !s.IsActive() {
		return false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	if s.Transcript == "" {
		s.Transcript = text
	} else {
		s.Transcript += " " + text
	}
	return true
}

// WordCount returns the number of space-separated words in the transcript.
func (s *Session) WordCount() int {
	if s.Transcript == "" {
		return 0
	}
	return len(strings.Fields(s.Transcript))
}
