package transcription

import "context"

// Provider is the interface that transcription backends must implement.
type Provider interface {
	// Name returns the backend name.
	Name() string

	// IsAvailable checks if the backend is reachable.
	IsAvailable(ctx context.Context) bool

	// Transcribe sends audio for transcription. Provider-level failures
	// are reported in the Result (Success=false); the returned error is
	// reserved for context cancellation.
	Transcribe(ctx context.Context, req Request) (*Result, error)
}
