// Package transcription defines the provider interface and common types
// for interacting with speech-to-text backends.
//
// Provider failures are absorbed into the Result: a failed call returns
// Success=false with a human-readable Error instead of a Go error, so
// callers in the streaming path never have to distinguish failure modes.
//
// # Backends
//
//   - transcription/deepgram: self-hosted Deepgram over HTTP
package transcription
