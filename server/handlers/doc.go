// Package handlers implements the REST API surface: session management,
// batch transcription, agent orchestration, persona discovery, account
// management and operational endpoints.
package handlers
