// Package gateway is the WebSocket ingest surface for live dictation.
//
// Each connection walks a small state machine: the client authenticates
// with a connect event, starts a recording session, streams base64 audio
// chunks, and stops. Chunks are processed strictly in arrival order on
// the connection's read loop; every successfully transcribed chunk is
// appended to the session transcript and the full accumulated transcript
// is pushed back as a transcript_update. Stopping returns the
// accumulated transcript; raw audio is never re-transcribed as one blob.
package gateway
