package gateway

import "github.com/skillsenselab/aurascribe/transcription"

// Inbound event types.
const (
	EventConnect        = "connect"
	EventStartRecording = "start_recording"
	EventAudioChunk     = "audio_chunk"
	EventStopRecording  = "stop_recording"
	EventGetStatus      = "get_status"
)

// Outbound event types.
const (
	EventConnected        = "connected"
	EventRecordingStarted = "recording_started"
	EventTranscriptUpdate = "transcript_update"
	EventChunkReceived    = "chunk_received"
	EventRecordingStopped = "recording_stopped"
	EventStatus           = "status"
	EventError            = "error"
)

// inboundEvent is the envelope for every client message. Only the fields
// matching the event type are read.
type inboundEvent struct {
	Type string `json:"type"`

	// connect
	APIKey string `json:"api_key,omitempty"`
	Token  string `json:"token,omitempty"`

	// start_recording
	Language       string            `json:"language,omitempty"`
	Model          string            `json:"model,omitempty"`
	Persona        string            `json:"persona,omitempty"`
	PatientContext map[string]string `json:"patient_context,omitempty"`

	// audio_chunk
	Audio   string `json:"audio,omitempty"`
	IsFinal bool   `json:"is_final,omitempty"`
}

// outboundEvent is the envelope for every server message.
type outboundEvent struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id,omitempty"`

	// transcript_update and recording_stopped
	Transcript      string                         `json:"transcript,omitempty"`
	ChunkIndex      int                            `json:"chunk_index,omitempty"`
	WordCount       int                            `json:"word_count,omitempty"`
	ChunkCount      int                            `json:"chunk_count,omitempty"`
	Confidence      float64                        `json:"confidence,omitempty"`
	IsFinal         bool                           `json:"is_final,omitempty"`
	Success         bool                           `json:"success,omitempty"`
	SpeakerSegments []transcription.SpeakerSegment `json:"speaker_segments,omitempty"`

	// chunk_received
	Transcribed bool   `json:"transcribed"`
	Detail      string `json:"detail,omitempty"`

	// status
	Active    bool   `json:"active,omitempty"`
	Recording bool   `json:"recording,omitempty"`
	Language  string `json:"language,omitempty"`
	Model     string `json:"model,omitempty"`

	// error
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
