package transcription

// Request holds parameters for a transcription call.
type Request struct {
	// Audio is the raw audio payload. Each chunk is a self-contained,
	// independently decodable unit.
	Audio []byte `json:"-"`
	// Language is the expected language of the audio (e.g. "fr-CA").
	Language string `json:"language,omitempty"`
	// Model is the transcription model to use.
	Model string `json:"model,omitempty"`
	// DetectLanguage asks the provider to detect the language instead
	// of using the Language hint.
	DetectLanguage bool `json:"detect_language,omitempty"`
}

// Result holds the outcome of a transcription call, successful or not.
type Result struct {
	// Success reports whether a transcript was produced.
	Success bool `json:"success"`
	// Transcript is the recognized text. Empty on failure.
	Transcript string `json:"transcript"`
	// Confidence is the provider's confidence score (0.0 to 1.0).
	Confidence float64 `json:"confidence"`
	// WordCount is the number of recognized words.
	WordCount int `json:"word_count"`
	// ModelUsed is the model that produced the transcript, which may
	// differ from the requested model after fallback.
	ModelUsed string `json:"model_used,omitempty"`
	// Language is the detected or requested language.
	Language string `json:"language,omitempty"`
	// WordConfidences holds per-word confidence scores.
	WordConfidences []float64 `json:"word_confidences,omitempty"`
	// WordTimestamps holds per-word timing and confidence.
	WordTimestamps []WordTimestamp `json:"word_timestamps,omitempty"`
	// SpeakerSegments holds speaker-diarized utterances.
	SpeakerSegments []SpeakerSegment `json:"speaker_segments,omitempty"`
	// AudioDuration is the total audio duration in seconds.
	AudioDuration float64 `json:"audio_duration,omitempty"`
	// FallbackAttempted reports whether any fallback combination was tried.
	FallbackAttempted bool `json:"fallback_attempted,omitempty"`
	// Error is a human-readable failure description when Success is false.
	Error string `json:"error,omitempty"`
}

// WordTimestamp is per-word timing and confidence metadata.
type WordTimestamp struct {
	Word       string  `json:"word"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence"`
}

// SpeakerSegment is one speaker-attributed utterance.
type SpeakerSegment struct {
	Speaker    int     `json:"speaker"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Transcript string  `json:"transcript"`
}
