package deepgram

import (
	"strings"

	"github.com/skillsenselab/aurascribe/transcription"
)

// --- Deepgram /v1/listen response types ---

type listenResponse struct {
	Metadata listenMetadata `json:"metadata"`
	Results  listenResults  `json:"results"`
}

type listenMetadata struct {
	Duration float64 `json:"duration"`
}

type listenResults struct {
	Language   string            `json:"language"`
	Channels   []listenChannel   `json:"channels"`
	Utterances []listenUtterance `json:"utterances"`
}

type listenChannel struct {
	Alternatives []listenAlternative `json:"alternatives"`
}

type listenAlternative struct {
	Transcript string       `json:"transcript"`
	Confidence float64      `json:"confidence"`
	Words      []listenWord `json:"words"`
}

type listenWord struct {
	Word       string  `json:"word"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence"`
}

type listenUtterance struct {
	Speaker    int     `json:"speaker"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Transcript string  `json:"transcript"`
}

// toResult flattens the channel/alternative structure into a Result.
// Transcripts across alternatives are space-joined and the highest
// alternative confidence wins.
func (r *listenResponse) toResult(model, language string) *transcription.Result {
	var parts []string
	var confidence float64
	var wordConfidences []float64
	var wordTimestamps []transcription.WordTimestamp

	for _, channel := range r.Results.Channels {
		for _, alt := range channel.Alternatives {
			if alt.Transcript != "" {
				parts = append(parts, alt.Transcript)
			}
			if alt.Confidence > confidence {
				confidence = alt.Confidence
			}
			for _, word := range alt.Words {
				wordConfidences = append(wordConfidences, word.Confidence)
				wordTimestamps = append(wordTimestamps, transcription.WordTimestamp{
					Word:       word.Word,
					Start:      word.Start,
					End:        word.End,
					Confidence: word.Confidence,
				})
			}
		}
	}

	var speakerSegments []transcription.SpeakerSegment
	for _, utt := range r.Results.Utterances {
		speakerSegments = append(speakerSegments, transcription.SpeakerSegment{
			Speaker:    utt.Speaker,
			Start:      utt.Start,
			End:        utt.End,
			Transcript: utt.Transcript,
		})
	}

	detected := r.Results.Language
	if detected == "" {
		detected = language
	}

	return &transcription.Result{
		Success:         true,
		Transcript:      strings.TrimSpace(strings.Join(parts, " ")),
		Confidence:      confidence,
		WordCount:       len(wordTimestamps),
		ModelUsed:       model,
		Language:        detected,
		WordConfidences: wordConfidences,
		WordTimestamps:  wordTimestamps,
		SpeakerSegments: speakerSegments,
		AudioDuration:   r.Metadata.Duration,
	}
}
