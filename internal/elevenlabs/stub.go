package elevenlabs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
)

// StubSynthesizer implements the Synthesizer interface with deterministic
// output. It is intended for CI and local development where the real
// ElevenLabs API is unavailable.
type StubSynthesizer struct {
	log *slog.Logger
}

// NewStubSynthesizer returns a stub that generates silent audio proportional
// to the input text length.
func NewStubSynthesizer(logger *slog.Logger) *StubSynthesizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &StubSynthesizer{log: logger}
}

func (s *StubSynthesizer) stubAudio(voiceID string, req SynthesizeRequest) ([]byte, error) {
	if voiceID == "" {
		return nil, fmt.Errorf("elevenlabs: voice_id is required")
	}
	if req.Text == "" {
		return nil, fmt.Errorf("elevenlabs: text is required")
	}

	audio := make([]byte, len(req.Text)*320)

	s.log.Info("stub synthesis",
		"text_length", len(req.Text),
		"voice_id", voiceID,
		"bytes", len(audio),
	)
	return audio, nil
}

// Synthesize returns deterministic silent audio.
func (s *StubSynthesizer) Synthesize(_ context.Context, voiceID string, req SynthesizeRequest) ([]byte, error) {
	return s.stubAudio(voiceID, req)
}

// SynthesizeStream returns an io.ReadCloser streaming deterministic silent audio.
func (s *StubSynthesizer) SynthesizeStream(_ context.Context, voiceID string, req SynthesizeRequest) (io.ReadCloser, error) {
	audio, err := s.stubAudio(voiceID, req)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(audio)), nil
}

// ListVoices returns a fixed two-voice catalogue.
func (s *StubSynthesizer) ListVoices(_ context.Context) ([]Voice, error) {
	return []Voice{
		{"voice_id": "stub-voice-1", "name": "Stub One"},
		{"voice_id": "stub-voice-2", "name": "Stub Two"},
	}, nil
}

// GetVoice returns a fixed voice record for any id.
func (s *StubSynthesizer) GetVoice(_ context.Context, voiceID string) (Voice, error) {
	if voiceID == "" {
		return nil, fmt.Errorf("elevenlabs: voice_id is required")
	}
	return Voice{"voice_id": voiceID, "name": "Stub Voice"}, nil
}

// ListModels returns a fixed single-model catalogue.
func (s *StubSynthesizer) ListModels(_ context.Context) ([]Model, error) {
	return []Model{
		{"model_id": "stub-model", "name": "Stub Model"},
	}, nil
}

// CheckConnection always succeeds for the stub.
func (s *StubSynthesizer) CheckConnection(_ context.Context) bool {
	return true
}
