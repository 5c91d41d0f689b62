package elevenlabs

import (
	"context"
	"io"
)

// Synthesizer abstracts the ElevenLabs API so that handlers can be tested
// with a mock implementation.
type Synthesizer interface {
	Synthesize(ctx context.Context, voiceID string, req SynthesizeRequest) ([]byte, error)
	SynthesizeStream(ctx context.Context, voiceID string, req SynthesizeRequest) (io.ReadCloser, error)
	ListVoices(ctx context.Context) ([]Voice, error)
	GetVoice(ctx context.Context, voiceID string) (Voice, error)
	ListModels(ctx context.Context) ([]Model, error)
	CheckConnection(ctx context.Context) bool
}
