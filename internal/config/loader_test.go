package config

import (
	"fmt"
	"testing"
)

func fakeEnv(m map[string]string) Loader {
	return Loader{
		Lookup: func(key string) (string, bool) {
			v, ok := m[key]
			return v, ok
		},
		Environ: func() []string {
			var out []string
			for k, v := range m {
				out = append(out, fmt.Sprintf("%s=%s", k, v))
			}
			return out
		},
	}
}

func TestLoaderFromEnv(t *testing.T) {
	loader := fakeEnv(map[string]string{
		"ELEVENLABS_API_KEY": "sk-test",
		"DEFAULT_VOICE_ID":   "voice-1",
		"PORT":               "8080",
		"HOST":               "0.0.0.0",
		"DEFAULT_MODEL_ID":   "eleven_turbo_v2_5",
		"DEFAULT_STABILITY":  "0.3",
	})

	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.APIKey != "sk-test" {
		t.Errorf("APIKey = %q, want %q", cfg.APIKey, "sk-test")
	}
	if cfg.DefaultVoiceID != "voice-1" {
		t.Errorf("DefaultVoiceID = %q, want %q", cfg.DefaultVoiceID, "voice-1")
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.Host != "0.0.0.0" {
		t.Errorf("Host = %q, want %q", cfg.Host, "0.0.0.0")
	}
	if cfg.DefaultModelID != "eleven_turbo_v2_5" {
		t.Errorf("DefaultModelID = %q, want %q", cfg.DefaultModelID, "eleven_turbo_v2_5")
	}
	if cfg.DefaultStability != 0.3 {
		t.Errorf("DefaultStability = %f, want 0.3", cfg.DefaultStability)
	}
}

func TestLoaderDefaults(t *testing.T) {
	loader := fakeEnv(map[string]string{
		"ELEVENLABS_API_KEY": "sk-test",
		"DEFAULT_VOICE_ID":   "voice-1",
	})

	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Host != DefaultHost {
		t.Errorf("Host = %q, want default %q", cfg.Host, DefaultHost)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want default %d", cfg.Port, DefaultPort)
	}
	if cfg.DefaultStability != DefaultStability {
		t.Errorf("DefaultStability = %f, want default %f", cfg.DefaultStability, DefaultStability)
	}
	if cfg.DefaultSimilarityBoost != DefaultSimilarityBoost {
		t.Errorf("DefaultSimilarityBoost = %f, want default %f", cfg.DefaultSimilarityBoost, DefaultSimilarityBoost)
	}
	if cfg.StreamChunkSize != DefaultStreamChunkSize {
		t.Errorf("StreamChunkSize = %d, want default %d", cfg.StreamChunkSize, DefaultStreamChunkSize)
	}
	if cfg.PromptsEnabled {
		t.Error("PromptsEnabled = true, want false by default")
	}
}

func TestLoaderVoiceAliases(t *testing.T) {
	loader := fakeEnv(map[string]string{
		"ELEVENLABS_API_KEY": "sk-test",
		"DEFAULT_VOICE_ID":   "voice-1",
		"VOICE_ID_NARRATOR":  "abc123",
		"VOICE_ID_Host":      "def456",
		"VOICE_ID_":          "ignored",
	})

	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got := cfg.VoiceAliases["narrator"]; got != "abc123" {
		t.Errorf("alias narrator = %q, want %q", got, "abc123")
	}
	if got := cfg.VoiceAliases["host"]; got != "def456" {
		t.Errorf("alias host = %q, want %q", got, "def456")
	}
	if len(cfg.VoiceAliases) != 2 {
		t.Errorf("got %d aliases, want 2", len(cfg.VoiceAliases))
	}
}

func TestLoaderBooleanFlags(t *testing.T) {
	loader := fakeEnv(map[string]string{
		"ELEVENLABS_API_KEY":        "sk-test",
		"DEFAULT_VOICE_ID":          "voice-1",
		"ENABLE_PROMPT_SYSTEM":      "true",
		"DEFAULT_USE_SPEAKER_BOOST": "TRUE",
		"USE_STUB_SYNTHESIZER":      "yes", // anything but "true" is false
	})

	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.PromptsEnabled {
		t.Error("PromptsEnabled = false, want true")
	}
	if !cfg.DefaultUseSpeakerBoost {
		t.Error("DefaultUseSpeakerBoost = false, want true")
	}
	if cfg.UseStubSynthesizer {
		t.Error("UseStubSynthesizer = true for non-true value")
	}
}

func TestLoaderRejectsMalformedNumbers(t *testing.T) {
	loader := fakeEnv(map[string]string{
		"ELEVENLABS_API_KEY": "sk-test",
		"DEFAULT_VOICE_ID":   "voice-1",
		"PORT":               "not-a-number",
	})

	if _, err := loader.Load(); err == nil {
		t.Fatal("expected error for malformed PORT")
	}
}

func TestLoaderRejectsOutOfRangeDefaults(t *testing.T) {
	loader := fakeEnv(map[string]string{
		"ELEVENLABS_API_KEY": "sk-test",
		"DEFAULT_VOICE_ID":   "voice-1",
		"DEFAULT_STABILITY":  "1.5",
	})

	if _, err := loader.Load(); err == nil {
		t.Fatal("expected error for out-of-range DEFAULT_STABILITY")
	}
}
