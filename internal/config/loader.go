package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// voiceAliasPrefix marks environment variables naming voice id aliases,
// e.g. VOICE_ID_NARRATOR=abc123 registers alias "narrator".
const voiceAliasPrefix = "VOICE_ID_"

// Loader loads configuration from environment variables. Tests can override
// Lookup and Environ to inject deterministic maps.
type Loader struct {
	Lookup  func(string) (string, bool)
	Environ func() []string
}

// Load retrieves the gateway configuration from environment variables and
// validates it.
func (l Loader) Load() (Config, error) {
	if l.Lookup == nil {
		l.Lookup = os.LookupEnv
	}
	if l.Environ == nil {
		l.Environ = os.Environ
	}

	cfg := Config{
		DefaultStability:       DefaultStability,
		DefaultSimilarityBoost: DefaultSimilarityBoost,
		DefaultStyle:           DefaultStyle,
	}

	overrideString(l.Lookup, "HOST", &cfg.Host)
	if err := overrideInt(l.Lookup, "PORT", &cfg.Port); err != nil {
		return Config{}, err
	}
	overrideString(l.Lookup, "APP_ENV", &cfg.Environment)

	overrideString(l.Lookup, "ELEVENLABS_API_KEY", &cfg.APIKey)
	overrideString(l.Lookup, "ELEVENLABS_BASE_URL", &cfg.BaseURL)
	overrideString(l.Lookup, "DEFAULT_VOICE_ID", &cfg.DefaultVoiceID)
	cfg.VoiceAliases = loadVoiceAliases(l.Environ)

	overrideString(l.Lookup, "DEFAULT_MODEL_ID", &cfg.DefaultModelID)
	if err := overrideFloat(l.Lookup, "DEFAULT_STABILITY", &cfg.DefaultStability); err != nil {
		return Config{}, err
	}
	if err := overrideFloat(l.Lookup, "DEFAULT_SIMILARITY_BOOST", &cfg.DefaultSimilarityBoost); err != nil {
		return Config{}, err
	}
	if err := overrideFloat(l.Lookup, "DEFAULT_STYLE", &cfg.DefaultStyle); err != nil {
		return Config{}, err
	}
	cfg.DefaultUseSpeakerBoost = boolValue(l.Lookup, "DEFAULT_USE_SPEAKER_BOOST")

	if err := overrideInt(l.Lookup, "STREAM_CHUNK_SIZE", &cfg.StreamChunkSize); err != nil {
		return Config{}, err
	}

	overrideString(l.Lookup, "LOG_LEVEL", &cfg.LogLevel)
	overrideString(l.Lookup, "LOG_FILE_PATH", &cfg.LogFilePath)

	cfg.PromptsEnabled = boolValue(l.Lookup, "ENABLE_PROMPT_SYSTEM")
	overrideString(l.Lookup, "DEFAULT_PROMPT_TEMPLATE", &cfg.DefaultPromptTemplate)

	cfg.UseStubSynthesizer = boolValue(l.Lookup, "USE_STUB_SYNTHESIZER")

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadVoiceAliases collects VOICE_ID_* environment variables into an alias
// table keyed by the lowercased suffix.
func loadVoiceAliases(environ func() []string) map[string]string {
	aliases := make(map[string]string)
	for _, kv := range environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, voiceAliasPrefix) {
			continue
		}
		name := strings.ToLower(strings.TrimPrefix(key, voiceAliasPrefix))
		if name == "" || strings.TrimSpace(value) == "" {
			continue
		}
		aliases[name] = strings.TrimSpace(value)
	}
	return aliases
}

func overrideString(lookup func(string) (string, bool), key string, target *string) {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		*target = strings.TrimSpace(value)
	}
}

func overrideInt(lookup func(string) (string, bool), key string, target *int) error {
	value, ok := lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return nil
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*target = parsed
	return nil
}

func overrideFloat(lookup func(string) (string, bool), key string, target *float64) error {
	value, ok := lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*target = parsed
	return nil
}

func boolValue(lookup func(string) (string, bool), key string) bool {
	value, _ := lookup(key)
	return strings.EqualFold(strings.TrimSpace(value), "true")
}
