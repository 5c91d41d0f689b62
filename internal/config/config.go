package config

import "fmt"

const (
	DefaultHost            = "localhost"
	DefaultPort            = 3000
	DefaultEnvironment     = "development"
	DefaultBaseURL         = "https://api.elevenlabs.io/v1"
	DefaultModelID         = "eleven_multilingual_v2"
	DefaultStability       = 0.5
	DefaultSimilarityBoost = 0.75
	DefaultStyle           = 0.0
	DefaultStreamChunkSize = 4096
	DefaultLogLevel        = "info"
	DefaultLogFilePath     = "logs/gateway.log"
	DefaultPromptTemplate  = "Please read the following in a natural tone: {{text}}"
)

// Config captures the gateway configuration loaded from environment variables.
// It is immutable after Validate and freely shared by concurrent requests.
type Config struct {
	Host        string
	Port        int
	Environment string

	APIKey         string
	BaseURL        string
	DefaultVoiceID string
	// VoiceAliases maps lowercase alias names (VOICE_ID_* env keys) to voice ids.
	VoiceAliases map[string]string

	DefaultModelID         string
	DefaultStability       float64
	DefaultSimilarityBoost float64
	DefaultStyle           float64
	DefaultUseSpeakerBoost bool

	StreamChunkSize int

	LogLevel    string
	LogFilePath string

	PromptsEnabled        bool
	DefaultPromptTemplate string

	// UseStubSynthesizer swaps the ElevenLabs client for a deterministic stub.
	UseStubSynthesizer bool
}

// Validate applies defaults and raises an error when required fields are
// missing. Configured default voice settings are range-checked here; values
// supplied per request are passed through to the provider unchecked.
func (c *Config) Validate() error {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Environment == "" {
		c.Environment = DefaultEnvironment
	}
	if c.APIKey == "" && !c.UseStubSynthesizer {
		return fmt.Errorf("config: ELEVENLABS_API_KEY is required")
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.DefaultVoiceID == "" {
		return fmt.Errorf("config: DEFAULT_VOICE_ID is required")
	}
	if c.DefaultModelID == "" {
		c.DefaultModelID = DefaultModelID
	}
	if c.StreamChunkSize <= 0 {
		c.StreamChunkSize = DefaultStreamChunkSize
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFilePath == "" {
		c.LogFilePath = DefaultLogFilePath
	}
	if c.DefaultPromptTemplate == "" {
		c.DefaultPromptTemplate = DefaultPromptTemplate
	}

	if c.DefaultStability < 0.0 || c.DefaultStability > 1.0 {
		return fmt.Errorf("config: DEFAULT_STABILITY must be between 0.0 and 1.0, got %f", c.DefaultStability)
	}
	if c.DefaultSimilarityBoost < 0.0 || c.DefaultSimilarityBoost > 1.0 {
		return fmt.Errorf("config: DEFAULT_SIMILARITY_BOOST must be between 0.0 and 1.0, got %f", c.DefaultSimilarityBoost)
	}
	if c.DefaultStyle < 0.0 || c.DefaultStyle > 1.0 {
		return fmt.Errorf("config: DEFAULT_STYLE must be between 0.0 and 1.0, got %f", c.DefaultStyle)
	}

	return nil
}

// ListenAddr returns the host:port pair for the HTTP listener.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Production reports whether the gateway runs in production mode. Error
// details and request logging depend on this.
func (c *Config) Production() bool {
	return c.Environment == "production"
}
