package elevenlabs

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	// BaseURL is the ElevenLabs API base URL.
	BaseURL = "https://api.elevenlabs.io/v1"

	// DefaultTimeout for buffered HTTP requests. Streaming requests run
	// without a client timeout so long syntheses are not cut off mid-body.
	DefaultTimeout = 60 * time.Second

	// errPreviewBytes caps how much of an undecodable error body is logged.
	errPreviewBytes = 50
)

// VoiceSettings contains optional voice configuration parameters. Nil fields
// fall back to the client's configured defaults; present fields are passed to
// the provider unchecked, since the provider is the authority on valid ranges.
type VoiceSettings struct {
	Stability       *float64 `json:"stability,omitempty"`
	SimilarityBoost *float64 `json:"similarity_boost,omitempty"`
	Style           *float64 `json:"style,omitempty"`
	UseSpeakerBoost *bool    `json:"use_speaker_boost,omitempty"`
}

// SynthesizeRequest describes a TTS synthesis request. ModelID and
// VoiceSettings override the client defaults; VoiceSettings merges per field.
type SynthesizeRequest struct {
	Text          string
	ModelID       string
	VoiceSettings *VoiceSettings
}

// Defaults holds the service-wide synthesis parameters applied when a request
// does not override them.
type Defaults struct {
	ModelID         string
	Stability       float64
	SimilarityBoost float64
	Style           float64
	UseSpeakerBoost bool
}

// Voice is an opaque voice record returned verbatim from the provider.
type Voice map[string]any

// Model is an opaque model record returned verbatim from the provider.
type Model map[string]any

// Client wraps HTTP calls to the ElevenLabs API. Its configuration is fixed
// at construction and safe for concurrent use.
type Client struct {
	httpClient   *http.Client
	streamClient *http.Client
	apiKey       string
	baseURL      string
	defaults     Defaults
	log          *slog.Logger
}

// NewClient constructs an ElevenLabs API client.
func NewClient(apiKey, baseURL string, defaults Defaults, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient:   &http.Client{Timeout: DefaultTimeout},
		streamClient: &http.Client{},
		apiKey:       apiKey,
		baseURL:      baseURL,
		defaults:     defaults,
		log:          logger.With("component", "elevenlabs"),
	}
}

// ttsPayload is the wire format of a synthesis request after merging defaults.
type ttsPayload struct {
	Text          string      `json:"text"`
	ModelID       string      `json:"model_id"`
	VoiceSettings wireSetting `json:"voice_settings"`
}

type wireSetting struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

// buildPayload starts from the client defaults, overlays the request model id
// when given, and merges voice settings field by field: unspecified fields
// keep the default.
func (c *Client) buildPayload(req SynthesizeRequest) ttsPayload {
	p := ttsPayload{
		Text:    req.Text,
		ModelID: c.defaults.ModelID,
		VoiceSettings: wireSetting{
			Stability:       c.defaults.Stability,
			SimilarityBoost: c.defaults.SimilarityBoost,
			Style:           c.defaults.Style,
			UseSpeakerBoost: c.defaults.UseSpeakerBoost,
		},
	}
	if req.ModelID != "" {
		p.ModelID = req.ModelID
	}
	if vs := req.VoiceSettings; vs != nil {
		if vs.Stability != nil {
			p.VoiceSettings.Stability = *vs.Stability
		}
		if vs.SimilarityBoost != nil {
			p.VoiceSettings.SimilarityBoost = *vs.SimilarityBoost
		}
		if vs.Style != nil {
			p.VoiceSettings.Style = *vs.Style
		}
		if vs.UseSpeakerBoost != nil {
			p.VoiceSettings.UseSpeakerBoost = *vs.UseSpeakerBoost
		}
	}
	return p
}

func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	httpReq, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("xi-api-key", c.apiKey)
	return httpReq, nil
}

// Synthesize calls the buffered TTS endpoint and returns the full audio
// payload. On upstream failure, the provider's error body is decoded for the
// log when possible; a truncated raw preview is logged otherwise. Either way
// a single error is returned to the caller.
func (c *Client) Synthesize(ctx context.Context, voiceID string, req SynthesizeRequest) ([]byte, error) {
	if voiceID == "" {
		return nil, fmt.Errorf("elevenlabs: voice_id is required")
	}
	if req.Text == "" {
		return nil, fmt.Errorf("elevenlabs: text is required")
	}

	url := fmt.Sprintf("%s/text-to-speech/%s", c.baseURL, voiceID)
	body, err := json.Marshal(c.buildPayload(req))
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: marshal request: %w", err)
	}

	httpReq, err := c.newRequest(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Error("synthesis request failed",
			"voice_id", voiceID,
			"text_length", len(req.Text),
			"error", err,
		)
		return nil, fmt.Errorf("elevenlabs: synthesize: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logErrorBody(resp, voiceID, len(req.Text))
		return nil, fmt.Errorf("elevenlabs: synthesize: API error (status %d)", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: read audio: %w", err)
	}

	c.log.Debug("synthesis complete",
		"voice_id", voiceID,
		"text_length", len(req.Text),
		"audio_bytes", len(audio),
	)
	return audio, nil
}

// SynthesizeStream calls the streaming TTS endpoint and returns the live
// response body. The caller must close the reader. Errors after the stream
// has started surface from the reader, not from this call.
func (c *Client) SynthesizeStream(ctx context.Context, voiceID string, req SynthesizeRequest) (io.ReadCloser, error) {
	if voiceID == "" {
		return nil, fmt.Errorf("elevenlabs: voice_id is required")
	}
	if req.Text == "" {
		return nil, fmt.Errorf("elevenlabs: text is required")
	}

	url := fmt.Sprintf("%s/text-to-speech/%s/stream", c.baseURL, voiceID)
	body, err := json.Marshal(c.buildPayload(req))
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: marshal request: %w", err)
	}

	httpReq, err := c.newRequest(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	resp, err := c.streamClient.Do(httpReq)
	if err != nil {
		c.log.Error("streaming synthesis request failed",
			"voice_id", voiceID,
			"text_length", len(req.Text),
			"error", err,
		)
		return nil, fmt.Errorf("elevenlabs: synthesize stream: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		c.logErrorBody(resp, voiceID, len(req.Text))
		return nil, fmt.Errorf("elevenlabs: synthesize stream: API error (status %d)", resp.StatusCode)
	}

	c.log.Debug("streaming synthesis started",
		"voice_id", voiceID,
		"text_length", len(req.Text),
	)
	return resp.Body, nil
}

// ListVoices fetches the available voices and passes the records through
// verbatim.
func (c *Client) ListVoices(ctx context.Context) ([]Voice, error) {
	var payload struct {
		Voices []Voice `json:"voices"`
	}
	if err := c.getJSON(ctx, "/voices", &payload); err != nil {
		return nil, fmt.Errorf("elevenlabs: list voices: %w", err)
	}
	c.log.Debug("fetched voices", "count", len(payload.Voices))
	return payload.Voices, nil
}

// GetVoice fetches a single voice record by id.
func (c *Client) GetVoice(ctx context.Context, voiceID string) (Voice, error) {
	if voiceID == "" {
		return nil, fmt.Errorf("elevenlabs: voice_id is required")
	}
	var voice Voice
	if err := c.getJSON(ctx, "/voices/"+voiceID, &voice); err != nil {
		return nil, fmt.Errorf("elevenlabs: get voice %s: %w", voiceID, err)
	}
	return voice, nil
}

// ListModels fetches the available TTS models.
func (c *Client) ListModels(ctx context.Context) ([]Model, error) {
	var models []Model
	if err := c.getJSON(ctx, "/models", &models); err != nil {
		return nil, fmt.Errorf("elevenlabs: list models: %w", err)
	}
	c.log.Debug("fetched models", "count", len(models))
	return models, nil
}

// CheckConnection issues a lightweight authenticated call and reports whether
// the API is reachable. It never returns an error, so callers can use it as a
// liveness probe.
func (c *Client) CheckConnection(ctx context.Context) bool {
	var payload struct {
		Subscription struct {
			Tier           string `json:"tier"`
			CharacterCount int    `json:"character_count"`
			CharacterLimit int    `json:"character_limit"`
		} `json:"subscription"`
	}
	if err := c.getJSON(ctx, "/user", &payload); err != nil {
		c.log.Error("connection check failed", "error", err)
		return false
	}
	c.log.Info("connected to ElevenLabs API",
		"subscription", payload.Subscription.Tier,
		"character_count", payload.Subscription.CharacterCount,
		"character_limit", payload.Subscription.CharacterLimit,
	)
	return true
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	httpReq, err := c.newRequest(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(errBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// logErrorBody records the provider's error payload. Structured bodies are
// logged decoded; anything else gets a truncated raw preview.
func (c *Client) logErrorBody(resp *http.Response, voiceID string, textLength int) {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err == nil {
		c.log.Error("API error response",
			"status", resp.StatusCode,
			"voice_id", voiceID,
			"text_length", textLength,
			"detail", decoded,
		)
		return
	}

	preview := raw
	if len(preview) > errPreviewBytes {
		preview = preview[:errPreviewBytes]
	}
	c.log.Error("undecodable API error response",
		"status", resp.StatusCode,
		"voice_id", voiceID,
		"text_length", textLength,
		"body_preview", hex.EncodeToString(preview)+"...",
	)
}
