package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/audiorelay/tts-gateway/internal/apierr"
	"github.com/audiorelay/tts-gateway/internal/elevenlabs"
)

// markDefault returns a copy of voice with the derived is_default flag set
// when the record's identifier matches the configured default voice.
func (s *Server) markDefault(voice elevenlabs.Voice) elevenlabs.Voice {
	out := make(elevenlabs.Voice, len(voice)+1)
	for k, v := range voice {
		out[k] = v
	}
	out["is_default"] = voice["voice_id"] == s.cfg.DefaultVoiceID
	return out
}

// handleVoices serves GET /api/voices.
func (s *Server) handleVoices(w http.ResponseWriter, r *http.Request) {
	voices, err := s.client.ListVoices(r.Context())
	if err != nil {
		s.fail(w, r, apierr.Newf(http.StatusInternalServerError, "failed to list voices: %v", err))
		return
	}

	decorated := make([]elevenlabs.Voice, len(voices))
	for i, voice := range voices {
		decorated[i] = s.markDefault(voice)
	}

	s.respondJSON(w, map[string]any{"voices": decorated})
}

// handleVoice serves GET /api/voices/{id}. Aliases configured via VOICE_ID_*
// are accepted in place of a provider voice id.
func (s *Server) handleVoice(w http.ResponseWriter, r *http.Request) {
	voiceID := s.resolveVoiceID(chi.URLParam(r, "id"))

	voice, err := s.client.GetVoice(r.Context(), voiceID)
	if err != nil {
		s.fail(w, r, apierr.Newf(http.StatusInternalServerError, "failed to get voice: %v", err))
		return
	}

	s.respondJSON(w, s.markDefault(voice))
}

// handleModels serves GET /api/models.
func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	models, err := s.client.ListModels(r.Context())
	if err != nil {
		s.fail(w, r, apierr.Newf(http.StatusInternalServerError, "failed to list models: %v", err))
		return
	}

	s.respondJSON(w, map[string]any{"models": models})
}

// handleStatus serves GET /api/status: a connectivity probe plus the
// non-secret configuration.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	connected := s.client.CheckConnection(r.Context())

	s.respondJSON(w, map[string]any{
		"status":        "ok",
		"version":       s.meta.Version,
		"api_connected": connected,
		"config": map[string]any{
			"default_voice_id":      s.cfg.DefaultVoiceID,
			"default_model_id":      s.cfg.DefaultModelID,
			"prompt_system_enabled": s.prompts.Enabled(),
			"environment":           s.cfg.Environment,
		},
	})
}
