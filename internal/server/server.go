package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/audiorelay/tts-gateway/internal/apierr"
	"github.com/audiorelay/tts-gateway/internal/appinfo"
	"github.com/audiorelay/tts-gateway/internal/config"
	"github.com/audiorelay/tts-gateway/internal/elevenlabs"
	"github.com/audiorelay/tts-gateway/internal/prompt"
	"github.com/audiorelay/tts-gateway/internal/telemetry"
)

// maxBodyBytes caps JSON request bodies so long texts are accepted but
// unbounded payloads are not.
const maxBodyBytes = 10 << 20

// Server holds the handler dependencies. All fields are fixed at
// construction; per-request state lives on the stack.
type Server struct {
	cfg     config.Config
	client  elevenlabs.Synthesizer
	prompts *prompt.Store
	metrics *telemetry.Recorder
	meta    appinfo.Metadata
	log     *slog.Logger
}

// New returns a new Server instance.
func New(cfg config.Config, logger *slog.Logger, client elevenlabs.Synthesizer, prompts *prompt.Store, metrics *telemetry.Recorder, meta appinfo.Metadata) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if client == nil {
		panic("server: synthesizer must not be nil")
	}
	if prompts == nil {
		prompts = prompt.NewStore(cfg.PromptsEnabled, cfg.DefaultPromptTemplate, logger)
	}
	if metrics == nil {
		metrics = telemetry.NewRecorder(logger)
	}
	return &Server{
		cfg:     cfg,
		client:  client,
		prompts: prompts,
		metrics: metrics,
		meta:    meta,
		log:     logger.With("component", "server"),
	}
}

// Router builds the chi router with all gateway routes mounted under /api.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	if !s.cfg.Production() {
		r.Use(chimw.Logger)
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/tts", s.handleSynthesize)
		r.Post("/tts/stream", s.handleSynthesizeStream)

		r.Get("/voices", s.handleVoices)
		r.Get("/voices/{id}", s.handleVoice)
		r.Get("/models", s.handleModels)

		r.Get("/status", s.handleStatus)

		r.Get("/prompts/templates", s.handleTemplates)
		r.Post("/prompts/templates", s.handleAddTemplate)
		r.Delete("/prompts/templates/{name}", s.handleRemoveTemplate)
		r.Post("/prompts/preview", s.handlePreview)
	})

	r.NotFound(apierr.NotFoundHandler(s.log, s.cfg.Production()))
	r.MethodNotAllowed(apierr.NotFoundHandler(s.log, s.cfg.Production()))

	return r
}

// fail routes an error through the single rendering boundary.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	apierr.Write(w, r, s.log, s.cfg.Production(), err)
}

// respondJSON writes a 200 JSON response.
func (s *Server) respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("failed to encode response", "error", err)
	}
}

// decodeJSON reads a size-limited JSON body into v.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apierr.New("invalid request body", http.StatusBadRequest).WithDetails(err.Error())
	}
	return nil
}

// resolveVoiceID chooses the voice for a request: an explicit id or alias
// from the body wins, then the configured default.
func (s *Server) resolveVoiceID(requested string) string {
	if requested == "" {
		return s.cfg.DefaultVoiceID
	}
	if id, ok := s.cfg.VoiceAliases[strings.ToLower(requested)]; ok {
		return id
	}
	// Not an alias: assume a literal provider voice id.
	return requested
}
