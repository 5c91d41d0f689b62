package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/audiorelay/tts-gateway/internal/apierr"
	"github.com/audiorelay/tts-gateway/internal/prompt"
)

// promptsDisabled is the shared guard for template mutation endpoints.
func (s *Server) promptsDisabled(w http.ResponseWriter, r *http.Request) bool {
	if s.prompts.Enabled() {
		return false
	}
	s.fail(w, r, apierr.New("prompt template system is disabled", http.StatusBadRequest))
	return true
}

// handleTemplates serves GET /api/prompts/templates. A disabled feature is
// reported in-band rather than as an error, so clients can probe it.
func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	if !s.prompts.Enabled() {
		s.respondJSON(w, map[string]any{
			"enabled": false,
			"message": "prompt template system is disabled",
		})
		return
	}

	s.respondJSON(w, map[string]any{
		"enabled":   true,
		"templates": s.prompts.Templates(),
	})
}

// handleAddTemplate serves POST /api/prompts/templates.
func (s *Server) handleAddTemplate(w http.ResponseWriter, r *http.Request) {
	if s.promptsDisabled(w, r) {
		return
	}

	var req struct {
		Name     string `json:"name"`
		Template string `json:"template"`
	}
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if req.Name == "" || req.Template == "" {
		s.fail(w, r, apierr.New("template name and body are required", http.StatusBadRequest))
		return
	}

	if !s.prompts.Add(req.Name, req.Template) {
		s.fail(w, r, apierr.Newf(http.StatusBadRequest,
			"failed to add template: body must contain the %s placeholder", prompt.Placeholder))
		return
	}

	s.respondJSON(w, map[string]any{
		"success": true,
		"message": "template added",
		"name":    req.Name,
	})
}

// handleRemoveTemplate serves DELETE /api/prompts/templates/{name}. The
// default template is protected and removal of an unknown name is an error.
func (s *Server) handleRemoveTemplate(w http.ResponseWriter, r *http.Request) {
	if s.promptsDisabled(w, r) {
		return
	}

	name := chi.URLParam(r, "name")
	if !s.prompts.Remove(name) {
		s.fail(w, r, apierr.Newf(http.StatusBadRequest, "cannot remove template %q", name))
		return
	}

	s.respondJSON(w, map[string]any{
		"success": true,
		"message": "template removed",
		"name":    name,
	})
}

// handlePreview serves POST /api/prompts/preview: shows what a template
// would produce without synthesizing anything.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	if s.promptsDisabled(w, r) {
		return
	}

	var req struct {
		Text         string `json:"text"`
		TemplateName string `json:"template_name"`
	}
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if req.Text == "" {
		s.fail(w, r, apierr.New("text is required", http.StatusBadRequest))
		return
	}

	templateName := req.TemplateName
	if templateName == "" {
		templateName = prompt.DefaultName
	}

	s.respondJSON(w, map[string]any{
		"original_text":  req.Text,
		"processed_text": s.prompts.Apply(req.Text, req.TemplateName),
		"template_name":  templateName,
	})
}
