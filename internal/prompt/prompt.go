package prompt

import (
	"log/slog"
	"strings"
	"sync"
)

// Placeholder is the literal token inside a template body that gets replaced
// with the caller's text.
const Placeholder = "{{text}}"

// DefaultName is the name of the built-in template that always exists and
// cannot be removed.
const DefaultName = "default"

// Store holds the named text templates. It is shared by all requests; mutation
// is guarded by a mutex since template edits can arrive concurrently with
// synthesis requests reading the map.
type Store struct {
	mu        sync.RWMutex
	enabled   bool
	templates map[string]string
	log       *slog.Logger
}

// NewStore constructs a Store seeded with the default template. When enabled
// is false, Apply is a pure passthrough.
func NewStore(enabled bool, defaultTemplate string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		enabled:   enabled,
		templates: make(map[string]string),
		log:       logger.With("component", "prompt"),
	}
	s.templates[DefaultName] = defaultTemplate
	return s
}

// Enabled reports whether the template feature is active.
func (s *Store) Enabled() bool {
	return s.enabled
}

// Apply substitutes every occurrence of the placeholder in the named template
// with text. Resolution is fail-soft: an unknown name falls back to the
// default template, and a missing default degrades to returning text
// unchanged. A mistyped template name must never abort a synthesis request.
func (s *Store) Apply(text, templateName string) string {
	if !s.enabled {
		return text
	}
	if templateName == "" {
		templateName = DefaultName
	}

	s.mu.RLock()
	tpl, ok := s.templates[templateName]
	if !ok {
		tpl, ok = s.templates[DefaultName]
	}
	s.mu.RUnlock()

	if !ok {
		s.log.Warn("template not found, returning text unchanged", "template", templateName)
		return text
	}

	result := strings.ReplaceAll(tpl, Placeholder, text)

	s.log.Debug("applied template",
		"template", templateName,
		"input_length", len(text),
		"output_length", len(result),
	)
	return result
}

// Add inserts or overwrites the named template. It rejects empty names,
// empty bodies, and bodies lacking the placeholder token.
func (s *Store) Add(name, body string) bool {
	if name == "" || body == "" {
		s.log.Warn("rejected template: empty name or body", "name", name)
		return false
	}
	if !strings.Contains(body, Placeholder) {
		s.log.Warn("rejected template: missing placeholder", "name", name, "placeholder", Placeholder)
		return false
	}

	s.mu.Lock()
	s.templates[name] = body
	s.mu.Unlock()

	s.log.Debug("added template", "name", name)
	return true
}

// Remove deletes the named template and reports whether a deletion occurred.
// The default template cannot be removed.
func (s *Store) Remove(name string) bool {
	if name == DefaultName {
		s.log.Warn("refusing to remove default template")
		return false
	}

	s.mu.Lock()
	_, ok := s.templates[name]
	delete(s.templates, name)
	s.mu.Unlock()

	if ok {
		s.log.Debug("removed template", "name", name)
	}
	return ok
}

// Templates returns a snapshot copy of the name-to-body mapping.
func (s *Store) Templates() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(s.templates))
	for name, body := range s.templates {
		out[name] = body
	}
	return out
}
