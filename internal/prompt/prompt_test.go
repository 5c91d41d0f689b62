package prompt

import (
	"strings"
	"testing"
)

func newTestStore(enabled bool) *Store {
	return NewStore(enabled, "Please read the following aloud: {{text}}", nil)
}

func TestApplyReplacesPlaceholder(t *testing.T) {
	s := newTestStore(true)

	got := s.Apply("hello world", "")
	want := "Please read the following aloud: hello world"
	if got != want {
		t.Errorf("Apply() = %q, want %q", got, want)
	}
}

func TestApplyLengthInvariant(t *testing.T) {
	tpl := "before {{text}} after"
	s := NewStore(true, tpl, nil)

	text := "sample input"
	got := s.Apply(text, DefaultName)
	wantLen := len(tpl) - len(Placeholder) + len(text)
	if len(got) != wantLen {
		t.Errorf("result length = %d, want %d", len(got), wantLen)
	}
}

func TestApplyReplacesAllOccurrences(t *testing.T) {
	s := newTestStore(true)
	if !s.Add("echo", "{{text}} and again {{text}} and once more {{text}}") {
		t.Fatal("Add() returned false")
	}

	got := s.Apply("x", "echo")
	if strings.Contains(got, Placeholder) {
		t.Errorf("Apply() left placeholder in result: %q", got)
	}
	if want := "x and again x and once more x"; got != want {
		t.Errorf("Apply() = %q, want %q", got, want)
	}
}

func TestApplyUnknownNameFallsBackToDefault(t *testing.T) {
	s := newTestStore(true)

	got := s.Apply("hi", "no-such-template")
	want := s.Apply("hi", DefaultName)
	if got != want {
		t.Errorf("Apply(unknown) = %q, want default result %q", got, want)
	}
}

func TestApplyDisabledIsPassthrough(t *testing.T) {
	s := newTestStore(false)

	// Even text containing the placeholder literally must come back untouched.
	for _, text := range []string{"plain", "{{text}}", "mixed {{text}} content"} {
		if got := s.Apply(text, DefaultName); got != text {
			t.Errorf("Apply(%q) = %q, want passthrough", text, got)
		}
	}
}

func TestAddRejectsMissingPlaceholder(t *testing.T) {
	s := newTestStore(true)

	if s.Add("bad", "no placeholder here") {
		t.Error("Add() accepted template without placeholder")
	}
	if _, ok := s.Templates()["bad"]; ok {
		t.Error("rejected template was stored")
	}
}

func TestAddRejectsEmptyArguments(t *testing.T) {
	s := newTestStore(true)

	if s.Add("", "{{text}}") {
		t.Error("Add() accepted empty name")
	}
	if s.Add("name", "") {
		t.Error("Add() accepted empty body")
	}
}

func TestAddOverwritesExisting(t *testing.T) {
	s := newTestStore(true)

	if !s.Add("greeting", "Hi {{text}}") {
		t.Fatal("first Add() failed")
	}
	if !s.Add("greeting", "Hello {{text}}") {
		t.Fatal("second Add() failed")
	}
	if got := s.Apply("there", "greeting"); got != "Hello there" {
		t.Errorf("Apply() = %q, want %q", got, "Hello there")
	}
}

func TestRemoveDefaultAlwaysFails(t *testing.T) {
	s := newTestStore(true)

	for i := 0; i < 3; i++ {
		if s.Remove(DefaultName) {
			t.Fatalf("Remove(default) succeeded on attempt %d", i+1)
		}
	}
	if _, ok := s.Templates()[DefaultName]; !ok {
		t.Error("default template missing after Remove attempts")
	}
}

func TestRemoveReportsDeletion(t *testing.T) {
	s := newTestStore(true)
	s.Add("temp", "x {{text}}")

	if !s.Remove("temp") {
		t.Error("Remove() = false for existing template")
	}
	if s.Remove("temp") {
		t.Error("Remove() = true for already-removed template")
	}
}

func TestTemplatesReturnsSnapshot(t *testing.T) {
	s := newTestStore(true)

	snap := s.Templates()
	snap["injected"] = "{{text}}"

	if _, ok := s.Templates()["injected"]; ok {
		t.Error("mutating the snapshot affected the store")
	}
}
