package ui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ppiankov/recito/internal/model"
	"github.com/ppiankov/recito/internal/session"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, m StudyModel, msg tea.Msg) StudyModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(StudyModel)
	if !ok {
		t.Fatalf("Update returned %T, want StudyModel", next)
	}
	return sm
}

func startSession(t *testing.T, content string) *session.Session {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Corpus.Path = filepath.Join(t.TempDir(), "sentences.txt")
	cfg.Session.Seed = 1
	if err := os.WriteFile(cfg.Corpus.Path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := session.Start(cfg)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	return s
}

func TestStudyModel_RevealClassifyDeplete(t *testing.T) {
	s := startSession(t, "床前明月光，疑是地上霜。\n")
	m := NewStudyModel(s, DefaultStyles())

	if m.Display().State != model.StateShown {
		t.Fatalf("expected first entry shown, got %s", m.Display().State)
	}
	if !strings.Contains(m.View(), "床前明月光，______") {
		t.Errorf("expected masked text in view, got:\n%s", m.View())
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.Display().State != model.StateRevealed {
		t.Fatalf("expected revealed after space, got %s", m.Display().State)
	}
	if !strings.Contains(m.View(), "床前明月光，疑是地上霜。") {
		t.Errorf("expected full text in view, got:\n%s", m.View())
	}

	m = update(t, m, runeKey('y'))
	if !m.Display().Depleted() {
		t.Fatalf("expected depleted after classifying the only entry, got %s", m.Display().State)
	}
	if !strings.Contains(m.View(), "remaining 0 / 1") {
		t.Errorf("expected counts in view, got:\n%s", m.View())
	}

	// Classify keys are ignored once depleted
	m = update(t, m, runeKey('n'))
	if !m.Display().Depleted() {
		t.Errorf("expected to stay depleted, got %s", m.Display().State)
	}
}

func TestStudyModel_ToggleMode(t *testing.T) {
	s := startSession(t, "床前明月光，疑是地上霜。\n")
	m := NewStudyModel(s, DefaultStyles())

	m = update(t, m, runeKey('m'))
	if m.Display().Mode != model.MaskHead {
		t.Fatalf("expected head mode after toggle, got %s", m.Display().Mode)
	}
	if m.Display().Text != "_____，疑是地上霜。" {
		t.Errorf("expected re-masked text, got %q", m.Display().Text)
	}

	m = update(t, m, runeKey('m'))
	if m.Display().Mode != model.MaskTail {
		t.Errorf("expected tail mode after second toggle, got %s", m.Display().Mode)
	}
}

func TestStudyModel_Quit(t *testing.T) {
	s := startSession(t, "甲，乙。\n")
	m := NewStudyModel(s, DefaultStyles())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if next.View() != "" {
		t.Errorf("expected empty view after quit")
	}
}

type fakeController struct {
	display model.Display
	err     error
}

func (f *fakeController) Next() (model.Display, error)   { return f.display, nil }
func (f *fakeController) Reveal() (model.Display, error) { return f.display, session.ErrInvalidState }
func (f *fakeController) Classify(model.Verdict) (model.Display, error) {
	return f.display, f.err
}
func (f *fakeController) SetMaskMode(model.MaskMode) (model.Display, error) { return f.display, nil }

func TestStudyModel_NoticeShownAndDismissed(t *testing.T) {
	ctrl := &fakeController{
		display: model.Display{Text: "甲，_", State: model.StateShown, Counts: model.Counts{Total: 2, Remaining: 1}},
		err:     &session.Warning{Err: errors.New("write sentences_new.txt: disk full")},
	}
	m := NewStudyModel(ctrl, DefaultStyles())

	m = update(t, m, runeKey('n'))
	if !strings.Contains(m.Notice(), "disk full") {
		t.Fatalf("expected warning notice, got %q", m.Notice())
	}
	if !strings.Contains(m.View(), "disk full") {
		t.Errorf("expected notice in view")
	}

	// Invalid-state errors are not surfaced and any key clears the notice
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Notice() != "" {
		t.Errorf("expected notice dismissed, got %q", m.Notice())
	}
}
