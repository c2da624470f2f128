// Package ui is the terminal view for a study session. It only forwards key
// presses to the session and renders the Display it gets back.
package ui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ppiankov/recito/internal/model"
	"github.com/ppiankov/recito/internal/session"
)

// Controller is the part of a session the view drives
type Controller interface {
	Next() (model.Display, error)
	Reveal() (model.Display, error)
	Classify(model.Verdict) (model.Display, error)
	SetMaskMode(model.MaskMode) (model.Display, error)
}

// StudyModel is the bubbletea model for the study loop
type StudyModel struct {
	ctrl     Controller
	display  model.Display
	notice   string
	styles   Styles
	width    int
	quitting bool
}

// NewStudyModel draws the first entry and returns the model
func NewStudyModel(ctrl Controller, styles Styles) StudyModel {
	m := StudyModel{ctrl: ctrl, styles: styles}
	m.apply(ctrl.Next())
	return m
}

// Display returns what the view is currently showing
func (m StudyModel) Display() model.Display {
	return m.display
}

// Notice returns the pending warning, if any
func (m StudyModel) Notice() string {
	return m.notice
}

// Init implements tea.Model
func (m StudyModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m StudyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

		// Any other key dismisses a pending notice
		m.notice = ""

		if m.display.Depleted() {
			return m, nil
		}

		switch key {
		case " ", "enter":
			m.apply(m.ctrl.Reveal())
		case "y", "k":
			m.apply(m.ctrl.Classify(model.VerdictKnown))
		case "n", "u":
			m.apply(m.ctrl.Classify(model.VerdictUnknown))
		case "m":
			m.apply(m.ctrl.SetMaskMode(m.display.Mode.Toggle()))
		}
	}

	return m, nil
}

func (m *StudyModel) apply(d model.Display, err error) {
	m.display = d
	if err == nil || errors.Is(err, session.ErrInvalidState) {
		return
	}
	m.notice = err.Error()
}

// View implements tea.Model
func (m StudyModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	c := m.display.Counts
	sb.WriteString(m.styles.Counts.Render(fmt.Sprintf("remaining %d / %d", c.Remaining, c.Total)))
	sb.WriteString("\n")

	card := m.styles.Card
	if m.width > 8 {
		card = card.Width(m.width - 4)
	}

	if m.display.Depleted() {
		sb.WriteString(card.Render(m.styles.Done.Render("No more lines!")))
		sb.WriteString("\n")
		sb.WriteString(m.styles.Help.Render("q quit"))
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString(card.Render(m.display.Text))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Mode.Render(modeLabel(m.display.Mode)))
	sb.WriteString("\n\n")

	if m.notice != "" {
		sb.WriteString(m.styles.Notice.Render("! " + m.notice))
		sb.WriteString("\n\n")
	}

	sb.WriteString(m.styles.Help.Render("space reveal · "))
	sb.WriteString(m.styles.Known.Render("y known"))
	sb.WriteString(m.styles.Help.Render(" · "))
	sb.WriteString(m.styles.Unknown.Render("n unknown"))
	sb.WriteString(m.styles.Help.Render(" · m toggle mask · q quit"))
	sb.WriteString("\n")
	return sb.String()
}

func modeLabel(mode model.MaskMode) string {
	if mode == model.MaskHead {
		return "masking the first half"
	}
	return "masking the second half"
}

// Run starts the interactive program and blocks until the user quits
func Run(ctrl Controller, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(NewStudyModel(ctrl, DefaultStyles()), opts...)
	_, err := p.Run()
	return err
}
