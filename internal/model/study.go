package model

import "fmt"

// MaskMode selects which side of the boundary character is concealed
type MaskMode string

const (
	MaskTail MaskMode = "tail" // Keep text up to the boundary, hide the rest
	MaskHead MaskMode = "head" // Hide text before the boundary, keep the rest
)

// ParseMaskMode accepts "tail"/"head" and the aliases "back"/"front"
func ParseMaskMode(s string) (MaskMode, error) {
	switch s {
	case "tail", "back", "":
		return MaskTail, nil
	case "head", "front":
		return MaskHead, nil
	default:
		return "", fmt.Errorf("unknown mask mode %q (want tail or head)", s)
	}
}

// Toggle returns the opposite mode
func (m MaskMode) Toggle() MaskMode {
	if m == MaskHead {
		return MaskTail
	}
	return MaskHead
}

// Verdict is the self-graded outcome of one recall attempt
type Verdict string

const (
	VerdictKnown   Verdict = "known"
	VerdictUnknown Verdict = "unknown"
)

// State is the position of the current turn in the study loop
type State string

const (
	StateIdle     State = "idle"     // No selection
	StateShown    State = "shown"    // Selection displayed masked
	StateRevealed State = "revealed" // Selection displayed in full
	StateDepleted State = "depleted" // Working set exhausted, terminal
)

// Counts is the "remaining N / total M" indicator data
type Counts struct {
	Total     int `json:"total" yaml:"total"`
	Remaining int `json:"remaining" yaml:"remaining"`
}

// Done returns how many entries have been classified
func (c Counts) Done() int {
	return c.Total - c.Remaining
}

// Display is what the view renders after every call into the session
type Display struct {
	Text   string   `json:"text"`
	State  State    `json:"state"`
	Mode   MaskMode `json:"mode"`
	Counts Counts   `json:"counts"`
}

// Depleted reports whether the session has no more entries to offer
func (d Display) Depleted() bool {
	return d.State == StateDepleted
}
