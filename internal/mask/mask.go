// Package mask conceals part of a line around its first punctuation boundary.
// All positions and lengths are counted in code points, never bytes.
package mask

import (
	"strings"

	"github.com/ppiankov/recito/internal/model"
)

// DefaultBoundaries are the punctuation marks that split a verse line
const DefaultBoundaries = model.DefaultBoundaries

// DefaultPlaceholder stands in for each concealed character
const DefaultPlaceholder = '_'

// Masker computes masked display strings. It is stateless after construction.
type Masker struct {
	boundaries  map[rune]struct{}
	placeholder rune
}

// NewMasker builds a masker from the boundary characters and placeholder.
// Empty arguments fall back to the defaults.
func NewMasker(boundaries string, placeholder string) *Masker {
	if boundaries == "" {
		boundaries = DefaultBoundaries
	}
	m := &Masker{
		boundaries:  make(map[rune]struct{}),
		placeholder: DefaultPlaceholder,
	}
	for _, r := range boundaries {
		m.boundaries[r] = struct{}{}
	}
	for _, r := range placeholder {
		m.placeholder = r
		break
	}
	return m
}

// FromConfig builds a masker from configuration
func FromConfig(cfg model.MaskConfig) *Masker {
	return NewMasker(cfg.Boundaries, cfg.Placeholder)
}

var defaultMasker = NewMasker(DefaultBoundaries, string(DefaultPlaceholder))

// Mask masks line with the default boundaries and placeholder
func Mask(line string, mode model.MaskMode) string {
	return defaultMasker.Mask(line, mode)
}

// Reveal returns line unchanged
func Reveal(line string) string {
	return line
}

// Boundary returns the code point index of the first boundary character, or -1
func (m *Masker) Boundary(line string) int {
	i := 0
	for _, r := range line {
		if _, ok := m.boundaries[r]; ok {
			return i
		}
		i++
	}
	return -1
}

// Mask replaces one side of the first boundary with placeholders, one per
// masked code point. Lines without a boundary are masked entirely.
func (m *Masker) Mask(line string, mode model.MaskMode) string {
	runes := []rune(line)
	p := m.Boundary(line)
	if p < 0 {
		return m.fill(len(runes))
	}

	if mode == model.MaskHead {
		return m.fill(p) + string(runes[p:])
	}
	return string(runes[:p+1]) + m.fill(len(runes)-p-1)
}

func (m *Masker) fill(n int) string {
	return strings.Repeat(string(m.placeholder), n)
}
