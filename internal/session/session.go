// Package session drives the study loop: draw, show masked, reveal, classify,
// persist, redraw.
//
// A Session is owned by a single view and is not safe for concurrent use.
package session

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"

	"github.com/ppiankov/recito/internal/corpus"
	"github.com/ppiankov/recito/internal/mask"
	"github.com/ppiankov/recito/internal/model"
	"go.uber.org/zap"
)

// ErrInvalidState is returned by Reveal and Classify when nothing is selected
var ErrInvalidState = errors.New("session: no current selection")

// Warning wraps runtime storage failures that do not stop the session.
// The in-memory state has already advanced when one is returned.
type Warning struct {
	Err error
}

func (w *Warning) Error() string {
	return "session: " + w.Err.Error()
}

func (w *Warning) Unwrap() error {
	return w.Err
}

// IsWarning reports whether err is a non-fatal Warning
func IsWarning(err error) bool {
	var w *Warning
	return errors.As(err, &w)
}

// Session is the state of one study run
type Session struct {
	store    *corpus.Store
	known    *corpus.Log
	unknown  *corpus.Log
	renderer *mask.Renderer
	rng      *rand.Rand
	logger   *zap.Logger
	onCounts func(model.Counts)

	mode      model.MaskMode
	state     model.State
	pos       int // index into the working set, -1 when nothing is selected
	total     int
	remaining int
}

// Option configures a Session
type Option func(*Session)

// WithRand sets the source used for draws
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithLogger sets the logger. Default: no-op.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithCountsHook registers fn to receive counts after every call that changes
// the session: Next, Reveal, Classify and SetMaskMode
func WithCountsHook(fn func(model.Counts)) Option {
	return func(s *Session) { s.onCounts = fn }
}

// Start prepares the session files, loads the working set and returns an idle
// session. Every error returned here is fatal and names the offending path.
func Start(cfg *model.Config, opts ...Option) (*Session, error) {
	var exclude *regexp.Regexp
	if cfg.Corpus.Exclude != "" {
		re, err := regexp.Compile(cfg.Corpus.Exclude)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", cfg.Corpus.Exclude, err)
		}
		exclude = re
	}

	mode, err := model.ParseMaskMode(string(cfg.Mask.Mode))
	if err != nil {
		return nil, err
	}

	paths := cfg.Corpus.Paths()
	store, err := corpus.Open(paths, exclude, cfg.Session.Resume)
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}

	if cfg.Session.Seed != 0 {
		seed := uint64(cfg.Session.Seed)
		opts = append([]Option{WithRand(rand.New(rand.NewPCG(seed, seed)))}, opts...)
	}

	renderer := mask.NewRenderer(mask.FromConfig(cfg.Mask), cfg.Mask.CacheSize)
	s := New(store, corpus.NewLog(paths.Known), corpus.NewLog(paths.Unknown), renderer, mode, opts...)

	s.logger.Info("session started",
		zap.String("corpus", paths.Corpus),
		zap.String("mirror", paths.Mirror),
		zap.Bool("resume", cfg.Session.Resume),
		zap.Int("total", s.total))

	return s, nil
}

// New assembles a session over an already opened store
func New(store *corpus.Store, known, unknown *corpus.Log, renderer *mask.Renderer, mode model.MaskMode, opts ...Option) *Session {
	s := &Session{
		store:     store,
		known:     known,
		unknown:   unknown,
		renderer:  renderer,
		mode:      mode,
		state:     model.StateIdle,
		pos:       -1,
		total:     store.Set().Len(),
		remaining: store.Set().Len(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// Counts returns the remaining / total indicator
func (s *Session) Counts() model.Counts {
	return model.Counts{Total: s.total, Remaining: s.remaining}
}

// State returns the current turn state
func (s *Session) State() model.State {
	return s.state
}

// Mode returns the mask mode used for draws
func (s *Session) Mode() model.MaskMode {
	return s.mode
}

// Current returns the selected entry, if any
func (s *Session) Current() (string, bool) {
	if !s.selected() {
		return "", false
	}
	return s.store.Set().At(s.pos), true
}

// Display renders the current state without changing it
func (s *Session) Display() model.Display {
	d := model.Display{State: s.state, Mode: s.mode, Counts: s.Counts()}
	switch s.state {
	case model.StateShown:
		d.Text = s.renderer.Render(s.store.Set().At(s.pos), s.mode)
	case model.StateRevealed:
		d.Text = mask.Reveal(s.store.Set().At(s.pos))
	}
	return d
}

// Next draws a new entry and shows it masked, or enters the depleted state
// when the working set is empty.
func (s *Session) Next() (model.Display, error) {
	d := s.next()
	s.notify()
	return d, nil
}

// Reveal shows the full text of the current entry
func (s *Session) Reveal() (model.Display, error) {
	if !s.selected() {
		return s.Display(), ErrInvalidState
	}
	s.state = model.StateRevealed
	s.notify()
	return s.Display(), nil
}

// Classify records the current entry under verdict, removes it from the
// working set and the mirror, and draws the next one. Storage failures are
// returned as a *Warning after the in-memory removal has happened.
func (s *Session) Classify(verdict model.Verdict) (model.Display, error) {
	if !s.selected() {
		return s.Display(), ErrInvalidState
	}

	var log *corpus.Log
	switch verdict {
	case model.VerdictKnown:
		log = s.known
	case model.VerdictUnknown:
		log = s.unknown
	default:
		return s.Display(), fmt.Errorf("unknown verdict %q", verdict)
	}

	entry := s.store.Set().At(s.pos)
	var errs []error

	if err := log.Append(entry); err != nil {
		s.logger.Warn("append to log failed", zap.String("log", log.Path()), zap.Error(err))
		errs = append(errs, err)
	}
	if err := s.store.RemoveAt(s.pos); err != nil {
		s.logger.Warn("mirror update failed", zap.String("mirror", s.store.MirrorPath()), zap.Error(err))
		errs = append(errs, err)
	}

	s.remaining--
	s.pos = -1
	s.state = model.StateIdle

	s.logger.Debug("entry classified",
		zap.String("verdict", string(verdict)),
		zap.String("entry", entry),
		zap.Int("remaining", s.remaining))

	d := s.next()
	s.notify()

	if len(errs) > 0 {
		return d, &Warning{Err: errors.Join(errs...)}
	}
	return d, nil
}

// SetMaskMode changes the mode for future draws. An entry that is currently
// shown masked is re-masked right away; a revealed entry stays revealed.
func (s *Session) SetMaskMode(mode model.MaskMode) (model.Display, error) {
	if mode != model.MaskTail && mode != model.MaskHead {
		return s.Display(), fmt.Errorf("unknown mask mode %q", mode)
	}
	s.mode = mode
	s.notify()
	return s.Display(), nil
}

func (s *Session) next() model.Display {
	pos, entry, ok := s.store.Set().Draw(s.rng)
	if !ok {
		s.pos = -1
		s.state = model.StateDepleted
		s.logger.Info("working set depleted", zap.Int("total", s.total))
		return s.Display()
	}

	s.pos = pos
	s.state = model.StateShown
	s.logger.Debug("entry drawn", zap.String("entry", entry), zap.String("mode", string(s.mode)))
	return s.Display()
}

func (s *Session) selected() bool {
	return s.pos >= 0 && (s.state == model.StateShown || s.state == model.StateRevealed)
}

func (s *Session) notify() {
	if s.onCounts != nil {
		s.onCounts(s.Counts())
	}
}
