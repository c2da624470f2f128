package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ppiankov/recito/internal/corpus"
	"github.com/ppiankov/recito/internal/model"
	"github.com/ppiankov/recito/internal/session"
	"github.com/ppiankov/recito/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	maskHead   bool
	resume     bool
	exclude    string
	boundaries string
	seed       int64
)

// studyCmd represents the study command
var studyCmd = &cobra.Command{
	Use:   "study [corpus]",
	Short: "Start an interactive study session",
	Long: `Study draws lines at random from the corpus and shows each one with part
of it hidden. Keys:

  space/enter  reveal the full line
  y            mark as known (appended to the known log)
  n            mark as unknown (appended to the unknown log)
  m            toggle between hiding the first and second half
  q            quit

Classified lines are removed from the mirror file next to the corpus, so
--resume picks up where the last session stopped.

Example:
  recito study sentences.txt
  recito study sentences.txt --head
  recito study --resume`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStudy,
}

func init() {
	rootCmd.AddCommand(studyCmd)
	addCorpusFlags(studyCmd)

	studyCmd.Flags().BoolVar(&maskHead, "head", false, "hide the first half instead of the second")
	studyCmd.Flags().BoolVar(&resume, "resume", false, "load remaining lines from the mirror file")
	studyCmd.Flags().Int64Var(&seed, "seed", 0, "random seed for draws (0 = random)")
}

// addCorpusFlags registers the filtering flags shared by commands reading a corpus
func addCorpusFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&exclude, "exclude", "", "skip lines matching this regular expression")
	cmd.Flags().StringVar(&boundaries, "boundaries", "", "characters that split a line")
}

// buildConfig loads the configuration and overlays the corpus argument and flags
func buildConfig(cmd *cobra.Command, args []string) (*model.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if len(args) > 0 {
		cfg.Corpus.Path = args[0]
	}

	flags := cmd.Flags()
	if flags.Changed("exclude") {
		cfg.Corpus.Exclude = exclude
	}
	if flags.Changed("boundaries") {
		cfg.Mask.Boundaries = boundaries
	}
	if flags.Changed("head") && maskHead {
		cfg.Mask.Mode = model.MaskHead
	}
	if flags.Changed("resume") {
		cfg.Session.Resume = resume
	}
	if flags.Changed("seed") {
		cfg.Session.Seed = seed
	}
	return cfg, nil
}

func runStudy(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	s, err := session.Start(cfg,
		session.WithLogger(logger),
		session.WithCountsHook(func(c model.Counts) {
			logger.Debug("counts", zap.Int("remaining", c.Remaining), zap.Int("total", c.Total))
		}),
	)
	if err != nil {
		return startupError(err)
	}

	if err := ui.Run(s, tea.WithAltScreen()); err != nil {
		return fmt.Errorf("study session: %w", err)
	}

	c := s.Counts()
	fmt.Fprintf(cmd.OutOrStdout(), "Studied %d of %d lines, %d remaining.\n", c.Done(), c.Total, c.Remaining)
	return nil
}

// startupError turns fatal startup failures into a message naming the cause
func startupError(err error) error {
	var serr *corpus.StorageError
	switch {
	case errors.Is(err, corpus.ErrCorpusNotFound):
		return fmt.Errorf("cannot start: corpus file is missing (%w)", err)
	case errors.Is(err, corpus.ErrEmptyCorpus):
		return fmt.Errorf("cannot start: corpus has no usable lines (%w)", err)
	case errors.As(err, &serr):
		fmt.Fprintf(os.Stderr, "Check that %s is readable and its directory is writable.\n", serr.Path)
		return fmt.Errorf("cannot start: %w", err)
	default:
		return err
	}
}
