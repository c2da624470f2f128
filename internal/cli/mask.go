package cli

import (
	"fmt"
	"regexp"

	"github.com/ppiankov/recito/internal/corpus"
	"github.com/ppiankov/recito/internal/mask"
	"github.com/ppiankov/recito/internal/model"
	"github.com/spf13/cobra"
)

var maskMode string

// maskCmd represents the mask command
var maskCmd = &cobra.Command{
	Use:   "mask [corpus]",
	Short: "Print every corpus line masked, without starting a session",
	Long: `Mask loads and filters the corpus exactly like study does and prints each
line masked. No session files are created or changed.

Example:
  recito mask sentences.txt
  recito mask sentences.txt --mode head`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMask,
}

func init() {
	rootCmd.AddCommand(maskCmd)
	addCorpusFlags(maskCmd)

	maskCmd.Flags().StringVar(&maskMode, "mode", "", "mask mode: tail or head (default from config)")
}

func runMask(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	mode := cfg.Mask.Mode
	if cmd.Flags().Changed("mode") {
		mode, err = model.ParseMaskMode(maskMode)
		if err != nil {
			return err
		}
	}

	var re *regexp.Regexp
	if cfg.Corpus.Exclude != "" {
		re, err = regexp.Compile(cfg.Corpus.Exclude)
		if err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", cfg.Corpus.Exclude, err)
		}
	}

	set, err := corpus.Load(cfg.Corpus.Path, re)
	if err != nil {
		return startupError(err)
	}

	masker := mask.FromConfig(cfg.Mask)
	out := cmd.OutOrStdout()
	for _, line := range set.Entries() {
		fmt.Fprintln(out, masker.Mask(line, mode))
	}

	logger.Debug("masked corpus")
	return nil
}
