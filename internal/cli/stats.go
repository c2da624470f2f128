package cli

import (
	"fmt"

	"github.com/ppiankov/recito/internal/corpus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats [corpus]",
	Short: "Show progress recorded next to a corpus",
	Long: `Stats counts the lines left in the mirror file and the lines recorded in
the known and unknown logs. Nothing is created or modified.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	paths := cfg.Corpus.Paths()

	remaining, err := corpus.CountLines(paths.Mirror)
	if err != nil {
		return err
	}
	known, err := corpus.NewLog(paths.Known).Count()
	if err != nil {
		return err
	}
	unknown, err := corpus.NewLog(paths.Unknown).Count()
	if err != nil {
		return err
	}

	logger.Debug("stats",
		zap.String("corpus", paths.Corpus),
		zap.Int("remaining", remaining),
		zap.Int("known", known),
		zap.Int("unknown", unknown))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Corpus:    %s\n", paths.Corpus)
	fmt.Fprintf(out, "Remaining: %d\n", remaining)
	fmt.Fprintf(out, "Known:     %d\n", known)
	fmt.Fprintf(out, "Unknown:   %d\n", unknown)

	if total := known + unknown; total > 0 {
		fmt.Fprintf(out, "Recall:    %.0f%%\n", float64(known)*100/float64(total))
	}
	return nil
}
