package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ppiankov/recito/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const version = "recito v0.2.0"

var (
	cfgFile string
	verbose bool

	logger = zap.NewNop()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "recito",
	Short: "Recito - recite verse lines from memory, one half at a time",
	Long: `Recito helps you memorize short lines of text, such as classical verse.

Each line is shown with one side of its first punctuation mark hidden.
Recall the hidden part, reveal it, and mark whether you knew it. Known and
unknown lines are appended to separate logs and removed from the pool, and a
mirror of the remaining lines is kept next to the corpus.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(cmd)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.recito/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".recito"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match RECITO_* (RECITO_CORPUS_PATH, ...)
	viper.SetEnvPrefix("RECITO")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig overlays the config file, environment and bound flags on the defaults
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	setDefaults(viper.GetViper(), cfg)
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	return cfg, nil
}

// newLogger builds a production zap logger. The study command draws a full
// screen UI, so its log goes to the configured file instead of stderr.
func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if viper.GetBool("output.verbose") {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	if cmd == studyCmd {
		logFile := viper.GetString("output.log_file")
		if logFile == "" {
			return zap.NewNop(), nil
		}
		config.OutputPaths = []string{logFile}
		config.ErrorOutputPaths = []string{logFile}
	}

	return config.Build()
}
