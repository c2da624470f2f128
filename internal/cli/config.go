package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/recito/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var envKeyReplacer = strings.NewReplacer(".", "_")

// setDefaults registers every config key so environment overrides reach Unmarshal
func setDefaults(v *viper.Viper, cfg *model.Config) {
	v.SetDefault("corpus.path", cfg.Corpus.Path)
	v.SetDefault("corpus.mirror", cfg.Corpus.Mirror)
	v.SetDefault("corpus.known", cfg.Corpus.Known)
	v.SetDefault("corpus.unknown", cfg.Corpus.Unknown)
	v.SetDefault("corpus.exclude", cfg.Corpus.Exclude)
	v.SetDefault("mask.mode", string(cfg.Mask.Mode))
	v.SetDefault("mask.boundaries", cfg.Mask.Boundaries)
	v.SetDefault("mask.placeholder", cfg.Mask.Placeholder)
	v.SetDefault("mask.cache_size", cfg.Mask.CacheSize)
	v.SetDefault("session.resume", cfg.Session.Resume)
	v.SetDefault("session.seed", cfg.Session.Seed)
	v.SetDefault("output.verbose", cfg.Output.Verbose)
	v.SetDefault("output.log_file", cfg.Output.LogFile)
}

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage Recito configuration",
	Long: `Manage Recito configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (RECITO_*)
3. Config file (~/.recito/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration after merging defaults, config file, environment and flags.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if configFile := viper.ConfigFileUsed(); configFile != "" {
			fmt.Fprintf(os.Stderr, "Configuration file: %s\n\n", configFile)
		} else {
			fmt.Fprintf(os.Stderr, "No configuration file found (using defaults)\n\n")
		}

		yamlData, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprint(out, string(yamlData))

		paths := cfg.Corpus.Paths()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "# Resolved files")
		fmt.Fprintf(out, "#   corpus:  %s\n", paths.Corpus)
		fmt.Fprintf(out, "#   mirror:  %s\n", paths.Mirror)
		fmt.Fprintf(out, "#   known:   %s\n", paths.Known)
		fmt.Fprintf(out, "#   unknown: %s\n", paths.Unknown)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize default configuration file",
	Long:  `Create a default configuration file at ~/.recito/config.yaml with all available options.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		configPath := cfgFile
		if configPath == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("error finding home directory: %w", err)
			}
			configPath = filepath.Join(home, ".recito", "config.yaml")
		}

		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config file already exists: %s\nUse 'recito config show' to view it, or delete it first to recreate", configPath)
		}

		if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
			return fmt.Errorf("error creating config directory: %w", err)
		}

		f, err := os.Create(configPath)
		if err != nil {
			return fmt.Errorf("error creating config file: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("close config file: %w", closeErr)
			}
		}()

		// Helper for writing with error checking
		printf := func(format string, a ...interface{}) {
			if err != nil {
				return
			}
			_, err = fmt.Fprintf(f, format, a...)
		}

		printf("# Recito Configuration File\n")
		printf("#\n")
		printf("# Configuration hierarchy (highest to lowest priority):\n")
		printf("#   1. CLI flags\n")
		printf("#   2. Environment variables (RECITO_*, e.g. RECITO_CORPUS_PATH)\n")
		printf("#   3. This config file\n")
		printf("#   4. Built-in defaults\n")
		printf("#\n")
		printf("# mirror, known and unknown are resolved next to corpus.path unless absolute.\n")
		printf("# mask.mode is \"tail\" (hide the second half) or \"head\" (hide the first half).\n\n")

		yamlData, mErr := yaml.Marshal(model.DefaultConfig())
		if mErr != nil {
			return fmt.Errorf("error marshaling config: %w", mErr)
		}
		if err == nil {
			if _, wErr := f.Write(yamlData); wErr != nil {
				return fmt.Errorf("error writing config: %w", wErr)
			}
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✓ Created default configuration: %s\n", configPath)
		fmt.Fprintf(out, "\nTo view the configuration:\n")
		fmt.Fprintf(out, "  recito config show\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
