package model

import "path/filepath"

// DefaultBoundaries are the punctuation marks that split a verse line
const DefaultBoundaries = "，。？；！、"

// Config is the complete recito configuration
type Config struct {
	Corpus  CorpusConfig  `yaml:"corpus" mapstructure:"corpus"`
	Mask    MaskConfig    `yaml:"mask" mapstructure:"mask"`
	Session SessionConfig `yaml:"session" mapstructure:"session"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
}

// CorpusConfig locates the corpus and the files kept next to it
type CorpusConfig struct {
	Path    string `yaml:"path" mapstructure:"path"`       // Source corpus, one entry per line
	Mirror  string `yaml:"mirror" mapstructure:"mirror"`   // Remaining entries; relative names resolve next to Path
	Known   string `yaml:"known" mapstructure:"known"`     // Append-only log of known entries
	Unknown string `yaml:"unknown" mapstructure:"unknown"` // Append-only log of unknown entries
	Exclude string `yaml:"exclude" mapstructure:"exclude"` // Lines matching this pattern are skipped
}

// MaskConfig controls how lines are concealed
type MaskConfig struct {
	Mode        MaskMode `yaml:"mode" mapstructure:"mode"`
	Boundaries  string   `yaml:"boundaries" mapstructure:"boundaries"`
	Placeholder string   `yaml:"placeholder" mapstructure:"placeholder"`
	CacheSize   int      `yaml:"cache_size" mapstructure:"cache_size"` // Memoized renders kept; 0 disables
}

// SessionConfig controls the study loop
type SessionConfig struct {
	Resume bool  `yaml:"resume" mapstructure:"resume"` // Load from the mirror instead of the corpus
	Seed   int64 `yaml:"seed" mapstructure:"seed"`     // 0 picks a random seed
}

// OutputConfig controls logging
type OutputConfig struct {
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
	LogFile string `yaml:"log_file" mapstructure:"log_file"`
}

// Paths is the resolved set of files a session owns
type Paths struct {
	Corpus  string
	Mirror  string
	Known   string
	Unknown string
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Corpus: CorpusConfig{
			Path:    "sentences.txt",
			Mirror:  "sentences_new.txt",
			Known:   "true.txt",
			Unknown: "false.txt",
			Exclude: `[《》0-9()·]`,
		},
		Mask: MaskConfig{
			Mode:        MaskTail,
			Boundaries:  DefaultBoundaries,
			Placeholder: "_",
			CacheSize:   512,
		},
		Output: OutputConfig{
			LogFile: "recito.log",
		},
	}
}

// Paths resolves the mirror and log names against the corpus directory.
// Absolute names are kept as-is.
func (c CorpusConfig) Paths() Paths {
	corpus, err := filepath.Abs(c.Path)
	if err != nil {
		corpus = c.Path
	}
	dir := filepath.Dir(corpus)
	resolve := func(name string) string {
		if filepath.IsAbs(name) {
			return name
		}
		return filepath.Join(dir, name)
	}

	return Paths{
		Corpus:  corpus,
		Mirror:  resolve(c.Mirror),
		Known:   resolve(c.Known),
		Unknown: resolve(c.Unknown),
	}
}
