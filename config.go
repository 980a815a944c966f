package boundaryx

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/boundaryx/boundaryx/internal/dispatch"
	"github.com/boundaryx/boundaryx/internal/language"
)

// DefaultConfigFilePath mirrors the teacher's convention of a single
// well-known config path under the user's home directory.
var DefaultConfigFilePath = filepath.Join(getUserHomeDir(), ".config/boundaryx/config.yaml")

// ExecutionMode selects how Process distributes chunk scanning across
// goroutines. It is the dispatch package's Strategy under the name
// SPEC_FULL.md's external interface section gives it.
type ExecutionMode = dispatch.Strategy

const (
	Adaptive   = dispatch.Adaptive
	Sequential = dispatch.Sequential
	Parallel   = dispatch.Parallel
)

// Config controls one Process call. LanguageCode/LanguageFile are the
// on-disk representation (what NewConfig loads from YAML); Language is
// resolved from one of them before Process runs — see Resolve.
type Config struct {
	LanguageCode string `yaml:"language"`
	LanguageFile string `yaml:"language_file"`

	Mode                   ExecutionMode `yaml:"-"`
	ModeName               string        `yaml:"mode"`
	Threads                int           `yaml:"threads"`
	ChunkSizeBytes         int           `yaml:"chunk_size_bytes"`
	OverlapBytes           int           `yaml:"overlap_bytes"`
	AdaptiveThresholdBytes int           `yaml:"adaptive_threshold_bytes"`

	// Language is the compiled rule set Process actually consults. It is
	// populated by Resolve from LanguageCode/LanguageFile, or may be set
	// directly by callers who already hold a *language.Language.
	Language *language.Language `yaml:"-"`
}

// DefaultConfig returns the settings Process uses when a caller leaves a
// field at its zero value: adaptive scheduling, one chunk per 128KiB,
// a 64-rune chunk overlap, and English as the default language.
func DefaultConfig() Config {
	return Config{
		LanguageCode:           "en",
		Mode:                   Adaptive,
		ChunkSizeBytes:         128 * 1024,
		OverlapBytes:           64,
		AdaptiveThresholdBytes: dispatch.AdaptiveThresholdBytes,
	}
}

// NewConfig reads a Config from a YAML file, following the teacher's
// config.go idiom (os.ReadFile + yaml.Unmarshal), then resolves its
// language.
func NewConfig(filePath string) (*Config, error) {
	bin, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(bin, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Resolve(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Resolve fills in Config.Mode from ModeName (an empty ModeName keeps
// Mode as it is) and Config.Language from LanguageCode/LanguageFile,
// defaulting unset numeric fields. Process calls Resolve itself when
// Config.Language is nil, so callers that construct a Config by hand
// without ever touching YAML do not need to call it directly.
func (c *Config) Resolve() error {
	switch c.ModeName {
	case "sequential":
		c.Mode = Sequential
	case "parallel":
		c.Mode = Parallel
	case "":
	default:
		c.Mode = Adaptive
	}
	if c.ChunkSizeBytes <= 0 {
		c.ChunkSizeBytes = DefaultConfig().ChunkSizeBytes
	}
	if c.AdaptiveThresholdBytes <= 0 {
		c.AdaptiveThresholdBytes = dispatch.AdaptiveThresholdBytes
	}

	if c.Language != nil {
		return nil
	}
	if c.LanguageFile != "" {
		lang, err := language.LoadFile(c.LanguageFile)
		if err != nil {
			return err
		}
		c.Language = lang
		return nil
	}
	code := c.LanguageCode
	if code == "" {
		code = "en"
	}
	lang, err := language.Builtin(code)
	if err != nil {
		return err
	}
	c.Language = lang
	return nil
}

// GenerateSample writes a sample configuration file with default values,
// matching the teacher's GenerateSample (yaml.Marshal + os.WriteFile).
func GenerateSample(filePath string) error {
	cfg := DefaultConfig()
	cfg.ModeName = "adaptive"
	bin, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, bin, 0644)
}

func getUserHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	return homeDir
}
