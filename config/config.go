// Package config loads bouncer settings from an optional YAML file and the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/bouncer/fs"
	"github.com/fwojciec/bouncer/gemini"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv  = "BOUNCER_CONFIG"
	dataDirEnv     = "BOUNCER_DATA_DIR"
	engineEnv      = "BOUNCER_CLASSIFIER"
	geminiKeyEnv   = "GEMINI_API_KEY"
	geminiModelEnv = "GEMINI_MODEL"
)

// Classifier engines.
const (
	EngineHeuristic = "heuristic"
	EngineGemini    = "gemini"
)

const (
	defaultWorkers    = 4
	defaultMaxRetries = 3
	reviewsFile       = "reviews.jsonl"
	tagVotesFile      = "tag_votes.jsonl"
)

// Config holds the settings used by the bouncer CLI.
type Config struct {
	DataDir    string           `yaml:"dataDir"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Reclassify ReclassifyConfig `yaml:"reclassify"`
}

// ClassifierConfig selects and configures the classification engine.
type ClassifierConfig struct {
	Engine   string       `yaml:"engine"`
	CacheDir string       `yaml:"cacheDir"`
	Gemini   GeminiConfig `yaml:"gemini"`
}

// GeminiConfig describes how to reach the Gemini API.
type GeminiConfig struct {
	APIKey string `yaml:"apiKey"`
	Model  string `yaml:"model"`
}

// ReclassifyConfig bounds the bulk reclassification worker pool.
type ReclassifyConfig struct {
	Workers    int `yaml:"workers"`
	MaxRetries int `yaml:"maxRetries"`
}

// ReviewsPath is the JSONL file holding reviews.
func (c Config) ReviewsPath() string {
	return filepath.Join(c.DataDir, reviewsFile)
}

// TagVotesPath is the JSONL file holding tag votes.
func (c Config) TagVotesPath() string {
	return filepath.Join(c.DataDir, tagVotesFile)
}

// Validate reports settings that cannot be used.
func (c Config) Validate() error {
	switch c.Classifier.Engine {
	case EngineHeuristic:
	case EngineGemini:
		if c.Classifier.Gemini.APIKey == "" {
			return fmt.Errorf("config: %s engine requires %s", EngineGemini, geminiKeyEnv)
		}
	default:
		return fmt.Errorf("config: unknown classifier engine %q (valid: %s, %s)",
			c.Classifier.Engine, EngineHeuristic, EngineGemini)
	}
	return nil
}

// Load reads YAML configuration (if present) and applies environment
// overrides. The returned Config is always usable: when the file named by
// BOUNCER_CONFIG cannot be read or parsed, Load keeps the defaults and
// returns the problem as a non-nil error for the caller to report.
func Load() (Config, error) {
	cfg := defaultConfig()

	var fileErr error
	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			fileErr = fmt.Errorf("config: cannot read %s: %w", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				fileErr = fmt.Errorf("config: cannot parse %s: %w", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg, fileErr
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(dataDirEnv); v != "" {
		c.DataDir = v
	}

	if v := os.Getenv(engineEnv); v != "" {
		c.Classifier.Engine = v
	}

	if v := os.Getenv(geminiKeyEnv); v != "" {
		c.Classifier.Gemini.APIKey = v
	}

	if v := os.Getenv(geminiModelEnv); v != "" {
		c.Classifier.Gemini.Model = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.DataDir != "" {
		base.DataDir = override.DataDir
	}

	if override.Classifier.Engine != "" {
		base.Classifier.Engine = override.Classifier.Engine
	}
	if override.Classifier.CacheDir != "" {
		base.Classifier.CacheDir = override.Classifier.CacheDir
	}
	if override.Classifier.Gemini.APIKey != "" {
		base.Classifier.Gemini.APIKey = override.Classifier.Gemini.APIKey
	}
	if override.Classifier.Gemini.Model != "" {
		base.Classifier.Gemini.Model = override.Classifier.Gemini.Model
	}

	if override.Reclassify.Workers > 0 {
		base.Reclassify.Workers = override.Reclassify.Workers
	}
	if override.Reclassify.MaxRetries > 0 {
		base.Reclassify.MaxRetries = override.Reclassify.MaxRetries
	}

	return base
}

func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "bouncer")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), "bouncer")
	}
	return filepath.Join(home, ".local", "share", "bouncer")
}

func defaultConfig() Config {
	return Config{
		DataDir: defaultDataDir(),
		Classifier: ClassifierConfig{
			Engine:   EngineHeuristic,
			CacheDir: fs.DefaultCacheDir(),
			Gemini:   GeminiConfig{Model: gemini.DefaultModel},
		},
		Reclassify: ReclassifyConfig{
			Workers:    defaultWorkers,
			MaxRetries: defaultMaxRetries,
		},
	}
}
