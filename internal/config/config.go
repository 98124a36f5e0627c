// Package config loads piccy-mcp settings from an optional YAML file and
// PICCY_* environment variables.
//
// Precedence, lowest first: built-in defaults, the YAML file, the environment.
// A .env file in the working directory is loaded into the environment first
// when present; variables already set in the process win over it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ironsheep/piccy/internal/imaging"
)

// DefaultFileName is looked up in the working directory when no path is given.
const DefaultFileName = "piccy.yaml"

// Environment variables.
const (
	EnvConfig     = "PICCY_CONFIG"
	EnvLogLevel   = "PICCY_LOG_LEVEL"
	EnvLogFormat  = "PICCY_LOG_FORMAT"
	EnvWorkers    = "PICCY_WORKERS"
	EnvOutputDir  = "PICCY_OUTPUT_DIR"
	EnvFrameDelay = "PICCY_FRAME_DELAY_MS"
	EnvOutputFmt  = "PICCY_OUTPUT_FORMAT"
)

const defaultDelayMs = 20

// Config holds every runtime setting of the server.
type Config struct {
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`

	// Workers caps per-call image parallelism; 0 means GOMAXPROCS.
	Workers int `yaml:"workers"`

	// OutputDir receives files saved without an explicit path.
	OutputDir string `yaml:"output_dir"`

	// OutputFormat is the default encoding for image_encode and image_save.
	OutputFormat string `yaml:"output_format"`

	// FrameDelayMs is the default merge_gif frame delay.
	FrameDelayMs int `yaml:"frame_delay_ms"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{
		Workers:      0,
		OutputFormat: "png",
		FrameDelayMs: defaultDelayMs,
		OutputDir:    defaultOutputDir(),
	}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	return cfg
}

func defaultOutputDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Downloads")
}

// Load builds the configuration.
//
// path names a YAML file; when empty, $PICCY_CONFIG and then ./piccy.yaml are
// tried, and a missing default file is not an error. An explicitly named file
// must exist.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("ignoring unreadable .env file")
	}

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfig)
		explicit = path != ""
	}
	if !explicit {
		path = DefaultFileName
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file; defaults and environment only.
	default:
		return nil, errors.Wrapf(err, "read config %s", path)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv(EnvOutputFmt); v != "" {
		c.OutputFormat = v
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errors.Wrapf(err, "%s", EnvWorkers)
		}
		c.Workers = n
	}
	if v := os.Getenv(EnvFrameDelay); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errors.Wrapf(err, "%s", EnvFrameDelay)
		}
		c.FrameDelayMs = n
	}
	return nil
}

// Validate rejects unknown log levels, formats and negative numbers.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "log.level")
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q (want text or json)", c.Log.Format)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers: must not be negative, got %d", c.Workers)
	}
	if c.FrameDelayMs < 0 {
		return fmt.Errorf("frame_delay_ms: must not be negative, got %d", c.FrameDelayMs)
	}
	if _, err := imaging.ParseOutputFormat(c.OutputFormat); err != nil {
		return errors.Wrap(err, "output_format")
	}
	return nil
}

// FrameDelay returns the default merge_gif frame delay.
func (c *Config) FrameDelay() time.Duration {
	return time.Duration(c.FrameDelayMs) * time.Millisecond
}

// Format returns the parsed default output format.
func (c *Config) Format() imaging.OutputFormat {
	f, err := imaging.ParseOutputFormat(c.OutputFormat)
	if err != nil {
		return imaging.PNG
	}
	return f
}

// ConfigureLogging applies the log level and format to the standard logrus
// logger. Output goes to stderr; stdout is reserved for the protocol.
func (c *Config) ConfigureLogging() {
	log.SetOutput(os.Stderr)
	if lvl, err := log.ParseLevel(c.Log.Level); err == nil {
		log.SetLevel(lvl)
	}
	if strings.EqualFold(c.Log.Format, "json") {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
