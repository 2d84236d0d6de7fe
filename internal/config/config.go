package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// EnvPath overrides the config file location.
const EnvPath = "MESHLOG_CONFIG"

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

const (
	ModeMaster = "master"
	ModeReport = "report"
	ModeBoth   = "both"
)

// What to do with a log the classifier cannot attribute to either tool.
const (
	UnknownSkip        = "skip"
	UnknownPhotoMesh   = "photomesh"
	UnknownRealityMesh = "realitymesh"
	UnknownBoth        = "both"
)

type Config struct {
	OutputsDir    string `toml:"outputs_dir"`
	LedgerBackend string `toml:"ledger_backend"`
	UnknownPolicy string `toml:"unknown_policy"`
	Mode          string `toml:"mode"`
	Pattern       string `toml:"pattern"`
	DropBlank     bool   `toml:"drop_blank"`
	Log           Log    `toml:"log"`
}

type Log struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
	Compress   bool   `toml:"compress"`
}

// Path returns the config file location: $MESHLOG_CONFIG, or
// ~/.config/meshlog/config.toml.
func Path() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "meshlog", "config.toml"), nil
}

// Default returns the configuration used when no file exists.
func Default(home string) *Config {
	return &Config{
		OutputsDir:    filepath.Join(home, "meshlog", "outputs"),
		LedgerBackend: "tsv",
		UnknownPolicy: UnknownSkip,
		Mode:          ModeMaster,
		Pattern:       "*.log",
		Log: Log{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

func Load() (*Config, error) {
	cfgPath, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(cfgPath)
}

// LoadFile reads cfgPath over the defaults. A missing file is not an error.
func LoadFile(cfgPath string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	cfg := Default(home)
	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	// expand ~ in paths
	cfg.OutputsDir = expandHome(cfg.OutputsDir, home)
	cfg.Log.File = expandHome(cfg.Log.File, home)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", cfgPath, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.OutputsDir == "" {
		return fmt.Errorf("%w: outputs_dir is empty", ErrInvalid)
	}
	if !oneOf(c.LedgerBackend, "tsv", "sqlite") {
		return fmt.Errorf("%w: ledger_backend %q (want tsv or sqlite)", ErrInvalid, c.LedgerBackend)
	}
	if !oneOf(c.UnknownPolicy, UnknownSkip, UnknownPhotoMesh, UnknownRealityMesh, UnknownBoth) {
		return fmt.Errorf("%w: unknown_policy %q (want skip, photomesh, realitymesh or both)", ErrInvalid, c.UnknownPolicy)
	}
	if !oneOf(c.Mode, ModeMaster, ModeReport, ModeBoth) {
		return fmt.Errorf("%w: mode %q (want master, report or both)", ErrInvalid, c.Mode)
	}
	if _, err := filepath.Match(c.Pattern, ""); err != nil || c.Pattern == "" {
		return fmt.Errorf("%w: pattern %q", ErrInvalid, c.Pattern)
	}
	if !oneOf(c.Log.Level, "debug", "info", "warn", "error") {
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
