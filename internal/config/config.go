package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SourceConfig selects where the schedule dataset is read from. Exactly one
// of File, URL or Firebase is used; Firebase wins over URL, URL over File.
type SourceConfig struct {
	// File is a path to a local schedules JSON export.
	File string `yaml:"file,omitempty" json:"file,omitempty"`
	// URL is an HTTP(S) endpoint serving the same JSON document.
	URL string `yaml:"url,omitempty" json:"url,omitempty"`
	// Firebase, if non-nil, reads the dataset from a Realtime Database.
	Firebase *FirebaseConfig `yaml:"firebase,omitempty" json:"firebase,omitempty"`
}

// FirebaseConfig holds Realtime Database credentials and options.
type FirebaseConfig struct {
	CredentialsFile string `yaml:"credentials_file" json:"credentials_file"`
	DatabaseURL     string `yaml:"database_url" json:"database_url"`
	// PublishSnapshot pushes the precomputed free-rooms map back to the
	// database on every refresh.
	PublishSnapshot bool `yaml:"publish_snapshot" json:"publish_snapshot"`
}

// SlotTable describes the teaching slots of a campus day. Starts are the
// slot start times offered to clients; the lunch window is used when
// searching for a class's next session.
type SlotTable struct {
	Starts          []string `yaml:"starts" json:"starts"`
	LunchBreakStart string   `yaml:"lunch_break_start" json:"lunch_break_start"`
	LunchBreakEnd   string   `yaml:"lunch_break_end" json:"lunch_break_end"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the API.
	Listen string `yaml:"listen" json:"listen"`

	// APIKey is the static key checked against the X-API-Key header on
	// /api/v1 routes. The API_KEY environment variable overrides it.
	APIKey string `yaml:"api_key" json:"api_key"`

	// Source selects the schedule dataset source.
	Source SourceConfig `yaml:"source" json:"source"`

	// RefreshCron is a cron-style schedule (robfig/cron syntax, "@every"
	// accepted) for dataset refresh.
	RefreshCron string `yaml:"refresh" json:"refresh"`

	// Maintenance serves 503 on all API routes when set.
	Maintenance bool `yaml:"maintenance" json:"maintenance"`

	// AlternateSlots switches to the adjusted (shortened-day) slot table
	// used during Ramadan.
	AlternateSlots bool `yaml:"alternate_slots" json:"alternate_slots"`

	// Slots overrides the built-in slot tables entirely.
	Slots *SlotTable `yaml:"slots,omitempty" json:"slots,omitempty"`
}

var normalSlots = SlotTable{
	Starts:          []string{"09:00", "13:30"},
	LunchBreakStart: "12:15",
	LunchBreakEnd:   "13:30",
}

var alternateSlots = SlotTable{
	Starts:          []string{"08:30", "11:50"},
	LunchBreakStart: "11:10",
	LunchBreakEnd:   "11:50",
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:      "127.0.0.1:8080",
		Source:      SourceConfig{File: filepath.Join("data", "schedules.json")},
		RefreshCron: "@every 30s",
	}
}

// Normalize fills in missing values so partially-filled configs still
// behave correctly.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = "127.0.0.1:8080"
	}
	if c.Source.File == "" && c.Source.URL == "" && c.Source.Firebase == nil {
		c.Source.File = filepath.Join("data", "schedules.json")
	}
	if c.RefreshCron == "" {
		c.RefreshCron = "@every 30s"
	}
	if c.Slots != nil && len(c.Slots.Starts) == 0 {
		c.Slots = nil
	}
}

// ResolvedSlots returns the effective slot table: an explicit override if
// present, otherwise the normal or alternate built-in table.
func (c *Config) ResolvedSlots() SlotTable {
	if c.Slots != nil {
		return *c.Slots
	}
	if c.AlternateSlots {
		return alternateSlots
	}
	return normalSlots
}

// Load loads configuration from the given YAML path. A missing file is a
// first run: a default config is written with 0600 perms and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the configuration atomically (temp file + rename) with 0600
// permissions, creating the parent directory if needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".rooms-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
