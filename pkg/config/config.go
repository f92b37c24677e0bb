package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/pyhub-apps/cookbook-pdf/pkg/fetch"
	"github.com/pyhub-apps/cookbook-pdf/pkg/layout"
	"github.com/pyhub-apps/cookbook-pdf/pkg/pdf"
	"github.com/pyhub-apps/cookbook-pdf/pkg/titles"
)

// DefaultPDFURL is the cookbook processed when no source is configured.
const DefaultPDFURL = "https://reseaudumieuxetre.ca/wp-content/uploads/2021/01/French-Canadian-Recipes-.pdf"

// Environment variables that override the file configuration.
const (
	EnvPDFURL       = "COOKBOOK_PDF_URL"
	EnvPolicy       = "COOKBOOK_POLICY"
	EnvBackend      = "COOKBOOK_BACKEND"
	EnvFetchTimeout = "COOKBOOK_FETCH_TIMEOUT"
	EnvPDFPassword  = "COOKBOOK_PDF_PASSWORD"
)

// SourceConfig names the cookbook to read.
type SourceConfig struct {
	URL string `yaml:"url"`
}

// PDFConfig selects how documents are decoded.
type PDFConfig struct {
	// Backend is ledongthuc, dslipak or auto
	Backend string `yaml:"backend"`
	// Validate runs a pdfcpu validation pass before extraction
	Validate bool   `yaml:"validate"`
	Password string `yaml:"password,omitempty"`
}

// FetchConfig configures the HTTP download of remote cookbooks.
type FetchConfig struct {
	TimeoutSecs int    `yaml:"timeout_secs"`
	MaxBytes    int64  `yaml:"max_bytes"`
	UserAgent   string `yaml:"user_agent"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Source SourceConfig  `yaml:"source"`
	Policy string        `yaml:"policy"`
	PDF    PDFConfig     `yaml:"pdf"`
	Fetch  FetchConfig   `yaml:"fetch"`
	Layout layout.Config `yaml:"layout"`
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	return &AppConfig{
		Source: SourceConfig{URL: DefaultPDFURL},
		Policy: titles.SizeBased.Name,
		PDF:    PDFConfig{Backend: string(pdf.BackendLedongthuc)},
		Fetch: FetchConfig{
			TimeoutSecs: int(fetch.DefaultTimeout / time.Second),
			MaxBytes:    fetch.DefaultMaxBytes,
			UserAgent:   fetch.DefaultUserAgent,
		},
		Layout: layout.DefaultConfig(),
	}
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./cookbook.yaml first, then ~/.config/cookbook/config.yaml.
// If neither exists, it writes defaults to ~/.config/cookbook/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "cookbook.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := Default()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadEnv loads .env files into the process environment without overriding
// variables that are already set. Missing files are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides cfg with the COOKBOOK_* environment variables.
// COOKBOOK_FETCH_TIMEOUT accepts whole seconds or a duration such as "45s";
// durations are rounded up to the next second.
func (c *AppConfig) ApplyEnv() error {
	if v := os.Getenv(EnvPDFURL); v != "" {
		c.Source.URL = v
	}
	if v := os.Getenv(EnvPolicy); v != "" {
		c.Policy = v
	}
	if v := os.Getenv(EnvBackend); v != "" {
		c.PDF.Backend = v
	}
	if v := os.Getenv(EnvPDFPassword); v != "" {
		c.PDF.Password = v
	}
	if v := os.Getenv(EnvFetchTimeout); v != "" {
		secs, err := parseSeconds(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvFetchTimeout, err)
		}
		c.Fetch.TimeoutSecs = secs
	}
	return nil
}

// Validate checks the names of the configured policy and backend.
func (c *AppConfig) Validate() error {
	if _, err := titles.Lookup(c.Policy); err != nil {
		return err
	}
	if _, err := pdf.ParseBackend(c.PDF.Backend); err != nil {
		return err
	}
	if c.Fetch.TimeoutSecs < 0 || c.Fetch.MaxBytes < 0 {
		return errors.New("fetch limits must not be negative")
	}
	return nil
}

// FetchOptions converts the fetch section for fetch.New.
func (c *AppConfig) FetchOptions() fetch.Config {
	return fetch.Config{
		Timeout:   time.Duration(c.Fetch.TimeoutSecs) * time.Second,
		MaxBytes:  c.Fetch.MaxBytes,
		UserAgent: c.Fetch.UserAgent,
	}
}

func parseSeconds(v string) (int, error) {
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative timeout %d", n)
		}
		return n, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q", v)
	}
	if d < 0 {
		return 0, fmt.Errorf("negative timeout %s", d)
	}
	// Round up; a zero timeout selects the fetch default
	return int((d + time.Second - 1) / time.Second), nil
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "cookbook", "config.yaml"), nil
}

func applyDefaults(cfg *AppConfig) {
	def := Default()
	if cfg.Source.URL == "" {
		cfg.Source.URL = def.Source.URL
	}
	if cfg.Policy == "" {
		cfg.Policy = def.Policy
	}
	if cfg.PDF.Backend == "" {
		cfg.PDF.Backend = def.PDF.Backend
	}
	if cfg.Fetch.TimeoutSecs == 0 {
		cfg.Fetch.TimeoutSecs = def.Fetch.TimeoutSecs
	}
	if cfg.Fetch.MaxBytes == 0 {
		cfg.Fetch.MaxBytes = def.Fetch.MaxBytes
	}
	if cfg.Fetch.UserAgent == "" {
		cfg.Fetch.UserAgent = def.Fetch.UserAgent
	}
	if cfg.Layout.YTolerance == 0 {
		cfg.Layout.YTolerance = def.Layout.YTolerance
	}
	if cfg.Layout.WordSpaceRatio == 0 {
		cfg.Layout.WordSpaceRatio = def.Layout.WordSpaceRatio
	}
	if cfg.Layout.ColumnGapRatio == 0 {
		cfg.Layout.ColumnGapRatio = def.Layout.ColumnGapRatio
	}
	if cfg.Layout.BlockGapRatio == 0 {
		cfg.Layout.BlockGapRatio = def.Layout.BlockGapRatio
	}
}
