// Package config resolves gateway settings.
//
// Precedence, lowest first: built-in defaults, the YAML file, .env files,
// TYPO3DOCS_* environment variables, then command-line flags (applied by the
// caller on the returned Config).
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/typo3docs/internal/logging"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no explicit config file is given and it exists.
const DefaultFile = "typo3docs.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TYPO3DOCS_"

// Config holds every tunable of the gateway.
type Config struct {
	DocsBaseURL      string        `yaml:"docs_base_url"`
	DocsSearchURL    string        `yaml:"docs_search_url"`
	ChangelogBaseURL string        `yaml:"changelog_base_url"`
	TERAPIURL        string        `yaml:"ter_api_url"`
	TERSiteURL       string        `yaml:"ter_site_url"`
	Timeout          time.Duration `yaml:"timeout"`
	UserAgent        string        `yaml:"user_agent"`
	MaxInputSize     int           `yaml:"max_input_size"`
	LogLevel         string        `yaml:"log_level"`
	LogFormat        string        `yaml:"log_format"`
	ContentFile      string        `yaml:"content_file"`
	Port             int           `yaml:"port"`
}

// Endpoints are the external base URLs.
type Endpoints struct {
	DocsBaseURL      string
	DocsSearchURL    string
	ChangelogBaseURL string
	TERAPIURL        string
	TERSiteURL       string
}

// DefaultEndpoints returns the public TYPO3 endpoints.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		DocsBaseURL:      "https://docs.typo3.org",
		DocsSearchURL:    "https://docs.typo3.org/services/ajaxsearch/",
		ChangelogBaseURL: "https://docs.typo3.org/c/typo3/cms-core",
		TERAPIURL:        "https://extensions.typo3.org/api/v1",
		TERSiteURL:       "https://extensions.typo3.org",
	}
}

// Endpoints returns the configured base URLs.
func (c Config) Endpoints() Endpoints {
	return Endpoints{
		DocsBaseURL:      c.DocsBaseURL,
		DocsSearchURL:    c.DocsSearchURL,
		ChangelogBaseURL: c.ChangelogBaseURL,
		TERAPIURL:        c.TERAPIURL,
		TERSiteURL:       c.TERSiteURL,
	}
}

// Default returns the built-in settings.
func Default() Config {
	ep := DefaultEndpoints()
	return Config{
		DocsBaseURL:      ep.DocsBaseURL,
		DocsSearchURL:    ep.DocsSearchURL,
		ChangelogBaseURL: ep.ChangelogBaseURL,
		TERAPIURL:        ep.TERAPIURL,
		TERSiteURL:       ep.TERSiteURL,
		Timeout:          30 * time.Second,
		UserAgent:        "typo3docs",
		MaxInputSize:     4096,
		LogLevel:         "info",
		LogFormat:        string(logging.FormatText),
		Port:             8080,
	}
}

// Load resolves the configuration.
// An explicit path must exist; with an empty path DefaultFile is used if present.
// Missing env files are skipped.
func Load(path string, envFiles ...string) (Config, error) {
	cfg := Default()

	file := path
	if file == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			file = DefaultFile
		}
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", file, err)
		}
	}

	dotenv := map[string]string{}
	for _, f := range envFiles {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		vars, err := godotenv.Read(f)
		if err != nil {
			return cfg, fmt.Errorf("failed to read env file %s: %w", f, err)
		}
		for k, v := range vars {
			if _, seen := dotenv[k]; !seen {
				dotenv[k] = v
			}
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"DOCS_BASE_URL":      &c.DocsBaseURL,
		"DOCS_SEARCH_URL":    &c.DocsSearchURL,
		"CHANGELOG_BASE_URL": &c.ChangelogBaseURL,
		"TER_API_URL":        &c.TERAPIURL,
		"TER_SITE_URL":       &c.TERSiteURL,
		"USER_AGENT":         &c.UserAgent,
		"LOG_LEVEL":          &c.LogLevel,
		"LOG_FORMAT":         &c.LogFormat,
		"CONTENT_FILE":       &c.ContentFile,
	}
	for name, dst := range strs {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"MAX_INPUT_SIZE": &c.MaxInputSize,
		"PORT":           &c.Port,
	}
	for name, dst := range ints {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", EnvPrefix, name, err)
		}
		*dst = n
	}

	if v, ok := lookup(EnvPrefix + "TIMEOUT"); ok {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %sTIMEOUT: %w", EnvPrefix, err)
		}
		c.Timeout = d
	}
	return nil
}

// Validate checks the settings for consistency.
func (c Config) Validate() error {
	var errs []error
	urls := []struct {
		name, value string
	}{
		{"docs_base_url", c.DocsBaseURL},
		{"docs_search_url", c.DocsSearchURL},
		{"changelog_base_url", c.ChangelogBaseURL},
		{"ter_api_url", c.TERAPIURL},
		{"ter_site_url", c.TERSiteURL},
	}
	for _, u := range urls {
		parsed, err := url.Parse(u.value)
		if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			errs = append(errs, fmt.Errorf("%s must be an absolute http(s) URL, got %q", u.name, u.value))
		}
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", c.Timeout))
	}
	if c.MaxInputSize <= 0 {
		errs = append(errs, fmt.Errorf("max_input_size must be positive, got %d", c.MaxInputSize))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch logging.Format(c.LogFormat) {
	case logging.FormatText, logging.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("log_format must be %q or %q, got %q", logging.FormatText, logging.FormatJSON, c.LogFormat))
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port out of range: %d", c.Port))
	}
	return errors.Join(errs...)
}
