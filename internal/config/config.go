package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Simatwa/house-rental-management-system/internal/utils"
)

type Config struct {
	OrganizationName string
	AppName          string
	AppPort          string
	AppUrl           string
	APIURL           string
	TokenFile        string
	HTTPTimeout      time.Duration
	MaxRetries       int
	FetchConcurrency int
	CurrencySymbol   string
	// ConfigFile is the YAML file that was read, if any.
	ConfigFile string
}

const (
	OrganizationName = utils.OrganizationName
	DefaultAppName   = "tenant-portal"

	DefaultAPIURL           = "http://localhost:8000/api/v1"
	DefaultAppPort          = "8080"
	DefaultAppUrl           = "http://localhost:5173"
	DefaultHTTPTimeout      = 30 * time.Second
	DefaultMaxRetries       = 3
	DefaultFetchConcurrency = 4
)

var (
	// AppName is set with -ldflags "-X .../internal/config.AppName=...".
	AppName string
)

// fileConfig is the on-disk YAML shape. Unset fields keep their defaults.
type fileConfig struct {
	APIURL           string `yaml:"api_url"`
	TokenFile        string `yaml:"token_file"`
	AppPort          string `yaml:"app_port"`
	AppUrl           string `yaml:"app_url"`
	HTTPTimeout      string `yaml:"http_timeout"`
	MaxRetries       *int   `yaml:"max_retries"`
	FetchConcurrency *int   `yaml:"fetch_concurrency"`
	CurrencySymbol   string `yaml:"currency_symbol"`
}

// LoadConfig builds the configuration from defaults, then the YAML file
// (PORTAL_CONFIG, or ~/.config/tenant-portal/config.yaml when present),
// then environment overrides.
func LoadConfig() (*Config, error) {
	appName := AppName
	if appName == "" {
		appName = DefaultAppName
	}
	utils.Logger.Debug("Loading config for app: ", appName)

	cfgDir, err := defaultDir(appName)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		OrganizationName: OrganizationName,
		AppName:          appName,
		AppPort:          DefaultAppPort,
		AppUrl:           DefaultAppUrl,
		APIURL:           DefaultAPIURL,
		TokenFile:        filepath.Join(cfgDir, "token.json"),
		HTTPTimeout:      DefaultHTTPTimeout,
		MaxRetries:       DefaultMaxRetries,
		FetchConcurrency: DefaultFetchConcurrency,
		CurrencySymbol:   utils.DefaultCurrencySymbol,
	}

	path, required := os.Getenv("PORTAL_CONFIG"), true
	if path == "" {
		path, required = filepath.Join(cfgDir, "config.yaml"), false
	}
	if err := cfg.applyFile(path, required); err != nil {
		return nil, err
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultDir(appName string) (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", fmt.Errorf("cannot locate a config directory: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, appName), nil
}

func (c *Config) applyFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	c.ConfigFile = path

	if fc.APIURL != "" {
		c.APIURL = fc.APIURL
	}
	if fc.TokenFile != "" {
		c.TokenFile = expandHome(fc.TokenFile)
	}
	if fc.AppPort != "" {
		c.AppPort = fc.AppPort
	}
	if fc.AppUrl != "" {
		c.AppUrl = fc.AppUrl
	}
	if fc.HTTPTimeout != "" {
		d, err := time.ParseDuration(fc.HTTPTimeout)
		if err != nil {
			return fmt.Errorf("config %s: http_timeout: %w", path, err)
		}
		c.HTTPTimeout = d
	}
	if fc.MaxRetries != nil {
		c.MaxRetries = *fc.MaxRetries
	}
	if fc.FetchConcurrency != nil {
		c.FetchConcurrency = *fc.FetchConcurrency
	}
	if fc.CurrencySymbol != "" {
		c.CurrencySymbol = fc.CurrencySymbol
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORTAL_API_URL"); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv("PORTAL_TOKEN_FILE"); v != "" {
		c.TokenFile = expandHome(v)
	}
	if v := os.Getenv("APP_PORT"); v != "" {
		c.AppPort = v
	}
	if v := os.Getenv("APP_URL"); v != "" {
		c.AppUrl = v
	}
	if v := os.Getenv("PORTAL_HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("PORTAL_HTTP_TIMEOUT: %w", err)
		}
		c.HTTPTimeout = d
	}
	if v := os.Getenv("PORTAL_MAX_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORTAL_MAX_RETRIES: %w", err)
		}
		c.MaxRetries = n
	}
	return nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api url %q must be an absolute http(s) URL", c.APIURL)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive, got %s", c.HTTPTimeout)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries must not be negative, got %d", c.MaxRetries)
	}
	if c.FetchConcurrency < 1 {
		c.FetchConcurrency = 1
	}
	return nil
}

func expandHome(p string) string {
	if len(p) < 2 || p[:2] != "~/" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}

func (c *Config) Close() {}
