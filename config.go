package main

import (
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// defaultAllowedRoots are the source sites the service will fetch from
var defaultAllowedRoots = []string{
	"https://cryptics.georgeho.org",
	"https://www.crosswordunclued.com",
	"https://www.highlightpress.com.au",
	"https://en.wikipedia.org",
	"http://sphinx.mythic-beasts.com",
}

// Config is the configuration for the highlighting service
type Config struct {
	// Addr is the listen address of the HTTP server
	Addr string `mapstructure:"addr"`
	// WordsAPIURL is the word lookup endpoint; request parameters are appended
	WordsAPIURL string `mapstructure:"words_api_url"`
	// AllowedRoots lists scheme://host roots that may be fetched
	AllowedRoots []string `mapstructure:"allowed_roots"`

	FetchTimeout  time.Duration `mapstructure:"fetch_timeout"`
	FetchRate     float64       `mapstructure:"fetch_rate"`
	FetchBurst    int           `mapstructure:"fetch_burst"`
	ClientRate    float64       `mapstructure:"client_rate"`
	ClientBurst   int           `mapstructure:"client_burst"`
	MaxPageBytes  int64         `mapstructure:"max_page_bytes"`
	RespectRobots bool          `mapstructure:"respect_robots"`
	UserAgent     string        `mapstructure:"user_agent"`

	// Banner adds an attribution banner after the body tag
	Banner bool `mapstructure:"banner"`
	// ExtraStopWords are added to the built-in stop words
	ExtraStopWords []string `mapstructure:"extra_stop_words"`
	// HighlightColor is the text color of highlighted words
	HighlightColor string `mapstructure:"highlight_color"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("words_api_url", "https://api.datamuse.com/words")
	v.SetDefault("allowed_roots", defaultAllowedRoots)
	v.SetDefault("fetch_timeout", 30*time.Second)
	v.SetDefault("fetch_rate", 5.0)
	v.SetDefault("fetch_burst", 10)
	v.SetDefault("client_rate", 2.0)
	v.SetDefault("client_burst", 5)
	v.SetDefault("max_page_bytes", 10<<20)
	v.SetDefault("respect_robots", false)
	v.SetDefault("user_agent", "wordmark/1.0 (Go)")
	v.SetDefault("banner", false)
	v.SetDefault("extra_stop_words", []string{})
	v.SetDefault("highlight_color", "blue")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
}

// loadConfig reads defaults, the optional config file and WORDMARK_*
// environment variables, in increasing precedence. Flags bound to v win.
func loadConfig(v *viper.Viper, configFile string) (*Config, error) {
	setDefaults(v)
	v.SetEnvPrefix("wordmark")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "unable to read config file %s", configFile)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "unable to decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate normalises the configuration and rejects unusable values
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}

	u, err := url.Parse(c.WordsAPIURL)
	if err != nil {
		return errors.Wrap(err, "invalid words_api_url")
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.Errorf("words_api_url must be an absolute http(s) URL, got %q", c.WordsAPIURL)
	}

	roots := make([]string, 0, len(c.AllowedRoots))
	for _, root := range c.AllowedRoots {
		root = normalizeRoot(root)
		if root != "" {
			roots = append(roots, root)
		}
	}
	c.AllowedRoots = roots

	if c.FetchTimeout <= 0 {
		return errors.Errorf("fetch_timeout must be positive, got %s", c.FetchTimeout)
	}
	if c.FetchRate <= 0 || c.FetchBurst <= 0 {
		return errors.New("fetch_rate and fetch_burst must be positive")
	}
	if c.ClientRate <= 0 || c.ClientBurst <= 0 {
		return errors.New("client_rate and client_burst must be positive")
	}
	if c.MaxPageBytes <= 0 {
		return errors.New("max_page_bytes must be positive")
	}

	if _, err := parseLogLevel(c.LogLevel); err != nil {
		return err
	}
	c.LogFormat = strings.ToLower(c.LogFormat)
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return errors.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	return nil
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, errors.Wrapf(err, "invalid log_level %q", s)
	}
	return level, nil
}
