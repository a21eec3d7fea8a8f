// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/vmunix/namebot/pkg/release"
)

// Defaults applied by Load for unset fields.
const (
	DefaultHost          = "0.0.0.0"
	DefaultPort          = 8686
	DefaultLogLevel      = "info"
	DefaultDatabasePath  = "./data/namebot.db"
	DefaultTMDBBaseURL   = "https://api.themoviedb.org"
	DefaultCacheTTL      = 7 * 24 * time.Hour
	DefaultPasteHost     = "pastebin.com"
	DefaultPasteTimeout  = 15 * time.Second
	DefaultPasteRetries  = 3
	DefaultLanguageStyle = "native"
	DefaultPrefixTV      = "!tv"
	DefaultPrefixMovie   = "!mo"
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	TMDB     TMDBConfig     `toml:"tmdb"`
	Paste    PasteConfig    `toml:"paste"`
	Naming   NamingConfig   `toml:"naming"`
	Chat     ChatConfig     `toml:"chat"`
}

type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type TMDBConfig struct {
	APIKey   string        `toml:"api_key"`
	BaseURL  string        `toml:"base_url"`
	Language string        `toml:"language"` // e.g. "en-US"; empty uses TMDB's default
	CacheTTL time.Duration `toml:"cache_ttl"`
}

type PasteConfig struct {
	Hosts   []string      `toml:"hosts"`
	Timeout time.Duration `toml:"timeout"`
	Retries int           `toml:"retries"`
}

type NamingConfig struct {
	DefaultGroup   string `toml:"default_group"`
	MovieTemplate  string `toml:"movie_template"`
	SeriesTemplate string `toml:"series_template"`
	LanguageStyle  string `toml:"language_style"` // native|english
}

type ChatConfig struct {
	PrefixTV    string `toml:"prefix_tv"`
	PrefixMovie string `toml:"prefix_movie"`
}

// Load reads, substitutes, parses and validates the configuration file.
// Unresolved environment variables and validation failures are returned as *ConfigError.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))
	if len(missing) > 0 {
		return nil, &ConfigError{Path: path, Missing: missing}
	}

	cfg, err := parse(content)
	if err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &ConfigError{Path: path, Errors: errs}
	}
	return cfg, nil
}

// LoadWithoutValidation parses the file and applies defaults without checking
// environment variables or values. Used by commands that don't need every section.
func LoadWithoutValidation(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	content, _ := substituteEnvVars(string(data))
	return parse(content)
}

func parse(content string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = DefaultLogLevel
	}
	if c.Database.Path == "" {
		c.Database.Path = DefaultDatabasePath
	}
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = DefaultTMDBBaseURL
	}
	if c.TMDB.CacheTTL == 0 {
		c.TMDB.CacheTTL = DefaultCacheTTL
	}
	if len(c.Paste.Hosts) == 0 {
		c.Paste.Hosts = []string{DefaultPasteHost}
	}
	if c.Paste.Timeout == 0 {
		c.Paste.Timeout = DefaultPasteTimeout
	}
	if c.Paste.Retries == 0 {
		c.Paste.Retries = DefaultPasteRetries
	}
	if c.Naming.DefaultGroup == "" {
		c.Naming.DefaultGroup = release.DefaultGroup
	}
	if c.Naming.MovieTemplate == "" {
		c.Naming.MovieTemplate = release.DefaultMovieTemplate
	}
	if c.Naming.SeriesTemplate == "" {
		c.Naming.SeriesTemplate = release.DefaultShowTemplate
	}
	if c.Naming.LanguageStyle == "" {
		c.Naming.LanguageStyle = DefaultLanguageStyle
	}
	if c.Chat.PrefixTV == "" {
		c.Chat.PrefixTV = DefaultPrefixTV
	}
	if c.Chat.PrefixMovie == "" {
		c.Chat.PrefixMovie = DefaultPrefixMovie
	}
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars replaces environment variable references and reports the
// ones that could not be resolved. Unresolved references are left unchanged.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	result := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		parts := envVarPattern.FindStringSubmatch(match)
		name, op, arg := parts[1], parts[2], parts[3]
		value, ok := os.LookupEnv(name)

		switch op {
		case ":-":
			if !ok || value == "" {
				return arg
			}
			return value
		case ":?":
			if !ok || value == "" {
				missing = append(missing, name+": "+strings.TrimSpace(arg))
				return match
			}
			return value
		default:
			if !ok {
				missing = append(missing, name)
				return match
			}
			return value
		}
	})
	return result, missing
}
