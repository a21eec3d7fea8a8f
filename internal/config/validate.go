package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/vmunix/namebot/pkg/release"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	// Server
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[strings.ToLower(c.Server.LogLevel)] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	// TMDB
	if strings.TrimSpace(c.TMDB.APIKey) == "" {
		errs = append(errs, "tmdb.api_key: required")
	}
	if u, err := url.Parse(c.TMDB.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Sprintf("tmdb.base_url: must be an http(s) URL, got %q", c.TMDB.BaseURL))
	}
	if c.TMDB.CacheTTL < 0 {
		errs = append(errs, "tmdb.cache_ttl: must not be negative")
	}

	// Paste
	for i, h := range c.Paste.Hosts {
		if strings.TrimSpace(h) == "" || strings.Contains(h, "/") {
			errs = append(errs, fmt.Sprintf("paste.hosts[%d]: must be a bare host name, got %q", i, h))
		}
	}
	if c.Paste.Timeout < 0 {
		errs = append(errs, "paste.timeout: must not be negative")
	}
	if c.Paste.Retries < 1 {
		errs = append(errs, fmt.Sprintf("paste.retries: must be at least 1, got %d", c.Paste.Retries))
	}

	// Naming
	if _, err := release.ParseLanguageStyle(c.Naming.LanguageStyle); err != nil {
		errs = append(errs, fmt.Sprintf("naming.language_style: must be native or english; got %q", c.Naming.LanguageStyle))
	}
	if !strings.Contains(c.Naming.MovieTemplate, "{title}") {
		errs = append(errs, "naming.movie_template: must contain {title}")
	}
	if !strings.Contains(c.Naming.SeriesTemplate, "{title}") {
		errs = append(errs, "naming.series_template: must contain {title}")
	}
	if strings.ContainsAny(c.Naming.DefaultGroup, " \t") {
		errs = append(errs, fmt.Sprintf("naming.default_group: must not contain spaces, got %q", c.Naming.DefaultGroup))
	}

	// Chat
	if strings.TrimSpace(c.Chat.PrefixTV) == "" || strings.TrimSpace(c.Chat.PrefixMovie) == "" {
		errs = append(errs, "chat: prefix_tv and prefix_movie must not be empty")
	} else if strings.EqualFold(c.Chat.PrefixTV, c.Chat.PrefixMovie) {
		errs = append(errs, "chat: prefix_tv and prefix_movie must differ")
	}

	return errs
}
