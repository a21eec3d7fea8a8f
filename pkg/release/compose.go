package release

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/vmunix/namebot/pkg/mediainfo"
)

// DefaultGroup is used when no group tag is supplied.
const DefaultGroup = "NOGRP"

// Default naming templates.
const (
	DefaultMovieTemplate = "{title} ({year}) ({resolution} {codec} {colour} {audio} {language} - {group}){repack}"
	DefaultShowTemplate  = "{title} ({year}) {season} ({resolution} {codec} {colour} {audio} {language} - {group}){repack}"
)

const repackMarker = " [REPACK]"

// Composer assembles release names from resolved tokens.
// It holds no per-call state and is safe for concurrent use.
type Composer struct {
	movieTemplate string
	showTemplate  string
	languageStyle LanguageStyle
	defaultGroup  string
	log           *slog.Logger
}

// Option configures a Composer.
type Option func(*Composer)

// WithTemplates overrides the movie and show templates. Empty strings keep the defaults.
func WithTemplates(movie, show string) Option {
	return func(c *Composer) {
		if movie != "" {
			c.movieTemplate = movie
		}
		if show != "" {
			c.showTemplate = show
		}
	}
}

// WithDefaultGroup sets the group tag used when a request has none.
func WithDefaultGroup(group string) Option {
	return func(c *Composer) {
		if g := strings.TrimSpace(group); g != "" {
			c.defaultGroup = g
		}
	}
}

// WithLanguageStyle selects native or English language names.
func WithLanguageStyle(style LanguageStyle) Option {
	return func(c *Composer) {
		c.languageStyle = style
	}
}

// WithLogger sets the logger used for token diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(c *Composer) {
		if log != nil {
			c.log = log
		}
	}
}

// NewComposer creates a Composer with the default templates and native language names.
func NewComposer(opts ...Option) *Composer {
	c := &Composer{
		movieTemplate: DefaultMovieTemplate,
		showTemplate:  DefaultShowTemplate,
		languageStyle: LanguageNative,
		defaultGroup:  DefaultGroup,
		log:           slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultGroup returns the group tag used when a request has none.
func (c *Composer) DefaultGroup() string { return c.defaultGroup }

// Build resolves every token from the MediaInfo document and composes the name.
// Fatal resolver failures are returned as errors; soft defaults become warnings.
func (c *Composer) Build(doc *mediainfo.Document, rec TitleRecord, kind ContentType, group string) (*Name, error) {
	filename := doc.Filename()
	name := &Name{}

	res, err := ResolveResolution(filename, doc.Video.Width, doc.Video.Height, doc.Interlaced())
	if err != nil {
		return nil, err
	}

	codec, known := ResolveVideoCodec(doc.Video.Format, filename)
	if !known {
		name.warn("video format %q not recognised, assuming %s", doc.Video.Format, codec)
		c.log.Warn("low confidence video codec", "format", doc.Video.Format, "codec", codec)
	}

	audio, err := ResolveAudio(AudioInput{
		Format:         doc.Audio.Format,
		CommercialName: doc.Audio.CommercialName,
		Channels:       doc.Audio.Channels,
		ChannelLayout:  doc.Audio.ChannelLayout,
	})
	if err != nil {
		return nil, err
	}
	if doc.Audio.CommercialName != "" {
		if _, ok := ClassifyCommercialName(doc.Audio.CommercialName); !ok {
			name.warn("commercial audio name %q not recognised, used format %q", doc.Audio.CommercialName, doc.Audio.Format)
		}
	}

	lang := ResolveLanguage(doc.Audio.Language, c.languageStyle)
	if lang == "" {
		name.warn("language code %q has no display name", doc.Audio.Language)
	}

	tokens := Tokens{
		Resolution:  res,
		VideoCodec:  codec,
		ColourSpace: ResolveColourSpace(doc.HasHDR(), doc.Video.HDRFormat, doc.Video.HDRCompatibility),
		Audio:       audio,
		Language:    lang,
		Repack:      IsRepack(filename),
	}
	if kind == Show {
		tokens.Season = ExtractSeason(filename)
		if tokens.Season == "" {
			name.warn("no season token in filename %q", filename)
		}
	}

	if fileTitle := TitleFromFilename(filename); fileTitle != "" {
		match := MatchTitle(fileTitle, []string{rec.DisplayTitle(kind), rec.Title, rec.Name, rec.OriginalTitle})
		if match.Confidence < ConfidenceMedium {
			name.warn("filename title %q does not resemble catalog title %q", fileTitle, rec.DisplayTitle(kind))
		}
	}

	c.log.Debug("resolved tokens",
		"filename", filename,
		"resolution", tokens.Resolution,
		"codec", tokens.VideoCodec,
		"colour", tokens.ColourSpace,
		"audio", tokens.Audio,
		"language", tokens.Language,
		"season", tokens.Season,
		"repack", tokens.Repack,
	)

	value, err := c.Compose(rec, tokens, kind, group)
	if err != nil {
		return nil, err
	}
	name.Value = value
	name.Tokens = tokens
	return name, nil
}

// Compose fills the template for kind with the record's title and year and the tokens.
func (c *Composer) Compose(rec TitleRecord, tokens Tokens, kind ContentType, group string) (string, error) {
	title := SanitizeTitle(rec.DisplayTitle(kind))
	if title == "" {
		return "", fmt.Errorf("%w: empty %s title", ErrMalformedTitleRecord, kind)
	}
	year, err := releaseYear(rec.Date(kind))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(group) == "" {
		group = c.defaultGroup
	}

	repack := ""
	if tokens.Repack {
		repack = repackMarker
	}

	vars := map[string]any{
		"title":      title,
		"year":       year,
		"season":     tokens.Season,
		"resolution": tokens.Resolution,
		"codec":      tokens.VideoCodec,
		"colour":     tokens.ColourSpace,
		"audio":      tokens.Audio,
		"language":   tokens.Language,
		"group":      strings.TrimSpace(group),
		"repack":     repack,
	}

	template := c.showTemplate
	if kind == Movie {
		template = c.movieTemplate
	}
	return collapseSpaces(applyTemplate(template, vars)), nil
}

func releaseYear(date string) (int, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(date))
	if err != nil {
		return 0, fmt.Errorf("%w: release date %q: %v", ErrMalformedTitleRecord, date, err)
	}
	return t.Year(), nil
}

// formatPattern matches {name} or {name:02} style placeholders.
var formatPattern = regexp.MustCompile(`\{(\w+)(?::(\d+))?\}`)

// applyTemplate substitutes variables into a template string.
// Supports {name} for simple substitution and {name:02} for zero-padded integers.
// Unknown placeholders are left as-is.
func applyTemplate(template string, vars map[string]any) string {
	return formatPattern.ReplaceAllStringFunc(template, func(match string) string {
		parts := formatPattern.FindStringSubmatch(match)
		val, ok := vars[parts[1]]
		if !ok {
			return match
		}
		if parts[2] != "" {
			if width, err := strconv.Atoi(parts[2]); err == nil {
				if v, isInt := val.(int); isInt {
					return fmt.Sprintf("%0*d", width, v)
				}
			}
		}
		return fmt.Sprintf("%v", val)
	})
}

// multiSpace matches runs of whitespace left behind by empty tokens.
var multiSpace = regexp.MustCompile(`\s{2,}`)

func collapseSpaces(s string) string {
	return strings.TrimSpace(multiSpace.ReplaceAllString(s, " "))
}
