// Package release builds canonical release names from MediaInfo reports and TMDB title records.
//
// Each token of the name is produced by an independent resolver. The Composer
// runs them and fills the movie or show template:
//
//	Title (Year) [Season] (Resolution Codec ColourSpace Audio Language - Group)[ [REPACK]]
package release

import (
	"fmt"
	"strings"
)

// ContentType selects between the movie and show templates.
type ContentType int

const (
	Show ContentType = iota
	Movie
)

func (c ContentType) String() string {
	switch c {
	case Movie:
		return "movie"
	default:
		return "show"
	}
}

// MarshalText encodes the content type as "movie" or "show".
func (c ContentType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText accepts any spelling ParseContentType does.
func (c *ContentType) UnmarshalText(text []byte) error {
	kind, err := ParseContentType(string(text))
	if err != nil {
		return err
	}
	*c = kind
	return nil
}

// ParseContentType accepts "movie"/"mo" and "show"/"tv"/"series".
func ParseContentType(s string) (ContentType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie", "mo":
		return Movie, nil
	case "show", "tv", "series":
		return Show, nil
	default:
		return Show, fmt.Errorf("unknown content type %q", s)
	}
}

// TitleRecord is the subset of a TMDB movie or TV record used for naming.
type TitleRecord struct {
	ID            int64  `json:"id"`
	Title         string `json:"title,omitempty"`          // localized movie title, matching only
	OriginalTitle string `json:"original_title,omitempty"` // movie
	ReleaseDate   string `json:"release_date,omitempty"`   // movie, "2024-03-01"
	Name          string `json:"name,omitempty"`           // show
	FirstAirDate  string `json:"first_air_date,omitempty"` // show
}

// DisplayTitle returns the title field the naming convention uses for the content type.
func (r TitleRecord) DisplayTitle(kind ContentType) string {
	if kind == Movie {
		return r.OriginalTitle
	}
	return r.Name
}

// Date returns the release date field for the content type.
func (r TitleRecord) Date(kind ContentType) string {
	if kind == Movie {
		return r.ReleaseDate
	}
	return r.FirstAirDate
}

// Tokens are the resolved parts of a release name.
type Tokens struct {
	Resolution  string `json:"resolution"`
	VideoCodec  string `json:"video_codec"`
	ColourSpace string `json:"colour_space"`
	Audio       string `json:"audio"`
	Language    string `json:"language"`
	Season      string `json:"season,omitempty"`
	Repack      bool   `json:"repack"`
}

// Name is a composed release name together with the tokens it was built from.
type Name struct {
	Value    string   `json:"name"`
	Tokens   Tokens   `json:"tokens"`
	Warnings []string `json:"warnings,omitempty"`
}

func (n *Name) String() string { return n.Value }

func (n *Name) warn(format string, args ...any) {
	n.Warnings = append(n.Warnings, fmt.Sprintf(format, args...))
}
