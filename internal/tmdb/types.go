// Package tmdb provides a client for The Movie Database API.
package tmdb

import (
	"strconv"

	"github.com/vmunix/namebot/pkg/release"
)

// Movie represents TMDB movie metadata.
type Movie struct {
	ID            int64  `json:"id"`
	IMDBID        string `json:"imdb_id,omitempty"` // e.g., "tt0133093"
	Title         string `json:"title"`
	OriginalTitle string `json:"original_title"`
	Overview      string `json:"overview"`
	ReleaseDate   string `json:"release_date"` // "2024-03-01"
	Runtime       int    `json:"runtime"`      // minutes
}

// Show represents TMDB TV series metadata.
type Show struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	OriginalName string `json:"original_name"`
	Overview     string `json:"overview"`
	FirstAirDate string `json:"first_air_date"` // "2008-01-20"
	Seasons      int    `json:"number_of_seasons"`
}

// Year extracts the year from ReleaseDate.
func (m *Movie) Year() int {
	return yearOf(m.ReleaseDate)
}

// Year extracts the year from FirstAirDate.
func (s *Show) Year() int {
	return yearOf(s.FirstAirDate)
}

// Record converts the movie to a naming record.
func (m *Movie) Record() release.TitleRecord {
	return release.TitleRecord{
		ID:            m.ID,
		Title:         m.Title,
		OriginalTitle: m.OriginalTitle,
		ReleaseDate:   m.ReleaseDate,
	}
}

// Record converts the show to a naming record.
func (s *Show) Record() release.TitleRecord {
	return release.TitleRecord{
		ID:           s.ID,
		Name:         s.Name,
		FirstAirDate: s.FirstAirDate,
	}
}

func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
