package release

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSeason(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"Example.Show.S05E01.1080p.mkv", "S05"},
		{"Example.Show.S05.1080p.mkv", "S05"},
		{"Example.Show.S01-S03.1080p.mkv", "S01"},
		{"Example.Show.s05e01.mkv", ""},
		{"Example.Movie.2020.1080p.mkv", ""},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSeason(tt.filename))
		})
	}
}

func TestIsRepack(t *testing.T) {
	assert.True(t, IsRepack("Show.S01.REPACK.1080p.mkv"))
	assert.False(t, IsRepack("Show.S01.repack.1080p.mkv"))
	assert.False(t, IsRepack("Show.S01.1080p.mkv"))
}

func TestTitleFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"Example.Show.S05E01.1080p.BluRay.x265-GRP.mkv", "Example Show"},
		{"Some.Movie.2019.REPACK.2160p.UHD.BluRay.x265-GRP.mkv", "Some Movie"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, TitleFromFilename(tt.filename))
		})
	}
}

func TestScanTitle(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"Example.Show.S05E01.1080p.BluRay.x265-GRP.mkv", "Example Show"},
		{"Some_Movie_720p.mkv", "Some Movie"},
		{"NoMarkers.mkv", "NoMarkers"},
		{"2012.2009.1080p.mkv", ""},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, scanTitle(tt.filename))
		})
	}
}
