package mediainfo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func TestParse_TypedTracks(t *testing.T) {
	doc, err := Parse(loadFixture(t, "show_sdr.json"))
	require.NoError(t, err)

	assert.Equal(t, "Example.Show.S05E01.1080p.BluRay.x265-GRP.mkv", doc.Filename())
	assert.Equal(t, TypeGeneral, doc.General.Type())

	assert.Equal(t, 1920, doc.Video.Width)
	assert.Equal(t, 1080, doc.Video.Height)
	assert.Equal(t, "HEVC", doc.Video.Format)
	assert.Empty(t, doc.Video.HDRFormat)

	assert.Equal(t, "AC-3", doc.Audio.Format)
	assert.Equal(t, "Dolby Digital", doc.Audio.CommercialName)
	assert.Equal(t, 6, doc.Audio.Channels)
	assert.Equal(t, "L R C LFE Ls Rs", doc.Audio.ChannelLayout)
	assert.Equal(t, "en", doc.Audio.Language)

	assert.False(t, doc.Interlaced())
	assert.False(t, doc.HasHDR())
}

func TestParse_RolesByTypeNotPosition(t *testing.T) {
	data := []byte(`{"media":{"@ref":"a.mkv","track":[
		{"@type":"Audio","Format":"AAC","Channels":"2","ChannelLayout":"L R","Language":"en"},
		{"@type":"Video","Format":"AVC","Width":"1280","Height":"720"},
		{"@type":"General","Format":"MPEG-4"}
	]}}`)

	doc, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "AVC", doc.Video.Format)
	assert.Equal(t, "AAC", doc.Audio.Format)
	assert.Equal(t, "MPEG-4", doc.General.Value("Format"))
}

func TestParse_HDRAndWindowsRef(t *testing.T) {
	doc, err := Parse(loadFixture(t, "movie_dv.json"))
	require.NoError(t, err)

	assert.Equal(t, "Some.Movie.2019.REPACK.2160p.UHD.BluRay.x265-GRP.mkv", doc.Filename())
	assert.True(t, doc.HasHDR())
	assert.Equal(t, "Dolby Vision / SMPTE ST 2086", doc.Video.HDRFormat)
	assert.Equal(t, "Blu-ray / HDR10", doc.Video.HDRCompatibility)
	assert.Equal(t, 8, doc.Audio.Channels)
}

func TestParse_LegacyPositional(t *testing.T) {
	doc, err := Parse(loadFixture(t, "legacy_untyped.json"))
	require.NoError(t, err)

	assert.Equal(t, "Old.Movie.1995.mkv", doc.Filename())
	assert.Equal(t, 720, doc.Video.Width)
	assert.Equal(t, "AAC", doc.Audio.Format)
	assert.True(t, doc.Interlaced())
}

func TestParse_RefFallsBackToCompleteName(t *testing.T) {
	data := []byte(`{"media":{"track":[
		{"@type":"General","CompleteName":"/x/y/Show.S01.720p.mkv"},
		{"@type":"Video","Format":"AVC","Width":"1280","Height":"720"},
		{"@type":"Audio","Format":"AAC","Channels":"2","ChannelLayout":"L R","Language":"en"}
	]}}`)

	doc, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "Show.S01.720p.mkv", doc.Filename())
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		track string
		field string
	}{
		{
			name:  "no media",
			data:  `{"creatingLibrary":{}}`,
			track: "media",
			field: "media",
		},
		{
			name:  "missing audio role",
			data:  `{"media":{"@ref":"a.mkv","track":[{"@type":"General"},{"@type":"Video","Format":"AVC","Width":"1","Height":"1"}]}}`,
			track: "audio",
			field: "@type",
		},
		{
			name:  "too few untyped tracks",
			data:  `{"media":{"@ref":"a.mkv","track":[{},{}]}}`,
			track: "media",
			field: "track",
		},
		{
			name:  "missing width",
			data:  `{"media":{"@ref":"a.mkv","track":[{"@type":"General"},{"@type":"Video","Format":"AVC","Height":"1"},{"@type":"Audio","Format":"AAC","Channels":"2","ChannelLayout":"L R","Language":"en"}]}}`,
			track: "video",
			field: "Width",
		},
		{
			name:  "missing language",
			data:  `{"media":{"@ref":"a.mkv","track":[{"@type":"General"},{"@type":"Video","Format":"AVC","Width":"1","Height":"1"},{"@type":"Audio","Format":"AAC","Channels":"2","ChannelLayout":"L R"}]}}`,
			track: "audio",
			field: "Language",
		},
		{
			name:  "non numeric channels",
			data:  `{"media":{"@ref":"a.mkv","track":[{"@type":"General"},{"@type":"Video","Format":"AVC","Width":"1","Height":"1"},{"@type":"Audio","Format":"AAC","Channels":"stereo","ChannelLayout":"L R","Language":"en"}]}}`,
			track: "audio",
			field: "Channels",
		},
		{
			name:  "missing ref",
			data:  `{"media":{"track":[{"@type":"General"},{"@type":"Video","Format":"AVC","Width":"1","Height":"1"},{"@type":"Audio","Format":"AAC","Channels":"2","ChannelLayout":"L R","Language":"en"}]}}`,
			track: "general",
			field: "@ref",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedDocument)

			var fe *FieldError
			require.True(t, errors.As(err, &fe), "expected *FieldError, got %T", err)
			assert.Equal(t, tt.track, fe.Track)
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`not json`))
	assert.ErrorIs(t, err, ErrMalformedDocument)
}

func TestParse_NonNumericDimensionsAreZero(t *testing.T) {
	data := []byte(`{"media":{"@ref":"a.mkv","track":[
		{"@type":"General"},
		{"@type":"Video","Format":"AVC","Width":"","Height":"n/a"},
		{"@type":"Audio","Format":"AAC","Channels":"8 / 6","ChannelLayout":"L R","Language":"en"}
	]}}`)

	doc, err := Parse(data)
	require.NoError(t, err)
	assert.Zero(t, doc.Video.Width)
	assert.Zero(t, doc.Video.Height)
	assert.Equal(t, 8, doc.Audio.Channels)
}

func TestTrack_IgnoresNestedValues(t *testing.T) {
	data := []byte(`{"media":{"@ref":"a.mkv","track":[
		{"@type":"General","extra":{"Foo":"Bar"},"Count":3,"Empty":null},
		{"@type":"Video","Format":"AVC","Width":1920,"Height":1080},
		{"@type":"Audio","Format":"AAC","Channels":2,"ChannelLayout":"L R","Language":"en"}
	]}}`)

	doc, err := Parse(data)
	require.NoError(t, err)

	_, ok := doc.General.Get("extra")
	assert.False(t, ok)
	_, ok = doc.General.Get("Empty")
	assert.False(t, ok)
	assert.Equal(t, "3", doc.General.Value("Count"))
	assert.Equal(t, 1920, doc.Video.Width)
	assert.Equal(t, 2, doc.Audio.Channels)
}
