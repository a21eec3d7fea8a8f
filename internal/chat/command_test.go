package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/namebot/pkg/release"
)

func TestPrefixes_Parse(t *testing.T) {
	p := DefaultPrefixes()

	tests := []struct {
		name string
		text string
		want Command
	}{
		{
			name: "show",
			text: "!tv https://pastebin.com/abc 1399 GRP",
			want: Command{Kind: release.Show, Link: "https://pastebin.com/abc", TMDBID: 1399, Group: "GRP"},
		},
		{
			name: "movie upper case prefix",
			text: "!MO https://pastebin.com/abc 550 NTb",
			want: Command{Kind: release.Movie, Link: "https://pastebin.com/abc", TMDBID: 550, Group: "NTb"},
		},
		{
			name: "extra whitespace and hash id",
			text: "  !tv\thttps://pastebin.com/abc   #42  GRP ",
			want: Command{Kind: release.Show, Link: "https://pastebin.com/abc", TMDBID: 42, Group: "GRP"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := p.Parse(tt.text)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrefixes_Parse_NotCommand(t *testing.T) {
	p := DefaultPrefixes()

	for _, text := range []string{"", "   ", "hello there", "!tvx link 1 GRP", "tv link 1 GRP"} {
		_, ok, err := p.Parse(text)
		assert.False(t, ok, text)
		assert.NoError(t, err)
	}
}

func TestPrefixes_Parse_Usage(t *testing.T) {
	p := DefaultPrefixes()

	for _, text := range []string{
		"!tv",
		"!tv https://pastebin.com/abc",
		"!tv https://pastebin.com/abc 1399",
		"!mo https://pastebin.com/abc 550 GRP extra",
		"!mo https://pastebin.com/abc tt0137523 GRP",
		"!mo https://pastebin.com/abc 0 GRP",
	} {
		t.Run(text, func(t *testing.T) {
			_, ok, err := p.Parse(text)
			assert.True(t, ok)
			assert.ErrorIs(t, err, ErrUsage)
		})
	}
}

func TestPrefixes_Custom(t *testing.T) {
	p := Prefixes{TV: "/show", Movie: "/film"}

	cmd, ok, err := p.Parse("/FILM link 1 G")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, release.Movie, cmd.Kind)

	_, ok, _ = p.Parse("!mo link 1 G")
	assert.False(t, ok)
	assert.Equal(t, "Usage: /show|/film <pastebin link> <tmdb id> <group>", p.Usage())
}
