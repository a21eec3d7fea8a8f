// Package chat answers "!tv" and "!mo" naming commands.
package chat

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vmunix/namebot/pkg/release"
)

// Default command prefixes.
const (
	DefaultPrefixTV    = "!tv"
	DefaultPrefixMovie = "!mo"
)

// ErrUsage is returned for commands with the wrong arguments.
var ErrUsage = errors.New("usage")

// Prefixes maps command words to content types.
type Prefixes struct {
	TV    string
	Movie string
}

// DefaultPrefixes returns the "!tv" and "!mo" prefixes.
func DefaultPrefixes() Prefixes {
	return Prefixes{TV: DefaultPrefixTV, Movie: DefaultPrefixMovie}
}

// Usage returns the help line for the prefixes.
func (p Prefixes) Usage() string {
	return fmt.Sprintf("Usage: %s|%s <pastebin link> <tmdb id> <group>", p.TV, p.Movie)
}

// Command is a parsed naming command.
type Command struct {
	Kind   release.ContentType
	Link   string
	TMDBID int64
	Group  string
}

// Parse parses "<prefix> <link> <tmdb-id> <group>". Prefixes match case-insensitively.
// ok is false when text is not a command at all.
func (p Prefixes) Parse(text string) (cmd Command, ok bool, err error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return Command{}, false, nil
	}

	switch {
	case strings.EqualFold(fields[0], p.TV):
		cmd.Kind = release.Show
	case strings.EqualFold(fields[0], p.Movie):
		cmd.Kind = release.Movie
	default:
		return Command{}, false, nil
	}

	args := fields[1:]
	if len(args) != 3 {
		return cmd, true, fmt.Errorf("%w: want 3 arguments, got %d", ErrUsage, len(args))
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(args[1], "#"), 10, 64)
	if err != nil || id <= 0 {
		return cmd, true, fmt.Errorf("%w: tmdb id %q is not a positive number", ErrUsage, args[1])
	}

	cmd.Link = args[0]
	cmd.TMDBID = id
	cmd.Group = args[2]
	return cmd, true, nil
}
