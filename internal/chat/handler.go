package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vmunix/namebot/internal/namer"
	"github.com/vmunix/namebot/internal/paste"
	"github.com/vmunix/namebot/internal/tmdb"
	"github.com/vmunix/namebot/pkg/mediainfo"
)

// Replies for failed commands.
const (
	ReplyInvalidLink  = "That is not a valid pastebin link."
	ReplyNotMediaInfo = "The paste does not contain a MediaInfo JSON report."
	ReplyFetchFailed  = "Could not download the paste. Try again later."
	ReplyTMDBFailed   = "There was a failure getting the info from TMDB. Please notify the bot operator."
)

// Namer composes release names.
type Namer interface {
	Name(ctx context.Context, req namer.Request) (*namer.Result, error)
}

// Handler turns chat messages into replies.
type Handler struct {
	namer    Namer
	prefixes Prefixes
	log      *slog.Logger
}

// NewHandler creates a Handler. Empty prefixes fall back to the defaults.
func NewHandler(n Namer, prefixes Prefixes, log *slog.Logger) *Handler {
	if prefixes.TV == "" {
		prefixes.TV = DefaultPrefixTV
	}
	if prefixes.Movie == "" {
		prefixes.Movie = DefaultPrefixMovie
	}
	if log == nil {
		log = slog.Default()
	}
	return &Handler{namer: n, prefixes: prefixes, log: log}
}

// Prefixes returns the command prefixes in use.
func (h *Handler) Prefixes() Prefixes { return h.prefixes }

// Handle answers one message. ok is false when the message is not a command.
func (h *Handler) Handle(ctx context.Context, text string) (reply string, ok bool) {
	cmd, ok, err := h.prefixes.Parse(text)
	if !ok {
		return "", false
	}
	if err != nil {
		h.log.Debug("bad command", "text", text, "error", err)
		return h.prefixes.Usage(), true
	}

	result, err := h.namer.Name(ctx, namer.Request{
		Link:   cmd.Link,
		TMDBID: cmd.TMDBID,
		Kind:   cmd.Kind,
		Group:  cmd.Group,
	})
	if err != nil {
		return h.errorReply(cmd, err), true
	}
	return "`" + result.Name + "`", true
}

func (h *Handler) errorReply(cmd Command, err error) string {
	switch namer.StageOf(err) {
	case namer.StageDocument:
		switch {
		case errors.Is(err, paste.ErrInvalidLink):
			return ReplyInvalidLink
		case errors.Is(err, mediainfo.ErrMalformedDocument):
			return ReplyNotMediaInfo
		default:
			return ReplyFetchFailed
		}
	case namer.StageTitle:
		if errors.Is(err, tmdb.ErrNotFound) {
			return fmt.Sprintf("TMDB has no %s with ID %d.", cmd.Kind, cmd.TMDBID)
		}
		return ReplyTMDBFailed
	case namer.StageCompose:
		var se *namer.StageError
		errors.As(err, &se)
		return fmt.Sprintf("Could not build a name: %v", se.Err)
	default:
		return h.prefixes.Usage()
	}
}
