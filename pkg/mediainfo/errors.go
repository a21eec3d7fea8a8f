package mediainfo

import (
	"errors"
	"fmt"
)

// ErrMalformedDocument indicates a required part of the MediaInfo report is missing or unusable.
var ErrMalformedDocument = errors.New("malformed mediainfo document")

// FieldError names the track and field that made a document malformed.
type FieldError struct {
	Track  string // "general", "video", "audio" or "media"
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "missing"
	}
	return fmt.Sprintf("%s: %s track field %q %s", ErrMalformedDocument, e.Track, e.Field, reason)
}

func (e *FieldError) Unwrap() error { return ErrMalformedDocument }

func missing(track, field string) error {
	return &FieldError{Track: track, Field: field}
}
