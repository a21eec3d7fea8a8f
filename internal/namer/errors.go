package namer

import (
	"errors"
	"fmt"
)

// ErrInvalidRequest is returned for requests missing a document source or TMDB ID.
var ErrInvalidRequest = errors.New("invalid request")

// Stage identifies the step of a naming request that failed.
type Stage string

const (
	StageDocument Stage = "document"
	StageTitle    Stage = "title"
	StageCompose  Stage = "compose"
)

// StageError wraps a failure with the stage it happened in.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// StageOf returns the stage of a failed request, or "" for errors not produced by Name.
func StageOf(err error) Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}
