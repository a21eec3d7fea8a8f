package release

import "errors"

var (
	// ErrResolutionUnresolved indicates neither the filename nor the video dimensions yield a resolution.
	ErrResolutionUnresolved = errors.New("resolution could not be determined")

	// ErrAudioFormatUnresolved indicates the audio track matches no known format.
	ErrAudioFormatUnresolved = errors.New("audio format could not be determined")

	// ErrMalformedTitleRecord indicates the title record lacks a usable title or release date.
	ErrMalformedTitleRecord = errors.New("malformed title record")
)
