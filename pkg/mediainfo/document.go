// Package mediainfo provides a typed, read-only view over MediaInfo JSON reports.
//
// Only the general, video and audio tracks are read. Roles are matched by the
// @type field when the report carries one; older reports without @type are
// read positionally (general, video, audio).
package mediainfo

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Track role names as they appear in @type.
const (
	TypeGeneral = "General"
	TypeVideo   = "Video"
	TypeAudio   = "Audio"
)

// Video holds the video track fields used for naming.
type Video struct {
	Width            int // 0 when the value is not numeric
	Height           int // 0 when the value is not numeric
	Format           string
	HDRFormat        string // HDR_Format, optional
	HDRCompatibility string // HDR_Format_Compatibility, optional
}

// Audio holds the audio track fields used for naming.
type Audio struct {
	Format         string
	CommercialName string // Format_Commercial_IfAny, optional
	Channels       int
	ChannelLayout  string
	Language       string
}

// Document is a parsed MediaInfo report.
type Document struct {
	Ref     string
	General Track
	Video   Video
	Audio   Audio

	raw string
}

type rawReport struct {
	Media *struct {
		Ref    string                       `json:"@ref"`
		Tracks []map[string]json.RawMessage `json:"track"`
	} `json:"media"`
}

// Parse decodes a MediaInfo JSON report and validates the fields needed for naming.
func Parse(data []byte) (*Document, error) {
	var report rawReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrMalformedDocument, err)
	}
	if report.Media == nil {
		return nil, missing("media", "media")
	}
	if len(report.Media.Tracks) == 0 {
		return nil, missing("media", "track")
	}

	tracks := make([]Track, len(report.Media.Tracks))
	for i, raw := range report.Media.Tracks {
		tracks[i] = newTrack(raw)
	}

	general, video, audio, err := assignRoles(tracks)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Ref:     report.Media.Ref,
		General: general,
		raw:     string(data),
	}
	if doc.Ref == "" {
		doc.Ref = general.Value("CompleteName")
	}
	if doc.Ref == "" {
		return nil, missing("general", "@ref")
	}

	if doc.Video, err = readVideo(video); err != nil {
		return nil, err
	}
	if doc.Audio, err = readAudio(audio); err != nil {
		return nil, err
	}
	return doc, nil
}

func assignRoles(tracks []Track) (general, video, audio Track, err error) {
	typed := false
	for _, t := range tracks {
		if t.Type() != "" {
			typed = true
			break
		}
	}

	if !typed {
		if len(tracks) < 3 {
			return general, video, audio, &FieldError{
				Track:  "media",
				Field:  "track",
				Reason: fmt.Sprintf("has %d untyped tracks, need general, video and audio", len(tracks)),
			}
		}
		return tracks[0], tracks[1], tracks[2], nil
	}

	found := map[string]*Track{TypeGeneral: &general, TypeVideo: &video, TypeAudio: &audio}
	seen := map[string]bool{}
	for _, t := range tracks {
		dst, ok := found[t.Type()]
		if !ok || seen[t.Type()] {
			continue
		}
		*dst = t
		seen[t.Type()] = true
	}
	for _, role := range []string{TypeGeneral, TypeVideo, TypeAudio} {
		if !seen[role] {
			return general, video, audio, &FieldError{Track: strings.ToLower(role), Field: "@type", Reason: "not present in report"}
		}
	}
	return general, video, audio, nil
}

func readVideo(t Track) (Video, error) {
	var v Video
	for _, field := range []string{"Width", "Height", "Format"} {
		if _, ok := t.Get(field); !ok {
			return v, missing("video", field)
		}
	}
	v.Width, _ = t.Int("Width")
	v.Height, _ = t.Int("Height")
	v.Format = t.Value("Format")
	v.HDRFormat = t.Value("HDR_Format")
	v.HDRCompatibility = t.Value("HDR_Format_Compatibility")
	return v, nil
}

func readAudio(t Track) (Audio, error) {
	var a Audio
	for _, field := range []string{"Format", "Channels", "ChannelLayout", "Language"} {
		if _, ok := t.Get(field); !ok {
			return a, missing("audio", field)
		}
	}
	channels, ok := t.Int("Channels")
	if !ok || channels <= 0 {
		return a, &FieldError{Track: "audio", Field: "Channels", Reason: fmt.Sprintf("is not a channel count: %q", t.Value("Channels"))}
	}
	a.Format = t.Value("Format")
	a.CommercialName = t.Value("Format_Commercial_IfAny")
	a.Channels = channels
	a.ChannelLayout = t.Value("ChannelLayout")
	a.Language = t.Value("Language")
	return a, nil
}

// Filename returns the base name of the reference path. Both slash styles are accepted.
func (d *Document) Filename() string {
	ref := strings.TrimSpace(d.Ref)
	if i := strings.LastIndexAny(ref, `/\`); i >= 0 {
		return ref[i+1:]
	}
	return ref
}

// Interlaced reports whether "Interlaced" appears anywhere in the report.
func (d *Document) Interlaced() bool {
	return strings.Contains(d.raw, "Interlaced")
}

// HasHDR reports whether "HDR" appears anywhere in the report.
func (d *Document) HasHDR() bool {
	return strings.Contains(d.raw, "HDR")
}
