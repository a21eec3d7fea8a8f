package release

import (
	"fmt"
	"strconv"
	"strings"
)

// AudioInput carries the audio track fields the resolver reads.
type AudioInput struct {
	Format         string // raw format identifier, e.g. "E-AC-3"
	CommercialName string // Format_Commercial_IfAny, may be empty
	Channels       int
	ChannelLayout  string
}

// commercialRule matches when every phrase is contained in the commercial name.
type commercialRule struct {
	phrases []string
	token   string
}

// commercialRules are checked in order; more specific phrases precede their prefixes.
var commercialRules = []commercialRule{
	{phrases: []string{"Dolby Digital", "Plus"}, token: "DDP"},
	{phrases: []string{"Dolby Digital"}, token: "DD"},
	{phrases: []string{"TrueHD"}, token: "TrueHD"},
	{phrases: []string{"DTS", "HD High Resolution"}, token: "DTS-HD HR"},
	{phrases: []string{"DTS", "Master Audio"}, token: "DTS-HD MA"},
}

// rawFormats maps MediaInfo format identifiers to tokens when no commercial rule applies.
var rawFormats = map[string]string{
	"E-AC-3":  "EAC3",
	"MLP FBA": "TrueHD",
	"DTS":     "DTS",
	"AAC":     "AAC",
	"PCM":     "PCM",
	"AC-3":    "DD",
}

func (r commercialRule) matches(name string) bool {
	for _, p := range r.phrases {
		if !strings.Contains(name, p) {
			return false
		}
	}
	return true
}

// ClassifyCommercialName returns the token for a commercial format name, if any rule matches.
func ClassifyCommercialName(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	for _, rule := range commercialRules {
		if rule.matches(name) {
			return rule.token, true
		}
	}
	return "", false
}

// ClassifyAudioFormat resolves the format token. The commercial name takes
// priority; the raw format table is the fallback.
func ClassifyAudioFormat(format, commercialName string) (string, bool) {
	if token, ok := ClassifyCommercialName(commercialName); ok {
		return token, true
	}
	token, ok := rawFormats[format]
	return token, ok
}

// ChannelToken renders a channel count in the "5.1" convention. An LFE channel
// in the layout is split off as ".1"; otherwise ".0" is appended.
func ChannelToken(channels int, layout string) string {
	if strings.Contains(layout, "LFE") {
		return strconv.Itoa(channels-1) + ".1"
	}
	return strconv.Itoa(channels) + ".0"
}

// ResolveAudio returns the audio token, e.g. "DDP 5.1".
func ResolveAudio(in AudioInput) (string, error) {
	format, ok := ClassifyAudioFormat(in.Format, in.CommercialName)
	if !ok {
		return "", fmt.Errorf("%w: format %q, commercial name %q", ErrAudioFormatUnresolved, in.Format, in.CommercialName)
	}
	return format + " " + ChannelToken(in.Channels, in.ChannelLayout), nil
}
