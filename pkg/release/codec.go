package release

import "strings"

// ResolveVideoCodec classifies the video format. Formats outside HEVC, VC-1 and
// AVC fall back to H264 with known=false so callers can flag the guess.
func ResolveVideoCodec(format, filename string) (codec string, known bool) {
	switch {
	case strings.Contains(format, "HEVC"):
		if strings.Contains(strings.ToLower(filename), "h265") {
			return "H265", true
		}
		return "x265", true
	case strings.Contains(format, "VC-1"):
		return "VC-1", true
	default:
		return "H264", strings.Contains(format, "AVC")
	}
}
