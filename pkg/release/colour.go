package release

import "strings"

// Colour space tokens.
const (
	ColourSDR   = "SDR"
	ColourHDR   = "HDR"
	ColourDV    = "DV"
	ColourDVHDR = "DV HDR"
)

// ResolveColourSpace classifies SDR, HDR, DV and DV HDR. Only Dolby Vision is
// distinguished from generic HDR.
func ResolveColourSpace(hasHDR bool, hdrFormat, hdrCompatibility string) string {
	if !hasHDR {
		return ColourSDR
	}
	if strings.Contains(hdrFormat, "Dolby Vision") {
		if strings.Contains(hdrCompatibility, "HDR10") {
			return ColourDVHDR
		}
		return ColourDV
	}
	return ColourHDR
}
