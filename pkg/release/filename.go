package release

import (
	"regexp"
	"strings"

	"github.com/moistari/rls"
)

var seasonPattern = regexp.MustCompile(`S\d{2}`)

// ExtractSeason returns the first "Snn" token of the filename, or "".
func ExtractSeason(filename string) string {
	return seasonPattern.FindString(filename)
}

// IsRepack reports whether the filename carries the REPACK marker.
func IsRepack(filename string) bool {
	return strings.Contains(filename, "REPACK")
}

// titleStop marks where the title part of a scene-style filename ends.
var titleStop = regexp.MustCompile(`(?i)\b((19|20)\d{2}|S\d{2}(E\d{2})?|2160p|1080p|720p|576p|480p)\b`)

// TitleFromFilename guesses the title part of a scene-style filename,
// e.g. "Example.Show.S05E01.1080p.mkv" gives "Example Show".
func TitleFromFilename(filename string) string {
	if title := strings.TrimSpace(rls.ParseString(filename).Title); title != "" {
		return title
	}
	return scanTitle(filename)
}

// scanTitle cuts the filename at the first year, episode or resolution marker.
func scanTitle(filename string) string {
	name := filename
	if i := strings.LastIndex(name, "."); i > 0 && len(name)-i <= 5 {
		name = name[:i]
	}
	name = strings.NewReplacer(".", " ", "_", " ").Replace(name)
	if loc := titleStop.FindStringIndex(name); loc != nil {
		name = name[:loc[0]]
	}
	name = strings.Trim(name, " -([")
	return strings.Join(strings.Fields(name), " ")
}
