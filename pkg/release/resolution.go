package release

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// filenameResolution matches the resolutions the convention accepts verbatim from a filename.
var filenameResolution = regexp.MustCompile(`2160p|1080p|720p`)

// widthToHeight maps encode widths, including cropped and legacy SD widths, to their nominal height.
var widthToHeight = map[int]int{
	692:  480,
	720:  576,
	960:  540,
	1024: 576,
	1280: 720,
	1920: 1080,
	3840: 2160,
	4096: 2160,
}

// ResolveResolution returns the resolution token, e.g. "1080p" or "1080i".
// The filename hint wins, then the width table, then the raw height.
func ResolveResolution(filename string, width, height int, interlaced bool) (string, error) {
	res := filenameResolution.FindString(filename)
	if res == "" {
		if h, ok := widthToHeight[width]; ok {
			res = strconv.Itoa(h) + "p"
		} else if height > 0 {
			res = strconv.Itoa(height) + "p"
		}
	}
	if res == "" {
		return "", fmt.Errorf("%w: width %d, height %d, filename %q", ErrResolutionUnresolved, width, height, filename)
	}
	if interlaced {
		res = strings.TrimSuffix(res, "p") + "i"
	}
	return res, nil
}
