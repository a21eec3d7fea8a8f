package mediainfo

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Track is one entry of media.track with its scalar fields flattened to strings.
// Nested objects such as "extra" are ignored.
type Track struct {
	fields map[string]string
}

func newTrack(raw map[string]json.RawMessage) Track {
	fields := make(map[string]string, len(raw))
	for key, value := range raw {
		value = bytes.TrimSpace(value)
		if len(value) == 0 {
			continue
		}
		switch value[0] {
		case '"':
			var s string
			if err := json.Unmarshal(value, &s); err == nil {
				fields[key] = s
			}
		case '{', '[', 'n':
			// objects, arrays and null carry nothing we read
		default:
			fields[key] = string(value)
		}
	}
	return Track{fields: fields}
}

// Type returns the @type role of the track, or "" when the report omits it.
func (t Track) Type() string {
	return t.fields["@type"]
}

// Get returns a field value and whether it was present.
func (t Track) Get(name string) (string, bool) {
	v, ok := t.fields[name]
	return v, ok
}

// Value returns a field value or "" when absent.
func (t Track) Value(name string) string {
	return t.fields[name]
}

// Int parses a numeric field. Values such as "8 / 6" report their first number.
func (t Track) Int(name string) (int, bool) {
	v, ok := t.fields[name]
	if !ok {
		return 0, false
	}
	return parseLeadingInt(v)
}

func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == '/' })
	if len(fields) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, false
	}
	return n, true
}
