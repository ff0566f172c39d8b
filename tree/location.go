package tree

import (
	"strconv"
	"strings"
)

// LocationAttr is the attribute the location tagger injects into every
// opening tag. The builder consumes it; rules never see it.
const LocationAttr = "__loc__"

// FormatLocation renders a marker value.
func FormatLocation(file string, line int) string {
	return file + ":" + strconv.Itoa(line)
}

// ParseLocation splits a marker value at its last colon.
func ParseLocation(v string) (Origin, bool) {
	i := strings.LastIndexByte(v, ':')
	if i < 0 {
		return Origin{}, false
	}
	line, err := strconv.Atoi(v[i+1:])
	if err != nil || line < 1 {
		return Origin{}, false
	}
	return Origin{File: v[:i], Line: line}, true
}
