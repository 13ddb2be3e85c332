package statetree

import "strings"

// CleanLocation strips the parts of a location that are not routed: a
// leading "#", "#!" or "!" as written by hash-bang location bars, a
// "?query" suffix, and leading and trailing separators.
func CleanLocation(location string) string {
	if i := strings.IndexByte(location, '?'); i >= 0 {
		location = location[:i]
	}

	location = strings.TrimPrefix(location, "#")
	location = strings.TrimPrefix(location, "!")

	return strings.Trim(location, string(Separator))
}

// SplitLocation tokenizes a location into its non-empty segments. An empty
// location has no segments.
func SplitLocation(location string) []string {
	location = CleanLocation(location)
	if len(location) == 0 {
		return nil
	}

	segments := make([]string, 0, strings.Count(location, string(Separator))+1)

	for _, seg := range strings.Split(location, string(Separator)) {
		if len(seg) > 0 {
			segments = append(segments, seg)
		}
	}

	return segments
}
