package domain

import "strings"

// Image paths are persisted as one comma-joined column. Order is significant
// and must survive a round trip. Paths containing the delimiter are not
// escaped; the file store never produces such paths.
const imageSeparator = ","

// JoinImages serializes an ordered image list for storage.
func JoinImages(paths []string) string {
	return strings.Join(paths, imageSeparator)
}

// SplitImages parses a stored image column back into an ordered list.
// An empty column yields a nil slice, never a slice with one empty element.
func SplitImages(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, imageSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
