package domain

import (
	"regexp"
	"strings"
	"time"
)

// Document is a stored file (or a link pasted into a file slot) scoped to a
// category. StorageRef is either a local path under the documents directory,
// or a literal URL.
type Document struct {
	ID         int64
	Category   string
	FileName   string
	StorageRef string
}

// IsLocal reports whether the document's content is stored on local disk.
func (d Document) IsLocal() bool {
	return !IsURL(d.StorageRef)
}

// Link is an external URL with an optional description used as button label.
type Link struct {
	ID          int64
	Category    string
	URL         string
	Description string
}

// ButtonLabel returns the description, falling back to a truncated URL.
func (l Link) ButtonLabel() string {
	if l.Description != "" {
		return l.Description
	}
	return TruncateURL(l.URL)
}

// Announcement is a rich text post with an ordered list of image paths.
// CreatedAt is set on creation and never changed by edits.
type Announcement struct {
	ID        int64
	Category  string
	Title     string
	Text      string
	Images    []string
	CreatedAt time.Time
}

const urlLabelMax = 20

// TruncateURL shortens a URL for use as a button label.
func TruncateURL(u string) string {
	r := []rune(u)
	if len(r) <= urlLabelMax {
		return u
	}
	return string(r[:urlLabelMax]) + "..."
}

var urlPattern = regexp.MustCompile(`^https?://\S+$`)

// IsURL reports whether text looks like an http(s) URL.
func IsURL(text string) bool {
	return urlPattern.MatchString(strings.TrimSpace(text))
}
