package domain

import "errors"

var (
	ErrPermissionDenied     = errors.New("operator rights required")
	ErrDocumentNotFound     = errors.New("document not found")
	ErrLinkNotFound         = errors.New("link not found")
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrEmptyTitle           = errors.New("announcement title is empty")
	ErrEmptyText            = errors.New("announcement text is empty")
	ErrNotURL               = errors.New("text is not a URL")
)
