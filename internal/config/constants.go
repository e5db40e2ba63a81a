package config

import "time"

const (
	// Delay between a grouped-media send and its trailing caption message.
	// Telegram materializes media groups asynchronously; a caption sent too
	// early can arrive before the group.
	MediaGroupSettleDelay = 2 * time.Second

	// Timeout for fetching a page title when a link has no description.
	LinkTitleFetchTimeout = 5 * time.Second

	// Telegram limits
	MaxTelegramMessageLen = 4096

	// Longest page title accepted as a link description.
	MaxLinkDescriptionLen = 64

	// Main menu columns
	CategoriesPerRow = 2
)
