// Package session keeps transient per-(chat, user) workflow state: the
// current wizard step, the draft being assembled, and the ids of the
// ephemeral screens currently visible in the chat. Nothing here is persisted.
package session

import "sync"

// State identifies the wizard step a session is in.
type State string

const (
	StateMainMenu                    State = "main_menu"
	StateCategoryMenu                State = "category_menu"
	StateAwaitingDocuments           State = "awaiting_documents"
	StateSelectingDocumentDelete     State = "selecting_document_delete"
	StateAwaitingLinks               State = "awaiting_links"
	StateSelectingLinkDelete         State = "selecting_link_delete"
	StateAwaitingTitle               State = "awaiting_title"
	StateAwaitingText                State = "awaiting_text"
	StateAwaitingImageChoice         State = "awaiting_image_choice"
	StateCollectingImages            State = "collecting_images"
	StateSelectingAnnouncementDelete State = "selecting_announcement_delete"
	StateSelectingAnnouncementEdit   State = "selecting_announcement_edit"
	StateEditMenu                    State = "edit_menu"
	StateEditingTitle                State = "editing_title"
	StateEditingText                 State = "editing_text"
	StateEditingImages               State = "editing_images"
)

// PendingDocument is an accepted but not yet persisted document upload.
type PendingDocument struct {
	FileName   string
	StorageRef string
}

// PendingLink is an accepted but not yet persisted link.
type PendingLink struct {
	URL         string
	Description string
}

// AnnouncementDraft is the in-memory announcement being assembled or edited.
// ID is zero while adding and holds the row id while editing.
type AnnouncementDraft struct {
	ID     int64
	Title  string
	Text   string
	Images []string
}

// Session is the workflow state for one (chat, user) pair. A session is
// locked for the whole duration of a transition, so events for the same pair
// are processed one at a time.
type Session struct {
	mu sync.Mutex

	ChatID int64
	UserID int64

	State    State
	Category string

	Docs  []PendingDocument
	Links []PendingLink
	Draft *AnnouncementDraft

	// Live holds the message ids of the screens this session currently owns,
	// in send order. Managed through Tracker.
	Live []int
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// Reset clears every workflow field, returning the session to the main menu.
// The identity and the live screen list survive; screens are retired
// separately by the tracker.
func (s *Session) Reset() {
	s.State = StateMainMenu
	s.Category = ""
	s.Docs = nil
	s.Links = nil
	s.Draft = nil
}
