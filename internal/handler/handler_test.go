package handler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/profkom/unionbot/internal/domain"
	"github.com/profkom/unionbot/internal/session"
	"github.com/profkom/unionbot/internal/storage"
)

func newDraftHandler(t *testing.T) *Handler {
	t.Helper()
	dir := t.TempDir()
	return New(Deps{
		Files:    storage.NewFileStore(filepath.Join(dir, "images"), filepath.Join(dir, "documents")),
		Sessions: session.NewManager(),
	})
}

func stagedImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "staged.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatalf("stage image: %v", err)
	}
	return path
}

func TestDiscardDraftAbortsAddWizard(t *testing.T) {
	h := newDraftHandler(t)
	img := stagedImage(t)

	s := h.sessions.Get(1, 2)
	s.State = session.StateCollectingImages
	s.Category = domain.AnnouncementsKey
	s.Draft = &session.AnnouncementDraft{Title: "t", Text: "x", Images: []string{img}}

	h.discardDraft(s)

	if s.State != session.StateMainMenu {
		t.Fatalf("state = %q, want main menu", s.State)
	}
	if s.Draft != nil || s.Category != "" {
		t.Fatalf("workflow state survived the abort: draft=%v category=%q", s.Draft, s.Category)
	}
	if _, err := os.Stat(img); !os.IsNotExist(err) {
		t.Fatalf("staged add-wizard image still on disk: %v", err)
	}
}

func TestDiscardDraftKeepsStoredRowImages(t *testing.T) {
	h := newDraftHandler(t)
	img := stagedImage(t)

	s := h.sessions.Get(1, 2)
	s.State = session.StateEditMenu
	s.Category = domain.AnnouncementsKey
	s.Draft = &session.AnnouncementDraft{ID: 7, Title: "t", Text: "x", Images: []string{img}}

	h.discardDraft(s)

	if s.State != session.StateMainMenu || s.Draft != nil {
		t.Fatalf("edit abort must still reset: state=%q draft=%v", s.State, s.Draft)
	}
	if _, err := os.Stat(img); err != nil {
		t.Fatalf("edit abort must not delete the stored row's image: %v", err)
	}
}
