package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/profkom/unionbot/internal/domain"
)

type announcementStore interface {
	SaveAnnouncement(ctx context.Context, category, title, text, imagesStr string) (int64, error)
	GetAnnouncement(ctx context.Context, id int64) (*domain.Announcement, error)
	ListAnnouncements(ctx context.Context, category string) ([]domain.Announcement, error)
	UpdateAnnouncement(ctx context.Context, id int64, title, text, imagesStr string) (bool, error)
	DeleteAnnouncement(ctx context.Context, id int64) (bool, error)
}

type AnnouncementService struct {
	store announcementStore
	files fileRemover
}

func NewAnnouncementService(store announcementStore, files fileRemover) *AnnouncementService {
	return &AnnouncementService{store: store, files: files}
}

func (s *AnnouncementService) Create(ctx context.Context, category, title, text string, images []string) (int64, error) {
	if err := validateAnnouncement(title, text); err != nil {
		return 0, err
	}
	return s.store.SaveAnnouncement(ctx, category, title, text, domain.JoinImages(images))
}

func (s *AnnouncementService) Get(ctx context.Context, id int64) (*domain.Announcement, error) {
	return s.store.GetAnnouncement(ctx, id)
}

func (s *AnnouncementService) List(ctx context.Context, category string) ([]domain.Announcement, error) {
	return s.store.ListAnnouncements(ctx, category)
}

// Update replaces title, text and the image list wholesale; it never merges
// with the stored row.
func (s *AnnouncementService) Update(ctx context.Context, id int64, title, text string, images []string) error {
	if err := validateAnnouncement(title, text); err != nil {
		return err
	}
	ok, err := s.store.UpdateAnnouncement(ctx, id, title, text, domain.JoinImages(images))
	if err != nil {
		return fmt.Errorf("update announcement %d: %w", id, err)
	}
	if !ok {
		return domain.ErrAnnouncementNotFound
	}
	return nil
}

// Delete removes every referenced image file, then the row. File removal is
// attempted for each path regardless of earlier failures; a missing file is
// logged by the file store and does not abort the deletion.
func (s *AnnouncementService) Delete(ctx context.Context, id int64) error {
	a, err := s.store.GetAnnouncement(ctx, id)
	if err != nil {
		return err
	}

	for _, path := range a.Images {
		s.files.Remove(path)
	}

	ok, err := s.store.DeleteAnnouncement(ctx, id)
	if err != nil {
		return fmt.Errorf("delete announcement %d: %w", id, err)
	}
	if !ok {
		return domain.ErrAnnouncementNotFound
	}
	return nil
}

func validateAnnouncement(title, text string) error {
	if strings.TrimSpace(title) == "" {
		return domain.ErrEmptyTitle
	}
	if strings.TrimSpace(text) == "" {
		return domain.ErrEmptyText
	}
	return nil
}
