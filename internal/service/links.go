package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/profkom/unionbot/internal/domain"
)

type linkStore interface {
	SaveLink(ctx context.Context, category, url, description string) (int64, error)
	ListLinks(ctx context.Context, category string, limit int) ([]domain.Link, error)
	DeleteLink(ctx context.Context, id int64, category string) (bool, error)
}

// titleFetcher resolves a page title to use as a default description.
type titleFetcher interface {
	Title(ctx context.Context, url string) (string, error)
}

type LinkService struct {
	store  linkStore
	titles titleFetcher
}

func NewLinkService(store linkStore, titles titleFetcher) *LinkService {
	return &LinkService{store: store, titles: titles}
}

// Add persists a link. An empty description is filled from the page title
// when it can be fetched; otherwise the button label falls back to a
// truncated URL at render time.
func (s *LinkService) Add(ctx context.Context, category, url, description string) (int64, error) {
	if !domain.IsURL(url) {
		return 0, domain.ErrNotURL
	}
	if description == "" && s.titles != nil {
		title, err := s.titles.Title(ctx, url)
		if err != nil {
			slog.Debug("fetch link title", "url", url, "error", err)
		} else {
			description = title
		}
	}
	return s.store.SaveLink(ctx, category, url, description)
}

func (s *LinkService) List(ctx context.Context, category string) ([]domain.Link, error) {
	return s.store.ListLinks(ctx, category, 0)
}

func (s *LinkService) Delete(ctx context.Context, id int64, category string) error {
	ok, err := s.store.DeleteLink(ctx, id, category)
	if err != nil {
		return fmt.Errorf("delete link %d: %w", id, err)
	}
	if !ok {
		return domain.ErrLinkNotFound
	}
	return nil
}
