package service

import (
	"context"
	"errors"
	"testing"

	"github.com/profkom/unionbot/internal/domain"
)

type fakeDocStore struct {
	docs    map[int64]*domain.Document
	deleted []int64
}

func (f *fakeDocStore) SaveDocument(_ context.Context, category, fileName, storageRef string) (int64, error) {
	id := int64(len(f.docs) + 1)
	if f.docs == nil {
		f.docs = map[int64]*domain.Document{}
	}
	f.docs[id] = &domain.Document{ID: id, Category: category, FileName: fileName, StorageRef: storageRef}
	return id, nil
}

func (f *fakeDocStore) GetDocument(_ context.Context, id int64) (*domain.Document, error) {
	d, ok := f.docs[id]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return d, nil
}

func (f *fakeDocStore) ListDocuments(_ context.Context, category string, _ int) ([]domain.Document, error) {
	var out []domain.Document
	for _, d := range f.docs {
		if d.Category == category {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (f *fakeDocStore) DeleteDocument(_ context.Context, id int64) (bool, error) {
	if _, ok := f.docs[id]; !ok {
		return false, nil
	}
	delete(f.docs, id)
	f.deleted = append(f.deleted, id)
	return true, nil
}

type fakeRemover struct {
	removed []string
}

func (f *fakeRemover) Remove(path string) {
	f.removed = append(f.removed, path)
}

func TestDocumentDeleteRemovesLocalFile(t *testing.T) {
	store := &fakeDocStore{docs: map[int64]*domain.Document{
		1: {ID: 1, Category: "doc1", FileName: "a.pdf", StorageRef: "documents/doc1/a.pdf"},
		2: {ID: 2, Category: "doc1", FileName: "b", StorageRef: "https://example.com/b"},
	}}
	files := &fakeRemover{}
	svc := NewDocumentService(store, files)

	if err := svc.Delete(context.Background(), 1); err != nil {
		t.Fatalf("delete local: %v", err)
	}
	if len(files.removed) != 1 || files.removed[0] != "documents/doc1/a.pdf" {
		t.Fatalf("removed = %v, want the local path", files.removed)
	}

	if err := svc.Delete(context.Background(), 2); err != nil {
		t.Fatalf("delete url-backed: %v", err)
	}
	if len(files.removed) != 1 {
		t.Fatalf("url-backed delete must not touch files, removed = %v", files.removed)
	}
}

func TestDocumentDeleteMissing(t *testing.T) {
	svc := NewDocumentService(&fakeDocStore{}, &fakeRemover{})
	if err := svc.Delete(context.Background(), 99); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("err = %v, want ErrDocumentNotFound", err)
	}
}

type fakeLinkStore struct {
	saved []domain.Link
}

func (f *fakeLinkStore) SaveLink(_ context.Context, category, url, description string) (int64, error) {
	id := int64(len(f.saved) + 1)
	f.saved = append(f.saved, domain.Link{ID: id, Category: category, URL: url, Description: description})
	return id, nil
}

func (f *fakeLinkStore) ListLinks(_ context.Context, _ string, _ int) ([]domain.Link, error) {
	return f.saved, nil
}

func (f *fakeLinkStore) DeleteLink(_ context.Context, id int64, _ string) (bool, error) {
	for i, l := range f.saved {
		if l.ID == id {
			f.saved = append(f.saved[:i], f.saved[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakeTitles struct {
	title string
	err   error
}

func (f *fakeTitles) Title(context.Context, string) (string, error) {
	return f.title, f.err
}

func TestLinkAddRejectsNonURL(t *testing.T) {
	svc := NewLinkService(&fakeLinkStore{}, nil)
	if _, err := svc.Add(context.Background(), "doc10", "not a url", ""); !errors.Is(err, domain.ErrNotURL) {
		t.Fatalf("err = %v, want ErrNotURL", err)
	}
}

func TestLinkAddFillsDescriptionFromTitle(t *testing.T) {
	store := &fakeLinkStore{}
	svc := NewLinkService(store, &fakeTitles{title: "Профком"})

	if _, err := svc.Add(context.Background(), "doc10", "https://example.com", ""); err != nil {
		t.Fatalf("add: %v", err)
	}
	if store.saved[0].Description != "Профком" {
		t.Fatalf("description = %q, want fetched title", store.saved[0].Description)
	}
}

func TestLinkAddKeepsExplicitDescription(t *testing.T) {
	store := &fakeLinkStore{}
	svc := NewLinkService(store, &fakeTitles{title: "ignored"})

	if _, err := svc.Add(context.Background(), "doc10", "https://example.com", "Сайт"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if store.saved[0].Description != "Сайт" {
		t.Fatalf("description = %q, want the explicit one", store.saved[0].Description)
	}
}

func TestLinkAddTolerantOfFailedTitleFetch(t *testing.T) {
	store := &fakeLinkStore{}
	svc := NewLinkService(store, &fakeTitles{err: errors.New("timeout")})

	if _, err := svc.Add(context.Background(), "doc10", "https://example.com", ""); err != nil {
		t.Fatalf("add: %v", err)
	}
	if store.saved[0].Description != "" {
		t.Fatalf("description = %q, want empty on fetch failure", store.saved[0].Description)
	}
}

type fakeAnnStore struct {
	anns    map[int64]*domain.Announcement
	updated map[int64][3]string
}

func (f *fakeAnnStore) SaveAnnouncement(_ context.Context, category, title, text, imagesStr string) (int64, error) {
	id := int64(len(f.anns) + 1)
	if f.anns == nil {
		f.anns = map[int64]*domain.Announcement{}
	}
	f.anns[id] = &domain.Announcement{
		ID: id, Category: category, Title: title, Text: text,
		Images: domain.SplitImages(imagesStr),
	}
	return id, nil
}

func (f *fakeAnnStore) GetAnnouncement(_ context.Context, id int64) (*domain.Announcement, error) {
	a, ok := f.anns[id]
	if !ok {
		return nil, domain.ErrAnnouncementNotFound
	}
	return a, nil
}

func (f *fakeAnnStore) ListAnnouncements(_ context.Context, _ string) ([]domain.Announcement, error) {
	var out []domain.Announcement
	for _, a := range f.anns {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAnnStore) UpdateAnnouncement(_ context.Context, id int64, title, text, imagesStr string) (bool, error) {
	if _, ok := f.anns[id]; !ok {
		return false, nil
	}
	if f.updated == nil {
		f.updated = map[int64][3]string{}
	}
	f.updated[id] = [3]string{title, text, imagesStr}
	a := f.anns[id]
	a.Title, a.Text, a.Images = title, text, domain.SplitImages(imagesStr)
	return true, nil
}

func (f *fakeAnnStore) DeleteAnnouncement(_ context.Context, id int64) (bool, error) {
	if _, ok := f.anns[id]; !ok {
		return false, nil
	}
	delete(f.anns, id)
	return true, nil
}

func TestAnnouncementCreateValidates(t *testing.T) {
	svc := NewAnnouncementService(&fakeAnnStore{}, &fakeRemover{})

	if _, err := svc.Create(context.Background(), "doc8", "  ", "text", nil); !errors.Is(err, domain.ErrEmptyTitle) {
		t.Fatalf("err = %v, want ErrEmptyTitle", err)
	}
	if _, err := svc.Create(context.Background(), "doc8", "title", "", nil); !errors.Is(err, domain.ErrEmptyText) {
		t.Fatalf("err = %v, want ErrEmptyText", err)
	}
}

func TestAnnouncementDeleteRemovesEveryImage(t *testing.T) {
	store := &fakeAnnStore{anns: map[int64]*domain.Announcement{
		1: {ID: 1, Category: "doc8", Title: "t", Text: "x",
			Images: []string{"images/a.png", "images/b.png", "images/c.png"}},
	}}
	files := &fakeRemover{}
	svc := NewAnnouncementService(store, files)

	if err := svc.Delete(context.Background(), 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(files.removed) != 3 {
		t.Fatalf("removed %d files, want 3", len(files.removed))
	}
	if _, err := store.GetAnnouncement(context.Background(), 1); !errors.Is(err, domain.ErrAnnouncementNotFound) {
		t.Fatalf("row still present after delete")
	}
}

func TestAnnouncementUpdateIsOverwrite(t *testing.T) {
	store := &fakeAnnStore{anns: map[int64]*domain.Announcement{
		1: {ID: 1, Category: "doc8", Title: "old", Text: "old text",
			Images: []string{"images/a.png", "images/b.png"}},
	}}
	svc := NewAnnouncementService(store, &fakeRemover{})

	if err := svc.Update(context.Background(), 1, "new", "new text", nil); err != nil {
		t.Fatalf("update: %v", err)
	}
	got := store.updated[1]
	if got[0] != "new" || got[1] != "new text" || got[2] != "" {
		t.Fatalf("update wrote %v, want full overwrite with empty image list", got)
	}
}

func TestAnnouncementUpdateMissing(t *testing.T) {
	svc := NewAnnouncementService(&fakeAnnStore{}, &fakeRemover{})
	if err := svc.Update(context.Background(), 42, "t", "x", nil); !errors.Is(err, domain.ErrAnnouncementNotFound) {
		t.Fatalf("err = %v, want ErrAnnouncementNotFound", err)
	}
}
