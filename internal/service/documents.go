package service

import (
	"context"
	"fmt"

	"github.com/profkom/unionbot/internal/domain"
)

type documentStore interface {
	SaveDocument(ctx context.Context, category, fileName, storageRef string) (int64, error)
	GetDocument(ctx context.Context, id int64) (*domain.Document, error)
	ListDocuments(ctx context.Context, category string, limit int) ([]domain.Document, error)
	DeleteDocument(ctx context.Context, id int64) (bool, error)
}

// fileRemover deletes a locally stored file, best-effort.
type fileRemover interface {
	Remove(path string)
}

type DocumentService struct {
	store documentStore
	files fileRemover
}

func NewDocumentService(store documentStore, files fileRemover) *DocumentService {
	return &DocumentService{store: store, files: files}
}

func (s *DocumentService) Add(ctx context.Context, category, fileName, storageRef string) (int64, error) {
	return s.store.SaveDocument(ctx, category, fileName, storageRef)
}

func (s *DocumentService) List(ctx context.Context, category string) ([]domain.Document, error) {
	return s.store.ListDocuments(ctx, category, 0)
}

// Delete removes the row and, for locally stored content, the backing file.
// Row and file removal form one logical operation; a missing file does not
// abort the row deletion.
func (s *DocumentService) Delete(ctx context.Context, id int64) error {
	doc, err := s.store.GetDocument(ctx, id)
	if err != nil {
		return err
	}

	if doc.IsLocal() {
		s.files.Remove(doc.StorageRef)
	}

	ok, err := s.store.DeleteDocument(ctx, id)
	if err != nil {
		return fmt.Errorf("delete document %d: %w", id, err)
	}
	if !ok {
		return domain.ErrDocumentNotFound
	}
	return nil
}
