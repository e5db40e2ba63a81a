package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/profkom/unionbot/internal/domain"
)

// Store owns all SQL over the three content tables. It knows nothing about
// transport handles or local files; file lifecycle lives in the services.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Documents

func (s *Store) SaveDocument(ctx context.Context, category, fileName, storageRef string) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx,
		`INSERT INTO documents (category, file_name, storage_ref) VALUES ($1, $2, $3) RETURNING id`,
		category, fileName, storageRef,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("save document: %w", err)
	}
	return id, nil
}

func (s *Store) GetDocument(ctx context.Context, id int64) (*domain.Document, error) {
	var d domain.Document
	err := s.db.QueryRow(ctx,
		`SELECT id, category, file_name, storage_ref FROM documents WHERE id = $1`, id,
	).Scan(&d.ID, &d.Category, &d.FileName, &d.StorageRef)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return &d, nil
}

func (s *Store) ListDocuments(ctx context.Context, category string, limit int) ([]domain.Document, error) {
	q := `SELECT id, category, file_name, storage_ref FROM documents WHERE category = $1 ORDER BY id`
	args := []any{category}
	if limit > 0 {
		q += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var d domain.Document
		if err := rows.Scan(&d.ID, &d.Category, &d.FileName, &d.StorageRef); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (s *Store) DeleteDocument(ctx context.Context, id int64) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete document: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Links

func (s *Store) SaveLink(ctx context.Context, category, url, description string) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx,
		`INSERT INTO links (category, url, description) VALUES ($1, $2, $3) RETURNING id`,
		category, url, description,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("save link: %w", err)
	}
	return id, nil
}

func (s *Store) ListLinks(ctx context.Context, category string, limit int) ([]domain.Link, error) {
	q := `SELECT id, category, url, description FROM links WHERE category = $1 ORDER BY id`
	args := []any{category}
	if limit > 0 {
		q += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	defer rows.Close()

	var links []domain.Link
	for rows.Next() {
		var l domain.Link
		if err := rows.Scan(&l.ID, &l.Category, &l.URL, &l.Description); err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

func (s *Store) DeleteLink(ctx context.Context, id int64, category string) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM links WHERE id = $1 AND category = $2`, id, category)
	if err != nil {
		return false, fmt.Errorf("delete link: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Announcements

func (s *Store) SaveAnnouncement(ctx context.Context, category, title, text, imagesStr string) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx,
		`INSERT INTO announcements (category, title, body, images) VALUES ($1, $2, $3, $4) RETURNING id`,
		category, title, text, imagesStr,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("save announcement: %w", err)
	}
	return id, nil
}

func (s *Store) GetAnnouncement(ctx context.Context, id int64) (*domain.Announcement, error) {
	var a domain.Announcement
	var imagesStr string
	err := s.db.QueryRow(ctx,
		`SELECT id, category, title, body, images, created_at FROM announcements WHERE id = $1`, id,
	).Scan(&a.ID, &a.Category, &a.Title, &a.Text, &imagesStr, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("get announcement: %w", err)
	}
	a.Images = domain.SplitImages(imagesStr)
	return &a, nil
}

func (s *Store) ListAnnouncements(ctx context.Context, category string) ([]domain.Announcement, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, category, title, body, images, created_at FROM announcements WHERE category = $1 ORDER BY id`,
		category,
	)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	defer rows.Close()

	var anns []domain.Announcement
	for rows.Next() {
		var a domain.Announcement
		var imagesStr string
		if err := rows.Scan(&a.ID, &a.Category, &a.Title, &a.Text, &imagesStr, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan announcement: %w", err)
		}
		a.Images = domain.SplitImages(imagesStr)
		anns = append(anns, a)
	}
	return anns, rows.Err()
}

// UpdateAnnouncement replaces title, body and the image list wholesale.
// created_at is never touched.
func (s *Store) UpdateAnnouncement(ctx context.Context, id int64, title, text, imagesStr string) (bool, error) {
	tag, err := s.db.Exec(ctx,
		`UPDATE announcements SET title = $2, body = $3, images = $4 WHERE id = $1`,
		id, title, text, imagesStr,
	)
	if err != nil {
		return false, fmt.Errorf("update announcement: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) DeleteAnnouncement(ctx context.Context, id int64) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete announcement: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
