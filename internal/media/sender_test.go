package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

type fakeClient struct {
	nextID int

	texts      []string
	photos     int
	groupSizes []int

	groupErr   error
	groupEmpty bool
}

func (f *fakeClient) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	f.nextID++
	f.texts = append(f.texts, params.Text)
	return &models.Message{ID: f.nextID}, nil
}

func (f *fakeClient) SendPhoto(_ context.Context, _ *bot.SendPhotoParams) (*models.Message, error) {
	f.nextID++
	f.photos++
	return &models.Message{ID: f.nextID}, nil
}

func (f *fakeClient) SendMediaGroup(_ context.Context, params *bot.SendMediaGroupParams) ([]*models.Message, error) {
	if f.groupErr != nil {
		return nil, f.groupErr
	}
	if f.groupEmpty {
		return nil, nil
	}
	f.groupSizes = append(f.groupSizes, len(params.Media))
	msgs := make([]*models.Message, len(params.Media))
	for i := range msgs {
		f.nextID++
		msgs[i] = &models.Message{ID: f.nextID}
	}
	return msgs, nil
}

func writeImages(t *testing.T, n int) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, n)
	for i := range paths {
		paths[i] = filepath.Join(dir, "img"+string(rune('a'+i))+".png")
		if err := os.WriteFile(paths[i], []byte("png"), 0o644); err != nil {
			t.Fatalf("write image: %v", err)
		}
	}
	return paths
}

func TestSendNoImages(t *testing.T) {
	fc := &fakeClient{}
	s := NewSender(fc, 0)

	ids, err := s.Send(context.Background(), 1, "body", nil, nil)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(ids) != 1 || fc.photos != 0 || len(fc.texts) != 1 {
		t.Fatalf("want exactly one text message, got ids=%v photos=%d", ids, fc.photos)
	}
}

func TestSendSingleImage(t *testing.T) {
	fc := &fakeClient{}
	s := NewSender(fc, 0)
	paths := writeImages(t, 1)

	ids, err := s.Send(context.Background(), 1, "body", paths, nil)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(ids) != 1 || fc.photos != 1 || len(fc.texts) != 0 {
		t.Fatalf("want exactly one photo message, got ids=%v photos=%d texts=%d", ids, fc.photos, len(fc.texts))
	}
}

func TestSendSingleMissingImageFallsBackToText(t *testing.T) {
	fc := &fakeClient{}
	s := NewSender(fc, 0)

	ids, err := s.Send(context.Background(), 1, "body", []string{filepath.Join(t.TempDir(), "gone.png")}, nil)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(ids) != 1 || fc.photos != 0 || len(fc.texts) != 1 {
		t.Fatalf("want one text message, got ids=%v photos=%d texts=%d", ids, fc.photos, len(fc.texts))
	}
}

func TestSendGroupThenTrailingText(t *testing.T) {
	fc := &fakeClient{}
	s := NewSender(fc, 0)
	paths := writeImages(t, 3)

	ids, err := s.Send(context.Background(), 1, "body", paths, nil)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(fc.groupSizes) != 1 || fc.groupSizes[0] != 3 {
		t.Fatalf("want one grouped send of 3, got %v", fc.groupSizes)
	}
	if len(fc.texts) != 1 {
		t.Fatalf("want exactly one trailing text, got %d", len(fc.texts))
	}
	if len(ids) != 4 {
		t.Fatalf("want 3 group ids + 1 trailing id, got %v", ids)
	}
}

func TestSendGroupFailureFallsBackToIndividualPhotos(t *testing.T) {
	fc := &fakeClient{groupErr: errors.New("group rejected")}
	s := NewSender(fc, 0)
	paths := writeImages(t, 3)

	ids, err := s.Send(context.Background(), 1, "body", paths, nil)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if fc.photos != 3 {
		t.Fatalf("want 3 individual photos, got %d", fc.photos)
	}
	if len(fc.texts) != 1 {
		t.Fatalf("want one trailing text, got %d", len(fc.texts))
	}
	if len(ids) != 4 {
		t.Fatalf("want 4 ids, got %v", ids)
	}
}

func TestSendGroupEmptyResultIsAFailure(t *testing.T) {
	fc := &fakeClient{groupEmpty: true}
	s := NewSender(fc, 0)
	paths := writeImages(t, 2)

	ids, err := s.Send(context.Background(), 1, "body", paths, nil)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if fc.photos != 2 || len(fc.texts) != 1 || len(ids) != 3 {
		t.Fatalf("empty group result must fall back: photos=%d texts=%d ids=%v", fc.photos, len(fc.texts), ids)
	}
}

func TestSendGroupAllImagesMissingFallsBackToText(t *testing.T) {
	fc := &fakeClient{}
	s := NewSender(fc, 0)
	dir := t.TempDir()

	ids, err := s.Send(context.Background(), 1, "body",
		[]string{filepath.Join(dir, "a.png"), filepath.Join(dir, "b.png")}, nil)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(ids) != 1 || fc.photos != 0 || len(fc.groupSizes) != 0 {
		t.Fatalf("want single text message, got ids=%v", ids)
	}
}
