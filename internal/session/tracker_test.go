package session

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/go-telegram/bot"
)

type fakeDeleter struct {
	deleted []int
	failOn  map[int]bool
}

func (f *fakeDeleter) DeleteMessage(_ context.Context, params *bot.DeleteMessageParams) (bool, error) {
	f.deleted = append(f.deleted, params.MessageID)
	if f.failOn[params.MessageID] {
		return false, errors.New("message to delete not found")
	}
	return true, nil
}

func TestBeginTransitionSparesTriggeringScreen(t *testing.T) {
	fd := &fakeDeleter{}
	tr := NewTracker(fd)
	s := &Session{ChatID: 1, Live: []int{10, 11, 12}}

	tr.BeginTransition(context.Background(), s, 11)

	if !reflect.DeepEqual(fd.deleted, []int{10, 12}) {
		t.Fatalf("deleted %v, want [10 12]", fd.deleted)
	}
	if !reflect.DeepEqual(s.Live, []int{11}) {
		t.Fatalf("live %v, want [11]", s.Live)
	}
}

func TestBeginTransitionSwallowsDeleteFailures(t *testing.T) {
	fd := &fakeDeleter{failOn: map[int]bool{10: true}}
	tr := NewTracker(fd)
	s := &Session{ChatID: 1, Live: []int{10, 11}}

	tr.BeginTransition(context.Background(), s, 0)

	if !reflect.DeepEqual(fd.deleted, []int{10, 11}) {
		t.Fatalf("every deletion must be attempted independently, got %v", fd.deleted)
	}
	if s.Live != nil {
		t.Fatalf("live %v, want empty", s.Live)
	}
}

func TestClearAllDeletesEverything(t *testing.T) {
	fd := &fakeDeleter{}
	tr := NewTracker(fd)
	s := &Session{ChatID: 1, Live: []int{5, 6}}

	tr.ClearAll(context.Background(), s)

	if !reflect.DeepEqual(fd.deleted, []int{5, 6}) {
		t.Fatalf("deleted %v, want [5 6]", fd.deleted)
	}
	if len(s.Live) != 0 {
		t.Fatalf("live %v, want empty", s.Live)
	}
}

func TestRecordAppendsInOrder(t *testing.T) {
	tr := NewTracker(&fakeDeleter{})
	s := &Session{}

	tr.Record(s, 1)
	tr.Record(s, 2, 3)

	if !reflect.DeepEqual(s.Live, []int{1, 2, 3}) {
		t.Fatalf("live %v, want [1 2 3]", s.Live)
	}
}

func TestManagerReturnsSameSession(t *testing.T) {
	m := NewManager()

	a := m.Get(1, 2)
	b := m.Get(1, 2)
	if a != b {
		t.Fatal("same (chat, user) pair must map to one session")
	}
	if m.Get(1, 3) == a {
		t.Fatal("different user must get its own session")
	}
	if a.State != StateMainMenu {
		t.Fatalf("new session state = %s, want main menu", a.State)
	}
	if m.Len() != 2 {
		t.Fatalf("len = %d, want 2", m.Len())
	}
}

func TestResetClearsWorkflowFields(t *testing.T) {
	s := &Session{
		ChatID:   1,
		UserID:   2,
		State:    StateCollectingImages,
		Category: "doc8",
		Docs:     []PendingDocument{{FileName: "a.pdf"}},
		Links:    []PendingLink{{URL: "https://example.com"}},
		Draft:    &AnnouncementDraft{Title: "t"},
		Live:     []int{9},
	}

	s.Reset()

	if s.State != StateMainMenu || s.Category != "" || s.Docs != nil || s.Links != nil || s.Draft != nil {
		t.Fatalf("reset left workflow state behind: %+v", s)
	}
	if s.ChatID != 1 || s.UserID != 2 {
		t.Fatal("reset must keep identity")
	}
	if len(s.Live) != 1 {
		t.Fatal("reset must not touch the screen ledger")
	}
}
