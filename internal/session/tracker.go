package session

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
)

// messageDeleter is the single transport operation the tracker needs.
// *bot.Bot satisfies it.
type messageDeleter interface {
	DeleteMessage(ctx context.Context, params *bot.DeleteMessageParams) (bool, error)
}

// Tracker reconciles the ephemeral screens a session owns. Every wizard step
// retires the previously tracked screens before sending new ones; deletions
// are best-effort because the transport may have already lost the message.
type Tracker struct {
	tg messageDeleter
}

func NewTracker(tg messageDeleter) *Tracker {
	return &Tracker{tg: tg}
}

// BeginTransition deletes every tracked screen except keepID (the message
// the user just interacted with; deleting it would race the transition) and
// resets the list to that single survivor. keepID 0 means nothing survives.
func (t *Tracker) BeginTransition(ctx context.Context, s *Session, keepID int) {
	for _, id := range s.Live {
		if id == keepID {
			continue
		}
		t.delete(ctx, s.ChatID, id)
	}
	if keepID != 0 {
		s.Live = []int{keepID}
	} else {
		s.Live = nil
	}
}

// Record appends newly sent screen ids to the session's ledger.
func (t *Tracker) Record(s *Session, ids ...int) {
	s.Live = append(s.Live, ids...)
}

// ClearAll deletes every tracked screen unconditionally and empties the
// ledger. Used when a flow is abandoned entirely.
func (t *Tracker) ClearAll(ctx context.Context, s *Session) {
	for _, id := range s.Live {
		t.delete(ctx, s.ChatID, id)
	}
	s.Live = nil
}

func (t *Tracker) delete(ctx context.Context, chatID int64, messageID int) {
	_, err := t.tg.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: messageID,
	})
	if err != nil {
		slog.Warn("delete stale screen", "chat_id", chatID, "message_id", messageID, "error", err)
	}
}
