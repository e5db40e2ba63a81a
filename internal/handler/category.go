package handler

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/profkom/unionbot/internal/domain"
	"github.com/profkom/unionbot/internal/session"
	"github.com/profkom/unionbot/internal/telegram"
)

// openCategory renders a category: its documents, its link buttons, the
// announcement list (announcements category only), then the action menu. All
// previous screens are retired first.
func (h *Handler) openCategory(ctx context.Context, b *bot.Bot, s *session.Session, key string) {
	cat, ok := domain.CategoryByKey(key)
	if !ok {
		slog.Warn("unknown category", "key", key, "chat_id", s.ChatID)
		return
	}

	h.tracker.ClearAll(ctx, s)
	s.Reset()
	s.State = session.StateCategoryMenu
	s.Category = key

	docs, err := h.documents.List(ctx, key)
	if err != nil {
		slog.Error("list documents", "category", key, "error", err)
	}
	links, err := h.links.List(ctx, key)
	if err != nil {
		slog.Error("list links", "category", key, "error", err)
	}
	var anns []domain.Announcement
	if key == domain.AnnouncementsKey {
		anns, err = h.anns.List(ctx, key)
		if err != nil {
			slog.Error("list announcements", "category", key, "error", err)
		}
	}

	if len(docs) == 0 && len(links) == 0 && len(anns) == 0 {
		h.sendScreen(ctx, b, s, fmt.Sprintf("Категория: %s\n\nЗдесь пока ничего нет.", cat.DisplayName), nil)
	} else {
		for _, d := range docs {
			h.sendDocument(ctx, b, s, d)
		}
		if len(links) > 0 {
			rows := make([][]models.InlineKeyboardButton, 0, len(links))
			for _, l := range links {
				rows = append(rows, telegram.ButtonRow(telegram.URLButton(l.ButtonLabel(), l.URL)))
			}
			h.sendScreen(ctx, b, s, "Категория: "+cat.DisplayName,
				&models.InlineKeyboardMarkup{InlineKeyboard: rows})
		}
		if len(anns) > 0 {
			rows := make([][]models.InlineKeyboardButton, 0, len(anns))
			for _, a := range anns {
				rows = append(rows, telegram.ButtonRow(
					telegram.InlineButton(a.Title, encodeIDAction(actViewAnnouncement, a.ID)),
				))
			}
			h.sendScreen(ctx, b, s, "Объявления:",
				&models.InlineKeyboardMarkup{InlineKeyboard: rows})
		}
	}

	isAdmin := h.cfg.IsAdmin(s.UserID)
	h.sendScreen(ctx, b, s, chooseActionText, categoryActionKeyboard(key, isAdmin, len(links) > 0))
}

// sendDocument delivers one stored document: URL-backed entries become an
// HTML link line, local files are uploaded, everything else is forwarded by
// its Telegram file id.
func (h *Handler) sendDocument(ctx context.Context, b *bot.Bot, s *session.Session, d domain.Document) {
	if domain.IsURL(d.StorageRef) {
		lp := true
		msg, err := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    s.ChatID,
			Text:      fmt.Sprintf("<a href='%s'>%s</a>", d.StorageRef, d.FileName),
			ParseMode: models.ParseModeHTML,
			LinkPreviewOptions: &models.LinkPreviewOptions{
				IsDisabled: &lp,
			},
		})
		if err != nil {
			slog.Error("send document link", "document_id", d.ID, "error", err)
			return
		}
		h.tracker.Record(s, msg.ID)
		return
	}

	if _, statErr := os.Stat(d.StorageRef); statErr == nil {
		f, err := os.Open(d.StorageRef)
		if err != nil {
			slog.Error("open stored document", "path", d.StorageRef, "error", err)
			return
		}
		defer f.Close()
		msg, err := b.SendDocument(ctx, &bot.SendDocumentParams{
			ChatID:   s.ChatID,
			Document: &models.InputFileUpload{Filename: filepath.Base(d.FileName), Data: f},
		})
		if err != nil {
			slog.Error("send stored document", "document_id", d.ID, "error", err)
			return
		}
		h.tracker.Record(s, msg.ID)
		return
	}

	// A ref that is neither a URL nor a local file is a Telegram file id.
	msg, err := b.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID:   s.ChatID,
		Document: &models.InputFileString{Data: d.StorageRef},
	})
	if err != nil {
		slog.Error("send document by file id", "document_id", d.ID, "error", err)
		return
	}
	h.tracker.Record(s, msg.ID)
}
