package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/profkom/unionbot/internal/domain"
	"github.com/profkom/unionbot/internal/session"
	"github.com/profkom/unionbot/internal/telegram"
)

func (h *Handler) startAddDocuments(ctx context.Context, b *bot.Bot, s *session.Session, msg *models.Message) {
	if s.Category == "" {
		h.cancelToMain(ctx, b, s)
		return
	}
	s.State = session.StateAwaitingDocuments
	s.Docs = nil

	h.tracker.BeginTransition(ctx, s, msg.ID)
	h.editScreen(ctx, b, s, msg.ID,
		fmt.Sprintf("Отправьте документы для категории '%s'. Нажмите 'Завершить загрузку', когда закончите.",
			domain.CategoryName(s.Category)),
		addDocumentsKeyboard())
}

// onDocumentInput accepts a document attachment or a URL pasted as text.
// Anything else gets a corrective prompt and leaves the state unchanged.
func (h *Handler) onDocumentInput(ctx context.Context, b *bot.Bot, s *session.Session, m *models.Message) {
	switch {
	case m.Document != nil:
		ref := h.storeIncomingDocument(ctx, b, s.Category, m.Document)
		s.Docs = append(s.Docs, session.PendingDocument{
			FileName:   m.Document.FileName,
			StorageRef: ref,
		})
		h.tracker.BeginTransition(ctx, s, 0)
		h.sendScreen(ctx, b, s,
			fmt.Sprintf("Документ '%s' добавлен. Продолжайте загрузку или завершите.", m.Document.FileName),
			addDocumentsKeyboard())

	case domain.IsURL(m.Text):
		url := strings.TrimSpace(m.Text)
		s.Docs = append(s.Docs, session.PendingDocument{FileName: url, StorageRef: url})
		h.tracker.BeginTransition(ctx, s, 0)
		h.sendScreen(ctx, b, s,
			fmt.Sprintf("Документ '%s' добавлен. Продолжайте загрузку или завершите.", url),
			addDocumentsKeyboard())

	default:
		h.tracker.BeginTransition(ctx, s, 0)
		h.sendScreen(ctx, b, s,
			"Пожалуйста, отправьте документ или ссылку.", addDocumentsKeyboard())
	}
}

// storeIncomingDocument downloads the attachment onto local disk. When the
// download or the write fails the Telegram file id is kept as the storage
// ref so the document still renders by forwarding.
func (h *Handler) storeIncomingDocument(ctx context.Context, b *bot.Bot, category string, doc *models.Document) string {
	data, err := telegram.DownloadFile(ctx, b, doc.FileID)
	if err != nil {
		slog.Error("download document, keeping file id", "file_name", doc.FileName, "error", err)
		return doc.FileID
	}
	path, err := h.files.SaveDocument(category, doc.FileName, data)
	if err != nil {
		slog.Error("store document, keeping file id", "file_name", doc.FileName, "error", err)
		return doc.FileID
	}
	return path
}

// finishAddDocuments persists the pending uploads one by one. A failed item
// is logged and skipped; the rest still commit.
func (h *Handler) finishAddDocuments(ctx context.Context, b *bot.Bot, s *session.Session, msg *models.Message) {
	saved := 0
	for _, d := range s.Docs {
		if _, err := h.documents.Add(ctx, s.Category, d.FileName, d.StorageRef); err != nil {
			slog.Error("save document", "category", s.Category, "file_name", d.FileName, "error", err)
			continue
		}
		saved++
	}

	h.tracker.BeginTransition(ctx, s, msg.ID)
	h.editScreen(ctx, b, s, msg.ID,
		fmt.Sprintf("Сохранено документов: %d (категория '%s').", saved, domain.CategoryName(s.Category)), nil)
	s.Reset()
	h.sendScreen(ctx, b, s, mainMenuText, mainMenuKeyboard())
}

func (h *Handler) selectDocumentDelete(ctx context.Context, b *bot.Bot, s *session.Session, msg *models.Message) {
	docs, err := h.documents.List(ctx, s.Category)
	if err != nil {
		slog.Error("list documents for delete", "category", s.Category, "error", err)
		h.editScreen(ctx, b, s, msg.ID, genericErrorText, backToMainKeyboard())
		return
	}
	if len(docs) == 0 {
		h.editScreen(ctx, b, s, msg.ID,
			fmt.Sprintf("В категории '%s' нет документов для удаления.", domain.CategoryName(s.Category)),
			backToMainKeyboard())
		return
	}

	s.State = session.StateSelectingDocumentDelete
	rows := make([][]models.InlineKeyboardButton, 0, len(docs)+1)
	for _, d := range docs {
		rows = append(rows, telegram.ButtonRow(
			telegram.InlineButton("Удалить "+d.FileName, encodeIDAction(actDeleteDocument, d.ID)),
		))
	}
	rows = append(rows, telegram.ButtonRow(telegram.InlineButton(backLabel, encodeAction(actBackToMain))))

	h.tracker.BeginTransition(ctx, s, msg.ID)
	h.editScreen(ctx, b, s, msg.ID,
		fmt.Sprintf("Выберите документ для удаления в категории '%s':", domain.CategoryName(s.Category)),
		&models.InlineKeyboardMarkup{InlineKeyboard: rows})
}

func (h *Handler) deleteDocument(ctx context.Context, b *bot.Bot, s *session.Session, msg *models.Message, id int64) {
	report := fmt.Sprintf("Документ удален из категории '%s'.", domain.CategoryName(s.Category))
	if err := h.documents.Delete(ctx, id); err != nil {
		slog.Error("delete document", "document_id", id, "error", err)
		report = "Документ не найден."
	}

	h.tracker.BeginTransition(ctx, s, msg.ID)
	h.editScreen(ctx, b, s, msg.ID, report, nil)
	s.Reset()
	h.sendScreen(ctx, b, s, mainMenuText, mainMenuKeyboard())
}
