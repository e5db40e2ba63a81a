package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/profkom/unionbot/internal/domain"
	"github.com/profkom/unionbot/internal/session"
	"github.com/profkom/unionbot/internal/telegram"
)

// announcementBody renders the title+text body shared by every announcement
// screen. The media sender downgrades to plain text if the markup is broken.
func announcementBody(title, text string) string {
	return fmt.Sprintf("*%s*\n\n%s", title, text)
}

func (h *Handler) startAddAnnouncement(ctx context.Context, b *bot.Bot, s *session.Session, msg *models.Message) {
	if s.Category != domain.AnnouncementsKey {
		h.cancelToMain(ctx, b, s)
		return
	}
	s.Draft = &session.AnnouncementDraft{}
	s.State = session.StateAwaitingTitle

	h.tracker.BeginTransition(ctx, s, msg.ID)
	h.editScreen(ctx, b, s, msg.ID, "Введите заголовок объявления:", backKeyboard())
}

func (h *Handler) onTitleInput(ctx context.Context, b *bot.Bot, s *session.Session, m *models.Message) {
	if s.Draft == nil || strings.TrimSpace(m.Text) == "" {
		return
	}
	s.Draft.Title = m.Text
	s.State = session.StateAwaitingText

	h.tracker.BeginTransition(ctx, s, 0)
	h.sendScreen(ctx, b, s, "Введите текст объявления:", backKeyboard())
}

func (h *Handler) onTextInput(ctx context.Context, b *bot.Bot, s *session.Session, m *models.Message) {
	if s.Draft == nil || strings.TrimSpace(m.Text) == "" {
		return
	}
	s.Draft.Text = m.Text
	s.State = session.StateAwaitingImageChoice

	h.tracker.BeginTransition(ctx, s, 0)
	h.sendScreen(ctx, b, s, "Хотите добавить изображения? Выберите действие:", imageChoiceKeyboard())
}

func (h *Handler) startCollectingImages(ctx context.Context, b *bot.Bot, s *session.Session, msg *models.Message) {
	if s.Draft == nil {
		h.cancelToMain(ctx, b, s)
		return
	}
	s.State = session.StateCollectingImages

	h.tracker.BeginTransition(ctx, s, msg.ID)
	h.editScreen(ctx, b, s, msg.ID,
		"Отправьте изображения. Нажмите 'Завершить с изображениями', когда закончите.",
		collectImagesKeyboard())
}

// onImageInput stores one incoming photo into the draft. Serves both the add
// wizard and the edit-images step; the keyboard differs by state.
func (h *Handler) onImageInput(ctx context.Context, b *bot.Bot, s *session.Session, m *models.Message) {
	if s.Draft == nil || len(m.Photo) == 0 {
		return
	}

	// The last size is the largest rendition.
	photo := m.Photo[len(m.Photo)-1]
	data, err := telegram.DownloadFile(ctx, b, photo.FileID)
	if err != nil {
		slog.Error("download photo", "chat_id", s.ChatID, "error", err)
		h.sendScreen(ctx, b, s, "Ошибка при обработке изображения. Попробуйте снова.", nil)
		return
	}
	path, err := h.files.SaveImage(data)
	if err != nil {
		slog.Error("store photo", "chat_id", s.ChatID, "error", err)
		h.sendScreen(ctx, b, s, "Ошибка при обработке изображения. Попробуйте снова.", nil)
		return
	}
	s.Draft.Images = append(s.Draft.Images, path)

	kb := collectImagesKeyboard()
	if s.State == session.StateEditingImages {
		kb = editImagesKeyboard(len(s.Draft.Images))
	}
	h.tracker.BeginTransition(ctx, s, 0)
	h.sendScreen(ctx, b, s,
		fmt.Sprintf("Изображение %d добавлено. Продолжайте или завершите.", len(s.Draft.Images)), kb)
}

// commitAnnouncement persists the draft and renders the stored announcement
// in the chat. Reached from both "finish without images" and "finish with
// images".
func (h *Handler) commitAnnouncement(ctx context.Context, b *bot.Bot, s *session.Session, msg *models.Message) {
	if s.Draft == nil {
		h.cancelToMain(ctx, b, s)
		return
	}
	draft := s.Draft

	id, err := h.anns.Create(ctx, s.Category, draft.Title, draft.Text, draft.Images)
	if err != nil {
		slog.Error("save announcement", "category", s.Category, "error", err)
		h.abortWizard(ctx, b, s, msg, "Ошибка при сохранении объявления. Попробуйте снова.")
		return
	}
	slog.Info("announcement saved", "announcement_id", id, "images", len(draft.Images))

	h.tracker.BeginTransition(ctx, s, msg.ID)
	h.editScreen(ctx, b, s, msg.ID, fmt.Sprintf("Объявление '%s' сохранено.", draft.Title), nil)

	ids, err := h.media.Send(ctx, s.ChatID, announcementBody(draft.Title, draft.Text), draft.Images, backToMainKeyboard())
	if err != nil {
		slog.Error("render saved announcement", "announcement_id", id, "error", err)
	}
	h.tracker.Record(s, ids...)
	s.Reset()
}

func (h *Handler) viewAnnouncement(ctx context.Context, b *bot.Bot, s *session.Session, msg *models.Message, id int64) {
	a, err := h.anns.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrAnnouncementNotFound) {
			slog.Error("load announcement", "announcement_id", id, "error", err)
		}
		h.editScreen(ctx, b, s, msg.ID, notFoundAnnText, backToMainKeyboard())
		return
	}

	h.tracker.ClearAll(ctx, s)
	ids, err := h.media.Send(ctx, s.ChatID, announcementBody(a.Title, a.Text), a.Images, backToMainKeyboard())
	if err != nil {
		slog.Error("render announcement", "announcement_id", id, "error", err)
	}
	h.tracker.Record(s, ids...)
}

func (h *Handler) selectAnnouncementDelete(ctx context.Context, b *bot.Bot, s *session.Session, msg *models.Message) {
	h.selectAnnouncement(ctx, b, s, msg, "Удалить", actDeleteAnnouncement,
		session.StateSelectingAnnouncementDelete, "Выберите объявление для удаления:", "нет объявлений для удаления")
}

func (h *Handler) selectAnnouncementEdit(ctx context.Context, b *bot.Bot, s *session.Session, msg *models.Message) {
	h.selectAnnouncement(ctx, b, s, msg, "Редактировать", actEditAnnouncement,
		session.StateSelectingAnnouncementEdit, "Выберите объявление для редактирования:", "нет объявлений для редактирования")
}

func (h *Handler) selectAnnouncement(ctx context.Context, b *bot.Bot, s *session.Session, msg *models.Message,
	verb string, kind actionKind, next session.State, prompt, emptyReason string) {
	anns, err := h.anns.List(ctx, s.Category)
	if err != nil {
		slog.Error("list announcements", "category", s.Category, "error", err)
		h.editScreen(ctx, b, s, msg.ID, genericErrorText, backToMainKeyboard())
		return
	}
	if len(anns) == 0 {
		h.editScreen(ctx, b, s, msg.ID,
			fmt.Sprintf("В категории '%s' %s.", domain.CategoryName(s.Category), emptyReason),
			backToMainKeyboard())
		return
	}

	s.State = next
	rows := make([][]models.InlineKeyboardButton, 0, len(anns)+1)
	for _, a := range anns {
		rows = append(rows, telegram.ButtonRow(
			telegram.InlineButton(verb+" "+a.Title, encodeIDAction(kind, a.ID)),
		))
	}
	rows = append(rows, telegram.ButtonRow(telegram.InlineButton(backLabel, encodeAction(actBackToMain))))

	h.tracker.BeginTransition(ctx, s, msg.ID)
	h.editScreen(ctx, b, s, msg.ID, prompt, &models.InlineKeyboardMarkup{InlineKeyboard: rows})
}

func (h *Handler) deleteAnnouncement(ctx context.Context, b *bot.Bot, s *session.Session, msg *models.Message, id int64) {
	report := fmt.Sprintf("Объявление удалено из категории '%s'.", domain.CategoryName(s.Category))
	if err := h.anns.Delete(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrAnnouncementNotFound) {
			slog.Error("delete announcement", "announcement_id", id, "error", err)
		}
		report = notFoundAnnText
	}

	h.tracker.BeginTransition(ctx, s, msg.ID)
	h.editScreen(ctx, b, s, msg.ID, report, nil)
	s.Reset()
	h.sendScreen(ctx, b, s, mainMenuText, mainMenuKeyboard())
}

// startEditAnnouncement loads the stored row verbatim into the draft, so an
// edit saved without changes writes back identical content.
func (h *Handler) startEditAnnouncement(ctx context.Context, b *bot.Bot, s *session.Session, msg *models.Message, id int64) {
	a, err := h.anns.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrAnnouncementNotFound) {
			slog.Error("load announcement for edit", "announcement_id", id, "error", err)
		}
		h.abortWizard(ctx, b, s, msg, notFoundAnnText)
		return
	}

	s.Draft = &session.AnnouncementDraft{
		ID:     a.ID,
		Title:  a.Title,
		Text:   a.Text,
		Images: append([]string(nil), a.Images...),
	}
	s.State = session.StateEditMenu

	h.tracker.BeginTransition(ctx, s, msg.ID)
	h.editScreen(ctx, b, s, msg.ID,
		fmt.Sprintf("Редактирование объявления '%s'\nВыберите действие:", a.Title), editMenuKeyboard())
}

func (h *Handler) showEditMenu(ctx context.Context, b *bot.Bot, s *session.Session, msg *models.Message) {
	if s.Draft == nil {
		h.cancelToMain(ctx, b, s)
		return
	}
	s.State = session.StateEditMenu

	h.tracker.BeginTransition(ctx, s, msg.ID)
	h.editScreen(ctx, b, s, msg.ID,
		fmt.Sprintf("Редактирование объявления '%s'\nВыберите действие:", s.Draft.Title), editMenuKeyboard())
}

func (h *Handler) promptEditTitle(ctx context.Context, b *bot.Bot, s *session.Session, msg *models.Message) {
	if s.Draft == nil {
		h.cancelToMain(ctx, b, s)
		return
	}
	s.State = session.StateEditingTitle

	h.tracker.BeginTransition(ctx, s, msg.ID)
	h.editScreen(ctx, b, s, msg.ID,
		fmt.Sprintf("Текущий заголовок:\n\n%s\n\nВведите новый заголовок:", s.Draft.Title), backKeyboard())
}

func (h *Handler) onEditTitleInput(ctx context.Context, b *bot.Bot, s *session.Session, m *models.Message) {
	if s.Draft == nil || strings.TrimSpace(m.Text) == "" {
		return
	}
	s.Draft.Title = m.Text
	s.State = session.StateEditMenu

	h.tracker.BeginTransition(ctx, s, 0)
	h.sendScreen(ctx, b, s, "Заголовок обновлен. Выберите следующее действие:", editMenuKeyboard())
}

func (h *Handler) promptEditText(ctx context.Context, b *bot.Bot, s *session.Session, msg *models.Message) {
	if s.Draft == nil {
		h.cancelToMain(ctx, b, s)
		return
	}
	s.State = session.StateEditingText

	h.tracker.BeginTransition(ctx, s, msg.ID)
	h.editScreen(ctx, b, s, msg.ID,
		fmt.Sprintf("Текущий текст:\n\n%s\n\nВведите новый текст:", s.Draft.Text), backKeyboard())
}

func (h *Handler) onEditTextInput(ctx context.Context, b *bot.Bot, s *session.Session, m *models.Message) {
	if s.Draft == nil || strings.TrimSpace(m.Text) == "" {
		return
	}
	s.Draft.Text = m.Text
	s.State = session.StateEditMenu

	h.tracker.BeginTransition(ctx, s, 0)
	h.sendScreen(ctx, b, s, "Текст обновлен. Выберите следующее действие:", editMenuKeyboard())
}

func (h *Handler) showEditImages(ctx context.Context, b *bot.Bot, s *session.Session, msg *models.Message) {
	if s.Draft == nil {
		h.cancelToMain(ctx, b, s)
		return
	}
	s.State = session.StateEditingImages

	h.tracker.BeginTransition(ctx, s, msg.ID)
	h.editScreen(ctx, b, s, msg.ID, imagesSummary(s.Draft.Images), editImagesKeyboard(len(s.Draft.Images)))
}

func imagesSummary(images []string) string {
	var sb strings.Builder
	sb.WriteString("Текущие изображения:\n")
	if len(images) == 0 {
		sb.WriteString("Нет изображений.\n")
	}
	for i, path := range images {
		name := filepath.Base(path)
		if _, err := os.Stat(path); err != nil {
			fmt.Fprintf(&sb, "%d. (Файл не найден: %s)\n", i+1, name)
			continue
		}
		fmt.Fprintf(&sb, "%d. %s\n", i+1, name)
	}
	sb.WriteString("\nОтправьте новые изображения или удалите существующие:")
	return sb.String()
}

// removeImage drops one image slot from the draft and deletes its file
// immediately; the stored row keeps the stale path until the edit is saved.
func (h *Handler) removeImage(ctx context.Context, b *bot.Bot, s *session.Session, msg *models.Message, index int) {
	if s.Draft == nil {
		h.cancelToMain(ctx, b, s)
		return
	}
	if index < 0 || index >= len(s.Draft.Images) {
		slog.Warn("remove image index out of range", "index", index, "count", len(s.Draft.Images))
		h.showEditImages(ctx, b, s, msg)
		return
	}

	removed := s.Draft.Images[index]
	s.Draft.Images = append(s.Draft.Images[:index], s.Draft.Images[index+1:]...)
	h.files.Remove(removed)

	h.showEditImages(ctx, b, s, msg)
}

func (h *Handler) promptMoreImages(ctx context.Context, b *bot.Bot, s *session.Session, msg *models.Message) {
	if s.Draft == nil {
		h.cancelToMain(ctx, b, s)
		return
	}
	s.State = session.StateEditingImages

	h.tracker.BeginTransition(ctx, s, msg.ID)
	h.editScreen(ctx, b, s, msg.ID,
		"Отправьте новое изображение. Нажмите 'Завершить редактирование изображений', когда закончите.",
		editImagesKeyboard(len(s.Draft.Images)))
}

// saveEdit writes the full draft back over the stored row and re-renders
// the result.
func (h *Handler) saveEdit(ctx context.Context, b *bot.Bot, s *session.Session, msg *models.Message) {
	if s.Draft == nil {
		h.cancelToMain(ctx, b, s)
		return
	}
	draft := s.Draft

	if err := h.anns.Update(ctx, draft.ID, draft.Title, draft.Text, draft.Images); err != nil {
		if errors.Is(err, domain.ErrAnnouncementNotFound) {
			h.abortWizard(ctx, b, s, msg, notFoundAnnText)
			return
		}
		slog.Error("update announcement", "announcement_id", draft.ID, "error", err)
		h.abortWizard(ctx, b, s, msg, "Ошибка при обновлении объявления.")
		return
	}

	h.tracker.BeginTransition(ctx, s, msg.ID)
	h.editScreen(ctx, b, s, msg.ID, "Объявление обновлено.", nil)

	ids, err := h.media.Send(ctx, s.ChatID, announcementBody(draft.Title, draft.Text), draft.Images, backToMainKeyboard())
	if err != nil {
		slog.Error("render updated announcement", "announcement_id", draft.ID, "error", err)
	}
	h.tracker.Record(s, ids...)
	s.Reset()
}
