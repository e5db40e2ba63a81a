package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/profkom/unionbot/internal/domain"
	"github.com/profkom/unionbot/internal/session"
	"github.com/profkom/unionbot/internal/telegram"
)

func (h *Handler) startAddLinks(ctx context.Context, b *bot.Bot, s *session.Session, msg *models.Message) {
	if s.Category == "" {
		h.cancelToMain(ctx, b, s)
		return
	}
	s.State = session.StateAwaitingLinks
	s.Links = nil

	h.tracker.BeginTransition(ctx, s, msg.ID)
	h.editScreen(ctx, b, s, msg.ID,
		fmt.Sprintf("Отправьте ссылку как простой текст (например, https://example.com) и на следующей строке "+
			"укажите описание для категории '%s'. Описание станет названием кнопки. "+
			"Нажмите 'Завершить добавление', когда закончите.",
			domain.CategoryName(s.Category)),
		addLinksKeyboard())
}

// onLinkInput parses "URL\ndescription". The first line must look like a
// URL; the rest becomes the button label.
func (h *Handler) onLinkInput(ctx context.Context, b *bot.Bot, s *session.Session, m *models.Message) {
	url, description, _ := strings.Cut(strings.TrimSpace(m.Text), "\n")
	url = strings.TrimSpace(url)
	description = strings.TrimSpace(description)

	if !domain.IsURL(url) {
		h.tracker.BeginTransition(ctx, s, 0)
		h.sendScreen(ctx, b, s, "Пожалуйста, отправьте корректную ссылку.", addLinksKeyboard())
		return
	}

	s.Links = append(s.Links, session.PendingLink{URL: url, Description: description})

	shown := description
	if shown == "" {
		shown = "Не указано"
	}
	h.tracker.BeginTransition(ctx, s, 0)
	h.sendScreen(ctx, b, s,
		fmt.Sprintf("Ссылка '%s' добавлена. Описание: %s. Продолжайте добавление или завершите.", url, shown),
		addLinksKeyboard())
}

func (h *Handler) finishAddLinks(ctx context.Context, b *bot.Bot, s *session.Session, msg *models.Message) {
	saved := 0
	for _, l := range s.Links {
		if _, err := h.links.Add(ctx, s.Category, l.URL, l.Description); err != nil {
			slog.Error("save link", "category", s.Category, "url", l.URL, "error", err)
			continue
		}
		saved++
	}

	h.tracker.BeginTransition(ctx, s, msg.ID)
	h.editScreen(ctx, b, s, msg.ID,
		fmt.Sprintf("Сохранено ссылок: %d (категория '%s').", saved, domain.CategoryName(s.Category)), nil)
	s.Reset()
	h.sendScreen(ctx, b, s, mainMenuText, mainMenuKeyboard())
}

func (h *Handler) selectLinkDelete(ctx context.Context, b *bot.Bot, s *session.Session, msg *models.Message) {
	links, err := h.links.List(ctx, s.Category)
	if err != nil {
		slog.Error("list links for delete", "category", s.Category, "error", err)
		h.editScreen(ctx, b, s, msg.ID, genericErrorText, backToMainKeyboard())
		return
	}
	if len(links) == 0 {
		h.editScreen(ctx, b, s, msg.ID,
			fmt.Sprintf("В категории '%s' нет ссылок для удаления.", domain.CategoryName(s.Category)),
			backToMainKeyboard())
		return
	}

	s.State = session.StateSelectingLinkDelete
	rows := make([][]models.InlineKeyboardButton, 0, len(links)+1)
	for _, l := range links {
		rows = append(rows, telegram.ButtonRow(
			telegram.InlineButton(l.ButtonLabel(), encodeIDAction(actDeleteLink, l.ID)),
		))
	}
	rows = append(rows, telegram.ButtonRow(telegram.InlineButton(backLabel, encodeAction(actBackToMain))))

	h.tracker.BeginTransition(ctx, s, msg.ID)
	h.editScreen(ctx, b, s, msg.ID,
		fmt.Sprintf("Выберите ссылку для удаления в категории '%s':", domain.CategoryName(s.Category)),
		&models.InlineKeyboardMarkup{InlineKeyboard: rows})
}

func (h *Handler) deleteLink(ctx context.Context, b *bot.Bot, s *session.Session, msg *models.Message, id int64) {
	report := fmt.Sprintf("Ссылка удалена из категории '%s'.", domain.CategoryName(s.Category))
	if err := h.links.Delete(ctx, id, s.Category); err != nil {
		if !errors.Is(err, domain.ErrLinkNotFound) {
			slog.Error("delete link", "link_id", id, "error", err)
		}
		report = "Ссылка не найдена."
	}

	h.tracker.BeginTransition(ctx, s, msg.ID)
	h.editScreen(ctx, b, s, msg.ID, report, nil)
	s.Reset()
	h.sendScreen(ctx, b, s, mainMenuText, mainMenuKeyboard())
}
