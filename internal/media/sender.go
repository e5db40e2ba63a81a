// Package media delivers an announcement body plus zero or more images as
// Telegram messages. One image travels as a captioned photo; several travel
// as a media group followed by a trailing text message, because the grouped
// primitive cannot carry a long caption or an inline keyboard.
package media

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// client is the slice of *bot.Bot the sender needs.
type client interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error)
	SendMediaGroup(ctx context.Context, params *bot.SendMediaGroupParams) ([]*models.Message, error)
}

type Sender struct {
	tg client

	// settle is slept between a successful grouped send and its trailing
	// caption message. Telegram processes media groups asynchronously; a
	// caption sent immediately can overtake the group.
	settle time.Duration
}

func NewSender(tg client, settle time.Duration) *Sender {
	return &Sender{tg: tg, settle: settle}
}

// Send delivers text plus images to the chat and returns the ids of every
// message it produced, in send order.
func (s *Sender) Send(ctx context.Context, chatID int64, text string, images []string, keyboard models.ReplyMarkup) ([]int, error) {
	switch len(images) {
	case 0:
		return s.sendText(ctx, chatID, text, keyboard)

	case 1:
		if _, err := os.Stat(images[0]); err != nil {
			slog.Warn("announcement image missing, sending text only", "path", images[0], "error", err)
			return s.sendText(ctx, chatID, text, keyboard)
		}
		return s.sendPhoto(ctx, chatID, images[0], text, keyboard)

	default:
		return s.sendGroup(ctx, chatID, text, images, keyboard)
	}
}

func (s *Sender) sendText(ctx context.Context, chatID int64, text string, keyboard models.ReplyMarkup) ([]int, error) {
	msg, err := s.tg.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   models.ParseModeMarkdownV1,
		ReplyMarkup: keyboard,
	})
	if err != nil {
		// Markdown can fail on unbalanced markup in user content.
		slog.Warn("markdown send failed, falling back to plain text", "error", err)
		msg, err = s.tg.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        text,
			ReplyMarkup: keyboard,
		})
		if err != nil {
			return nil, fmt.Errorf("send announcement text: %w", err)
		}
	}
	return []int{msg.ID}, nil
}

func (s *Sender) sendPhoto(ctx context.Context, chatID int64, path, caption string, keyboard models.ReplyMarkup) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		slog.Warn("open announcement image, sending text only", "path", path, "error", err)
		return s.sendText(ctx, chatID, caption, keyboard)
	}
	defer f.Close()

	msg, err := s.tg.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:      chatID,
		Photo:       &models.InputFileUpload{Filename: filepath.Base(path), Data: f},
		Caption:     caption,
		ParseMode:   models.ParseModeMarkdownV1,
		ReplyMarkup: keyboard,
	})
	if err != nil {
		return nil, fmt.Errorf("send announcement photo: %w", err)
	}
	return []int{msg.ID}, nil
}

func (s *Sender) sendGroup(ctx context.Context, chatID int64, text string, images []string, keyboard models.ReplyMarkup) ([]int, error) {
	existing := make([]string, 0, len(images))
	for _, p := range images {
		if _, err := os.Stat(p); err != nil {
			slog.Warn("announcement image missing, skipped", "path", p, "error", err)
			continue
		}
		existing = append(existing, p)
	}
	if len(existing) == 0 {
		return s.sendText(ctx, chatID, text, keyboard)
	}

	ids, err := s.trySendMediaGroup(ctx, chatID, existing)
	if err != nil || len(ids) == 0 {
		slog.Error("media group send failed, falling back to individual photos", "count", len(existing), "error", err)
		ids = s.sendIndividually(ctx, chatID, existing)
	} else if s.settle > 0 {
		time.Sleep(s.settle)
	}

	trailing, err := s.sendText(ctx, chatID, text, keyboard)
	if err != nil {
		return ids, err
	}
	return append(ids, trailing...), nil
}

func (s *Sender) trySendMediaGroup(ctx context.Context, chatID int64, paths []string) ([]int, error) {
	media := make([]models.InputMedia, 0, len(paths))
	var files []*os.File
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()

	for i, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return nil, fmt.Errorf("open image %s: %w", p, err)
		}
		files = append(files, f)
		attach := fmt.Sprintf("photo_%d", i)
		media = append(media, &models.InputMediaPhoto{
			Media:           "attach://" + attach,
			MediaAttachment: f,
		})
	}

	msgs, err := s.tg.SendMediaGroup(ctx, &bot.SendMediaGroupParams{
		ChatID: chatID,
		Media:  media,
	})
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(msgs))
	for _, m := range msgs {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

func (s *Sender) sendIndividually(ctx context.Context, chatID int64, paths []string) []int {
	var ids []int
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			slog.Warn("open image for individual send", "path", p, "error", err)
			continue
		}
		msg, err := s.tg.SendPhoto(ctx, &bot.SendPhotoParams{
			ChatID: chatID,
			Photo:  &models.InputFileUpload{Filename: filepath.Base(p), Data: f},
		})
		f.Close()
		if err != nil {
			slog.Warn("individual photo send failed", "path", p, "error", err)
			continue
		}
		ids = append(ids, msg.ID)
	}
	return ids
}
