// Package handler drives the conversational workflows: the category menus,
// the document and link upload wizards, and the announcement wizards. Each
// (chat, user) pair owns one session whose state decides how plain messages
// are interpreted; inline buttons carry typed actions decoded in dispatch.
package handler

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/profkom/unionbot/internal/config"
	"github.com/profkom/unionbot/internal/media"
	"github.com/profkom/unionbot/internal/service"
	"github.com/profkom/unionbot/internal/session"
	"github.com/profkom/unionbot/internal/storage"
)

// Handler holds all dependencies needed by command and callback handlers.
type Handler struct {
	bot       *bot.Bot
	cfg       *config.Config
	documents *service.DocumentService
	links     *service.LinkService
	anns      *service.AnnouncementService
	sessions  *session.Manager
	tracker   *session.Tracker
	media     *media.Sender
	files     *storage.FileStore
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot       *bot.Bot
	Cfg       *config.Config
	Documents *service.DocumentService
	Links     *service.LinkService
	Anns      *service.AnnouncementService
	Sessions  *session.Manager
	Tracker   *session.Tracker
	Media     *media.Sender
	Files     *storage.FileStore
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:       deps.Bot,
		cfg:       deps.Cfg,
		documents: deps.Documents,
		links:     deps.Links,
		anns:      deps.Anns,
		sessions:  deps.Sessions,
		tracker:   deps.Tracker,
		media:     deps.Media,
		files:     deps.Files,
	}
}

// handleCallback is the single entry point for every inline button press.
func (h *Handler) handleCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	q := update.CallbackQuery
	if q == nil {
		return
	}
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: q.ID,
	})

	msg := q.Message.Message
	if msg == nil {
		return
	}

	act, ok := parseAction(q.Data)
	if !ok {
		slog.Warn("unrecognized callback data", "data", q.Data, "user_id", q.From.ID)
		return
	}

	s := h.sessions.Get(msg.Chat.ID, q.From.ID)
	s.Lock()
	defer s.Unlock()

	if act.operatorOnly() && !h.cfg.IsAdmin(q.From.ID) {
		slog.Info("operation denied", "user_id", q.From.ID, "action", act.Kind)
		h.editScreen(ctx, b, s, msg.ID, permissionDenied, nil)
		return
	}

	h.dispatch(ctx, b, s, act, msg)
}

func (h *Handler) dispatch(ctx context.Context, b *bot.Bot, s *session.Session, act action, msg *models.Message) {
	switch act.Kind {
	case actNoop:

	case actBack, actBackToMain:
		h.cancelToMain(ctx, b, s)

	case actOpenCategory:
		h.openCategory(ctx, b, s, act.Key)

	case actAddDocuments:
		h.startAddDocuments(ctx, b, s, msg)
	case actDoneDocuments:
		h.finishAddDocuments(ctx, b, s, msg)
	case actDeleteDocumentSelect:
		h.selectDocumentDelete(ctx, b, s, msg)
	case actDeleteDocument:
		h.deleteDocument(ctx, b, s, msg, act.ID)

	case actAddLink:
		h.startAddLinks(ctx, b, s, msg)
	case actDoneLinks:
		h.finishAddLinks(ctx, b, s, msg)
	case actDeleteLinkSelect:
		h.selectLinkDelete(ctx, b, s, msg)
	case actDeleteLink:
		h.deleteLink(ctx, b, s, msg, act.ID)

	case actAddAnnouncement:
		h.startAddAnnouncement(ctx, b, s, msg)
	case actViewAnnouncement:
		h.viewAnnouncement(ctx, b, s, msg, act.ID)
	case actChooseImages:
		h.startCollectingImages(ctx, b, s, msg)
	case actSkipImages, actDoneImages:
		h.commitAnnouncement(ctx, b, s, msg)
	case actDeleteAnnouncementSelect:
		h.selectAnnouncementDelete(ctx, b, s, msg)
	case actDeleteAnnouncement:
		h.deleteAnnouncement(ctx, b, s, msg, act.ID)
	case actEditAnnouncementSelect:
		h.selectAnnouncementEdit(ctx, b, s, msg)
	case actEditAnnouncement:
		h.startEditAnnouncement(ctx, b, s, msg, act.ID)
	case actEditTitle:
		h.promptEditTitle(ctx, b, s, msg)
	case actEditText:
		h.promptEditText(ctx, b, s, msg)
	case actEditImages:
		h.showEditImages(ctx, b, s, msg)
	case actRemoveImage:
		h.removeImage(ctx, b, s, msg, act.Index)
	case actAddMoreImages:
		h.promptMoreImages(ctx, b, s, msg)
	case actDoneEditImages:
		h.showEditMenu(ctx, b, s, msg)
	case actSaveEdit:
		h.saveEdit(ctx, b, s, msg)
	}
}

// HandleMessage routes free-form input by the session's wizard step. It is
// wired as the bot's default handler; messages arriving outside a wizard are
// ignored.
func (h *Handler) HandleMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	m := update.Message
	if m == nil || m.From == nil {
		return
	}

	s := h.sessions.Get(m.Chat.ID, m.From.ID)
	s.Lock()
	defer s.Unlock()

	switch s.State {
	case session.StateAwaitingDocuments:
		h.onDocumentInput(ctx, b, s, m)
	case session.StateAwaitingLinks:
		h.onLinkInput(ctx, b, s, m)
	case session.StateAwaitingTitle:
		h.onTitleInput(ctx, b, s, m)
	case session.StateAwaitingText:
		h.onTextInput(ctx, b, s, m)
	case session.StateCollectingImages, session.StateEditingImages:
		h.onImageInput(ctx, b, s, m)
	case session.StateEditingTitle:
		h.onEditTitleInput(ctx, b, s, m)
	case session.StateEditingText:
		h.onEditTextInput(ctx, b, s, m)
	}
}

// handleStart resets any in-flight wizard and shows the main menu.
func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	m := update.Message
	if m == nil || m.From == nil {
		return
	}

	s := h.sessions.Get(m.Chat.ID, m.From.ID)
	s.Lock()
	defer s.Unlock()

	h.cancelToMain(ctx, b, s)
}

// cancelToMain abandons the current wizard and shows a fresh main menu.
func (h *Handler) cancelToMain(ctx context.Context, b *bot.Bot, s *session.Session) {
	h.discardDraft(s)
	h.tracker.ClearAll(ctx, s)
	h.sendScreen(ctx, b, s, mainMenuText, mainMenuKeyboard())
}

// abortWizard ends the current wizard after a failure: the report replaces
// the triggering screen, the draft is discarded and the session returns to
// the main menu.
func (h *Handler) abortWizard(ctx context.Context, b *bot.Bot, s *session.Session, msg *models.Message, report string) {
	h.tracker.BeginTransition(ctx, s, msg.ID)
	h.editScreen(ctx, b, s, msg.ID, report, nil)
	h.discardDraft(s)
	h.sendScreen(ctx, b, s, mainMenuText, mainMenuKeyboard())
}

// discardDraft clears the workflow state. Image files staged by an
// unfinished add wizard are removed; a draft loaded for editing keeps its
// files because they still belong to the stored row.
func (h *Handler) discardDraft(s *session.Session) {
	if s.Draft != nil && s.Draft.ID == 0 {
		for _, path := range s.Draft.Images {
			h.files.Remove(path)
		}
	}
	s.Reset()
}

// sendScreen sends a tracked screen to the session's chat.
func (h *Handler) sendScreen(ctx context.Context, b *bot.Bot, s *session.Session, text string, kb models.ReplyMarkup) {
	msg, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      s.ChatID,
		Text:        text,
		ReplyMarkup: kb,
	})
	if err != nil {
		slog.Error("send screen", "chat_id", s.ChatID, "error", err)
		return
	}
	h.tracker.Record(s, msg.ID)
}

// editScreen rewrites an existing screen in place, falling back to a fresh
// message when the edit is rejected (the original may be a media message).
func (h *Handler) editScreen(ctx context.Context, b *bot.Bot, s *session.Session, messageID int, text string, kb models.ReplyMarkup) {
	_, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      s.ChatID,
		MessageID:   messageID,
		Text:        text,
		ReplyMarkup: kb,
	})
	if err != nil {
		slog.Warn("edit screen failed, sending new message", "chat_id", s.ChatID, "message_id", messageID, "error", err)
		h.sendScreen(ctx, b, s, text, kb)
	}
}
