package handler

import "github.com/go-telegram/bot"

// Register wires the handler set onto the bot. A single prefix-matched
// callback handler owns every inline button; free-form messages reach
// handleMessage through the bot's default handler (wired in main).
func (h *Handler) Register() {
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, h.handleCallback)
}
