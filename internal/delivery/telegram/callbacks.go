package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Remove the user's "clock".
	answer := tgbotapi.NewCallback(cb.ID, "")
	if _, err := h.bot.Request(answer); err != nil {
		h.logger.Warn("callback answer error", zap.Error(err))
	}

	if cb.Message == nil || cb.Message.Chat == nil {
		return
	}
	chatID := cb.Message.Chat.ID

	data := decodeCallback(cb.Data)
	switch data.Action {
	case actionQuiz:
		switch data.param(0) {
		case quizNext:
			_ = h.withErrorHandling(h.nextHandler())(ctx, chatID)
		case quizRetry:
			_ = h.withErrorHandling(h.retryHandler())(ctx, chatID)
		}
	case actionLang:
		_ = h.withErrorHandling(h.langHandler(data.param(0)))(ctx, chatID)
	default:
		h.logger.Debug("unknown callback", zap.String("data", cb.Data))
	}
}
