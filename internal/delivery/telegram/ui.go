package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/etymo-roots/internal/domain/entities"
	"github.com/aliskhannn/etymo-roots/internal/locale"
)

// buildQuestionKeyboard builds the keyboard shown under a question.
func buildQuestionKeyboard(text locale.Messages) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➡️ "+text.Next, buildQuizNextCallback()),
		),
	)
}

// buildRetryKeyboard builds the keyboard shown after a failed load.
func buildRetryKeyboard(text locale.Messages) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 "+text.Retry, buildQuizRetryCallback()),
		),
	)
}

// buildLangKeyboard builds a row with one button per language.
func buildLangKeyboard() tgbotapi.InlineKeyboardMarkup {
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(entities.Langs))
	for _, lang := range entities.Langs {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(lang.String(), buildLangCallback(lang.String())))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}
