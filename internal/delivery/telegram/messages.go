// messages.go contains message formatting functions for Telegram.

package telegram

import (
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/etymo-roots/internal/domain/entities"
	"github.com/aliskhannn/etymo-roots/internal/locale"
	"github.com/aliskhannn/etymo-roots/internal/service"
)

// maxMessageLen stays below the Telegram limit of 4096 characters.
const maxMessageLen = 4000

func esc(s string) string {
	return html.EscapeString(s)
}

func bold(s string) string {
	return "<b>" + esc(s) + "</b>"
}

// formatQuestion renders the current question of a ready quiz.
func formatQuestion(v service.QuizView) string {
	return fmt.Sprintf(
		"%s\n\n%s %s\n\n<i>%s</i>",
		bold(v.Text.Title),
		esc(v.Text.MeaningLabel),
		bold(v.Meaning),
		esc(v.Text.Placeholder),
	)
}

// formatLoadFailed renders a failed quiz with its error.
func formatLoadFailed(v service.QuizView) string {
	text := esc(v.Text.LoadFailed)
	if v.Err != "" {
		text += "\n<code>" + esc(v.Err) + "</code>"
	}
	return text
}

func formatFeedback(fb entities.Feedback) string {
	return esc(fb.Text)
}

// formatTable renders a table view as a list of messages, one line per row.
func formatTable(view entities.TableView, title string) []string {
	var (
		chunks []string
		sb     strings.Builder
	)

	header := bold(title) + " · " + esc(view.Dataset) + "\n"
	heads := make([]string, 0, len(view.Headers))
	for _, h := range view.Headers {
		heads = append(heads, esc(h.Text))
	}
	header += "<i>" + strings.Join(heads, " | ") + "</i>\n\n"
	sb.WriteString(header)

	for _, row := range view.Rows {
		cells := make([]string, 0, len(row))
		for i, cell := range row {
			if i == 0 {
				cells = append(cells, bold(cell.Text))
				continue
			}
			cells = append(cells, esc(cell.Text))
		}
		line := strings.Join(cells, " | ") + "\n"

		if sb.Len()+len(line) > maxMessageLen {
			chunks = append(chunks, sb.String())
			sb.Reset()
		}
		sb.WriteString(line)
	}

	if sb.Len() > 0 {
		chunks = append(chunks, sb.String())
	}
	return chunks
}

func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}

// quizMessage builds the message for a quiz view in any state.
func quizMessage(chatID int64, v service.QuizView) tgbotapi.MessageConfig {
	switch v.Status {
	case service.QuizFailed:
		msg := newHTMLMessage(chatID, formatLoadFailed(v))
		kb := buildRetryKeyboard(v.Text)
		msg.ReplyMarkup = kb
		return msg
	case service.QuizLoading:
		return newHTMLMessage(chatID, esc(v.Text.Loading))
	}

	msg := newHTMLMessage(chatID, formatQuestion(v))
	kb := buildQuestionKeyboard(v.Text)
	msg.ReplyMarkup = kb
	return msg
}

func helpText(text locale.Messages) string {
	return esc(text.Help)
}
