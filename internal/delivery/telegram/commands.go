package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/etymo-roots/internal/domain/entities"
	"github.com/aliskhannn/etymo-roots/internal/locale"
	"github.com/aliskhannn/etymo-roots/internal/service"
)

const msgInternalError = "⚠️ Something went wrong. Please try again later."

// quizHandler starts a fresh quiz over the named dataset, or the chat's
// current one when args is empty.
func (h *Handler) quizHandler(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		st := h.state(chatID)
		dataset := strings.TrimSpace(args)
		if dataset == "" {
			dataset = st.dataset
		}

		if !h.datasets.Has(dataset) {
			h.sendUnknownDataset(chatID, st.lang, dataset)
			return nil
		}

		key := quizKey(chatID, dataset)
		h.quizzes.Delete(key)
		quiz, _ := h.quizzes.GetOrCreate(key, func() *service.Quiz {
			q := h.factory.New(dataset, st.lang)
			q.OnAdvance(func(v service.QuizView) {
				h.send(quizMessage(chatID, v))
			})
			return q
		})
		h.setDataset(chatID, dataset)

		loadCtx, cancel := context.WithTimeout(ctx, h.opts.LoadTimeout)
		defer cancel()

		if err := quiz.Load(loadCtx); err != nil {
			h.logger.Warn("quiz load failed",
				zap.Int64("chat_id", chatID),
				zap.String("dataset", dataset),
				zap.Error(err),
			)
		}

		h.send(quizMessage(chatID, quiz.View()))
		return nil
	}
}

func (h *Handler) nextHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		quiz, ok := h.currentQuiz(chatID)
		if !ok {
			h.sendNoQuiz(chatID)
			return nil
		}

		quiz.Next()
		h.send(quizMessage(chatID, quiz.View()))
		return nil
	}
}

func (h *Handler) retryHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		quiz, ok := h.currentQuiz(chatID)
		if !ok {
			h.sendNoQuiz(chatID)
			return nil
		}

		loadCtx, cancel := context.WithTimeout(ctx, h.opts.LoadTimeout)
		defer cancel()

		if err := quiz.Retry(loadCtx); err != nil {
			h.logger.Warn("quiz retry failed", zap.Int64("chat_id", chatID), zap.Error(err))
		}

		h.send(quizMessage(chatID, quiz.View()))
		return nil
	}
}

func (h *Handler) langHandler(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		lang, err := entities.ParseLang(args)
		if err != nil {
			msg := newHTMLMessage(chatID, esc(locale.For(h.state(chatID).lang).LangUsage))
			msg.ReplyMarkup = buildLangKeyboard()
			h.send(msg)
			return nil
		}

		h.setLang(chatID, lang)
		h.send(newHTMLMessage(chatID, esc(locale.For(lang).LangChanged)))
		return nil
	}
}

// tableHandler sends a dataset table. Arguments are an optional dataset
// name followed by an optional layout name.
func (h *Handler) tableHandler(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		st := h.state(chatID)
		fields := strings.Fields(args)

		dataset, layout := st.dataset, ""
		if len(fields) > 0 {
			dataset = fields[0]
		}
		if len(fields) > 1 {
			layout = fields[1]
		}

		if !h.datasets.Has(dataset) {
			h.sendUnknownDataset(chatID, st.lang, dataset)
			return nil
		}

		view, err := h.tables.Build(ctx, dataset, st.lang, layout)
		if err != nil {
			if errors.Is(err, service.ErrUnknownLayout) {
				text := fmt.Sprintf("%s\n%s", esc(err.Error()), esc(strings.Join(h.tables.Layouts(), ", ")))
				h.send(newHTMLMessage(chatID, text))
				return nil
			}
			return fmt.Errorf("build table: %w", err)
		}

		for _, chunk := range formatTable(view, locale.For(st.lang).TableTitle) {
			h.send(newHTMLMessage(chatID, chunk))
		}
		return nil
	}
}

// answerHandler checks plain text against the running quiz.
func (h *Handler) answerHandler(answer string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		quiz, ok := h.currentQuiz(chatID)
		if !ok {
			h.sendNoQuiz(chatID)
			return nil
		}

		fb := quiz.Submit(answer)
		if fb.IsEmpty() {
			h.send(quizMessage(chatID, quiz.View()))
			return nil
		}

		h.send(newHTMLMessage(chatID, formatFeedback(fb)))
		return nil
	}
}

func (h *Handler) sendNoQuiz(chatID int64) {
	h.send(newHTMLMessage(chatID, esc(locale.For(h.state(chatID).lang).NoQuiz)))
}

func (h *Handler) sendUnknownDataset(chatID int64, lang entities.Lang, dataset string) {
	text := fmt.Sprintf("%s <code>%s</code>\n%s",
		esc(locale.For(lang).NotFound),
		esc(dataset),
		esc(strings.Join(h.datasets.Names(), ", ")),
	)
	h.send(newHTMLMessage(chatID, text))
}
