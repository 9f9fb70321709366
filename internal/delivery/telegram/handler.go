package telegram

import (
	"context"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/etymo-roots/internal/domain/entities"
	"github.com/aliskhannn/etymo-roots/internal/locale"
)

const defaultLoadTimeout = 15 * time.Second

// Options configures a Handler.
type Options struct {
	DefaultDataset string
	DefaultLang    entities.Lang
	LoadTimeout    time.Duration
}

type Handler struct {
	bot      Bot
	logger   *zap.Logger
	datasets DatasetCatalog
	quizzes  QuizStorage
	factory  QuizFactory
	tables   TableService
	opts     Options

	mu    sync.Mutex
	chats map[int64]chatState
}

func NewHandler(
	bot Bot,
	logger *zap.Logger,
	datasets DatasetCatalog,
	quizzes QuizStorage,
	factory QuizFactory,
	tables TableService,
	opts Options,
) *Handler {
	if opts.DefaultLang == "" {
		opts.DefaultLang = entities.LangJA
	}
	if opts.LoadTimeout <= 0 {
		opts.LoadTimeout = defaultLoadTimeout
	}

	return &Handler{
		bot:      bot,
		logger:   logger,
		datasets: datasets,
		quizzes:  quizzes,
		factory:  factory,
		tables:   tables,
		opts:     opts,
		chats:    make(map[int64]chatState),
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.Chat == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID
	languageCode := ""
	if update.Message.From != nil {
		languageCode = update.Message.From.LanguageCode
	}
	st := h.chat(chatID, languageCode)
	text := locale.For(st.lang)

	if update.Message.IsCommand() {
		args := update.Message.CommandArguments()

		switch update.Message.Command() {
		case "start":
			msg := newHTMLMessage(chatID, esc(text.Welcome)+"\n\n"+helpText(text))
			msg.ReplyMarkup = buildLangKeyboard()
			h.send(msg)

		case "help":
			h.send(newHTMLMessage(chatID, helpText(text)))

		case "quiz":
			_ = h.withErrorHandling(h.quizHandler(args))(ctx, chatID)

		case "next":
			_ = h.withErrorHandling(h.nextHandler())(ctx, chatID)

		case "retry":
			_ = h.withErrorHandling(h.retryHandler())(ctx, chatID)

		case "lang":
			_ = h.withErrorHandling(h.langHandler(args))(ctx, chatID)

		case "table":
			_ = h.withErrorHandling(h.tableHandler(args))(ctx, chatID)

		default:
			h.send(newHTMLMessage(chatID, helpText(text)))
		}

		return
	}

	_ = h.withErrorHandling(h.answerHandler(update.Message.Text))(ctx, chatID)
}

func (h *Handler) sendError(chatID int64, err string) {
	msg := newHTMLMessage(chatID, err)
	h.send(msg)
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}
