package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/etymo-roots/internal/domain/entities"
	"github.com/aliskhannn/etymo-roots/internal/service"
)

// Bot is the part of *tgbotapi.BotAPI the handler uses.
type Bot interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type DatasetCatalog interface {
	Names() []string
	Has(name string) bool
}

type QuizStorage interface {
	Get(key string) (*service.Quiz, bool)
	GetOrCreate(key string, create func() *service.Quiz) (*service.Quiz, bool)
	Delete(key string)
}

type QuizFactory interface {
	New(dataset string, lang entities.Lang) *service.Quiz
}

type TableService interface {
	Build(ctx context.Context, dataset string, lang entities.Lang, layout string) (entities.TableView, error)
	Layouts() []string
}
