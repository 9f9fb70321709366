package web

import (
	"context"

	"github.com/aliskhannn/etymo-roots/internal/domain/entities"
	"github.com/aliskhannn/etymo-roots/internal/service"
)

// DatasetCatalog lists the configured datasets.
type DatasetCatalog interface {
	Names() []string
	Has(name string) bool
}

// QuizStore keeps running quizzes per session.
type QuizStore interface {
	Get(key string) (*service.Quiz, bool)
	GetOrCreate(key string, create func() *service.Quiz) (*service.Quiz, bool)
}

// QuizCreator builds a new quiz in the loading state.
type QuizCreator interface {
	New(dataset string, lang entities.Lang) *service.Quiz
}

// TableBuilder renders a dataset as a table.
type TableBuilder interface {
	Build(ctx context.Context, dataset string, lang entities.Lang, layout string) (entities.TableView, error)
	Layouts() []string
}
