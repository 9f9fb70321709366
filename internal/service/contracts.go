package service

import (
	"context"

	"github.com/aliskhannn/etymo-roots/internal/domain/entities"
)

// DatasetLoader loads a roots dataset by name.
type DatasetLoader interface {
	Load(ctx context.Context, name string) ([]entities.RootEntry, error)
}

// DatasetRefresher refetches every dataset loaded so far.
type DatasetRefresher interface {
	Refresh(ctx context.Context) error
}

// SessionSweeper evicts sessions idle for too long and reports how many were removed.
type SessionSweeper interface {
	Sweep() int
}
