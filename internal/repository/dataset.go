package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/etymo-roots/internal/domain/entities"
)

var (
	ErrDatasetNotFound = errors.New("dataset not found")
	ErrInvalidLocation = errors.New("invalid dataset location")
)

// DatasetRepository loads roots datasets by name and keeps them in memory.
// A location is either an http(s) URL or a same-origin path resolved
// against the static directory.
type DatasetRepository struct {
	sources   map[string]string // dataset name -> URL or same-origin path
	staticDir string            // root directory for same-origin paths
	client    *http.Client
	logger    *zap.Logger

	mu    sync.RWMutex
	cache map[string][]entities.RootEntry
}

// NewDatasetRepository creates a repository over the configured sources.
func NewDatasetRepository(
	sources map[string]string,
	staticDir string,
	timeout time.Duration,
	logger *zap.Logger,
) *DatasetRepository {
	return &DatasetRepository{
		sources:   sources,
		staticDir: staticDir,
		client:    &http.Client{Timeout: timeout},
		logger:    logger,
		cache:     make(map[string][]entities.RootEntry),
	}
}

// Names returns the configured dataset names in sorted order.
func (r *DatasetRepository) Names() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is a configured dataset.
func (r *DatasetRepository) Has(name string) bool {
	_, ok := r.sources[name]
	return ok
}

// Load returns the dataset called name, fetching it on first use.
// The returned slice is shared and must not be modified.
func (r *DatasetRepository) Load(ctx context.Context, name string) ([]entities.RootEntry, error) {
	location, ok := r.sources[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, name)
	}

	r.mu.RLock()
	entries, cached := r.cache[name]
	r.mu.RUnlock()
	if cached {
		return entries, nil
	}

	entries, err := r.fetch(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", name, err)
	}

	r.mu.Lock()
	r.cache[name] = entries
	r.mu.Unlock()

	r.logger.Info("dataset loaded",
		zap.String("dataset", name),
		zap.String("location", location),
		zap.Int("entries", len(entries)),
	)

	return entries, nil
}

// Refresh refetches every dataset that has been loaded so far.
// A dataset that fails to refresh keeps its previous contents.
// Sessions that already hold a dataset are unaffected.
func (r *DatasetRepository) Refresh(ctx context.Context) error {
	r.mu.RLock()
	names := make([]string, 0, len(r.cache))
	for name := range r.cache {
		names = append(names, name)
	}
	r.mu.RUnlock()

	var errs []error
	for _, name := range names {
		entries, err := r.fetch(ctx, r.sources[name])
		if err != nil {
			r.logger.Warn("dataset refresh failed, keeping previous data",
				zap.String("dataset", name),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("refresh %s: %w", name, err))
			continue
		}

		r.mu.Lock()
		r.cache[name] = entries
		r.mu.Unlock()
	}

	r.logger.Info("datasets refreshed",
		zap.Int("total", len(names)),
		zap.Int("failed", len(errs)),
	)

	return errors.Join(errs...)
}

func (r *DatasetRepository) fetch(ctx context.Context, location string) ([]entities.RootEntry, error) {
	if isRemote(location) {
		return r.fetchURL(ctx, location)
	}
	return r.readFile(location)
}

func isRemote(location string) bool {
	u, err := url.Parse(location)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

func (r *DatasetRepository) fetchURL(ctx context.Context, location string) ([]entities.RootEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", location, resp.Status)
	}

	var entries []entities.RootEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", location, err)
	}

	return entries, nil
}

func (r *DatasetRepository) readFile(location string) ([]entities.RootEntry, error) {
	path, err := r.resolve(location)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var entries []entities.RootEntry
	if err = json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal roots JSON: %w", err)
	}

	return entries, nil
}

// resolve maps a same-origin path onto the static directory.
func (r *DatasetRepository) resolve(location string) (string, error) {
	rel := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(location, "/")))
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", fmt.Errorf("%w: %s", ErrInvalidLocation, location)
	}
	return filepath.Join(r.staticDir, rel), nil
}
