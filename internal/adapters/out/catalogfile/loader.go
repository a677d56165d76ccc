package catalogfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"

	"courierbot/internal/core/domain/model/catalog"
	"courierbot/internal/core/ports"
)

var _ ports.CatalogProvider = &Loader{}

// Loader serves the menu from a drinks file and re-reads it when the file's
// modification time or size changes. A broken edit keeps the last good menu.
type Loader struct {
	path   string
	logger *slog.Logger

	mu      sync.Mutex
	modTime time.Time
	size    int64
	current *catalog.Catalog
}

func NewLoader(path string, logger *slog.Logger) *Loader {
	return &Loader{
		path:   path,
		logger: logger.With("component", "catalog", "path", path),
	}
}

func (l *Loader) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	info, err := os.Stat(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		if l.current == nil {
			l.logger.WarnContext(ctx, "Drinks file not found, serving empty menu")
			l.current = catalog.Empty()
		}
		return l.current, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat drinks file: %w", err)
	}

	if l.current != nil && info.ModTime().Equal(l.modTime) && info.Size() == l.size {
		return l.current, nil
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read drinks file: %w", err)
	}
	parsed, err := Parse(data)
	if err != nil {
		if l.current != nil {
			l.logger.ErrorContext(ctx, "Failed to reload drinks file, keeping previous menu", "error", err)
			l.modTime, l.size = info.ModTime(), info.Size()
			return l.current, nil
		}
		return nil, err
	}

	l.current = parsed
	l.modTime, l.size = info.ModTime(), info.Size()
	l.logger.InfoContext(ctx, "Drinks menu loaded", "drinks", parsed.Len())
	return l.current, nil
}
