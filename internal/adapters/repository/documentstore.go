package repository

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/okian/coachlens/internal/domain/model"
	"github.com/okian/coachlens/pkg/logger"
	"github.com/okian/coachlens/pkg/metrics"
)

// documentExt is the suffix of loadable files, named <dataset>__<view>.json.
const documentExt = ".json"

// Entry is one loaded document.
type Entry struct {
	Key      model.Key
	Document *model.Document
	Source   string
	LoadedAt time.Time
}

// DocumentStore is an in-memory Store. Documents are immutable once stored;
// Put replaces the whole entry.
type DocumentStore struct {
	mu      sync.RWMutex
	entries map[model.Key]Entry
	now     func() time.Time
	logger  logger.Logger
}

var _ Store = (*DocumentStore)(nil)

// NewDocumentStore creates an empty store.
func NewDocumentStore(opts ...Option) *DocumentStore {
	s := &DocumentStore{
		entries: make(map[model.Key]Entry),
		now:     time.Now,
		logger:  logger.Get().Named("repository"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put stores doc under key, replacing any previous entry.
func (s *DocumentStore) Put(_ context.Context, key model.Key, doc *model.Document, source string) Entry {
	e := Entry{Key: key, Document: doc, Source: source, LoadedAt: s.now()}
	s.mu.Lock()
	s.entries[key] = e
	n := len(s.entries)
	s.mu.Unlock()
	metrics.SetDocumentsLoaded(n)
	return e
}

// Get returns the document stored under key.
func (s *DocumentStore) Get(_ context.Context, key model.Key) (Entry, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return e, nil
}

// Keys returns every loaded key sorted by dataset then view.
func (s *DocumentStore) Keys(_ context.Context) []model.Key {
	s.mu.RLock()
	keys := make([]model.Key, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	s.mu.RUnlock()
	slices.SortFunc(keys, func(a, b model.Key) int {
		return cmp.Or(cmp.Compare(a.Dataset, b.Dataset), cmp.Compare(a.View, b.View))
	})
	return keys
}

// Count returns the number of loaded documents.
func (s *DocumentStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// LoadDir loads every document file directly inside dir.
func (s *DocumentStore) LoadDir(ctx context.Context, dir string) (int, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrRead, err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("%w: %s is not a directory", ErrRead, dir)
	}
	return s.LoadFS(ctx, os.DirFS(dir))
}

// LoadFS loads every *.json file at the root of fsys. Files whose name is not
// a valid key are skipped with a warning. Files that cannot be read or
// decoded are reported in the joined error; the rest are still loaded.
func (s *DocumentStore) LoadFS(ctx context.Context, fsys fs.FS) (int, error) {
	names, err := fs.Glob(fsys, "*"+documentExt)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrRead, err)
	}
	slices.Sort(names)

	var (
		loaded int
		errs   []error
	)
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return loaded, err
		}
		key, err := model.ParseKey(strings.TrimSuffix(path.Base(name), documentExt))
		if err != nil {
			s.logger.Warn(ctx, "skipping file with unexpected name",
				logger.String("file", name),
				logger.String("want", "<dataset>__<view>"+documentExt),
			)
			continue
		}
		if err := s.loadFile(ctx, fsys, name, key); err != nil {
			metrics.RecordDocumentLoadError()
			s.logger.Error(ctx, "failed to load document", logger.String("file", name), logger.Error(err))
			errs = append(errs, err)
			continue
		}
		loaded++
	}
	return loaded, errors.Join(errs...)
}

func (s *DocumentStore) loadFile(ctx context.Context, fsys fs.FS, name string, key model.Key) error {
	start := time.Now()
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRead, name, err)
	}
	doc, err := model.Decode(data)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecode, name, err)
	}
	s.Put(ctx, key, doc, name)

	took := time.Since(start)
	metrics.RecordDocumentLoad(float64(took.Microseconds()) / 1000)
	s.logger.Info(ctx, "document loaded",
		logger.String("key", key.String()),
		logger.Int("features", doc.Effects.Len()),
		logger.Int("consultants", doc.Consultants.Len()),
		logger.Duration("took", took),
	)
	return nil
}
