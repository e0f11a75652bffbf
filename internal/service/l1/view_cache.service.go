package l1_service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"picktracker/internal/db/models/postgres/public/model"
	"picktracker/internal/domain"
	"picktracker/internal/logger"
	"picktracker/internal/repository"

	"github.com/vmihailenco/msgpack/v5"
)

// ViewCacheBackend is one place views can be kept. Get returns an error
// wrapping domain.ErrCacheMiss when the key is absent.
type ViewCacheBackend interface {
	Name() string
	Get(ctx context.Context, key domain.ViewKey) (*domain.ViewResult, error)
	Put(ctx context.Context, result domain.ViewResult) error
	Invalidate(ctx context.Context, key *domain.ViewKey) error
}

type CachedView struct {
	Result domain.ViewResult
	Source string
	Fresh  bool
}

type ViewCacheService interface {
	Get(ctx context.Context, key domain.ViewKey) (*CachedView, error)
	Put(ctx context.Context, result domain.ViewResult) error
	Invalidate(ctx context.Context, key *domain.ViewKey) error
	Status(ctx context.Context) (*domain.CacheStatus, error)
	MaxAge() time.Duration
}

type viewCacheServiceHandler struct {
	Backends []ViewCacheBackend
	maxAge   time.Duration
	now      func() time.Time
}

// NewViewCacheService reads backends in order, so the primary store
// goes first
func NewViewCacheService(maxAge time.Duration, backends ...ViewCacheBackend) ViewCacheService {
	return viewCacheServiceHandler{
		Backends: backends,
		maxAge:   maxAge,
		now:      time.Now,
	}
}

func (h viewCacheServiceHandler) MaxAge() time.Duration {
	return h.maxAge
}

// Get prefers the first fresh copy. When every copy is stale the newest
// one is returned, marked stale.
func (h viewCacheServiceHandler) Get(ctx context.Context, key domain.ViewKey) (*CachedView, error) {
	log := logger.FromContext(ctx)
	now := h.now()

	var newest *CachedView
	for _, backend := range h.Backends {
		result, err := backend.Get(ctx, key)
		if errors.Is(err, domain.ErrCacheMiss) {
			continue
		}
		if err != nil {
			log.Warnf("failed to read %s from %s view cache: %v", key.String(), backend.Name(), err)
			continue
		}

		candidate := &CachedView{
			Result: *result,
			Source: backend.Name(),
			Fresh:  result.IsFresh(h.maxAge, now),
		}
		if candidate.Fresh {
			return candidate, nil
		}
		if newest == nil || candidate.Result.CachedAt.After(newest.Result.CachedAt) {
			newest = candidate
		}
	}

	if newest == nil {
		return nil, fmt.Errorf("no cached view %s: %w", key.String(), domain.ErrCacheMiss)
	}
	return newest, nil
}

// Put writes every backend. It only fails when no backend took the write.
func (h viewCacheServiceHandler) Put(ctx context.Context, result domain.ViewResult) error {
	log := logger.FromContext(ctx)

	var errs []error
	for _, backend := range h.Backends {
		if err := backend.Put(ctx, result); err != nil {
			log.Warnf("failed to write %s to %s view cache: %v", result.Key.String(), backend.Name(), err)
			errs = append(errs, fmt.Errorf("%s: %w", backend.Name(), err))
		}
	}
	if len(h.Backends) > 0 && len(errs) == len(h.Backends) {
		return fmt.Errorf("failed to cache view %s: %w", result.Key.String(), errors.Join(errs...))
	}
	return nil
}

// Invalidate clears the key (or everything when key is nil) in every
// backend. Any backend left holding the entry is reported.
func (h viewCacheServiceHandler) Invalidate(ctx context.Context, key *domain.ViewKey) error {
	var errs []error
	for _, backend := range h.Backends {
		if err := backend.Invalidate(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", backend.Name(), err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("failed to invalidate view cache: %w", errors.Join(errs...))
	}
	return nil
}

func (h viewCacheServiceHandler) Status(ctx context.Context) (*domain.CacheStatus, error) {
	now := h.now()
	out := &domain.CacheStatus{
		Entries:  []domain.CacheEntryStatus{},
		AllFresh: true,
	}

	for _, key := range domain.AllViewKeys() {
		entry := domain.CacheEntryStatus{Key: key}
		cached, err := h.Get(ctx, key)
		if err != nil && !errors.Is(err, domain.ErrCacheMiss) {
			return nil, err
		}
		if cached != nil {
			cachedAt := cached.Result.CachedAt
			ageDays := cached.Result.AgeDays(now)
			source := cached.Source
			entry.Cached = true
			entry.CachedAt = &cachedAt
			entry.AgeDays = &ageDays
			entry.IsFresh = cached.Fresh
			entry.Source = &source

			if out.OldestCacheDays == nil || ageDays > *out.OldestCacheDays {
				out.OldestCacheDays = &ageDays
			}
		}
		if !entry.IsFresh {
			out.AllFresh = false
		}
		out.Entries = append(out.Entries, entry)
	}

	return out, nil
}

type postgresViewCacheBackend struct {
	ViewCacheRepository repository.ViewCacheRepository
}

func NewPostgresViewCacheBackend(viewCacheRepository repository.ViewCacheRepository) ViewCacheBackend {
	return postgresViewCacheBackend{ViewCacheRepository: viewCacheRepository}
}

func (b postgresViewCacheBackend) Name() string {
	return "postgres"
}

func (b postgresViewCacheBackend) Get(ctx context.Context, key domain.ViewKey) (*domain.ViewResult, error) {
	entry, err := b.ViewCacheRepository.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	out := domain.ViewResult{}
	if err := json.Unmarshal([]byte(entry.Payload), &out); err != nil {
		return nil, fmt.Errorf("failed to decode cached view %s: %w", key.String(), err)
	}
	// the row's timestamps are authoritative
	out.Key = key
	out.CachedAt = entry.CachedAt.UTC()
	out.ExpiresAt = entry.ExpiresAt
	return &out, nil
}

func (b postgresViewCacheBackend) Put(ctx context.Context, result domain.ViewResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode view %s: %w", result.Key.String(), err)
	}
	return b.ViewCacheRepository.Upsert(ctx, model.ViewCache{
		FilterCategory: string(result.Key.Filter),
		Method:         string(result.Key.Method),
		Payload:        string(payload),
		CachedAt:       result.CachedAt,
		ExpiresAt:      result.ExpiresAt,
	})
}

func (b postgresViewCacheBackend) Invalidate(ctx context.Context, key *domain.ViewKey) error {
	return b.ViewCacheRepository.Delete(ctx, key)
}

const viewFileExt = ".msgpack"

// fileViewCacheBackend keeps one msgpack file per view under Dir
type fileViewCacheBackend struct {
	Dir string
}

func NewFileViewCacheBackend(dir string) ViewCacheBackend {
	return fileViewCacheBackend{Dir: dir}
}

func (b fileViewCacheBackend) Name() string {
	return "file"
}

func (b fileViewCacheBackend) path(key domain.ViewKey) string {
	return filepath.Join(b.Dir, key.String()+viewFileExt)
}

func (b fileViewCacheBackend) Get(ctx context.Context, key domain.ViewKey) (*domain.ViewResult, error) {
	f, err := os.Open(b.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("no cached view file for %s: %w", key.String(), domain.ErrCacheMiss)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open cached view %s: %w", key.String(), err)
	}
	defer f.Close()

	dec := msgpack.NewDecoder(f)
	dec.SetCustomStructTag("json")
	out := domain.ViewResult{}
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode cached view %s: %w", key.String(), err)
	}

	out.CachedAt = out.CachedAt.UTC()
	if out.ExpiresAt != nil {
		expiresAt := out.ExpiresAt.UTC()
		out.ExpiresAt = &expiresAt
	}
	return &out, nil
}

// Put writes to a temp file and renames it so readers never see a
// partial view
func (b fileViewCacheBackend) Put(ctx context.Context, result domain.ViewResult) error {
	if err := os.MkdirAll(b.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create view cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(b.Dir, ".view-*")
	if err != nil {
		return fmt.Errorf("failed to create temp view file: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := msgpack.NewEncoder(tmp)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(result); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode view %s: %w", result.Key.String(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write view %s: %w", result.Key.String(), err)
	}

	if err := os.Rename(tmp.Name(), b.path(result.Key)); err != nil {
		return fmt.Errorf("failed to move view %s into place: %w", result.Key.String(), err)
	}
	return nil
}

func (b fileViewCacheBackend) Invalidate(ctx context.Context, key *domain.ViewKey) error {
	if key != nil {
		err := os.Remove(b.path(*key))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove cached view %s: %w", key.String(), err)
		}
		return nil
	}

	entries, err := os.ReadDir(b.Dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to list view cache dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), viewFileExt) {
			continue
		}
		if err := os.Remove(filepath.Join(b.Dir, e.Name())); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove cached view %s: %w", e.Name(), err)
		}
	}
	return nil
}
