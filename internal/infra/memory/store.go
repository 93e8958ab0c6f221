// memory implements the storage contract with an in-process map. It is the
// default backend for development and tests, and the reference semantics the
// Elasticsearch backend is checked against.
package memory

import (
	"context"
	"encoding/binary"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tasklink/tasklink/internal/domain/metadata"
	"github.com/tasklink/tasklink/internal/domain/paging"
	"github.com/tasklink/tasklink/internal/domain/storage"
)

// Options adapts the generic store to one record type: how to read its
// searchable text, its parent relation, and which orderings it supports.
type Options[T storage.Record[T]] struct {
	// TextOf extracts the fields that substring search matches against.
	// Nil means the type is not searchable and Search is ignored.
	TextOf func(record T) []string

	// ParentOf names the record's parent id for scoped listings. Nil means
	// the type is top-level and the parent filter is ignored.
	ParentOf func(record T) uuid.UUID

	// Sorts maps wire sort keys to orderings. Keys not present fall back to
	// DefaultSort rather than erroring.
	Sorts map[string]func(a, b T) bool

	// DefaultSort must be a key of Sorts.
	DefaultSort string
}

// NewStore returns an empty in-memory Store for one record type.
func NewStore[T storage.Record[T]](options Options[T]) *Store[T] {
	return &Store[T]{
		options: options,
		records: make(map[uuid.UUID]*entry[T]),
		nowFunc: func() time.Time { return time.Now().UTC() },
	}
}

// entry pairs a record with its own lock and version counter so that writes
// to different records never contend.
type entry[T storage.Record[T]] struct {
	mu      sync.Mutex
	record  T
	counter uint64
}

type Store[T storage.Record[T]] struct {
	// mu guards the map shape only; per-record state is behind each entry's
	// own lock.
	mu      sync.RWMutex
	records map[uuid.UUID]*entry[T]
	options Options[T]
	nowFunc func() time.Time
}

// For testing
func (s *Store[T]) SetUTCGetter(getter func() time.Time) {
	s.nowFunc = getter
}

func (s *Store[T]) Insert(ctx context.Context, record T) (T, error) {
	now := s.nowFunc()
	id := uuid.New()
	inserted := record.WithID(id).WithMeta(metadata.Metadata{
		CreatedAt:  metadata.CreatedAt(now),
		ModifiedAt: metadata.ModifiedAt(now),
		Version:    encodeVersion(1),
	})
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = &entry[T]{record: inserted, counter: 1}
	return inserted, nil
}

func (s *Store[T]) Get(ctx context.Context, id uuid.UUID) (T, error) {
	var zero T
	s.mu.RLock()
	e, ok := s.records[id]
	s.mu.RUnlock()
	if !ok {
		return zero, storage.NotFound{ID: id}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.record, nil
}

func (s *Store[T]) List(ctx context.Context, query paging.Query, parent *uuid.UUID) (*paging.Result[T], error) {
	query = query.Normalized()

	s.mu.RLock()
	matching := make([]T, 0, len(s.records))
	for _, e := range s.records {
		e.mu.Lock()
		record := e.record
		e.mu.Unlock()
		if parent != nil && s.options.ParentOf != nil && s.options.ParentOf(record) != *parent {
			continue
		}
		if !s.matchesSearch(record, query.Search) {
			continue
		}
		matching = append(matching, record)
	}
	s.mu.RUnlock()

	less, ok := s.options.Sorts[query.Sort]
	if !ok {
		less = s.options.Sorts[s.options.DefaultSort]
	}
	// Ties broken by id so pagination over an unchanged collection is stable
	sort.Slice(matching, func(i, j int) bool {
		a, b := matching[i], matching[j]
		if less(a, b) {
			return true
		}
		if less(b, a) {
			return false
		}
		return a.RecordID().String() < b.RecordID().String()
	})

	total := len(matching)
	from, to := paging.Window(query.Offset(), query.PageSize, total)
	return &paging.Result[T]{
		Items:    matching[from:to],
		Page:     query.Page,
		PageSize: query.PageSize,
		Total:    total,
	}, nil
}

func (s *Store[T]) Swap(ctx context.Context, id uuid.UUID, expected metadata.Version, record T) (T, error) {
	var zero T
	s.mu.RLock()
	e, ok := s.records[id]
	s.mu.RUnlock()
	if !ok {
		return zero, storage.NotFound{ID: id}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.record.RecordMeta().Version.Equal(expected) {
		return zero, storage.VersionConflict{ID: id}
	}
	e.counter++
	meta := e.record.RecordMeta()
	meta.ModifiedAt = metadata.ModifiedAt(s.nowFunc())
	meta.Version = encodeVersion(e.counter)
	e.record = record.WithID(id).WithMeta(meta)
	return e.record, nil
}

func (s *Store[T]) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return storage.NotFound{ID: id}
	}
	delete(s.records, id)
	return nil
}

func (s *Store[T]) matchesSearch(record T, search string) bool {
	trimmed := strings.TrimSpace(search)
	if trimmed == "" || s.options.TextOf == nil {
		return true
	}
	needle := strings.ToLower(trimmed)
	for _, field := range s.options.TextOf(record) {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// encodeVersion renders a per-record counter as the opaque version bytes
// handed out to callers.
func encodeVersion(counter uint64) metadata.Version {
	version := make(metadata.Version, 8)
	binary.BigEndian.PutUint64(version, counter)
	return version
}
