package reftable

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/notjagan/pokeguide/pkg/model"
)

// Store loads the reference tables once per process. Concurrent callers of
// Load share a single in-flight load; a failed load is forgotten so the
// next call starts over.
type Store struct {
	source Source
	logger *slog.Logger

	group singleflight.Group

	mu     sync.RWMutex
	tables *Tables
}

func NewStore(source Source, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{source: source, logger: logger}
}

// Get returns the loaded tables without triggering a load.
func (s *Store) Get() (*Tables, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tables, s.tables != nil
}

func (s *Store) Load(ctx context.Context) (*Tables, error) {
	if t, ok := s.Get(); ok {
		return t, nil
	}

	ch := s.group.DoChan("load", func() (any, error) {
		if t, ok := s.Get(); ok {
			return t, nil
		}

		start := time.Now()
		t, err := load(s.source)
		if err != nil {
			s.logger.Error("reference tables failed to load", "error", err)
			return nil, fmt.Errorf("%w: %w", model.ErrReferenceLoad, err)
		}

		s.mu.Lock()
		s.tables = t
		s.mu.Unlock()

		s.logger.Info("reference tables loaded", "duration", time.Since(start))
		return t, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Tables), nil
	}
}
