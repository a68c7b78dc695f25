package search

import "sync/atomic"

// Sequence suppresses stale results: each request takes a ticket, and only
// the holder of the newest ticket may publish.
type Sequence struct {
	latest atomic.Uint64
}

func (s *Sequence) Next() uint64 {
	return s.latest.Add(1)
}

func (s *Sequence) Current(ticket uint64) bool {
	return s.latest.Load() == ticket
}
