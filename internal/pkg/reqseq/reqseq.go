// Package reqseq issues per key request tokens so a response that arrives
// after a newer one for the same key can be discarded.
package reqseq

import "sync"

type Sequencer struct {
	mu       sync.Mutex
	issued   map[string]uint64
	accepted map[string]uint64
}

func New() *Sequencer {
	return &Sequencer{
		issued:   make(map[string]uint64),
		accepted: make(map[string]uint64),
	}
}

// Next returns a token strictly greater than every token issued for key.
func (s *Sequencer) Next(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.issued[key]++
	return s.issued[key]
}

// Accept records token as applied for key when it is newer than the last
// accepted token. Stale tokens return false and change nothing.
func (s *Sequencer) Accept(key string, token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token <= s.accepted[key] {
		return false
	}
	s.accepted[key] = token
	return true
}

func (s *Sequencer) Latest(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.accepted[key]
}

func (s *Sequencer) Forget(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.issued, key)
	delete(s.accepted, key)
}
