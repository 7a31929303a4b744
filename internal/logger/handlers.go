package logger

import (
	"errors"
	"io"
	"sync"
)

// handlerSet fans every log event out to the attached writers.
// zerolog issues exactly one Write per event, so events are never interleaved
// within a single writer.
type handlerSet struct {
	mu      sync.RWMutex
	writers []io.Writer
}

func (s *handlerSet) Write(p []byte) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var errs error
	for _, w := range s.writers {
		if _, err := w.Write(p); err != nil {
			errs = errors.Join(errs, err)
		}
	}

	return len(p), errs
}

func (s *handlerSet) add(w io.Writer) {
	s.mu.Lock()
	s.writers = append(s.writers, w)
	s.mu.Unlock()
}

func (s *handlerSet) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.writers)
}

func (s *handlerSet) reset() {
	s.mu.Lock()
	s.writers = nil
	s.mu.Unlock()
}
