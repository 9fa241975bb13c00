package output

import (
	"errors"
	"sync"
)

// ErrClosed is returned when writing to a sink that has been closed.
var ErrClosed = errors.New("output: sink closed")

// MemorySink keeps everything written to it. It is safe for concurrent use.
type MemorySink struct {
	lock sync.Mutex

	histories []History
	mdfs      []MDF
	tracers   []TracerRecord
	closed    bool
}

// NewMemorySink creates an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// WriteHistory implements Sink.
func (s *MemorySink) WriteHistory(h History) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.closed {
		return ErrClosed
	}

	h.Elements = append([]ElementHistory(nil), h.Elements...)
	s.histories = append(s.histories, h)

	return nil
}

// WriteMDF implements Sink.
func (s *MemorySink) WriteMDF(m MDF) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.closed {
		return ErrClosed
	}

	s.mdfs = append(s.mdfs, m)

	return nil
}

// WriteTracer implements Sink.
func (s *MemorySink) WriteTracer(t TracerRecord) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.closed {
		return ErrClosed
	}

	s.tracers = append(s.tracers, t)

	return nil
}

// Close implements Sink.
func (s *MemorySink) Close() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.closed = true

	return nil
}

// Closed reports whether Close has been called.
func (s *MemorySink) Closed() bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.closed
}

// Histories returns the histories written so far, in order.
func (s *MemorySink) Histories() []History {
	s.lock.Lock()
	defer s.lock.Unlock()

	return append([]History(nil), s.histories...)
}

// ZoneHistories returns the histories of one zone, in order.
func (s *MemorySink) ZoneHistories(zone string) []History {
	s.lock.Lock()
	defer s.lock.Unlock()

	var out []History
	for _, h := range s.histories {
		if h.Zone == zone {
			out = append(out, h)
		}
	}

	return out
}

// MDFs returns the MDFs written so far.
func (s *MemorySink) MDFs() []MDF {
	s.lock.Lock()
	defer s.lock.Unlock()

	return append([]MDF(nil), s.mdfs...)
}

// Tracers returns the tracer records written so far.
func (s *MemorySink) Tracers() []TracerRecord {
	s.lock.Lock()
	defer s.lock.Unlock()

	return append([]TracerRecord(nil), s.tracers...)
}
