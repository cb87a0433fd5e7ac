package platform

import "sync/atomic"

// Sequence is a monotonic id allocator.
//
// Every allocated id is strictly greater than the previous one. Deleting an
// account or post never returns its id to the sequence, and erasing the
// platform keeps the sequence where it was.
type Sequence struct {
	last atomic.Int64
}

// NewSequence creates a sequence whose first Next() returns 1.
func NewSequence() *Sequence {
	return &Sequence{}
}

// NewSequenceAt creates a sequence that resumes after last.
// Used when restoring a snapshot.
func NewSequenceAt(last int64) *Sequence {
	s := &Sequence{}
	s.last.Store(last)
	return s
}

// Next allocates the next id.
func (s *Sequence) Next() int64 {
	return s.last.Add(1)
}

// Current returns the last allocated id without allocating.
func (s *Sequence) Current() int64 {
	return s.last.Load()
}
