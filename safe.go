package fixedbuf

import (
	"sync"
)

// SafeBuffer is a mutex-protected wrapper around Buffer for concurrent access.
// It hands out no pointers into the region: in-place writes go through
// Update, which holds the lock for the duration of the callback.
type SafeBuffer[T any] struct {
	mu sync.Mutex
	b  *Buffer[T]
}

// NewSafe creates a goroutine-safe buffer of the given capacity.
// It panics under the same conditions as New.
func NewSafe[T any](capacity int, opts ...Option) *SafeBuffer[T] {
	return &SafeBuffer[T]{b: New[T](capacity, opts...)}
}

// Push thread-safely appends v. It returns ErrBufferFull when no slot is free.
func (s *SafeBuffer[T]) Push(v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Push(v)
}

// Get thread-safely returns the element at index i, panicking with an
// *IndexError if i is out of range.
func (s *SafeBuffer[T]) Get(i int) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Get(i)
}

// Update calls fn with a pointer to slot i while holding the lock.
// fn must not retain the pointer or call back into s.
func (s *SafeBuffer[T]) Update(i int, fn func(*T)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.b.GetMut(i))
}

// Len thread-safely returns the number of initialized slots.
func (s *SafeBuffer[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Len()
}

// Cap thread-safely returns the capacity.
func (s *SafeBuffer[T]) Cap() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Cap()
}

// Full thread-safely reports whether the next Push would fail.
func (s *SafeBuffer[T]) Full() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Full()
}

// Release thread-safely releases the underlying buffer.
func (s *SafeBuffer[T]) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.b.Release()
}

// Metrics thread-safely returns a snapshot of buffer statistics.
func (s *SafeBuffer[T]) Metrics() BufferMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Metrics()
}
