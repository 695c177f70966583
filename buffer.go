package fixedbuf

import (
	"runtime"

	"go.uber.org/zap"
)

// Releaser is implemented by element types that own resources of their own.
// Release is called once on every initialized slot by Buffer.Release, on the
// caller's goroutine.
type Releaser interface {
	Release()
}

// Buffer is a fixed-capacity sequential container backed by a single region
// reserved in New. Not goroutine-safe; use SafeBuffer for concurrent access.
//
// Pointers returned by GetMut and UncheckedGetMut alias the buffer's memory.
// They are valid until Release, and callers must not keep one while the same
// slot is read or written through another path.
type Buffer[T any] struct {
	st      *state[T]
	reclaim runtime.Cleanup
}

// state is everything a Buffer owns.
type state[T any] struct {
	slots   []T
	length  int
	bytes   uintptr
	name    string
	log     *zap.Logger
	cleanup func(*T)
}

// reclaimInfo is all the GC hook gets. It must not reach the Buffer, its
// slots or the element cleanup: pointers from GetMut can outlive the Buffer.
type reclaimInfo struct {
	bytes uintptr
	name  string
	log   *zap.Logger
}

// New reserves a region for exactly capacity elements of T.
// A zero capacity yields a valid buffer that is always full.
// New panics on a negative capacity or a region too large to allocate.
func New[T any](capacity int, opts ...Option) *Buffer[T] {
	cfg := newConfig(opts)
	cleanup := cleanupFor[T](cfg)

	slots, bytes, err := allocRegion[T](capacity)
	if err != nil {
		cfg.logger.Error("region allocation failed",
			zap.String("name", cfg.name),
			zap.Int("capacity", capacity),
			zap.Error(err))
		panic(err)
	}

	st := &state[T]{
		slots:   slots,
		bytes:   bytes,
		name:    cfg.name,
		log:     cfg.logger,
		cleanup: cleanup,
	}
	b := &Buffer[T]{st: st}
	b.reclaim = runtime.AddCleanup(b, reclaimRegion, reclaimInfo{
		bytes: bytes,
		name:  cfg.name,
		log:   cfg.logger,
	})

	st.log.Debug("region allocated",
		zap.String("name", st.name),
		zap.Int("capacity", capacity),
		zap.Uintptr("bytes", bytes))
	return b
}

// Push appends v in the next free slot.
// It returns ErrBufferFull, leaving the buffer untouched, when no slot is free.
func (b *Buffer[T]) Push(v T) error {
	st := b.live()
	if st.length == len(st.slots) {
		if ce := st.log.Check(zap.DebugLevel, "push rejected"); ce != nil {
			ce.Write(zap.String("name", st.name), zap.Int("capacity", len(st.slots)))
		}
		return ErrBufferFull
	}
	st.slots[st.length] = v
	st.length++
	return nil
}

// Get returns the element at index i.
// It panics with an *IndexError if i is outside [0, Len()).
func (b *Buffer[T]) Get(i int) T {
	st := b.live()
	st.checkIndex(i)
	return st.slots[i]
}

// GetMut returns a pointer to the element at index i so it can be
// overwritten in place. Len is unaffected.
// It panics with an *IndexError if i is outside [0, Len()).
func (b *Buffer[T]) GetMut(i int) *T {
	st := b.live()
	st.checkIndex(i)
	return &st.slots[i]
}

// UncheckedGetMut is GetMut without the bounds check.
// The caller must guarantee 0 <= i < Len(); anything else is undefined.
func (b *Buffer[T]) UncheckedGetMut(i int) *T {
	return slotAt(b.live().slots, i)
}

// Len returns the number of initialized slots. It is 0 after Release.
func (b *Buffer[T]) Len() int {
	if b.st == nil {
		return 0
	}
	return b.st.length
}

// Cap returns the number of slots reserved by New. It is 0 after Release.
func (b *Buffer[T]) Cap() int {
	if b.st == nil {
		return 0
	}
	return len(b.st.slots)
}

// Full reports whether the next Push would fail.
func (b *Buffer[T]) Full() bool {
	return b.Len() == b.Cap()
}

// Release runs element cleanup over the initialized slots and hands the
// region back. Calling it again is a no-op; any other use afterwards panics.
func (b *Buffer[T]) Release() {
	st := b.st
	if st == nil {
		return
	}
	b.st = nil
	b.reclaim.Stop()

	n := st.length
	st.release()
	st.log.Debug("region released",
		zap.String("name", st.name),
		zap.Int("len", n),
		zap.Uintptr("bytes", st.bytes))
}

func (b *Buffer[T]) live() *state[T] {
	if b.st == nil {
		panic(errUseAfterRelease)
	}
	return b.st
}

func (st *state[T]) checkIndex(i int) {
	if uint(i) >= uint(st.length) {
		panic(&IndexError{Index: i, Length: st.length})
	}
}

// release destroys the initialized elements, then the region. The region is
// accounted for even if an element's cleanup panics.
func (st *state[T]) release() {
	defer func() {
		clear(st.slots)
		st.slots = nil
		st.length = 0
		recordRelease(st.bytes)
	}()

	for i := 0; i < st.length; i++ {
		p := &st.slots[i]
		if r, ok := any(p).(Releaser); ok {
			r.Release()
		}
		if st.cleanup != nil {
			st.cleanup(p)
		}
	}
}

// reclaimRegion runs on the runtime's cleanup goroutine when a Buffer becomes
// unreachable without Release. It only accounts for the region: slots stay
// intact for any pointer still held and element cleanup never runs.
func reclaimRegion(info reclaimInfo) {
	recordRelease(info.bytes)
	info.log.Warn("buffer reclaimed without Release",
		zap.String("name", info.name),
		zap.Uintptr("bytes", info.bytes))
}
