package fixedbuf

import (
	"sync/atomic"
	"unsafe"

	"github.com/pkg/errors"
)

// maxRegionBytes is the largest single region New will request: 1<<48 on
// 64-bit platforms and 1<<31 on 32-bit ones, at most the runtime's own
// ceiling for make.
const maxRegionBytes = 1 << (31 + 17*(^uint(0)>>63))

// regionCounters is shared by every buffer in the process.
var regionCounters struct {
	allocated atomic.Int64
	released  atomic.Int64
	liveBytes atomic.Int64
}

// allocRegion performs the single allocation of a buffer and returns its
// slots and their size in bytes. Slots come back zeroed; Go cannot hand out
// uninitialized memory for a T that may hold pointers, so "uninitialized"
// here means "never exposed".
func allocRegion[T any](n int) ([]T, uintptr, error) {
	if n < 0 {
		return nil, 0, errors.Wrapf(ErrInvalidCapacity, "capacity %d", n)
	}
	var zero T
	size := unsafe.Sizeof(zero)
	if size != 0 && uintptr(n) > maxRegionBytes/size {
		return nil, 0, errors.Wrapf(ErrRegionTooLarge, "%d slots of %d bytes", n, size)
	}

	slots := make([]T, n)
	bytes := uintptr(n) * size
	regionCounters.allocated.Add(1)
	regionCounters.liveBytes.Add(int64(bytes))
	return slots, bytes, nil
}

// recordRelease accounts for one region handed back.
// Callers guarantee it runs once per allocRegion.
func recordRelease(bytes uintptr) {
	regionCounters.released.Add(1)
	regionCounters.liveBytes.Add(-int64(bytes))
}

// slotAt returns a pointer to slots[i] without any bounds check.
func slotAt[T any](slots []T, i int) *T {
	var zero T
	return (*T)(unsafe.Add(unsafe.Pointer(unsafe.SliceData(slots)), uintptr(i)*unsafe.Sizeof(zero)))
}
