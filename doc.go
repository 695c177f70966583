// Package fixedbuf implements a fixed-capacity, heap-backed sequential
// container.
//
// # Overview
//
// A Buffer reserves one contiguous region for exactly capacity elements when
// it is created and never grows. Elements are appended with Push until the
// region is full; after that Push reports ErrBufferFull and leaves the buffer
// untouched. There is no removal: Len only ever increases.
//
// # Basic Usage
//
//	buf := fixedbuf.New[Point](100)
//	defer buf.Release() // Hand the region back when done
//
//	if err := buf.Push(Point{X: 1, Y: 2}); errors.Is(err, fixedbuf.ErrBufferFull) {
//		// no slot left
//	}
//
//	p := buf.Get(0)      // copy of slot 0
//	buf.GetMut(0).Y = 10 // overwrite in place
//
// # Failure Modes
//
//   - Push into a full buffer returns ErrBufferFull. It is an ordinary,
//     recoverable condition.
//   - Get or GetMut with an index outside [0, Len()) panics with an
//     *IndexError naming the index and the length. It is a caller bug.
//   - New panics on a negative capacity or a region too large to allocate.
//
// GetMut is bounds checked like Get. UncheckedGetMut skips the check for
// hot loops whose index is already known to be in range.
//
// # Lifetime
//
// Release runs element cleanup over the initialized slots (the element's
// Release method if *T implements Releaser, then any WithCleanup func) and
// hands the region back exactly once. Calling Release twice is a no-op; any
// other call after Release panics. A buffer dropped without Release has its
// region accounted as released by the garbage collector and a warning is
// logged; element cleanup does not run and the slots are left untouched, so a
// pointer from GetMut that outlives the Buffer stays valid.
//
// Pointers from GetMut are valid until Release. Callers must not hold one
// while the same slot is accessed through another path.
//
// # Thread Safety
//
// Buffer is not goroutine-safe. SafeBuffer wraps it with a mutex and replaces
// GetMut with Update, so no pointer into the region escapes the lock:
//
//	s := fixedbuf.NewSafe[int](64)
//	defer s.Release()
//	s.Update(0, func(v *int) { *v++ })
//
// # Metrics and Monitoring
//
//	m := buf.Metrics()
//	fmt.Printf("Utilization: %.2f%%\n", m.Utilization*100)
//
//	prometheus.MustRegister(fixedbuf.NewCollector("app", s, prometheus.Labels{"buffer": "events"}))
//	prometheus.MustRegister(fixedbuf.NewRegionCollector("app"))
package fixedbuf
