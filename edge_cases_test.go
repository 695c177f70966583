package fixedbuf_test

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavanmanishd/fixedbuf"
)

// TestEdgeCases drives the package through its public API only.
func TestEdgeCases(t *testing.T) {
	t.Run("InvariantHoldsAtEveryStep", func(t *testing.T) {
		for _, n := range []int{0, 1, 2, 7, 64} {
			b := fixedbuf.New[int](n)
			for i := 0; i < n+3; i++ {
				err := b.Push(i)
				require.True(t, 0 <= b.Len() && b.Len() <= n, "len %d outside [0,%d]", b.Len(), n)
				if i < n {
					require.NoError(t, err)
				} else {
					require.ErrorIs(t, err, fixedbuf.ErrBufferFull)
				}
			}
			require.Equal(t, n, b.Len())
			b.Release()
		}
	})

	t.Run("BoundaryPastLength", func(t *testing.T) {
		b := fixedbuf.New[int](10)
		defer b.Release()
		for i := 0; i < 5; i++ {
			require.NoError(t, b.Push(i))
		}

		for _, k := range []int{0, 1, 3, 100} {
			idx := b.Len() + k
			var ie *fixedbuf.IndexError
			func() {
				defer func() { ie, _ = recover().(*fixedbuf.IndexError) }()
				b.Get(idx)
			}()
			require.NotNil(t, ie, "Get(%d) did not panic with *IndexError", idx)
			assert.Equal(t, idx, ie.Index)
			assert.Equal(t, 5, ie.Length)
		}
	})

	t.Run("MultipleReleases", func(t *testing.T) {
		b := fixedbuf.New[int](4)
		before := fixedbuf.RegionStats()
		b.Release()
		b.Release()
		b.Release()
		assert.Equal(t, int64(1), fixedbuf.RegionStats().Released-before.Released)
	})

	t.Run("ZeroSizedElements", func(t *testing.T) {
		b := fixedbuf.New[struct{}](3)
		defer b.Release()
		for i := 0; i < 3; i++ {
			require.NoError(t, b.Push(struct{}{}))
		}
		assert.ErrorIs(t, b.Push(struct{}{}), fixedbuf.ErrBufferFull)
		assert.Equal(t, struct{}{}, b.Get(2))
		assert.Zero(t, b.Metrics().Capacity)
	})
}

// TestElementKinds stores values of various Go types and reads them back.
func TestElementKinds(t *testing.T) {
	t.Run("BasicTypes", func(t *testing.T) {
		b := fixedbuf.New[float64](3)
		defer b.Release()
		require.NoError(t, b.Push(3.14159))
		require.NoError(t, b.Push(-0.5))
		assert.Equal(t, 3.14159, b.Get(0))
		assert.Equal(t, -0.5, b.Get(1))
	})

	t.Run("ComplexTypes", func(t *testing.T) {
		type ComplexStruct struct {
			A int64
			B string
			C []int
			D map[string]int
			E *int
		}
		b := fixedbuf.New[ComplexStruct](2)
		defer b.Release()

		v := 7
		require.NoError(t, b.Push(ComplexStruct{A: 100, B: "test", C: []int{1, 2, 3}, D: map[string]int{"key": 42}, E: &v}))

		got := b.GetMut(0)
		got.D["key"]++
		got.C = append(got.C, 4)

		s := b.Get(0)
		assert.Equal(t, "test", s.B)
		assert.Equal(t, []int{1, 2, 3, 4}, s.C)
		assert.Equal(t, 43, s.D["key"])
		assert.Same(t, &v, s.E)
	})

	t.Run("Arrays", func(t *testing.T) {
		b := fixedbuf.New[[10]int](4)
		defer b.Release()
		var arr [10]int
		for i := range arr {
			arr[i] = i * 2
		}
		require.NoError(t, b.Push(arr))
		b.GetMut(0)[9] = -1

		got := b.Get(0)
		assert.Equal(t, 16, got[8])
		assert.Equal(t, -1, got[9])
		assert.Equal(t, 18, arr[9], "the pushed value is copied, not aliased")
	})
}

// TestNoLeakedRegions creates and destroys many buffers.
func TestNoLeakedRegions(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping region leak test in short mode")
	}

	before := fixedbuf.RegionStats()
	for i := 0; i < 1000; i++ {
		b := fixedbuf.New[[64]byte](100)
		for j := 0; j < 50; j++ {
			_ = b.Push([64]byte{byte(j)})
		}
		b.Release()
	}
	after := fixedbuf.RegionStats()

	assert.Equal(t, int64(1000), after.Allocated-before.Allocated)
	assert.Equal(t, int64(1000), after.Released-before.Released)
	assert.Equal(t, before.LiveBytes, after.LiveBytes)
}

func TestSafeBufferDeadlock(t *testing.T) {
	s := fixedbuf.NewSafe[int](1000)
	defer s.Release()

	done := make(chan bool, 2)
	timeout := time.After(5 * time.Second)

	// Goroutine 1: Continuous pushes
	go func() {
		for i := 0; i < 1000; i++ {
			_ = s.Push(i)
			if i%100 == 0 {
				runtime.Gosched()
			}
		}
		done <- true
	}()

	// Goroutine 2: Continuous metrics reading
	go func() {
		for i := 0; i < 1000; i++ {
			_ = s.Metrics()
			if i%100 == 0 {
				runtime.Gosched()
			}
		}
		done <- true
	}()

	// Wait for completion or timeout
	completed := 0
	for completed < 2 {
		select {
		case <-done:
			completed++
		case <-timeout:
			t.Fatal("Test timed out - possible deadlock")
		}
	}
	assert.True(t, s.Full())
}
