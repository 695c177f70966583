package fixedbuf

import (
	"testing"
)

// BenchmarkFill compares filling a buffer with appending to a presized slice.
func BenchmarkFill(b *testing.B) {
	type record struct {
		ID   int64
		Data [56]byte // Total 64 bytes
	}
	const n = 1024

	b.Run("Buffer", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			buf := New[record](n)
			for j := 0; j < n; j++ {
				_ = buf.Push(record{ID: int64(j)})
			}
			buf.Release()
		}
	})

	b.Run("Builtin", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			s := make([]record, 0, n)
			for j := 0; j < n; j++ {
				s = append(s, record{ID: int64(j)})
			}
			_ = s
		}
	})
}

func BenchmarkAccess(b *testing.B) {
	buf := New[int](1024)
	defer buf.Release()
	for i := 0; i < 1024; i++ {
		_ = buf.Push(i)
	}

	b.Run("Get", func(b *testing.B) {
		sum := 0
		for i := 0; i < b.N; i++ {
			sum += buf.Get(i & 1023)
		}
		_ = sum
	})

	b.Run("GetMut", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			*buf.GetMut(i & 1023) += 1
		}
	})

	b.Run("UncheckedGetMut", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			*buf.UncheckedGetMut(i & 1023) += 1
		}
	})
}

func BenchmarkPushFull(b *testing.B) {
	buf := New[int](0)
	defer buf.Release()

	for i := 0; i < b.N; i++ {
		_ = buf.Push(i)
	}
}
