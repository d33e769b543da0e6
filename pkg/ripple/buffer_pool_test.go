package ripple

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBufferPoolSizes(t *testing.T) {
	pool := NewBufferPool()

	tests := []struct {
		name      string
		requested int
		wantCap   int
	}{
		{"Zero", 0, BufferSize4KB},
		{"Small 1KB", 1024, BufferSize4KB},
		{"Exact 4KB", BufferSize4KB, BufferSize4KB},
		{"Between 4KB-16KB", 5 * 1024, BufferSize16KB},
		{"Exact 16KB", BufferSize16KB, BufferSize16KB},
		{"Between 16KB-64KB", 40 * 1024, BufferSize64KB},
		{"Exact 64KB", BufferSize64KB, BufferSize64KB},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := pool.Get(tt.requested)
			defer pool.Put(buf)

			require.Len(t, buf, 0)
			require.Equal(t, tt.wantCap, cap(buf))
		})
	}
}

func TestBufferPoolOversized(t *testing.T) {
	pool := NewBufferPool()

	buf := pool.Get(128 * 1024)
	require.Equal(t, 128*1024, cap(buf))
	pool.Put(buf)

	s := pool.Stats()
	require.EqualValues(t, 1, s.Oversized)
	for _, c := range s.Classes {
		require.Zero(t, c.Puts)
	}
}

func TestBufferPoolGrow(t *testing.T) {
	pool := NewBufferPool()

	buf := pool.Get(10)
	buf = append(buf, "GET / HTTP/1.1\r\n"...)

	same := pool.Grow(buf, 100)
	require.Equal(t, BufferSize4KB, cap(same))
	require.Equal(t, "GET / HTTP/1.1\r\n", string(same))

	grown := pool.Grow(buf, BufferSize4KB)
	require.Equal(t, BufferSize16KB, cap(grown))
	require.Equal(t, "GET / HTTP/1.1\r\n", string(grown))
	require.GreaterOrEqual(t, cap(grown)-len(grown), BufferSize4KB)
}

func TestBufferPoolGrowPastLargestClass(t *testing.T) {
	pool := NewBufferPool()

	buf := pool.Get(BufferSize64KB)
	buf = append(buf, make([]byte, BufferSize64KB)...)

	grown := pool.Grow(buf, 1)
	require.Len(t, grown, BufferSize64KB)
	require.GreaterOrEqual(t, cap(grown), 2*BufferSize64KB)
}

func TestBufferPoolStats(t *testing.T) {
	pool := NewBufferPool()

	for i := 0; i < 5; i++ {
		pool.Put(pool.Get(100))
	}

	s := pool.Stats()
	require.EqualValues(t, 5, s.Gets)
	require.EqualValues(t, 5, s.Puts)
	require.EqualValues(t, 5, s.Classes[0].Gets)
	require.Equal(t, BufferSize4KB, s.Classes[0].Size)
	require.LessOrEqual(t, s.Classes[0].Misses, uint64(5))
	require.Equal(t, s.Classes[0].Gets-s.Classes[0].Misses, s.Classes[0].Hits)
}

func TestBufferPoolPutForeign(t *testing.T) {
	pool := NewBufferPool()

	pool.Put(make([]byte, 0, 1000))
	pool.Put(nil)

	s := pool.Stats()
	require.EqualValues(t, 1, s.Puts)
	for _, c := range s.Classes {
		require.Zero(t, c.Puts)
	}
}

func TestBufferPoolWarmup(t *testing.T) {
	pool := NewBufferPool()
	pool.Warmup(4)

	for _, c := range pool.Stats().Classes {
		require.EqualValues(t, 4, c.Gets)
		require.EqualValues(t, 4, c.Puts)
	}
}

func TestBufferPoolConcurrent(t *testing.T) {
	pool := NewBufferPool()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				buf := pool.Get(i * 100)
				buf = append(buf, byte(i))
				pool.Put(buf)
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, 1600, pool.Stats().Gets)
}

func BenchmarkBufferPoolGetPut(b *testing.B) {
	pool := NewBufferPool()
	pool.Warmup(16)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.Put(pool.Get(BufferSize4KB))
	}
}
