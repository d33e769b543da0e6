// Package ripple holds the pieces shared by the ripple HTTP/1.1 server:
// the read-buffer pool lives here, the protocol in http11, views in bytestr.
package ripple

import (
	"sync"
	"sync/atomic"
)

// Read buffer size classes. Requests that outgrow the largest class are
// allocated directly and never pooled.
const (
	BufferSize4KB  = 4 * 1024
	BufferSize16KB = 16 * 1024
	BufferSize64KB = 64 * 1024
)

var bufferClasses = [...]int{BufferSize4KB, BufferSize16KB, BufferSize64KB}

// BufferPool hands out request read buffers by size class.
//
// Parsed requests borrow from the buffer they were parsed out of, so a
// buffer may only be returned once every request view over it is dead.
type BufferPool struct {
	classes [len(bufferClasses)]*sizedBufferPool

	totalGets atomic.Uint64
	totalPuts atomic.Uint64
	oversized atomic.Uint64
}

type sizedBufferPool struct {
	size int
	pool sync.Pool

	gets     atomic.Uint64
	puts     atomic.Uint64
	misses   atomic.Uint64
	discards atomic.Uint64
}

func newSizedBufferPool(size int) *sizedBufferPool {
	sbp := &sizedBufferPool{size: size}
	sbp.pool.New = func() interface{} {
		sbp.misses.Add(1)
		buf := make([]byte, size)
		return &buf
	}
	return sbp
}

func (sbp *sizedBufferPool) get() []byte {
	sbp.gets.Add(1)
	buf := *sbp.pool.Get().(*[]byte)
	return buf[:0:sbp.size]
}

func (sbp *sizedBufferPool) put(buf []byte) {
	sbp.puts.Add(1)
	if cap(buf) != sbp.size {
		sbp.discards.Add(1)
		return
	}
	buf = buf[:sbp.size]
	sbp.pool.Put(&buf)
}

// NewBufferPool returns an empty pool.
func NewBufferPool() *BufferPool {
	bp := &BufferPool{}
	for i, size := range bufferClasses {
		bp.classes[i] = newSizedBufferPool(size)
	}
	return bp
}

// Get returns a zero-length buffer whose capacity is the smallest class
// holding size bytes.
func (bp *BufferPool) Get(size int) []byte {
	bp.totalGets.Add(1)
	if c := bp.class(size); c != nil {
		return c.get()
	}
	bp.oversized.Add(1)
	return make([]byte, 0, size)
}

// Put returns buf to its class. Buffers whose capacity matches no class
// are dropped.
func (bp *BufferPool) Put(buf []byte) {
	if buf == nil {
		return
	}
	bp.totalPuts.Add(1)
	for _, c := range bp.classes {
		if cap(buf) == c.size {
			c.put(buf)
			return
		}
	}
}

// Grow returns a buffer holding buf's contents with room for at least n
// more bytes. When a larger buffer is needed, buf is copied and returned
// to the pool, so views over the old buffer must not be used afterwards.
func (bp *BufferPool) Grow(buf []byte, n int) []byte {
	if cap(buf)-len(buf) >= n {
		return buf
	}
	want := len(buf) + n
	if want < 2*cap(buf) {
		want = 2 * cap(buf)
	}
	next := bp.Get(want)
	next = append(next, buf...)
	bp.Put(buf)
	return next
}

func (bp *BufferPool) class(size int) *sizedBufferPool {
	for _, c := range bp.classes {
		if size <= c.size {
			return c
		}
	}
	return nil
}

// ClassStats describes one size class.
type ClassStats struct {
	Size     int    `json:"size"`
	Gets     uint64 `json:"gets"`
	Puts     uint64 `json:"puts"`
	Hits     uint64 `json:"hits"`
	Misses   uint64 `json:"misses"`
	Discards uint64 `json:"discards"`
}

// PoolStats is a point-in-time snapshot of a BufferPool.
type PoolStats struct {
	Gets      uint64       `json:"gets"`
	Puts      uint64       `json:"puts"`
	Oversized uint64       `json:"oversized"`
	HitRate   float64      `json:"hit_rate"`
	Classes   []ClassStats `json:"classes"`
}

// Stats snapshots the pool counters. Hits are derived as gets minus misses.
func (bp *BufferPool) Stats() PoolStats {
	s := PoolStats{
		Gets:      bp.totalGets.Load(),
		Puts:      bp.totalPuts.Load(),
		Oversized: bp.oversized.Load(),
		Classes:   make([]ClassStats, 0, len(bp.classes)),
	}

	var hits, gets uint64
	for _, c := range bp.classes {
		cs := ClassStats{
			Size:     c.size,
			Gets:     c.gets.Load(),
			Puts:     c.puts.Load(),
			Misses:   c.misses.Load(),
			Discards: c.discards.Load(),
		}
		if cs.Gets >= cs.Misses {
			cs.Hits = cs.Gets - cs.Misses
		}
		hits += cs.Hits
		gets += cs.Gets
		s.Classes = append(s.Classes, cs)
	}
	if gets > 0 {
		s.HitRate = float64(hits) / float64(gets)
	}
	return s
}

// Warmup primes every class with count buffers.
func (bp *BufferPool) Warmup(count int) {
	for _, c := range bp.classes {
		bufs := make([][]byte, count)
		for i := range bufs {
			bufs[i] = c.get()
		}
		for _, b := range bufs {
			c.put(b)
		}
	}
}
