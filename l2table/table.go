// Package l2table implements the bounded, cuckoo-hashed, multi-way-bucketed
// MAC-to-gate dictionary described in spec §§2-5: a fixed N×B grid of
// packed slot words, CRC-32 primary hashing with a derived alternate
// bucket, a scalar/SIMD bucket probe, two-probe lookup, and one-level
// cuckoo insertion. It does not resize, persist, rehash, evict, or age
// entries (spec §1 Non-goals) — that is left entirely to the caller.
package l2table

import (
	"fmt"
	"math/bits"
	"sync"
	"sync/atomic"
)

// MaxTableSize bounds N (spec §3: "N ... is a power of two in [1, 2^26]").
const MaxTableSize = 1 << 26

// MaxBucket bounds B (spec §3: "B ... is a power of two in [1, 4]").
const MaxBucket = 4

// Table is the N×B grid of slots (spec §3). The zero value is not usable;
// construct with New.
type Table struct {
	mu sync.Mutex // serializes add/delete/flush against each other (spec §5)

	slots []uint64

	size      uint32 // N
	bucket    uint32 // B
	sizePower uint   // log2(N), precomputed per spec §3

	count uint32 // advisory occupied-slot count (spec §3 invariant 3)
}

func isPowerOfTwo(n uint32) bool { return n != 0 && n&(n-1) == 0 }

// New allocates a table of size*bucket slots. size and bucket must each be
// a power of two within the bounds spec §3 and §8 require; any violation
// is reported as ErrInvalidArgument, matching the boundary behaviors listed
// in §8 ("init rejects: size=0, size not a power of two, size >
// MAX_TABLE_SIZE, bucket=0, bucket>4, bucket not a power of two").
//
// Cache-line-aligned allocation is the surrounding runtime's job (spec §1:
// "an allocator that returns cache-line-aligned memory" is an external
// collaborator); New uses an ordinary Go slice.
func New(size, bucket uint32) (*Table, error) {
	if size == 0 || !isPowerOfTwo(size) || size > MaxTableSize {
		return nil, fmt.Errorf("%w: size=%d must be a power of two in [1, %d]", ErrInvalidArgument, size, MaxTableSize)
	}
	if bucket == 0 || !isPowerOfTwo(bucket) || bucket > MaxBucket {
		return nil, fmt.Errorf("%w: bucket=%d must be a power of two in [1, %d]", ErrInvalidArgument, bucket, MaxBucket)
	}

	return &Table{
		slots:     make([]uint64, uint64(size)*uint64(bucket)),
		size:      size,
		bucket:    bucket,
		sizePower: uint(bits.TrailingZeros32(size)),
	}, nil
}

// Size returns N.
func (t *Table) Size() uint32 { return t.size }

// Bucket returns B.
func (t *Table) Bucket() uint32 { return t.bucket }

// Count returns the advisory occupied-slot count (spec §3 invariant 3).
func (t *Table) Count() uint32 { return atomic.LoadUint32(&t.count) }

func (t *Table) rowAt(index uint32) []uint64 {
	base := uint64(index) * uint64(t.bucket)
	return t.slots[base : base+uint64(t.bucket)]
}

// indices computes a MAC's primary hash, primary bucket index, and
// alternate bucket index (spec §4.1).
func (t *Table) indices(addr uint64) (hash uint32, primary, alt uint32) {
	hash = primaryHash(addr)
	primary = primaryIndex(hash, t.sizePower)
	alt = altIndex(hash, primary, t.sizePower)
	return
}

// Find looks up addr, performing at most two bucket probes and never
// mutating the table (spec §4.3). It takes no lock: it only issues
// aligned 64-bit slot reads, and a torn read under concurrent mutation can
// only produce a spurious miss or a stale gate, both tolerable here (spec
// §5) because the next batch simply re-probes.
func (t *Table) Find(addr uint64) (gate uint16, ok bool) {
	addr &= addrMask
	_, primary, alt := t.indices(addr)
	query := probeQuery(addr)

	row := t.rowAt(primary)
	if idx := probeRow(query, row); idx != 0 {
		return slotGate(atomic.LoadUint64(&row[idx-1])), true
	}

	row = t.rowAt(alt)
	if idx := probeRow(query, row); idx != 0 {
		return slotGate(atomic.LoadUint64(&row[idx-1])), true
	}

	return 0, false
}

// Flush zeroes every slot. N, B, and sizePower are unchanged (spec §4.5).
func (t *Table) Flush() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.slots {
		atomic.StoreUint64(&t.slots[i], 0)
	}
	atomic.StoreUint32(&t.count, 0)
}
