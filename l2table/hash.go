package l2table

import (
	"encoding/binary"
	"hash/crc32"
)

// murmurMixConstant is the 32-bit MurmurHash2 mixing constant used to
// derive the alternate bucket index (spec §4.1).
const murmurMixConstant = 0x5bd1e995

// primaryHash is CRC-32 over the 8-byte internal-form address. The top two
// bytes of that word are always zero (reserved/metadata bits, spec §3) and
// are therefore neutral to the checksum.
//
// hash/crc32 is the standard library's CRC implementation; the pack itself
// reaches for hash/crc32 rather than a third-party CRC library for its own
// checksums (see calvinalkan-agent-task's pkg/mddb/wal.go), and §4.1
// mandates CRC-32 specifically, so there is no alternate hash family to
// choose here — only an implementation of the one the spec names.
func primaryHash(addr uint64) uint32 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], addr&addrMask)
	return crc32.ChecksumIEEE(b[:])
}

// primaryIndex is hash & (N-1), N = 1<<sizePower.
func primaryIndex(hash uint32, sizePower uint) uint32 {
	return hash & (uint32(1)<<sizePower - 1)
}

// altIndex derives the alternate bucket row from the primary hash and
// primary index (spec §4.1):
//
//	tag = (hash >> size_power) + 1
//	tag = tag * 0x5bd1e995
//	alt = (primary XOR tag) & ((1 << (size_power - 1)) - 1)
//
// tag is deliberately kept as a 32-bit value through the multiply: the
// spec calls out that the multiplier's truncation to 32 bits is intentional
// and must be preserved (§9, open questions), not "fixed" by widening the
// intermediate arithmetic.
//
// The mask is size_power-1 bits wide — one bit narrower than the primary
// index — so alternates always land in the lower half of the index space.
// That means re-deriving "the primary" from an alternate index with this
// same formula only recovers primary's low size_power-1 bits, not the
// discarded top bit; §4.1 flags this explicitly as "a tie-breaking property
// callers must not rely on," and no code path here inverts alt back to
// primary — mutation always recomputes both indices fresh from a slot's
// address (spec §4.4 step 3), never by inverting a stored row index.
func altIndex(hash uint32, primary uint32, sizePower uint) uint32 {
	if sizePower == 0 {
		return 0
	}
	tag := (hash>>sizePower + 1) * murmurMixConstant
	mask := uint32(1)<<(sizePower-1) - 1
	return (primary ^ tag) & mask
}
