package l2table

import "github.com/templexxx/cpu"

// avx2CPUs lists the x86 signatures known to support AVX2. This mirrors the
// detection table the teacher package (templexxx/u64) keeps in
// atomic256.go for its own wide-compare fast path — unlike that table,
// this one is actually consulted: the teacher's init() forces its flag to
// true unconditionally ("TODO after tuning avx version faster"), which
// defeats the detection table it just built. Real per-CPU dispatch is
// required here because the vector and scalar probes must be bit-for-bit
// equivalent on hardware that lacks AVX2 too (spec §4.2, §9 "SIMD as an
// optional fast path").
var avx2CPUs = map[string]struct{}{
	"06_4EH": {}, "06_5EH": {},
	"06_55H": {},
	"06_6AH": {}, "06_6CH": {},
	"06_8EH": {}, "06_9EH": {},
	"06_66H": {},
	"06_A5H": {}, "06_A6H": {},
	"06_7DH": {}, "06_7EH": {},
}

var avx2Available bool

func init() {
	_, avx2Available = avx2CPUs[cpu.X86.Signature]
}

// vectorProbeRow4 is the AVX2 bucket probe (spec §4.2, "vector probe"):
// broadcast query into a 256-bit register, load the 4-slot bucket row,
// mask both with probeMask, compare for equality, and reduce the 4-lane
// result to a 1-based first-match index (0 for miss) via a packed-double
// movemask over the comparison result.
//
// Implemented in probe_amd64.s.
//
//go:noescape
func vectorProbeRow4(query uint64, row *[4]uint64) int
