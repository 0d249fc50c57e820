package l2table

import "sync/atomic"

// scalarProbeRow implements the bucket probe for any row length (spec §4.2
// scalar form): mask each slot word and the query with probeMask, compare
// for equality, return the 1-based index of the first match or 0 for a
// miss.
//
// Used directly for bucket sizes other than 4, and as the reference
// implementation the vector probe is cross-validated against.
func scalarProbeRow(query uint64, row []uint64) int {
	q := query & probeMask
	for i := range row {
		s := atomic.LoadUint64(&row[i])
		if s&probeMask == q {
			return i + 1
		}
	}
	return 0
}

// probeRow dispatches to the vector probe when the row is a full 4-wide
// bucket and the CPU supports it, falling back to the scalar probe
// otherwise (spec §4.2: "For B != 4 only the scalar form is used").
func probeRow(query uint64, row []uint64) int {
	if len(row) == 4 && avx2Available {
		return vectorProbeRow4(query, (*[4]uint64)(row))
	}
	return scalarProbeRow(query, row)
}
