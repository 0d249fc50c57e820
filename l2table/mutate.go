package l2table

import (
	"fmt"
	"sync/atomic"
)

// Add inserts (addr, gate), displacing at most one existing entry to make
// room (spec §4.4).
//
// Step 3's displacement loop walks the primary row's occupied slots in
// order. The spec text describes both "for each occupied slot S" and a
// single "bucket 0 of the original row" destination for the freed slot;
// this implementation resolves that by iterating candidates in row order
// and installing the new entry at whichever index is actually freed — the
// abandon condition (an S whose alternate equals its own primary, or ours)
// still aborts the *entire* loop immediately rather than trying the next
// candidate, matching the source's early-break (documented as a deliberate
// preserved quirk, not a latent bug, in spec §9 open questions; the
// decision to break rather than continue is recorded in DESIGN.md).
func (t *Table) Add(addr uint64, gate uint16) error {
	addr &= addrMask
	if uint64(gate) > gateMask {
		return fmt.Errorf("%w: gate=%d exceeds %d-bit range", ErrInvalidArgument, gate, gateBits)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.Find(addr); ok {
		return fmt.Errorf("%w: %#x", ErrAlreadyExists, addr)
	}

	hash, primary, _ := t.indices(addr)
	row := t.rowAt(primary)

	for i := range row {
		if !slotOccupied(atomic.LoadUint64(&row[i])) {
			atomic.StoreUint64(&row[i], packSlot(addr, gate))
			atomic.AddUint32(&t.count, 1)
			return nil
		}
	}

	for i := range row {
		s := atomic.LoadUint64(&row[i])
		sAddr := slotAddr(s)
		sHash, sPrimary, sAlt := t.indices(sAddr)
		_ = sHash
		if sAlt == sPrimary || sAlt == primary {
			break // abandon displacement entirely (spec §4.4 step 3)
		}

		altRow := t.rowAt(sAlt)
		for j := range altRow {
			if !slotOccupied(atomic.LoadUint64(&altRow[j])) {
				atomic.StoreUint64(&altRow[j], s)
				atomic.StoreUint64(&row[i], packSlot(addr, gate))
				atomic.AddUint32(&t.count, 1)
				return nil
			}
		}
	}

	_ = hash
	return fmt.Errorf("%w: %#x", ErrOutOfSpace, addr)
}

// Delete removes addr, scanning the primary row then the alternate row
// (spec §4.5).
func (t *Table) Delete(addr uint64) error {
	addr &= addrMask

	t.mu.Lock()
	defer t.mu.Unlock()

	_, primary, alt := t.indices(addr)

	if deleteFromRow(t.rowAt(primary), addr) {
		atomic.AddUint32(&t.count, ^uint32(0))
		return nil
	}
	if deleteFromRow(t.rowAt(alt), addr) {
		atomic.AddUint32(&t.count, ^uint32(0))
		return nil
	}

	return fmt.Errorf("%w: %#x", ErrNotFound, addr)
}

func deleteFromRow(row []uint64, addr uint64) bool {
	for i := range row {
		s := atomic.LoadUint64(&row[i])
		if slotOccupied(s) && slotAddr(s) == addr {
			atomic.StoreUint64(&row[i], 0)
			return true
		}
	}
	return false
}
