package forward

import (
	"fmt"

	"github.com/pktfab/l2forward/l2table"
	"github.com/pktfab/l2forward/mac"
)

// AddEntry is one element of an add command's argument list (spec §6:
// "add(list of {addr:string, gate:int})").
type AddEntry struct {
	Addr string
	Gate uint16
}

// Add parses and inserts each entry in order. The first failure aborts the
// loop and returns its error wrapped in a *CommandError; entries already
// inserted keep their effect (spec §6: "not transactional").
func (m *Module) Add(entries []AddEntry) error {
	tbl := m.table.Load()
	if tbl == nil {
		return &CommandError{Op: "add", Err: fmt.Errorf("l2forward: module not initialized")}
	}

	for _, e := range entries {
		addr, err := mac.Parse(e.Addr)
		if err != nil {
			return &CommandError{Op: "add", Arg: e.Addr, Err: err}
		}
		if err := tbl.Add(addr, e.Gate); err != nil {
			return &CommandError{Op: "add", Arg: e.Addr, Err: err}
		}
	}
	return nil
}

// Delete removes each listed MAC in order. The first miss aborts the loop
// (spec §6: "NotFound on the first miss").
func (m *Module) Delete(addrs []string) error {
	tbl := m.table.Load()
	if tbl == nil {
		return &CommandError{Op: "delete", Err: fmt.Errorf("l2forward: module not initialized")}
	}

	for _, s := range addrs {
		addr, err := mac.Parse(s)
		if err != nil {
			return &CommandError{Op: "delete", Arg: s, Err: err}
		}
		if err := tbl.Delete(addr); err != nil {
			return &CommandError{Op: "delete", Arg: s, Err: err}
		}
	}
	return nil
}

// Lookup returns the gate of each listed MAC in input order. The first
// unknown MAC aborts with NotFound (spec §6).
func (m *Module) Lookup(addrs []string) ([]uint16, error) {
	tbl := m.table.Load()
	if tbl == nil {
		return nil, &CommandError{Op: "lookup", Err: fmt.Errorf("l2forward: module not initialized")}
	}

	gates := make([]uint16, 0, len(addrs))
	for _, s := range addrs {
		addr, err := mac.Parse(s)
		if err != nil {
			return nil, &CommandError{Op: "lookup", Arg: s, Err: err}
		}
		gate, ok := tbl.Find(addr)
		if !ok {
			return nil, &CommandError{Op: "lookup", Arg: s, Err: l2table.ErrNotFound}
		}
		gates = append(gates, gate)
	}
	return gates, nil
}

// PopulateConfig is the populate command's argument (spec §6).
type PopulateConfig struct {
	Base      string
	Count     int
	GateCount int
}

// Populate synthesizes Count entries starting at Base, incrementing the MAC
// per mac.Next and assigning gate i mod GateCount to entry i. Per-entry
// insertion failures are silently ignored (spec §6, §9: "matches source
// behavior"), so a Count larger than the table's capacity yields a
// partially populated table with no error.
func (m *Module) Populate(cfg PopulateConfig) error {
	tbl := m.table.Load()
	if tbl == nil {
		return &CommandError{Op: "populate", Err: fmt.Errorf("l2forward: module not initialized")}
	}
	if cfg.GateCount <= 0 {
		return &CommandError{Op: "populate", Arg: cfg.Base, Err: l2table.ErrInvalidArgument}
	}

	addr, err := mac.Parse(cfg.Base)
	if err != nil {
		return &CommandError{Op: "populate", Arg: cfg.Base, Err: err}
	}

	for i := 0; i < cfg.Count; i++ {
		gate := uint16(i % cfg.GateCount)
		_ = tbl.Add(addr, gate)
		addr = mac.Next(addr)
	}
	return nil
}
