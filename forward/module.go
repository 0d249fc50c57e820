// Package forward implements the L2 forwarding module described in spec
// §4.6: a per-instance l2table.Table plus a default gate, a batch
// classifier, and the five control-plane commands of §6.
package forward

import (
	"fmt"
	"sync/atomic"

	"github.com/templexxx/cpu"
	"go.uber.org/zap"

	"github.com/pktfab/l2forward/l2table"
	"github.com/pktfab/l2forward/mac"
)

// ClassName and InstanceName are the module's registration identifiers
// (spec §6: "registers under class name 'L2Forward', default instance name
// 'l2_forward'").
const (
	ClassName    = "L2Forward"
	InstanceName = "l2_forward"
)

// MaxGates bounds the gate index range this module instance exposes (spec
// §3: "The value range is bounded by the module's MAX_GATES"); it is also
// the module's output gate count at registration time (spec §6).
const MaxGates = 8192

// DropGate is the reserved "discard" gate sentinel (spec §3).
const DropGate uint16 = 0x7fff

// DefaultSize and DefaultBucket are init's defaults when the configuration
// omits size/bucket (spec §4.6, §6).
const (
	DefaultSize   = 1024
	DefaultBucket = 4
)

// Config is init's argument: optional integer size/bucket overrides (spec
// §4.6, §6). The zero value means "use the defaults" for each field,
// following calvinalkan-agent-task's DefaultConfig()-then-override config
// idiom rather than a generic map[string]any.
type Config struct {
	Size   uint32
	Bucket uint32
}

// DefaultConfig returns init's default configuration.
func DefaultConfig() Config {
	return Config{Size: DefaultSize, Bucket: DefaultBucket}
}

// Module holds one L2Forward instance: its table and its default gate.
// defaultGate is padded on both sides with cpu.X86FalseSharingRange bytes
// to keep it on its own cache line, because it is written by the control plane and read once per batch by
// every data-plane worker — the two must never share a cache line with
// each other or with the table header (spec §9, "Global/module state").
type Module struct {
	_padBefore  [cpu.X86FalseSharingRange]byte
	defaultGate uint32
	_padAfter   [cpu.X86FalseSharingRange]byte

	table  atomic.Pointer[l2table.Table]
	logger *zap.Logger
}

// New constructs an uninitialized Module. Call Init before ProcessBatch or
// any command.
func New(logger *zap.Logger) *Module {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Module{logger: logger}
	atomic.StoreUint32(&m.defaultGate, uint32(DropGate))
	return m
}

// Init allocates the table (spec §4.6). Defaults apply to zero fields of
// cfg. Failure leaves the module uninitialized; the caller must not invoke
// ProcessBatch until Init succeeds (spec §7).
func (m *Module) Init(cfg Config) error {
	size := cfg.Size
	if size == 0 {
		size = DefaultSize
	}
	bucket := cfg.Bucket
	if bucket == 0 {
		bucket = DefaultBucket
	}

	tbl, err := l2table.New(size, bucket)
	if err != nil {
		m.logger.Error("l2forward init failed", zap.Uint32("size", size), zap.Uint32("bucket", bucket), zap.Error(err))
		return fmt.Errorf("l2forward: init: %w", err)
	}

	atomic.StoreUint32(&m.defaultGate, uint32(DropGate))
	m.table.Store(tbl)
	m.logger.Info("l2forward initialized", zap.Uint32("size", size), zap.Uint32("bucket", bucket))
	return nil
}

// Deinit releases the table and resets metadata (spec §4.6). Safe to call
// on an uninitialized or already-deinitialized module.
func (m *Module) Deinit() {
	m.table.Store(nil)
	atomic.StoreUint32(&m.defaultGate, uint32(DropGate))
	m.logger.Info("l2forward deinitialized")
}

// DefaultGate returns the current default gate.
func (m *Module) DefaultGate() uint16 {
	return uint16(atomic.LoadUint32(&m.defaultGate))
}

// SetDefaultGate atomically replaces the default gate (spec §4.6: "safe to
// call concurrently with process_batch and lookup"). Per spec §9 open
// questions, this deliberately does not validate that gate falls within
// [0, MaxGates) nor reject DropGate — that validation belongs to whatever
// command-plane layer owns MAX_GATES for a given deployment, not the core
// module.
func (m *Module) SetDefaultGate(gate uint16) {
	atomic.StoreUint32(&m.defaultGate, uint32(gate))
}

// Stats reports the table's advisory size/bucket/count (spec §3), for the
// CLI and tests; it adds no new mutable state.
type Stats struct {
	Size   uint32
	Bucket uint32
	Count  uint32
}

// Stats returns the current table statistics. The zero Stats is returned
// if the module is not initialized.
func (m *Module) Stats() Stats {
	tbl := m.table.Load()
	if tbl == nil {
		return Stats{}
	}
	return Stats{Size: tbl.Size(), Bucket: tbl.Bucket(), Count: tbl.Count()}
}

// ProcessBatch classifies each packet in batch by destination MAC and hands
// (ogates, batch) to run (spec §4.6). The default gate is read once per
// batch via a single atomic load, so a concurrent SetDefaultGate is
// observed atomically at batch boundaries rather than mid-batch.
func (m *Module) ProcessBatch(batch PacketBatch, run RunSplit) {
	tbl := m.table.Load()
	dg := uint16(atomic.LoadUint32(&m.defaultGate))

	n := batch.Len()
	if n > MaxPktBurst {
		n = MaxPktBurst
	}

	var ogates [MaxPktBurst]uint16
	for i := 0; i < n; i++ {
		ogates[i] = dg

		if tbl == nil {
			continue
		}
		addr, err := mac.FromPacketHead(batch.Head(i))
		if err != nil {
			continue
		}
		if gate, ok := tbl.Find(addr); ok {
			ogates[i] = gate
		}
	}

	run(ogates[:n], batch)
}
