package forward

// MaxPktBurst bounds the number of packets ProcessBatch classifies per
// call (spec §4.6: "For each packet i in the batch (up to MAX_PKT_BURST)").
// 32 is the conventional burst size for this class of software dataplane
// pipeline (DPDK/BESS-style batch processing).
const MaxPktBurst = 32

// PacketBatch is the minimal view ProcessBatch needs of the surrounding
// pipeline's batch type. The pipeline's own batch/packet-buffer layout is
// explicitly out of scope (spec §1): this interface is the seam the real
// runtime's batch type is expected to satisfy.
type PacketBatch interface {
	// Len returns the number of packets in the batch.
	Len() int
	// Head returns the first bytes of packet i's data, at least 8 bytes.
	Head(i int) []byte
}

// RunSplit is the external run_split(module, gate_array, batch) primitive
// (spec §1): it routes each packet of batch to the gate named by the
// matching entry of ogates.
type RunSplit func(ogates []uint16, batch PacketBatch)
