package forward

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// TestSetDefaultGateConcurrentWithProcessBatch exercises spec §4.6's
// "safe to call concurrently with process_batch and lookup" contract for
// set_default_gate: nothing here should race or panic, and every observed
// gate must be one of the two values in play.
func TestSetDefaultGateConcurrentWithProcessBatch(t *testing.T) {
	m := New(nil)
	require.NoError(t, m.Init(DefaultConfig()))
	// Init leaves DropGate as the default; start from one of the two values
	// the writer below alternates between.
	m.SetDefaultGate(0)

	batch := &fakeBatch{heads: [][]byte{head("de:ad:be:ef:00:01")}}

	var g errgroup.Group
	g.Go(func() error {
		for i := 0; i < 2000; i++ {
			m.SetDefaultGate(uint16(i % 2))
		}
		return nil
	})
	for w := 0; w < 4; w++ {
		g.Go(func() error {
			for i := 0; i < 2000; i++ {
				m.ProcessBatch(batch, func(ogates []uint16, b PacketBatch) {
					if ogates[0] > 1 {
						t.Errorf("unexpected default gate observed: %d", ogates[0])
					}
				})
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
