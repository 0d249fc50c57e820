// Command l2fwdctl is a standalone demo driver for the forward module: it
// exercises init/add/delete/lookup/populate/set-default-gate against an
// in-process instance, without a real packet pipeline attached.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/pktfab/l2forward/forward"
)

func main() {
	var (
		size         = flag.Uint32("size", forward.DefaultSize, "table size (power of two)")
		bucket       = flag.Uint32("bucket", forward.DefaultBucket, "bucket width")
		addFlag      = flag.StringSlice("add", nil, "addr=gate entries to add")
		deleteFlag   = flag.StringSlice("delete", nil, "addrs to delete")
		lookupFlag   = flag.StringSlice("lookup", nil, "addrs to look up")
		defaultGate  = flag.Int("default-gate", -1, "set the default gate")
		populateBase = flag.String("populate-base", "", "populate: base MAC")
		populateN    = flag.Int("populate-count", 0, "populate: entry count")
		populateG    = flag.Int("populate-gates", 1, "populate: gate count")
		verbose      = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	var logger *zap.Logger
	var err error
	if *verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger init:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	m := forward.New(logger)
	if err := m.Init(forward.Config{Size: *size, Bucket: *bucket}); err != nil {
		logger.Fatal("init failed", zap.Error(err))
	}
	defer m.Deinit()

	if *defaultGate >= 0 {
		m.SetDefaultGate(uint16(*defaultGate))
	}

	if len(*addFlag) > 0 {
		entries, err := parseAddEntries(*addFlag)
		if err != nil {
			logger.Fatal("parse add entries", zap.Error(err))
		}
		if err := m.Add(entries); err != nil {
			logger.Fatal("add", zap.Error(err))
		}
	}

	if *populateBase != "" {
		if err := m.Populate(forward.PopulateConfig{
			Base:      *populateBase,
			Count:     *populateN,
			GateCount: *populateG,
		}); err != nil {
			logger.Fatal("populate", zap.Error(err))
		}
	}

	if len(*deleteFlag) > 0 {
		if err := m.Delete(*deleteFlag); err != nil {
			logger.Fatal("delete", zap.Error(err))
		}
	}

	if len(*lookupFlag) > 0 {
		gates, err := m.Lookup(*lookupFlag)
		if err != nil {
			logger.Fatal("lookup", zap.Error(err))
		}
		for i, addr := range *lookupFlag {
			fmt.Printf("%s -> gate %d\n", addr, gates[i])
		}
	}

	stats := m.Stats()
	fmt.Printf("table: size=%d bucket=%d count=%d default_gate=%d\n",
		stats.Size, stats.Bucket, stats.Count, m.DefaultGate())
}

func parseAddEntries(raw []string) ([]forward.AddEntry, error) {
	entries := make([]forward.AddEntry, 0, len(raw))
	for _, r := range raw {
		parts := strings.SplitN(r, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed --add entry %q, want addr=gate", r)
		}
		gate, err := strconv.ParseUint(parts[1], 10, 16)
		if err != nil {
			return nil, fmt.Errorf("malformed gate in %q: %w", r, err)
		}
		entries = append(entries, forward.AddEntry{Addr: parts[0], Gate: uint16(gate)})
	}
	return entries, nil
}
