// Command shieldsync drives a single scanner pass against a pluggable
// block source, persisting cache/tree state through the Store interface.
// Node/RPC transport is explicitly out of scope for this module (§1); the
// BlockSource this binary drives is wired up by its caller (see
// pkg/scanner.BlockSource), not fetched from a live chain here.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/shieldpool/core/pkg/merkletree"
	"github.com/shieldpool/core/pkg/note"
	"github.com/shieldpool/core/pkg/notecache"
	"github.com/shieldpool/core/pkg/scanner"
	"github.com/shieldpool/core/pkg/store"
)

func main() {
	configPath := flag.String("config", "shieldsync.json", "path to the shieldsync config file")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "shieldsync: config:", err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)
	ctx := context.Background()

	var backing store.Store
	if cfg.DatabaseURL != "" {
		pg, err := store.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("connecting to store")
		}
		defer pg.Close()
		backing = pg
	} else {
		log.Warn().Msg("no database_url configured, using a non-durable in-memory store")
		backing = store.NewMemoryStore()
	}

	keys, err := note.GenerateFullKeySet()
	if err != nil {
		log.Fatal().Err(err).Msg("generating key set")
	}
	defer keys.Zeroize()
	ivk := &note.IncomingViewingKey{Ivk: keys.Ask}

	var diversifier [11]byte
	diversifier[0] = 1
	addr, err := note.NewPaymentAddress(ivk, diversifier)
	if err != nil {
		log.Fatal().Err(err).Msg("deriving payment address")
	}
	addrKey := notecache.KeyForAddress(addr)

	tree, err := store.LoadTree(ctx, backing, cfg.AddressID)
	if err != nil {
		if err != store.ErrNotFound {
			log.Fatal().Err(err).Msg("loading tree state")
		}
		tree = merkletree.New()
	}

	cache := notecache.New()
	if state, err := store.LoadNoteCache(ctx, backing); err == nil {
		if imported, err := notecache.Import(state); err == nil {
			cache = imported
		} else {
			log.Warn().Err(err).Msg("could not import persisted note cache, starting fresh")
		}
	} else if err != store.ErrNotFound {
		log.Fatal().Err(err).Msg("loading note cache state")
	}

	sc := scanner.New(tree, cache, ivk, keys.Nk, addrKey, log)

	source := scanner.NewSliceBlockSource(nil)
	startHeight := cache.SyncedHeight(addrKey)
	endHeight := startHeight + cfg.ScanBatchSize

	health := NewHealthChecker()
	found, err := sc.ScanBatch(ctx, source, startHeight, endHeight, func(p scanner.Progress) {
		log.Info().
			Uint32("height", p.CurrentHeight).
			Float64("percent", p.Percent).
			Uint64("notes_found", p.NotesFound).
			Msg("scan progress")
	})
	if err != nil {
		log.Error().Err(err).Msg("scan batch failed")
	}

	cache.UpdateSyncedHeight(addrKey, endHeight)

	if err := store.SaveTree(ctx, backing, cfg.AddressID, tree); err != nil {
		log.Error().Err(err).Msg("saving tree state")
	}
	if err := store.SaveNoteCache(ctx, backing, cache.Export()); err != nil {
		log.Error().Err(err).Msg("saving note cache state")
	}

	snapshot := health.Snapshot(endHeight, sc.Metrics())
	snapshot.NotesFound = uint64(found)
	out, _ := json.MarshalIndent(snapshot, "", "  ")
	fmt.Println(string(out))
}
