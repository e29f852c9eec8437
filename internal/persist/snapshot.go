package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"tillpos/internal/store"
)

const snapshotVersion = 1

// snapshot is the on-disk envelope around store.State.
type snapshot struct {
	Version int         `json:"version"`
	SavedAt time.Time   `json:"saved_at"`
	State   store.State `json:"state"`
}

// Encode serializes a state snapshot for the slot.
func Encode(st store.State) ([]byte, error) {
	return json.Marshal(snapshot{
		Version: snapshotVersion,
		SavedAt: time.Now().UTC(),
		State:   st,
	})
}

// Decode parses a slot payload back into a state.
func Decode(data []byte) (store.State, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return store.State{}, fmt.Errorf("persist: corrupt snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return store.State{}, fmt.Errorf("persist: unsupported snapshot version %d", snap.Version)
	}
	return snap.State, nil
}

// Load reads the slot and returns its state. Missing or corrupt data degrades
// to the fallback state with a log entry — boot never fails on bad persistence.
func Load(ctx context.Context, slot Slot, fallback store.State) store.State {
	data, err := slot.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrEmpty) {
			log.Info().Msg("no saved state found, starting from default")
		} else {
			log.Warn().Err(err).Msg("failed to load saved state, starting from default")
		}
		return fallback
	}
	st, err := Decode(data)
	if err != nil {
		log.Warn().Err(err).Msg("saved state unreadable, starting from default")
		return fallback
	}
	return st
}

// Save snapshots the store into the slot. Best effort: the caller treats an
// error as "skip this save", never as fatal.
func Save(ctx context.Context, slot Slot, s *store.Store) error {
	data, err := Encode(s.Snapshot())
	if err != nil {
		return err
	}
	return slot.Save(ctx, data)
}
