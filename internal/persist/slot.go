// Package persist gives the store its durable home: an opaque key-value slot
// holding one serialized snapshot of the whole state. Persistence is strictly
// best effort — a failed load falls back to a default state, a failed save is
// logged and skipped. The core never touches a backend directly.
package persist

import (
	"context"
	"errors"
)

// ErrEmpty is returned by Load when the slot has never been written.
var ErrEmpty = errors.New("persist: slot is empty")

// Slot is a single durable key-value cell. Implementations: FileSlot (default)
// and RedisSlot.
type Slot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	// Ping reports backend reachability for the health check.
	Ping(ctx context.Context) error
}
