package persist

import (
	"context"
	"os"
	"path/filepath"
)

// FileSlot stores the snapshot as a single file in the data directory.
// Saves write to a temp file and rename, so a crash mid-write never leaves a
// truncated snapshot behind.
type FileSlot struct {
	path string
}

func NewFileSlot(dataDir, name string) (*FileSlot, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return &FileSlot{path: filepath.Join(dataDir, name)}, nil
}

func (f *FileSlot) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, ErrEmpty
	}
	return data, err
}

func (f *FileSlot) Save(_ context.Context, data []byte) error {
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *FileSlot) Ping(_ context.Context) error {
	_, err := os.Stat(filepath.Dir(f.path))
	return err
}
