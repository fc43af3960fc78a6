package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// stateFile is the on-disk layout of the persisted state.
type stateFile struct {
	Control uint8 `toml:"control"`
}

// FileStore persists the control byte as a TOML file.
type FileStore struct {
	path string
}

// NewFileStore returns a store writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the persisted control byte. A missing file yields zero.
func (s *FileStore) Load() (Control, error) {
	var st stateFile
	_, err := toml.DecodeFile(s.path, &st)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return Control(st.Control), nil
}

// WriteControl writes c, replacing the file atomically.
func (s *FileStore) WriteControl(c Control) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".state-*.toml")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(stateFile{Control: uint8(c)}); err != nil {
		tmp.Close()
		return fmt.Errorf("encode state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("rename state: %w", err)
	}
	return nil
}

// FakeStore records written control bytes for test assertions.
type FakeStore struct {
	Writes     []Control
	WriteError error
}

// WriteControl records c.
func (f *FakeStore) WriteControl(c Control) error {
	if f.WriteError != nil {
		return f.WriteError
	}
	f.Writes = append(f.Writes, c)
	return nil
}
