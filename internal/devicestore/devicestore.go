package devicestore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"bakery-be/internal/cart"
)

var keyRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

var ErrInvalidKey = errors.New("invalid storage key")

// FileStorage keeps one JSON document per key inside a device directory.
type FileStorage struct {
	dir string
}

func New(root, deviceID string) (*FileStorage, error) {
	if !cart.ValidDeviceID(deviceID) {
		return nil, cart.ErrInvalidDeviceID
	}
	dir := filepath.Join(root, deviceID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create device dir: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

// Opener returns a cart.StorageOpener rooted at root.
func Opener(root string) cart.StorageOpener {
	return func(deviceID string) (cart.Storage, error) {
		return New(root, deviceID)
	}
}

func (f *FileStorage) path(key string) (string, error) {
	if !keyRegex.MatchString(key) {
		return "", ErrInvalidKey
	}
	return filepath.Join(f.dir, key+".json"), nil
}

func (f *FileStorage) Load(key string) ([]byte, error) {
	p, err := f.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// Save writes through a temp file and renames it so readers never see a partial document.
func (f *FileStorage) Save(key string, data []byte) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("rename %s: %w", key, err)
	}
	return nil
}
