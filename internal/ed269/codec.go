package ed269

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/woozymasta/uaszones/internal/geo"
)

// ErrFileFormat marks input that is not a valid zone feature collection.
var ErrFileFormat = errors.New("invalid feature collection")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load reads an ED-269 dataset from disk.
func Load(path string) (*Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// Decode parses an ED-269 dataset. Authority exports are often prefixed
// with a UTF-8 BOM, which is stripped before decoding.
func Decode(data []byte) (*Collection, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	var c Collection
	if err := json.Unmarshal(data, &c); err != nil {
		if errors.Is(err, geo.ErrInvalidInput) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrFileFormat, err)
	}

	return &c, nil
}

// Save writes the collection compactly with a line break between features,
// matching the diff-friendly layout of the authority tooling.
func Save(path string, c *Collection) error {
	data, err := Encode(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Encode marshals the collection to its on-disk form.
func Encode(c *Collection) ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}

	return bytes.ReplaceAll(data, []byte("},{"), []byte("},\n{")), nil
}
