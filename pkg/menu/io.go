package menu

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Menu Serialization API
// =============================================================================

// Marshal converts a menu to indented JSON.
func Marshal(m Menu) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(m, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a menu from JSON.
func Unmarshal(data []byte) (Menu, error) {
	return Read(bytes.NewReader(data))
}

// Write encodes a menu as JSON to w.
func Write(m Menu, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Read decodes a menu from r.
func Read(r io.Reader) (Menu, error) {
	var m Menu
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return Menu{}, fmt.Errorf("decode: %w", err)
	}
	return m, nil
}

// WriteFile writes a menu to a JSON file.
func WriteFile(m Menu, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(m, f)
}

// ReadFile reads a menu from a JSON file.
func ReadFile(path string) (Menu, error) {
	f, err := os.Open(path)
	if err != nil {
		return Menu{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
