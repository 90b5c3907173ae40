package profile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Write encodes a profile as indented JSON and writes it to w.
// The output can be re-imported with [Read] for round-trip processing.
func Write(w io.Writer, root *Frame) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes a profile to a JSON file at path.
// This is a convenience wrapper around [Write] for file-based output.
func WriteFile(path string, root *Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(f, root)
}
