package utils

import (
	"bytes"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// jsonStyle indents with two spaces and keeps every array expanded, one
// element per line. Key order is never changed.
var jsonStyle = &pretty.Options{Indent: "  ", Width: 0}

// LoadJSON reads a JSON file and checks that it is well formed. The bytes
// are returned as they are so callers can edit parts of the document in
// place without losing keys they do not know about.
func LoadJSON(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("failed to unmarshal JSON from %s: invalid JSON", path)
	}
	return data, nil
}

// FormatJSON re-indents a document with two spaces and no trailing newline.
// Strings and numbers are copied byte for byte.
func FormatJSON(data []byte) []byte {
	return bytes.TrimRight(pretty.PrettyOptions(data, jsonStyle), "\n")
}

// SaveJSON formats the document and writes it to a JSON file.
func SaveJSON(path string, data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("failed to marshal data: invalid JSON")
	}
	if err := os.WriteFile(path, FormatJSON(data), 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}
