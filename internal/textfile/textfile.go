// Package textfile reads and writes the markup files the repair commands operate on.
//
// Files that use CRLF on every line are handed to callers with "\n" line
// endings. The original encoding details (UTF-8 BOM, CRLF endings) are
// remembered on the Document and restored on Write so a repair does not
// rewrite every line of a Windows-edited file. Files with mixed endings are
// passed through as they are.
package textfile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Document is a text file loaded into memory.
type Document struct {
	Path string
	Text string
	BOM  bool
	CRLF bool
}

// Read loads a file. UTF-16 input is detected by its BOM and decoded to UTF-8.
func Read(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return Decode(path, raw)
}

// Decode builds a Document from raw file bytes.
func Decode(path string, raw []byte) (*Document, error) {
	hasBOM := bytes.HasPrefix(raw, utf8BOM)

	decoder := unicode.BOMOverride(transform.Nop)
	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(raw), decoder))
	if err != nil {
		return nil, fmt.Errorf("failed to decode file %s: %w", path, err)
	}

	text := string(decoded)
	crlf := isCRLF(text)
	if crlf {
		text = strings.ReplaceAll(text, "\r\n", "\n")
	}

	return &Document{Path: path, Text: text, BOM: hasBOM, CRLF: crlf}, nil
}

// isCRLF reports whether every "\n" in text is preceded by "\r".
func isCRLF(text string) bool {
	n := strings.Count(text, "\n")
	return n > 0 && strings.Count(text, "\r\n") == n
}

// Encode renders the document back to the bytes that Write would store.
func (d *Document) Encode() []byte {
	text := d.Text
	if d.CRLF {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}
	var buf bytes.Buffer
	if d.BOM {
		buf.Write(utf8BOM)
	}
	buf.WriteString(text)
	return buf.Bytes()
}

// Lines splits the text into lines, each keeping its trailing newline.
func (d *Document) Lines() []string {
	return SplitLines(d.Text)
}

// SetLines replaces the text with the concatenation of lines.
func (d *Document) SetLines(lines []string) {
	d.Text = strings.Join(lines, "")
}

// Write stores the document at its path. When backup is set the previous
// contents are first copied to path + ".bak".
func Write(d *Document, backup bool) error {
	if backup {
		if err := Backup(d.Path); err != nil {
			return err
		}
	}
	if err := os.WriteFile(d.Path, d.Encode(), 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", d.Path, err)
	}
	return nil
}

// Backup copies path to path + ".bak", replacing any earlier backup.
func Backup(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s for backup: %w", path, err)
	}
	if err := os.WriteFile(path+".bak", data, 0644); err != nil {
		return fmt.Errorf("failed to write backup of %s: %w", path, err)
	}
	return nil
}

// SplitLines splits text after every "\n". The last element has no newline
// when the text does not end with one. Empty text yields no lines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
