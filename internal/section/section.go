// Package section rebuilds the favorites list template of app_window.slint.
package section

import (
	_ "embed"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/quickfindr/devtool/internal/braces"
)

// StartMarker opens the favorites loop in the markup.
const StartMarker = "for fav in root.favorites : Rectangle {"

// anchorIndent is the indentation of the closing brace that follows the
// rebuilt section in the anchored layout.
const anchorIndent = 28

//go:embed favorites_row.slint
var favoritesRow string

var (
	ErrSectionNotFound     = errors.New("favorites section not found")
	ErrSectionUnterminated = errors.New("end of favorites section not found")
)

var (
	// group 1: loop header through the row layout opener, 2: row body, 3: closers
	bodyPattern = regexp.MustCompile(`(?s)(for fav in root\.favorites : Rectangle \{[^}]*?\n\s+HorizontalLayout \{)(.*?)(\n\s+\}\n\s+\})`)

	// group 1: the separator comment block that follows the section
	anchoredPattern = regexp.MustCompile(`(?s)for fav in root\.favorites : Rectangle \{.*?(\n\s+\}\s+\n\s+// Séparateur)`)
)

// Block returns the complete favorites loop, indented for its place in the
// file and ending with a newline.
func Block() string {
	return favoritesRow
}

// AnchoredBlock returns the favorites loop as it is spliced in front of the
// separator comment: no leading indentation, followed by the indentation of
// the next closing brace.
func AnchoredBlock() string {
	return strings.TrimLeft(favoritesRow, " ") + strings.Repeat(" ", anchorIndent)
}

// RowBody returns the contents of the row's HorizontalLayout up to the end of
// the row's TouchArea, starting with a newline.
func RowBody() string {
	start := strings.Index(favoritesRow, "HorizontalLayout {") + len("HorizontalLayout {")
	end := strings.LastIndex(strings.TrimRight(favoritesRow, "\n"), "\n")
	return favoritesRow[start:end]
}

// ReplaceBody rewrites the row body of every favorites loop in text, keeping
// the loop header and the closing braces it matched. It returns the new text
// and the number of rewritten loops.
func ReplaceBody(text string) (string, int) {
	matches := bodyPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, 0
	}

	body := RowBody()
	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m[0]])
		b.WriteString(text[m[2]:m[3]])
		b.WriteString(body)
		b.WriteString(text[m[6]:m[7]])
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String(), len(matches)
}

// RebuildAnchored replaces everything from the loop header up to the
// separator comment block with AnchoredBlock.
func RebuildAnchored(text string) (string, int) {
	matches := anchoredPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, 0
	}

	block := AnchoredBlock()
	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m[0]])
		b.WriteString(block)
		// the anchor is kept as-is
		b.WriteString(text[m[2]:m[3]])
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String(), len(matches)
}

// Span is a zero-based, inclusive line range.
type Span struct {
	Start int
	End   int
}

// Find locates the favorites loop: the first line containing StartMarker,
// through the line where the brace depth counted from it returns to zero.
func Find(lines []string) (Span, error) {
	start := -1
	for i, line := range lines {
		if strings.Contains(line, StartMarker) {
			start = i
			break
		}
	}
	if start < 0 {
		return Span{}, ErrSectionNotFound
	}

	end, ok := braces.BlockEnd(lines, start)
	if !ok {
		return Span{}, fmt.Errorf("%w (starts at line %d)", ErrSectionUnterminated, start+1)
	}
	return Span{Start: start, End: end}, nil
}

// RebuildByDepth replaces the lines of the favorites loop with Block.
func RebuildByDepth(lines []string) ([]string, Span, error) {
	span, err := Find(lines)
	if err != nil {
		return nil, Span{}, err
	}

	out := make([]string, 0, len(lines)-(span.End-span.Start))
	out = append(out, lines[:span.Start]...)
	out = append(out, Block())
	out = append(out, lines[span.End+1:]...)
	return out, span, nil
}
