// Package diff renders line diffs of repairs for dry runs.
package diff

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

type Line struct {
	Type    string
	Text    string
	OldLine int
	NewLine int
}

type Hunk struct {
	Lines []Line
}

const (
	LineContext = "context"
	LineAdded   = "added"
	LineRemoved = "removed"
)

// DefaultContext is how many unchanged lines surround each hunk.
const DefaultContext = 3

// LineDiff compares before and after line by line.
func LineDiff(before, after string) []Line {
	dmp := diffmatchpatch.New()
	beforeChars, afterChars, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(beforeChars, afterChars, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var lines []Line
	oldLine := 1
	newLine := 1
	for _, d := range diffs {
		chunkLines := strings.Split(d.Text, "\n")
		if len(chunkLines) > 0 && chunkLines[len(chunkLines)-1] == "" {
			chunkLines = chunkLines[:len(chunkLines)-1]
		}
		for _, line := range chunkLines {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				lines = append(lines, Line{Type: LineContext, Text: line, OldLine: oldLine, NewLine: newLine})
				oldLine++
				newLine++
			case diffmatchpatch.DiffDelete:
				lines = append(lines, Line{Type: LineRemoved, Text: line, OldLine: oldLine})
				oldLine++
			case diffmatchpatch.DiffInsert:
				lines = append(lines, Line{Type: LineAdded, Text: line, NewLine: newLine})
				newLine++
			}
		}
	}
	return lines
}

// Hunks groups changed lines with up to context unchanged lines around them.
// Changes closer than 2*context lines share a hunk.
func Hunks(lines []Line, context int) []Hunk {
	if context < 0 {
		context = 0
	}

	var hunks []Hunk
	start, end := -1, -1
	flush := func() {
		if start >= 0 {
			hunks = append(hunks, Hunk{Lines: lines[start:end]})
		}
		start, end = -1, -1
	}

	for i, line := range lines {
		if line.Type == LineContext {
			continue
		}
		lo := max(i-context, 0)
		hi := min(i+context+1, len(lines))
		if start >= 0 && lo > end {
			flush()
		}
		if start < 0 {
			start = lo
		}
		end = hi
	}
	flush()
	return hunks
}

// Stats counts added and removed lines.
func Stats(lines []Line) (added, removed int) {
	for _, line := range lines {
		switch line.Type {
		case LineAdded:
			added++
		case LineRemoved:
			removed++
		}
	}
	return added, removed
}

// Render writes a unified-style diff of before and after to w. It returns
// false when the texts are identical and nothing was written.
func Render(w io.Writer, name, before, after string, context int) (bool, error) {
	if before == after {
		return false, nil
	}

	lines := LineDiff(before, after)
	if _, err := fmt.Fprintf(w, "--- %s\n+++ %s (fixed)\n", name, name); err != nil {
		return true, err
	}
	for _, h := range Hunks(lines, context) {
		if _, err := fmt.Fprintln(w, header(h)); err != nil {
			return true, err
		}
		for _, line := range h.Lines {
			prefix := " "
			switch line.Type {
			case LineAdded:
				prefix = "+"
			case LineRemoved:
				prefix = "-"
			}
			if _, err := fmt.Fprintf(w, "%s%s\n", prefix, line.Text); err != nil {
				return true, err
			}
		}
	}
	return true, nil
}

func header(h Hunk) string {
	oldStart, newStart := 0, 0
	oldCount, newCount := 0, 0
	for _, line := range h.Lines {
		if line.OldLine > 0 {
			if oldStart == 0 {
				oldStart = line.OldLine
			}
			oldCount++
		}
		if line.NewLine > 0 {
			if newStart == 0 {
				newStart = line.NewLine
			}
			newCount++
		}
	}
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", oldStart, oldCount, newStart, newCount)
}
