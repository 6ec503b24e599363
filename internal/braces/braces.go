// Package braces counts and balances curly-brace nesting in markup text.
//
// Braces are counted as raw characters. String literals and comments are not
// special, which is good enough for the Slint files this tool repairs.
package braces

import (
	"strings"
)

const (
	Open  = "{"
	Close = "}"

	// PreviewWidth is how much of an offending line a report keeps.
	PreviewWidth = 50
)

// Imbalance records a line after which the running depth was negative.
type Imbalance struct {
	Line    int // 1-based
	Preview string
	Depth   int
}

// Report is the result of a per-line audit.
type Report struct {
	Depth      int // final depth; positive means missing closers
	Imbalances []Imbalance
}

// Balanced reports whether the audited text ends at depth zero.
func (r Report) Balanced() bool {
	return r.Depth == 0
}

// Delta returns the nesting change contributed by s.
func Delta(s string) int {
	return strings.Count(s, Open) - strings.Count(s, Close)
}

// Count returns the number of opening and closing braces in text.
func Count(text string) (opens, closes int) {
	return strings.Count(text, Open), strings.Count(text, Close)
}

// Audit walks lines tracking nesting depth and records every line after which
// the depth is below zero.
func Audit(lines []string) Report {
	var r Report
	for i, line := range lines {
		r.Depth += Delta(line)
		if r.Depth < 0 {
			r.Imbalances = append(r.Imbalances, Imbalance{
				Line:    i + 1,
				Preview: preview(line),
				Depth:   r.Depth,
			})
		}
	}
	return r
}

func preview(line string) string {
	r := []rune(strings.TrimSpace(line))
	if len(r) > PreviewWidth {
		r = r[:PreviewWidth]
	}
	return string(r)
}

// IsLoneCloser reports whether a line holds nothing but a closing brace.
func IsLoneCloser(line string) bool {
	return strings.TrimSpace(line) == Close
}

// RemoveTrailingClosers deletes up to n lone closing-brace lines, each time
// taking the last one in the slice. It returns the new slice and how many
// lines were removed, which is less than n when the file runs out of them.
func RemoveTrailingClosers(lines []string, n int) ([]string, int) {
	out := append([]string(nil), lines...)
	removed := 0
	for removed < n {
		idx := -1
		for j := len(out) - 1; j >= 0; j-- {
			if IsLoneCloser(out[j]) {
				idx = j
				break
			}
		}
		if idx < 0 {
			break
		}
		out = append(out[:idx], out[idx+1:]...)
		removed++
	}
	return out, removed
}

// BlockEnd returns the index of the line that closes the block opened at
// start: the first line after start where the depth counted from start,
// inclusive, returns to zero.
func BlockEnd(lines []string, start int) (int, bool) {
	if start < 0 || start >= len(lines) {
		return 0, false
	}
	depth := 0
	for i := start; i < len(lines); i++ {
		depth += Delta(lines[i])
		if depth == 0 && i > start {
			return i, true
		}
	}
	return 0, false
}
