package braces

import (
	"strings"
)

// LineFix describes what FixLines did.
type LineFix struct {
	Report  Report
	Removed int // lone closers deleted
	Added   int // closers appended
	Missing int // excess closers that had no lone-closer line to delete
}

// Changed reports whether the fix modified the lines.
func (f LineFix) Changed() bool {
	return f.Removed > 0 || f.Added > 0
}

// FixLines audits lines and balances them. Excess closers are fixed by
// deleting lone "}" lines from the end of the file; missing closers are
// appended as "}" lines. Lines keep their trailing newlines.
func FixLines(lines []string) ([]string, LineFix) {
	fix := LineFix{Report: Audit(lines)}
	depth := fix.Report.Depth

	switch {
	case depth < 0:
		out, removed := RemoveTrailingClosers(lines, -depth)
		fix.Removed = removed
		fix.Missing = -depth - removed
		return out, fix
	case depth > 0:
		out := append([]string(nil), lines...)
		if n := len(out); n > 0 && !strings.HasSuffix(out[n-1], "\n") {
			out[n-1] += "\n"
		}
		for i := 0; i < depth; i++ {
			out = append(out, Close+"\n")
		}
		fix.Added = depth
		return out, fix
	default:
		return lines, fix
	}
}

// TextFix describes what FixText did.
type TextFix struct {
	Opens   int
	Closes  int
	Removed int
	Added   int
	Missing int
}

// Difference is opens minus closes before the fix.
func (f TextFix) Difference() int {
	return f.Opens - f.Closes
}

// FixText balances text using whole-file counts. Excess closers are fixed by
// deleting lone "}" lines from the end; missing closers are appended after a
// line break, one "}" per line.
func FixText(text string) (string, TextFix) {
	opens, closes := Count(text)
	fix := TextFix{Opens: opens, Closes: closes}

	switch {
	case closes > opens:
		diff := closes - opens
		lines, removed := RemoveTrailingClosers(strings.Split(text, "\n"), diff)
		fix.Removed = removed
		fix.Missing = diff - removed
		return strings.Join(lines, "\n"), fix
	case opens > closes:
		diff := opens - closes
		fix.Added = diff
		return text + "\n" + strings.Repeat(Close+"\n", diff), fix
	default:
		return text, fix
	}
}
