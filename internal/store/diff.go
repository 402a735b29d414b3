package store

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is how many unchanged lines are kept around each change
const contextLines = 2

// UnifiedDiff renders a line diff between before and after with file headers.
// Long unchanged runs are collapsed. Returns "" when the texts are equal.
func UnifiedDiff(path, before, after string) string {
	if before == after {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- %s\n", path)
	fmt.Fprintf(&builder, "+++ %s\n", path)

	for i, d := range diffs {
		lines := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			writePrefixed(&builder, "+", lines)
		case diffmatchpatch.DiffDelete:
			writePrefixed(&builder, "-", lines)
		case diffmatchpatch.DiffEqual:
			writeContext(&builder, lines, i > 0, i < len(diffs)-1)
		}
	}

	return builder.String()
}

func writeContext(b *strings.Builder, lines []string, hasBefore, hasAfter bool) {
	head, tail := 0, 0
	if hasBefore {
		head = contextLines
	}
	if hasAfter {
		tail = contextLines
	}
	if head+tail >= len(lines) {
		writePrefixed(b, " ", lines)
		return
	}

	writePrefixed(b, " ", lines[:head])
	fmt.Fprintf(b, "@@ %d unchanged lines @@\n", len(lines)-head-tail)
	writePrefixed(b, " ", lines[len(lines)-tail:])
}

func writePrefixed(b *strings.Builder, prefix string, lines []string) {
	for _, line := range lines {
		b.WriteString(prefix)
		b.WriteString(line)
		b.WriteString("\n")
	}
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
