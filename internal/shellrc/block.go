// Package shellrc maintains the generated claude function inside shell startup
// files the user otherwise owns.
//
// A generated block starts at a fixed marker line and ends at the first
// following line equal to the dialect's terminator. Everything outside the
// block is left byte-for-byte alone.
package shellrc

import "strings"

// Marker identifies the block this tool owns inside a shell config file
const Marker = "# Added by claude-code-plus for shell alias"

// Rewriter finds, removes and inserts one marker-delimited block
type Rewriter struct {
	Marker     string
	Terminator string
}

// Has reports whether content contains the marker. A Rewriter without a
// marker never finds a block.
func (r Rewriter) Has(content string) bool {
	return r.Marker != "" && strings.Contains(content, r.Marker)
}

// Remove deletes every generated block together with the blank separator line
// Insert put in front of it. Content without a block is returned unchanged.
func (r Rewriter) Remove(content string) string {
	for {
		start, end, ok := r.locate(content)
		if !ok {
			return content
		}
		content = content[:start] + content[end:]
	}
}

// Insert appends block after a blank separator line. It does not look for an
// existing block; use Upsert to replace one.
func (r Rewriter) Insert(content, block string) string {
	sep := "\n\n"
	if strings.HasSuffix(content, "\n") {
		sep = "\n"
	}
	return content + sep + block
}

// Upsert replaces the generated block with block, or appends it when there is
// none. updated reports whether a previous block was replaced.
func (r Rewriter) Upsert(content, block string) (result string, updated bool) {
	if r.Has(content) {
		content = r.Remove(content)
		updated = true
	}
	return r.Insert(content, block), updated
}

// locate returns the byte range of the first block. When no terminator line
// follows the marker only the marker line is covered.
func (r Rewriter) locate(content string) (start, end int, ok bool) {
	if r.Marker == "" {
		return 0, 0, false
	}
	idx := strings.Index(content, r.Marker)
	if idx < 0 {
		return 0, 0, false
	}

	markerEnd := lineEnd(content, idx)
	end = markerEnd
	for pos := markerEnd; pos < len(content); {
		next := lineEnd(content, pos)
		if strings.TrimRight(content[pos:next], " \t\r\n") == r.Terminator {
			end = next
			break
		}
		pos = next
	}

	start = idx
	if start > 0 && content[start-1] == '\n' && (start == 1 || content[start-2] == '\n') {
		start--
	}
	return start, end, true
}

// lineEnd returns the offset just past the newline ending the line at pos
func lineEnd(content string, pos int) int {
	if i := strings.IndexByte(content[pos:], '\n'); i >= 0 {
		return pos + i + 1
	}
	return len(content)
}
