// Package diff renders unified diffs between expected and freshly
// compiled stylesheet text, for drift checks against files on disk.
package diff

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	maxLines        = 10000
	truncateMessage = "... (diff truncated, exceeds 10000 lines) ..."
)

// Unified compares two documents and renders a unified-style diff.
// Returns the empty string when the contents are identical. Oversized
// diffs are truncated with a marker line.
func Unified(expected, actual []byte, expectedLabel, actualLabel string) string {
	if bytes.Equal(expected, actual) {
		return ""
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(expected), string(actual), false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var buf strings.Builder
	fmt.Fprintf(&buf, "--- %s\n", expectedLabel)
	fmt.Fprintf(&buf, "+++ %s\n", actualLabel)

	lineCount := 0
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}

		for _, line := range splitLines(d.Text) {
			if lineCount >= maxLines {
				buf.WriteString(truncateMessage)
				buf.WriteString("\n")
				return buf.String()
			}
			buf.WriteString(prefix)
			buf.WriteString(line)
			buf.WriteString("\n")
			lineCount++
		}
	}

	return buf.String()
}

// splitLines drops the empty trailing element a newline-terminated text
// produces.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" && strings.HasSuffix(text, "\n") {
		lines = lines[:len(lines)-1]
	}
	return lines
}
