package compile

import "strings"

// Minify normalizes style text whitespace: newlines and runs of spaces
// collapse to single spaces, spaces around structural punctuation drop,
// and semicolons before closing braces drop. Minifying already-minified
// text returns it unchanged.
func Minify(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	pendingSpace := false
	for _, r := range text {
		if r == '\n' || r == '\t' || r == ' ' {
			pendingSpace = true
			continue
		}
		if pendingSpace {
			if b.Len() > 0 && !boundaryRune(lastRune(&b)) && !boundaryRune(r) {
				b.WriteByte(' ')
			}
			pendingSpace = false
		}
		if r == '}' {
			trimTrailingSemicolon(&b)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// boundaryRune reports punctuation that needs no adjacent whitespace.
func boundaryRune(r rune) bool {
	switch r {
	case '{', '}', ';', ':', ',':
		return true
	}
	return false
}

func lastRune(b *strings.Builder) rune {
	s := b.String()
	if s == "" {
		return 0
	}
	return rune(s[len(s)-1])
}

func trimTrailingSemicolon(b *strings.Builder) {
	s := b.String()
	if strings.HasSuffix(s, ";") {
		b.Reset()
		b.WriteString(s[:len(s)-1])
	}
}
