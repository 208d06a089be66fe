package ingestion

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Sentence is one sentence of a document with its byte offsets
type Sentence struct {
	Text  string
	Start int
	End   int
}

// SplitSentences splits text at '.', '!' or '?' followed by whitespace, and at
// newlines. Offsets are byte offsets of the trimmed sentence within text.
// Non-blank text without any boundary is returned as a single sentence.
func SplitSentences(text string) []Sentence {
	var out []Sentence
	start := 0

	emit := func(end int) {
		seg := text[start:end]
		trimmedLeft := strings.TrimLeftFunc(seg, unicode.IsSpace)
		s := start + len(seg) - len(trimmedLeft)
		trimmed := strings.TrimRightFunc(trimmedLeft, unicode.IsSpace)
		if trimmed != "" && hasLetterOrDigit(trimmed) {
			out = append(out, Sentence{Text: trimmed, Start: s, End: s + len(trimmed)})
		}
		start = end
	}

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		switch {
		case r == '\n':
			emit(i)
		case r == '.' || r == '!' || r == '?':
			next := i + size
			if next >= len(text) {
				break
			}
			nr, _ := utf8.DecodeRuneInString(text[next:])
			if unicode.IsSpace(nr) {
				emit(next)
			}
		}
		i += size
	}
	emit(len(text))

	return out
}

// WordCount returns the number of whitespace-separated words
func WordCount(text string) int {
	return len(strings.Fields(text))
}

func hasLetterOrDigit(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
