// Package split segments report text into sentences with byte offsets,
// producing the passage/sentence shape the rest of the toolkit consumes.
package split

import (
	"strings"
	"unicode"

	"github.com/radprep/radprep/report"
)

// Splitter segments text into sentences. The zero value splits on sentence
// punctuation only; with Newline set, a line break also ends a sentence,
// which suits report impressions where findings are listed one per line.
type Splitter struct {
	Newline bool
}

// Split returns the sentences of text with their byte offsets. A '.', '!'
// or '?' ends a sentence when followed by whitespace or end of text; a '.'
// surrounded by digits ("3.5 cm") does not. Leading and trailing whitespace
// is trimmed from each sentence, and offsets point at the first kept byte.
func (s *Splitter) Split(text string) []report.Sentence {
	var sentences []report.Sentence
	start := 0

	flush := func(end int) {
		raw := text[start:end]
		trimmed := strings.TrimSpace(raw)
		if trimmed != "" {
			offset := start + strings.Index(raw, trimmed)
			sentences = append(sentences, report.Sentence{Offset: offset, Text: trimmed})
		}
		start = end
	}

	for i := 0; i < len(text); i++ {
		c := text[i]

		if s.Newline && c == '\n' {
			flush(i)
			start = i + 1
			continue
		}

		if c != '.' && c != '!' && c != '?' {
			continue
		}
		if c == '.' && isDigit(byteAt(text, i-1)) && isDigit(byteAt(text, i+1)) {
			continue
		}
		if i+1 < len(text) && !unicode.IsSpace(rune(text[i+1])) {
			continue
		}
		flush(i + 1)
	}
	flush(len(text))

	return sentences
}

// Document builds a report document from raw text: one passage at offset 0
// holding the split sentences.
func (s *Splitter) Document(id int, name, text string) report.Document {
	return report.Document{
		Id:   id,
		Name: name,
		Passages: []report.Passage{
			{Offset: 0, Text: text, Sentences: s.Split(text)},
		},
	}
}

func byteAt(s string, i int) byte {
	if i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
