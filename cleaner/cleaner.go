// Package cleaner normalizes clinical report text.
//
// Report impressions arrive in inconsistent shape: mixed case, missing
// whitespace after punctuation, slash-joined alternatives ("PNEUMONIA/
// bronchopneumonia"), doubled periods. Clean produces a canonical lowercase
// form that the splitter, the term index and the stats all operate on.
package cleaner

import (
	"strings"
)

// Clean normalizes a report sentence:
//
//  1. lowercase
//  2. "and/or" -> "or"
//  3. '/' between two letters -> " or " (tomatos/tomatoes -> tomatos or tomatoes)
//  4. ".." -> "."
//  5. a single space after every '.' and ','
//  6. whitespace runs collapsed to one space, leading/trailing trimmed
//
// Numeric slashes ("10/12") and slashes next to non-letters are left alone.
func Clean(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "and/or", "or")
	s = replaceSlashOr(s)
	s = strings.ReplaceAll(s, "..", ".")

	var b strings.Builder
	b.Grow(len(s) + len(s)/8)
	for _, r := range s {
		b.WriteRune(r)
		if r == '.' || r == ',' {
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// replaceSlashOr rewrites every '/' that sits between two ASCII letters as
// " or ". Both letters are kept, and a letter may serve as the right neighbor
// of one slash and the left neighbor of the next ("a/b/c" -> "a or b or c"),
// which is the lookaround behavior regexp.ReplaceAll cannot express.
func replaceSlashOr(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '/' && i > 0 && i < len(s)-1 && isLetter(s[i-1]) && isLetter(s[i+1]) {
			b.WriteString(" or ")
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Fields splits a cleaned sentence into whitespace-delimited terms with
// trailing sentence punctuation stripped. It is the tokenization used by the
// term index and the corpus stats; it is intentionally not a linguistic
// tokenizer.
func Fields(s string) []string {
	fields := strings.Fields(s)
	terms := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, ".,;:!?")
		if f != "" {
			terms = append(terms, f)
		}
	}
	return terms
}
