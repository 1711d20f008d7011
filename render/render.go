package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/radprep/radprep/cleaner"
	"github.com/radprep/radprep/storage"
)

const Defaultformat = "all"

var (
	Black   = "\033[1;30m"
	Red     = "\033[1;31m"
	Green   = "\033[1;32m"
	Yellow  = "\033[0;33m"
	Purple  = "\033[1;34m"
	Magenta = "\033[1;35m"
	Teal    = "\033[1;36m"
	Gray    = "\033[0;37m"
	White   = "\033[1;37m"
	Off     = "\033[0m"

	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
	Green256  = "\033[1;38;5;70m"
	ClearLine = "\033[K"
)

func SupportedFormats() []string {
	return []string{"all", "terms", "json"}
}

// Renderer writes sentence hits as text.
//
// Formats:
//
//	all:   print the whole sentence, matched terms highlighted
//	terms: print only the matched terms
//	json:  print one JSON object per hit
type Renderer struct {
	Out io.Writer

	HasColor  bool
	HasPrefix bool
	Format    string

	json *JSONRenderer
}

// NewRenderer creates a text renderer writing to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{Out: w, Format: Defaultformat, json: NewJSONRenderer(w)}
}

// NextFormat cycles to the next supported format. Bound to a prompt key in
// the query command.
func (r *Renderer) NextFormat() {
	formats := SupportedFormats()
	for i, f := range formats {
		if f == r.Format {
			r.Format = formats[(i+1)%len(formats)]
			return
		}
	}
	r.Format = formats[0]
}

// NextPrefix toggles the document prefix on and off.
func (r *Renderer) NextPrefix() {
	r.HasPrefix = !r.HasPrefix
}

// Hit renders one sentence hit with the given search terms marked.
func (r *Renderer) Hit(hit storage.SentenceHit, terms []string) {
	var text string
	switch r.Format {
	case "json":
		_ = r.json.Hit(hit)
		return
	case "terms":
		text = strings.Join(matchedTerms(hit.Sentence.Text, terms), " ")
	default:
		text = r.highlight(hit.Sentence.Text, terms)
	}

	prefix := ""
	if r.HasPrefix {
		prefix = r.buildPrefix(hit)
	}

	fmt.Fprintf(r.Out, "%s%s\n", prefix, strings.ReplaceAll(text, "\n", " "))
}

// Sentence renders a single sentence text with a caller-built prefix.
func (r *Renderer) Sentence(text, prefix string) {
	fmt.Fprintf(r.Out, "%s%s\n", prefix, strings.ReplaceAll(text, "\n", " "))
}

func (r *Renderer) buildPrefix(hit storage.SentenceHit) string {
	prefix := fmt.Sprintf("📖 %d-%d %s ", hit.DocId, hit.SentenceId, hit.DocName)
	if len(hit.Labels) > 0 {
		prefix += "[" + strings.Join(hit.Labels, ",") + "] "
	}
	if r.HasColor {
		return Grey256 + prefix + Off
	}
	return prefix
}

// highlight colors every whitespace field of text whose cleaned form equals
// one of the terms.
func (r *Renderer) highlight(text string, terms []string) string {
	if !r.HasColor || len(terms) == 0 {
		return text
	}

	fields := strings.Fields(text)
	for i, f := range fields {
		if isTerm(f, terms) {
			fields[i] = Green256 + f + Off
		}
	}
	return strings.Join(fields, " ")
}

func matchedTerms(text string, terms []string) []string {
	var matched []string
	for _, f := range strings.Fields(text) {
		if isTerm(f, terms) {
			matched = append(matched, strings.Trim(f, ".,;:!?"))
		}
	}
	return matched
}

func isTerm(field string, terms []string) bool {
	cleaned := cleaner.Fields(cleaner.Clean(field))
	for _, c := range cleaned {
		for _, t := range terms {
			if c == t {
				return true
			}
		}
	}
	return false
}
