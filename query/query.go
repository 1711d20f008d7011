package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/radprep/radprep/render"
	"github.com/radprep/radprep/storage"

	"github.com/c-bata/go-prompt"
)

const (
	// labelPrefix is the character in the prompt that prefixes a label filter
	labelPrefix = "/"

	// batchSize is the number of candidates fetched per storage call
	batchSize = 500
)

// Handler is the interactive sentence search over a report repository.
// Input terms have AND semantics; tokens starting with '/' restrict the
// search to reports carrying that label.
type Handler struct {
	Repo     storage.ReportReader
	Renderer *render.Renderer

	// Limit caps the number of hits rendered per query.
	Limit int
}

func NewHandler(repo storage.ReportReader, r *render.Renderer) *Handler {
	return &Handler{
		Repo:     repo,
		Renderer: r,
		Limit:    2000,
	}
}

func (h *Handler) Run() error {

	fmt.Println("🔑 Ctrl+X: Toggle prefix, Ctrl+F: next Format, type quit to exit")

	labels, err := h.Repo.Labels("")
	if err != nil {
		return err
	}

	history := []string{}

	for {

		in := prompt.Input("      🔖 ", h.completer(labels),
			prompt.OptionTitle("radprep query"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlF,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextFormat()
					fmt.Println("Format set to: " + h.Renderer.Format)
				}}),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextPrefix()
					fmt.Println("Prefix set to " + fmt.Sprintf("%t", h.Renderer.HasPrefix))
				}}),
		)

		if in == "quit" {
			return nil
		}

		history = append(history, in)

		terms, labelFilter, err := Parse(in)
		if err != nil {
			continue
		}

		if err := h.Search(terms, labelFilter); err != nil {
			fmt.Printf("Error searching: %v\n", err)
		}
	}
}

// Search streams matching sentences to the renderer, paginating through the
// repository cursor until the limit is reached or the results run out.
func (h *Handler) Search(terms, labels []string) error {
	cursor := storage.Cursor(0)
	fetched := 0

	for {
		newCursor, err := h.Repo.FindSentences(terms, labels, cursor, batchSize, func(hit storage.SentenceHit) error {
			fetched++
			h.Renderer.Hit(hit, terms)
			return nil
		})
		if err != nil {
			return err
		}
		if newCursor == cursor {
			return nil
		}
		if fetched >= h.Limit {
			return nil
		}
		cursor = newCursor
	}
}

// Parse splits prompt input into search terms and label filters. A token
// starting with '/' is a label filter, everything else a term. Terms are
// matched lowercase against the cleaned sentence index.
func Parse(in string) (terms []string, labels []string, err error) {
	tokens := strings.Fields(in)
	if len(tokens) == 0 {
		return nil, nil, errors.New("no search terms given")
	}

	for _, tok := range tokens {
		if strings.HasPrefix(tok, labelPrefix) {
			// Multi-word labels arrive underscore-joined so they survive
			// the whitespace split: /Pleural_Effusion.
			label := strings.ReplaceAll(strings.TrimPrefix(tok, labelPrefix), "_", " ")
			if label != "" {
				labels = append(labels, label)
			}
			continue
		}
		terms = append(terms, strings.ToLower(tok))
	}

	if len(terms) == 0 {
		return nil, nil, errors.New("label filters need at least one search term")
	}
	return terms, labels, nil
}

func (h *Handler) completer(labels []string) func(in prompt.Document) []prompt.Suggest {
	return func(in prompt.Document) []prompt.Suggest {

		s := []prompt.Suggest{}
		word := in.GetWordBeforeCursor()
		if word == "" {
			return s
		}

		// A '/' word completes to a label filter.
		if strings.HasPrefix(word, labelPrefix) {
			s = append(s, labelSuggestions(labels, word)...)
		}

		return s
	}
}

// labelSuggestions completes a /label word. Spaces in label names become
// underscores so the suggested token stays a single prompt word.
func labelSuggestions(labels []string, word string) []prompt.Suggest {
	partial := strings.TrimPrefix(word, labelPrefix)

	var s []prompt.Suggest
	for _, l := range labels {
		safe := strings.ReplaceAll(l, " ", "_")
		if strings.HasPrefix(safe, partial) {
			s = append(s, prompt.Suggest{Text: labelPrefix + safe, Description: "🔖 label"})
		}
	}
	return s
}
