package stat

import (
	"github.com/radprep/radprep/cleaner"
	"github.com/radprep/radprep/report"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumDocuments          int
	NumSentences          int
	NumTokens             int
	TokensPerSentenceMean int
	TokensPerSentenceDist map[int]int
}

func (h *Handler) Get() Stats {
	s := h.stats
	if s.NumSentences > 0 {
		s.TokensPerSentenceMean = s.NumTokens / s.NumSentences
	}
	return s
}

func NewHandler() *Handler {
	return &Handler{
		stats: Stats{TokensPerSentenceDist: map[int]int{}},
	}
}

// Aggregate adds the document's sentences to the running totals. Tokens are
// the whitespace terms of each sentence text.
func (h *Handler) Aggregate(doc report.Document) {
	h.stats.NumDocuments++
	for _, s := range doc.Sentences() {
		n := len(cleaner.Fields(s.Text))
		h.stats.NumSentences++
		h.stats.NumTokens += n
		h.stats.TokensPerSentenceDist[n]++
	}
}
