package storage

import (
	"github.com/radprep/radprep/report"
)

// Cursor for paginated sentence queries
type Cursor int64

// SentenceHit is one sentence returned by a term search, with enough
// document context to render it.
type SentenceHit struct {
	DocId      int             `json:"doc_id"`
	DocName    string          `json:"doc_name"`
	Labels     []string        `json:"labels,omitempty"`
	SentenceId int             `json:"sentence_id"`
	Sentence   report.Sentence `json:"sentence"`
}

// ReportReader defines read operations for report storage
type ReportReader interface {
	// List returns the metadata (Id, Name, Labels) of documents.
	// If labelMatch is not empty, only documents with at least one label containing the string are returned.
	// Passages are not loaded.
	List(labelMatch string) ([]report.Document, error)

	// Read returns a document with its passages and sentences by ID
	Read(id int) (report.Document, error)

	// Labels returns all unique labels found across all documents, sorted alphabetically.
	// If pattern is not empty, only labels containing the pattern are returned.
	Labels(pattern string) ([]string, error)

	// FindSentences streams sentences containing ALL given terms, restricted
	// to documents carrying ALL given labels, resuming after the cursor.
	// It calls fn for each hit and returns the new cursor.
	FindSentences(terms []string, labels []string, after Cursor, limit int, fn func(SentenceHit) error) (Cursor, error)
}

// ReportWriter defines write operations for report storage
type ReportWriter interface {
	// Write persists a document with its sentences and term index
	Write(doc report.Document) error
}

// ReportRepository combines read and write operations
type ReportRepository interface {
	ReportReader
	ReportWriter
}
