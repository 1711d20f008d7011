package filesystem

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/radprep/radprep/cleaner"
	"github.com/radprep/radprep/report"
	"github.com/radprep/radprep/storage"
)

// Store keeps one JSON file per report document in a directory. Documents
// are listed from the directory and loaded into memory on demand.
type Store struct {
	dir string

	// In-memory cache, indexed by document id.
	docs   []report.Document
	loaded []bool
}

var _ storage.ReportRepository = (*Store)(nil)

// NewStore creates a filesystem report store over dir. Document ids are the
// positions of the JSON files in name order.
func NewStore(dir string) (*Store, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var docs []report.Document
	for _, file := range files {
		if filepath.Ext(file.Name()) != ".json" {
			continue
		}
		docs = append(docs, report.Document{
			Id:   len(docs),
			Name: strings.TrimSuffix(file.Name(), ".json"),
		})
	}

	return &Store{
		dir:    dir,
		docs:   docs,
		loaded: make([]bool, len(docs)),
	}, nil
}

// Preload loads every document into memory, reporting progress through cb.
func (h *Store) Preload(cb func(current, total int, name string)) error {
	for i := range h.docs {
		if cb != nil {
			cb(i+1, len(h.docs), h.docs[i].Name)
		}
		if err := h.load(i); err != nil {
			return err
		}
	}
	return nil
}

func (h *Store) load(id int) error {
	if h.loaded[id] {
		return nil
	}
	doc, err := ReadDocument(filepath.Join(h.dir, h.docs[id].Name+".json"))
	if err != nil {
		return err
	}
	doc.Id = id
	doc.Name = h.docs[id].Name
	h.docs[id] = doc
	h.loaded[id] = true
	return nil
}

func (h *Store) List(labelMatch string) ([]report.Document, error) {
	var out []report.Document
	for i := range h.docs {
		if err := h.load(i); err != nil {
			return nil, err
		}
		doc := h.docs[i]
		if labelMatch != "" && !hasLabelMatch(doc.Labels, labelMatch) {
			continue
		}
		out = append(out, report.Document{Id: doc.Id, Name: doc.Name, Labels: doc.Labels})
	}
	return out, nil
}

func (h *Store) Read(id int) (report.Document, error) {
	if id < 0 || id >= len(h.docs) {
		return report.Document{}, fmt.Errorf("document id out of range: %d", id)
	}
	if err := h.load(id); err != nil {
		return report.Document{}, err
	}
	return h.docs[id], nil
}

func (h *Store) Labels(pattern string) ([]string, error) {
	seen := map[string]bool{}
	for i := range h.docs {
		if err := h.load(i); err != nil {
			return nil, err
		}
		for _, l := range h.docs[i].Labels {
			if pattern == "" || strings.Contains(l, pattern) {
				seen[l] = true
			}
		}
	}

	labels := make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels, nil
}

// FindSentences scans the in-memory documents in id order. The returned
// cursor packs the position after the last delivered hit, so a scan cut
// short by the limit resumes at the next sentence. An unchanged cursor
// means the scan is exhausted.
func (h *Store) FindSentences(terms []string, labels []string, after storage.Cursor, limit int, fn func(storage.SentenceHit) error) (storage.Cursor, error) {
	startDoc, startSent := unpackCursor(after)
	cursor := after

	count := 0
	for i := startDoc; i < len(h.docs); i++ {
		if err := h.load(i); err != nil {
			return cursor, err
		}
		doc := h.docs[i]
		if !hasAllLabels(doc.Labels, labels) {
			continue
		}

		sentences := doc.Sentences()
		first := 0
		if i == startDoc {
			first = startSent
		}
		for sentId := first; sentId < len(sentences); sentId++ {
			s := sentences[sentId]
			if !containsAllTerms(s.Text, terms) {
				continue
			}
			hit := storage.SentenceHit{
				DocId:      doc.Id,
				DocName:    doc.Name,
				Labels:     doc.Labels,
				SentenceId: sentId,
				Sentence:   s,
			}
			if err := fn(hit); err != nil {
				return cursor, err
			}
			cursor = packCursor(i, sentId+1)
			count++
			if limit > 0 && count >= limit {
				return cursor, nil
			}
		}
	}

	return cursor, nil
}

// packCursor encodes a scan position: document index in the high 32 bits,
// the next sentence index to visit in the low 32.
func packCursor(doc, nextSent int) storage.Cursor {
	return storage.Cursor(int64(doc)<<32 | int64(nextSent))
}

func unpackCursor(c storage.Cursor) (doc, sent int) {
	return int(int64(c) >> 32), int(int64(c) & 0xffffffff)
}

func (h *Store) Write(doc report.Document) error {
	if doc.Name == "" {
		return fmt.Errorf("document has no name")
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(h.dir, doc.Name+".json"), data, 0644); err != nil {
		return err
	}

	doc.Id = len(h.docs)
	h.docs = append(h.docs, doc)
	h.loaded = append(h.loaded, true)
	return nil
}

// ReadDocument reads a single report document JSON from the given path.
func ReadDocument(path string) (report.Document, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return report.Document{}, fmt.Errorf("IO error: %w", err)
	}

	var doc report.Document
	if err := json.Unmarshal(f, &doc); err != nil {
		return report.Document{}, fmt.Errorf("JSON decoding error: %w", err)
	}

	return doc, nil
}

func hasLabelMatch(labels []string, match string) bool {
	for _, l := range labels {
		if strings.Contains(l, match) {
			return true
		}
	}
	return false
}

// hasAllLabels reports whether every wanted label has a document label
// containing it, so a prompt filter like /Pleural matches "Pleural Effusion".
func hasAllLabels(labels []string, wanted []string) bool {
	for _, w := range wanted {
		found := false
		for _, l := range labels {
			if strings.Contains(l, w) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func containsAllTerms(text string, terms []string) bool {
	fields := cleaner.Fields(cleaner.Clean(text))
	for _, term := range terms {
		found := false
		for _, f := range fields {
			if f == term {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
