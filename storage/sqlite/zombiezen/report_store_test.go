package zombiezen

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/radprep/radprep/report"
	"github.com/radprep/radprep/split"
	"github.com/radprep/radprep/storage"
)

func testStore(t *testing.T) *ReportStore {
	t.Helper()

	pool, err := NewPool(filepath.Join(t.TempDir(), "reports.db"))
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	t.Cleanup(func() { pool.Close() })

	if err := CreateReportTables(pool); err != nil {
		t.Fatalf("CreateReportTables: %v", err)
	}

	store := NewReportStore(pool)

	var sp split.Splitter
	docs := []report.Document{
		sp.Document(0, "r001", "no acute cardiopulmonary process."),
		sp.Document(0, "r002", "moderate cardiomegaly. small left pleural effusion."),
		sp.Document(0, "r003", "patchy opacity concerning for pneumonia."),
	}
	docs[1].Labels = []string{"Cardiomegaly", "Pleural Effusion"}
	docs[2].Labels = []string{"Pneumonia"}

	for _, doc := range docs {
		if err := store.Write(doc); err != nil {
			t.Fatalf("Write %s: %v", doc.Name, err)
		}
	}
	return store
}

func TestListAndRead(t *testing.T) {
	store := testStore(t)

	docs, err := store.List("")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(docs))
	}

	doc, err := store.Read(docs[1].Id)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if doc.Name != "r002" {
		t.Errorf("name: got %q", doc.Name)
	}
	sentences := doc.Sentences()
	if len(sentences) != 2 {
		t.Fatalf("sentences: got %d want 2", len(sentences))
	}
	if sentences[1].Text != "small left pleural effusion." {
		t.Errorf("second sentence: %q", sentences[1].Text)
	}
}

func TestReadMissing(t *testing.T) {
	store := testStore(t)
	if _, err := store.Read(999); err == nil {
		t.Fatal("expected error for missing report")
	}
}

func TestListLabelMatch(t *testing.T) {
	store := testStore(t)
	docs, err := store.List("Pneu")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 1 || docs[0].Name != "r003" {
		t.Fatalf("label filter: got %v", docs)
	}
}

func TestLabels(t *testing.T) {
	store := testStore(t)
	labels, err := store.Labels("")
	if err != nil {
		t.Fatalf("Labels: %v", err)
	}
	want := []string{"Cardiomegaly", "Pleural Effusion", "Pneumonia"}
	if len(labels) != len(want) {
		t.Fatalf("labels: got %v want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("labels: got %v want %v", labels, want)
		}
	}
}

func TestFindSentences(t *testing.T) {
	store := testStore(t)

	var hits []storage.SentenceHit
	cursor, err := store.FindSentences([]string{"pleural", "effusion"}, nil, 0, 100, func(hit storage.SentenceHit) error {
		hits = append(hits, hit)
		return nil
	})
	if err != nil {
		t.Fatalf("FindSentences: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	if hits[0].DocName != "r002" {
		t.Errorf("hit doc: %q", hits[0].DocName)
	}
	if cursor == 0 {
		t.Error("cursor did not advance")
	}

	// Resume past the cursor: nothing further carries both terms.
	n := 0
	_, err = store.FindSentences([]string{"pleural", "effusion"}, nil, cursor, 100, func(storage.SentenceHit) error {
		n++
		return nil
	})
	if err != nil {
		t.Fatalf("FindSentences resume: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected no hits after cursor, got %d", n)
	}
}

func TestFindSentencesPaginates(t *testing.T) {
	pool, err := NewPool(filepath.Join(t.TempDir(), "reports.db"))
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	t.Cleanup(func() { pool.Close() })
	if err := CreateReportTables(pool); err != nil {
		t.Fatalf("CreateReportTables: %v", err)
	}
	store := NewReportStore(pool)

	var sp split.Splitter
	texts := []string{
		"small left pleural effusion.",
		"trace right effusion.",
		"no effusion. stable cardiomegaly. possible effusion recurrence.",
	}
	for i, text := range texts {
		if err := store.Write(sp.Document(i, fmt.Sprintf("r%03d", i), text)); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}

	// Page through with a limit below the match count; every hit must
	// survive the cursor round trips.
	var hits []storage.SentenceHit
	cursor := storage.Cursor(0)
	for {
		next, err := store.FindSentences([]string{"effusion"}, nil, cursor, 1, func(hit storage.SentenceHit) error {
			hits = append(hits, hit)
			return nil
		})
		if err != nil {
			t.Fatalf("FindSentences: %v", err)
		}
		if next == cursor {
			break
		}
		cursor = next
	}

	if len(hits) != 4 {
		t.Fatalf("expected 4 hits across pages, got %d", len(hits))
	}
	if hits[3].DocName != "r002" || hits[3].SentenceId != 2 {
		t.Fatalf("last hit: doc %q sentence %d", hits[3].DocName, hits[3].SentenceId)
	}
}

func TestFindSentencesLabelFilter(t *testing.T) {
	store := testStore(t)

	n := 0
	_, err := store.FindSentences([]string{"pneumonia"}, []string{"Cardiomegaly"}, 0, 100, func(storage.SentenceHit) error {
		n++
		return nil
	})
	if err != nil {
		t.Fatalf("FindSentences: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected no hits, got %d", n)
	}
}

func TestFindSentencesRequiresTerm(t *testing.T) {
	store := testStore(t)
	if _, err := store.FindSentences(nil, nil, 0, 10, nil); err == nil {
		t.Fatal("expected error for empty term list")
	}
}
