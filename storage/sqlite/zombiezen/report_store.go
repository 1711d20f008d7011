package zombiezen

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/radprep/radprep/cleaner"
	"github.com/radprep/radprep/report"
	"github.com/radprep/radprep/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// ReportStore persists report documents in SQLite: one row per report, one
// row per sentence, plus a term index over the cleaned sentence text for
// candidate retrieval.
type ReportStore struct {
	pool *sqlitex.Pool
}

var _ storage.ReportRepository = (*ReportStore)(nil)

func NewReportStore(pool *sqlitex.Pool) *ReportStore {
	return &ReportStore{pool: pool}
}

func (h *ReportStore) List(labelMatch string) ([]report.Document, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var docs []report.Document
	err = sqlitex.Execute(conn, "SELECT id, name, labels FROM reports ORDER BY id", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			doc := report.Document{
				Id:     stmt.ColumnInt(0),
				Name:   stmt.ColumnText(1),
				Labels: splitLabels(stmt.ColumnText(2)),
			}
			if labelMatch != "" && !matchesLabel(doc.Labels, labelMatch) {
				return nil
			}
			docs = append(docs, doc)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (h *ReportStore) Read(id int) (report.Document, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return report.Document{}, err
	}
	defer h.pool.Put(conn)

	doc := report.Document{Id: id}
	found := false
	err = sqlitex.Execute(conn, "SELECT name, labels FROM reports WHERE id = ?", &sqlitex.ExecOptions{
		Args: []interface{}{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			doc.Name = stmt.ColumnText(0)
			doc.Labels = splitLabels(stmt.ColumnText(1))
			return nil
		},
	})
	if err != nil {
		return report.Document{}, err
	}
	if !found {
		return report.Document{}, fmt.Errorf("report not found: %d", id)
	}

	passage := report.Passage{}
	err = sqlitex.Execute(conn, "SELECT pos, text FROM sentences WHERE report_id = ? ORDER BY seq", &sqlitex.ExecOptions{
		Args: []interface{}{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			passage.Sentences = append(passage.Sentences, report.Sentence{
				Offset: stmt.ColumnInt(0),
				Text:   stmt.ColumnText(1),
			})
			return nil
		},
	})
	if err != nil {
		return report.Document{}, err
	}

	doc.Passages = []report.Passage{passage}
	return doc, nil
}

func (h *ReportStore) Labels(pattern string) ([]string, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	seen := map[string]bool{}
	err = sqlitex.Execute(conn, "SELECT labels FROM reports", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			for _, l := range splitLabels(stmt.ColumnText(0)) {
				if pattern == "" || strings.Contains(l, pattern) {
					seen[l] = true
				}
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	labels := make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels, nil
}

// FindSentences retrieves candidate sentence rowids through the term index
// and streams the joined sentence rows. Label filtering happens on the
// retrieved rows, terms drive the indexed INTERSECT query.
func (h *ReportStore) FindSentences(terms []string, labels []string, after storage.Cursor, limit int, fn func(storage.SentenceHit) error) (storage.Cursor, error) {
	if len(terms) == 0 {
		return after, errors.New("at least one term is required for an indexed search")
	}

	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return after, err
	}
	defer h.pool.Put(conn)

	// INTERSECT guarantees rowids that carry ALL terms, each leg resuming
	// past the cursor.
	var queryBuilder strings.Builder
	var args []interface{}
	for i, term := range terms {
		if i > 0 {
			queryBuilder.WriteString(" INTERSECT ")
		}
		queryBuilder.WriteString("SELECT sentence_rowid FROM sentence_terms WHERE term = ? AND sentence_rowid > ?")
		args = append(args, term, int64(after))
	}
	queryBuilder.WriteString(" LIMIT ?")
	args = append(args, limit)

	var rowIDs []int64
	err = sqlitex.Execute(conn, queryBuilder.String(), &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			rowIDs = append(rowIDs, stmt.ColumnInt64(0))
			return nil
		},
	})
	if err != nil {
		return after, err
	}
	if len(rowIDs) == 0 {
		return after, nil
	}

	idStrings := make([]string, len(rowIDs))
	for i, id := range rowIDs {
		idStrings[i] = strconv.FormatInt(id, 10)
	}
	query := fmt.Sprintf(`SELECT s.rowid, s.report_id, s.seq, s.pos, s.text, r.name, r.labels
		FROM sentences s JOIN reports r ON r.id = s.report_id
		WHERE s.rowid IN (%s) ORDER BY s.rowid`, strings.Join(idStrings, ","))

	newCursor := after
	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			rowID := stmt.ColumnInt64(0)
			if storage.Cursor(rowID) > newCursor {
				newCursor = storage.Cursor(rowID)
			}

			hit := storage.SentenceHit{
				DocId:      stmt.ColumnInt(1),
				SentenceId: stmt.ColumnInt(2),
				Sentence: report.Sentence{
					Offset: stmt.ColumnInt(3),
					Text:   stmt.ColumnText(4),
				},
				DocName: stmt.ColumnText(5),
				Labels:  splitLabels(stmt.ColumnText(6)),
			}
			if !hasAllLabels(hit.Labels, labels) {
				return nil
			}
			return fn(hit)
		},
	})
	if err != nil {
		return after, err
	}

	return newCursor, nil
}

func (h *ReportStore) Write(doc report.Document) (err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	defer sqlitex.Save(conn)(&err)

	labels := strings.Join(doc.Labels, ",")
	err = sqlitex.Execute(conn, "INSERT INTO reports (name, labels) VALUES (?, ?)", &sqlitex.ExecOptions{
		Args: []interface{}{doc.Name, labels},
	})
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}
	reportID := conn.LastInsertRowID()

	for seq, s := range doc.Sentences() {
		err = sqlitex.Execute(conn, "INSERT INTO sentences (report_id, seq, pos, text) VALUES (?, ?, ?, ?)", &sqlitex.ExecOptions{
			Args: []interface{}{reportID, seq, s.Offset, s.Text},
		})
		if err != nil {
			return fmt.Errorf("failed to insert sentence: %w", err)
		}
		sentRowID := conn.LastInsertRowID()

		unique := map[string]bool{}
		for _, term := range cleaner.Fields(cleaner.Clean(s.Text)) {
			unique[term] = true
		}
		for term := range unique {
			err = sqlitex.Execute(conn, "INSERT INTO sentence_terms (term, sentence_rowid) VALUES (?, ?)", &sqlitex.ExecOptions{
				Args: []interface{}{term, sentRowID},
			})
			if err != nil {
				return fmt.Errorf("failed to insert term: %w", err)
			}
		}
	}

	return nil
}

func splitLabels(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func matchesLabel(labels []string, match string) bool {
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
