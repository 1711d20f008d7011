package report

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ImpressionColumn is the CSV column holding the report impression text.
const ImpressionColumn = "Report Impression"

// Record is one row of a labeled report CSV before splitting: the raw
// impression text and the pathology labels marked true for it.
type Record struct {
	Name       string
	Impression string
	Labels     []string
}

// ReadRecords parses a labeled report CSV. The header must contain the
// "Report Impression" column; every header that names a known category is
// treated as a label column, and truthy cells ("1", "1.0", "true") attach
// that label to the record. Records are named by row number unless the CSV
// has a leading unnamed index column, whose value is used instead.
func ReadRecords(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	impressionIdx := -1
	labelIdx := map[int]string{}
	categories := map[string]bool{}
	for _, c := range Categories {
		categories[c] = true
	}
	for i, name := range header {
		if name == ImpressionColumn {
			impressionIdx = i
			continue
		}
		if categories[name] {
			labelIdx[i] = name
		}
	}
	if impressionIdx < 0 {
		return nil, fmt.Errorf("csv has no %q column", ImpressionColumn)
	}

	// A leading empty header names the row index column.
	indexIdx := -1
	if len(header) > 0 && header[0] == "" {
		indexIdx = 0
	}

	var records []Record
	row := 0
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", row+1, err)
		}
		if impressionIdx >= len(fields) {
			return nil, fmt.Errorf("csv row %d has no impression field", row+1)
		}

		rec := Record{
			Name:       fmt.Sprintf("report-%d", row),
			Impression: fields[impressionIdx],
		}
		if indexIdx >= 0 && indexIdx < len(fields) && fields[indexIdx] != "" {
			rec.Name = fields[indexIdx]
		}
		for i, cell := range fields {
			if label, ok := labelIdx[i]; ok && truthy(cell) {
				rec.Labels = append(rec.Labels, label)
			}
		}
		records = append(records, rec)
		row++
	}

	return records, nil
}

func truthy(s string) bool {
	switch s {
	case "1", "1.0", "true", "True", "TRUE":
		return true
	}
	return false
}
