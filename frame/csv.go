package frame

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ReadCSV parses a feature table. The first header field names the row index
// column (it may be empty, as pandas writes it); every other column must hold
// float values.
func ReadCSV(r io.Reader) (*Frame, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("csv needs an index column and at least one feature, got %d columns", len(header))
	}

	f := &Frame{Columns: header[1:]}
	row := 0
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", row+1, err)
		}

		f.Index = append(f.Index, fields[0])
		values := make([]float64, len(fields)-1)
		for j, cell := range fields[1:] {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", row+1, f.Columns[j], err)
			}
			values[j] = v
		}
		f.Data = append(f.Data, values)
		row++
	}

	return f, nil
}

// ReadCSVFile reads a feature table from a file path.
func ReadCSVFile(path string) (*Frame, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return ReadCSV(fh)
}

// WriteCSV writes the frame in the same index-first layout ReadCSV accepts.
func (f *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := append([]string{""}, f.Columns...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for i, row := range f.Data {
		fields := make([]string, 0, len(row)+1)
		fields = append(fields, f.Index[i])
		for _, v := range row {
			fields = append(fields, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.Write(fields); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadOutcomes parses a single-column outcome CSV (index plus a 0/1 event
// column) into the binary outcome vector the concordance index consumes.
func ReadOutcomes(r io.Reader) ([]int, error) {
	f, err := ReadCSV(r)
	if err != nil {
		return nil, err
	}
	if len(f.Columns) != 1 {
		return nil, fmt.Errorf("outcome csv must have exactly one value column, got %d", len(f.Columns))
	}

	outcomes := make([]int, len(f.Data))
	for i, row := range f.Data {
		switch row[0] {
		case 0:
			outcomes[i] = 0
		case 1:
			outcomes[i] = 1
		default:
			return nil, fmt.Errorf("row %s: outcome must be 0 or 1, got %g", f.Index[i], row[0])
		}
	}
	return outcomes, nil
}

// ReadOutcomesFile reads an outcome vector from a file path.
func ReadOutcomesFile(path string) ([]int, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return ReadOutcomes(fh)
}
