// Package frame holds the tabular feature data fed to risk models: named
// float columns over indexed rows, read from and written to CSV in the
// index-first layout the datasets use.
package frame

import (
	"fmt"
	"math/rand"
)

// Frame is a row-major table of float features. Index holds the row keys,
// Columns the feature names; Data[i][j] is the value of Columns[j] for row i.
type Frame struct {
	Index   []string
	Columns []string
	Data    [][]float64
}

// NumRows returns the number of rows.
func (f *Frame) NumRows() int {
	return len(f.Data)
}

// ColumnIndex returns the position of the named column.
func (f *Frame) ColumnIndex(name string) (int, error) {
	for i, c := range f.Columns {
		if c == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("frame has no column %q", name)
}

// Column returns a copy of the named column's values.
func (f *Frame) Column(name string) ([]float64, error) {
	j, err := f.ColumnIndex(name)
	if err != nil {
		return nil, err
	}
	col := make([]float64, len(f.Data))
	for i, row := range f.Data {
		col[i] = row[j]
	}
	return col, nil
}

// Clone returns a deep copy of the frame. Permutation runs shuffle a clone
// so the baseline data stays intact.
func (f *Frame) Clone() *Frame {
	c := &Frame{
		Index:   append([]string(nil), f.Index...),
		Columns: append([]string(nil), f.Columns...),
		Data:    make([][]float64, len(f.Data)),
	}
	for i, row := range f.Data {
		c.Data[i] = append([]float64(nil), row...)
	}
	return c
}

// Shuffle permutes the values of one column in place, leaving every other
// column untouched.
func (f *Frame) Shuffle(column string, rng *rand.Rand) error {
	j, err := f.ColumnIndex(column)
	if err != nil {
		return err
	}
	rng.Shuffle(len(f.Data), func(a, b int) {
		f.Data[a][j], f.Data[b][j] = f.Data[b][j], f.Data[a][j]
	})
	return nil
}

// Head returns a frame holding the first n rows (fewer if the frame is
// shorter). The header and index slices are shared, not copied.
func (f *Frame) Head(n int) *Frame {
	if n > len(f.Data) {
		n = len(f.Data)
	}
	return &Frame{
		Index:   f.Index[:n],
		Columns: f.Columns,
		Data:    f.Data[:n],
	}
}
