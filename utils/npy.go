package utils

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gorgonia.org/tensor"
)

// ErrFormat is returned when an array file does not have the expected layout.
var ErrFormat = errors.New("malformed array")

// ReadFloat64Rows reads a two dimensional numpy array and returns its rows.
// float32 arrays are widened. Every row must have exactly cols values. Only C ordered arrays
// are supported; fortran ordered files, such as np.save of a transposed array, fail with ErrFormat.
func ReadFloat64Rows(r io.Reader, cols int) ([][]float64, error) {
	t := new(tensor.Dense)
	if err := t.ReadNpy(r); err != nil {
		return nil, errors.Wrap(ErrFormat, err.Error())
	}
	shape := t.Shape()
	if len(shape) != 2 {
		return nil, errors.Wrapf(ErrFormat, "expected a 2 dimensional array, got shape %v", shape)
	}
	if shape[1] != cols {
		return nil, errors.Wrapf(ErrFormat, "expected %d values per row, got %d", cols, shape[1])
	}
	if shape[0] == 0 {
		return [][]float64{}, nil
	}

	var data []float64
	switch backing := t.Data().(type) {
	case []float64:
		data = backing
	case []float32:
		data = make([]float64, len(backing))
		for i, v := range backing {
			data[i] = float64(v)
		}
	default:
		return nil, errors.Wrapf(ErrFormat, "unsupported dtype %v", t.Dtype())
	}

	rows := make([][]float64, shape[0])
	for i := range rows {
		rows[i] = append([]float64(nil), data[i*cols:(i+1)*cols]...)
	}
	return rows, nil
}

// WriteFloat64Rows writes rows as a two dimensional float64 numpy array.
func WriteFloat64Rows(w io.Writer, rows [][]float64) error {
	if len(rows) == 0 {
		return errors.Wrap(ErrFormat, "cannot write an empty array")
	}
	cols := len(rows[0])
	backing := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return errors.Wrapf(ErrFormat, "row %d has %d values, expected %d", i, len(row), cols)
		}
		backing = append(backing, row...)
	}
	t := tensor.New(tensor.WithShape(len(rows), cols), tensor.WithBacking(backing))
	return t.WriteNpy(w)
}

// ReadFloat64RowsFile is ReadFloat64Rows on a file.
func ReadFloat64RowsFile(path string, cols int) ([][]float64, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return ReadFloat64Rows(bufio.NewReader(f), cols)
}

// WriteFloat64RowsFile is WriteFloat64Rows on a file, which is created or truncated.
func WriteFloat64RowsFile(path string, rows [][]float64) (err error) {
	//nolint:gosec
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()
	bw := bufio.NewWriter(f)
	if err := WriteFloat64Rows(bw, rows); err != nil {
		return err
	}
	return bw.Flush()
}
