package field

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadCSV parses a field from comma-separated rows of numbers. Blank lines
// and lines starting with '#' are skipped.
func ReadCSV(r io.Reader) (Field, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	var rows [][]float64
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Field{}, fmt.Errorf("field: read csv: %w", err)
		}
		row := make([]float64, len(rec))
		for j, s := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return Field{}, fmt.Errorf("field: row %d column %d: %w", len(rows), j, err)
			}
			row[j] = v
		}
		rows = append(rows, row)
	}
	return FromRows(rows)
}

// ReadCSVFile opens path and parses it with [ReadCSV].
func ReadCSVFile(path string) (Field, error) {
	fh, err := os.Open(path)
	if err != nil {
		return Field{}, err
	}
	defer fh.Close()
	f, err := ReadCSV(fh)
	if err != nil {
		return Field{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// WriteCSV writes f as nx rows of ny comma-separated values.
func WriteCSV(w io.Writer, f Field) error {
	cw := csv.NewWriter(w)
	rec := make([]string, f.ny)
	for i := 0; i < f.nx; i++ {
		for j, v := range f.RawRow(i) {
			rec[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
