package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ReadOptions controls how a source file is turned into records.
type ReadOptions struct {
	// Delimiter for CSV. If 0, '\t' for .tsv files and ',' otherwise.
	Delimiter rune
	// Sheet selects an XLSX worksheet by name. Empty means the first sheet.
	Sheet string
}

// ReadRecords loads a CSV, TSV or XLSX file into a header row followed by data rows.
// Every row is padded or truncated to the header width.
func ReadRecords(path string, opt ReadOptions) ([][]string, error) {
	var (
		records [][]string
		err     error
	)
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		records, err = readXLSX(path, opt.Sheet)
	} else {
		records, err = readCSV(path, opt.Delimiter)
	}
	if err != nil {
		return nil, err
	}
	return normalizeWidth(records), nil
}

func readCSV(path string, delim rune) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comma = delim

	var out [][]string
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(out)+1, err)
		}
		out = append(out, rec)
	}
	if len(out) > 0 && len(out[0]) > 0 {
		out[0][0] = strings.TrimPrefix(out[0][0], "\ufeff")
	}
	return out, nil
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

// normalizeWidth trims header cells and makes every row as wide as the header.
func normalizeWidth(records [][]string) [][]string {
	if len(records) == 0 {
		return records
	}
	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}
	ncol := len(header)
	out := make([][]string, 0, len(records))
	out = append(out, header)
	for _, rec := range records[1:] {
		row := make([]string, ncol)
		copy(row, rec)
		out = append(out, row)
	}
	return out
}
