package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/KaramelBytes/datalens-cli/internal/utils"
)

type csvLoader struct{}

func (csvLoader) CanLoad(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv") || strings.HasSuffix(name, ".txt")
}

func (csvLoader) Load(path string, opt Options) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	return ReadCSV(f, baseName(path), delim, opt)
}

// ReadCSV reads a header row followed by data rows. Short rows are padded
// with nulls.
func ReadCSV(r io.Reader, name string, delim rune, opt Options) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	if delim != 0 {
		cr.Comma = delim
	}
	// a whitespace delimiter would be eaten as leading space, shifting cells
	cr.TrimLeadingSpace = !unicode.IsSpace(cr.Comma)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return New(name), nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	var rows [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		if opt.MaxRows > 0 && len(rows) >= opt.MaxRows {
			continue
		}
		rows = append(rows, rec)
	}
	return FromRecords(name, header, rows, opt)
}

func sniffDelimiter(path string) rune {
	name := strings.ToLower(path)
	if strings.HasSuffix(name, ".tsv") {
		return '\t'
	}
	return ','
}

// WriteCSV writes the dataset with a header row. Nulls are written as empty
// cells. The file is replaced atomically.
func (d *Dataset) WriteCSV(path string) error {
	var buf bytes.Buffer
	if err := d.EncodeCSV(&buf); err != nil {
		return err
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}

// EncodeCSV writes the dataset as comma-separated text.
func (d *Dataset) EncodeCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(d.Columns()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	rec := make([]string, d.Width())
	for i := 0; i < d.rows; i++ {
		for j, c := range d.cols {
			rec[j] = c.Values[i].String()
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
