package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Encoding names reported by Decode
const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "latin-1"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrEmptyInput is returned when the data has no header row
var ErrEmptyInput = errors.New("tabular: no header row")

// Table is a delimited file held as strings: one header and any number of records
type Table struct {
	Header   []string
	Records  [][]string
	Encoding string
}

// Index returns the position of a column, matching trimmed names case-insensitively.
// It returns -1 when the column is absent.
func (t *Table) Index(column string) int {
	want := strings.ToLower(strings.TrimSpace(column))
	for i, name := range t.Header {
		if strings.ToLower(strings.TrimSpace(name)) == want {
			return i
		}
	}
	return -1
}

// Value returns a record's field, or "" when the record is shorter than the header
func (t *Table) Value(record []string, index int) string {
	if index < 0 || index >= len(record) {
		return ""
	}
	return record[index]
}

// ReadFile reads and decodes a delimited file
func ReadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Decode(data)
}

// Decode parses CSV data. UTF-8 is tried first; input that is not valid UTF-8
// is decoded as Latin-1 instead.
func Decode(data []byte) (*Table, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	encoding := EncodingUTF8
	if !utf8.Valid(data) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode latin-1 input: %w", err)
		}
		data = decoded
		encoding = EncodingLatin1
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse records: %w", err)
	}

	return &Table{Header: header, Records: records, Encoding: encoding}, nil
}

// Write serializes the table as UTF-8 CSV, header first
func Write(w io.Writer, t *Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := writer.WriteAll(t.Records); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	return nil
}

// WriteFile writes the table to path, replacing any existing file
func WriteFile(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Write(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
