package spreadsheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"applicantpool/internal/cleaner"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
	ErrUnreadable        = errors.New("spreadsheet cannot be read")
)

type format struct {
	read        func(io.Reader) ([][]string, error)
	contentType string
}

var formats = map[string]format{
	".xlsx": {readWorkbook, ContentType},
	".xlsm": {readWorkbook, "application/vnd.ms-excel.sheet.macroEnabled.12"},
	".xls":  {readLegacyWorkbook, "application/vnd.ms-excel"},
	".csv":  {readCSV, "text/csv"},
}

// Table is the parsed content of an upload: normalised headers and the data rows under them.
type Table struct {
	Headers []string
	Rows    []Row
}

// Row is one data row keyed by normalised header. Line is the 1-based sheet line.
type Row struct {
	Line  int
	cells map[string]string
}

// Get returns the raw cell under column, or "" when the column or cell is absent.
func (r Row) Get(column string) string {
	return r.cells[column]
}

// HasColumn reports whether the header row contains column.
func (t *Table) HasColumn(column string) bool {
	for _, h := range t.Headers {
		if h == column {
			return true
		}
	}
	return false
}

// MissingColumns returns the columns of want not present in the header row, in want's order.
func (t *Table) MissingColumns(want []string) []string {
	var missing []string
	for _, c := range want {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	return missing
}

// Supported reports whether filename has an extension Read understands.
func Supported(filename string) bool {
	_, ok := formats[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// ContentTypeOf returns the media type for an upload's extension.
func ContentTypeOf(filename string) string {
	if f, ok := formats[strings.ToLower(filepath.Ext(filename))]; ok {
		return f.contentType
	}
	return "application/octet-stream"
}

// Read parses the first sheet of an upload. The format is chosen by filename extension.
// Fully blank rows are skipped.
func Read(filename string, r io.Reader) (*Table, error) {
	f, ok := formats[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}

	grid, err := f.read(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return buildTable(grid), nil
}

func buildTable(grid [][]string) *Table {
	t := &Table{}
	if len(grid) == 0 {
		return t
	}

	t.Headers = make([]string, len(grid[0]))
	for i, h := range grid[0] {
		t.Headers[i] = cleaner.Header(h)
	}

	for i, record := range grid[1:] {
		if blank(record) {
			continue
		}
		row := Row{Line: i + 2, cells: make(map[string]string, len(t.Headers))}
		for col, h := range t.Headers {
			if h == "" || col >= len(record) {
				continue
			}
			if _, dup := row.cells[h]; dup {
				continue
			}
			v := record[col]
			if h == ColPhone {
				v = expandScientific(v)
			}
			row.cells[h] = v
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func readWorkbook(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	// Raw values keep dates as serial numbers and phones without display formatting.
	return f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr.ReadAll()
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// expandScientific rewrites phone cells stored as 9.11223344E8 back to plain digits. Other
// columns are left alone: a labor id such as 12E3 is text, not a number.
func expandScientific(v string) string {
	if !strings.ContainsAny(v, "eE") {
		return v
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return v
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
