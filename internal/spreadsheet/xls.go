package spreadsheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/extrame/xls"
)

const xlsCharset = "utf-8"

// readLegacyWorkbook reads the first sheet of a BIFF (.xls) workbook. The decoder panics on
// some malformed files, so panics are turned into errors.
func readLegacyWorkbook(r io.Reader) (grid [][]string, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	defer func() {
		if p := recover(); p != nil {
			grid, err = nil, fmt.Errorf("decode xls: %v", p)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), xlsCharset)
	if err != nil {
		return nil, err
	}
	if wb.NumSheets() == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, errors.New("workbook has no sheets")
	}

	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			grid = append(grid, nil)
			continue
		}
		grid = append(grid, legacyRowCells(row))
	}
	return trimTrailingBlank(grid), nil
}

type legacyRow interface {
	FirstCol() int
	LastCol() int
	Col(i int) string
}

func legacyRowCells(row legacyRow) []string {
	last := row.LastCol()
	if last <= 0 {
		return nil
	}
	cells := make([]string, last)
	for c := row.FirstCol(); c < last; c++ {
		cells[c] = row.Col(c)
	}
	return cells
}

// trimTrailingBlank drops empty rows after the last populated one. BIFF row counts include
// formatted but empty rows.
func trimTrailingBlank(grid [][]string) [][]string {
	end := len(grid)
	for end > 0 && blank(grid[end-1]) {
		end--
	}
	return grid[:end]
}
