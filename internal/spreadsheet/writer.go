package spreadsheet

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"applicantpool/internal/cleaner"
	"applicantpool/internal/model"
)

const (
	exportSheet = "Applicants"
	// ContentType is the media type of generated exports.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportFileName builds applicants_<position>_<YYYYMMDD_HHMMSS>.xlsx, keeping only letters
// and digits of the position.
func ExportFileName(position string, now time.Time) string {
	return fmt.Sprintf("applicants_%s_%s.xlsx", cleaner.FileToken(position), now.Format("20060102_150405"))
}

// SaveExport writes records to dir/name and returns the full path.
func SaveExport(dir, name string, records []model.ApplicationRecord) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	f, err := buildExport(records)
	if err != nil {
		return "", err
	}
	defer f.Close()

	path := filepath.Join(dir, filepath.Base(name))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save export: %w", err)
	}
	return path, nil
}

func buildExport(records []model.ApplicationRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		f.Close()
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, err
	}
	dateFmt := "yyyy-mm-dd"
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
	if err != nil {
		f.Close()
		return nil, err
	}

	for i, h := range ExportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheet, cell, h)
	}
	last, _ := excelize.CoordinatesToCellName(len(ExportColumns), 1)
	f.SetCellStyle(exportSheet, "A1", last, headerStyle)

	for i, rec := range records {
		row := i + 2
		values := []any{
			rec.Applicant.FullName,
			rec.Applicant.Phone,
			rec.Applicant.LaborID,
			rec.Application.Position,
			rec.Application.ApplicationDate,
			rec.Application.SourceFile,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
	}

	if len(records) > 0 {
		f.SetCellStyle(exportSheet, "E2", fmt.Sprintf("E%d", len(records)+1), dateStyle)
	}

	f.SetColWidth(exportSheet, "A", "A", 30)
	f.SetColWidth(exportSheet, "B", "C", 18)
	f.SetColWidth(exportSheet, "D", "D", 25)
	f.SetColWidth(exportSheet, "E", "E", 14)
	f.SetColWidth(exportSheet, "F", "F", 30)

	f.SetPanes(exportSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
	lastCell, _ := excelize.CoordinatesToCellName(len(ExportColumns), len(records)+1)
	f.AutoFilter(exportSheet, "A1:"+lastCell, []excelize.AutoFilterOptions{})

	return f, nil
}
