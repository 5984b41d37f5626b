package spreadsheet

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"applicantpool/internal/model"
)

func TestExportFileName(t *testing.T) {
	now := time.Date(2024, 2, 5, 9, 7, 3, 0, time.UTC)

	assert.Equal(t, "applicants_driver_20240205_090703.xlsx", ExportFileName("driver", now))
	assert.Equal(t, "applicants_SeniorDriver_20240205_090703.xlsx", ExportFileName("Senior Driver/..", now))
	assert.Equal(t, "applicants_ሹፌር_20240205_090703.xlsx", ExportFileName("ሹፌር", now))
}

func TestSaveExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	records := []model.ApplicationRecord{
		{
			Applicant:   model.Applicant{ID: 1, FullName: "Abebe Kebede", Phone: "+251911223344", LaborID: "L-1"},
			Application: model.Application{ID: 2, Position: "driver", ApplicationDate: time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC), SourceFile: "feb.xlsx"},
		},
		{
			Applicant:   model.Applicant{ID: 3, FullName: "Almaz"},
			Application: model.Application{ID: 1, Position: "driver", ApplicationDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), SourceFile: "jan.xlsx"},
		},
	}

	path, err := SaveExport(dir, "applicants_driver_20240205_090703.xlsx", records)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "applicants_driver_20240205_090703.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, ExportColumns, rows[0])
	assert.Equal(t, []string{"Abebe Kebede", "+251911223344", "L-1", "driver", "45327", "feb.xlsx"}, rows[1])
	assert.Equal(t, "Almaz", rows[2][0])
	assert.Equal(t, "45301", rows[2][4])
}

func TestSaveExport_NameCannotEscapeDir(t *testing.T) {
	dir := t.TempDir()

	records := []model.ApplicationRecord{{
		Applicant:   model.Applicant{FullName: "Abebe"},
		Application: model.Application{Position: "driver", ApplicationDate: time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)},
	}}

	path, err := SaveExport(dir, "../../escape.xlsx", records)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "escape.xlsx"), path)
}
