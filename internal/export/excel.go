// Package export renders screening results as xlsx workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"screening-backend/internal/pipeline"
)

const (
	sheetAll    = "All Resumes"
	sheetPassed = "Passed"
	sheetFailed = "Failed"
)

var headers = []string{"Rank", "Name", "Email", "Phone", "Structural Score", "Criteria Score", "Total Score", "File"}

// WriteWorkbook renders the cohorts of one job into an xlsx workbook: every
// candidate on the first sheet, then the passed ranking and the failed pool.
func WriteWorkbook(w io.Writer, cohorts pipeline.Cohorts) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetAll)
	if _, err := f.NewSheet(sheetPassed); err != nil {
		return err
	}
	if _, err := f.NewSheet(sheetFailed); err != nil {
		return err
	}

	all := make([]pipeline.Ranked, 0, len(cohorts.Passed)+len(cohorts.Failed))
	all = append(all, cohorts.Passed...)
	all = append(all, cohorts.Failed...)

	if err := fillSheet(f, sheetAll, all); err != nil {
		return err
	}
	if err := fillSheet(f, sheetPassed, cohorts.Passed); err != nil {
		return err
	}
	if err := fillSheet(f, sheetFailed, cohorts.Failed); err != nil {
		return err
	}

	return f.Write(w)
}

func fillSheet(f *excelize.File, sheet string, members []pipeline.Ranked) error {
	widths := []float64{8, 25, 30, 16, 16, 16, 14, 40}
	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	for i, m := range members {
		row := i + 2
		values := []any{
			i + 1,
			m.Name,
			m.Email,
			m.Phone,
			scoreCell(m.ATSScore),
			scoreCell(m.SmartScore),
			m.TotalScore,
			m.FilePath,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	if len(members) > 0 {
		ref := fmt.Sprintf("A1:H%d", len(members)+1)
		if err := f.AutoFilter(sheet, ref, []excelize.AutoFilterOptions{}); err != nil {
			return err
		}
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// scoreCell keeps unscored candidates visually distinct from zero scores.
func scoreCell(score *float64) any {
	if score == nil {
		return "n/a"
	}
	return *score
}
