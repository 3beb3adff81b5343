package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Report"

// MonthlyWorkbook renders monthly entries as an xlsx workbook with a
// header row, one row per issuance.
func MonthlyWorkbook(entries []MonthlyEntry) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	headers := []string{"Employee", "Date", "Time"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}

	for row, entry := range entries {
		values := []string{
			entry.EmployeeName,
			entry.IssueDate.Format("2006-01-02"),
			entry.IssueTime.Format("15:04:05"),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

// MonthlyWorkbookBytes serializes the monthly export for sending as a
// chat document or HTTP download.
func MonthlyWorkbookBytes(entries []MonthlyEntry) ([]byte, error) {
	f, err := MonthlyWorkbook(entries)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MonthlyFilename names the export the way the original reports were
// archived: monthly_report_MM_YYYY.xlsx.
func MonthlyFilename(month, year int) string {
	return fmt.Sprintf("monthly_report_%02d_%d.xlsx", month, year)
}
