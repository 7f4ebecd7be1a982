package spreadsheet

import (
	"fmt"
	"io"

	"github.com/cmlabs-hris/hrms-lite-console/internal/domain/attendance"
	"github.com/xuri/excelize/v2"
)

const (
	AttendanceSheet = "Attendance"
	SummarySheet    = "Summary"
)

var attendanceHeader = []interface{}{"Employee ID", "Full Name", "Department", "Status"}

// WriteAttendance renders one reconciled sheet as an xlsx workbook.
func WriteAttendance(w io.Writer, sheet attendance.Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", AttendanceSheet); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(AttendanceSheet, "A1", &attendanceHeader); err != nil {
		return err
	}
	if err := f.SetRowStyle(AttendanceSheet, 1, 1, bold); err != nil {
		return err
	}

	for i, row := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			row.Employee.EmployeeID,
			row.Employee.FullName,
			string(row.Employee.Department),
			row.Label,
		}
		if err := f.SetSheetRow(AttendanceSheet, cell, &values); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(AttendanceSheet, "A", "A", 14); err != nil {
		return err
	}
	if err := f.SetColWidth(AttendanceSheet, "B", "C", 28); err != nil {
		return err
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return err
	}
	summary := [][]interface{}{
		{"Date", sheet.Date.String()},
		{"Departments", sheet.DepartmentLabel},
		{"Search", sheet.Search},
		{"Present", sheet.Summary.Present},
		{"Absent", sheet.Summary.Absent},
		{"Pending", sheet.Summary.Pending},
		{"Total", sheet.Summary.Total},
		{"Attendance Rate (%)", sheet.Summary.Rate},
	}
	for i, line := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &line); err != nil {
			return err
		}
	}
	if err := f.SetColStyle(SummarySheet, "A", bold); err != nil {
		return err
	}
	if err := f.SetColWidth(SummarySheet, "A", "A", 22); err != nil {
		return err
	}

	return f.Write(w)
}

// FileName is the download name of the workbook of date.
func FileName(date attendance.Date) string {
	return fmt.Sprintf("attendance-%s.xlsx", date.String())
}
