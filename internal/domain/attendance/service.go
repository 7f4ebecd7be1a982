package attendance

import (
	"context"
	"io"
)

// AttendanceService defines the attendance screen flows
type AttendanceService interface {
	// Sheet loads employees and the records of one date and reconciles them
	Sheet(ctx context.Context, query SheetQuery) (Sheet, error)

	// Toggle moves one employee to the next status for a date, reading the
	// current status from the backend
	Toggle(ctx context.Context, req ToggleRequest) (Record, error)

	// Mark sets an explicit status for one employee and date
	Mark(ctx context.Context, req MarkRequest) (Record, error)

	// EmployeeHistory loads one employee with all of its records
	EmployeeHistory(ctx context.Context, employeeID string) (EmployeeHistory, error)

	// ExportSheet writes the sheet of a date as an xlsx workbook
	ExportSheet(ctx context.Context, query SheetQuery, w io.Writer) error
}
