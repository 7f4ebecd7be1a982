package attendance

import "context"

// AttendanceRepository is the backend's attendance resource.
type AttendanceRepository interface {
	// ListByDateRange returns records with start <= date <= end.
	ListByDateRange(ctx context.Context, start, end Date) ([]Record, error)
	// ListByEmployee returns every record of one employee, newest first.
	ListByEmployee(ctx context.Context, employeeID string) ([]Record, error)
	// Mark creates or overwrites the record of an employee for a date.
	Mark(ctx context.Context, req MarkRequest) (Record, error)
}
