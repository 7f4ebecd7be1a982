package hrmsapi

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cmlabs-hris/hrms-lite-console/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-console/internal/pkg/backend"
)

type attendanceRepositoryImpl struct {
	client *backend.Client
}

func NewAttendanceRepository(client *backend.Client) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{client: client}
}

// ListByDateRange implements attendance.AttendanceRepository - GET /attendance?start_date&end_date
func (r *attendanceRepositoryImpl) ListByDateRange(ctx context.Context, start, end attendance.Date) ([]attendance.Record, error) {
	query := url.Values{}
	if !start.IsZero() {
		query.Set("start_date", start.String())
	}
	if !end.IsZero() {
		query.Set("end_date", end.String())
	}

	var records []attendance.Record
	if err := r.client.Get(ctx, "/attendance", query, &records); err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	if records == nil {
		records = []attendance.Record{}
	}
	return records, nil
}

// ListByEmployee implements attendance.AttendanceRepository - GET /employees/{employee_id}/attendance
func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Record, error) {
	var records []attendance.Record
	if err := r.client.Get(ctx, employeePath(employeeID)+"/attendance", nil, &records); err != nil {
		return nil, notFound(err)
	}
	if records == nil {
		records = []attendance.Record{}
	}
	return records, nil
}

// Mark implements attendance.AttendanceRepository - POST /attendance (upsert)
func (r *attendanceRepositoryImpl) Mark(ctx context.Context, req attendance.MarkRequest) (attendance.Record, error) {
	var record attendance.Record
	if err := r.client.Post(ctx, "/attendance", req, &record); err != nil {
		return attendance.Record{}, fmt.Errorf("failed to mark attendance: %w", notFound(err))
	}
	return record, nil
}
