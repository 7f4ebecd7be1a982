package attendance

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/cmlabs-hris/hrms-lite-console/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-console/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-console/internal/pkg/spreadsheet"
	"golang.org/x/sync/errgroup"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
	}
}

// Sheet fetches employees and the records of the date in parallel; either
// failing fails the whole sheet.
func (s *AttendanceServiceImpl) Sheet(ctx context.Context, query attendance.SheetQuery) (attendance.Sheet, error) {
	if err := query.Validate(); err != nil {
		return attendance.Sheet{}, err
	}
	date, err := attendance.ParseDate(query.Date)
	if err != nil {
		return attendance.Sheet{}, err
	}

	var (
		employees []employee.Employee
		records   []attendance.Record
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		list, err := s.employeeRepo.List(gCtx)
		if err != nil {
			return err
		}
		employees = list
		return nil
	})

	g.Go(func() error {
		list, err := s.attendanceRepo.ListByDateRange(gCtx, date, date)
		if err != nil {
			return err
		}
		records = list
		return nil
	})

	if err := g.Wait(); err != nil {
		return attendance.Sheet{}, err
	}

	return attendance.BuildSheet(date, query.Filter(), employees, records), nil
}

// Toggle re-reads the employee and its record for the date, then sends the
// next status. Nothing is kept locally: callers re-fetch the sheet.
func (s *AttendanceServiceImpl) Toggle(ctx context.Context, req attendance.ToggleRequest) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}
	date, err := attendance.ParseDate(req.Date)
	if err != nil {
		return attendance.Record{}, err
	}

	var (
		emp     employee.Employee
		records []attendance.Record
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		e, err := s.employeeRepo.GetByEmployeeID(gCtx, req.EmployeeID)
		if err != nil {
			return err
		}
		emp = e
		return nil
	})

	g.Go(func() error {
		list, err := s.attendanceRepo.ListByDateRange(gCtx, date, date)
		if err != nil {
			return err
		}
		records = list
		return nil
	})

	if err := g.Wait(); err != nil {
		return attendance.Record{}, err
	}

	return s.Mark(ctx, attendance.Reconcile(records).Toggle(emp, date))
}

// Mark implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Mark(ctx context.Context, req attendance.MarkRequest) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}

	record, err := s.attendanceRepo.Mark(ctx, req)
	if err != nil {
		slog.Error("failed to mark attendance", "employee_id", req.EmployeeID, "date", req.Date.String(), "status", req.Status, "error", err)
		return attendance.Record{}, err
	}

	slog.Info("attendance marked", "employee_id", req.EmployeeID, "date", req.Date.String(), "status", record.Status)
	return record, nil
}

// EmployeeHistory implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) EmployeeHistory(ctx context.Context, employeeID string) (attendance.EmployeeHistory, error) {
	var (
		emp     employee.Employee
		records []attendance.Record
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		e, err := s.employeeRepo.GetByEmployeeID(gCtx, employeeID)
		if err != nil {
			return err
		}
		emp = e
		return nil
	})

	g.Go(func() error {
		list, err := s.attendanceRepo.ListByEmployee(gCtx, employeeID)
		if err != nil {
			return err
		}
		records = list
		return nil
	})

	if err := g.Wait(); err != nil {
		return attendance.EmployeeHistory{}, err
	}

	return attendance.History(emp, records), nil
}

// ExportSheet implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ExportSheet(ctx context.Context, query attendance.SheetQuery, w io.Writer) error {
	sheet, err := s.Sheet(ctx, query)
	if err != nil {
		return err
	}
	if err := spreadsheet.WriteAttendance(w, sheet); err != nil {
		return fmt.Errorf("failed to write attendance workbook: %w", err)
	}
	return nil
}
