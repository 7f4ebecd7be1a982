package attendance

import (
	"strings"

	"github.com/cmlabs-hris/hrms-lite-console/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-console/internal/pkg/validator"
)

// MarkRequest is the body of POST /attendance on the backend.
type MarkRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       Date   `json:"date"`
	Status     Status `json:"status"`
}

func (r *MarkRequest) Validate() error {
	var errs validator.ValidationErrors

	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if r.Date.IsZero() {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	}
	if !r.Status.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: ErrInvalidStatus.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToggleRequest names an employee and a date. The current status is always
// read back from the backend, never taken from the caller.
type ToggleRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
}

func (r *ToggleRequest) Validate() error {
	var errs validator.ValidationErrors

	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: ErrInvalidDate.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SheetQuery is what the attendance screen was asked to show.
type SheetQuery struct {
	Date        string
	Departments []employee.Department
	Search      string
}

func (q *SheetQuery) Validate() error {
	if _, valid := validator.IsValidDate(q.Date); !valid {
		return validator.ValidationErrors{{
			Field:   "date",
			Message: ErrInvalidDate.Error(),
		}}
	}
	return nil
}

func (q SheetQuery) Filter() employee.Filter {
	return employee.NewFilter(q.Departments, q.Search)
}

// Row is one employee line of the attendance sheet. Status is nil while pending.
type Row struct {
	Employee employee.Employee `json:"employee"`
	Status   *Status           `json:"status"`
	Label    string            `json:"label"`
}

// NextStatus is the status a toggle on this row would send.
func (r Row) NextStatus() Status {
	if r.Status == nil {
		return NextStatus("", false)
	}
	return NextStatus(*r.Status, true)
}

type Summary struct {
	Present int     `json:"present"`
	Absent  int     `json:"absent"`
	Pending int     `json:"pending"`
	Total   int     `json:"total"`
	Rate    float64 `json:"rate"`
}

// Sheet is the reconciled attendance screen for one date.
type Sheet struct {
	Date            Date    `json:"date"`
	DepartmentLabel string  `json:"department_label"`
	Search          string  `json:"search,omitempty"`
	Rows            []Row   `json:"rows"`
	Summary         Summary `json:"summary"`
}

// EmployeeHistory is one employee with all of its attendance and the derived totals.
type EmployeeHistory struct {
	Employee    employee.Employee `json:"employee"`
	Records     []Record          `json:"records"`
	PresentDays int               `json:"present_days"`
	AbsentDays  int               `json:"absent_days"`
	TotalDays   int               `json:"total_days"`
	Rate        float64           `json:"attendance_rate"`
}
