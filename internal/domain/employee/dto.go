package employee

import (
	"strings"

	"github.com/cmlabs-hris/hrms-lite-console/internal/pkg/validator"
)

// CreateEmployeeRequest is the body of POST /employees on the backend.
type CreateEmployeeRequest struct {
	EmployeeID string     `json:"employee_id"`
	FullName   string     `json:"full_name"`
	Email      string     `json:"email"`
	Department Department `json:"department"`
}

// Validate runs the local form rules. It never touches the network.
func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.TrimSpace(r.Email)

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "Employee ID is required",
		})
	}

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "Full name is required",
		})
	}

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "Email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "Invalid email format",
		})
	}

	if r.Department == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "Department is required",
		})
	} else if !r.Department.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "Department must be one of the listed departments",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type NextIDResponse struct {
	NextID string `json:"next_id"`
}

// DeleteEmployeeRequest carries the confirmation the directory asks for before deleting.
type DeleteEmployeeRequest struct {
	EmployeeID string
	Confirmed  bool
}

// DirectoryQuery is what the directory screen was asked to show.
type DirectoryQuery struct {
	Departments []Department
	Search      string
}

// DirectoryResponse is the filtered directory plus its summary label.
type DirectoryResponse struct {
	Employees       []Employee `json:"employees"`
	Total           int        `json:"total"`
	DepartmentLabel string     `json:"department_label"`
}
