package employee

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hrms-lite-console/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-console/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
	}
}

// Directory implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Directory(ctx context.Context, query employee.DirectoryQuery) (employee.DirectoryResponse, error) {
	all, err := s.employeeRepo.List(ctx)
	if err != nil {
		return employee.DirectoryResponse{}, err
	}

	filter := employee.NewFilter(query.Departments, query.Search)
	return employee.DirectoryResponse{
		Employees:       filter.Apply(all),
		Total:           len(all),
		DepartmentLabel: filter.Label(),
	}, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, employeeID string) (employee.Employee, error) {
	if validator.IsEmpty(employeeID) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return s.employeeRepo.GetByEmployeeID(ctx, employeeID)
}

// SuggestNextID implements employee.EmployeeService.
func (s *EmployeeServiceImpl) SuggestNextID(ctx context.Context) (string, error) {
	return s.employeeRepo.NextID(ctx)
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	created, err := s.employeeRepo.Create(ctx, req)
	if err != nil {
		return employee.Employee{}, err
	}

	slog.Info("employee created", "employee_id", created.EmployeeID, "department", created.Department)
	return created, nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, req employee.DeleteEmployeeRequest) error {
	if validator.IsEmpty(req.EmployeeID) {
		return validator.ValidationErrors{{Field: "employee_id", Message: "Employee ID is required"}}
	}
	if !req.Confirmed {
		return employee.ErrDeleteNotConfirmed
	}

	if err := s.employeeRepo.Delete(ctx, req.EmployeeID); err != nil {
		return fmt.Errorf("delete %s: %w", req.EmployeeID, err)
	}

	slog.Info("employee deleted", "employee_id", req.EmployeeID)
	return nil
}
