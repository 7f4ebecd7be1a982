package hrmsapi

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/cmlabs-hris/hrms-lite-console/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-console/internal/pkg/backend"
)

type employeeRepositoryImpl struct {
	client *backend.Client
}

func NewEmployeeRepository(client *backend.Client) employee.EmployeeRepository {
	return &employeeRepositoryImpl{client: client}
}

// List implements employee.EmployeeRepository - GET /employees
func (r *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	var employees []employee.Employee
	if err := r.client.Get(ctx, "/employees", nil, &employees); err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	if employees == nil {
		employees = []employee.Employee{}
	}
	return employees, nil
}

// GetByEmployeeID implements employee.EmployeeRepository - GET /employees/{employee_id}
func (r *employeeRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (employee.Employee, error) {
	var e employee.Employee
	if err := r.client.Get(ctx, employeePath(employeeID), nil, &e); err != nil {
		return employee.Employee{}, notFound(err)
	}
	return e, nil
}

// NextID implements employee.EmployeeRepository - GET /employees/next-id
func (r *employeeRepositoryImpl) NextID(ctx context.Context) (string, error) {
	var res employee.NextIDResponse
	if err := r.client.Get(ctx, "/employees/next-id", nil, &res); err != nil {
		return "", fmt.Errorf("failed to fetch next employee id: %w", err)
	}
	return res.NextID, nil
}

// Create implements employee.EmployeeRepository - POST /employees
func (r *employeeRepositoryImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	var created employee.Employee
	if err := r.client.Post(ctx, "/employees", req, &created); err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// Delete implements employee.EmployeeRepository - DELETE /employees/{employee_id}
func (r *employeeRepositoryImpl) Delete(ctx context.Context, employeeID string) error {
	if err := r.client.Delete(ctx, employeePath(employeeID)); err != nil {
		return notFound(err)
	}
	return nil
}

func employeePath(employeeID string) string {
	return "/employees/" + url.PathEscape(employeeID)
}

// notFound tags a 404 answer with employee.ErrEmployeeNotFound, keeping the backend error.
func notFound(err error) error {
	if errors.Is(err, backend.ErrNotFound) {
		return fmt.Errorf("%w: %w", employee.ErrEmployeeNotFound, err)
	}
	return err
}
