package employee

import (
	"context"
)

// EmployeeService defines the directory flows of the console
type EmployeeService interface {
	// Directory fetches every employee and applies the department/search filter
	Directory(ctx context.Context, query DirectoryQuery) (DirectoryResponse, error)

	// GetEmployee fetches one employee by business identifier
	GetEmployee(ctx context.Context, employeeID string) (Employee, error)

	// SuggestNextID returns the id to pre-fill in the create form
	SuggestNextID(ctx context.Context) (string, error)

	// CreateEmployee validates locally, then creates through the backend
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (Employee, error)

	// DeleteEmployee deletes a confirmed employee
	DeleteEmployee(ctx context.Context, req DeleteEmployeeRequest) error
}
