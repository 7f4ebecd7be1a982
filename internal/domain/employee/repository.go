package employee

import "context"

// EmployeeRepository is the backend's employee resource.
type EmployeeRepository interface {
	List(ctx context.Context) ([]Employee, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (Employee, error)
	NextID(ctx context.Context) (string, error)
	Create(ctx context.Context, req CreateEmployeeRequest) (Employee, error)
	Delete(ctx context.Context, employeeID string) error
}
