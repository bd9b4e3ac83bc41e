package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	ExistsByName(ctx context.Context, name string, excludeID *string) (bool, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, emp Employee) (Employee, error)
	List(ctx context.Context, includeArchived bool) ([]Employee, error)
	SetArchived(ctx context.Context, id string, archived bool) error
	Delete(ctx context.Context, id string) error
}
