package gateway

import (
	"context"

	"github.com/staffdesk/console/domain"
)

// Employees talks to the remote employee resource.
type Employees interface {
	List(ctx context.Context) ([]domain.Employee, error)
	Get(ctx context.Context, id int64) (*domain.Employee, error)
	Create(ctx context.Context, employee *domain.Employee) (*domain.Employee, error)
	Update(ctx context.Context, employee *domain.Employee) (*domain.Employee, error)
	Patch(ctx context.Context, id int64, updates map[string]interface{}) (*domain.Employee, error)
	Delete(ctx context.Context, id int64) error
	ByDepartment(ctx context.Context, departmentID int64) ([]domain.Employee, error)
	Search(ctx context.Context, query string) ([]domain.Employee, error)
	BySalaryRange(ctx context.Context, min, max float64) ([]domain.Employee, error)
}
