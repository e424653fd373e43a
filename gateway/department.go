package gateway

import (
	"context"

	"github.com/staffdesk/console/domain"
)

// Departments talks to the remote department resource.
type Departments interface {
	List(ctx context.Context) ([]domain.Department, error)
	Get(ctx context.Context, id int64) (*domain.Department, error)
	Create(ctx context.Context, department *domain.Department) (*domain.Department, error)
	Update(ctx context.Context, department *domain.Department) (*domain.Department, error)
	Delete(ctx context.Context, id int64) error
	Employees(ctx context.Context, id int64) ([]domain.Employee, error)
	ByName(ctx context.Context, name string) (*domain.Department, error)
}
