package listing

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffdesk/console/domain"
)

type fakeDepartmentGateway struct {
	mu          sync.Mutex
	departments []domain.Department
	assigned    map[int64][]domain.Employee
	deleteErr   map[int64]error
}

func (f *fakeDepartmentGateway) List(ctx context.Context) ([]domain.Department, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Department, len(f.departments))
	copy(out, f.departments)
	return out, nil
}

func (f *fakeDepartmentGateway) Get(ctx context.Context, id int64) (*domain.Department, error) {
	return nil, domain.ErrDepartmentNotFound
}

func (f *fakeDepartmentGateway) Create(ctx context.Context, d *domain.Department) (*domain.Department, error) {
	return d, nil
}

func (f *fakeDepartmentGateway) Update(ctx context.Context, d *domain.Department) (*domain.Department, error) {
	return d, nil
}

func (f *fakeDepartmentGateway) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.deleteErr[id]; err != nil {
		return err
	}
	kept := f.departments[:0]
	for _, d := range f.departments {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	f.departments = kept
	return nil
}

func (f *fakeDepartmentGateway) Employees(ctx context.Context, id int64) ([]domain.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.assigned[id], nil
}

func (f *fakeDepartmentGateway) ByName(ctx context.Context, name string) (*domain.Department, error) {
	return nil, domain.ErrDepartmentNotFound
}

func newDepartmentGateway() *fakeDepartmentGateway {
	return &fakeDepartmentGateway{
		departments: []domain.Department{
			{ID: 1, Name: "Engineering", Description: "Builds the product", Location: "Berlin"},
			{ID: 2, Name: "Finance", Description: "Counts the money", Location: "London"},
			{ID: 3, Name: "People", Description: "Hiring and engagement", Location: "Remote"},
		},
		assigned: map[int64][]domain.Employee{
			1: {{ID: 11}, {ID: 12}, {ID: 13}},
			2: {{ID: 21}},
		},
		deleteErr: map[int64]error{},
	}
}

func TestDepartmentsLoadComputesHeadcounts(t *testing.T) {
	gw := newDepartmentGateway()
	ctrl := NewDepartments(gw, nil)

	require.NoError(t, ctrl.Load(context.Background()))

	assert.Equal(t, 3, ctrl.View().TotalMatched)
	assert.Equal(t, 3, ctrl.Headcount(1))
	assert.Equal(t, 1, ctrl.Headcount(2))
	assert.Equal(t, 0, ctrl.Headcount(3))
}

func TestDepartmentsFilter(t *testing.T) {
	ctrl := NewDepartments(newDepartmentGateway(), nil)
	require.NoError(t, ctrl.Load(context.Background()))

	ctrl.SetFilter("eng")
	view := ctrl.View()
	require.Equal(t, 2, view.TotalMatched, "matches name and description")
	assert.Equal(t, "Engineering", view.Items[0].Name)
	assert.Equal(t, "People", view.Items[1].Name)

	ctrl.SetFilter("remote")
	assert.Equal(t, 1, ctrl.View().TotalMatched, "matches location")
}

func TestDepartmentsCanRemove(t *testing.T) {
	ctrl := NewDepartments(newDepartmentGateway(), nil)
	require.NoError(t, ctrl.Load(context.Background()))

	assert.False(t, ctrl.CanRemove(1), "3 employees assigned")
	assert.True(t, ctrl.CanRemove(3))
}

func TestDepartmentsRemoveDropsHeadcountEntry(t *testing.T) {
	gw := newDepartmentGateway()
	ctrl := NewDepartments(gw, nil)
	require.NoError(t, ctrl.Load(context.Background()))

	require.NoError(t, ctrl.Remove(context.Background(), 2))
	assert.Equal(t, 2, ctrl.View().TotalMatched)
	assert.Equal(t, 0, ctrl.Headcount(2))
}

func TestDepartmentsRemoveRejectedWhenEmployeesAssigned(t *testing.T) {
	gw := newDepartmentGateway()
	gw.deleteErr[1] = domain.NewError(domain.ErrCodeDeleteRejected, "Department has employees assigned")
	ctrl := NewDepartments(gw, nil)
	require.NoError(t, ctrl.Load(context.Background()))

	err := ctrl.Remove(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeDeleteRejected))
	assert.Contains(t, err.Error(), "Department has employees assigned")
	assert.Equal(t, 3, ctrl.View().TotalMatched)
	assert.Equal(t, 3, ctrl.Headcount(1), "aggregate untouched on failure")
}
