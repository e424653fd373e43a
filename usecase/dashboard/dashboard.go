package dashboard

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/staffdesk/console/domain"
	"github.com/staffdesk/console/gateway"
)

const recentHires = 5

// DepartmentCount pairs a department name with its headcount.
type DepartmentCount struct {
	DepartmentID int64
	Name         string
	Count        int
}

// Summary is the aggregate shown on the dashboard screen.
type Summary struct {
	TotalEmployees   int
	TotalDepartments int
	DepartmentCounts []DepartmentCount
	RecentEmployees  []domain.Employee
}

// UseCase aggregates employees and departments for the dashboard.
type UseCase struct {
	employees   gateway.Employees
	departments gateway.Departments
	logger      *zap.Logger
}

func New(employees gateway.Employees, departments gateway.Departments, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		employees:   employees,
		departments: departments,
		logger:      logger,
	}
}

// Overview fetches both collections concurrently and joins them locally:
// headcounts come from the employees' department references, recent hires
// from sorting by hire date. Either fetch failing fails the overview.
func (uc *UseCase) Overview(ctx context.Context) (*Summary, error) {
	var (
		employees   []domain.Employee
		departments []domain.Department
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employees, err = uc.employees.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		departments, err = uc.departments.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	counts := make([]DepartmentCount, 0, len(departments))
	for _, dept := range departments {
		count := 0
		for _, emp := range employees {
			if emp.Department != nil && emp.Department.ID == dept.ID {
				count++
			}
		}
		counts = append(counts, DepartmentCount{
			DepartmentID: dept.ID,
			Name:         dept.Name,
			Count:        count,
		})
	}

	recent := make([]domain.Employee, len(employees))
	copy(recent, employees)
	sort.Slice(recent, func(i, j int) bool {
		return recent[i].HireDate.After(recent[j].HireDate)
	})
	if len(recent) > recentHires {
		recent = recent[:recentHires]
	}

	return &Summary{
		TotalEmployees:   len(employees),
		TotalDepartments: len(departments),
		DepartmentCounts: counts,
		RecentEmployees:  recent,
	}, nil
}
