package listing

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/staffdesk/console/domain"
	"github.com/staffdesk/console/gateway"
)

const headcountFetchLimit = 8

// Departments is the department list controller. On top of the generic
// pattern it maintains a per-department headcount aggregate, loaded
// concurrently after each fetch and kept in step with local removals.
type Departments struct {
	*Controller[domain.Department]

	gw     gateway.Departments
	logger *zap.Logger

	countMu    sync.RWMutex
	headcounts map[int64]int
}

// NewDepartments builds the department list controller. The filter matches
// case-insensitively across name, description and location.
func NewDepartments(gw gateway.Departments, logger *zap.Logger) *Departments {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Departments{
		Controller: NewController[domain.Department](gw, departmentID, matchDepartment, logger),
		gw:         gw,
		logger:     logger,
		headcounts: map[int64]int{},
	}
}

// Load fetches the departments, then their headcounts concurrently. A
// department whose employee fetch fails counts as zero rather than failing
// the whole load.
func (d *Departments) Load(ctx context.Context) error {
	if err := d.Controller.Load(ctx); err != nil {
		return err
	}

	departments := d.Items()
	counts := make([]int, len(departments))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(headcountFetchLimit)
	for i, dept := range departments {
		i, dept := i, dept
		g.Go(func() error {
			employees, err := d.gw.Employees(gctx, dept.ID)
			if err != nil {
				d.logger.Warn("headcount fetch failed",
					zap.Int64("department_id", dept.ID), zap.Error(err))
				return nil
			}
			counts[i] = len(employees)
			return nil
		})
	}
	_ = g.Wait()

	d.countMu.Lock()
	defer d.countMu.Unlock()
	d.headcounts = make(map[int64]int, len(departments))
	for i, dept := range departments {
		d.headcounts[dept.ID] = counts[i]
	}
	return nil
}

// Remove deletes the department remotely and drops its headcount entry so
// the cached aggregate never outlives its row.
func (d *Departments) Remove(ctx context.Context, id int64) error {
	if err := d.Controller.Remove(ctx, id); err != nil {
		return err
	}
	d.countMu.Lock()
	defer d.countMu.Unlock()
	delete(d.headcounts, id)
	return nil
}

// Headcount returns the cached number of employees assigned to a department.
func (d *Departments) Headcount(id int64) int {
	d.countMu.RLock()
	defer d.countMu.RUnlock()
	return d.headcounts[id]
}

// CanRemove reports whether the delete action should be offered at all:
// departments with assigned employees are rejected by the server anyway.
func (d *Departments) CanRemove(id int64) bool {
	return d.Headcount(id) == 0
}

func departmentID(dept domain.Department) int64 {
	return dept.ID
}

func matchDepartment(dept domain.Department, needle string) bool {
	for _, field := range []string{dept.Name, dept.Description, dept.Location} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
