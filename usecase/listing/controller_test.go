package listing

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffdesk/console/domain"
)

type fakeEmployeeSource struct {
	mu        sync.Mutex
	items     []domain.Employee
	listErr   error
	deleteErr error
	listCalls int

	// when set, List signals listStarted and blocks until release is closed.
	listStarted chan struct{}
	release     chan struct{}

	// same gating for Delete.
	deleteStarted chan struct{}
	deleteRelease chan struct{}
}

func (f *fakeEmployeeSource) List(ctx context.Context) ([]domain.Employee, error) {
	f.mu.Lock()
	f.listCalls++
	items, err := f.items, f.listErr
	started, release := f.listStarted, f.release
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
		<-release
	}
	if err != nil {
		return nil, err
	}
	out := make([]domain.Employee, len(items))
	copy(out, items)
	return out, nil
}

func (f *fakeEmployeeSource) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	started, release := f.deleteStarted, f.deleteRelease
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
		<-release
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	kept := f.items[:0]
	for _, item := range f.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	f.items = kept
	return nil
}

func sampleEmployees() []domain.Employee {
	return []domain.Employee{
		{ID: 1, FirstName: "Alice", LastName: "Nguyen", Email: "alice@corp.test", JobTitle: "Software Engineer",
			Department: &domain.DepartmentRef{ID: 10, Name: "Engineering"}},
		{ID: 2, FirstName: "Bob", LastName: "Singh", Email: "bob@corp.test", JobTitle: "Accountant",
			Department: &domain.DepartmentRef{ID: 20, Name: "Finance"}},
		{ID: 3, FirstName: "Engelbert", LastName: "Kraus", Email: "ek@corp.test", JobTitle: "Recruiter",
			Department: &domain.DepartmentRef{ID: 30, Name: "People"}},
		{ID: 4, FirstName: "Dana", LastName: "Okafor", Email: "dana@corp.test", JobTitle: "Designer"},
	}
}

func newEmployeeController(t *testing.T, source *fakeEmployeeSource) *Controller[domain.Employee] {
	t.Helper()
	ctrl := NewController[domain.Employee](source, employeeID, matchEmployee, nil)
	require.NoError(t, ctrl.Load(context.Background()))
	return ctrl
}

func TestLoadPopulatesView(t *testing.T) {
	ctrl := newEmployeeController(t, &fakeEmployeeSource{items: sampleEmployees()})

	view := ctrl.View()
	assert.Equal(t, 4, view.TotalMatched)
	assert.Len(t, view.Items, 4)
}

func TestFilterMatchesAcrossFields(t *testing.T) {
	ctrl := newEmployeeController(t, &fakeEmployeeSource{items: sampleEmployees()})

	// "eng" hits Alice's job title and department, and Engelbert's first name
	ctrl.SetFilter("eng")
	view := ctrl.View()
	require.Equal(t, 2, view.TotalMatched)
	assert.Equal(t, int64(1), view.Items[0].ID)
	assert.Equal(t, int64(3), view.Items[1].ID)

	ctrl.SetFilter("ENG")
	assert.Equal(t, 2, ctrl.View().TotalMatched, "filter is case-insensitive")

	ctrl.SetFilter("corp.test")
	assert.Equal(t, 4, ctrl.View().TotalMatched, "email matches")
}

func TestFilterIsIdempotent(t *testing.T) {
	ctrl := newEmployeeController(t, &fakeEmployeeSource{items: sampleEmployees()})

	ctrl.SetFilter("eng")
	once := ctrl.View()
	ctrl.SetFilter("eng")
	twice := ctrl.View()

	assert.Equal(t, once, twice)
}

func TestEmptyFilterYieldsFullList(t *testing.T) {
	ctrl := newEmployeeController(t, &fakeEmployeeSource{items: sampleEmployees()})

	ctrl.SetFilter("eng")
	ctrl.SetFilter("")
	assert.Equal(t, 4, ctrl.View().TotalMatched)

	ctrl.SetFilter("   ")
	assert.Equal(t, 4, ctrl.View().TotalMatched, "whitespace-only filter is empty")
}

func TestFilterResetsPage(t *testing.T) {
	ctrl := newEmployeeController(t, &fakeEmployeeSource{items: sampleEmployees()})
	ctrl.SetPageSize(2)
	ctrl.SetPage(1)
	require.Equal(t, 1, ctrl.View().Page)

	ctrl.SetFilter("corp")
	assert.Equal(t, 0, ctrl.View().Page)
}

func TestPagination(t *testing.T) {
	items := make([]domain.Employee, 25)
	for i := range items {
		items[i] = domain.Employee{ID: int64(i + 1), FirstName: "Emp", Email: "e@corp.test"}
	}
	ctrl := newEmployeeController(t, &fakeEmployeeSource{items: items})

	ctrl.SetPageSize(10)
	assert.Len(t, ctrl.View().Items, 10)

	ctrl.SetPage(2)
	view := ctrl.View()
	assert.Len(t, view.Items, 5)
	assert.Equal(t, int64(21), view.Items[0].ID)

	ctrl.SetPage(99)
	assert.Empty(t, ctrl.View().Items, "out-of-range page is empty, not an error")

	ctrl.SetPage(-1)
	assert.Equal(t, 0, ctrl.View().Page)
}

func TestLoadFailureKeepsPreviousList(t *testing.T) {
	source := &fakeEmployeeSource{items: sampleEmployees()}
	ctrl := newEmployeeController(t, source)

	source.mu.Lock()
	source.listErr = domain.NewError(domain.ErrCodeFetchFailed, "api unreachable")
	source.mu.Unlock()

	err := ctrl.Load(context.Background())
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeFetchFailed))
	assert.Equal(t, 4, ctrl.View().TotalMatched, "previous list stays displayed")
}

func TestRemoveConfirmedDeleteConverges(t *testing.T) {
	source := &fakeEmployeeSource{items: sampleEmployees()}
	ctrl := newEmployeeController(t, source)

	require.NoError(t, ctrl.Remove(context.Background(), 2))
	assert.Equal(t, 3, ctrl.View().TotalMatched)
	for _, item := range ctrl.Items() {
		assert.NotEqual(t, int64(2), item.ID)
	}
	assert.Equal(t, 1, source.listCalls, "removal does not trigger a re-fetch")

	// a re-fetch against the backend that confirmed the delete must not
	// resurrect the removed item
	require.NoError(t, ctrl.Load(context.Background()))
	assert.Equal(t, 3, ctrl.View().TotalMatched)
}

func TestRemoveFailureLeavesStateUntouched(t *testing.T) {
	source := &fakeEmployeeSource{items: sampleEmployees()}
	ctrl := newEmployeeController(t, source)
	source.deleteErr = domain.NewError(domain.ErrCodeDeleteRejected, "referential constraint violation")

	err := ctrl.Remove(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeDeleteRejected))
	assert.Contains(t, err.Error(), "referential constraint violation")
	assert.Equal(t, 4, ctrl.View().TotalMatched)
}

func TestRemoveRespectsActiveFilter(t *testing.T) {
	ctrl := newEmployeeController(t, &fakeEmployeeSource{items: sampleEmployees()})

	ctrl.SetFilter("eng")
	require.Equal(t, 2, ctrl.View().TotalMatched)

	require.NoError(t, ctrl.Remove(context.Background(), 1))
	assert.Equal(t, 1, ctrl.View().TotalMatched)
}

func TestDeleteConfirmationAfterCloseIsDiscarded(t *testing.T) {
	source := &fakeEmployeeSource{
		items:         sampleEmployees(),
		deleteStarted: make(chan struct{}, 1),
		deleteRelease: make(chan struct{}),
	}
	ctrl := newEmployeeController(t, source)

	done := make(chan error, 1)
	go func() {
		done <- ctrl.Remove(context.Background(), 2)
	}()

	<-source.deleteStarted
	ctrl.Close()
	close(source.deleteRelease)

	require.NoError(t, <-done)
	assert.Len(t, ctrl.Items(), 4, "a discarded view is never mutated")
}

func TestRemoveAfterCloseSkipsRemoteDelete(t *testing.T) {
	source := &fakeEmployeeSource{items: sampleEmployees()}
	ctrl := newEmployeeController(t, source)

	ctrl.Close()
	require.NoError(t, ctrl.Remove(context.Background(), 2))

	source.mu.Lock()
	defer source.mu.Unlock()
	assert.Len(t, source.items, 4)
}

func TestStaleLoadCompletionIsDiscarded(t *testing.T) {
	source := &fakeEmployeeSource{
		items:       sampleEmployees(),
		listStarted: make(chan struct{}, 1),
		release:     make(chan struct{}),
	}
	ctrl := NewController[domain.Employee](source, employeeID, matchEmployee, nil)

	done := make(chan error, 1)
	go func() {
		done <- ctrl.Load(context.Background())
	}()

	<-source.listStarted
	ctrl.Close()
	close(source.release)

	require.NoError(t, <-done)
	assert.Empty(t, ctrl.Items(), "a discarded view is never mutated")
}
