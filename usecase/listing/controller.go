package listing

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/staffdesk/console/domain"
)

// Source is the remote collection a controller projects.
type Source[T any] interface {
	List(ctx context.Context) ([]T, error)
	Delete(ctx context.Context, id int64) error
}

// View is the filtered and paged projection handed to the UI layer.
type View[T any] struct {
	Items        []T
	TotalMatched int
	Page         int
	PageSize     int
}

// Matcher reports whether an item matches a lowercased filter needle.
type Matcher[T any] func(item T, needle string) bool

const defaultPageSize = 10

// Controller implements the list-filter-paginate-remove pattern shared by
// the resource screens. The derived view is always recomputed from the full
// list and the current parameters; the only mutation that bypasses a
// re-fetch is the local removal after a confirmed remote delete.
type Controller[T any] struct {
	source Source[T]
	id     func(T) int64
	match  Matcher[T]
	logger *zap.Logger

	mu       sync.Mutex
	full     []T
	derived  []T
	filter   string
	page     int
	pageSize int
	gen      uint64
	closed   bool
}

// NewController builds a controller for one resource type.
func NewController[T any](source Source[T], id func(T) int64, match Matcher[T], logger *zap.Logger) *Controller[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller[T]{
		source:   source,
		id:       id,
		match:    match,
		logger:   logger,
		pageSize: defaultPageSize,
	}
}

// Load fetches the full collection. On failure the previously cached list
// stays displayed and the error is surfaced for user-visible notification.
// A completion belonging to a superseded Load, or arriving after Close, is
// discarded so a discarded view is never mutated.
func (c *Controller[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	items, err := c.source.List(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.gen {
		c.logger.Debug("discarding stale list fetch")
		return nil
	}
	c.full = items
	c.recomputeLocked()
	return nil
}

// SetFilter recomputes the derived view synchronously, without re-fetching.
// Changing the filter resets the page index.
func (c *Controller[T]) SetFilter(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = text
	c.page = 0
	c.recomputeLocked()
}

// SetPage selects the displayed page. Negative pages clamp to zero.
func (c *Controller[T]) SetPage(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n < 0 {
		n = 0
	}
	c.page = n
}

// SetPageSize changes the page length and resets to the first page.
func (c *Controller[T]) SetPageSize(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n <= 0 {
		n = defaultPageSize
	}
	c.pageSize = n
	c.page = 0
}

// Remove deletes the item remotely and, only once the server confirms,
// removes it from the local list. On failure local state is untouched and
// the server's explanation is surfaced. Like Load, a confirmation arriving
// after Close is discarded.
func (c *Controller[T]) Remove(ctx context.Context, id int64) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	if err := c.source.Delete(ctx, id); err != nil {
		var dErr *domain.Error
		if !errors.As(err, &dErr) {
			return domain.WrapError(domain.ErrCodeDeleteRejected, "delete rejected", err)
		}
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	kept := c.full[:0]
	for _, item := range c.full {
		if c.id(item) != id {
			kept = append(kept, item)
		}
	}
	c.full = kept
	c.recomputeLocked()
	return nil
}

// View returns the current page of the derived view.
func (c *Controller[T]) View() View[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := c.page * c.pageSize
	end := start + c.pageSize
	total := len(c.derived)
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	items := make([]T, end-start)
	copy(items, c.derived[start:end])
	return View[T]{
		Items:        items,
		TotalMatched: total,
		Page:         c.page,
		PageSize:     c.pageSize,
	}
}

// Items returns a copy of the full cached collection.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.full))
	copy(out, c.full)
	return out
}

// Close discards the controller; late fetch completions become no-ops.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *Controller[T]) recomputeLocked() {
	c.derived = applyFilter(c.full, c.filter, c.match)
}

// applyFilter is the pure reducer behind the derived view: same inputs,
// same projection, no re-fetch.
func applyFilter[T any](full []T, filter string, match Matcher[T]) []T {
	needle := strings.ToLower(strings.TrimSpace(filter))
	if needle == "" {
		out := make([]T, len(full))
		copy(out, full)
		return out
	}
	out := make([]T, 0, len(full))
	for _, item := range full {
		if match(item, needle) {
			out = append(out, item)
		}
	}
	return out
}
