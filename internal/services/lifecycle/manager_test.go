package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShutdownRunsHooksInReverseOrder(t *testing.T) {
	m := New(time.Second, nil)

	var order []string
	for _, name := range []string{"store", "monitor", "watcher"} {
		name := name
		m.Register(name, func(ctx context.Context) error {
			order = append(order, name)
			return nil
		})
	}

	require.NoError(t, m.Shutdown(context.Background()))
	assert.Equal(t, []string{"watcher", "monitor", "store"}, order)
}

func TestShutdownCollectsFailures(t *testing.T) {
	m := New(time.Second, nil)

	errStore := errors.New("store close failed")
	errWatcher := errors.New("watcher stop failed")
	ran := false

	m.Register("store", func(ctx context.Context) error { return errStore })
	m.Register("monitor", func(ctx context.Context) error {
		ran = true
		return nil
	})
	m.Register("watcher", func(ctx context.Context) error { return errWatcher })

	err := m.Shutdown(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errStore)
	assert.ErrorIs(t, err, errWatcher)
	assert.True(t, ran, "a failing hook does not stop the rest")
}

func TestShutdownHonorsTimeout(t *testing.T) {
	m := New(50*time.Millisecond, nil)

	m.Register("stuck", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	err := m.Shutdown(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRegisterIgnoresNilHook(t *testing.T) {
	m := New(time.Second, nil)
	m.Register("noop", nil)

	require.NoError(t, m.Shutdown(context.Background()))
	assert.Empty(t, m.entries)
}
