package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Pinger probes the remote API.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Status is the last observed reachability of the upstream API.
type Status struct {
	Online    bool
	CheckedAt time.Time
}

// Monitor periodically probes the remote API so screens can tell a dead
// upstream apart from an empty collection.
type Monitor struct {
	api Pinger

	mu       sync.RWMutex
	status   Status
	interval time.Duration
	stopCh   chan struct{}
	logger   *zap.Logger
}

func New(api Pinger, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		api:      api,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	close(m.stopCh)
}

func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Online
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.refresh()
	for {
		select {
		case <-ticker.C:
			m.refresh()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := m.api.Ping(ctx)
	online := err == nil

	m.mu.Lock()
	wasOnline := m.status.Online
	m.status = Status{Online: online, CheckedAt: time.Now()}
	m.mu.Unlock()

	if online != wasOnline {
		if online {
			m.logger.Info("api reachable")
		} else {
			m.logger.Warn("api unreachable", zap.Error(err))
		}
	}
}
