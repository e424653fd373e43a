package session

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ExpiryWatcher periodically re-checks the active credential's expiry and
// logs the session out once it passes. Without it a long-lived console only
// notices expiry on the next restore.
type ExpiryWatcher struct {
	ctrl   *Controller
	cron   *cron.Cron
	logger *zap.Logger
}

// NewExpiryWatcher schedules the check with a cron spec (e.g. "@every 1m").
func NewExpiryWatcher(ctrl *Controller, spec string, logger *zap.Logger) (*ExpiryWatcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &ExpiryWatcher{
		ctrl:   ctrl,
		cron:   cron.New(),
		logger: logger,
	}
	if _, err := w.cron.AddFunc(spec, w.check); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *ExpiryWatcher) Start() {
	w.cron.Start()
}

// Stop halts the schedule and waits for an in-flight check to finish.
func (w *ExpiryWatcher) Stop() {
	<-w.cron.Stop().Done()
}

func (w *ExpiryWatcher) check() {
	if !w.ctrl.Expired() {
		return
	}
	w.logger.Info("credential expired, dropping session")
	w.ctrl.Logout()
}
