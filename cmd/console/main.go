package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/staffdesk/console/domain"
	"github.com/staffdesk/console/gateway/rest"
	"github.com/staffdesk/console/internal/config"
	"github.com/staffdesk/console/internal/guard"
	"github.com/staffdesk/console/internal/monitor"
	"github.com/staffdesk/console/internal/services/lifecycle"
	"github.com/staffdesk/console/internal/tokenstore"
	"github.com/staffdesk/console/pkg/logger"
	dashboardUC "github.com/staffdesk/console/usecase/dashboard"
	sessionUC "github.com/staffdesk/console/usecase/session"
)

func main() {
	cfg := config.MustLoad()

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	store, err := tokenstore.Open(cfg.TokenStore.Path)
	if err != nil {
		zapLogger.Fatal("failed to open credential storage", zap.Error(err))
	}
	manager.Register("token_store", func(ctx context.Context) error {
		return store.Close()
	})

	// The session controller and the REST client reference each other: the
	// client attaches the controller's current token to every call.
	var sessionCtrl *sessionUC.Controller
	tokenSource := func() string {
		if sessionCtrl == nil {
			return ""
		}
		return sessionCtrl.Token()
	}

	client := rest.NewClient(cfg.API.BaseURL, tokenSource, rest.Options{
		RequestTimeout:  cfg.API.RequestTimeout,
		MaxConnsPerHost: cfg.API.MaxConnsPerHost,
	}, zapLogger)

	authGW := rest.NewAuthGateway(client)
	employeeGW := rest.NewEmployeeGateway(client)
	departmentGW := rest.NewDepartmentGateway(client)

	sessionCtrl = sessionUC.New(store, authGW, zapLogger)

	mon := monitor.New(client, cfg.API.ProbeInterval, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	watcher, err := sessionUC.NewExpiryWatcher(sessionCtrl, cfg.Session.ExpiryCheckSpec, zapLogger)
	if err != nil {
		zapLogger.Fatal("invalid expiry check spec", zap.Error(err))
	}

	restored := sessionCtrl.Restore(appCtx)
	zapLogger.Info("session restored",
		zap.Bool("authenticated", restored),
		zap.String("state", sessionCtrl.Snapshot().State().String()))

	if !restored && cfg.Bootstrap.Username != "" {
		creds := domain.Credentials{
			Username: cfg.Bootstrap.Username,
			Password: cfg.Bootstrap.Password,
		}
		if err := sessionCtrl.Login(appCtx, creds); err != nil {
			zapLogger.Warn("bootstrap login failed", zap.Error(err))
		}
	}

	watcher.Start()
	manager.Register("expiry_watcher", func(ctx context.Context) error {
		watcher.Stop()
		return nil
	})

	if decision := guard.Evaluate(sessionCtrl.Snapshot(), "/dashboard"); decision == guard.Allow {
		overview := dashboardUC.New(employeeGW, departmentGW, zapLogger)
		if summary, err := overview.Overview(appCtx); err != nil {
			zapLogger.Warn("dashboard overview failed", zap.Error(err))
		} else {
			zapLogger.Info("dashboard overview",
				zap.Int("employees", summary.TotalEmployees),
				zap.Int("departments", summary.TotalDepartments))
		}
	} else {
		zapLogger.Info("dashboard not accessible", zap.Stringer("decision", decision))
	}

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
