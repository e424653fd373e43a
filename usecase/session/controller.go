package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/staffdesk/console/domain"
	"github.com/staffdesk/console/gateway"
	"github.com/staffdesk/console/pkg/token"
)

// TokenStore abstracts the durable credential storage.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// Codec decodes a bearer credential into its claims, rejecting unusable
// ones. The default is token.DecodeValid.
type Codec func(raw string) (domain.Claims, error)

// Controller is the only writer of the session state. Login, Logout and
// Restore serialize on one mutex, so whichever operation completes later in
// wall-clock order owns the terminal state: a logout issued while a restore
// is in flight applies after it and wins.
type Controller struct {
	store  TokenStore
	auth   gateway.Auth
	codec  Codec
	logger *zap.Logger

	group singleflight.Group

	// opMu serializes the session-mutating operations; stateMu guards the
	// snapshot fields for readers.
	opMu    sync.Mutex
	stateMu sync.RWMutex
	state   domain.Session
	claims  domain.Claims
	token   string
}

// New creates a controller in the Unknown state (loading until the first
// restore resolves).
func New(store TokenStore, auth gateway.Auth, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		store:  store,
		auth:   auth,
		codec:  token.DecodeValid,
		logger: logger,
		state:  domain.Session{Loading: true},
	}
}

// Restore rebuilds the session from the durable credential. It is idempotent
// and safe to call concurrently; overlapping calls are coalesced into a
// single profile fetch and all callers observe the same outcome.
func (c *Controller) Restore(ctx context.Context) bool {
	result, _, _ := c.group.Do("restore", func() (interface{}, error) {
		return c.restore(ctx), nil
	})
	ok, _ := result.(bool)
	return ok
}

func (c *Controller) restore(ctx context.Context) bool {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	raw, err := c.store.Load()
	if err != nil {
		c.logger.Error("cannot read credential storage", zap.Error(err))
		c.applyAnonymous()
		return false
	}
	if raw == "" {
		c.applyAnonymous()
		return false
	}

	claims, err := c.codec(raw)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeTokenExpired) {
			c.logger.Info("stored credential expired")
		} else {
			c.logger.Warn("stored credential is malformed, dropping it", zap.Error(err))
		}
		c.clearStored()
		c.applyAnonymous()
		return false
	}

	// The profile fetch below needs the bearer header; expose the token
	// before the round trip. The session snapshot itself only changes once
	// the terminal state is known.
	c.setToken(raw)

	profile, err := c.auth.CurrentUser(ctx)
	if err != nil {
		c.logger.Warn("profile fetch failed during restore", zap.Error(err))
		c.clearStored()
		c.applyAnonymous()
		return false
	}

	c.applyAuthenticated(profile, claims)
	return true
}

// Login authenticates against the remote API. On success the returned token
// is persisted and the session transitions straight to Authenticated using
// the profile from the login response; no second round trip. On failure the
// session is left untouched.
func (c *Controller) Login(ctx context.Context, creds domain.Credentials) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	result, err := c.auth.Login(ctx, creds)
	if err != nil {
		return err
	}

	claims, err := c.codec(result.AccessToken)
	if err != nil {
		c.logger.Error("login returned an unusable token", zap.Error(err))
		return err
	}

	if err := c.store.Save(result.AccessToken); err != nil {
		// The session still works for this process lifetime; it just will
		// not survive a restart.
		c.logger.Error("cannot persist credential", zap.Error(err))
	}

	c.setToken(result.AccessToken)
	profile := result.User
	c.applyAuthenticated(&profile, claims)

	c.logger.Info("login succeeded",
		zap.String("username", profile.Username),
		zap.Strings("roles", claims.Roles.Strings()))
	return nil
}

// Logout clears the durable credential and synchronously transitions to
// Anonymous. It never fails; a storage error is logged and the in-memory
// session drops regardless.
func (c *Controller) Logout() {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.clearStored()
	c.applyAnonymous()
	c.logger.Info("logged out")
}

// Register creates an account. Registration does not imply login: the
// session state is never altered here.
func (c *Controller) Register(ctx context.Context, reg domain.Registration) error {
	if _, err := c.auth.Register(ctx, reg); err != nil {
		return err
	}
	c.logger.Info("registration accepted", zap.String("username", reg.Username))
	return nil
}

// HasRole reports whether the current session carries the role. It returns
// false, never an error, when unauthenticated.
func (c *Controller) HasRole(role domain.Role) bool {
	return c.Snapshot().HasRole(role)
}

// Snapshot returns a consistent copy of the session. The three fields
// {Authenticated, Roles, User} always change together under the state lock,
// so a snapshot can never observe a torn update.
func (c *Controller) Snapshot() domain.Session {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()

	snap := c.state
	snap.Roles = c.state.Roles.Clone()
	if c.state.User != nil {
		user := *c.state.User
		snap.User = &user
	}
	return snap
}

// Token returns the current in-memory bearer credential; empty when
// anonymous. Used as the gateway TokenSource.
func (c *Controller) Token() string {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.token
}

// Expired reports whether the active credential has passed its expiry.
// Anonymous sessions have no credential and report false.
func (c *Controller) Expired() bool {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	if !c.state.Authenticated {
		return false
	}
	return c.claims.Expired(time.Now())
}

func (c *Controller) clearStored() {
	if err := c.store.Clear(); err != nil {
		c.logger.Error("cannot clear credential storage", zap.Error(err))
	}
}

func (c *Controller) setToken(raw string) {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	c.token = raw
}

func (c *Controller) applyAnonymous() {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	c.token = ""
	c.claims = domain.Claims{}
	c.state = domain.Session{Authenticated: false}
}

func (c *Controller) applyAuthenticated(profile *domain.UserProfile, claims domain.Claims) {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	c.claims = claims
	c.state = domain.Session{
		User:          profile,
		Roles:         claims.Roles.Clone(),
		Authenticated: true,
	}
}
