package gateway

import (
	"context"

	"github.com/staffdesk/console/domain"
)

// LoginResult is the payload returned by a successful login call.
type LoginResult struct {
	AccessToken string             `json:"accessToken"`
	User        domain.UserProfile `json:"user"`
}

// Auth talks to the remote authentication resource.
type Auth interface {
	Login(ctx context.Context, creds domain.Credentials) (*LoginResult, error)
	Register(ctx context.Context, reg domain.Registration) (*domain.UserProfile, error)
	CurrentUser(ctx context.Context) (*domain.UserProfile, error)
	CheckUsername(ctx context.Context, username string) (bool, error)
	CheckEmail(ctx context.Context, email string) (bool, error)
}
