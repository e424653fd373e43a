package rest

import (
	"context"
	"errors"
	"net/url"

	"github.com/valyala/fasthttp"

	"github.com/staffdesk/console/domain"
	"github.com/staffdesk/console/gateway"
)

type authGateway struct {
	client *Client
}

// NewAuthGateway creates the /auth resource gateway.
func NewAuthGateway(client *Client) gateway.Auth {
	return &authGateway{client: client}
}

func (g *authGateway) Login(ctx context.Context, creds domain.Credentials) (*gateway.LoginResult, error) {
	var result gateway.LoginResult
	if err := g.client.doAnonymous(ctx, fasthttp.MethodPost, "/auth/login", creds, &result); err != nil {
		return nil, rewrap(err, domain.ErrCodeAuthFailed)
	}
	if result.AccessToken == "" {
		return nil, domain.NewError(domain.ErrCodeAuthFailed, "login response carried no access token")
	}
	return &result, nil
}

func (g *authGateway) Register(ctx context.Context, reg domain.Registration) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	if err := g.client.doAnonymous(ctx, fasthttp.MethodPost, "/auth/register", reg, &profile); err != nil {
		return nil, rewrap(err, domain.ErrCodeRegistration)
	}
	return &profile, nil
}

func (g *authGateway) CurrentUser(ctx context.Context) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	if err := g.client.do(ctx, fasthttp.MethodGet, "/auth/me", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

type availability struct {
	Available bool `json:"available"`
}

func (g *authGateway) CheckUsername(ctx context.Context, username string) (bool, error) {
	var result availability
	path := "/auth/check-username?username=" + url.QueryEscape(username)
	if err := g.client.doAnonymous(ctx, fasthttp.MethodGet, path, nil, &result); err != nil {
		return false, err
	}
	return result.Available, nil
}

func (g *authGateway) CheckEmail(ctx context.Context, email string) (bool, error) {
	var result availability
	path := "/auth/check-email?email=" + url.QueryEscape(email)
	if err := g.client.doAnonymous(ctx, fasthttp.MethodGet, path, nil, &result); err != nil {
		return false, err
	}
	return result.Available, nil
}

// rewrap narrows generic validation/conflict errors to the code the auth
// flow reports, keeping the server message. Transport failures pass through.
func rewrap(err error, code domain.ErrorCode) error {
	if domain.IsDomainError(err, domain.ErrCodeFetchFailed) {
		return err
	}
	var dErr *domain.Error
	if errors.As(err, &dErr) && dErr.Code != code {
		return domain.NewError(code, dErr.Message)
	}
	return err
}
