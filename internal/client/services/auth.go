// Package services contains application services for the Distory client:
// authentication, story browsing with offline fallback, and pending-story
// synchronization.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/distory/internal/client/api"
	"github.com/dmitrijs2005/distory/internal/client/store"
	"github.com/dmitrijs2005/distory/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate against the server and persist the token locally.
//   - Register: create a new account on the server.
//   - Token: return a usable token, failing fast when absent or expired.
//   - Logout: drop the persisted token.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
	Register(ctx context.Context, name, email, password string) error
	Token(ctx context.Context) (string, error)
	Logout(ctx context.Context) error
}

type authService struct {
	client api.Client
	store  *store.Store
}

// NewAuthService constructs an AuthService bound to the given API client and store.
func NewAuthService(client api.Client, st *store.Store) AuthService {
	return &authService{client: client, store: st}
}

// Login authenticates online and persists the bearer token so later
// sessions (and the worker's sync pass) can reuse it.
func (a *authService) Login(ctx context.Context, email, password string) (*api.LoginResult, error) {
	res, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	if err := a.store.SetToken(ctx, res.Token); err != nil {
		return nil, fmt.Errorf("token saving error: %w", err)
	}
	if err := a.store.SetUserName(ctx, res.Name); err != nil {
		return nil, fmt.Errorf("user name saving error: %w", err)
	}
	return res, nil
}

func (a *authService) Register(ctx context.Context, name, email, password string) error {
	if err := a.client.Register(ctx, name, email, password); err != nil {
		return fmt.Errorf("register error: %w", err)
	}
	return nil
}

// Token returns the persisted token. Operations that need auth call this
// before any network attempt so the absence of a token is a descriptive
// local error, not a round trip.
func (a *authService) Token(ctx context.Context) (string, error) {
	token, err := a.store.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("token loading error: %w", err)
	}
	if token == "" {
		return "", common.ErrNoToken
	}
	if expired(token) {
		return "", common.ErrTokenExpired
	}
	return token, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.store.ClearToken(ctx)
}

// expired checks the token's exp claim without verifying the signature;
// verification is the server's job, this is only a pre-flight check to
// avoid doomed requests.
func expired(token string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		// Not a JWT; let the server decide.
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
