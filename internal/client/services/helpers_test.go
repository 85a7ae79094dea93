package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/distory/internal/client/api"
	"github.com/dmitrijs2005/distory/internal/client/models"
	"github.com/dmitrijs2005/distory/internal/client/store"
	"github.com/dmitrijs2005/distory/internal/logging"
	_ "modernc.org/sqlite"
)

// fakeClient implements api.Client with overridable behavior per method.
type fakeClient struct {
	loginFn      func(ctx context.Context, email, password string) (*api.LoginResult, error)
	registerFn   func(ctx context.Context, name, email, password string) error
	getStoriesFn func(ctx context.Context, token string, page, size int, withLocation bool) ([]models.Story, error)
	getStoryFn   func(ctx context.Context, token, id string) (*models.Story, error)
	addStoryFn   func(ctx context.Context, token string, story *models.PendingStory) error
	subscribeFn  func(ctx context.Context, token string, sub *api.PushSubscription) error
	unsubFn      func(ctx context.Context, token, endpoint string) error
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*api.LoginResult, error) {
	return f.loginFn(ctx, email, password)
}

func (f *fakeClient) Register(ctx context.Context, name, email, password string) error {
	return f.registerFn(ctx, name, email, password)
}

func (f *fakeClient) GetStories(ctx context.Context, token string, page, size int, withLocation bool) ([]models.Story, error) {
	return f.getStoriesFn(ctx, token, page, size, withLocation)
}

func (f *fakeClient) GetStory(ctx context.Context, token, id string) (*models.Story, error) {
	return f.getStoryFn(ctx, token, id)
}

func (f *fakeClient) AddStory(ctx context.Context, token string, story *models.PendingStory) error {
	return f.addStoryFn(ctx, token, story)
}

func (f *fakeClient) Subscribe(ctx context.Context, token string, sub *api.PushSubscription) error {
	if f.subscribeFn == nil {
		return nil
	}
	return f.subscribeFn(ctx, token, sub)
}

func (f *fakeClient) Unsubscribe(ctx context.Context, token, endpoint string) error {
	if f.unsubFn == nil {
		return nil
	}
	return f.unsubFn(ctx, token, endpoint)
}

func setupStore(t *testing.T) *store.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))

	st, err := store.Open(context.Background(), dsn, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func testLogger() logging.Logger {
	return logging.NewDefault(slog.LevelError)
}

// signedToken mints an unsigned-trust HS256 token with the given expiry.
func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": "u1",
		"exp":    exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return s
}
