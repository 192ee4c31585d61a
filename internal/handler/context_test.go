package handler

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"picklesaathi/internal/auth"
	"picklesaathi/internal/errors"
	"picklesaathi/internal/model"
)

// MockIdentityService is a mock implementation of service.IdentityService.
type MockIdentityService struct {
	mock.Mock
}

func (m *MockIdentityService) Reconcile(ctx context.Context, ident *auth.Identity) (*model.User, error) {
	args := m.Called(ctx, ident)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockIdentityService) CurrentUser(ctx context.Context, ident *auth.Identity) (*model.User, error) {
	args := m.Called(ctx, ident)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func authedContext(e *echo.Echo) echo.Context {
	req := httptest.NewRequest("GET", "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set(auth.ContextKey, &jwt.Token{
		Claims: &auth.ProviderClaims{
			Emails:           []string{"jane.doe@example.com"},
			RegisteredClaims: jwt.RegisteredClaims{Subject: "ext_123"},
		},
		Valid: true,
	})
	return c
}

func TestResolveCaller_UsesCachedReadPathFirst(t *testing.T) {
	e := echo.New()
	identity := new(MockIdentityService)
	known := &model.User{ID: uuid.New(), Email: "jane.doe@example.com"}
	identity.On("CurrentUser", mock.Anything, mock.AnythingOfType("*auth.Identity")).Return(known, nil)

	user, err := resolveCaller(authedContext(e), identity)

	assert.NoError(t, err)
	assert.Equal(t, known.ID, user.ID)
	// A resolved caller never pays for the reconciliation round trip.
	identity.AssertNotCalled(t, "Reconcile", mock.Anything, mock.Anything)
}

func TestResolveCaller_ReconcilesFirstLogins(t *testing.T) {
	e := echo.New()
	identity := new(MockIdentityService)
	created := &model.User{ID: uuid.New(), Email: "jane.doe@example.com"}
	identity.On("CurrentUser", mock.Anything, mock.AnythingOfType("*auth.Identity")).Return(nil, errors.ErrUserNotFound)
	identity.On("Reconcile", mock.Anything, mock.AnythingOfType("*auth.Identity")).Return(created, nil)

	user, err := resolveCaller(authedContext(e), identity)

	assert.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	identity.AssertExpectations(t)
}

func TestResolveCaller_PropagatesStoreFailures(t *testing.T) {
	e := echo.New()
	identity := new(MockIdentityService)
	identity.On("CurrentUser", mock.Anything, mock.AnythingOfType("*auth.Identity")).Return(nil, gorm.ErrInvalidDB)

	user, err := resolveCaller(authedContext(e), identity)

	assert.Error(t, err)
	assert.Nil(t, user)
	identity.AssertNotCalled(t, "Reconcile", mock.Anything, mock.Anything)
}

func TestResolveCaller_AnonymousIsNil(t *testing.T) {
	e := echo.New()
	identity := new(MockIdentityService)
	identity.On("CurrentUser", mock.Anything, (*auth.Identity)(nil)).Return(nil, nil)

	req := httptest.NewRequest("GET", "/", nil)
	user, err := resolveCaller(e.NewContext(req, httptest.NewRecorder()), identity)

	assert.NoError(t, err)
	assert.Nil(t, user)
	identity.AssertNotCalled(t, "Reconcile", mock.Anything, mock.Anything)
}
