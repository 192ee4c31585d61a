package handler

import (
	"github.com/labstack/echo/v4"

	"picklesaathi/internal/auth"
	"picklesaathi/internal/errors"
	"picklesaathi/internal/model"
	"picklesaathi/internal/service"
)

// resolveCaller resolves the request's identity to a user row: the cached
// read path first, full reconciliation only for first logins and legacy
// rows still missing their external id. On secured routes the JWT
// middleware has already rejected anonymous requests, so a nil result
// here only happens on optional-auth routes.
func resolveCaller(c echo.Context, identity service.IdentityService) (*model.User, error) {
	ctx := c.Request().Context()
	ident := auth.IdentityFromContext(c)

	user, err := identity.CurrentUser(ctx, ident)
	if err == nil {
		return user, nil
	}
	if err != errors.ErrUserNotFound {
		return nil, err
	}
	return identity.Reconcile(ctx, ident)
}
