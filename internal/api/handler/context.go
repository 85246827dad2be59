package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/material-mover/marketplace-api/internal/api/middleware"
	"github.com/material-mover/marketplace-api/internal/core/domain"
)

// ctxIdentity extracts the identity the access guard attached and fast-fails
// when a role-guarded handler somehow runs without one.
func ctxIdentity(c echo.Context) (userID string, role domain.Role, err error) {
	userID, _ = c.Get(middleware.CtxUserID).(string)
	role, _ = c.Get(middleware.CtxRole).(domain.Role)
	if userID == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, role, nil
}

// hasIdentity reports whether the guard attached a verified identity. Public
// routes use it to decide contact-field redaction.
func hasIdentity(c echo.Context) bool {
	userID, _ := c.Get(middleware.CtxUserID).(string)
	return userID != ""
}
