package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/material-mover/marketplace-api/internal/api/metrics"
	"github.com/material-mover/marketplace-api/internal/core/domain"
	"github.com/material-mover/marketplace-api/internal/core/token"
)

// Context keys set by Guard on successful verification.
const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
	CtxRole   = "role"
)

// Guard is the single authorization boundary. With an empty role set the
// route is public: requests without a credential, and requests whose
// credential fails verification, proceed anonymously (tokens are best effort
// on public routes). With a non-empty role set a verified credential carrying
// one of the roles is mandatory. Downstream handlers trust the attached
// identity unconditionally.
func Guard(codec *token.Codec, log zerolog.Logger, roles ...domain.Role) echo.MiddlewareFunc {
	required := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		required[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c.Request().Header.Get("Authorization"))

			if raw == "" {
				if len(required) == 0 {
					return next(c)
				}
				metrics.AuthFailuresTotal.WithLabelValues("missing_credential").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
			}

			claims, err := codec.Verify(raw)
			if err != nil {
				// The verification failure cause is logged but never exposed.
				log.Debug().Err(err).Str("path", c.Path()).Msg("credential verification failed")
				if len(required) == 0 {
					return next(c)
				}
				metrics.AuthFailuresTotal.WithLabelValues("invalid_credential").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxEmail, claims.Email)
			c.Set(CtxRole, claims.Role)

			if len(required) > 0 {
				if _, ok := required[claims.Role]; !ok {
					metrics.AuthFailuresTotal.WithLabelValues("insufficient_role").Inc()
					return echo.NewHTTPError(http.StatusForbidden, "forbidden - insufficient role")
				}
			}
			return next(c)
		}
	}
}

// bearerToken extracts the credential from an Authorization header. A bare
// token without the Bearer prefix is accepted as well.
func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(header)
}
