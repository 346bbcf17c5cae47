package http

import (
	"net/http"
	"strings"

	"orderhub/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Staff roles carried in the JWT "role" claim.
const (
	RoleStaff = "staff"
	RoleAdmin = "admin"
)

const actorContextKey = "actor"

// Actor is the authenticated operator extracted from a JWT. Requests without
// a token stay anonymous; their mutations are audited with a nil actor.
type Actor struct {
	ID   kernel.UUID
	Role string
}

// IsAdmin reports whether the actor may use privileged operations
// (admin override, bulk purge).
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

type staffClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// authMiddleware parses an optional Bearer token and stores the Actor in the
// request context. An invalid or expired token is rejected outright rather
// than downgraded to anonymous.
func authMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}

			raw, found := strings.CutPrefix(header, "Bearer ")
			if !found {
				return echo.NewHTTPError(http.StatusUnauthorized, "malformed authorization header")
			}

			claims := &staffClaims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			actorID, err := kernel.UUIDFromString(claims.Subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
			}

			c.Set(actorContextKey, Actor{ID: actorID, Role: claims.Role})
			return next(c)
		}
	}
}

// requireStaff rejects requests without an authenticated staff or admin
// actor.
func requireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, ok := actorFrom(c)
		if !ok || (actor.Role != RoleStaff && actor.Role != RoleAdmin) {
			return echo.NewHTTPError(http.StatusUnauthorized, "staff credentials required")
		}
		return next(c)
	}
}

// requireAdmin rejects requests without an admin actor.
func requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, ok := actorFrom(c)
		if !ok || !actor.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "admin credentials required")
		}
		return next(c)
	}
}

func actorFrom(c echo.Context) (Actor, bool) {
	actor, ok := c.Get(actorContextKey).(Actor)
	return actor, ok
}

// actorID returns the audit attribution for the request: the actor's id, or
// nil for anonymous customer actions.
func actorID(c echo.Context) *kernel.UUID {
	actor, ok := actorFrom(c)
	if !ok {
		return nil
	}
	id := actor.ID
	return &id
}
