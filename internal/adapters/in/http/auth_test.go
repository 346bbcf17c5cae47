package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"orderhub/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, secret []byte, subject string, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, staffClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func invokeWithAuth(t *testing.T, token string, handler echo.HandlerFunc, middleware ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// middleware order matches RegisterRoutes: auth first, then the role check
	inner := handler
	for i := len(middleware) - 1; i >= 0; i-- {
		inner = middleware[i](inner)
	}
	wrapped := authMiddleware(testSecret)(inner)
	return rec, wrapped(c)
}

func TestAuthMiddleware_ValidStaffToken(t *testing.T) {
	staffID := kernel.NewUUID()
	token := signToken(t, testSecret, staffID.String(), RoleStaff)

	_, err := invokeWithAuth(t, token, func(c echo.Context) error {
		actor, ok := actorFrom(c)
		require.True(t, ok)
		assert.True(t, actor.ID.IsEqual(staffID))
		assert.Equal(t, RoleStaff, actor.Role)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, err)
}

func TestAuthMiddleware_NoTokenIsAnonymous(t *testing.T) {
	_, err := invokeWithAuth(t, "", func(c echo.Context) error {
		_, ok := actorFrom(c)
		assert.False(t, ok)
		assert.Nil(t, actorID(c))
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, err)
}

func TestAuthMiddleware_ForgedTokenRejected(t *testing.T) {
	forged := signToken(t, []byte("wrong-secret"), kernel.NewUUID().String(), RoleAdmin)

	_, err := invokeWithAuth(t, forged, func(c echo.Context) error {
		t.Fatal("handler must not run with a forged token")
		return nil
	})
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestAuthMiddleware_ExpiredTokenRejected(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, staffClaims{
		Role: RoleStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   kernel.NewUUID().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	expired, err := token.SignedString(testSecret)
	require.NoError(t, err)

	_, err = invokeWithAuth(t, expired, func(c echo.Context) error {
		t.Fatal("handler must not run with an expired token")
		return nil
	})
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestRequireStaff(t *testing.T) {
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	t.Run("staff passes", func(t *testing.T) {
		token := signToken(t, testSecret, kernel.NewUUID().String(), RoleStaff)
		_, err := invokeWithAuth(t, token, ok, requireStaff)
		require.NoError(t, err)
	})

	t.Run("admin passes", func(t *testing.T) {
		token := signToken(t, testSecret, kernel.NewUUID().String(), RoleAdmin)
		_, err := invokeWithAuth(t, token, ok, requireStaff)
		require.NoError(t, err)
	})

	t.Run("anonymous rejected", func(t *testing.T) {
		_, err := invokeWithAuth(t, "", ok, requireStaff)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	t.Run("admin passes", func(t *testing.T) {
		token := signToken(t, testSecret, kernel.NewUUID().String(), RoleAdmin)
		_, err := invokeWithAuth(t, token, ok, requireAdmin)
		require.NoError(t, err)
	})

	t.Run("staff rejected", func(t *testing.T) {
		token := signToken(t, testSecret, kernel.NewUUID().String(), RoleStaff)
		_, err := invokeWithAuth(t, token, ok, requireAdmin)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	})

	t.Run("anonymous rejected", func(t *testing.T) {
		_, err := invokeWithAuth(t, "", ok, requireAdmin)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	})
}
