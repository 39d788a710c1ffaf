package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"SchemePortalAPI/internal/model"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func callProtected(t *testing.T, token string, extra ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()

	handler := func(c echo.Context) error {
		claims := GetClaims(c)
		require.NotNil(t, claims)
		return c.JSON(http.StatusOK, echo.Map{"userid": claims.UserID})
	}
	h := handler
	for _, mw := range extra {
		h = mw(h)
	}
	wrapped := JWTMiddleware()(h)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	require.NoError(t, wrapped(e.NewContext(req, rec)))
	return rec
}

func TestJWTMiddlewareAcceptsValidToken(t *testing.T) {
	token, err := GenerateToken(42, "a@x.com", "Asha", model.RoleCitizen, 1)
	require.NoError(t, err)

	rec := callProtected(t, token)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTMiddlewareRejectsMissingOrBadToken(t *testing.T) {
	rec := callProtected(t, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = callProtected(t, "not.a.token")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMiddlewareRejectsExpiredToken(t *testing.T) {
	token, err := GenerateToken(42, "a@x.com", "Asha", model.RoleCitizen, -1)
	require.NoError(t, err)

	rec := callProtected(t, token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoleMiddleware(t *testing.T) {
	adminToken, err := GenerateToken(1, "root@x.com", "Root", model.RoleAdmin, 1)
	require.NoError(t, err)
	citizenToken, err := GenerateToken(2, "a@x.com", "Asha", model.RoleCitizen, 1)
	require.NoError(t, err)

	rec := callProtected(t, adminToken, AdminOnly)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = callProtected(t, citizenToken, AdminOnly)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = callProtected(t, citizenToken, CitizenOnly)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = callProtected(t, adminToken, AgencyOnly)
	require.Equal(t, http.StatusForbidden, rec.Code)
}
