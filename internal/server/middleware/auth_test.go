package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/doafacil/doafacil/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": subject})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func invokeAuth(t *testing.T, authHeader string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	next := func(c echo.Context) error { return nil }
	return c, BearerAuth(testSecret)(next)(c)
}

func TestBearerAuthValidToken(t *testing.T) {
	const subject = "64a0f2c8e13b4a5d6c7e8f90"

	c, err := invokeAuth(t, "Bearer "+signedToken(t, subject))
	require.NoError(t, err)
	assert.Equal(t, subject, UserID(c))
}

func TestBearerAuthRejects(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
	}{
		{name: "missing header"},
		{name: "not a bearer token", authHeader: "Basic abc"},
		{name: "garbage token", authHeader: "Bearer not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := invokeAuth(t, tt.authHeader)

			var appErr *models.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, http.StatusUnauthorized, appErr.Code)
		})
	}
}

func TestBearerAuthRejectsWrongSecret(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "abc"})
	signed, err := token.SignedString([]byte("another-secret"))
	require.NoError(t, err)

	_, err = invokeAuth(t, "Bearer "+signed)

	var appErr *models.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.Code)
}
