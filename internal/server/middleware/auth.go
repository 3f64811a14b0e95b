package middleware

import (
	"fmt"
	"strings"

	"github.com/doafacil/doafacil/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const userIDKey = "user_id"

// BearerAuth verifies the Authorization bearer token and stores the subject
// claim as the principal id. User lookup itself happens in the usecase layer.
func BearerAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return models.NewAuthError("Acesso negado.")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return models.NewAuthError("Acesso negado.")
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return models.NewAuthError("Acesso negado.")
			}

			subject, err := token.Claims.GetSubject()
			if err != nil || subject == "" {
				return models.NewAuthError("Acesso negado.")
			}

			c.Set(userIDKey, subject)
			return next(c)
		}
	}
}

// UserID returns the authenticated principal id, if any.
func UserID(c echo.Context) string {
	if id, ok := c.Get(userIDKey).(string); ok {
		return id
	}
	return ""
}
