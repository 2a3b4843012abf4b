package auth

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const ContextUserIDKey = "user_id"

// queryTokenParam позволяет передать access-токен в query-параметре.
// EventSource в браузере не умеет ставить заголовки, поэтому SSE-поток
// авторизуется этим способом.
const queryTokenParam = "access_token"

// JWTMiddleware проверяет access-токен и сохраняет user_id в контексте.
// Токен берется из заголовка Authorization либо из query-параметра.
func JWTMiddleware(manager *TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, err := extractToken(c)
			if err != nil {
				return err
			}

			claims, err := manager.ParseAccessToken(tokenString)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
			}

			c.Set(ContextUserIDKey, userID)
			return next(c)
		}
	}
}

func extractToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
		}

		return tokenString, nil
	}

	if tokenString := strings.TrimSpace(c.QueryParam(queryTokenParam)); tokenString != "" {
		return tokenString, nil
	}

	return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
}

// UserIDFromContext извлекает идентификатор пользователя из контекста.
func UserIDFromContext(c echo.Context) (uuid.UUID, bool) {
	value := c.Get(ContextUserIDKey)
	userID, ok := value.(uuid.UUID)
	return userID, ok
}
