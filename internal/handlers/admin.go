package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/fresh-pantry/backend/internal/auth"
	"example.com/fresh-pantry/backend/internal/repository"
)

type AdminHandler struct {
	Users  *repository.UserRepository
	AIRepo *repository.AIRepository
}

// NewAdminHandler создает обработчик админских эндпоинтов.
func NewAdminHandler(users *repository.UserRepository, aiRepo *repository.AIRepository) *AdminHandler {
	return &AdminHandler{Users: users, AIRepo: aiRepo}
}

type AdminUserResponse struct {
	ID                   uuid.UUID `json:"id"`
	Email                string    `json:"email"`
	Name                 *string   `json:"name,omitempty"`
	NotificationsEnabled bool      `json:"notifications_enabled"`
	CreatedAt            string    `json:"created_at"`
}

type AdminUsersResponse struct {
	Total int                 `json:"total"`
	Users []AdminUserResponse `json:"users"`
}

type AdminAIRequestsResponse struct {
	Total    int                          `json:"total"`
	Requests []repository.AIRequestRecord `json:"requests"`
}

// ListUsers возвращает список пользователей для админки.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	limit, err := parseLimit(c, 50, 200)
	if err != nil {
		return badRequest(c, err.Error())
	}

	users, err := h.Users.ListUsers(c.Request().Context(), int64(limit))
	if err != nil {
		return serverError(c)
	}

	response := make([]AdminUserResponse, 0, len(users))
	for _, user := range users {
		response = append(response, AdminUserResponse{
			ID:                   user.ID,
			Email:                user.Email,
			Name:                 user.Name,
			NotificationsEnabled: user.NotificationsEnabled,
			CreatedAt:            user.CreatedAt.Format(timeLayout),
		})
	}

	return c.JSON(http.StatusOK, AdminUsersResponse{
		Total: len(response),
		Users: response,
	})
}

// ListAIRequests возвращает последние логи AI-запросов.
func (h *AdminHandler) ListAIRequests(c echo.Context) error {
	limit, err := parseLimit(c, 50, 200)
	if err != nil {
		return badRequest(c, err.Error())
	}

	requests, err := h.AIRepo.ListRecent(c.Request().Context(), int64(limit))
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, AdminAIRequestsResponse{
		Total:    len(requests),
		Requests: requests,
	})
}

// AdminMiddleware ограничивает доступ к админским роутам по email.
func AdminMiddleware(users *repository.UserRepository, emails []string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(emails))
	for _, email := range emails {
		trimmed := strings.ToLower(strings.TrimSpace(email))
		if trimmed == "" {
			continue
		}
		allowed[trimmed] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := auth.UserIDFromContext(c)
			if !ok {
				return unauthorized(c)
			}

			if len(allowed) == 0 {
				return forbidden(c)
			}

			user, err := users.GetByID(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return forbidden(c)
				}
				return serverError(c)
			}

			email := strings.ToLower(strings.TrimSpace(user.Email))
			if _, ok := allowed[email]; !ok {
				return forbidden(c)
			}

			return next(c)
		}
	}
}

func parseLimit(c echo.Context, defaultLimit, maxLimit int) (int, error) {
	limit := defaultLimit
	if raw := strings.TrimSpace(c.QueryParam("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return 0, errors.New("invalid limit")
		}
		if parsed > maxLimit {
			parsed = maxLimit
		}
		limit = parsed
	}

	return limit, nil
}
