package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/fresh-pantry/backend/internal/ai"
	"example.com/fresh-pantry/backend/internal/auth"
	"example.com/fresh-pantry/backend/internal/models"
	"example.com/fresh-pantry/backend/internal/repository"
	"example.com/fresh-pantry/backend/internal/storage"
)

// maxUploadBytes ограничивает размер загружаемого снимка.
const maxUploadBytes = 10 << 20

type ScanHandler struct {
	Service  *ai.Service
	Items    *repository.ItemRepository
	AIRepo   *repository.AIRepository
	Uploader *storage.Uploader
	Provider string
	Model    string
}

// NewScanHandler создает обработчик сканирования продуктов.
func NewScanHandler(service *ai.Service, items *repository.ItemRepository, aiRepo *repository.AIRepository, uploader *storage.Uploader, provider, model string) *ScanHandler {
	return &ScanHandler{
		Service:  service,
		Items:    items,
		AIRepo:   aiRepo,
		Uploader: uploader,
		Provider: provider,
		Model:    model,
	}
}

type ScanResponse struct {
	Analysis        models.AnalysisResult `json:"analysis"`
	ImageURL        string                `json:"image_url,omitempty"`
	SuggestedExpiry time.Time             `json:"suggested_expiry"`
	Fallback        bool                  `json:"fallback"`
}

type SaveScanRequest struct {
	Name       string                 `json:"name" validate:"required,max=200"`
	Category   string                 `json:"category" validate:"omitempty,max=100"`
	Notes      string                 `json:"notes" validate:"omitempty,max=1000"`
	ExpiryDate *time.Time             `json:"expiry_date"`
	ImageURL   string                 `json:"image_url" validate:"omitempty,url"`
	Analysis   map[string]interface{} `json:"analysis"`
}

// Analyze принимает фото продукта, прогоняет его через модель и возвращает
// нормализованный результат. Отказ модели не является ошибкой запроса:
// клиент получает встроенный результат с флагом fallback.
func (h *ScanHandler) Analyze(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return badRequest(c, "image file is required")
	}

	if fileHeader.Size > maxUploadBytes {
		return badRequest(c, "image is too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return serverError(c)
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return serverError(c)
	}

	image, mimeType, err := storage.NormalizeImage(raw)
	if err != nil {
		return badRequest(c, "unsupported image format")
	}

	imageURL := ""
	if h.Uploader != nil {
		url, uploadErr := h.Uploader.UploadImage(c.Request().Context(), userID, image, mimeType)
		if uploadErr != nil {
			slog.Warn("scan image upload failed",
				slog.String("user_id", userID.String()), slog.Any("error", uploadErr))
		} else {
			imageURL = url
		}
	}

	input := ai.AnalyzeFoodInput{
		Image:    image,
		MimeType: mimeType,
		Hint:     c.FormValue("hint"),
	}

	analysis, prompt, rawResponse, err := h.Service.AnalyzeFood(c.Request().Context(), input)
	logAIRequest(c.Request().Context(), h.AIRepo, userID, aiRequestAnalyzeFood, h.Provider, h.Model, prompt, rawResponse, err)

	fallback := false
	if err != nil {
		analysis = ai.ExampleAnalysis()
		fallback = true
		slog.Warn("food analysis fallback used",
			slog.String("user_id", userID.String()), slog.Any("error", err))
	}

	return c.JSON(http.StatusOK, ScanResponse{
		Analysis:        analysis,
		ImageURL:        imageURL,
		SuggestedExpiry: expiryFromDaysLeft(analysis.DaysLeft),
		Fallback:        fallback,
	})
}

// Save сохраняет отсканированный продукт в инвентарь. Присланный анализ
// прогоняется через нормализатор заново: клиент не может записать в базу
// значения вне допустимых диапазонов.
func (h *ScanHandler) Save(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req SaveScanRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	var analysis *models.AnalysisResult
	if req.Analysis != nil {
		normalized := ai.NormalizeAnalysis(req.Analysis)
		analysis = &normalized
	}

	expiryDate := time.Time{}
	if req.ExpiryDate != nil {
		expiryDate = *req.ExpiryDate
	} else if analysis != nil {
		expiryDate = expiryFromDaysLeft(analysis.DaysLeft)
	} else {
		return badRequest(c, "expiry_date or analysis is required")
	}

	item, err := h.Items.Add(c.Request().Context(), models.PantryItem{
		UserID:     userID,
		Name:       req.Name,
		Category:   req.Category,
		ExpiryDate: expiryDate,
		Notes:      req.Notes,
		Analysis:   analysis,
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, repository.ErrInvalid) {
			return badRequest(c, "name is required")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, toItemResponse(item))
}

// expiryFromDaysLeft переводит остаток дней в дату истечения на конец
// соответствующих суток.
func expiryFromDaysLeft(daysLeft int) time.Time {
	day := time.Now().UTC().AddDate(0, 0, daysLeft)
	return time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, time.UTC)
}
