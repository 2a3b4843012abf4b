package handlers

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/fresh-pantry/backend/internal/auth"
	"example.com/fresh-pantry/backend/internal/freshness"
	"example.com/fresh-pantry/backend/internal/models"
)

const timeLayout = time.RFC3339

// ExportJSON выгружает инвентарь пользователя в JSON-файл.
func (h *ItemHandler) ExportJSON(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	items, err := h.Items.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	response := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toItemResponse(item))
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="pantry.json"`)

	return c.JSON(http.StatusOK, ItemListResponse{Items: response})
}

// ExportCSV выгружает инвентарь пользователя в CSV-файл.
func (h *ItemHandler) ExportCSV(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	items, err := h.Items.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	for _, row := range csvRows(items) {
		if err := writer.Write(row); err != nil {
			return serverError(c)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return serverError(c)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="pantry.csv"`)

	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

// csvRows собирает строки CSV-выгрузки, первой идет строка заголовков.
func csvRows(items []models.PantryItem) [][]string {
	rows := make([][]string, 0, len(items)+1)
	rows = append(rows, []string{"id", "name", "category", "days_left", "tier", "expiry_date", "added_date", "notes"})

	for _, item := range items {
		rows = append(rows, []string{
			item.ID,
			item.Name,
			item.Category,
			formatInt(item.DaysLeft),
			string(freshness.Classify(item.DaysLeft)),
			item.ExpiryDate.Format(timeLayout),
			item.AddedDate.Format(timeLayout),
			item.Notes,
		})
	}

	return rows
}

func formatInt(v int) string {
	return strconv.Itoa(v)
}
