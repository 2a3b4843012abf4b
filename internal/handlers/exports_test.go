package handlers

import (
	"testing"
	"time"

	"example.com/fresh-pantry/backend/internal/models"
)

// TestCSVRows проверяет форму CSV-выгрузки: заголовок и строку продукта.
func TestCSVRows(t *testing.T) {
	expiry := time.Date(2026, 3, 12, 23, 59, 59, 0, time.UTC)
	added := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	rows := csvRows([]models.PantryItem{{
		ID:         "65f0c3a1b2c3d4e5f6a7b8c9",
		Name:       "Milk",
		Category:   "Dairy",
		DaysLeft:   2,
		ExpiryDate: expiry,
		AddedDate:  added,
		Notes:      "open carton",
	}})

	if len(rows) != 2 {
		t.Fatalf("expected header and one row, got %d rows", len(rows))
	}

	header := rows[0]
	if header[0] != "id" || header[len(header)-1] != "notes" {
		t.Fatalf("unexpected header: %v", header)
	}

	row := rows[1]
	if len(row) != len(header) {
		t.Fatalf("expected %d columns, got %d", len(header), len(row))
	}
	if row[1] != "Milk" || row[3] != "2" || row[4] != "soon" {
		t.Fatalf("unexpected row: %v", row)
	}
	if row[5] != "2026-03-12T23:59:59Z" {
		t.Fatalf("unexpected expiry format: %s", row[5])
	}
}

// TestCSVRowsEmpty проверяет, что пустой инвентарь дает только заголовок.
func TestCSVRowsEmpty(t *testing.T) {
	rows := csvRows(nil)
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
}
