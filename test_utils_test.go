package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"sitestock-backend/config"
	"sitestock-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB создает временную SQLite базу с миграциями и справочником материалов
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := models.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))
	require.NoError(t, models.SeedDefaultMaterials(db))

	t.Cleanup(func() { _ = models.Close(db) })
	return db
}

// testConfig конфигурация без авторизации и метрик
func testConfig() *config.Config {
	return &config.Config{
		CORSOrigins:        "*",
		DeadStockDays:      30,
		BurnRateWindowDays: 7,
	}
}

// setupTestApp приложение поверх временной базы
func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	db := setupTestDB(t)
	return setupApp(db, testConfig(), nil), db
}

// doJSON выполняет запрос и возвращает ответ и тело
func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, headers ...string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(jsonData)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func createTestSite(t *testing.T, db *gorm.DB, name string) models.Site {
	t.Helper()
	site := models.Site{Name: name}
	require.NoError(t, db.Create(&site).Error)
	return site
}

func createTestPosition(t *testing.T, db *gorm.DB, siteID, materialID uint, quantity int, rate float64, lastUsed *time.Time) models.Inventory {
	t.Helper()
	inv := models.Inventory{
		SiteID:        siteID,
		MaterialID:    materialID,
		Quantity:      quantity,
		DailyBurnRate: rate,
		LastUsedAt:    lastUsed,
	}
	require.NoError(t, db.Create(&inv).Error)
	return inv
}

func addTestUsage(t *testing.T, db *gorm.DB, inventoryID uint, used int, at time.Time) {
	t.Helper()
	usage := models.InventoryUsage{InventoryID: inventoryID, UsedQuantity: used, UsedAt: at}
	require.NoError(t, db.Create(&usage).Error)
}

func daysAgo(days int) *time.Time {
	t := time.Now().Add(-time.Duration(days) * 24 * time.Hour)
	return &t
}

// материалы из справочника по умолчанию
const (
	cementID uint = 1
	steelID  uint = 2
)
