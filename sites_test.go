package main

import (
	"encoding/json"
	"testing"

	"sitestock-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterialsSeeded(t *testing.T) {
	app, db := setupTestApp(t)

	// Повторный запуск не дублирует справочник
	require.NoError(t, models.SeedDefaultMaterials(db))

	resp, body := doJSON(t, app, "GET", "/materials", nil)
	assert.Equal(t, 200, resp.StatusCode)

	var materials []models.Material
	require.NoError(t, json.Unmarshal(body, &materials))
	require.Len(t, materials, 3)
	assert.Equal(t, "Cement", materials[0].Name)
	assert.Equal(t, "Steel", materials[1].Name)
	assert.Equal(t, "Sand", materials[2].Name)
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	assert.NoError(t, models.Migrate(db))
}

func TestSites(t *testing.T) {
	app, _ := setupTestApp(t)

	t.Run("Пустой список", func(t *testing.T) {
		resp, body := doJSON(t, app, "GET", "/sites", nil)
		assert.Equal(t, 200, resp.StatusCode)
		assert.JSONEq(t, "[]", string(body))
	})

	t.Run("Создание площадки", func(t *testing.T) {
		resp, body := doJSON(t, app, "POST", "/sites", map[string]interface{}{
			"name": "  North Tower ",
		})
		assert.Equal(t, 200, resp.StatusCode)

		var site models.Site
		require.NoError(t, json.Unmarshal(body, &site))
		assert.NotZero(t, site.ID)
		assert.Equal(t, "North Tower", site.Name)
	})

	t.Run("Пустое название", func(t *testing.T) {
		resp, _ := doJSON(t, app, "POST", "/sites", map[string]interface{}{
			"name": "   ",
		})
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("Список площадок", func(t *testing.T) {
		resp, body := doJSON(t, app, "GET", "/sites", nil)
		assert.Equal(t, 200, resp.StatusCode)

		var sites []models.Site
		require.NoError(t, json.Unmarshal(body, &sites))
		require.Len(t, sites, 1)
		assert.Equal(t, "North Tower", sites[0].Name)
	})
}

func TestHealth(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, body := doJSON(t, app, "GET", "/", nil)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "Inventory backend is running", string(body))

	resp, body = doJSON(t, app, "GET", "/health", nil)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"ok"`)
}

func TestMetricsEndpoint(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	cfg.MetricsEnabled = true
	app := setupApp(db, cfg, nil)

	site := createTestSite(t, db, "North Tower")
	inv := createTestPosition(t, db, site.ID, cementID, 10, 1, nil)
	resp, _ := doJSON(t, app, "POST", "/inventory/check-in", map[string]interface{}{
		"inventory_id":  inv.ID,
		"used_quantity": 1,
	})
	require.Equal(t, 200, resp.StatusCode)

	resp, body := doJSON(t, app, "GET", "/metrics", nil)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, string(body), `sitestock_checkins_total{outcome="recorded"}`)
}
