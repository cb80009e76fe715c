package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportInventory(t *testing.T) {
	app, db := setupTestApp(t)
	site := createTestSite(t, db, "North Tower")
	createTestPosition(t, db, site.ID, cementID, 100, 3, daysAgo(1))
	createTestPosition(t, db, site.ID, steelID, 40, 0, daysAgo(45))

	resp, body := doJSON(t, app, "GET", "/inventory/export", nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "inventory_")

	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(f.GetActiveSheetIndex()))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "inventory_id", rows[0][0])
	assert.Equal(t, "runway_days", rows[0][6])

	assert.Equal(t, "North Tower", rows[1][1])
	assert.Equal(t, "Cement", rows[1][2])
	assert.Equal(t, "100", rows[1][3])
	assert.Equal(t, "33.33", rows[1][6])
	assert.Equal(t, "FALSE", rows[1][7])

	assert.Equal(t, "Steel", rows[2][2])
	assert.Equal(t, "", rows[2][6])
	assert.Equal(t, "TRUE", rows[2][7])
}
