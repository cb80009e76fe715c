package services

import (
	"testing"
	"time"

	"sitestock-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStore журнал списаний в памяти; остальные методы Store не реализованы
type stubStore struct {
	Store
	usage []models.InventoryUsage
	since time.Time
}

func (s *stubStore) UsageSince(inventoryID uint, since time.Time) ([]models.InventoryUsage, error) {
	s.since = since
	result := []models.InventoryUsage{}
	for _, u := range s.usage {
		if u.InventoryID == inventoryID && !u.UsedAt.Before(since) {
			result = append(result, u)
		}
	}
	return result, nil
}

func (s *stubStore) LastUsageAt(inventoryID uint) (*time.Time, error) {
	var last *time.Time
	for i := range s.usage {
		u := s.usage[i]
		if u.InventoryID != inventoryID {
			continue
		}
		if last == nil || u.UsedAt.After(*last) {
			last = &s.usage[i].UsedAt
		}
	}
	return last, nil
}

func fixedClock(now time.Time) func() time.Time {
	return func() time.Time { return now }
}

func TestAverageBurnRate(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	store := &stubStore{usage: []models.InventoryUsage{
		{InventoryID: 1, UsedQuantity: 90, UsedAt: now.Add(-8 * day)},
		{InventoryID: 1, UsedQuantity: 10, UsedAt: now.Add(-6 * day)},
		{InventoryID: 1, UsedQuantity: 20, UsedAt: now.Add(-time.Hour)},
		{InventoryID: 2, UsedQuantity: 500, UsedAt: now.Add(-time.Hour)},
	}}

	estimator := NewBurnRateEstimator(store, Options{Now: fixedClock(now)})

	avg, err := estimator.AverageBurnRate(1)
	require.NoError(t, err)
	require.NotNil(t, avg)
	assert.Equal(t, 15.0, *avg)
	assert.Equal(t, now.Add(-7*day), store.since)

	avg, err = estimator.AverageBurnRate(3)
	require.NoError(t, err)
	assert.Nil(t, avg)
}

func TestAverageBurnRateWindowOption(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	store := &stubStore{usage: []models.InventoryUsage{
		{InventoryID: 1, UsedQuantity: 30, UsedAt: now.Add(-8 * day)},
		{InventoryID: 1, UsedQuantity: 10, UsedAt: now.Add(-day)},
	}}

	estimator := NewBurnRateEstimator(store, Options{BurnRateWindowDays: 14, Now: fixedClock(now)})

	avg, err := estimator.AverageBurnRate(1)
	require.NoError(t, err)
	require.NotNil(t, avg)
	assert.Equal(t, 20.0, *avg)
}
