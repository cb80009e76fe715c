package services

import (
	"sitestock-backend/models"
)

// RunwayPoint точка исторической траектории запаса
type RunwayPoint struct {
	Date            string   `json:"date"`
	AverageBurnRate float64  `json:"averageBurnRate"`
	RunwayDays      *float64 `json:"runwayDays"`
}

// UsagePoint одно списание в истории
type UsagePoint struct {
	Date         string `json:"date"`
	UsedQuantity int    `json:"usedQuantity"`
}

// RunwayDays на сколько дней хватит остатка; nil, если расход не положительный
func RunwayDays(quantity int, burnRate float64) *float64 {
	if burnRate <= 0 {
		return nil
	}
	days := float64(quantity) / burnRate
	return &days
}

// RunwayHistory прогоняет журнал списаний от старых к новым.
// Остаток стартует с текущего количества, а не с исторического;
// "день" увеличивается на каждую запись журнала.
func RunwayHistory(currentQuantity int, usage []models.InventoryUsage) []RunwayPoint {
	history := make([]RunwayPoint, 0, len(usage))

	remaining := currentQuantity
	totalUsed := 0
	days := 0

	for _, entry := range usage {
		totalUsed += entry.UsedQuantity
		days++

		avg := float64(totalUsed) / float64(days)
		history = append(history, RunwayPoint{
			Date:            entry.UsedAt.UTC().Format("2006-01-02"),
			AverageBurnRate: avg,
			RunwayDays:      RunwayDays(remaining, avg),
		})

		remaining -= entry.UsedQuantity
	}

	return history
}

// UsageHistory журнал списаний с точностью до минуты
func UsageHistory(usage []models.InventoryUsage) []UsagePoint {
	history := make([]UsagePoint, 0, len(usage))
	for _, entry := range usage {
		history = append(history, UsagePoint{
			Date:         entry.UsedAt.UTC().Format("2006-01-02T15:04"),
			UsedQuantity: entry.UsedQuantity,
		})
	}
	return history
}
