package utils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// CheckInsTotal списания по результату: recorded, exceeds_stock, not_found, invalid
	CheckInsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sitestock_checkins_total",
		Help: "Inventory check-ins by outcome.",
	}, []string{"outcome"})

	// UsedQuantityTotal суммарно списано единиц материала
	UsedQuantityTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sitestock_used_quantity_total",
		Help: "Total quantity consumed through check-ins.",
	})

	// TransferAdviceTotal рекомендации: transfer или purchase
	TransferAdviceTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sitestock_transfer_advice_total",
		Help: "Stock request advice by outcome.",
	}, []string{"outcome"})

	// RiskAssessmentsTotal оценки риска по уровню
	RiskAssessmentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sitestock_risk_assessments_total",
		Help: "Stock request risk assessments by level.",
	}, []string{"level"})
)

// MetricsHandler отдает метрики Prometheus через Fiber
func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
