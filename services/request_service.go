package services

import (
	"fmt"

	"sitestock-backend/utils"
)

// RiskLevel уровень риска запроса материала
type RiskLevel string

const (
	RiskLow     RiskLevel = "LOW"
	RiskMedium  RiskLevel = "MEDIUM"
	RiskHigh    RiskLevel = "HIGH"
	RiskUnknown RiskLevel = "UNKNOWN"
)

var riskMessages = map[RiskLevel]string{
	RiskLow:     "Request is safe.",
	RiskMedium:  "This request significantly reduces buffer. Monitor closely.",
	RiskHigh:    "This request may cause work stoppage within 1 day.",
	RiskUnknown: "Not enough usage data to assess risk. Proceed with caution.",
}

// StockRequest запрос площадки на материал
type StockRequest struct {
	SiteID     uint `json:"site_id"`
	MaterialID uint `json:"material_id"`
	Quantity   int  `json:"quantity"`
}

func (r StockRequest) validate() error {
	if r.SiteID == 0 || r.MaterialID == 0 || r.Quantity == 0 {
		return &ValidationError{Message: "site_id, material_id and quantity are required"}
	}
	if r.Quantity < 0 {
		return &ValidationError{Message: "quantity must be positive"}
	}
	if r.Quantity > MaxQuantity {
		return &ValidationError{Message: "quantity is too large"}
	}
	return nil
}

// TransferAdvice рекомендация: перебросить остаток с другой площадки или закупать
type TransferAdvice struct {
	Suggestion        bool   `json:"suggestion"`
	Message           string `json:"message"`
	FromSite          string `json:"fromSite,omitempty"`
	FromSiteID        uint   `json:"fromSiteId,omitempty"`
	InventoryID       uint   `json:"inventoryId,omitempty"`
	AvailableQuantity int    `json:"availableQuantity,omitempty"`
}

// RiskAssessment результат симуляции запроса
type RiskAssessment struct {
	RiskLevel          RiskLevel `json:"riskLevel"`
	CurrentRunway      *float64  `json:"currentRunway,omitempty"`
	RunwayAfterRequest *float64  `json:"runwayAfterRequest,omitempty"`
	Message            string    `json:"message"`
}

// RequestService советник по переброске и анализ риска. Ничего не изменяет в базе.
type RequestService struct {
	store     Store
	estimator *BurnRateEstimator
	deadStock *DeadStockDetector
}

// NewRequestService создает сервис запросов
func NewRequestService(store Store, opts Options) *RequestService {
	opts = opts.withDefaults()
	return &RequestService{
		store:     store,
		estimator: NewBurnRateEstimator(store, opts),
		deadStock: NewDeadStockDetector(store, opts),
	}
}

// AdviseTransfer ищет мертвый остаток того же материала на других площадках.
// Берется первый подходящий кандидат (самый большой остаток).
func (s *RequestService) AdviseTransfer(req StockRequest) (*TransferAdvice, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	candidates, err := s.store.SurplusCandidates(req.SiteID, req.MaterialID, req.Quantity)
	if err != nil {
		return nil, err
	}

	for _, c := range candidates {
		dead, err := s.deadStock.IsPositionDead(c.ID, c.LastUsedAt)
		if err != nil {
			return nil, err
		}
		if !dead {
			continue
		}

		utils.TransferAdviceTotal.WithLabelValues("transfer").Inc()
		return &TransferAdvice{
			Suggestion:        true,
			Message:           fmt.Sprintf("Site %s has unused stock. Consider internal transfer before purchasing.", c.SiteName),
			FromSite:          c.SiteName,
			FromSiteID:        c.SiteID,
			InventoryID:       c.ID,
			AvailableQuantity: c.Quantity,
		}, nil
	}

	utils.TransferAdviceTotal.WithLabelValues("purchase").Inc()
	return &TransferAdvice{
		Suggestion: false,
		Message:    "No unused stock found. You can proceed with purchase.",
	}, nil
}

// AnalyzeRisk моделирует расход запрошенного количества на площадке-заявителе
func (s *RequestService) AnalyzeRisk(req StockRequest) (*RiskAssessment, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	inv, err := s.store.FindPosition(req.SiteID, req.MaterialID)
	if err != nil {
		return nil, err
	}

	avg, err := s.estimator.AverageBurnRate(inv.ID)
	if err != nil {
		return nil, err
	}

	rate := EffectiveBurnRate(avg, inv.DailyBurnRate)
	current := RunwayDays(inv.Quantity, rate)
	if current == nil {
		utils.RiskAssessmentsTotal.WithLabelValues(string(RiskUnknown)).Inc()
		return &RiskAssessment{
			RiskLevel: RiskUnknown,
			Message:   riskMessages[RiskUnknown],
		}, nil
	}

	remaining := inv.Quantity - req.Quantity
	if remaining < 0 {
		remaining = 0
	}
	after := RunwayDays(remaining, rate)

	level := ClassifyRisk(*after)
	utils.RiskAssessmentsTotal.WithLabelValues(string(level)).Inc()

	return &RiskAssessment{
		RiskLevel:          level,
		CurrentRunway:      current,
		RunwayAfterRequest: after,
		Message:            riskMessages[level],
	}, nil
}

// ClassifyRisk меньше 1 дня - HIGH, меньше 2 - MEDIUM, иначе LOW
func ClassifyRisk(runwayAfter float64) RiskLevel {
	switch {
	case runwayAfter < 1:
		return RiskHigh
	case runwayAfter < 2:
		return RiskMedium
	default:
		return RiskLow
	}
}
