package services

import (
	"errors"
	"log"
	"math"
	"time"

	"sitestock-backend/models"
	"sitestock-backend/utils"
)

// Типы событий, которые получают подписчики /ws
const (
	EventInventoryCreated   = "inventory.created"
	EventInventoryCheckedIn = "inventory.checked_in"
	EventInventoryDeleted   = "inventory.deleted"
)

// MaxQuantity верхняя граница количества: столбцы quantity в схеме 32-битные
const MaxQuantity = math.MaxInt32

// EventPublisher получатель событий об изменении остатков
type EventPublisher interface {
	Publish(eventType string, payload interface{})
}

// PositionReport позиция с расчетными показателями для GET /inventory
type PositionReport struct {
	ID               uint     `json:"id"`
	Site             string   `json:"site"`
	Material         string   `json:"material"`
	Quantity         int      `json:"quantity"`
	AverageBurnRate  *float64 `json:"averageBurnRate"`
	FallbackBurnRate float64  `json:"fallbackBurnRate"`
	RunwayDays       *float64 `json:"runwayDays"`
	DeadStock        bool     `json:"deadStock"`
}

// CreatePositionInput данные для новой позиции
type CreatePositionInput struct {
	SiteID        uint       `json:"site_id"`
	MaterialID    uint       `json:"material_id"`
	Quantity      *int       `json:"quantity"`
	DailyBurnRate *float64   `json:"daily_burn_rate"`
	LastUsedAt    *time.Time `json:"last_used_at"`
}

// CheckInInput данные списания
type CheckInInput struct {
	InventoryID  uint `json:"inventory_id"`
	UsedQuantity int  `json:"used_quantity"`
}

// InventoryService операции со складскими позициями
type InventoryService struct {
	store     Store
	estimator *BurnRateEstimator
	deadStock *DeadStockDetector
	events    EventPublisher
	now       func() time.Time
}

// NewInventoryService создает сервис; events может быть nil
func NewInventoryService(store Store, opts Options, events EventPublisher) *InventoryService {
	opts = opts.withDefaults()
	return &InventoryService{
		store:     store,
		estimator: NewBurnRateEstimator(store, opts),
		deadStock: NewDeadStockDetector(store, opts),
		events:    events,
		now:       opts.Now,
	}
}

func (s *InventoryService) publish(eventType string, payload interface{}) {
	if s.events != nil {
		s.events.Publish(eventType, payload)
	}
}

// Report все позиции со средним расходом, запасом в днях и признаком мертвого остатка
func (s *InventoryService) Report() ([]PositionReport, error) {
	rows, err := s.store.ListPositions()
	if err != nil {
		return nil, err
	}

	report := make([]PositionReport, 0, len(rows))
	for _, row := range rows {
		avg, err := s.estimator.AverageBurnRate(row.ID)
		if err != nil {
			return nil, err
		}

		dead, err := s.deadStock.IsPositionDead(row.ID, row.LastUsedAt)
		if err != nil {
			return nil, err
		}

		report = append(report, PositionReport{
			ID:               row.ID,
			Site:             row.SiteName,
			Material:         row.MaterialName,
			Quantity:         row.Quantity,
			AverageBurnRate:  avg,
			FallbackBurnRate: row.DailyBurnRate,
			RunwayDays:       RunwayDays(row.Quantity, EffectiveBurnRate(avg, row.DailyBurnRate)),
			DeadStock:        dead,
		})
	}

	return report, nil
}

// CreatePosition добавляет позицию; площадка и материал должны существовать
func (s *InventoryService) CreatePosition(in CreatePositionInput) (*models.Inventory, error) {
	if in.SiteID == 0 || in.MaterialID == 0 || in.Quantity == nil {
		return nil, &ValidationError{Message: "site_id, material_id, and quantity are required"}
	}
	if *in.Quantity < 0 {
		return nil, &ValidationError{Message: "quantity must not be negative"}
	}
	if *in.Quantity > MaxQuantity {
		return nil, &ValidationError{Message: "quantity is too large"}
	}
	if in.DailyBurnRate != nil && *in.DailyBurnRate < 0 {
		return nil, &ValidationError{Message: "daily_burn_rate must not be negative"}
	}

	ok, err := s.store.SiteExists(in.SiteID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &NotFoundError{Resource: "site", Message: "Site not found"}
	}

	ok, err = s.store.MaterialExists(in.MaterialID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &NotFoundError{Resource: "material", Message: "Material not found"}
	}

	inv := models.Inventory{
		SiteID:     in.SiteID,
		MaterialID: in.MaterialID,
		Quantity:   *in.Quantity,
		LastUsedAt: in.LastUsedAt,
	}
	if in.DailyBurnRate != nil {
		inv.DailyBurnRate = *in.DailyBurnRate
	}
	if inv.LastUsedAt == nil {
		now := s.now()
		inv.LastUsedAt = &now
	}

	if err := s.store.CreatePosition(&inv); err != nil {
		return nil, err
	}

	s.publish(EventInventoryCreated, inv)
	return &inv, nil
}

// CheckIn фиксирует расход материала
func (s *InventoryService) CheckIn(in CheckInInput) error {
	if in.InventoryID == 0 || in.UsedQuantity == 0 {
		utils.CheckInsTotal.WithLabelValues("invalid").Inc()
		return &ValidationError{Message: "inventory_id and used_quantity are required"}
	}
	if in.UsedQuantity < 0 {
		utils.CheckInsTotal.WithLabelValues("invalid").Inc()
		return &ValidationError{Message: "used_quantity must be positive"}
	}
	if in.UsedQuantity > MaxQuantity {
		utils.CheckInsTotal.WithLabelValues("invalid").Inc()
		return &ValidationError{Message: "used_quantity is too large"}
	}

	now := s.now()
	if err := s.store.RecordUsage(in.InventoryID, in.UsedQuantity, now); err != nil {
		switch {
		case errors.Is(err, ErrInventoryNotFound):
			utils.CheckInsTotal.WithLabelValues("not_found").Inc()
		case errors.Is(err, ErrExceedsStock):
			utils.CheckInsTotal.WithLabelValues("exceeds_stock").Inc()
		}
		return err
	}

	utils.CheckInsTotal.WithLabelValues("recorded").Inc()
	utils.UsedQuantityTotal.Add(float64(in.UsedQuantity))
	log.Printf("Check-in: inventory %d used %d", in.InventoryID, in.UsedQuantity)

	s.publish(EventInventoryCheckedIn, map[string]interface{}{
		"inventory_id":  in.InventoryID,
		"used_quantity": in.UsedQuantity,
		"used_at":       now.UTC(),
	})
	return nil
}

// RunwayHistory траектория запаса по журналу списаний
func (s *InventoryService) RunwayHistory(inventoryID uint) ([]RunwayPoint, error) {
	inv, err := s.store.GetPosition(inventoryID)
	if err != nil {
		return nil, err
	}

	usage, err := s.store.UsageLog(inventoryID)
	if err != nil {
		return nil, err
	}

	return RunwayHistory(inv.Quantity, usage), nil
}

// UsageHistory журнал списаний позиции
func (s *InventoryService) UsageHistory(inventoryID uint) ([]UsagePoint, error) {
	if _, err := s.store.GetPosition(inventoryID); err != nil {
		return nil, err
	}

	usage, err := s.store.UsageLog(inventoryID)
	if err != nil {
		return nil, err
	}

	return UsageHistory(usage), nil
}

// Delete удаляет позицию вместе с журналом списаний
func (s *InventoryService) Delete(inventoryID uint) error {
	if err := s.store.DeletePosition(inventoryID); err != nil {
		return err
	}

	s.publish(EventInventoryDeleted, map[string]interface{}{
		"inventory_id": inventoryID,
	})
	return nil
}
