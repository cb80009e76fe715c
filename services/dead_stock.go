package services

import "time"

// DeadStockDetector определяет неиспользуемые остатки
type DeadStockDetector struct {
	store     Store
	threshold time.Duration
	now       func() time.Time
}

// NewDeadStockDetector создает детектор с порогом opts.DeadStockDays
func NewDeadStockDetector(store Store, opts Options) *DeadStockDetector {
	opts = opts.withDefaults()
	return &DeadStockDetector{
		store:     store,
		threshold: time.Duration(opts.DeadStockDays) * 24 * time.Hour,
		now:       opts.Now,
	}
}

// IsDeadStock true, если с последнего использования прошло больше порога
func (d *DeadStockDetector) IsDeadStock(lastUsed *time.Time) bool {
	if lastUsed == nil {
		return false
	}
	return d.now().Sub(*lastUsed) > d.threshold
}

// LastUsed время последнего списания, а если журнал пуст - сохраненное last_used_at
func (d *DeadStockDetector) LastUsed(inventoryID uint, stored *time.Time) (*time.Time, error) {
	last, err := d.store.LastUsageAt(inventoryID)
	if err != nil {
		return nil, err
	}
	if last != nil {
		return last, nil
	}
	return stored, nil
}

// IsPositionDead LastUsed + IsDeadStock
func (d *DeadStockDetector) IsPositionDead(inventoryID uint, stored *time.Time) (bool, error) {
	last, err := d.LastUsed(inventoryID, stored)
	if err != nil {
		return false, err
	}
	return d.IsDeadStock(last), nil
}
