package services

import (
	"time"
)

// Options пороги расчетов; нулевые значения заменяются значениями по умолчанию
type Options struct {
	BurnRateWindowDays int
	DeadStockDays      int
	Now                func() time.Time
}

func (o Options) withDefaults() Options {
	if o.BurnRateWindowDays <= 0 {
		o.BurnRateWindowDays = 7
	}
	if o.DeadStockDays <= 0 {
		o.DeadStockDays = 30
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// BurnRateEstimator считает средний расход по свежим списаниям
type BurnRateEstimator struct {
	store  Store
	window time.Duration
	now    func() time.Time
}

// NewBurnRateEstimator создает оценщик расхода
func NewBurnRateEstimator(store Store, opts Options) *BurnRateEstimator {
	opts = opts.withDefaults()
	return &BurnRateEstimator{
		store:  store,
		window: time.Duration(opts.BurnRateWindowDays) * 24 * time.Hour,
		now:    opts.Now,
	}
}

// AverageBurnRate среднее списание за окно (по умолчанию 7 дней).
// Делится на количество записей, а не на число дней.
// nil - за окно не было ни одного списания.
func (e *BurnRateEstimator) AverageBurnRate(inventoryID uint) (*float64, error) {
	usage, err := e.store.UsageSince(inventoryID, e.now().Add(-e.window))
	if err != nil {
		return nil, err
	}
	if len(usage) == 0 {
		return nil, nil
	}

	total := 0
	for _, u := range usage {
		total += u.UsedQuantity
	}
	avg := float64(total) / float64(len(usage))
	return &avg, nil
}

// EffectiveBurnRate средний расход, если он положительный, иначе статический
func EffectiveBurnRate(average *float64, fallback float64) float64 {
	if average != nil && *average > 0 {
		return *average
	}
	return fallback
}
