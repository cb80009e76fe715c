package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var exportHeader = []interface{}{
	"inventory_id",
	"site",
	"material",
	"quantity",
	"average_burn_rate",
	"fallback_burn_rate",
	"runway_days",
	"dead_stock",
}

// ExportReport формирует XLSX с отчетом по позициям
func ExportReport(report []PositionReport) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, p := range report {
		row := []interface{}{
			p.ID,
			p.Site,
			p.Material,
			p.Quantity,
			roundedOrEmpty(p.AverageBurnRate),
			roundFloat(p.FallbackBurnRate),
			roundedOrEmpty(p.RunwayDays),
			p.DeadStock,
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportFileName имя файла отчета
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("inventory_%s.xlsx", now.Format("20060102_150405"))
}

func roundFloat(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// пустая ячейка вместо null
func roundedOrEmpty(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return roundFloat(*v)
}
