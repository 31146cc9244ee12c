package equipment

import (
	"fmt"
	"math"
	"strings"
	"time"

	xerrors "helios-service/internal/pkg/errors"
)

type Category string

const (
	CategoryPanel    Category = "panel"
	CategoryInverter Category = "inverter"
	CategoryBattery  Category = "battery"
	CategoryMounting Category = "mounting"
	CategoryCabling  Category = "cabling"
	CategoryOther    Category = "other"
)

// Equipment is an independent inventory record; it owns nothing and is owned
// by nothing. Quantity never goes negative through AdjustStock.
type Equipment struct {
	ID                int64     `json:"id" db:"id"`
	Name              string    `json:"name" db:"name"`
	Category          Category  `json:"category" db:"category"`
	Brand             string    `json:"brand" db:"brand"`
	Model             string    `json:"model" db:"model"`
	Quantity          int       `json:"quantity" db:"quantity"`
	UnitPrice         float64   `json:"unit_price" db:"unit_price"`
	LowStockThreshold int       `json:"low_stock_threshold" db:"low_stock_threshold"`
	WarrantyMonths    int       `json:"warranty_months" db:"warranty_months"`
	Supplier          string    `json:"supplier" db:"supplier"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// SetQuantity is the raw setter: unconditional, no floor. Input validation
// belongs to the service layer.
func (e *Equipment) SetQuantity(n int) {
	e.Quantity = n
	e.UpdatedAt = time.Now()
}

// AdjustStock applies a delta and floors the result at zero.
func (e *Equipment) AdjustStock(delta int) {
	e.Quantity += delta
	if e.Quantity < 0 {
		e.Quantity = 0
	}
	e.UpdatedAt = time.Now()
}

// IsLowStock reports whether quantity has fallen to or below the threshold.
func (e *Equipment) IsLowStock() bool {
	return e.Quantity <= e.LowStockThreshold
}

// TotalValue is quantity times unit price, with non-finite results
// substituted by zero.
func (e *Equipment) TotalValue() float64 {
	v := float64(e.Quantity) * e.UnitPrice
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseCategory normalizes a stored category string into the closed set.
func ParseCategory(raw string) (Category, error) {
	switch normalize(raw) {
	case "panel", "panels", "solar_panel":
		return CategoryPanel, nil
	case "inverter", "inverters":
		return CategoryInverter, nil
	case "battery", "batteries", "storage":
		return CategoryBattery, nil
	case "mounting", "mount", "racking":
		return CategoryMounting, nil
	case "cabling", "cable", "cables", "wiring":
		return CategoryCabling, nil
	case "other", "misc":
		return CategoryOther, nil
	}
	return "", fmt.Errorf("unknown equipment category %q: %w", raw, xerrors.ErrInvalidInput)
}

func normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
