package equipment

type CreateEquipmentRequest struct {
	Name              string  `json:"name" binding:"required"`
	Category          string  `json:"category" binding:"required"`
	Brand             string  `json:"brand"`
	Model             string  `json:"model"`
	Quantity          int     `json:"quantity"`
	UnitPrice         float64 `json:"unit_price"`
	LowStockThreshold int     `json:"low_stock_threshold"`
	WarrantyMonths    int     `json:"warranty_months"`
	Supplier          string  `json:"supplier"`
}

type UpdateEquipmentRequest struct {
	Name              *string  `json:"name"`
	Category          *string  `json:"category"`
	Brand             *string  `json:"brand"`
	Model             *string  `json:"model"`
	Quantity          *int     `json:"quantity"`
	UnitPrice         *float64 `json:"unit_price"`
	LowStockThreshold *int     `json:"low_stock_threshold"`
	WarrantyMonths    *int     `json:"warranty_months"`
	Supplier          *string  `json:"supplier"`
}

// Delta carries no required tag: zero is a valid no-op adjustment, and the
// required validator treats an int zero as missing.
type StockAdjustmentRequest struct {
	Delta int `json:"delta"`
}

// ListFilters narrows and orders an equipment fetch.
// Search matches name, brand, model and supplier case-insensitively.
type ListFilters struct {
	Category  *Category `form:"category"`
	LowStock  *bool     `form:"low_stock"`
	Search    string    `form:"search"`
	SortBy    string    `form:"sort_by"`
	SortOrder string    `form:"sort_order"`
	Limit     int       `form:"limit"`
}
