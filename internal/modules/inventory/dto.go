package inventory

type CreateItemRequest struct {
	SKU       string  `json:"sku" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Category  string  `json:"category"`
	Quantity  int     `json:"quantity" binding:"gte=0"`
	MinStock  int     `json:"min_stock" binding:"gte=0"`
	MaxStock  int     `json:"max_stock" binding:"gte=0"`
	UnitPrice float64 `json:"unit_price" binding:"gte=0"`
}

type UpdateItemRequest struct {
	Name      *string  `json:"name"`
	Category  *string  `json:"category"`
	MinStock  *int     `json:"min_stock"`
	MaxStock  *int     `json:"max_stock"`
	UnitPrice *float64 `json:"unit_price"`
	Active    *bool    `json:"active"`
}

type RestockRequest struct {
	Quantity int    `json:"quantity" binding:"required,gt=0"`
	Note     string `json:"note"`
}

type AdjustRequest struct {
	Quantity int    `json:"quantity" binding:"gte=0"`
	Note     string `json:"note"`
}
