package model

// Product is a catalog entry.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Price         float64  `json:"price"`
	DiscountPrice *float64 `json:"discountPrice,omitempty"`
	Stock         int      `json:"stock"`
	SalesCount    int      `json:"salesCount"`
	Rating        float64  `json:"rating"`
}

// EffectivePrice returns the discount price when one is set, the list price otherwise.
func (p Product) EffectivePrice() float64 {
	if p.DiscountPrice != nil && *p.DiscountPrice <= p.Price {
		return *p.DiscountPrice
	}
	return p.Price
}

// StockStatus classifies the stock level against a low-stock threshold.
func (p Product) StockStatus(lowStockThreshold int) string {
	switch {
	case p.Stock <= 0:
		return "out_of_stock"
	case p.Stock <= lowStockThreshold:
		return "low_stock"
	default:
		return "in_stock"
	}
}
