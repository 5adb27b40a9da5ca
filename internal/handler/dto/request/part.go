package request

type CreatePartRequest struct {
	Name        string `json:"name" binding:"required"`
	UnitPrice   string `json:"unit_price" binding:"required"`
	StockOnHand int    `json:"stock_on_hand" binding:"min=0"`
}

// AdjustStockRequest uses a pointer so a zero delta is distinguishable from
// a missing field.
type AdjustStockRequest struct {
	Delta *int `json:"delta" binding:"required"`
}
