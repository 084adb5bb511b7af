package model

import "strings"

// Holding is a single portfolio line item. CurrentPrice, TotalValue and
// GainLoss stay zero until a price refresh succeeds for the symbol.
type Holding struct {
	Symbol        string  `json:"symbol" db:"symbol"`
	Shares        int     `json:"shares" db:"shares"`
	PurchasePrice float64 `json:"purchase_price" db:"purchase_price"`
	CurrentPrice  float64 `json:"current_price" db:"current_price"`
	TotalValue    float64 `json:"total_value" db:"total_value"`
	GainLoss      float64 `json:"gain_loss" db:"gain_loss"`
}

func NewHolding(symbol string, shares int, purchasePrice float64) Holding {
	return Holding{
		Symbol:        strings.ToUpper(symbol),
		Shares:        shares,
		PurchasePrice: purchasePrice,
	}
}

// ApplyPrice recomputes the derived fields from a fresh market price.
func (h *Holding) ApplyPrice(price float64) {
	h.CurrentPrice = price
	h.TotalValue = float64(h.Shares) * price
	h.GainLoss = (price - h.PurchasePrice) * float64(h.Shares)
}
