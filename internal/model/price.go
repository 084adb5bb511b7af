package model

import "time"

// PricePoint is one daily close in a historical series.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}
