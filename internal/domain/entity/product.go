package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto del catálogo. Stock nunca queda negativo.
type Product struct {
	ID           string
	Name         string
	Details      string
	Store        string
	Batch        string
	ImageURL     *string
	DueDate      time.Time
	Stock        int
	PricePerUnit decimal.Decimal
	ProviderID   string
	CreatedAt    time.Time
}

// HasStock indica si quedan unidades suficientes para la cantidad pedida.
func (p *Product) HasStock(quantity int) bool {
	return p.Stock >= quantity
}
