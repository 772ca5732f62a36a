package entity

import "time"

// SellingPlan meta de ventas de un producto para un vendedor, zona y periodo.
// La tupla (Period, ProductID, ZoneID, SellerID) es única.
type SellingPlan struct {
	ID        string
	Period    string
	Goal      int
	ProductID string
	ZoneID    string
	SellerID  string
	CreatedAt time.Time
}
