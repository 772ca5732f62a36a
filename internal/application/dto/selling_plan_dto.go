package dto

import "time"

// SellingPlanCreateRequest alta de plan de venta.
type SellingPlanCreateRequest struct {
	Period    string `json:"period" validate:"required,min=1,max=6"`
	Goal      int    `json:"goal" validate:"gt=0"`
	ProductID string `json:"product_id" validate:"required,uuid"`
	ZoneID    string `json:"zone_id" validate:"required,uuid"`
	SellerID  string `json:"seller_id" validate:"required,uuid"`
}

// SellingPlanResponse plan de venta; las relaciones se incluyen cuando se cargan.
type SellingPlanResponse struct {
	ID        string           `json:"id"`
	Period    string           `json:"period"`
	Goal      int              `json:"goal"`
	CreatedAt time.Time        `json:"created_at"`
	Product   *ProductResponse `json:"product,omitempty"`
	Zone      *ZoneResponse    `json:"zone,omitempty"`
	Seller    *SellerResponse  `json:"seller,omitempty"`
}

// SellingPlansResponse listado de planes.
type SellingPlansResponse struct {
	TotalCount   int                   `json:"total_count"`
	SellingPlans []SellingPlanResponse `json:"selling_plans"`
}
