package entity

import "time"

// Estados de Visit.
const (
	VisitStatusPending   = "pending"
	VisitStatusCompleted = "completed"
)

// Visit visita de un vendedor a las instalaciones de un cliente.
type Visit struct {
	ID                    string
	ExpectedDate          time.Time
	VisitDate             *time.Time
	Observations          *string
	VisualEvidencePath    *string
	Status                string
	ExpectedGeolocationID string
	ReportGeolocationID   *string
	ClientID              string
	SellerID              string
	CreatedAt             time.Time
}
