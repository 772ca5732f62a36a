package dto

import (
	"io"
	"time"
)

// VisitCreateRequest solicitud de visita de un cliente institucional.
type VisitCreateRequest struct {
	ExpectedDate Date    `json:"expected_date" validate:"required"`
	Address      *string `json:"address" validate:"omitempty,min=1,max=255"`
}

// VisitsQuery filtros del listado de visitas.
type VisitsQuery struct {
	ExpectedDate string `query:"expected_date" validate:"omitempty,datetime=2006-01-02"`
	VisitStatus  string `query:"visit_status" validate:"omitempty,oneof=pending completed"`
}

// EvidenceFile archivo de evidencia adjunto al reporte.
type EvidenceFile struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// VisitReportRequest reporte de la visita (multipart).
type VisitReportRequest struct {
	VisitDate    *time.Time
	Observations *string `validate:"omitempty,min=1,max=255"`
	Latitude     float64 `validate:"latitude"`
	Longitude    float64 `validate:"longitude"`
	Evidence     *EvidenceFile
}

// GeolocationResponse punto geográfico.
type GeolocationResponse struct {
	ID        string    `json:"id"`
	Address   *string   `json:"address,omitempty"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
}

// VisitResponse visita con sus geolocalizaciones y la contraparte.
type VisitResponse struct {
	ID                  string               `json:"id"`
	ExpectedDate        Date                 `json:"expected_date"`
	VisitDate           *time.Time           `json:"visit_date,omitempty"`
	Observations        *string              `json:"observations,omitempty"`
	VisualEvidenceURL   *string              `json:"visual_evidence_url,omitempty"`
	Status              string               `json:"status"`
	CreatedAt           time.Time            `json:"created_at"`
	ExpectedGeolocation *GeolocationResponse `json:"expected_geolocation,omitempty"`
	ReportGeolocation   *GeolocationResponse `json:"report_geolocation,omitempty"`
	Client              *UserResponse        `json:"client,omitempty"`
	Seller              *UserResponse        `json:"seller,omitempty"`
}

// VisitsResponse listado de visitas.
type VisitsResponse struct {
	TotalCount int             `json:"total_count"`
	Visits     []VisitResponse `json:"visits"`
}
