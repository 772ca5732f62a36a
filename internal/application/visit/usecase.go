package visit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/medisupply-api/internal/application/dto"
	"github.com/jhoicas/medisupply-api/internal/application/geo"
	"github.com/jhoicas/medisupply-api/internal/application/ports"
	"github.com/jhoicas/medisupply-api/internal/domain"
	"github.com/jhoicas/medisupply-api/internal/domain/entity"
	"github.com/jhoicas/medisupply-api/internal/domain/repository"
	"github.com/jhoicas/medisupply-api/pkg/logger"
)

// DefaultSignedURLExpiry vigencia de la URL firmada de la evidencia.
const DefaultSignedURLExpiry = 5 * time.Minute

// Repos lecturas del caso de uso de visitas.
type Repos struct {
	Visits       repository.VisitRepository
	Users        repository.UserRepository
	Geolocations repository.GeolocationRepository
}

// UseCase solicitud, consulta y reporte de visitas.
type UseCase struct {
	tx        TxRunner
	repos     Repos
	geo       *geo.Service
	storage   ports.FileStorage
	urlExpiry time.Duration
	log       *logger.Logger
	now       func() time.Time
}

// NewUseCase construye el caso de uso. storage puede ser nil (sin bucket configurado).
func NewUseCase(tx TxRunner, repos Repos, geoSvc *geo.Service, storage ports.FileStorage, urlExpiry time.Duration, log *logger.Logger) *UseCase {
	if urlExpiry <= 0 {
		urlExpiry = DefaultSignedURLExpiry
	}
	return &UseCase{
		tx:        tx,
		repos:     repos,
		geo:       geoSvc,
		storage:   storage,
		urlExpiry: urlExpiry,
		log:       log.Component("visits"),
		now:       time.Now,
	}
}

// ListQuery filtros del listado.
type ListQuery struct {
	ExpectedDate *time.Time
	Status       string
}

// Create un cliente institucional solicita una visita de su vendedor.
// Con dirección se geocodifica; sin ella se usa la geolocalización registrada del cliente.
func (uc *UseCase) Create(ctx context.Context, caller *entity.User, in dto.VisitCreateRequest) (*dto.VisitResponse, error) {
	today := dto.NewDate(uc.now()).Time
	if in.ExpectedDate.Before(today) {
		return nil, domain.BadRequest("Expected date cannot be in the past")
	}
	if caller.SellerID == nil {
		return nil, domain.BadRequest("The client has no assigned seller")
	}

	var g *entity.Geolocation
	var err error
	switch {
	case in.Address != nil && *in.Address != "":
		if g, err = uc.geo.FromAddress(ctx, uc.repos.Geolocations, *in.Address); err != nil {
			return nil, err
		}
	case caller.GeolocationID != nil:
		if g, err = uc.repos.Geolocations.GetByID(ctx, *caller.GeolocationID); err != nil {
			return nil, err
		}
	}
	if g == nil {
		return nil, domain.BadRequest("An address is required because the client has no registered geolocation")
	}

	v := &entity.Visit{
		ID:                    uuid.New().String(),
		ExpectedDate:          in.ExpectedDate.Time,
		Status:                entity.VisitStatusPending,
		ExpectedGeolocationID: g.ID,
		ClientID:              caller.ID,
		SellerID:              *caller.SellerID,
		CreatedAt:             uc.now(),
	}
	if err := uc.repos.Visits.Create(ctx, v); err != nil {
		return nil, err
	}
	uc.log.Info().Str("visit_id", v.ID).Str("client_id", v.ClientID).Str("seller_id", v.SellerID).Msg("visita solicitada")
	return uc.buildResponse(ctx, caller, v)
}

// List visitas del usuario: el comercial ve las suyas como vendedor, el institucional las propias.
func (uc *UseCase) List(ctx context.Context, caller *entity.User, q ListQuery) (*dto.VisitsResponse, error) {
	filter := repository.VisitFilter{ExpectedDate: q.ExpectedDate, Status: q.Status}
	if caller.Role == entity.RoleCommercial {
		filter.SellerID = caller.ID
	} else {
		filter.ClientID = caller.ID
	}
	visits, err := uc.repos.Visits.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := &dto.VisitsResponse{TotalCount: len(visits), Visits: make([]dto.VisitResponse, 0, len(visits))}
	for _, v := range visits {
		resp, err := uc.buildResponse(ctx, caller, v)
		if err != nil {
			return nil, err
		}
		out.Visits = append(out.Visits, *resp)
	}
	return out, nil
}

// GetByID visita con el mismo alcance que List.
func (uc *UseCase) GetByID(ctx context.Context, caller *entity.User, id string) (*dto.VisitResponse, error) {
	v, err := uc.scoped(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.NotFound("Visit not found")
	}
	return uc.buildResponse(ctx, caller, v)
}

// Report el vendedor registra la visita realizada, con evidencia opcional.
func (uc *UseCase) Report(ctx context.Context, caller *entity.User, id string, in dto.VisitReportRequest) (*dto.VisitResponse, error) {
	v, err := uc.scoped(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if v == nil || v.Status == entity.VisitStatusCompleted {
		return nil, domain.NotFound("Visit not found or already reported")
	}
	visitDate := uc.now().UTC()
	if in.VisitDate != nil {
		visitDate = *in.VisitDate
	}
	if dto.NewDate(visitDate).Before(dto.NewDate(v.ExpectedDate).Time) {
		return nil, domain.BadRequest("Visit date cannot be before expected date")
	}
	var ext string
	if in.Evidence != nil {
		if ext, err = evidenceExtension(in.Evidence); err != nil {
			return nil, err
		}
		if uc.storage == nil {
			return nil, fmt.Errorf("visits: almacenamiento de evidencias no configurado")
		}
	}

	err = uc.tx.RunVisit(ctx, func(geos repository.GeolocationRepository, visits repository.VisitRepository) error {
		g, err := uc.geo.FromCoordinates(ctx, geos, in.Latitude, in.Longitude)
		if err != nil {
			return err
		}
		v.VisitDate = &visitDate
		v.Observations = in.Observations
		v.ReportGeolocationID = &g.ID
		v.Status = entity.VisitStatusCompleted
		if in.Evidence != nil {
			path := EvidencePath(v.SellerID, v.ID, ext)
			if err := uc.storage.Upload(ctx, path, in.Evidence.ContentType, in.Evidence.Content, in.Evidence.Size); err != nil {
				return fmt.Errorf("visits: subir evidencia: %w", err)
			}
			v.VisualEvidencePath = &path
		}
		return visits.SaveReport(ctx, v)
	})
	if err != nil {
		if _, ok := domain.AsError(err); !ok {
			uc.log.Error().Err(err).Str("visit_id", id).Msg("error reportando visita")
		}
		return nil, err
	}
	uc.log.Info().Str("visit_id", v.ID).Bool("evidence", v.VisualEvidencePath != nil).Msg("visita reportada")
	return uc.buildResponse(ctx, caller, v)
}

func (uc *UseCase) scoped(ctx context.Context, caller *entity.User, id string) (*entity.Visit, error) {
	v, err := uc.repos.Visits.GetByID(ctx, id)
	if err != nil || v == nil {
		return nil, err
	}
	if caller.Role == entity.RoleCommercial && v.SellerID != caller.ID {
		return nil, nil
	}
	if caller.Role == entity.RoleInstitutional && v.ClientID != caller.ID {
		return nil, nil
	}
	return v, nil
}

func (uc *UseCase) buildResponse(ctx context.Context, caller *entity.User, v *entity.Visit) (*dto.VisitResponse, error) {
	out := &dto.VisitResponse{
		ID:           v.ID,
		ExpectedDate: dto.NewDate(v.ExpectedDate),
		VisitDate:    v.VisitDate,
		Observations: v.Observations,
		Status:       v.Status,
		CreatedAt:    v.CreatedAt,
	}
	expected, err := uc.repos.Geolocations.GetByID(ctx, v.ExpectedGeolocationID)
	if err != nil {
		return nil, err
	}
	out.ExpectedGeolocation = dto.NewGeolocationResponse(expected)
	if v.ReportGeolocationID != nil {
		report, err := uc.repos.Geolocations.GetByID(ctx, *v.ReportGeolocationID)
		if err != nil {
			return nil, err
		}
		out.ReportGeolocation = dto.NewGeolocationResponse(report)
	}
	if caller.Role != entity.RoleInstitutional {
		client, err := uc.repos.Users.GetByID(ctx, v.ClientID)
		if err != nil {
			return nil, err
		}
		if client != nil {
			c := dto.NewUserResponse(client)
			out.Client = &c
		}
	}
	if caller.Role != entity.RoleCommercial {
		seller, err := uc.repos.Users.GetByID(ctx, v.SellerID)
		if err != nil {
			return nil, err
		}
		if seller != nil {
			s := dto.NewUserResponse(seller)
			out.Seller = &s
		}
	}
	if v.VisualEvidencePath != nil && uc.storage != nil {
		url, err := uc.storage.SignedURL(ctx, *v.VisualEvidencePath, uc.urlExpiry)
		if err != nil {
			uc.log.Warn().Err(err).Str("visit_id", v.ID).Msg("no se pudo firmar la URL de la evidencia")
		} else {
			out.VisualEvidenceURL = &url
		}
	}
	return out, nil
}
