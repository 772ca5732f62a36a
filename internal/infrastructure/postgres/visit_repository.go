package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/medisupply-api/internal/domain/entity"
	"github.com/jhoicas/medisupply-api/internal/domain/repository"
)

var _ repository.VisitRepository = (*VisitRepo)(nil)

const visitColumns = `id, expected_date, visit_date, observations, visual_evidence_url, status, expected_geolocation_id, report_geolocation_id, client_id, seller_id, created_at`

// VisitRepo visitas comerciales en PostgreSQL.
type VisitRepo struct {
	q Querier
}

// NewVisitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVisitRepository(q Querier) *VisitRepo {
	return &VisitRepo{q: q}
}

func scanVisit(row pgx.Row) (*entity.Visit, error) {
	var v entity.Visit
	err := row.Scan(
		&v.ID, &v.ExpectedDate, &v.VisitDate, &v.Observations, &v.VisualEvidencePath, &v.Status,
		&v.ExpectedGeolocationID, &v.ReportGeolocationID, &v.ClientID, &v.SellerID, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VisitRepo) Create(ctx context.Context, v *entity.Visit) error {
	_, err := r.q.Exec(ctx, `INSERT INTO visits (`+visitColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		v.ID, v.ExpectedDate, v.VisitDate, v.Observations, v.VisualEvidencePath, v.Status,
		v.ExpectedGeolocationID, v.ReportGeolocationID, v.ClientID, v.SellerID, v.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert visit: %w", err)
	}
	return nil
}

func (r *VisitRepo) GetByID(ctx context.Context, id string) (*entity.Visit, error) {
	v, err := scanVisit(r.q.QueryRow(ctx, `SELECT `+visitColumns+` FROM visits WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get visit: %w", err)
	}
	return v, nil
}

// List visitas ordenadas por fecha esperada. ExpectedDate filtra por día calendario.
func (r *VisitRepo) List(ctx context.Context, filter repository.VisitFilter) ([]*entity.Visit, error) {
	var where []string
	var args []any
	add := func(cond string, value any) {
		args = append(args, value)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if filter.SellerID != "" {
		add("seller_id = $%d", filter.SellerID)
	}
	if filter.ClientID != "" {
		add("client_id = $%d", filter.ClientID)
	}
	if filter.ExpectedDate != nil {
		add("expected_date = $%d", *filter.ExpectedDate)
	}
	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}
	query := `SELECT ` + visitColumns + ` FROM visits`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY expected_date`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	return scanAll(rows, scanVisit)
}

// SaveReport guarda el reporte sólo si la visita sigue pendiente.
func (r *VisitRepo) SaveReport(ctx context.Context, v *entity.Visit) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE visits
		SET visit_date = $2, observations = $3, visual_evidence_url = $4, status = $5, report_geolocation_id = $6
		WHERE id = $1 AND status = $7`,
		v.ID, v.VisitDate, v.Observations, v.VisualEvidencePath, v.Status, v.ReportGeolocationID, entity.VisitStatusPending,
	)
	if err != nil {
		return fmt.Errorf("save visit report: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("save visit report: visit %s is not pending", v.ID)
	}
	return nil
}
