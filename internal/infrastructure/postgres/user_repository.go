package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/medisupply-api/internal/domain"
	"github.com/jhoicas/medisupply-api/internal/domain/entity"
	"github.com/jhoicas/medisupply-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, full_name, email, hashed_password, phone, doi, address, role, zone_id, seller_id, geolocation_id, created_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.Phone, &u.DOI, &u.Address,
		&u.Role, &u.ZoneID, &u.SellerID, &u.GeolocationID, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `INSERT INTO users (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.FullName, u.Email, u.PasswordHash, u.Phone, u.DOI, u.Address,
		u.Role, u.ZoneID, u.SellerID, u.GeolocationID, u.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict("User with this email or DOI already exists")
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) getOne(ctx context.Context, query string, args ...any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email (login).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// ExistsByEmailOrDOI indica si el email o el documento ya están registrados.
func (r *UserRepo) ExistsByEmailOrDOI(ctx context.Context, email, doi string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 OR doi = $2)`, email, doi).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists user: %w", err)
	}
	return exists, nil
}

func (r *UserRepo) list(ctx context.Context, query string, args ...any) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users, err := scanAll(rows, scanUser)
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return users, nil
}

// ListByRole lista usuarios de un rol por fecha de creación.
func (r *UserRepo) ListByRole(ctx context.Context, role string) ([]*entity.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY created_at`, role)
}

// ListByZone usuarios de la zona con el rol indicado.
func (r *UserRepo) ListByZone(ctx context.Context, zoneID, role string) ([]*entity.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users WHERE zone_id = $1 AND role = $2 ORDER BY created_at`, zoneID, role)
}

// ListClientsBySeller clientes institucionales del vendedor.
func (r *UserRepo) ListClientsBySeller(ctx context.Context, sellerID string) ([]*entity.User, error) {
	return r.list(ctx,
		`SELECT `+userColumns+` FROM users WHERE seller_id = $1 AND role = $2 ORDER BY full_name`,
		sellerID, entity.RoleInstitutional,
	)
}

// RandomByRole usuario al azar del rol; nil si no hay ninguno.
func (r *UserRepo) RandomByRole(ctx context.Context, role string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY random() LIMIT 1`, role)
}
