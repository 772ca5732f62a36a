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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `p.id, p.name, p.details, p.store, p.batch, p.image_url, p.due_date, p.stock, p.price_per_unit, p.provider_id, p.created_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Details, &p.Store, &p.Batch, &p.ImageURL, &p.DueDate,
		&p.Stock, &p.PricePerUnit, &p.ProviderID, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, name, details, store, batch, image_url, due_date, stock, price_per_unit, provider_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Details, p.Store, p.Batch, p.ImageURL, p.DueDate,
		p.Stock, p.PricePerUnit, p.ProviderID, p.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Unprocessable("Provider with the given ID does not exist")
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) getOne(ctx context.Context, query string, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id = $1`, id)
}

// GetForUpdate bloquea la fila hasta el fin de la transacción; dos pedidos sobre el mismo producto se serializan.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id = $1 FOR UPDATE`, id)
}

// DecrementStock resta quantity; falla con Conflict si dejaría el stock negativo.
func (r *ProductRepo) DecrementStock(ctx context.Context, id string, quantity int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET stock = stock - $2 WHERE id = $1 AND stock >= $2`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.Conflict("Insufficient stock for product '%s'", id)
	}
	return nil
}

// List productos ordenados por nombre, opcionalmente sólo con stock.
func (r *ProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p`
	if filter.OnlyInStock {
		query += ` WHERE p.stock > 0`
	}
	query += ` ORDER BY p.name`
	args := []any{}
	if filter.Limit > 0 {
		query += ` LIMIT $1`
		args = append(args, filter.Limit)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return scanAll(rows, scanProduct)
}

// Ranked productos con stock por unidades pedidas (del cliente o globales) y pedido más reciente.
func (r *ProductRepo) Ranked(ctx context.Context, clientID string, limit int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		JOIN order_products op ON op.product_id = p.id
		JOIN orders o          ON o.id = op.order_id
		WHERE p.stock > 0
		  AND ($1 = '' OR o.client_id = $1)
		GROUP BY p.id
		ORDER BY SUM(op.quantity) DESC, MAX(o.created_at) DESC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, clientID, limit)
	if err != nil {
		return nil, fmt.Errorf("ranked products: %w", err)
	}
	return scanAll(rows, scanProduct)
}
