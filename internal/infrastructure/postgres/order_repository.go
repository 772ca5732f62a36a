package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/medisupply-api/internal/domain"
	"github.com/jhoicas/medisupply-api/internal/domain/entity"
	"github.com/jhoicas/medisupply-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `o.id, o.comments, o.delivery_date, o.status, o.seller_id, o.client_id, o.distribution_center_id, o.route_id, o.created_at`

// OrderRepo pedidos y sus líneas en PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(
		&o.ID, &o.Comments, &o.DeliveryDate, &o.Status, &o.SellerID, &o.ClientID,
		&o.DistributionCenterID, &o.RouteID, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserta cabecera y líneas. Debe llamarse dentro de la misma tx que descuenta el stock.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO orders (id, comments, delivery_date, status, seller_id, client_id, distribution_center_id, route_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		o.ID, o.Comments, o.DeliveryDate, o.Status, o.SellerID, o.ClientID,
		o.DistributionCenterID, o.RouteID, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	for _, line := range o.Products {
		_, err := r.q.Exec(ctx,
			`INSERT INTO order_products (id, quantity, order_id, product_id) VALUES ($1, $2, $3, $4)`,
			uuid.New().String(), line.Quantity, o.ID, line.ProductID,
		)
		if err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}
	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders o WHERE o.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.loadLines(ctx, []*entity.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// List pedidos con las líneas cargadas, del más reciente al más antiguo.
func (r *OrderRepo) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	var where []string
	var args []any
	add := func(cond string, value any) {
		args = append(args, value)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if filter.SellerID != "" {
		add("o.seller_id = $%d", filter.SellerID)
	}
	if filter.ClientID != "" {
		add("o.client_id = $%d", filter.ClientID)
	}
	if filter.RouteID != "" {
		add("o.route_id = $%d", filter.RouteID)
	}
	if filter.Status != "" {
		add("o.status = $%d", filter.Status)
	}
	if filter.DeliveryDate != nil {
		add("o.delivery_date = $%d", *filter.DeliveryDate)
	}
	query := `SELECT ` + orderColumns + ` FROM orders o`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY o.created_at DESC`
	return r.query(ctx, query, args...)
}

// ListByIDs pedidos existentes entre ids; los que no existen simplemente no aparecen.
func (r *OrderRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.Order, error) {
	if len(ids) == 0 {
		return []*entity.Order{}, nil
	}
	return r.query(ctx, `SELECT `+orderColumns+` FROM orders o WHERE o.id = ANY($1) ORDER BY o.delivery_date`, ids)
}

// ListLinesByProduct líneas de pedido que incluyen el producto.
func (r *OrderRepo) ListLinesByProduct(ctx context.Context, productID string) ([]entity.OrderProduct, error) {
	rows, err := r.q.Query(ctx,
		`SELECT order_id, product_id, quantity FROM order_products WHERE product_id = $1 ORDER BY order_id`, productID)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()
	lines := make([]entity.OrderProduct, 0)
	for rows.Next() {
		var l entity.OrderProduct
		if err := rows.Scan(&l.OrderID, &l.ProductID, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

const ordersAlreadyRoutedMsg = "One or more orders are already assigned to a route"

// AssignRoute sólo asigna pedidos sin ruta; si alguno ya tenía ruta no se asigna ninguno.
func (r *OrderRepo) AssignRoute(ctx context.Context, orderIDs []string, routeID string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE orders SET route_id = $2 WHERE id = ANY($1) AND route_id IS NULL`, orderIDs, routeID)
	if err != nil {
		return fmt.Errorf("assign route: %w", err)
	}
	if int(cmd.RowsAffected()) != len(orderIDs) {
		return domain.Conflict(ordersAlreadyRoutedMsg)
	}
	return nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	if _, err := r.q.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, status); err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

// Report pedidos con vendedor, filtrados por vendedor, estado y rango de creación.
func (r *OrderRepo) Report(ctx context.Context, filter repository.OrderReportFilter) ([]*entity.Order, error) {
	where := []string{"o.seller_id IS NOT NULL"}
	var args []any
	add := func(cond string, value any) {
		args = append(args, value)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if filter.SellerID != "" {
		add("o.seller_id = $%d", filter.SellerID)
	}
	if filter.Status != "" {
		add("o.status = $%d", filter.Status)
	}
	if filter.StartDate != nil {
		add("o.created_at >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		add("o.created_at <= $%d", *filter.EndDate)
	}
	query := `SELECT ` + orderColumns + ` FROM orders o WHERE ` + strings.Join(where, " AND ") + ` ORDER BY o.created_at DESC`
	return r.query(ctx, query, args...)
}

func (r *OrderRepo) query(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	orders, err := scanAll(rows, scanOrder)
	if err != nil {
		return nil, fmt.Errorf("scan order: %w", err)
	}
	if err := r.loadLines(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// loadLines carga las líneas de todos los pedidos en una sola consulta.
func (r *OrderRepo) loadLines(ctx context.Context, orders []*entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		o.Products = []entity.OrderProduct{}
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}
	rows, err := r.q.Query(ctx,
		`SELECT order_id, product_id, quantity FROM order_products WHERE order_id = ANY($1) ORDER BY order_id, product_id`, ids)
	if err != nil {
		return fmt.Errorf("load order lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.OrderProduct
		if err := rows.Scan(&l.OrderID, &l.ProductID, &l.Quantity); err != nil {
			return fmt.Errorf("scan order line: %w", err)
		}
		if o, ok := byID[l.OrderID]; ok {
			o.Products = append(o.Products, l)
		}
	}
	return rows.Err()
}
