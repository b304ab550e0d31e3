package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shieldlab/ops-api/internal/domain/entity"
	"github.com/shieldlab/ops-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL (usable con pool o tx).
// Solo lectura: el motor de reportes nunca escribe pedidos.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// FindByDateRange devuelve los pedidos con order_date en [start, end], ambos
// extremos inclusive. Las columnas NULL (origen, textos, montos) se colapsan
// en la consulta para que el dominio no cargue con sql.Null*.
func (r *OrderRepo) FindByDateRange(ctx context.Context, start, end time.Time) ([]entity.Order, error) {
	query := `
		SELECT id, order_date,
		       COALESCE(order_source, ''),
		       COALESCE(quantity, 0),
		       COALESCE(base_price, 0),
		       COALESCE(shipping_fee, 0),
		       COALESCE(product_info, ''),
		       COALESCE(customer_name, '')
		FROM orders
		WHERE order_date BETWEEN $1 AND $2
		ORDER BY order_date, id`
	rows, err := r.q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.OrderDate, &o.OrderSource, &o.Quantity,
			&o.BasePrice, &o.ShippingFee, &o.ProductInfo, &o.CustomerName); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}
