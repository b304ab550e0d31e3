package repository

import (
	"context"
	"time"

	"github.com/shieldlab/ops-api/internal/domain/entity"
)

// OrderRepository lecturas acotadas de pedidos. Las implementaciones son
// read-only; el motor de reportes emite una lectura por ventana de tiempo.
type OrderRepository interface {
	// FindByDateRange devuelve los pedidos con OrderDate en [start, end],
	// ambos extremos inclusive. Rango sin pedidos devuelve lista vacía, no error.
	FindByDateRange(ctx context.Context, start, end time.Time) ([]entity.Order, error)
}
