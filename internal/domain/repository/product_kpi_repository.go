package repository

import (
	"context"

	"github.com/shieldlab/ops-api/internal/domain/entity"
)

// ProductKPIRepository catálogo de configuraciones KPI por producto.
type ProductKPIRepository interface {
	// FindActive devuelve las configuraciones KPI de los productos activos,
	// en el orden estable del catálogo (los empates de longitud del matcher
	// se resuelven por este orden).
	FindActive(ctx context.Context) ([]entity.ProductKPI, error)
}
