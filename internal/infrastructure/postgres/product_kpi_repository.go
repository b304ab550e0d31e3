package postgres

import (
	"context"
	"fmt"

	"github.com/shieldlab/ops-api/internal/domain/entity"
	"github.com/shieldlab/ops-api/internal/domain/repository"
)

var _ repository.ProductKPIRepository = (*ProductKPIRepo)(nil)

// ProductKPIRepo implementación del puerto ProductKPIRepository sobre PostgreSQL (usable con pool o tx).
type ProductKPIRepo struct {
	q Querier
}

// NewProductKPIRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductKPIRepository(q Querier) *ProductKPIRepo {
	return &ProductKPIRepo{q: q}
}

// FindActive devuelve las configuraciones KPI de los productos activos en el
// orden estable del catálogo (id ascendente). Un partner_code vacío o NULL se
// normaliza al partner por defecto ya en la consulta; los overrides opcionales
// se escanean a *decimal para distinguir NULL de cero.
func (r *ProductKPIRepo) FindActive(ctx context.Context) ([]entity.ProductKPI, error) {
	query := `
		SELECT id, name,
		       COALESCE(NULLIF(partner_code, ''), '본사'),
		       COALESCE(unit_price, 0),
		       kpi_supply_price, kpi_cost_price, kpi_commission_rate,
		       COALESCE(kpi_unit_count, 1),
		       COALESCE(kpi_count_enabled, true),
		       COALESCE(kpi_sales_enabled, true)
		FROM base_products
		WHERE is_active = true
		ORDER BY id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list kpi products: %w", err)
	}
	defer rows.Close()

	var list []entity.ProductKPI
	for rows.Next() {
		var p entity.ProductKPI
		if err := rows.Scan(&p.ID, &p.Name, &p.PartnerCode, &p.UnitPrice,
			&p.KPISupplyPrice, &p.KPICostPrice, &p.KPICommissionRate,
			&p.KPIUnitCount, &p.KPICountEnabled, &p.KPISalesEnabled); err != nil {
			return nil, fmt.Errorf("scan kpi product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
