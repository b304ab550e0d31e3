package entity

import "github.com/shopspring/decimal"

// ProductKPI configuración KPI de un producto del catálogo base.
//
// La clave de búsqueda es el par (PartnerCode, Name): varios partners pueden
// registrar el mismo nombre, pero el matching nunca cruza de partner.
// Los tres overrides (KPISupplyPrice, KPICostPrice, KPICommissionRate) son
// opcionales: nil significa "usar el fallback documentado", no cero.
type ProductKPI struct {
	ID          int64
	Name        string // nombre visible; clave de matching contra ProductInfo
	PartnerCode string // partner dueño del registro; vacío se normaliza a 본사
	UnitPrice   decimal.Decimal

	KPISupplyPrice    *decimal.Decimal // nil -> UnitPrice
	KPICostPrice      *decimal.Decimal // nil -> 0
	KPICommissionRate *decimal.Decimal // nil -> tasa de comisión por defecto

	KPIUnitCount    int64 // unidades KPI que representa una unidad pedida
	KPICountEnabled bool  // si cuenta para el conteo KPI
	KPISalesEnabled bool  // si su venta suma al total de ventas KPI
}
