package entity

import "github.com/shopspring/decimal"

// Tipos de deducción de la fórmula de margen. El vocabulario es fijo:
// cost y shippingFee y commission se consultan una sola vez para derivar las
// constantes del reporte; solo las reglas custom pasan por el evaluador
// genérico.
const (
	DeductionCost        = "cost"
	DeductionShippingFee = "shippingFee"
	DeductionCommission  = "commission"
	DeductionCustom      = "custom"
)

// Tipos de valor de una regla de deducción.
const (
	ValueTypeKPI   = "kpi"   // usa los valores KPI del producto (solo cost)
	ValueTypeFixed = "fixed" // monto fijo por unidad
	ValueTypeRate  = "rate"  // porcentaje sobre el precio de suministro
)

// Operadores de una regla. Subtract es el default: la regla es un costo.
// Add invierte el signo: la regla es un ingreso que aumenta el margen.
const (
	OperatorAdd      = "add"
	OperatorSubtract = "subtract"
)

// MarginDeduction una regla de la fórmula de margen.
type MarginDeduction struct {
	ID              string           `json:"id"`
	Type            string           `json:"type"` // cost | shippingFee | commission | custom
	Enabled         bool             `json:"enabled"`
	Label           string           `json:"label"`
	Description     string           `json:"description"`
	ValueType       string           `json:"valueType"` // kpi | fixed | rate
	FixedValue      decimal.Decimal  `json:"fixedValue"`
	Rate            *decimal.Decimal `json:"rate,omitempty"`
	ExcludePartners []string         `json:"excludePartners,omitempty"`
	Operator        string           `json:"operator,omitempty"` // add | subtract (default)
}

// Excludes indica si la regla excluye al partner dado.
func (d MarginDeduction) Excludes(partner string) bool {
	for _, p := range d.ExcludePartners {
		if p == partner {
			return true
		}
	}
	return false
}

// MarginFormula el cuerpo de la fórmula dentro del documento de configuración.
type MarginFormula struct {
	Base       string            `json:"base"` // supplyPrice | basePrice
	VATExclude bool              `json:"vatExclude"`
	VATRate    decimal.Decimal   `json:"vatRate"`
	Deductions []MarginDeduction `json:"deductions"`
}

// MarginFormulaConfig documento versionado con la fórmula de margen.
// Se guarda como JSON; Version sube en cada PUT.
type MarginFormulaConfig struct {
	Version     int           `json:"version"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Formula     MarginFormula `json:"formula"`
	UpdatedAt   string        `json:"updatedAt"`
	UpdatedBy   string        `json:"updatedBy"`
}
