package performance

import (
	"github.com/shopspring/decimal"

	"github.com/shieldlab/ops-api/internal/domain/entity"
)

// Fallbacks cuando no existe documento de fórmula. La ausencia de
// configuración nunca bloquea el reporte.
var (
	fallbackVATRate        = decimal.NewFromFloat(0.1)
	fallbackCommissionRate = decimal.NewFromFloat(0.02585) // 2.585%
)

// ReportConstants constantes derivadas una sola vez por reporte a partir del
// documento de fórmula (o de los fallbacks). Las cinco ventanas comparten el
// mismo valor, solo lectura: recalcular a mitad de orquestación rompería la
// consistencia entre ventanas.
type ReportConstants struct {
	VATRate    decimal.Decimal
	VATExclude bool

	// Derivadas de las reglas shippingFee y commission (consultadas una sola
	// vez, nunca re-evaluadas por pedido).
	DefaultCommissionRate decimal.Decimal
	DefaultShippingFee    decimal.Decimal
	ShippingExcludes      []string

	// Reglas custom en el orden del documento; el evaluador filtra por
	// enabled y exclusiones de partner.
	CustomRules []entity.MarginDeduction
}

// ConstantsFrom deriva las constantes del reporte desde la configuración.
// cfg nil (documento inexistente) produce los fallbacks: IVA 10%, comisión
// 2.585%, envío 0, sin exclusiones, sin reglas custom.
func ConstantsFrom(cfg *entity.MarginFormulaConfig) ReportConstants {
	c := ReportConstants{
		VATRate:               fallbackVATRate,
		DefaultCommissionRate: fallbackCommissionRate,
		DefaultShippingFee:    decimal.Zero,
	}
	if cfg == nil {
		return c
	}

	if !cfg.Formula.VATRate.IsZero() {
		c.VATRate = cfg.Formula.VATRate
	}
	c.VATExclude = cfg.Formula.VATExclude

	for _, d := range cfg.Formula.Deductions {
		switch d.Type {
		case entity.DeductionShippingFee:
			if d.Enabled {
				c.DefaultShippingFee = d.FixedValue
				c.ShippingExcludes = d.ExcludePartners
			}
		case entity.DeductionCommission:
			if d.Enabled && d.Rate != nil {
				c.DefaultCommissionRate = *d.Rate
			}
		case entity.DeductionCustom:
			c.CustomRules = append(c.CustomRules, d)
		}
	}
	return c
}

// ShippingFeeFor devuelve el costo de envío plano por pedido para el partner:
// cero si el partner está excluido de la regla, el valor configurado si no.
// No escala por cantidad.
func (c ReportConstants) ShippingFeeFor(partner string) decimal.Decimal {
	for _, p := range c.ShippingExcludes {
		if p == partner {
			return decimal.Zero
		}
	}
	return c.DefaultShippingFee
}
