package performance

import (
	"github.com/shopspring/decimal"

	"github.com/shieldlab/ops-api/internal/domain/entity"
)

// OrderFinancials cifras monetarias resueltas para un pedido. Todos los
// montos quedan SIN redondear: el redondeo a unidad monetaria ocurre solo en
// los bordes de presentación (totales agregados y filas de detalle) para no
// componer error de redondeo a lo largo del pipeline. La excepción son los
// valores del desglose Deductions, que ya vienen redondeados por ser
// presentación.
type OrderFinancials struct {
	Partner  string
	Quantity int64

	// Matched es la configuración KPI que ganó el matching, o nil si el
	// pedido quedó sin matchear (pass-through).
	Matched *entity.ProductKPI

	SupplyPrice      decimal.Decimal
	Cost             decimal.Decimal
	Commission       decimal.Decimal
	ShippingFee      decimal.Decimal // plano por pedido; cero si el partner está excluido
	CustomDeductions decimal.Decimal // total firmado de EvaluateCustom
	Margin           decimal.Decimal

	// Contribuciones KPI del pedido a los contadores del partner.
	KPICount int64
	KPISales decimal.Decimal

	// Desglose por regla custom, solo para la ventana de detalle.
	Deductions []DeductionItem
}

// ResolveOrder combina el resultado del matcher (o su ausencia) con los
// overrides KPI para producir las cifras del pedido.
//
// Con match, las cadenas de fallback se aplican en este orden exacto:
//
//	supplyPrice unitario: KPISupplyPrice, si no UnitPrice
//	cost unitario:        KPICostPrice, si no 0
//	tasa de comisión:     KPICommissionRate, si no la tasa por defecto
//
// KPICount solo suma si KPICountEnabled; deshabilitado aporta CERO al conteo
// (ni siquiera el 1 implícito). KPISales solo suma BasePrice si
// KPISalesEnabled.
//
// Sin match el pedido es pass-through: supplyPrice = BasePrice, cost 0,
// comisión = BasePrice × tasa por defecto, y aporta 1 al conteo KPI y
// BasePrice a las ventas KPI incondicionalmente.
func ResolveOrder(order entity.Order, partner string, catalog []entity.ProductKPI, consts ReportConstants) OrderFinancials {
	qty := order.Qty()
	qtyDec := decimal.NewFromInt(qty)

	f := OrderFinancials{
		Partner:  partner,
		Quantity: qty,
		Matched:  MatchProduct(order.ProductInfo, partner, catalog),
	}

	if f.Matched != nil {
		m := f.Matched

		unitSupply := m.UnitPrice
		if m.KPISupplyPrice != nil {
			unitSupply = *m.KPISupplyPrice
		}
		f.SupplyPrice = unitSupply.Mul(qtyDec)

		if m.KPICostPrice != nil {
			f.Cost = m.KPICostPrice.Mul(qtyDec)
		}

		rate := consts.DefaultCommissionRate
		if m.KPICommissionRate != nil {
			rate = *m.KPICommissionRate
		}
		f.Commission = f.SupplyPrice.Mul(rate)

		if m.KPICountEnabled {
			f.KPICount = m.KPIUnitCount * qty
		}
		if m.KPISalesEnabled {
			f.KPISales = order.BasePrice
		}
	} else {
		f.SupplyPrice = order.BasePrice
		f.Commission = order.BasePrice.Mul(consts.DefaultCommissionRate)
		f.KPICount = 1
		f.KPISales = order.BasePrice
	}

	f.ShippingFee = consts.ShippingFeeFor(partner)
	f.CustomDeductions, f.Deductions = ItemizeCustom(consts.CustomRules, f.SupplyPrice, qty, partner)

	f.Margin = f.SupplyPrice.
		Sub(f.Cost).
		Sub(f.ShippingFee).
		Sub(f.Commission).
		Sub(f.CustomDeductions)

	return f
}
