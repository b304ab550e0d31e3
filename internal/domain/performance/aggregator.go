package performance

import (
	"github.com/shopspring/decimal"

	"github.com/shieldlab/ops-api/internal/domain/entity"
)

// PartnerStats acumulador crudo de una ventana de tiempo para un partner.
// Sumas sin redondear; viven solo durante la construcción de un reporte.
type PartnerStats struct {
	Count       int64
	CountForKPI int64
	Quantity    int64

	BasePrice       decimal.Decimal
	BasePriceForKPI decimal.Decimal
	ShippingFee     decimal.Decimal // suma del envío registrado en los pedidos
	SupplyPrice     decimal.Decimal
	Cost            decimal.Decimal
	Commission      decimal.Decimal
}

// Aggregate pliega los pedidos de una ventana en acumuladores por partner.
// Los cinco partners del roster se inicializan en cero por adelantado:
// un partner sin pedidos igual aparece en el reporte con valores cero.
func Aggregate(orders []entity.Order, roster Roster, catalog []entity.ProductKPI, consts ReportConstants) map[string]*PartnerStats {
	stats := make(map[string]*PartnerStats, len(roster))
	for _, p := range roster {
		stats[p] = &PartnerStats{}
	}

	for _, order := range orders {
		partner := roster.Classify(order.OrderSource)
		f := ResolveOrder(order, partner, catalog, consts)

		s := stats[partner]
		s.Count++
		s.CountForKPI += f.KPICount
		s.Quantity += order.Qty()
		s.BasePrice = s.BasePrice.Add(order.BasePrice)
		s.BasePriceForKPI = s.BasePriceForKPI.Add(f.KPISales)
		s.ShippingFee = s.ShippingFee.Add(order.ShippingFee)
		s.SupplyPrice = s.SupplyPrice.Add(f.SupplyPrice)
		s.Cost = s.Cost.Add(f.Cost)
		s.Commission = s.Commission.Add(f.Commission)
	}
	return stats
}

// PartnerRow fila de presentación de un partner en una ventana. Los montos
// derivados (supplyPrice, cost, vat, totalWithVat, commission,
// customDeductions, margin) vienen redondeados a unidad monetaria; las sumas
// crudas (basePrice, shippingFee) se exponen tal cual.
type PartnerRow struct {
	Partner     string
	Count       int64
	CountForKPI int64
	Quantity    int64

	BasePrice        decimal.Decimal
	BasePriceForKPI  decimal.Decimal
	ShippingFee      decimal.Decimal
	SupplyPrice      decimal.Decimal
	Cost             decimal.Decimal
	VAT              decimal.Decimal
	TotalWithVAT     decimal.Decimal
	Commission       decimal.Decimal
	CustomDeductions decimal.Decimal
	Margin           decimal.Decimal
}

// BuildPartnerRows convierte los acumuladores crudos en filas de
// presentación, en el orden del roster.
//
// Las deducciones custom se evalúan aquí sobre los TOTALES del partner
// (supplyPrice y cantidad agregados), no pedido a pedido. Por eso el margen
// por partner y la suma de márgenes por pedido de la vista de detalle pueden
// divergir; ambas cifras se exponen a propósito para la verificación cruzada.
func BuildPartnerRows(roster Roster, stats map[string]*PartnerStats, consts ReportConstants) []PartnerRow {
	rows := make([]PartnerRow, 0, len(roster))
	for _, partner := range roster {
		s := stats[partner]
		if s == nil {
			s = &PartnerStats{}
		}

		vat := s.SupplyPrice.Mul(consts.VATRate).Round(0)
		customTotal := EvaluateCustom(consts.CustomRules, s.SupplyPrice, s.Quantity, partner)

		marginBase := s.SupplyPrice
		if consts.VATExclude {
			marginBase = s.SupplyPrice.Div(decimal.NewFromInt(1).Add(consts.VATRate))
		}
		margin := marginBase.
			Sub(s.Cost).
			Sub(s.ShippingFee).
			Sub(s.Commission).
			Sub(customTotal)

		rows = append(rows, PartnerRow{
			Partner:          partner,
			Count:            s.Count,
			CountForKPI:      s.CountForKPI,
			Quantity:         s.Quantity,
			BasePrice:        s.BasePrice,
			BasePriceForKPI:  s.BasePriceForKPI,
			ShippingFee:      s.ShippingFee,
			SupplyPrice:      s.SupplyPrice.Round(0),
			Cost:             s.Cost.Round(0),
			VAT:              vat,
			TotalWithVAT:     s.SupplyPrice.Add(vat).Round(0),
			Commission:       s.Commission.Round(0),
			CustomDeductions: customTotal.Round(0),
			Margin:           margin.Round(0),
		})
	}
	return rows
}

// WindowTotals totales de una ventana: suma de las filas por partner (sobre
// los valores ya redondeados, igual que hace la vista).
type WindowTotals struct {
	Count       int64
	CountForKPI int64
	Quantity    int64

	BasePrice        decimal.Decimal
	BasePriceForKPI  decimal.Decimal
	ShippingFee      decimal.Decimal
	SupplyPrice      decimal.Decimal
	Cost             decimal.Decimal
	VAT              decimal.Decimal
	TotalWithVAT     decimal.Decimal
	Commission       decimal.Decimal
	CustomDeductions decimal.Decimal
	Margin           decimal.Decimal
}

// BuildTotals suma las filas por partner en el total de la ventana.
func BuildTotals(rows []PartnerRow) WindowTotals {
	var t WindowTotals
	for _, r := range rows {
		t.Count += r.Count
		t.CountForKPI += r.CountForKPI
		t.Quantity += r.Quantity
		t.BasePrice = t.BasePrice.Add(r.BasePrice)
		t.BasePriceForKPI = t.BasePriceForKPI.Add(r.BasePriceForKPI)
		t.ShippingFee = t.ShippingFee.Add(r.ShippingFee)
		t.SupplyPrice = t.SupplyPrice.Add(r.SupplyPrice)
		t.Cost = t.Cost.Add(r.Cost)
		t.VAT = t.VAT.Add(r.VAT)
		t.TotalWithVAT = t.TotalWithVAT.Add(r.TotalWithVAT)
		t.Commission = t.Commission.Add(r.Commission)
		t.CustomDeductions = t.CustomDeductions.Add(r.CustomDeductions)
		t.Margin = t.Margin.Add(r.Margin)
	}
	return t
}
