package dto

import (
	"github.com/shopspring/decimal"

	"github.com/shieldlab/ops-api/internal/domain/entity"
)

// DTOs del reporte integrado de margen y KPI. Los nombres de campo JSON son
// el contrato con el dashboard existente, por eso van en camelCase.

// DateRangeDTO rango efectivo del reporte.
type DateRangeDTO struct {
	StartDate string `json:"startDate"` // ISO (YYYY-MM-DD)
	EndDate   string `json:"endDate"`
	Year      int    `json:"year"` // año del endDate; ancla de la ventana anual
}

// PartnerRowDTO fila por partner de una ventana.
type PartnerRowDTO struct {
	Partner          string          `json:"partner"`
	Count            int64           `json:"count"`
	CountForKPI      int64           `json:"countForKPI"`
	Quantity         int64           `json:"quantity"`
	BasePrice        decimal.Decimal `json:"basePrice"`
	BasePriceForKPI  decimal.Decimal `json:"basePriceForKPI"`
	ShippingFee      decimal.Decimal `json:"shippingFee"`
	SupplyPrice      decimal.Decimal `json:"supplyPrice"`
	Cost             decimal.Decimal `json:"cost"`
	VAT              decimal.Decimal `json:"vat"`
	TotalWithVAT     decimal.Decimal `json:"totalWithVat"`
	Commission       decimal.Decimal `json:"commission"`
	CustomDeductions decimal.Decimal `json:"customDeductions"`
	Margin           decimal.Decimal `json:"margin"`
}

// WindowTotalsDTO suma de las filas por partner de una ventana.
type WindowTotalsDTO struct {
	Count            int64           `json:"count"`
	CountForKPI      int64           `json:"countForKPI"`
	Quantity         int64           `json:"quantity"`
	BasePrice        decimal.Decimal `json:"basePrice"`
	BasePriceForKPI  decimal.Decimal `json:"basePriceForKPI"`
	ShippingFee      decimal.Decimal `json:"shippingFee"`
	SupplyPrice      decimal.Decimal `json:"supplyPrice"`
	Cost             decimal.Decimal `json:"cost"`
	VAT              decimal.Decimal `json:"vat"`
	TotalWithVAT     decimal.Decimal `json:"totalWithVat"`
	Commission       decimal.Decimal `json:"commission"`
	CustomDeductions decimal.Decimal `json:"customDeductions"`
	Margin           decimal.Decimal `json:"margin"`
}

// WindowDTO ventana estándar: desglose por partner más totales.
type WindowDTO struct {
	ByPartner []PartnerRowDTO `json:"byPartner"`
	Totals    WindowTotalsDTO `json:"totals"`
}

// LastMonthDTO la ventana del mes anterior expone solo totales.
type LastMonthDTO struct {
	Totals WindowTotalsDTO `json:"totals"`
}

// DeductionItemDTO una regla custom evaluada en una fila de detalle.
type DeductionItemDTO struct {
	ID       string          `json:"id"`
	Label    string          `json:"label"`
	Value    decimal.Decimal `json:"value"` // redondeado a unidad monetaria
	Operator string          `json:"operator"`
}

// OrderDetailDTO fila por pedido de la vista de verificación cruzada.
// Todos los montos vienen redondeados a unidad monetaria.
type OrderDetailDTO struct {
	OrderID          int64              `json:"orderId"`
	OrderDate        string             `json:"orderDate"`
	CustomerName     string             `json:"customerName"`
	Partner          string             `json:"partner"`
	ProductInfo      string             `json:"productInfo"`
	Quantity         int64              `json:"quantity"`
	MatchedKPI       *string            `json:"matchedKPI"` // nombre del producto matcheado, o null
	SupplyPrice      decimal.Decimal    `json:"supplyPrice"`
	Cost             decimal.Decimal    `json:"cost"`
	ShippingFee      decimal.Decimal    `json:"shippingFee"`
	Commission       decimal.Decimal    `json:"commission"`
	CustomDeductions []DeductionItemDTO `json:"customDeductions"`
	Margin           decimal.Decimal    `json:"margin"`
}

// DetailWindowDTO la ventana de verificación cruzada: el mismo rango
// seleccionado, pero con desglose por pedido además del agregado.
type DetailWindowDTO struct {
	ByPartner []PartnerRowDTO  `json:"byPartner"`
	Totals    WindowTotalsDTO  `json:"totals"`
	Details   []OrderDetailDTO `json:"details"`
}

// YearWindowDTO ventana anual acumulada, con el conteo de unidades por
// familia de producto.
type YearWindowDTO struct {
	ByPartner    []PartnerRowDTO  `json:"byPartner"`
	Totals       WindowTotalsDTO  `json:"totals"`
	ProductSales map[string]int64 `json:"productSales"`
}

// ProductKPISettingDTO eco del catálogo KPI para la UI.
type ProductKPISettingDTO struct {
	ID                int64            `json:"id"`
	Name              string           `json:"name"`
	PartnerCode       string           `json:"partnerCode"`
	UnitPrice         decimal.Decimal  `json:"unitPrice"`
	KPISupplyPrice    *decimal.Decimal `json:"kpiSupplyPrice"`
	KPICostPrice      *decimal.Decimal `json:"kpiCostPrice"`
	KPICommissionRate *decimal.Decimal `json:"kpiCommissionRate"`
	KPIUnitCount      int64            `json:"kpiUnitCount"`
	KPICountEnabled   bool             `json:"kpiCountEnabled"`
	KPISalesEnabled   bool             `json:"kpiSalesEnabled"`
}

// PriceInfoDTO constantes efectivas usadas por el cálculo.
type PriceInfoDTO struct {
	VATRate               decimal.Decimal `json:"vatRate"`
	DefaultCommissionRate decimal.Decimal `json:"defaultCommissionRate"`
	DefaultShippingFee    decimal.Decimal `json:"defaultShippingFee"`
}

// MarginConfigDTO resumen del documento de fórmula vigente; null en el
// reporte cuando todavía no hay documento (los fallbacks aplican igual).
type MarginConfigDTO struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Formula     entity.MarginFormula `json:"formula"`
	UpdatedAt   string               `json:"updatedAt"`
}

// IntegratedReportDTO el documento completo del reporte integrado.
type IntegratedReportDTO struct {
	DateRange          DateRangeDTO           `json:"dateRange"`
	Selected           WindowDTO              `json:"selected"`
	SearchPeriodMargin DetailWindowDTO        `json:"searchPeriodMargin"`
	MonthToDate        WindowDTO              `json:"monthToDate"`
	LastMonth          LastMonthDTO           `json:"lastMonth"`
	YearToDate         YearWindowDTO          `json:"yearToDate"`
	ProductKPISettings []ProductKPISettingDTO `json:"productKPISettings"`
	PriceInfo          PriceInfoDTO           `json:"priceInfo"`
	MarginConfig       *MarginConfigDTO       `json:"marginConfig"`
}
