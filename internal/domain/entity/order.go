package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order pedido tal como lo entrega la tabla de pedidos (solo lectura).
// El motor de reportes nunca modifica pedidos; los consume por rango de fechas.
//
// ProductInfo es texto libre: puede concatenar varios artículos en una sola
// cadena. Solo se usa para matching contra el catálogo KPI, nunca se parsea
// a líneas estructuradas.
type Order struct {
	ID           int64
	OrderDate    time.Time
	OrderSource  string          // canal/협력사 de venta; vacío si la fila no lo trae
	Quantity     int64           // 0 en la fila se interpreta como 1
	BasePrice    decimal.Decimal // monto de venta atribuido (sin IVA)
	ShippingFee  decimal.Decimal // costo de envío registrado en el pedido
	ProductInfo  string
	CustomerName string
}

// Qty devuelve la cantidad efectiva del pedido (mínimo 1).
func (o Order) Qty() int64 {
	if o.Quantity <= 0 {
		return 1
	}
	return o.Quantity
}
