package performance

import (
	"github.com/shopspring/decimal"

	"github.com/shieldlab/ops-api/internal/domain/entity"
)

// DeductionItem detalle de una regla custom evaluada, para las filas de la
// vista de verificación cruzada. Value viene redondeado a unidad monetaria.
type DeductionItem struct {
	ID       string
	Label    string
	Value    decimal.Decimal
	Operator string
}

// EvaluateCustom interpreta las reglas custom habilitadas contra un precio
// de suministro, cantidad y partner, y devuelve el total firmado.
//
// Convención de signo: el resultado siempre se aplica como margen -= total.
// Por eso una regla con operator add (ingreso) RESTA del total acumulado, y
// una subtract (costo, el default) SUMA.
//
// Por regla habilitada que no excluye al partner:
//   - fixed          -> fixedValue × cantidad
//   - rate con tasa  -> supplyPrice × rate
//   - cualquier otra -> 0 (incluye rate sin tasa y kpi, que no tiene base
//     en el camino custom)
func EvaluateCustom(rules []entity.MarginDeduction, supplyPrice decimal.Decimal, quantity int64, partner string) decimal.Decimal {
	total, _ := evaluateCustom(rules, supplyPrice, quantity, partner, false)
	return total
}

// ItemizeCustom igual que EvaluateCustom pero además devuelve el desglose
// por regla (valores redondeados) para las filas de detalle. El total
// devuelto es el mismo sin redondear.
func ItemizeCustom(rules []entity.MarginDeduction, supplyPrice decimal.Decimal, quantity int64, partner string) (decimal.Decimal, []DeductionItem) {
	return evaluateCustom(rules, supplyPrice, quantity, partner, true)
}

func evaluateCustom(rules []entity.MarginDeduction, supplyPrice decimal.Decimal, quantity int64, partner string, itemize bool) (decimal.Decimal, []DeductionItem) {
	total := decimal.Zero
	var items []DeductionItem

	for _, rule := range rules {
		if rule.Type != entity.DeductionCustom || !rule.Enabled || rule.Excludes(partner) {
			continue
		}

		var value decimal.Decimal
		switch {
		case rule.ValueType == entity.ValueTypeFixed:
			value = rule.FixedValue.Mul(decimal.NewFromInt(quantity))
		case rule.ValueType == entity.ValueTypeRate && rule.Rate != nil:
			value = supplyPrice.Mul(*rule.Rate)
		default:
			value = decimal.Zero
		}

		operator := rule.Operator
		if operator != entity.OperatorAdd {
			operator = entity.OperatorSubtract
		}
		if operator == entity.OperatorAdd {
			total = total.Sub(value)
		} else {
			total = total.Add(value)
		}

		if itemize {
			items = append(items, DeductionItem{
				ID:       rule.ID,
				Label:    rule.Label,
				Value:    value.Round(0),
				Operator: operator,
			})
		}
	}
	return total, items
}
