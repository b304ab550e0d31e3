package performance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shieldlab/ops-api/internal/domain/entity"
	"github.com/shieldlab/ops-api/internal/domain/performance"
)

// ──────────────────────────────────────────────────────────────────────────────
// EvaluateCustom: interpretación de reglas custom (fixed/rate, add/subtract,
// exclusiones por partner) y convención de signo margen -= total.
// ──────────────────────────────────────────────────────────────────────────────

func customRule(id, valueType string, fixed string, rate *string) entity.MarginDeduction {
	d := entity.MarginDeduction{
		ID:         id,
		Type:       entity.DeductionCustom,
		Enabled:    true,
		Label:      id,
		ValueType:  valueType,
		FixedValue: dec(fixed),
	}
	if rate != nil {
		d.Rate = decPtr(*rate)
	}
	return d
}

func strPtr(s string) *string { return &s }

func TestEvaluateCustom_FixedMultiplicaPorCantidad(t *testing.T) {
	rules := []entity.MarginDeduction{customRule("packaging", entity.ValueTypeFixed, "500", nil)}

	total := performance.EvaluateCustom(rules, dec("100000"), 3, "본사")
	assertDecEq(t, "1500", total)
}

func TestEvaluateCustom_RateAplicaSobreSupplyPrice(t *testing.T) {
	rules := []entity.MarginDeduction{customRule("fee", entity.ValueTypeRate, "0", strPtr("0.03"))}

	// 200000 × 0.03; la cantidad no interviene en rate
	total := performance.EvaluateCustom(rules, dec("200000"), 5, "본사")
	assertDecEq(t, "6000", total)
}

func TestEvaluateCustom_RateSinTasaValeCero(t *testing.T) {
	rules := []entity.MarginDeduction{customRule("fee", entity.ValueTypeRate, "999", nil)}

	total := performance.EvaluateCustom(rules, dec("200000"), 5, "본사")
	assertDecEq(t, "0", total)
}

func TestEvaluateCustom_OperadorAddInvierteElSigno(t *testing.T) {
	// Una regla add (ingreso) con fixedValue 500 y cantidad 2 debe producir
	// -1000, y la misma regla subtract +1000: el total siempre se aplica
	// como margen -= total.
	add := customRule("bonus", entity.ValueTypeFixed, "500", nil)
	add.Operator = entity.OperatorAdd
	sub := customRule("bonus", entity.ValueTypeFixed, "500", nil)
	sub.Operator = entity.OperatorSubtract

	assertDecEq(t, "-1000", performance.EvaluateCustom([]entity.MarginDeduction{add}, dec("0"), 2, "본사"))
	assertDecEq(t, "1000", performance.EvaluateCustom([]entity.MarginDeduction{sub}, dec("0"), 2, "본사"))
}

func TestEvaluateCustom_OperadorVacioEsSubtract(t *testing.T) {
	rule := customRule("etc", entity.ValueTypeFixed, "100", nil)
	rule.Operator = ""

	assertDecEq(t, "100", performance.EvaluateCustom([]entity.MarginDeduction{rule}, dec("0"), 1, "본사"))
}

func TestEvaluateCustom_IgnoraReglasDeshabilitadasYExcluidas(t *testing.T) {
	disabled := customRule("off", entity.ValueTypeFixed, "1000", nil)
	disabled.Enabled = false
	excluded := customRule("excl", entity.ValueTypeFixed, "1000", nil)
	excluded.ExcludePartners = []string{"로켓그로스"}
	active := customRule("on", entity.ValueTypeFixed, "300", nil)

	rules := []entity.MarginDeduction{disabled, excluded, active}
	// Solo la regla activa cuenta para 로켓그로스.
	total := performance.EvaluateCustom(rules, dec("0"), 1, "로켓그로스")
	assertDecEq(t, "300", total)
}

func TestEvaluateCustom_IgnoraReglasNoCustom(t *testing.T) {
	shipping := entity.MarginDeduction{
		ID: "shippingFee", Type: entity.DeductionShippingFee,
		Enabled: true, ValueType: entity.ValueTypeFixed, FixedValue: dec("3000"),
	}

	// shippingFee y commission no pasan por el evaluador genérico.
	total := performance.EvaluateCustom([]entity.MarginDeduction{shipping}, dec("100000"), 1, "본사")
	assertDecEq(t, "0", total)
}

func TestItemizeCustom_DesglosaPorRegla(t *testing.T) {
	fee := customRule("fee", entity.ValueTypeRate, "0", strPtr("0.025"))
	fee.Label = "수수료 추가"
	bonus := customRule("bonus", entity.ValueTypeFixed, "500", nil)
	bonus.Label = "판매 보너스"
	bonus.Operator = entity.OperatorAdd

	total, items := performance.ItemizeCustom([]entity.MarginDeduction{fee, bonus}, dec("100333"), 2, "본사")

	// 100333 × 0.025 = 2508.325; el total queda sin redondear, el item sí.
	assertDecEq(t, "1508.325", total)
	require.Len(t, items, 2)
	assert.Equal(t, "fee", items[0].ID)
	assert.Equal(t, "수수료 추가", items[0].Label)
	assertDecEq(t, "2508", items[0].Value)
	assert.Equal(t, entity.OperatorSubtract, items[0].Operator)
	assert.Equal(t, "bonus", items[1].ID)
	assertDecEq(t, "1000", items[1].Value)
	assert.Equal(t, entity.OperatorAdd, items[1].Operator)
}
