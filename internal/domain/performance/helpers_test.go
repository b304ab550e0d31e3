package performance_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/shieldlab/ops-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers compartidos por los tests del motor
// ──────────────────────────────────────────────────────────────────────────────

// assertDecEq compara un decimal contra su representación esperada en string,
// ignorando diferencias internas de exponente.
func assertDecEq(t *testing.T, expected string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	msg := fmt.Sprintf("esperado %s, obtenido %s", expected, got.String())
	if len(msgAndArgs) > 0 {
		msg += ": " + fmt.Sprint(msgAndArgs...)
	}
	assert.True(t, dec(expected).Equal(got), msg)
}

// dec atajo para literales decimales en fixtures.
func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// decPtr puntero a decimal, para los overrides KPI opcionales.
func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// kpiProduct fixture mínimo del catálogo.
func kpiProduct(name, partner string, unitPrice string) entity.ProductKPI {
	return entity.ProductKPI{
		Name:            name,
		PartnerCode:     partner,
		UnitPrice:       dec(unitPrice),
		KPIUnitCount:    1,
		KPICountEnabled: true,
		KPISalesEnabled: true,
	}
}
