package performance_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appperf "github.com/shieldlab/ops-api/internal/application/performance"
	"github.com/shieldlab/ops-api/internal/domain"
	"github.com/shieldlab/ops-api/internal/domain/entity"
	domperf "github.com/shieldlab/ops-api/internal/domain/performance"
	"github.com/shieldlab/ops-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de repositorio
// ──────────────────────────────────────────────────────────────────────────────

type readRange struct{ start, end time.Time }

type fakeOrderRepo struct {
	mu     sync.Mutex
	reads  []readRange
	orders []entity.Order
	// failOn hace fallar solo las lecturas que empiezan en ese instante;
	// cero falla todas si fail está activo.
	fail   bool
	failOn time.Time
}

func (f *fakeOrderRepo) FindByDateRange(_ context.Context, start, end time.Time) ([]entity.Order, error) {
	f.mu.Lock()
	f.reads = append(f.reads, readRange{start, end})
	f.mu.Unlock()

	if f.fail && (f.failOn.IsZero() || f.failOn.Equal(start)) {
		return nil, errors.New("conexión perdida")
	}
	var out []entity.Order
	for _, o := range f.orders {
		if !o.OrderDate.Before(start) && !o.OrderDate.After(end) {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeCatalogRepo struct {
	products []entity.ProductKPI
	err      error
}

func (f *fakeCatalogRepo) FindActive(context.Context) ([]entity.ProductKPI, error) {
	return f.products, f.err
}

type fakeFormulaRepo struct {
	cfg *entity.MarginFormulaConfig
	err error
}

func (f *fakeFormulaRepo) Get(context.Context) (*entity.MarginFormulaConfig, error) {
	return f.cfg, f.err
}

func (f *fakeFormulaRepo) Save(context.Context, *entity.MarginFormulaConfig) error { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

var testLoc = time.FixedZone("KST", 9*3600)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// defaultFormulaConfig el documento por defecto del negocio: IVA 10%, envío
// fijo 3000 excluyendo 로켓그로스, comisión 2.585%.
func defaultFormulaConfig() *entity.MarginFormulaConfig {
	rate := dec("0.02585")
	return &entity.MarginFormulaConfig{
		Version:     1,
		Name:        "기본 마진 공식",
		Description: "마진 = 공급가 - 원가 - 배송비 - 수수료",
		Formula: entity.MarginFormula{
			Base:    "supplyPrice",
			VATRate: dec("0.1"),
			Deductions: []entity.MarginDeduction{
				{ID: "cost", Type: entity.DeductionCost, Enabled: true, ValueType: entity.ValueTypeKPI},
				{ID: "shippingFee", Type: entity.DeductionShippingFee, Enabled: true,
					ValueType: entity.ValueTypeFixed, FixedValue: dec("3000"),
					ExcludePartners: []string{"로켓그로스"}},
				{ID: "commission", Type: entity.DeductionCommission, Enabled: true,
					ValueType: entity.ValueTypeRate, Rate: &rate},
			},
		},
		UpdatedAt: "2026-01-15T09:00:00Z",
		UpdatedBy: "admin",
	}
}

func newUseCase(orders *fakeOrderRepo, catalog *fakeCatalogRepo, formula *fakeFormulaRepo) *appperf.ReportUseCase {
	return appperf.NewReportUseCase(
		orders, catalog, formula,
		domperf.DefaultRoster(),
		testLoc,
		logger.New(logger.Config{Env: "production", Level: "error"}),
	)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, testLoc)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventanas de tiempo
// ──────────────────────────────────────────────────────────────────────────────

func TestBuildReport_VentanasDerivadasDelEndDate(t *testing.T) {
	orders := &fakeOrderRepo{}
	uc := newUseCase(orders, &fakeCatalogRepo{}, &fakeFormulaRepo{})

	// endDate 2024-03-15: el mes anterior es febrero de un año bisiesto.
	_, err := uc.BuildReport(context.Background(), day(2024, time.March, 10), day(2024, time.March, 15))
	require.NoError(t, err)

	require.Len(t, orders.reads, 5, "una lectura acotada por ventana")

	counts := map[readRange]int{}
	for _, r := range orders.reads {
		counts[r]++
	}

	sel := readRange{
		time.Date(2024, time.March, 10, 0, 0, 0, 0, testLoc),
		time.Date(2024, time.March, 15, 23, 59, 59, 999999999, testLoc),
	}
	assert.Equal(t, 2, counts[sel], "el rango seleccionado se lee dos veces: agregado y detalle")

	assert.Equal(t, 1, counts[readRange{
		time.Date(2024, time.March, 1, 0, 0, 0, 0, testLoc),
		sel.end,
	}], "mes en curso: del 1 al endDate")

	assert.Equal(t, 1, counts[readRange{
		time.Date(2024, time.February, 1, 0, 0, 0, 0, testLoc),
		time.Date(2024, time.February, 29, 23, 59, 59, 999999999, testLoc),
	}], "mes anterior completo, con el 29 de febrero bisiesto")

	assert.Equal(t, 1, counts[readRange{
		time.Date(2024, time.January, 1, 0, 0, 0, 0, testLoc),
		sel.end,
	}], "año en curso: del 1 de enero al endDate")
}

func TestBuildReport_EneroRetrocedeADiciembre(t *testing.T) {
	orders := &fakeOrderRepo{}
	uc := newUseCase(orders, &fakeCatalogRepo{}, &fakeFormulaRepo{})

	_, err := uc.BuildReport(context.Background(), day(2026, time.January, 5), day(2026, time.January, 5))
	require.NoError(t, err)

	found := false
	for _, r := range orders.reads {
		if r.start.Equal(time.Date(2025, time.December, 1, 0, 0, 0, 0, testLoc)) {
			found = true
			assert.True(t, r.end.Equal(time.Date(2025, time.December, 31, 23, 59, 59, 999999999, testLoc)))
		}
	}
	assert.True(t, found, "el mes anterior de enero es diciembre del año previo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario extremo a extremo
// ──────────────────────────────────────────────────────────────────────────────

func TestBuildReport_EscenarioSinMatch(t *testing.T) {
	// Un pedido de 본사 por 100000 sin match de catálogo, fórmula por
	// defecto: la fila de detalle debe dar margen 100000 − 0 − 3000 − 2585 = 94415.
	orders := &fakeOrderRepo{orders: []entity.Order{{
		ID:           71,
		OrderDate:    day(2026, time.February, 10),
		OrderSource:  "본사",
		Quantity:     1,
		BasePrice:    dec("100000"),
		ProductInfo:  "미등록 상품",
		CustomerName: "김철수",
	}}}
	uc := newUseCase(orders, &fakeCatalogRepo{}, &fakeFormulaRepo{cfg: defaultFormulaConfig()})

	report, err := uc.BuildReport(context.Background(), day(2026, time.February, 10), day(2026, time.February, 10))
	require.NoError(t, err)

	require.Len(t, report.SearchPeriodMargin.Details, 1)
	d := report.SearchPeriodMargin.Details[0]
	assert.EqualValues(t, 71, d.OrderID)
	assert.Equal(t, "본사", d.Partner)
	assert.Nil(t, d.MatchedKPI)
	assert.Equal(t, "100000", d.SupplyPrice.String())
	assert.Equal(t, "0", d.Cost.String())
	assert.Equal(t, "3000", d.ShippingFee.String())
	assert.Equal(t, "2585", d.Commission.String())
	assert.Equal(t, "94415", d.Margin.String())

	// La vista agregada usa el envío registrado en el pedido (0 aquí), no el
	// plano de la regla: margen por partner 97415. La divergencia con el
	// detalle es intencional.
	require.Len(t, report.Selected.ByPartner, 5)
	hq := report.Selected.ByPartner[0]
	assert.Equal(t, "본사", hq.Partner)
	assert.Equal(t, "97415", hq.Margin.String())
	assert.EqualValues(t, 1, hq.CountForKPI)

	assert.Equal(t, "3000", report.PriceInfo.DefaultShippingFee.String())
	assert.Equal(t, "0.02585", report.PriceInfo.DefaultCommissionRate.String())
	require.NotNil(t, report.MarginConfig)
	assert.Equal(t, "기본 마진 공식", report.MarginConfig.Name)
}

func TestBuildReport_EscenarioConOverrideKPI(t *testing.T) {
	supply, cost, rate := dec("8000"), dec("2000"), dec("0.01")
	catalog := &fakeCatalogRepo{products: []entity.ProductKPI{{
		ID: 1, Name: "Widget Pro Max Extra", PartnerCode: "본사",
		UnitPrice:         dec("10000"),
		KPISupplyPrice:    &supply,
		KPICostPrice:      &cost,
		KPICommissionRate: &rate,
		KPIUnitCount:      2,
		KPICountEnabled:   true,
		KPISalesEnabled:   true,
	}}}
	orders := &fakeOrderRepo{orders: []entity.Order{{
		ID: 5, OrderDate: day(2026, time.February, 10), OrderSource: "본사",
		Quantity: 3, BasePrice: dec("30000"), ProductInfo: "Widget Pro Max Extra",
	}}}
	uc := newUseCase(orders, catalog, &fakeFormulaRepo{cfg: defaultFormulaConfig()})

	report, err := uc.BuildReport(context.Background(), day(2026, time.February, 10), day(2026, time.February, 10))
	require.NoError(t, err)

	hq := report.Selected.ByPartner[0]
	assert.Equal(t, "24000", hq.SupplyPrice.String())
	assert.Equal(t, "6000", hq.Cost.String())
	assert.Equal(t, "240", hq.Commission.String())
	assert.EqualValues(t, 6, hq.CountForKPI)

	require.Len(t, report.SearchPeriodMargin.Details, 1)
	require.NotNil(t, report.SearchPeriodMargin.Details[0].MatchedKPI)
	assert.Equal(t, "Widget Pro Max Extra", *report.SearchPeriodMargin.Details[0].MatchedKPI)

	// Eco del catálogo para la UI
	require.Len(t, report.ProductKPISettings, 1)
	assert.Equal(t, "Widget Pro Max Extra", report.ProductKPISettings[0].Name)
}

func TestBuildReport_ConteoAnualPorFamilia(t *testing.T) {
	orders := &fakeOrderRepo{orders: []entity.Order{
		{OrderDate: day(2026, time.January, 20), OrderSource: "본사", Quantity: 2,
			BasePrice: dec("100000"), ProductInfo: "바디쉴드4 무선"},
		{OrderDate: day(2026, time.February, 1), OrderSource: "본사", Quantity: 1,
			BasePrice: dec("30000"), ProductInfo: "교체용 패드"},
	}}
	uc := newUseCase(orders, &fakeCatalogRepo{}, &fakeFormulaRepo{})

	report, err := uc.BuildReport(context.Background(), day(2026, time.February, 10), day(2026, time.February, 10))
	require.NoError(t, err)

	// Ambos pedidos caen en la ventana anual aunque el rango seleccionado
	// sea solo el 10 de febrero.
	assert.EqualValues(t, 2, report.YearToDate.ProductSales["쉴드4"])
	assert.EqualValues(t, 1, report.YearToDate.ProductSales["기타"])
	assert.EqualValues(t, 0, report.YearToDate.ProductSales["스탠드"])
	assert.EqualValues(t, 0, report.SearchPeriodMargin.Totals.Count+report.Selected.Totals.Count,
		"el rango seleccionado no contiene pedidos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Degradación y fallos
// ──────────────────────────────────────────────────────────────────────────────

func TestBuildReport_SinConfigAplicaFallbacks(t *testing.T) {
	orders := &fakeOrderRepo{}
	uc := newUseCase(orders, &fakeCatalogRepo{}, &fakeFormulaRepo{cfg: nil})

	report, err := uc.BuildReport(context.Background(), day(2026, time.February, 10), day(2026, time.February, 10))
	require.NoError(t, err, "la ausencia de configuración nunca bloquea el reporte")

	assert.Nil(t, report.MarginConfig)
	assert.Equal(t, "0.1", report.PriceInfo.VATRate.String())
	assert.Equal(t, "0.02585", report.PriceInfo.DefaultCommissionRate.String())
	assert.Equal(t, "0", report.PriceInfo.DefaultShippingFee.String())
}

func TestBuildReport_FalloDeLecturaNombraLaVentana(t *testing.T) {
	orders := &fakeOrderRepo{
		fail:   true,
		failOn: time.Date(2024, time.February, 1, 0, 0, 0, 0, testLoc), // solo la ventana lastMonth
	}
	uc := newUseCase(orders, &fakeCatalogRepo{}, &fakeFormulaRepo{})

	report, err := uc.BuildReport(context.Background(), day(2024, time.March, 10), day(2024, time.March, 15))
	require.Error(t, err)
	assert.Nil(t, report, "no hay reportes parciales")

	var buildErr *domain.ReportBuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, "lastMonth", buildErr.Window)
}

func TestBuildReport_FalloDeCatalogoEsFatal(t *testing.T) {
	uc := newUseCase(&fakeOrderRepo{}, &fakeCatalogRepo{err: errors.New("timeout")}, &fakeFormulaRepo{})

	_, err := uc.BuildReport(context.Background(), day(2026, time.February, 10), day(2026, time.February, 10))
	var buildErr *domain.ReportBuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, "productCatalog", buildErr.Window)
}

func TestBuildReport_FalloDeConfigEsFatal(t *testing.T) {
	// Distinto de "config ausente": el documento existe pero no se pudo leer.
	uc := newUseCase(&fakeOrderRepo{}, &fakeCatalogRepo{}, &fakeFormulaRepo{err: errors.New("disco")})

	_, err := uc.BuildReport(context.Background(), day(2026, time.February, 10), day(2026, time.February, 10))
	var buildErr *domain.ReportBuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, "marginConfig", buildErr.Window)
}

// ──────────────────────────────────────────────────────────────────────────────
// Idempotencia
// ──────────────────────────────────────────────────────────────────────────────

func TestBuildReport_Idempotente(t *testing.T) {
	orders := &fakeOrderRepo{orders: []entity.Order{
		{ID: 1, OrderDate: day(2026, time.February, 10), OrderSource: "그로트",
			Quantity: 2, BasePrice: dec("45000"), ShippingFee: dec("2500"), ProductInfo: "바디쉴드미니"},
		{ID: 2, OrderDate: day(2026, time.February, 3), OrderSource: "쿠팡",
			Quantity: 1, BasePrice: dec("15000"), ProductInfo: "전용 스탠드"},
	}}
	uc := newUseCase(orders, &fakeCatalogRepo{}, &fakeFormulaRepo{cfg: defaultFormulaConfig()})

	r1, err := uc.BuildReport(context.Background(), day(2026, time.February, 1), day(2026, time.February, 15))
	require.NoError(t, err)
	r2, err := uc.BuildReport(context.Background(), day(2026, time.February, 1), day(2026, time.February, 15))
	require.NoError(t, err)

	j1, err := json.Marshal(r1)
	require.NoError(t, err)
	j2, err := json.Marshal(r2)
	require.NoError(t, err)
	assert.Equal(t, string(j1), string(j2), "mismos inputs, reporte byte a byte idéntico")
}
