// Package performance contiene el caso de uso del reporte integrado de
// margen y KPI: cinco ventanas de tiempo derivadas de un mismo ancla,
// calculadas en paralelo sobre lecturas acotadas de pedidos.
package performance

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shieldlab/ops-api/internal/application/dto"
	"github.com/shieldlab/ops-api/internal/domain"
	"github.com/shieldlab/ops-api/internal/domain/entity"
	domperf "github.com/shieldlab/ops-api/internal/domain/performance"
	"github.com/shieldlab/ops-api/internal/domain/repository"
	"github.com/shieldlab/ops-api/pkg/logger"
)

// Nombres de ventana que viajan en ReportBuildError para que el caller sepa
// qué lectura falló.
const (
	windowSelected     = "selected"
	windowSearchPeriod = "searchPeriodMargin"
	windowMonthToDate  = "monthToDate"
	windowLastMonth    = "lastMonth"
	windowYearToDate   = "yearToDate"
	windowConfig       = "marginConfig"
	windowCatalog      = "productCatalog"
)

// ReportUseCase construye el reporte integrado. Sin estado entre llamadas:
// cada reporte carga configuración y catálogo una sola vez y los comparte,
// solo lectura, entre las cinco ventanas.
type ReportUseCase struct {
	orders  repository.OrderRepository
	catalog repository.ProductKPIRepository
	formula repository.MarginFormulaRepository
	roster  domperf.Roster
	loc     *time.Location
	log     *logger.Logger
}

// NewReportUseCase construye el caso de uso. El roster y la zona horaria se
// inyectan para que los tests puedan sustituirlos.
func NewReportUseCase(
	orders repository.OrderRepository,
	catalog repository.ProductKPIRepository,
	formula repository.MarginFormulaRepository,
	roster domperf.Roster,
	loc *time.Location,
	log *logger.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		orders:  orders,
		catalog: catalog,
		formula: formula,
		roster:  roster,
		loc:     loc,
		log:     log.Component("report_usecase"),
	}
}

// BuildReport genera el reporte para el rango [start, end]. Fechas cero
// equivalen a "hoy"; end siempre se normaliza a fin de día en la zona
// configurada.
//
// Las cinco ventanas (rango seleccionado, el mismo rango para la vista de
// detalle, mes en curso, mes anterior, año en curso) son independientes y se
// calculan en paralelo con acumuladores aislados. Cualquier fallo de lectura
// aborta el reporte completo con un ReportBuildError: ventanas
// inconsistentes son peores que ningún reporte.
func (uc *ReportUseCase) BuildReport(ctx context.Context, start, end time.Time) (*dto.IntegratedReportDTO, error) {
	started := time.Now()

	if start.IsZero() || end.IsZero() {
		now := time.Now().In(uc.loc)
		start, end = now, now
	}
	start = dayStart(start.In(uc.loc))
	end = dayEnd(end.In(uc.loc))

	// ── Configuración y catálogo: una sola carga por reporte ─────────────────
	cfg, err := uc.formula.Get(ctx)
	if err != nil {
		return nil, &domain.ReportBuildError{Window: windowConfig, Err: err}
	}
	consts := domperf.ConstantsFrom(cfg)

	catalog, err := uc.catalog.FindActive(ctx)
	if err != nil {
		return nil, &domain.ReportBuildError{Window: windowCatalog, Err: err}
	}

	// ── Límites de ventana, derivados del mes/año del endDate ────────────────
	monthStart := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, uc.loc)
	lastMonthStart := time.Date(end.Year(), end.Month()-1, 1, 0, 0, 0, 0, uc.loc)
	lastMonthEnd := monthStart.Add(-time.Nanosecond)
	yearStart := time.Date(end.Year(), 1, 1, 0, 0, 0, 0, uc.loc)

	// ── Cinco lecturas+agregaciones en paralelo, fail-fast ───────────────────
	var (
		selected    windowResult
		searchP     windowResult
		monthToDate windowResult
		lastMonth   windowResult
		yearToDate  windowResult

		details      []dto.OrderDetailDTO
		productSales map[string]int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		selected, _, err = uc.buildWindow(gctx, windowSelected, start, end, catalog, consts)
		return err
	})
	g.Go(func() (err error) {
		var orders []entity.Order
		searchP, orders, err = uc.buildWindow(gctx, windowSearchPeriod, start, end, catalog, consts)
		if err != nil {
			return err
		}
		details = uc.buildDetails(orders, catalog, consts)
		return nil
	})
	g.Go(func() (err error) {
		monthToDate, _, err = uc.buildWindow(gctx, windowMonthToDate, monthStart, end, catalog, consts)
		return err
	})
	g.Go(func() (err error) {
		lastMonth, _, err = uc.buildWindow(gctx, windowLastMonth, lastMonthStart, lastMonthEnd, catalog, consts)
		return err
	})
	g.Go(func() (err error) {
		var orders []entity.Order
		yearToDate, orders, err = uc.buildWindow(gctx, windowYearToDate, yearStart, end, catalog, consts)
		if err != nil {
			return err
		}
		productSales = domperf.TallyFamilies(orders)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &dto.IntegratedReportDTO{
		DateRange: dto.DateRangeDTO{
			StartDate: start.Format("2006-01-02"),
			EndDate:   end.Format("2006-01-02"),
			Year:      end.Year(),
		},
		Selected: dto.WindowDTO{ByPartner: selected.rows, Totals: selected.totals},
		SearchPeriodMargin: dto.DetailWindowDTO{
			ByPartner: searchP.rows,
			Totals:    searchP.totals,
			Details:   details,
		},
		MonthToDate: dto.WindowDTO{ByPartner: monthToDate.rows, Totals: monthToDate.totals},
		LastMonth:   dto.LastMonthDTO{Totals: lastMonth.totals},
		YearToDate: dto.YearWindowDTO{
			ByPartner:    yearToDate.rows,
			Totals:       yearToDate.totals,
			ProductSales: productSales,
		},
		ProductKPISettings: toKPISettingDTOs(catalog),
		PriceInfo: dto.PriceInfoDTO{
			VATRate:               consts.VATRate,
			DefaultCommissionRate: consts.DefaultCommissionRate,
			DefaultShippingFee:    consts.DefaultShippingFee,
		},
		MarginConfig: toMarginConfigDTO(cfg),
	}

	uc.log.Info().
		Str("startDate", report.DateRange.StartDate).
		Str("endDate", report.DateRange.EndDate).
		Dur("elapsed", time.Since(started)).
		Msg("reporte integrado generado")

	return report, nil
}

// windowResult filas y totales ya convertidos a DTO de una ventana.
type windowResult struct {
	rows   []dto.PartnerRowDTO
	totals dto.WindowTotalsDTO
}

// buildWindow lee los pedidos de la ventana y los pliega por partner.
// Devuelve además los pedidos crudos para los pasos extra de las ventanas de
// detalle y anual. Cada llamada usa su propio acumulador; nada se comparte
// entre ventanas.
func (uc *ReportUseCase) buildWindow(
	ctx context.Context,
	window string,
	start, end time.Time,
	catalog []entity.ProductKPI,
	consts domperf.ReportConstants,
) (windowResult, []entity.Order, error) {
	orders, err := uc.orders.FindByDateRange(ctx, start, end)
	if err != nil {
		return windowResult{}, nil, &domain.ReportBuildError{Window: window, Err: err}
	}

	stats := domperf.Aggregate(orders, uc.roster, catalog, consts)
	rows := domperf.BuildPartnerRows(uc.roster, stats, consts)

	uc.log.Debug().Str("window", window).Int("orders", len(orders)).Msg("ventana agregada")

	return windowResult{
		rows:   toPartnerRowDTOs(rows),
		totals: toTotalsDTO(domperf.BuildTotals(rows)),
	}, orders, nil
}

// buildDetails resuelve pedido a pedido la ventana de verificación cruzada.
// Aquí las deducciones custom se evalúan sobre el supplyPrice de CADA pedido
// (no sobre el agregado del partner), por eso la suma de estos márgenes puede
// divergir del margen por partner; ambas cifras se exponen a propósito.
func (uc *ReportUseCase) buildDetails(
	orders []entity.Order,
	catalog []entity.ProductKPI,
	consts domperf.ReportConstants,
) []dto.OrderDetailDTO {
	details := make([]dto.OrderDetailDTO, 0, len(orders))
	for _, order := range orders {
		partner := uc.roster.Classify(order.OrderSource)
		f := domperf.ResolveOrder(order, partner, catalog, consts)

		var matched *string
		if f.Matched != nil {
			name := f.Matched.Name
			matched = &name
		}

		items := make([]dto.DeductionItemDTO, 0, len(f.Deductions))
		for _, it := range f.Deductions {
			items = append(items, dto.DeductionItemDTO{
				ID:       it.ID,
				Label:    it.Label,
				Value:    it.Value,
				Operator: it.Operator,
			})
		}

		details = append(details, dto.OrderDetailDTO{
			OrderID:          order.ID,
			OrderDate:        order.OrderDate.In(uc.loc).Format("2006-01-02"),
			CustomerName:     order.CustomerName,
			Partner:          partner,
			ProductInfo:      order.ProductInfo,
			Quantity:         f.Quantity,
			MatchedKPI:       matched,
			SupplyPrice:      f.SupplyPrice.Round(0),
			Cost:             f.Cost.Round(0),
			ShippingFee:      f.ShippingFee.Round(0),
			Commission:       f.Commission.Round(0),
			CustomDeductions: items,
			Margin:           f.Margin.Round(0),
		})
	}
	return details
}

// ── Conversión dominio -> DTO ────────────────────────────────────────────────

func toPartnerRowDTOs(rows []domperf.PartnerRow) []dto.PartnerRowDTO {
	out := make([]dto.PartnerRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.PartnerRowDTO{
			Partner:          r.Partner,
			Count:            r.Count,
			CountForKPI:      r.CountForKPI,
			Quantity:         r.Quantity,
			BasePrice:        r.BasePrice,
			BasePriceForKPI:  r.BasePriceForKPI,
			ShippingFee:      r.ShippingFee,
			SupplyPrice:      r.SupplyPrice,
			Cost:             r.Cost,
			VAT:              r.VAT,
			TotalWithVAT:     r.TotalWithVAT,
			Commission:       r.Commission,
			CustomDeductions: r.CustomDeductions,
			Margin:           r.Margin,
		})
	}
	return out
}

func toTotalsDTO(t domperf.WindowTotals) dto.WindowTotalsDTO {
	return dto.WindowTotalsDTO{
		Count:            t.Count,
		CountForKPI:      t.CountForKPI,
		Quantity:         t.Quantity,
		BasePrice:        t.BasePrice,
		BasePriceForKPI:  t.BasePriceForKPI,
		ShippingFee:      t.ShippingFee,
		SupplyPrice:      t.SupplyPrice,
		Cost:             t.Cost,
		VAT:              t.VAT,
		TotalWithVAT:     t.TotalWithVAT,
		Commission:       t.Commission,
		CustomDeductions: t.CustomDeductions,
		Margin:           t.Margin,
	}
}

func toKPISettingDTOs(catalog []entity.ProductKPI) []dto.ProductKPISettingDTO {
	out := make([]dto.ProductKPISettingDTO, 0, len(catalog))
	for _, p := range catalog {
		out = append(out, dto.ProductKPISettingDTO{
			ID:                p.ID,
			Name:              p.Name,
			PartnerCode:       p.PartnerCode,
			UnitPrice:         p.UnitPrice,
			KPISupplyPrice:    p.KPISupplyPrice,
			KPICostPrice:      p.KPICostPrice,
			KPICommissionRate: p.KPICommissionRate,
			KPIUnitCount:      p.KPIUnitCount,
			KPICountEnabled:   p.KPICountEnabled,
			KPISalesEnabled:   p.KPISalesEnabled,
		})
	}
	return out
}

func toMarginConfigDTO(cfg *entity.MarginFormulaConfig) *dto.MarginConfigDTO {
	if cfg == nil {
		return nil
	}
	return &dto.MarginConfigDTO{
		Name:        cfg.Name,
		Description: cfg.Description,
		Formula:     cfg.Formula,
		UpdatedAt:   cfg.UpdatedAt,
	}
}

// dayStart devuelve las 00:00:00.000 del día de t.
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// dayEnd devuelve el último instante del día de t.
func dayEnd(t time.Time) time.Time {
	return dayStart(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
