package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/shieldlab/ops-api/internal/application/dto"
	appperf "github.com/shieldlab/ops-api/internal/application/performance"
	"github.com/shieldlab/ops-api/internal/domain"
)

// PerformanceHandler maneja los endpoints del módulo de desempeño comercial.
type PerformanceHandler struct {
	uc  *appperf.ReportUseCase
	loc *time.Location
}

// NewPerformanceHandler construye el handler. La zona horaria debe ser la
// misma que usa el caso de uso para derivar ventanas.
func NewPerformanceHandler(uc *appperf.ReportUseCase, loc *time.Location) *PerformanceHandler {
	return &PerformanceHandler{uc: uc, loc: loc}
}

// GetIntegratedDashboard genera el reporte integrado de margen y KPI.
// GET /api/performance/integrated-dashboard?startDate=2026-02-01&endDate=2026-02-15
//
// Ambos parámetros son opcionales (formato YYYY-MM-DD); ausentes equivalen a
// "hoy". Respuesta: IntegratedReportDTO completo. Un fallo de lectura de
// cualquier ventana aborta el reporte entero con 500 y el nombre de la
// ventana que falló.
func (h *PerformanceHandler) GetIntegratedDashboard(c *fiber.Ctx) error {
	start, err := parseDateParam(c.Query("startDate"), h.loc)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_DATE", Message: "startDate inválido, se espera YYYY-MM-DD",
		})
	}
	end, err := parseDateParam(c.Query("endDate"), h.loc)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_DATE", Message: "endDate inválido, se espera YYYY-MM-DD",
		})
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_RANGE", Message: "endDate es anterior a startDate",
		})
	}

	report, err := h.uc.BuildReport(c.Context(), start, end)
	if err != nil {
		var buildErr *domain.ReportBuildError
		if errors.As(err, &buildErr) {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Code: "REPORT_BUILD_FAILED", Message: "fallo la ventana " + buildErr.Window,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}

	return c.JSON(report)
}

// parseDateParam interpreta un parámetro de fecha YYYY-MM-DD en la zona dada.
// Vacío devuelve el cero de time.Time (el caso de uso lo trata como "hoy").
func parseDateParam(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation("2006-01-02", s, loc)
}
