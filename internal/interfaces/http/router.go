package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	appperf "github.com/shieldlab/ops-api/internal/application/performance"
	"github.com/shieldlab/ops-api/internal/application/settings"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ReportUC        *appperf.ReportUseCase
	MarginFormulaUC *settings.MarginFormulaUseCase
	Location        *time.Location
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Desempeño comercial
	performance := api.Group("/performance")
	performanceHandler := NewPerformanceHandler(deps.ReportUC, deps.Location)
	performance.Get("/integrated-dashboard", performanceHandler.GetIntegratedDashboard)

	// Configuración del negocio
	settingsGroup := api.Group("/settings")
	settingsHandler := NewSettingsHandler(deps.MarginFormulaUC)
	settingsGroup.Get("/margin-formula", settingsHandler.GetMarginFormula)
	settingsGroup.Put("/margin-formula", settingsHandler.PutMarginFormula)
}
