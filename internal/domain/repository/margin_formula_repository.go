package repository

import (
	"context"

	"github.com/shieldlab/ops-api/internal/domain/entity"
)

// MarginFormulaRepository documento versionado con la fórmula de margen.
type MarginFormulaRepository interface {
	// Get devuelve la configuración vigente, o (nil, nil) si todavía no
	// existe. La ausencia NO es un error: el motor aplica los fallbacks
	// documentados en vez de bloquear la generación del reporte.
	Get(ctx context.Context) (*entity.MarginFormulaConfig, error)

	// Save persiste el documento completo (sobrescribe la versión anterior).
	Save(ctx context.Context, cfg *entity.MarginFormulaConfig) error
}
