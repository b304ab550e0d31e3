// Package settings contiene el caso de uso de administración de la fórmula
// de margen: lectura del documento vigente y reemplazo versionado.
package settings

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shieldlab/ops-api/internal/domain"
	"github.com/shieldlab/ops-api/internal/domain/entity"
	"github.com/shieldlab/ops-api/internal/domain/repository"
	"github.com/shieldlab/ops-api/pkg/logger"
)

// MarginFormulaUseCase administra el documento de fórmula de margen.
type MarginFormulaUseCase struct {
	store repository.MarginFormulaRepository
	now   func() time.Time
	log   *logger.Logger
}

// NewMarginFormulaUseCase construye el caso de uso. El reloj se inyecta para
// que los tests controlen el sello updatedAt.
func NewMarginFormulaUseCase(store repository.MarginFormulaRepository, now func() time.Time, log *logger.Logger) *MarginFormulaUseCase {
	if now == nil {
		now = time.Now
	}
	return &MarginFormulaUseCase{
		store: store,
		now:   now,
		log:   log.Component("margin_formula_usecase"),
	}
}

// Get devuelve el documento vigente. Si todavía no hay ninguno guardado,
// devuelve el documento por defecto del negocio: el mismo que los fallbacks
// del motor de reportes, para que la UI siempre tenga algo que editar.
func (uc *MarginFormulaUseCase) Get(ctx context.Context) (*entity.MarginFormulaConfig, error) {
	cfg, err := uc.store.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get margin formula: %w", err)
	}
	if cfg == nil {
		return DefaultDocument(), nil
	}
	return cfg, nil
}

// UpdateInput campos editables del documento. Version y UpdatedAt los
// administra el servidor.
type UpdateInput struct {
	Name        string
	Description string
	Formula     entity.MarginFormula
	UpdatedBy   string
}

// Update valida y persiste el documento, subiendo la versión respecto a la
// guardada (o arrancando en 1 si no había ninguna). Devuelve el documento
// tal como quedó persistido.
func (uc *MarginFormulaUseCase) Update(ctx context.Context, in UpdateInput) (*entity.MarginFormulaConfig, error) {
	if err := validateFormula(in.Formula); err != nil {
		return nil, err
	}

	current, err := uc.store.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get margin formula: %w", err)
	}
	version := 1
	if current != nil {
		version = current.Version + 1
	}

	cfg := &entity.MarginFormulaConfig{
		Version:     version,
		Name:        in.Name,
		Description: in.Description,
		Formula:     in.Formula,
		UpdatedAt:   uc.now().UTC().Format(time.RFC3339),
		UpdatedBy:   in.UpdatedBy,
	}
	if err := uc.store.Save(ctx, cfg); err != nil {
		return nil, fmt.Errorf("save margin formula: %w", err)
	}

	uc.log.Info().Int("version", cfg.Version).Str("updatedBy", cfg.UpdatedBy).Msg("fórmula de margen actualizada")
	return cfg, nil
}

func validateFormula(f entity.MarginFormula) error {
	if f.VATRate.IsNegative() {
		return fmt.Errorf("%w: vatRate negativo", domain.ErrInvalidInput)
	}
	for i, d := range f.Deductions {
		if d.ID == "" {
			return fmt.Errorf("%w: deducción %d sin id", domain.ErrInvalidInput, i)
		}
		switch d.Type {
		case entity.DeductionCost, entity.DeductionShippingFee, entity.DeductionCommission, entity.DeductionCustom:
		default:
			return fmt.Errorf("%w: deducción %q con type desconocido %q", domain.ErrInvalidInput, d.ID, d.Type)
		}
		switch d.ValueType {
		case entity.ValueTypeKPI, entity.ValueTypeFixed, entity.ValueTypeRate:
		default:
			return fmt.Errorf("%w: deducción %q con valueType desconocido %q", domain.ErrInvalidInput, d.ID, d.ValueType)
		}
		switch d.Operator {
		case "", entity.OperatorAdd, entity.OperatorSubtract:
		default:
			return fmt.Errorf("%w: deducción %q con operator desconocido %q", domain.ErrInvalidInput, d.ID, d.Operator)
		}
	}
	return nil
}

// DefaultDocument el documento de fórmula por defecto del negocio. Sus
// valores coinciden con los fallbacks del motor de reportes: IVA 10%, envío
// fijo 3000 que excluye a 로켓그로스 y comisión 2.585%.
func DefaultDocument() *entity.MarginFormulaConfig {
	rate := decimal.RequireFromString("0.02585")
	return &entity.MarginFormulaConfig{
		Version:     1,
		Name:        "기본 마진 공식",
		Description: "마진 = 공급가 - 원가 - 배송비 - 수수료",
		Formula: entity.MarginFormula{
			Base:    "supplyPrice",
			VATRate: decimal.RequireFromString("0.1"),
			Deductions: []entity.MarginDeduction{
				{
					ID: "cost", Type: entity.DeductionCost, Enabled: true,
					Label: "원가", ValueType: entity.ValueTypeKPI,
				},
				{
					ID: "shippingFee", Type: entity.DeductionShippingFee, Enabled: true,
					Label: "배송비", ValueType: entity.ValueTypeFixed,
					FixedValue:      decimal.RequireFromString("3000"),
					ExcludePartners: []string{"로켓그로스"},
				},
				{
					ID: "commission", Type: entity.DeductionCommission, Enabled: true,
					Label: "수수료", ValueType: entity.ValueTypeRate, Rate: &rate,
				},
			},
		},
		UpdatedBy: "system",
	}
}
