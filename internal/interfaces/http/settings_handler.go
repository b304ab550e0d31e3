package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/shieldlab/ops-api/internal/application/dto"
	"github.com/shieldlab/ops-api/internal/application/settings"
	"github.com/shieldlab/ops-api/internal/domain"
	"github.com/shieldlab/ops-api/internal/domain/entity"
)

// SettingsHandler maneja los endpoints de configuración del negocio.
type SettingsHandler struct {
	uc *settings.MarginFormulaUseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *settings.MarginFormulaUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// marginFormulaUpdateRequest cuerpo del PUT. Version y updatedAt no se
// aceptan del cliente: los administra el servidor.
type marginFormulaUpdateRequest struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Formula     entity.MarginFormula `json:"formula"`
	UpdatedBy   string               `json:"updatedBy"`
}

// GetMarginFormula devuelve el documento de fórmula vigente.
// GET /api/settings/margin-formula
//
// Si todavía no hay documento guardado responde el por defecto del negocio,
// para que la UI siempre tenga una base que editar.
func (h *SettingsHandler) GetMarginFormula(c *fiber.Ctx) error {
	cfg, err := h.uc.Get(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(cfg)
}

// PutMarginFormula reemplaza el documento de fórmula completo.
// PUT /api/settings/margin-formula
//
// El servidor sube la versión y sella updatedAt; responde el documento tal
// como quedó persistido.
func (h *SettingsHandler) PutMarginFormula(c *fiber.Ctx) error {
	var req marginFormulaUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "cuerpo JSON inválido",
		})
	}

	cfg, err := h.uc.Update(c.Context(), settings.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Formula:     req.Formula,
		UpdatedBy:   req.UpdatedBy,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "INVALID_FORMULA", Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(cfg)
}
