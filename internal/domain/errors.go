package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
)

// ReportBuildError falla fatal de la construcción del reporte integrado.
// Window identifica la ventana cuya lectura/agregación falló, para que el
// caller distinga "rango sin datos" (lista vacía, válido) de "no se pudo
// leer" (este error). No hay reportes parciales: ventanas inconsistentes son
// peores que ningún reporte.
type ReportBuildError struct {
	Window string
	Err    error
}

func (e *ReportBuildError) Error() string {
	return fmt.Sprintf("construcción del reporte falló en la ventana %q: %v", e.Window, e.Err)
}

func (e *ReportBuildError) Unwrap() error { return e.Err }
