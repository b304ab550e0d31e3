// Package configstore persiste el documento de fórmula de margen como un
// archivo JSON en disco. El documento es pequeño, cambia poco y se lee una
// vez por reporte, así que un archivo plano alcanza; la interfaz de dominio
// permite cambiar el respaldo sin tocar a los consumidores.
package configstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/shieldlab/ops-api/internal/domain/entity"
	"github.com/shieldlab/ops-api/internal/domain/repository"
)

var _ repository.MarginFormulaRepository = (*MarginFormulaStore)(nil)

// MarginFormulaStore almacén del documento de fórmula sobre un archivo JSON.
// El mutex serializa Save contra lecturas concurrentes del mismo proceso; la
// escritura es atómica (archivo temporal + rename) para no dejar un documento
// a medias si el proceso muere.
type MarginFormulaStore struct {
	path string
	mu   sync.RWMutex
}

// NewMarginFormulaStore construye el almacén sobre la ruta dada.
func NewMarginFormulaStore(path string) *MarginFormulaStore {
	return &MarginFormulaStore{path: path}
}

// Get devuelve el documento vigente, o (nil, nil) si el archivo todavía no
// existe. La ausencia no es un error: los consumidores aplican sus fallbacks.
func (s *MarginFormulaStore) Get(_ context.Context) (*entity.MarginFormulaConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read margin formula: %w", err)
	}

	var cfg entity.MarginFormulaConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode margin formula: %w", err)
	}
	return &cfg, nil
}

// Save persiste el documento completo, creando el directorio si hace falta.
func (s *MarginFormulaStore) Save(_ context.Context, cfg *entity.MarginFormulaConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode margin formula: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".margin-formula-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write margin formula: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace margin formula: %w", err)
	}
	return nil
}
