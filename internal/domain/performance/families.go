package performance

import (
	"strings"

	"github.com/shieldlab/ops-api/internal/domain/entity"
)

// Familias fijas de producto para el conteo anual de unidades vendidas.
// Clasificador secundario, deliberadamente más laxo que el matcher KPI:
// basta con que el texto contenga alguna de las palabras clave (OR), en
// minúsculas, y gana la primera familia que matchee en este orden. Lo que no
// matchea ninguna cae en 기타 (otros).
var productFamilies = []struct {
	Name     string
	Keywords []string
}{
	{"쉴드4", []string{"쉴드4", "shield4"}},
	{"쉴드유선전용", []string{"유선", "wired"}},
	{"쉴드미니", []string{"미니", "mini"}},
	{"스탠드", []string{"스탠드", "stand"}},
}

// FamilyOther familia residual del conteo anual.
const FamilyOther = "기타"

// FamilyNames nombres de las familias en el orden del reporte, incluida la
// residual.
func FamilyNames() []string {
	names := make([]string, 0, len(productFamilies)+1)
	for _, f := range productFamilies {
		names = append(names, f.Name)
	}
	return append(names, FamilyOther)
}

// ClassifyFamily devuelve la familia de producto del texto dado.
func ClassifyFamily(productText string) string {
	text := strings.ToLower(productText)
	for _, f := range productFamilies {
		for _, kw := range f.Keywords {
			if strings.Contains(text, kw) {
				return f.Name
			}
		}
	}
	return FamilyOther
}

// TallyFamilies acumula las cantidades pedidas por familia de producto.
// Todas las familias aparecen en el resultado aunque queden en cero. No es
// por partner: es el conteo global de unidades del año.
func TallyFamilies(orders []entity.Order) map[string]int64 {
	tally := make(map[string]int64, len(productFamilies)+1)
	for _, name := range FamilyNames() {
		tally[name] = 0
	}
	for _, o := range orders {
		tally[ClassifyFamily(o.ProductInfo)] += o.Qty()
	}
	return tally
}
