// Package performance implementa el motor de atribución de margen y KPI:
// clasificación de pedidos por partner, matching de productos KPI, evaluación
// de deducciones custom y agregación por partner/ventana de tiempo.
//
// Todo el paquete es puro: sin I/O, sin estado compartido. Cada reporte crea
// sus propios acumuladores y los descarta al terminar.
package performance

// DefaultPartner partner por defecto cuando la etiqueta del pedido no está
// en el roster o viene vacía. 본사 = casa matriz (HQ).
const DefaultPartner = "본사"

// DefaultRoster los cinco partners fijos del negocio, en el orden en que
// aparecen en el reporte.
func DefaultRoster() Roster {
	return Roster{"본사", "로켓그로스", "그로트", "스몰닷", "해피포즈"}
}

// Roster lista ordenada de partners válidos. Se inyecta al construir el
// motor para que los tests puedan usar un roster reducido; nunca se muta.
type Roster []string

// Default devuelve el partner por defecto del roster: su primera entrada
// (본사 en el roster real). Roster vacío cae a la constante DefaultPartner.
func (r Roster) Default() string {
	if len(r) == 0 {
		return DefaultPartner
	}
	return r[0]
}

// Classify normaliza la etiqueta de canal de un pedido contra el roster.
// Etiqueta desconocida o vacía cae al partner por defecto. Función total:
// siempre devuelve un partner del roster.
func (r Roster) Classify(label string) string {
	for _, p := range r {
		if p == label {
			return p
		}
	}
	return r.Default()
}

// Contains indica si el partner pertenece al roster.
func (r Roster) Contains(partner string) bool {
	for _, p := range r {
		if p == partner {
			return true
		}
	}
	return false
}
