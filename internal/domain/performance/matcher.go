package performance

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shieldlab/ops-api/internal/domain/entity"
)

// Largo mínimo (en runas, sobre el nombre sin normalizar) para permitir
// matching por substring. Nombres cortos (códigos de 3-4 caracteres) generan
// falsos positivos con containment; bajo este piso solo se acepta igualdad
// exacta. El límite es inclusive: un nombre de exactamente 10 runas sí puede
// matchear por substring.
const minSubstringNameLen = 10

// MatchProduct busca la configuración KPI que mejor corresponde al texto de
// producto de un pedido, dentro del catálogo del partner dado.
//
// Reglas:
//  1. Solo candidatos del mismo partner; un producto nunca matchea cruzando
//     de partner aunque los nombres coincidan.
//  2. Candidatos ordenados por largo de nombre descendente: el nombre más
//     largo (más específico) gana antes de que un nombre genérico corto
//     pueda adelantársele. Empates de largo conservan el orden del catálogo.
//  3. Texto y nombres se comparan en minúsculas y sin espacios.
//  4. Igualdad exacta gana siempre; substring solo con nombres de al menos
//     minSubstringNameLen runas.
//
// Devuelve nil si ningún candidato pasa. Función pura y determinista.
func MatchProduct(productText, partner string, catalog []entity.ProductKPI) *entity.ProductKPI {
	candidates := make([]entity.ProductKPI, 0, len(catalog))
	for _, p := range catalog {
		if p.PartnerCode == partner {
			candidates = append(candidates, p)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return utf8.RuneCountInString(candidates[i].Name) > utf8.RuneCountInString(candidates[j].Name)
	})

	text := normalizeMatchText(productText)
	for i := range candidates {
		name := normalizeMatchText(candidates[i].Name)
		if name == "" {
			continue
		}
		if text == name {
			return &candidates[i]
		}
		if utf8.RuneCountInString(candidates[i].Name) >= minSubstringNameLen &&
			strings.Contains(text, name) {
			return &candidates[i]
		}
	}
	return nil
}

// normalizeMatchText pasa a minúsculas y elimina todo espacio en blanco.
func normalizeMatchText(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, strings.ToLower(s))
}
