package model

import "strings"

// Shift tags as stored. "admin" is a view tag only: it never appears on records.
const (
	TurnoDia   = "dia"
	TurnoNoche = "noche"
	TurnoAdmin = "admin"
)

// ParseTurno normalizes a shift tag. English aliases are accepted.
func ParseTurno(s string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dia", "día", "day":
		return TurnoDia, true
	case "noche", "night":
		return TurnoNoche, true
	}
	return "", false
}
