package intake

import (
	"strconv"
	"strings"
)

// IntOrZero convierte s a entero con fallback cero cuando no parsea o viene
// vacío. Política deliberada de "ausencia significa cero" que aplica SOLO a
// gravidez, partos, abortos y habitos_tabaco; los demás campos opcionales
// preservan NULL en ausencia.
func IntOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
