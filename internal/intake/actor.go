package intake

import (
	"strings"

	"clinical-records/internal/ports/auth"
)

// DefaultActorName es el último fallback cuando ni el request ni los
// claims traen un nombre utilizable.
const DefaultActorName = "Médico"

// ResolveActor resuelve la identidad del actor (médico/enfermera) de un registro.
// El id explícito del request gana; si no viene, cae al principal autenticado.
// El nombre cae a "Nombres Apellidos", luego a Nombres, luego al placeholder.
// El id puede quedar vacío (sin principal y sin id explícito); eso lo reporta
// después la validación de campos requeridos.
func ResolveActor(claims *auth.Claims, actorID, actorName string) (id, name string) {
	id = strings.TrimSpace(actorID)
	if id == "" && claims != nil {
		id = strings.TrimSpace(claims.UserID)
	}

	name = strings.TrimSpace(actorName)
	if name == "" && claims != nil {
		nombres := strings.TrimSpace(claims.Nombres)
		apellidos := strings.TrimSpace(claims.Apellidos)
		switch {
		case nombres != "" && apellidos != "":
			name = nombres + " " + apellidos
		case nombres != "":
			name = nombres
		}
	}
	if name == "" {
		name = DefaultActorName
	}

	return id, name
}
