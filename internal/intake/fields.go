// Package intake implementa la tubería compartida de ingreso de registros
// clínicos: validación de campos requeridos, resolución del actor,
// ingesta de imágenes adjuntas y coerciones numéricas. La usan los cuatro
// flujos de creación (paciente, consulta inicial, seguimiento, valoración).
package intake

import (
	"strings"
)

// MissingFieldsError acumula TODOS los campos requeridos ausentes de un
// request, no solo el primero, para reportarlos en un único error.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "faltan campos requeridos: " + strings.Join(e.Fields, ", ")
}

// Required colecciona campos requeridos vacíos.
type Required struct {
	missing []string
}

// Check registra name como faltante si value viene vacío.
func (r *Required) Check(name, value string) {
	if strings.TrimSpace(value) == "" {
		r.missing = append(r.missing, name)
	}
}

// Err devuelve nil si no falta nada, o un *MissingFieldsError con la lista completa.
func (r *Required) Err() error {
	if len(r.missing) == 0 {
		return nil
	}
	return &MissingFieldsError{Fields: r.missing}
}
