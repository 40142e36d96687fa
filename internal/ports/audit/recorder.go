package audit

import "context"

// Entry describe una acción de creación sobre una tabla.
type Entry struct {
	UsuarioID   string
	Tabla       string
	Descripcion string
	Datos       any
}

// Recorder registra acciones en la bitácora.
// Es best-effort: los llamadores loguean el fallo y siguen; un error
// aquí nunca aborta la operación principal.
type Recorder interface {
	LogCreate(ctx context.Context, e Entry) error
}
