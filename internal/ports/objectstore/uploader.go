package objectstore

import "context"

// Uploader sube un archivo al almacenamiento de objetos y devuelve su URL pública.
// folder es el prefijo lógico que separa los adjuntos por tipo de registro
// (p.ej. "consultas/inicial" vs "consultas/seguimiento").
type Uploader interface {
	Upload(ctx context.Context, content []byte, filename, contentType, folder string) (string, error)
}
