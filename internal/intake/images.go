package intake

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"

	"clinical-records/internal/ports/objectstore"
)

// MaxImageSize es el tamaño máximo por imagen adjunta (5 MiB).
const MaxImageSize = 5 * 1024 * 1024

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ImageTypeError: el archivo en la posición Index (base 0) declaró un
// content-type fuera de los permitidos.
type ImageTypeError struct {
	Index int
}

func (e *ImageTypeError) Error() string {
	return fmt.Sprintf("imagen %d: tipo de archivo no permitido", e.Index+1)
}

// ImageSizeError: el archivo excede MaxImageSize.
type ImageSizeError struct {
	Filename string
}

func (e *ImageSizeError) Error() string {
	return fmt.Sprintf("imagen %s: excede el tamaño máximo", e.Filename)
}

// ImageUploadError: el almacenamiento de objetos rechazó la subida.
type ImageUploadError struct {
	Filename string
	Err      error
}

func (e *ImageUploadError) Error() string {
	return fmt.Sprintf("imagen %s: error subiendo: %v", e.Filename, e.Err)
}

func (e *ImageUploadError) Unwrap() error { return e.Err }

// Ingest valida y sube los adjuntos de un request bajo folder, devolviendo
// las URLs en orden de índice. Entradas nil o de tamaño cero se saltan sin
// error (imagenes_count es cota superior, no cardinalidad estricta).
//
// Se valida TODO antes de subir NADA: un tipo o tamaño inválido en cualquier
// posición aborta sin haber mandado ni un byte al object store. Un fallo de
// subida sí puede dejar archivos ya subidos (fuga aceptada; no hay rollback
// en el object store).
func Ingest(ctx context.Context, up objectstore.Uploader, folder string, files []*multipart.FileHeader) ([]string, error) {
	for i, fh := range files {
		if fh == nil || fh.Size == 0 {
			continue
		}
		if !allowedImageTypes[fh.Header.Get("Content-Type")] {
			return nil, &ImageTypeError{Index: i}
		}
		if fh.Size > MaxImageSize {
			return nil, &ImageSizeError{Filename: fh.Filename}
		}
	}

	var urls []string
	for _, fh := range files {
		if fh == nil || fh.Size == 0 {
			continue
		}

		f, err := fh.Open()
		if err != nil {
			return nil, &ImageUploadError{Filename: fh.Filename, Err: err}
		}
		content, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, &ImageUploadError{Filename: fh.Filename, Err: err}
		}

		url, err := up.Upload(ctx, content, fh.Filename, fh.Header.Get("Content-Type"), folder)
		if err != nil {
			return nil, &ImageUploadError{Filename: fh.Filename, Err: err}
		}
		urls = append(urls, url)
	}

	return urls, nil
}

// MarshalURLs serializa la lista de URLs a JSON. Lista vacía => nil
// (columna NULL), para distinguir "sin adjuntos" de "adjuntos registrados".
func MarshalURLs(urls []string) (*string, error) {
	if len(urls) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(urls)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}
