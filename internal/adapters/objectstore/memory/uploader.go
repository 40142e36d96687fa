package memory

import (
	"context"
	"fmt"
	"sync"
)

// Upload es un objeto subido al uploader in-memory.
type Upload struct {
	Filename    string
	ContentType string
	Folder      string
	Size        int
	URL         string
}

// Uploader implementa objectstore.Uploader sin red, para dev y tests.
// FailWith arma un fallo para probar rutas de error de subida.
type Uploader struct {
	mu      sync.Mutex
	uploads []Upload
	err     error
}

func NewUploader() *Uploader {
	return &Uploader{}
}

func (u *Uploader) Upload(ctx context.Context, content []byte, filename, contentType, folder string) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.err != nil {
		return "", u.err
	}

	url := fmt.Sprintf("https://spaces.local/%s/%d-%s", folder, len(u.uploads), filename)
	u.uploads = append(u.uploads, Upload{
		Filename:    filename,
		ContentType: contentType,
		Folder:      folder,
		Size:        len(content),
		URL:         url,
	})
	return url, nil
}

// FailWith hace que los próximos Upload devuelvan err.
func (u *Uploader) FailWith(err error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.err = err
}

// Uploads devuelve una copia de lo subido hasta ahora, en orden.
func (u *Uploader) Uploads() []Upload {
	u.mu.Lock()
	defer u.mu.Unlock()

	out := make([]Upload, len(u.uploads))
	copy(out, u.uploads)
	return out
}
