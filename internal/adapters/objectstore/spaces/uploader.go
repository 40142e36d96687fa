package spaces

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var ErrNotConfigured = errors.New("spaces uploader not configured")

// Config para DigitalOcean Spaces (API compatible con S3).
type Config struct {
	Endpoint string // ej. "nyc3.digitaloceanspaces.com"
	Region   string
	Bucket   string
	Key      string
	Secret   string
}

// Uploader implementa objectstore.Uploader sobre Spaces. Los objetos se
// suben con ACL pública porque las URLs se guardan directas en la base
// y el frontend las consume sin firmar.
type Uploader struct {
	client *minio.Client
	bucket string
	base   string // prefijo de URL pública
}

func New(cfg Config) (*Uploader, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" || cfg.Key == "" || cfg.Secret == "" {
		return nil, ErrNotConfigured
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Key, cfg.Secret, ""),
		Secure: true,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("spaces client: %w", err)
	}

	return &Uploader{
		client: client,
		bucket: cfg.Bucket,
		base:   fmt.Sprintf("https://%s.%s", cfg.Bucket, cfg.Endpoint),
	}, nil
}

func (u *Uploader) Upload(ctx context.Context, content []byte, filename, contentType, folder string) (string, error) {
	if u == nil || u.client == nil {
		return "", ErrNotConfigured
	}

	key := objectKey(folder, filename)

	_, err := u.client.PutObject(ctx, u.bucket, key, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: map[string]string{"x-amz-acl": "public-read"},
	})
	if err != nil {
		return "", fmt.Errorf("spaces put object: %w", err)
	}

	return u.base + "/" + key, nil
}

// objectKey arma la key con un uuid adelante para evitar colisiones entre
// archivos con el mismo nombre.
func objectKey(folder, filename string) string {
	name := sanitizeName(filename)
	return path.Join(strings.Trim(folder, "/"), uuid.NewString()+"-"+name)
}

func sanitizeName(filename string) string {
	name := path.Base(strings.TrimSpace(filename))
	if name == "" || name == "." || name == "/" {
		return "archivo"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
