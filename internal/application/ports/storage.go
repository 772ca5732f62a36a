package ports

import (
	"context"
	"io"
	"time"
)

// FileStorage almacenamiento de objetos para evidencias de visitas.
type FileStorage interface {
	Upload(ctx context.Context, path, contentType string, body io.Reader, size int64) error
	// SignedURL URL temporal de lectura del objeto.
	SignedURL(ctx context.Context, path string, expires time.Duration) (string, error)
}
