package ports

import (
	"context"
	"io"
)

// PhotoStore accepts uploaded quote photos and returns stable references.
// The engine only ever records the references; content stays in the store.
type PhotoStore interface {
	Save(ctx context.Context, originalName string, content io.Reader) (string, error)
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}
