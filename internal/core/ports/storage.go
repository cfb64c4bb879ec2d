package ports

import (
	"context"
	"io"
)

// PhotoStore persists uploaded photo files under a configured location.
type PhotoStore interface {
	Save(ctx context.Context, filename string, content io.Reader) error
}
