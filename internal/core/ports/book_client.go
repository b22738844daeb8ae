package ports

import (
	"context"

	"orderservice/internal/core/domain/model/book"
)

// BookClient defines the lookup contract against the external catalog.
//
// Lookup resolves an ISBN to a catalog snapshot. Absence is the normal
// negative outcome and is reported as (nil, nil): a definitive not-found, a
// lookup timeout, and exhausted retries on transient failures all collapse to
// absence so the submission path can degrade to rejection instead of failing.
// Implementations return a non-nil error only for context cancellation.
type BookClient interface {
	Lookup(ctx context.Context, isbn string) (*book.Book, error)
}
