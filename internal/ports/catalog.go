package ports

import (
	"context"

	"github.com/bnema/marvel-dashboard/internal/domain"
)

// CatalogQuery leaves unset fields out of the request entirely.
type CatalogQuery struct {
	Offset     *int
	Limit      *int
	StartsWith string
}

type CatalogClient interface {
	FetchCharacters(ctx context.Context, query CatalogQuery) (domain.Page[domain.Character], error)
	FetchSeries(ctx context.Context, query CatalogQuery) (domain.Page[domain.Series], error)
}
