package ports

import (
	"context"
	"net/url"
)

// Location is the navigable dashboard address. Replace overwrites the current
// entry without recording history.
type Location interface {
	Query() url.Values
	Replace(ctx context.Context, query url.Values) error
}
