package processing

import (
	"context"

	"pnw_targets/internal/app"
)

// NationSource defines the pnw client methods used by Finder
type NationSource interface {
	FetchNationByID(ctx context.Context, nationID int) (*app.Nation, error)
	FetchNationsPage(ctx context.Context, page int) (*app.NationsPage, error)
}
