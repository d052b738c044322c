package handler

import (
	"pnw_targets/internal/app"
	"pnw_targets/internal/processing"
	"pnw_targets/internal/ratelimit"
)

// Compile-time interface compliance checks

var (
	_ Finder[app.RaidTarget]  = (*processing.Finder[app.RaidTarget])(nil)
	_ Finder[app.BeigeTarget] = (*processing.Finder[app.BeigeTarget])(nil)
	_ Quota                   = (*ratelimit.Limiter)(nil)
)
