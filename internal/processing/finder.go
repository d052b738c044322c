package processing

import (
	"context"
	"fmt"
	"slices"
	"time"

	"pnw_targets/internal/app"
	"pnw_targets/internal/config"
	"pnw_targets/internal/domain/eligibility"
	"pnw_targets/internal/domain/metrics"

	"github.com/rs/zerolog/log"
)

// Strategy supplies the parts of a search that differ between target kinds
type Strategy[T any] struct {
	// Name labels the search in logs and titles, e.g. "Raid"
	Name string

	// Eligible is the static predicate applied before any metric is computed
	Eligible func(candidate, me *app.Nation, band eligibility.ScoreBand) bool

	// Build projects a qualifying candidate into the output record
	Build func(candidate *app.Nation, stolen metrics.StolenMoney) T

	// Compare orders two targets; the sort is stable
	Compare func(a, b T) int
}

// SearchOptions bounds a search. Zero values fall back to the defaults.
type SearchOptions struct {
	Limit    int
	MaxPages int
}

// SearchResult is the requester's own nation and the ranked targets found for it
type SearchResult[T any] struct {
	MyNation     *app.Nation
	Targets      []T
	PagesFetched int
}

// Finder pages through all nations and collects the ones its strategy accepts
type Finder[T any] struct {
	source   NationSource
	strategy Strategy[T]
	now      func() time.Time
}

// NewFinder creates a Finder for an arbitrary strategy
func NewFinder[T any](source NationSource, strategy Strategy[T]) *Finder[T] {
	return &Finder[T]{
		source:   source,
		strategy: strategy,
		now:      time.Now,
	}
}

// WithClock replaces the wall clock used for stolen-money windows
func (f *Finder[T]) WithClock(now func() time.Time) *Finder[T] {
	f.now = now
	return f
}

// Name returns the strategy name
func (f *Finder[T]) Name() string {
	return f.strategy.Name
}

// Find resolves the requester, then scans pages until the limit is reached,
// the pages run out, or MaxPages pages have been fetched.
//
// A failure resolving the requester is returned unchanged. A failed page
// fetch ends the scan: targets collected so far are returned without error,
// and if there are none the search fails with app.ErrAggregation.
func (f *Finder[T]) Find(ctx context.Context, nationID int, opts SearchOptions) (*SearchResult[T], error) {
	search := config.SearchConfig{Limit: opts.Limit, MaxPages: opts.MaxPages}.WithDefaults()

	me, err := f.source.FetchNationByID(ctx, nationID)
	if err != nil {
		return nil, err
	}

	band := eligibility.NewScoreBand(me.Score)
	now := f.now()

	log.Info().
		Str("search", f.strategy.Name).
		Int("nation_id", me.ID).
		Str("nation_name", me.Name).
		Float64("min_score", band.Min).
		Float64("max_score", band.Max).
		Int("limit", search.Limit).
		Int("max_pages", search.MaxPages).
		Msg("Starting target search")

	result := &SearchResult[T]{
		MyNation: me,
		Targets:  make([]T, 0, search.Limit),
	}

	for page := 1; page <= search.MaxPages && len(result.Targets) < search.Limit; page++ {
		nations, err := f.source.FetchNationsPage(ctx, page)
		if err != nil {
			if len(result.Targets) == 0 {
				return nil, fmt.Errorf("%w: %w", app.ErrAggregation, err)
			}
			log.Warn().
				Err(err).
				Str("search", f.strategy.Name).
				Int("page", page).
				Int("targets_found", len(result.Targets)).
				Msg("Page fetch failed, returning partial results")
			break
		}
		result.PagesFetched++

		if len(nations.Nations) == 0 {
			log.Debug().Int("page", page).Msg("Empty page, no more nations")
			break
		}

		found := f.collect(nations.Nations, me, band, now, search.Limit-len(result.Targets))
		result.Targets = append(result.Targets, found...)

		log.Debug().
			Str("search", f.strategy.Name).
			Int("page", page).
			Int("page_targets", len(found)).
			Int("total_targets", len(result.Targets)).
			Msg("Processed nations page")

		if !nations.HasMorePages {
			break
		}
	}

	slices.SortStableFunc(result.Targets, f.strategy.Compare)

	log.Info().
		Str("search", f.strategy.Name).
		Int("nation_id", me.ID).
		Int("targets_found", len(result.Targets)).
		Int("pages_fetched", result.PagesFetched).
		Msg("Target search completed")

	return result, nil
}

// collect returns up to remaining qualifying targets from one page, in page order
func (f *Finder[T]) collect(candidates []app.Nation, me *app.Nation, band eligibility.ScoreBand, now time.Time, remaining int) []T {
	var found []T
	for i := range candidates {
		if len(found) >= remaining {
			break
		}
		candidate := &candidates[i]

		if candidate.ID == me.ID {
			continue
		}
		if !f.strategy.Eligible(candidate, me, band) {
			continue
		}

		stolen := metrics.CalculateStolenMoney(candidate, now)
		if !eligibility.PassesActivityRules(candidate, stolen.SevenDays) {
			continue
		}

		found = append(found, f.strategy.Build(candidate, stolen))
	}
	return found
}
