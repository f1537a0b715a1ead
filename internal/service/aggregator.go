package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jask/signboard/internal/sheet"
	"github.com/jask/signboard/internal/signage"
)

// Ranges names the sheet range read for each kind of record.
type Ranges struct {
	Images     string
	Statistics string
	Schedule   string
	Halls      string
	Notices    string
}

// DefaultRanges returns the ranges from the embedded column contract.
func DefaultRanges() Ranges {
	c := sheet.DefaultContract()
	return Ranges{
		Images:     c.Ranges[sheet.KindImages].Range,
		Statistics: c.Ranges[sheet.KindStatistics].Range,
		Schedule:   c.Ranges[sheet.KindSchedule].Range,
		Halls:      c.Ranges[sheet.KindHalls].Range,
		Notices:    c.Ranges[sheet.KindNotices].Range,
	}
}

// byKind returns the range for k, falling back to the contract default when
// unset.
func (r Ranges) byKind(k sheet.Kind) string {
	var rng string
	switch k {
	case sheet.KindImages:
		rng = r.Images
	case sheet.KindStatistics:
		rng = r.Statistics
	case sheet.KindSchedule:
		rng = r.Schedule
	case sheet.KindHalls:
		rng = r.Halls
	case sheet.KindNotices:
		rng = r.Notices
	}
	if rng == "" {
		// contract ranges are never empty, so this recurses once at most
		return DefaultRanges().byKind(k)
	}
	return rng
}

// Aggregator fetches all five ranges and publishes one consolidated snapshot.
type Aggregator struct {
	Source sheet.Source
	Ranges Ranges
	Store  *Store
	Logger *zap.Logger
	// Timeout bounds one whole refresh; zero means no bound beyond ctx.
	Timeout time.Duration

	Now func() time.Time
}

// Refresh runs one cycle and returns the snapshot it published. It never fails:
// if any step fails the previous data is kept and LastError is set.
func (a *Aggregator) Refresh(ctx context.Context) signage.Snapshot {
	log := a.logger().With(zap.String("cycle", uuid.NewString()))
	a.Store.update(func(prev signage.Snapshot) signage.Snapshot {
		prev.Loading = true
		prev.LastError = ""
		return prev
	})

	if a.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}

	start := time.Now()
	next, err := a.collect(ctx, log)
	if err != nil {
		log.Warn("refresh failed, keeping previous data", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return a.Store.update(func(prev signage.Snapshot) signage.Snapshot {
			prev.Loading = false
			prev.LastError = err.Error()
			return prev
		})
	}
	next.FetchedAt = a.now()
	log.Info("refresh complete",
		zap.Int("media", len(next.Media)),
		zap.Int("schedule", len(next.Schedule)),
		zap.Int("halls", len(next.Halls)),
		zap.Int("notices", len(next.Notices)),
		zap.Duration("elapsed", time.Since(start)))
	return a.Store.replace(next)
}

func (a *Aggregator) collect(ctx context.Context, log *zap.Logger) (signage.Snapshot, error) {
	var next signage.Snapshot
	parsers := map[sheet.Kind]func(sheet.Grid){
		sheet.KindImages: func(g sheet.Grid) { next.Media = signage.ParseMedia(g) },
		sheet.KindStatistics: func(g sheet.Grid) {
			next.Statistics = signage.ParseStatistics(g)
			for _, h := range signage.UnknownStatisticLabels(g) {
				log.Info("unknown statistics label", zap.String("label", h.Label), zap.String("did_you_mean", h.Suggestion))
			}
		},
		sheet.KindSchedule: func(g sheet.Grid) { next.Schedule = signage.ParseSchedule(g) },
		sheet.KindHalls:    func(g sheet.Grid) { next.Halls = signage.ParseHalls(g) },
		sheet.KindNotices:  func(g sheet.Grid) { next.Notices = signage.ParseNotices(g) },
	}

	// each step writes a distinct field of next; Wait orders those writes before the read below
	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range sheet.Kinds() {
		g.Go(a.step(gctx, log, kind, parsers[kind]))
	}
	if err := g.Wait(); err != nil {
		return signage.Snapshot{}, err
	}
	return next, nil
}

func (a *Aggregator) step(ctx context.Context, log *zap.Logger, kind sheet.Kind, parse func(sheet.Grid)) func() error {
	rng := a.Ranges.byKind(kind)
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%s: %v", kind, r)
			}
		}()
		grid := a.Source.Fetch(ctx, rng)
		if cerr := ctx.Err(); cerr != nil {
			return fmt.Errorf("%s: %w", kind, cerr)
		}
		if mism := sheet.DefaultContract().HeaderMismatches(kind, grid.Header()); len(mism) > 0 {
			log.Warn("header does not match column contract",
				zap.String("range", rng), zap.String("mismatch", strings.Join(mism, "; ")))
		}
		parse(grid)
		log.Debug("range parsed", zap.String("range", rng), zap.Int("rows", len(grid)))
		return nil
	}
}

func (a *Aggregator) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

func (a *Aggregator) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}
