package platform

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/gamedock/internal/catalog"
)

// maxConcurrentScans bounds how many clients are read at once.
const maxConcurrentScans = 4

// ScanConfig drives a full scan.
type ScanConfig struct {
	Options
	// Enabled filters handlers by platform key. Nil enables all.
	Enabled     func(key string) bool
	AliasLength int
	Articles    []string
}

// Report summarises one handler's part of a scan.
type Report struct {
	Platform catalog.Platform
	Found    int
	Err      error
	Took     time.Duration
}

// Failed lists the platforms whose scan returned an error. Their games are
// missing from the batch and must be kept by Store.Merge.
func Failed(reports []Report) []catalog.Platform {
	var out []catalog.Platform
	for _, r := range reports {
		if r.Err != nil {
			out = append(out, r.Platform)
		}
	}
	return out
}

// Scan runs every enabled handler concurrently and returns the combined
// batch, ready for Store.Merge. A handler that fails is logged and skipped;
// the batch is still returned. Only cancellation of ctx is an error.
func Scan(ctx context.Context, reg *Registry, cfg ScanConfig) ([]*catalog.Game, []Report, error) {
	log := cfg.logger()

	var handlers []Handler
	for _, h := range reg.Handlers() {
		if cfg.Enabled != nil && !cfg.Enabled(h.Platform().Key()) {
			continue
		}
		handlers = append(handlers, h)
	}

	results := make([][]catalog.Record, len(handlers))
	reports := make([]Report, len(handlers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentScans)
	for i, h := range handlers {
		g.Go(func() error {
			start := time.Now()
			recs, err := h.Scan(gctx, cfg.Options)
			reports[i] = Report{Platform: h.Platform(), Found: len(recs), Err: err, Took: time.Since(start)}
			if err != nil {
				log.Warn("scan failed", "platform", h.Platform().String(), "error", err)
				return nil
			}
			log.Debug("scan finished", "platform", h.Platform().String(), "found", len(recs), "took", reports[i].Took)
			results[i] = recs
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, reports, err
	}

	articles := cfg.Articles
	if articles == nil {
		articles = catalog.DefaultArticles
	}
	var batch []*catalog.Game
	for _, recs := range results {
		for _, rec := range recs {
			if rec.Title == "" {
				continue
			}
			if rec.Alias == "" {
				rec.Alias = catalog.GenerateAlias(rec.Title, cfg.AliasLength, articles)
			}
			batch = append(batch, catalog.NewGame(rec))
		}
	}
	return batch, reports, nil
}
