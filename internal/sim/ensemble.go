package sim

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Ensemble runs independent engines concurrently, at most limit at a time.
type Ensemble struct {
	engines []*Engine
	limit   int
}

func NewEnsemble(limit int, engines ...*Engine) *Ensemble {
	return &Ensemble{engines: engines, limit: limit}
}

func (en *Ensemble) Add(e *Engine) { en.engines = append(en.engines, e) }
func (en *Ensemble) Len() int      { return len(en.engines) }

// Run returns one result per engine, in the order they were added. The first
// failure cancels the remaining runs.
func (en *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, len(en.engines))

	g, ctx := errgroup.WithContext(ctx)
	if en.limit > 0 {
		g.SetLimit(en.limit)
	}
	for i, e := range en.engines {
		g.Go(func() error {
			res, err := e.Run(ctx)
			results[i] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
