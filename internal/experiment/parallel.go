package experiment

import (
	"context"
	"sync"

	"github.com/san-kum/visualearn/internal/sim"
)

// RunAll runs every config concurrently, each on its own instance.
// Results keep the order of cfgs; the first error is returned.
func RunAll(ctx context.Context, reg *Registry, cfgs []Config, opts ...sim.Option) ([]*Result, error) {
	results := make([]*Result, len(cfgs))
	errs := make([]error, len(cfgs))

	var wg sync.WaitGroup
	for i := range cfgs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			exp, err := New(reg, cfgs[idx], opts...)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = exp.Run(ctx)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
