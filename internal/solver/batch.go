package solver

import (
	"context"
	"sync"

	"github.com/san-kum/linsolve/internal/linsys"
)

// BatchResult pairs the outcome of one system in a SolveAll call.
type BatchResult struct {
	Result *Result
	Err    error
}

// SolveAll solves independent systems concurrently, one goroutine per
// matrix. Each matrix is reduced in place; callers must not pass the same
// instance twice. Systems not yet started when ctx is done report ctx.Err().
func (s *Solver) SolveAll(ctx context.Context, systems []*linsys.Matrix) []BatchResult {
	out := make([]BatchResult, len(systems))

	var wg sync.WaitGroup
	for i := range systems {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				out[idx].Err = err
				return
			}
			out[idx].Result, out[idx].Err = s.Solve(systems[idx])
		}(i)
	}

	wg.Wait()
	return out
}
