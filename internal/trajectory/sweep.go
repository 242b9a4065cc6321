package trajectory

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/dynamo"
)

// Sweep runs many independent trajectories on a bounded set of workers.
type Sweep struct {
	in      *Integrator
	workers int
}

// NewSweep creates a Sweep. workers <= 0 uses GOMAXPROCS.
func NewSweep(in *Integrator, workers int) *Sweep {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Sweep{in: in, workers: workers}
}

// Run integrates every parameter set. results[i] always corresponds to
// params[i]; runs never started because ctx ended are reported as failures.
func (s *Sweep) Run(ctx context.Context, params []Params) []Result {
	results := make([]Result, len(params))
	jobs := make(chan int)

	workers := min(s.workers, len(params))
	s.in.logger.Debug("sweep started", "runs", len(params), "workers", workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = s.in.Run(ctx, params[idx])
			}
		}()
	}

feed:
	for i := range params {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	for i, r := range results {
		if r == nil {
			results[i] = Failure{
				Reason: fmt.Errorf("%w: %v", dynamo.ErrContextCanceled, ctx.Err()),
				Stats:  Stats{Method: s.in.method()},
			}
		}
	}

	s.in.logger.Debug("sweep finished", "runs", len(params))
	return results
}

// SpeedAngleGrid expands base into the cartesian product of speeds and
// angles, speeds varying slowest.
func SpeedAngleGrid(base Params, speeds, angles []float64) []Params {
	out := make([]Params, 0, len(speeds)*len(angles))
	for _, v := range speeds {
		for _, a := range angles {
			p := base
			p.Speed = v
			p.AngleDeg = a
			out = append(out, p)
		}
	}
	return out
}
