package trajectory

import (
	"errors"
	"fmt"
	"time"

	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/dynamo"
)

// Result is the outcome of one run: either Success or Failure.
//
//	switch r := res.(type) {
//	case trajectory.Success:
//	    render(r.Trajectory)
//	case trajectory.Failure:
//	    report(r)
//	}
type Result interface {
	isResult()
}

// Success holds the complete sampled trajectory.
type Success struct {
	Trajectory *Trajectory
}

// Failure reports why a run stopped. Nothing of the partial integration is
// returned. Step and Time locate the failure when it happened inside the
// solver loop; both are zero for rejected inputs.
type Failure struct {
	Reason error
	Step   int
	Time   float64
	Stats  Stats
}

func (Success) isResult() {}
func (Failure) isResult() {}

func (f Failure) Error() string {
	return fmt.Sprintf("simulation failed: %v", f.Reason)
}

func (f Failure) Unwrap() error { return f.Reason }

func newFailure(err error, stats Stats) Failure {
	f := Failure{Reason: err, Stats: stats}
	var simErr *dynamo.SimulationError
	if errors.As(err, &simErr) {
		f.Step = simErr.Step
		f.Time = simErr.Time
	}
	return f
}

// Unpack converts a Result into the (value, error) pair.
func Unpack(r Result) (*Trajectory, error) {
	switch r := r.(type) {
	case Success:
		return r.Trajectory, nil
	case Failure:
		return nil, r
	default:
		return nil, fmt.Errorf("unexpected result type %T", r)
	}
}

// Stats describes the work done by the solver.
type Stats struct {
	Method      string        `json:"method"`
	Steps       int           `json:"steps"`
	Rejected    int           `json:"rejected"`
	Evaluations int           `json:"evaluations"`
	Elapsed     time.Duration `json:"elapsed"`
}
