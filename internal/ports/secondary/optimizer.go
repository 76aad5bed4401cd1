package secondary

import (
	"context"

	"github.com/example/cardioplan/internal/models"
)

// RunStatus classifies the low-level outcome of one optimizer invocation.
type RunStatus int

const (
	// RunOK means the process exited zero and its output parsed cleanly.
	RunOK RunStatus = iota
	// RunProcessNotFound means the optimizer script or interpreter is
	// missing; no process was spawned.
	RunProcessNotFound
	// RunTimeout means the process exceeded the wall-clock bound and was
	// forcibly terminated. Partial output is discarded.
	RunTimeout
	// RunCancelled means the caller's context was cancelled before the
	// deadline; the process was forcibly terminated.
	RunCancelled
	// RunNonZeroExit means the process exited nonzero. Message carries the
	// trimmed standard-error text.
	RunNonZeroExit
	// RunMalformed means the process exited zero but its standard output
	// could not be parsed against the expected schema.
	RunMalformed
)

// OptimizerRun is the typed result of one external optimizer invocation.
// Treatments and Complications are set only for RunOK; Message carries the
// human-readable failure text otherwise.
type OptimizerRun struct {
	Status        RunStatus
	Treatments    [][]float64
	Complications []int
	Message       string
}

// OptimizerGateway defines the secondary port for invoking the external
// optimizer. The underlying engine (script, compiled binary, remote service)
// is swappable; the JSON request/response contract is the only coupling
// point.
type OptimizerGateway interface {
	// Invoke runs the stage's optimizer over the encoded input vector and
	// translates the process outcome into a typed result. The returned
	// error is reserved for faults before the process boundary (e.g.
	// request serialization); every process-level failure is reported
	// through OptimizerRun.Status instead.
	Invoke(ctx context.Context, stage models.Stage, vector []float64) (*OptimizerRun, error)
}
