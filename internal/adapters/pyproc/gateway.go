// Package pyproc invokes the external optimizer scripts as child processes.
//
// The wire contract is the only coupling point with the optimizer: the
// encoded vector goes in as a single command-line argument holding a compact
// JSON object, candidate strategies come back as JSON on standard output.
// Only the numeric vector crosses this boundary — the payload stays well
// under OS command-line length limits, and no patient demographics ever
// reach the child process.
package pyproc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/example/cardioplan/internal/models"
	"github.com/example/cardioplan/internal/ports/secondary"
)

// waitDelay bounds how long Wait may keep draining the child's pipes after
// the process has exited or been killed. Without it, a stray grandchild
// holding the pipe ends would stall a timed-out run indefinitely.
const waitDelay = time.Second

// Gateway implements secondary.OptimizerGateway by spawning the stage's
// optimizer script under the configured interpreter.
type Gateway struct {
	python     string
	scriptsDir string
	timeout    time.Duration
	logger     *zap.Logger
}

// New creates a new subprocess optimizer gateway.
func New(python, scriptsDir string, timeout time.Duration, logger *zap.Logger) *Gateway {
	return &Gateway{
		python:     python,
		scriptsDir: scriptsDir,
		timeout:    timeout,
		logger:     logger,
	}
}

// request is the JSON object passed as the script's --input argument.
type request struct {
	XList []float64 `json:"xList"`
}

// response is the JSON schema expected on standard output (exit code 0).
type response struct {
	Treatments    [][]float64 `json:"treatments"`
	Complications []int       `json:"complications"`
}

// errEnvelope is the JSON error schema scripts write to standard error.
type errEnvelope struct {
	Error string `json:"error"`
}

// Invoke runs one optimizer process for the stage and vector. Every
// process-level failure is reported through the run status; the error
// return is reserved for faults before the process boundary.
func (g *Gateway) Invoke(ctx context.Context, stage models.Stage, vector []float64) (*secondary.OptimizerRun, error) {
	payload, err := json.Marshal(request{XList: vector})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize optimizer request: %w", err)
	}

	script := filepath.Join(g.scriptsDir, stage.ScriptName())
	if _, err := os.Stat(script); err != nil {
		return &secondary.OptimizerRun{
			Status:  secondary.RunProcessNotFound,
			Message: fmt.Sprintf("optimizer script not found: %s", script),
		}, nil
	}

	runCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	// CommandContext kills the process outright when runCtx expires; a
	// graceful-stop window is deliberately not granted. Stdout and stderr
	// go to independent buffers drained concurrently by exec's per-stream
	// goroutines, so a child blocking on one full stream cannot deadlock
	// against us reading the other.
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, g.python, script, "--input", string(payload))
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	g.logger.Debug("invoking optimizer",
		zap.String("stage", string(stage)),
		zap.String("script", script),
		zap.Int("vector_len", len(vector)))

	start := time.Now()
	waitErr := cmd.Run()
	elapsed := time.Since(start)

	switch {
	case runCtx.Err() == context.DeadlineExceeded:
		// Partial output is worthless after a kill; discard it.
		g.logger.Warn("optimizer timed out",
			zap.String("stage", string(stage)),
			zap.Duration("timeout", g.timeout))
		return &secondary.OptimizerRun{
			Status:  secondary.RunTimeout,
			Message: fmt.Sprintf("optimizer timed out after %s", g.timeout),
		}, nil
	case ctx.Err() != nil:
		return &secondary.OptimizerRun{
			Status:  secondary.RunCancelled,
			Message: "optimizer run cancelled",
		}, nil
	}

	if waitErr != nil && !errors.Is(waitErr, exec.ErrWaitDelay) {
		if errors.Is(waitErr, exec.ErrNotFound) || os.IsNotExist(waitErr) {
			return &secondary.OptimizerRun{
				Status:  secondary.RunProcessNotFound,
				Message: fmt.Sprintf("optimizer interpreter not found: %s", g.python),
			}, nil
		}
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return nil, fmt.Errorf("failed to run optimizer: %w", waitErr)
		}

		message := stderrMessage(stderr.Bytes())
		if message == "" {
			message = exitErr.Error()
		}
		g.logger.Warn("optimizer exited nonzero",
			zap.String("stage", string(stage)),
			zap.Int("exit_code", exitErr.ExitCode()),
			zap.String("stderr", message))
		return &secondary.OptimizerRun{
			Status:  secondary.RunNonZeroExit,
			Message: message,
		}, nil
	}

	var resp response
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		g.logger.Warn("optimizer output unparseable",
			zap.String("stage", string(stage)),
			zap.Error(err))
		return &secondary.OptimizerRun{
			Status:  secondary.RunMalformed,
			Message: fmt.Sprintf("failed to parse optimizer output: %v", err),
		}, nil
	}
	if err := validateResponse(&resp); err != nil {
		return &secondary.OptimizerRun{
			Status:  secondary.RunMalformed,
			Message: err.Error(),
		}, nil
	}

	g.logger.Info("optimizer run completed",
		zap.String("stage", string(stage)),
		zap.Int("candidates", len(resp.Treatments)),
		zap.Duration("elapsed", elapsed))

	return &secondary.OptimizerRun{
		Status:        secondary.RunOK,
		Treatments:    resp.Treatments,
		Complications: resp.Complications,
	}, nil
}

// stderrMessage extracts the failure text from the script's standard error.
// Scripts write a {"error": "..."} envelope; anything else is surfaced
// verbatim, trimmed.
func stderrMessage(raw []byte) string {
	trimmed := strings.TrimSpace(string(raw))
	var envelope errEnvelope
	if err := json.Unmarshal([]byte(trimmed), &envelope); err == nil && envelope.Error != "" {
		return envelope.Error
	}
	return trimmed
}

// validateResponse checks the parsed output against the response schema:
// every candidate has exactly models.TreatmentValuesCount values and the
// complication sequence is index-aligned with the candidates.
func validateResponse(resp *response) error {
	for i, treatment := range resp.Treatments {
		if len(treatment) != models.TreatmentValuesCount {
			return fmt.Errorf("candidate %d has %d values, want %d",
				i, len(treatment), models.TreatmentValuesCount)
		}
	}
	if len(resp.Complications) != len(resp.Treatments) {
		return fmt.Errorf("got %d complication codes for %d candidates",
			len(resp.Complications), len(resp.Treatments))
	}
	return nil
}
