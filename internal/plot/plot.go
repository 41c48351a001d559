// Package plot drives the external plotting back-end named in the
// engine's external-interfaces contract: a separate program, invoked with
// an infix-form expression, that renders a graph. The engine itself never
// shells out; only this collaborator does.
package plot

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/njchilds90/diffcalc"
)

// Backend renders a single expression to an image file. Real
// implementations shell out to an external tool; tests substitute a
// recording fake instead.
type Backend interface {
	Plot(ctx context.Context, expr *diffcalc.Expression, varName, outputPath string) error
}

// ExecBackend invokes an external command (gnuplot by convention) with the
// expression's PlotString form as an argument.
type ExecBackend struct {
	// Command is the executable name or path, e.g. "gnuplot".
	Command string
	// Timeout bounds how long the external process may run.
	Timeout time.Duration
}

// NewExecBackend returns an ExecBackend for the named command with a
// reasonable default timeout.
func NewExecBackend(command string) *ExecBackend {
	return &ExecBackend{Command: command, Timeout: 10 * time.Second}
}

// Plot shells out to b.Command, passing the expression's plot-form text and
// the target variable as positional arguments and the output path via -o.
func (b *ExecBackend) Plot(ctx context.Context, expr *diffcalc.Expression, varName, outputPath string) error {
	if _, err := expr.Variable(varName); err != nil {
		return err
	}

	timeout := b.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, b.Command,
		"-e", fmt.Sprintf("f(%s)=%s", varName, diffcalc.PlotString(expr)),
		"-o", outputPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("plot: %s: %w: %s", b.Command, err, stderr.String())
	}
	return nil
}

// Call records one invocation made against a RecordingBackend.
type Call struct {
	Expr       string
	VarName    string
	OutputPath string
}

// RecordingBackend is a Backend fake that records calls instead of
// shelling out, for tests of the plotting path. Neither the report builder
// nor the orchestrator calls a plot Backend.
type RecordingBackend struct {
	Calls []Call
	// Err, if set, is returned by every call to Plot.
	Err error
}

// Plot appends a Call and returns b.Err.
func (b *RecordingBackend) Plot(ctx context.Context, expr *diffcalc.Expression, varName, outputPath string) error {
	if b.Err != nil {
		return b.Err
	}
	b.Calls = append(b.Calls, Call{
		Expr:       diffcalc.PlotString(expr),
		VarName:    varName,
		OutputPath: outputPath,
	})
	return nil
}
