package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/njchilds90/diffcalc"
	"github.com/peterh/liner"
)

// stageInput is the minimum an input file (or an interactive prompt)
// supplies: an expression, the variable to act on, and (for tangent and
// Taylor) an expansion point and, for Taylor, a polynomial order.
//
// File format, one value per line: expression, variable, [point], [order].
// Trailing fields are omitted for the differentiate stage, which needs
// only the first two.
type stageInput struct {
	Expr  string
	Var   string
	Point float64
	Order int
}

func readStageFile(path string) (stageInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return stageInput{}, &diffcalc.DiffError{Kind: diffcalc.ErrOpenFile, Context: path}
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return stageInput{}, err
	}
	if len(lines) < 2 {
		return stageInput{}, &diffcalc.DiffError{Kind: diffcalc.ErrInvalidExpressionFormat, Context: path}
	}

	in := stageInput{Expr: lines[0], Var: lines[1]}
	if len(lines) >= 3 {
		v, err := strconv.ParseFloat(lines[2], 64)
		if err != nil {
			return stageInput{}, &diffcalc.DiffError{Kind: diffcalc.ErrInvalidExpressionFormat, Context: lines[2]}
		}
		in.Point = v
	}
	if len(lines) >= 4 {
		n, err := strconv.Atoi(lines[3])
		if err != nil {
			return stageInput{}, &diffcalc.DiffError{Kind: diffcalc.ErrInvalidExpressionFormat, Context: lines[3]}
		}
		in.Order = n
	}
	return in, nil
}

// promptStageInput is the §6 "missing arguments prompt the user" fallback:
// when a stage's input file argument was omitted, ask for its fields
// directly on the terminal instead.
func promptStageInput(needPoint, needOrder bool) (stageInput, error) {
	line := liner.NewLiner()
	defer line.Close()

	var in stageInput
	var err error

	if in.Expr, err = line.Prompt("expression> "); err != nil {
		return stageInput{}, &diffcalc.DiffError{Kind: diffcalc.ErrUserQuit, Context: err}
	}
	if in.Var, err = line.Prompt("variable> "); err != nil {
		return stageInput{}, &diffcalc.DiffError{Kind: diffcalc.ErrUserQuit, Context: err}
	}
	if needPoint {
		raw, err := line.Prompt("point> ")
		if err != nil {
			return stageInput{}, &diffcalc.DiffError{Kind: diffcalc.ErrUserQuit, Context: err}
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return stageInput{}, &diffcalc.DiffError{Kind: diffcalc.ErrInvalidExpressionFormat, Context: raw}
		}
		in.Point = v
	}
	if needOrder {
		raw, err := line.Prompt("order> ")
		if err != nil {
			return stageInput{}, &diffcalc.DiffError{Kind: diffcalc.ErrUserQuit, Context: err}
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return stageInput{}, &diffcalc.DiffError{Kind: diffcalc.ErrInvalidExpressionFormat, Context: raw}
		}
		in.Order = n
	}
	return in, nil
}

// resolveStageInput reads path if non-empty, otherwise prompts.
func resolveStageInput(path string, needPoint, needOrder bool) (stageInput, error) {
	if path == "" {
		return promptStageInput(needPoint, needOrder)
	}
	return readStageFile(path)
}

// resolveOutputPath returns path if non-empty, otherwise a default file
// under the XDG cache directory (mirroring the way anma falls back to an
// xdg-rooted file when no path is given explicitly).
func resolveOutputPath(path, defaultName string) (string, error) {
	if path != "" {
		return path, nil
	}
	dir := filepath.Join(xdg.CacheHome, "differentiator")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", err
	}
	return filepath.Join(dir, defaultName), nil
}

func writeReport(path, body string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(body), 0o640)
}

func printedf(format string, args ...any) {
	fmt.Fprintf(os.Stdout, format+"\n", args...)
}
