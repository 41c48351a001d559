// Package report builds the typeset-math document the orchestrator emits:
// one section per stage ("Getting superhard tangent", "Getting superhard
// Taylor series", "Calculating too easy differentiation"), each rendering
// the rewritten expressions at that stage and optionally interleaving a
// stock humorous phrase (§6 of the external-interfaces contract).
package report

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/njchilds90/diffcalc"
	"github.com/njchilds90/diffcalc/pkg/logging"
)

// Section titles, stable: the orchestrator's "run" subcommand emits these
// three, in this order, prompting for any input file that was not given.
const (
	TitleTangent       = "Getting superhard tangent"
	TitleTaylor        = "Getting superhard Taylor series"
	TitleDifferentiate = "Calculating too easy differentiation"
)

var stockPhrases = []string{
	"After a few elementary rewrites, this settles down to",
	"Anyone who's sat through a calculus lecture will recognize this as",
	"Skipping the tedious middle steps, we land on",
	"A slightly more patient reader would have already noticed this is",
	"The operator table does the heavy lifting here, leaving us with",
	"Nothing exotic -- just chain rule, and we get",
	"At this point the simplifier takes over and reduces it to",
}

// Section is one titled block of rendered expressions.
type Section struct {
	Title string
	Lines []string
}

// Report is an ordered sequence of sections, ready to render as plain text.
type Report struct {
	Sections []Section
}

// String renders the report as the sections in order, blank-line separated.
func (r *Report) String() string {
	var sb strings.Builder
	for i, s := range r.Sections {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("# " + s.Title + "\n")
		for _, line := range s.Lines {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Builder builds sections one call at a time and keeps none of them; the
// caller assembles them into a Report. It draws commentary from an explicit random
// source (never a package-level global, so report output is reproducible
// given a seeded Builder).
type Builder struct {
	rng    *rand.Rand
	logger *logging.Logger
	verify bool
}

// Config controls Builder construction.
type Config struct {
	Logger *logging.Logger
	// Seed, if non-zero, makes phrase selection reproducible (tests).
	Seed int64
	// DisableVerify skips the round-trip self-check that otherwise runs
	// before each section is returned: the printed infix form is
	// re-parsed and evaluated at a handful of probe points, and must
	// agree with the original tree. The check is on by default; see
	// VerifyRoundTrip.
	DisableVerify bool
}

// NewBuilder constructs a Builder. A zero Config yields a time-seeded,
// verifying Builder logging to logging.Default().
func NewBuilder(cfg Config) *Builder {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Builder{rng: rand.New(rand.NewSource(seed)), logger: logger, verify: !cfg.DisableVerify}
}

func (b *Builder) phrase() string {
	return stockPhrases[b.rng.Intn(len(stockPhrases))]
}

// Tangent returns a "Getting superhard tangent" section for expr's tangent
// line with respect to varName at v0.
func (b *Builder) Tangent(expr *diffcalc.Expression, varName string, v0 float64) (Section, error) {
	tangent, err := diffcalc.Tangent(expr, varName, v0)
	if err != nil {
		b.logger.Error("tangent failed", "variable", varName, "at", v0, "error", err)
		return Section{}, err
	}
	if b.verify {
		if err := VerifyRoundTrip(tangent); err != nil {
			b.logger.Error("tangent round-trip check failed", "error", err)
			return Section{}, err
		}
	}
	lines := []string{
		fmt.Sprintf("f(%s) = %s", varName, diffcalc.InfixString(expr)),
		b.phrase(),
		fmt.Sprintf("tangent at %s = %v: %s", varName, v0, diffcalc.TypesetString(tangent)),
	}
	b.logger.Info("tangent section built", "variable", varName, "at", v0)
	return Section{Title: TitleTangent, Lines: lines}, nil
}

// Taylor returns a "Getting superhard Taylor series" section for expr's
// Taylor polynomial of the given order, expanded around v0.
func (b *Builder) Taylor(expr *diffcalc.Expression, varName string, v0 float64, order int) (Section, error) {
	poly, err := diffcalc.Taylor(expr, varName, v0, order)
	if err != nil {
		b.logger.Error("taylor failed", "variable", varName, "at", v0, "order", order, "error", err)
		return Section{}, err
	}
	if b.verify {
		if err := VerifyRoundTrip(poly); err != nil {
			b.logger.Error("taylor round-trip check failed", "error", err)
			return Section{}, err
		}
	}
	lines := []string{
		fmt.Sprintf("f(%s) = %s", varName, diffcalc.InfixString(expr)),
		b.phrase(),
		fmt.Sprintf("order-%d Taylor polynomial at %s = %v: %s", order, varName, v0, diffcalc.TypesetString(poly)),
	}
	b.logger.Info("taylor section built", "variable", varName, "at", v0, "order", order)
	return Section{Title: TitleTaylor, Lines: lines}, nil
}

// Differentiate returns a "Calculating too easy differentiation" section
// for d(expr)/d(varName), simplified.
func (b *Builder) Differentiate(expr *diffcalc.Expression, varName string) (Section, error) {
	deriv, err := diffcalc.DifferentiateExpression(expr, varName)
	if err != nil {
		b.logger.Error("differentiate failed", "variable", varName, "error", err)
		return Section{}, err
	}
	if b.verify {
		if err := VerifyRoundTrip(deriv); err != nil {
			b.logger.Error("differentiate round-trip check failed", "error", err)
			return Section{}, err
		}
	}
	lines := []string{
		fmt.Sprintf("f(%s) = %s", varName, diffcalc.InfixString(expr)),
		b.phrase(),
		fmt.Sprintf("d/d%s: %s", varName, diffcalc.TypesetString(deriv)),
	}
	b.logger.Info("differentiate section built", "variable", varName)
	return Section{Title: TitleDifferentiate, Lines: lines}, nil
}

// VerifyRoundTrip re-parses expr's own printed infix form and checks that
// it evaluates to the same value as expr at every variable's current
// value plus a couple of probe offsets, catching any pretty-printer /
// parser mismatch before it reaches a report. This is the orchestrator's
// `--verify`-gated self-check, folded from the original's combined
// read+print module.
func VerifyRoundTrip(expr *diffcalc.Expression) error {
	reparsed, err := diffcalc.ParseExpression(diffcalc.InfixString(expr), expr.Vars.Capacity())
	if err != nil {
		return err
	}
	for slot := 0; slot < expr.Vars.Capacity(); slot++ {
		name := expr.Vars.Name(slot)
		if name == "" {
			continue
		}
		otherSlot, err := reparsed.Variable(name)
		if err != nil {
			return err
		}
		original := expr.Vars.Value(slot)
		for _, probe := range []float64{original, 0.37, 1.91} {
			expr.Vars.SetValue(slot, probe)
			reparsed.Vars.SetValue(otherSlot, probe)
			want, err := diffcalc.Evaluate(expr)
			if err != nil {
				expr.Vars.SetValue(slot, original)
				return err
			}
			got, err := diffcalc.Evaluate(reparsed)
			if err != nil {
				expr.Vars.SetValue(slot, original)
				return err
			}
			if want != got && !(isNaN(want) && isNaN(got)) {
				expr.Vars.SetValue(slot, original)
				return fmt.Errorf("report: round-trip mismatch for %q at %s=%v: %v != %v",
					diffcalc.InfixString(expr), name, probe, want, got)
			}
		}
		expr.Vars.SetValue(slot, original)
	}
	return nil
}

func isNaN(v float64) bool { return v != v }
