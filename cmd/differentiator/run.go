package main

import (
	"github.com/njchilds90/diffcalc"
	"github.com/njchilds90/diffcalc/internal/report"
	"github.com/spf13/cobra"
)

// runCmd reproduces the bare CLI surface from §6:
// "program [output_file] [tangent_input] [taylor_input] [differentiate_input]",
// driving all three stages into one report.
var runCmd = &cobra.Command{
	Use:   "run [output_file] [tangent_input] [taylor_input] [differentiate_input]",
	Short: "Run tangent, Taylor, and differentiation in one report",
	Args:  cobra.MaximumNArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := [4]string{}
		copy(paths[:], args)
		outputPath, tangentPath, taylorPath, diffPath := paths[0], paths[1], paths[2], paths[3]

		tangentIn, err := resolveStageInput(tangentPath, true, false)
		if err != nil {
			return err
		}
		taylorIn, err := resolveStageInput(taylorPath, true, true)
		if err != nil {
			return err
		}
		diffIn, err := resolveStageInput(diffPath, false, false)
		if err != nil {
			return err
		}

		tangentExpr, err := diffcalc.ParseExpression(tangentIn.Expr, diffcalc.DefaultVarCapacity)
		if err != nil {
			return err
		}
		taylorExpr, err := diffcalc.ParseExpression(taylorIn.Expr, diffcalc.DefaultVarCapacity)
		if err != nil {
			return err
		}
		diffExpr, err := diffcalc.ParseExpression(diffIn.Expr, diffcalc.DefaultVarCapacity)
		if err != nil {
			return err
		}

		b := report.NewBuilder(report.Config{Logger: logger, DisableVerify: !flagVerify})

		tangentSection, err := b.Tangent(tangentExpr, tangentIn.Var, tangentIn.Point)
		if err != nil {
			return err
		}
		taylorSection, err := b.Taylor(taylorExpr, taylorIn.Var, taylorIn.Point, taylorIn.Order)
		if err != nil {
			return err
		}
		diffSection, err := b.Differentiate(diffExpr, diffIn.Var)
		if err != nil {
			return err
		}

		out, err := resolveOutputPath(outputPath, "report.txt")
		if err != nil {
			return err
		}
		r := &report.Report{Sections: []report.Section{tangentSection, taylorSection, diffSection}}
		if err := writeReport(out, r.String()); err != nil {
			return err
		}
		printedf("report written to %s", out)
		return nil
	},
}
