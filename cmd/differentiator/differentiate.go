package main

import (
	"github.com/njchilds90/diffcalc"
	"github.com/njchilds90/diffcalc/internal/report"
	"github.com/spf13/cobra"
)

var differentiateCmd = &cobra.Command{
	Use:   "differentiate [input_file] [output_file]",
	Short: "Differentiate an expression with respect to a variable",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var inputPath, outputPath string
		if len(args) >= 1 {
			inputPath = args[0]
		}
		if len(args) >= 2 {
			outputPath = args[1]
		}

		in, err := resolveStageInput(inputPath, false, false)
		if err != nil {
			return err
		}
		expr, err := diffcalc.ParseExpression(in.Expr, diffcalc.DefaultVarCapacity)
		if err != nil {
			return err
		}

		b := report.NewBuilder(report.Config{Logger: logger, DisableVerify: !flagVerify})
		section, err := b.Differentiate(expr, in.Var)
		if err != nil {
			return err
		}

		out, err := resolveOutputPath(outputPath, "differentiate.txt")
		if err != nil {
			return err
		}
		r := &report.Report{Sections: []report.Section{section}}
		if err := writeReport(out, r.String()); err != nil {
			return err
		}
		printedf("differentiate report written to %s", out)
		return nil
	},
}
