package main

import (
	"fmt"
	"os"

	"github.com/njchilds90/diffcalc"
	"github.com/njchilds90/diffcalc/pkg/logging"
	"github.com/spf13/cobra"
)

var (
	flagVerify  bool
	flagLogDir  string
	flagJSONLog bool

	logger *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "differentiator",
	Short: "Parse, differentiate, and report on real-valued expressions",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.New(logging.Config{
			Level:   logging.LevelInfo,
			LogDir:  flagLogDir,
			Service: "differentiator",
			JSON:    flagJSONLog,
		})
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagVerify, "verify", true, "re-parse printed expressions and check they evaluate the same before reporting")
	rootCmd.PersistentFlags().StringVar(&flagLogDir, "log-dir", "", "also write structured logs to this directory")
	rootCmd.PersistentFlags().BoolVar(&flagJSONLog, "json-logs", false, "emit stderr logs as JSON instead of text")

	rootCmd.AddCommand(tangentCmd, taylorCmd, differentiateCmd, runCmd)
}

// Execute runs the root command, printing the failing DiffError's kind
// (§6: "exit codes ... distinguishable by error-kind echo") to stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		var diffErr *diffcalc.DiffError
		if asDiffError(err, &diffErr) {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", diffErr.Kind, diffErr.Context)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
	return err
}

func asDiffError(err error, target **diffcalc.DiffError) bool {
	for err != nil {
		if de, ok := err.(*diffcalc.DiffError); ok {
			*target = de
			return true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
	}
	return false
}
