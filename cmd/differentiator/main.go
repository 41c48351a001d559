// Command differentiator is the thin orchestrator around the diffcalc
// engine: it reads expressions from input files (or prompts for them when
// an argument is missing), drives tangent/Taylor/differentiation, and
// emits a typeset report.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
