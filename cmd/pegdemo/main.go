package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/clarete/peg"
)

var grammarNames = map[string]func(*peg.Builder) peg.Matcher{
	"arith":       arithmetic,
	"lotsofas":    lotsOfAs,
	"splitclause": splitClause,
}

func main() {
	var grammarName string
	var trace bool

	root := &cobra.Command{
		Use:   "pegdemo",
		Short: "Runs a small demo grammar against its argument",
	}

	match := &cobra.Command{
		Use:   "match <input>",
		Short: "Matches <input> against the selected demo grammar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			build, ok := grammarNames[grammarName]
			if !ok {
				return fmt.Errorf("unknown grammar %q", grammarName)
			}

			b := peg.NewBuilder()
			root := build(b)
			buf := peg.NewDefaultInputBuffer(args[0])

			var result *peg.ParsingResult
			if trace {
				logger := logrus.New()
				logger.SetLevel(logrus.DebugLevel)
				result = peg.NewTracingParseRunner(peg.NewLogrusTraceSink(logger)).Run(root, buf)
			} else {
				result = peg.NewRecoveringParseRunner().Run(root, buf)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "matched: %v\n", result.Matched)
			if result.ParseTreeRoot != nil {
				fmt.Fprintln(cmd.OutOrStdout(), result.ParseTreeRoot.String())
			}
			if len(result.ParseErrors) > 0 {
				fmt.Fprint(cmd.OutOrStdout(), peg.FormatParseErrors(result.ParseErrors, buf))
			}
			return nil
		},
	}
	match.Flags().StringVar(&grammarName, "grammar", "arith", "demo grammar: arith, lotsofas or splitclause")
	match.Flags().BoolVar(&trace, "trace", false, "run under the tracing runner instead of the recovering runner")

	root.AddCommand(match)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
