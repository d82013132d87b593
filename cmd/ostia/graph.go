package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/ostia/internal/cli"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <training-set>",
	Short: "Export the learned transducer as a Mermaid diagram",
	Long: `Learns the training set and outputs a Mermaid diagram (graph LR) of the
transducer. With --trace, the states visited while reading a word are highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, learner, _, err := setup(cmd)
		if err != nil {
			return err
		}
		defer backend.Close()

		trace, _ := cmd.Flags().GetString("trace")
		sep, _ := cmd.Flags().GetString("separator")
		return cli.RunGraph(cmd.Context(), learner, cli.GraphOptions{
			Source:    args[0],
			Trace:     trace,
			Separator: sep,
			Out:       cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("trace", "", "Highlight the path of this word")
	graphCmd.Flags().StringP("separator", "s", "", "Symbol separator for --trace")
}
