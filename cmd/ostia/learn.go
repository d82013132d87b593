package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/ostia/internal/cli"
)

var learnCmd = &cobra.Command{
	Use:   "learn <training-set>",
	Short: "Learn a transducer and print it",
	Long: `Learns a transducer from a training set file or stored training set and
prints its states, transitions and state outputs.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, learner, _, err := setup(cmd)
		if err != nil {
			return err
		}
		defer backend.Close()

		format, _ := cmd.Flags().GetString("format")
		_, err = cli.RunLearn(cmd.Context(), learner, cli.LearnOptions{
			Source: args[0],
			Format: format,
			Out:    cmd.OutOrStdout(),
		})
		return err
	},
}

func init() {
	rootCmd.AddCommand(learnCmd)
	learnCmd.Flags().StringP("format", "f", cli.FormatText, "Output format: text, markdown or mermaid")
}
