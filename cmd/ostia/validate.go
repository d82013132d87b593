package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/ostia/internal/cli"
)

var validateCmd = &cobra.Command{
	Use:   "validate <training-set>",
	Short: "Check a training set for consistency",
	Long: `Reports symbols outside the declared alphabets and inputs mapped to two
outputs, then checks that the learned transducer reproduces every pair.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, learner, _, err := setup(cmd)
		if err != nil {
			return err
		}
		defer backend.Close()
		return cli.RunValidate(cmd.Context(), learner, args[0], cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
