package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/ostia/internal/cli"
)

var applyCmd = &cobra.Command{
	Use:   "apply <training-set> [word...]",
	Short: "Rewrite words with a learned transducer",
	Long: `Learns a transducer from the training set, then rewrites the given words.
Without words, reads one word per line from stdin; on a terminal this starts
an interactive prompt.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, learner, _, err := setup(cmd)
		if err != nil {
			return err
		}
		defer backend.Close()

		sep, _ := cmd.Flags().GetString("separator")
		keepGoing, _ := cmd.Flags().GetBool("keep-going")

		return cli.RunApply(cmd.Context(), learner, cli.ApplyOptions{
			Source:      args[0],
			Separator:   sep,
			Words:       args[1:],
			In:          cmd.InOrStdin(),
			Out:         cmd.OutOrStdout(),
			Interactive: len(args) == 1 && cli.IsTerminal(os.Stdin),
			KeepGoing:   keepGoing,
		})
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().StringP("separator", "s", "", "Symbol separator inside words (default: one symbol per character)")
	applyCmd.Flags().BoolP("keep-going", "k", false, "Report unreadable words and continue")
}
