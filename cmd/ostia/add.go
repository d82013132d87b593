package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/ostia/internal/cli"
)

var addCmd = &cobra.Command{
	Use:   "add <name> <input> <output> [<input> <output>...]",
	Short: "Append pairs to a stored training set",
	Long: `Appends input/output pairs to the named training set in the selected
store, creating it when missing. Pairs already present are skipped; a pair
contradicting an existing one is rejected.`,
	Args: cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, _, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		defer backend.Close()

		sessions, err := backend.Sessions(logger)
		if err != nil {
			return fmt.Errorf("cannot add pairs: %w", err)
		}
		sep, _ := cmd.Flags().GetString("separator")
		return cli.RunAdd(cmd.Context(), sessions, args[0], sep, args[1:], cmd.OutOrStdout())
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored training sets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, _, _, err := setup(cmd)
		if err != nil {
			return err
		}
		defer backend.Close()

		names, err := backend.Loader.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd, listCmd)
	addCmd.Flags().StringP("separator", "s", "", "Symbol separator inside words (default: one symbol per character)")
}
