package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/ostia"
	"github.com/aretw0/ostia/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "ostia",
	Short: "Ostia learns string rewrites from examples",
	Long: `Ostia infers a deterministic subsequential transducer from input/output
pairs and uses it to rewrite new words.

Training sets are YAML or JSON documents, or names resolved against the
selected store (--store).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().Bool("debug", false, "Log learning phases and merge steps to stderr")
	rootCmd.PersistentFlags().String("store", cli.StoreFile, "Training set store: file, memory, redis or loam")
	rootCmd.PersistentFlags().String("dir", "", "Directory of the file or loam store (default .ostia/training for file)")
	rootCmd.PersistentFlags().String("redis-addr", "localhost:6379", "Redis address (redis store)")
	rootCmd.PersistentFlags().Int("redis-db", 0, "Redis database (redis store)")
}

// readOptions collects the persistent flags.
func readOptions(cmd *cobra.Command) cli.Options {
	flags := cmd.Flags()
	debug, _ := flags.GetBool("debug")
	store, _ := flags.GetString("store")
	dir, _ := flags.GetString("dir")
	addr, _ := flags.GetString("redis-addr")
	db, _ := flags.GetInt("redis-db")
	return cli.Options{Debug: debug, Store: store, Dir: dir, RedisAddr: addr, RedisDB: db}
}

// setup opens the backend and builds a learner bound to it. The caller must
// close the backend.
func setup(cmd *cobra.Command) (*cli.Backend, *ostia.Learner, *slog.Logger, error) {
	opts := readOptions(cmd)
	logger := cli.NewLogger(opts.Debug, cmd.ErrOrStderr())

	backend, err := cli.OpenBackend(opts)
	if err != nil {
		return nil, nil, nil, err
	}
	return backend, cli.NewLearner(opts, logger, backend.Loader, nil), logger, nil
}
