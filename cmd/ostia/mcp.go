package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcpAdapter "github.com/aretw0/ostia/pkg/adapters/mcp"
	"github.com/aretw0/ostia/pkg/registry"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Starts a Model Context Protocol server exposing the learn, apply and
describe_model tools. Use --transport stdio for editors and agents that spawn
the process, or sse to listen on a port.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, learner, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		defer backend.Close()

		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		srv := mcpAdapter.NewServer(learner, backend.Loader, registry.NewRegistry())

		switch transport {
		case "stdio":
			return srv.ServeStdio()
		case "sse":
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			logger.Info("starting MCP SSE server", "port", port)
			return srv.ServeSSE(ctx, port)
		default:
			return fmt.Errorf("unknown transport %q (want stdio or sse)", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringP("transport", "t", "stdio", "Transport: stdio or sse")
	mcpCmd.Flags().IntP("port", "p", 8080, "Port for the sse transport")
}
