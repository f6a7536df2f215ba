package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/layoutgen/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing layout generation and job history tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(context.Background())
		if err != nil {
			return err
		}
		defer rt.Close()

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "layoutgen MCP server started on stdio (provider=%s, jobs=%d)\n",
			rt.cfg.Provider, len(rt.store.All()))

		srv := mcpserver.NewServer(rt.store, rt.orch)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
