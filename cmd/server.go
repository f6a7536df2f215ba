package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/layoutgen/internal/audit"
	"github.com/ziadkadry99/layoutgen/internal/dashboard"
	"github.com/ziadkadry99/layoutgen/internal/server"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the generator dashboard and job API",
	Long:  `Starts the layoutgen HTTP server with the single-page generator, the REST job API and the live job stream.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rt, err := openRuntime(ctx)
		if err != nil {
			return err
		}
		defer rt.Close()

		port := rt.cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port = serverPort
		}

		registrars := []server.RouteRegistrar{
			dashboard.New(rt.store, rt.orch, rt.templates, rt.prefs, rt.hub, rt.logger),
		}
		if rt.audit != nil {
			registrars = append(registrars, audit.Routes{Store: rt.audit})
		}
		srv := server.New(server.Config{
			Port:     port,
			AllowAll: rt.cfg.Server.AllowAllOrigins,
		}, rt.logger, registrars...)

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		fmt.Fprintf(os.Stderr, "layoutgen server %s listening on port %d\n", Version, port)
		fmt.Fprintf(os.Stderr, "  Provider: %s (%s)\n", rt.cfg.Provider, rt.cfg.Model)
		fmt.Fprintf(os.Stderr, "  Storage: %s\n", rt.cfg.Storage.Backend)
		fmt.Fprintf(os.Stderr, "  Jobs in history: %d\n", len(rt.store.All()))

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serverCmd)
}
