package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"devstation/internal/platform"
	"devstation/internal/repl"
	"devstation/internal/shell"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "devstation",
		Short:         "Simulated developer workstation terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(serveCmd(), replCmd(), versionCmd())
	return root
}

func serveCmd() *cobra.Command {
	var (
		port     int
		headless bool
		tls      bool
		storeDir string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the embedded broker, the terminal engine and the web UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			platform.InitLogger()
			appCfg := platform.LoadAppConfig()
			flags := cmd.Flags()
			if flags.Changed("port") {
				appCfg.HTTPSrvCfg.Port = port
			}
			if flags.Changed("headless") {
				appCfg.Flags.Headless = headless
			}
			if flags.Changed("tls") {
				appCfg.HTTPSrvCfg.EnableTLS = tls
			}
			if flags.Changed("store-dir") {
				appCfg.NatsCfg.StoreDir = storeDir
			}
			return serve(cmd.Context(), appCfg)
		},
	}
	cmd.Flags().IntVar(&port, "port", 8080, "HTTP port (DEVSTATION_PORT)")
	cmd.Flags().BoolVar(&headless, "headless", false, "do not start the HTTP server (DEVSTATION_HEADLESS)")
	cmd.Flags().BoolVar(&tls, "tls", false, "serve HTTPS (DEVSTATION_TLS)")
	cmd.Flags().StringVar(&storeDir, "store-dir", "./store/js", "JetStream storage directory (DEVSTATION_STORE_DIR)")
	return cmd
}

func serve(parent context.Context, appCfg *platform.AppConfig) error {
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// --- Run embedded NATS server ---
	nc, ns, natsErrCh, err := platform.RunEmbeddedServer(ctx, *appCfg.NatsCfg)
	if err != nil {
		return fmt.Errorf("embedded server: %w", err)
	}
	defer ns.Shutdown()
	defer nc.Close()

	p, err := platform.Start(ctx, nc, appCfg.Flags.SessionIdle)
	if err != nil {
		return err
	}

	var httpErrCh <-chan error // nil blocks forever when headless
	if !appCfg.Flags.Headless {
		httpErrCh = platform.RunHTTPServer(ctx, p, *appCfg.HTTPSrvCfg)
	}

	slog.Info("🚀 dev station is up", "headless", appCfg.Flags.Headless, "port", appCfg.HTTPSrvCfg.Port)
	select {
	case <-ctx.Done():
		slog.Info("shutdown requested")
		return nil
	case err := <-natsErrCh:
		slog.Error("embedded server error", "err", err)
		return err
	case err := <-httpErrCh:
		slog.Error("HTTP server error", "err", err)
		return err
	}
}

func replCmd() *cobra.Command {
	var (
		history string
		noColor bool
	)
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Use the station terminal locally",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
			defer cancel()

			var opts []repl.Option
			if noColor || os.Getenv("NO_COLOR") != "" {
				opts = append(opts, repl.WithoutColour())
			}
			r := repl.New(shell.New(), cmd.OutOrStdout(), opts...)
			return r.Run(ctx, history)
		},
	}
	cmd.Flags().StringVar(&history, "history", "", "history file (disabled when empty)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "print without ANSI colours")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "devstation %s\n", version)
		},
	}
}
