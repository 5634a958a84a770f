package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"spiralscan/internal/app"
	"spiralscan/internal/config"
	"spiralscan/internal/logger"
	"spiralscan/internal/scan"
	"spiralscan/internal/snapshot"
)

//nolint:gochecknoglobals // cobra flag bindings
var (
	configPath string
	logLevel   string
	jsonLog    bool

	outPath string
	width   int
	height  int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "spiralscan",
		Short:        "Visualize a disc read as a growing spiral",
		Long:         `spiralscan simulates an adaptive read of an optical medium and draws its progress as a spiral of colored segments, live in a window or as a PNG snapshot.`,
		Version:      app.AppVersion,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "spiralscan.json", "Path to a JSON config file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level (debug, info, warn, error, off)")
	root.PersistentFlags().BoolVar(&jsonLog, "json-log", false, "Write logs as JSON")

	root.AddCommand(newRunCmd(), newRenderCmd())
	return root
}

func load() (*config.Configuration, logger.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, logger.New(cfg.LogLevel, jsonLog), nil
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open the read window and start a simulated pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}

			application, err := app.NewApplication(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			return application.Run()
		},
	}
}

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Run a simulated pass headless and write the final spiral as PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			session, err := app.NewSession(cfg, log)
			if err != nil {
				return err
			}
			sim := scan.NewSimulator(app.SimulatorConfig(cfg), session, log)

			opts := snapshot.DefaultOptions(session)
			if width > 0 {
				opts.Width = width
			}
			if height > 0 {
				opts.Height = height
			}

			img, stats, err := snapshot.Run(ctx, session, sim, opts, log)
			if err != nil {
				return err
			}

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", outPath, err)
			}
			if err := snapshot.WritePNG(f, img); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to close %s: %w", outPath, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d readable, %d correctable, %d missing (%d redraws)\n",
				outPath, stats.Result.Readable, stats.Result.Correctable, stats.Result.Missing, stats.Redraws)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "spiral.png", "Output PNG path")
	cmd.Flags().IntVar(&width, "width", 0, "Image width in pixels (default fits the spiral)")
	cmd.Flags().IntVar(&height, "height", 0, "Image height in pixels (default fits the spiral)")
	return cmd
}
