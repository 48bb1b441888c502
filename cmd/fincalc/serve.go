package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/fincalc/internal/output"
	"github.com/rgehrsitz/fincalc/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculators over HTTP",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		settings := loadSettings(cmd)
		logger := newLogger(cmd, settings)
		defer logger.Sync()

		addr := settings.Server.Listen
		if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
			addr = listen
		}

		srv := server.New(logger, version)
		if settings.Server.MaxBodySize > 0 {
			srv.MaxBodySize = settings.Server.MaxBodySize
		}
		if dir, _ := cmd.Flags().GetString("snapshots"); dir != "" {
			srv.Sink = output.FileSink{Dir: dir}
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := srv.ListenAndServe(ctx, addr); err != nil {
			logger.Error("calculation service stopped", zap.Error(err))
			os.Exit(1)
		}
	},
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [input-file]",
	Short: "Calculate a scenario and save inputs and results as a JSON snapshot",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadScenario(args[0])
		engine, logger := newEngine(cmd)
		defer logger.Sync()

		results, err := engine.Run(cfg)
		if err != nil {
			log.Fatal(err)
		}
		dir, _ := cmd.Flags().GetString("dir")
		snap := output.NewSnapshot(output.CalculatorScenario, cfg, results)
		path, err := output.FileSink{Dir: dir}.Save(snap)
		if err != nil {
			log.Fatal(err)
		}
		logger.Info("snapshot saved", zap.String("id", snap.ID), zap.String("path", path))
		fmt.Fprintf(cmd.OutOrStdout(), "Snapshot %s written to %s\n", snap.ID, path)
	},
}

func initServiceCommands() {
	serveCmd.Flags().String("listen", "", "Listen address (default from settings, else :8080)")
	serveCmd.Flags().String("snapshots", "", "Save a snapshot of every calculation in this directory")

	snapshotCmd.Flags().String("dir", "snapshots", "Directory to write the snapshot to")

	rootCmd.AddCommand(serveCmd, snapshotCmd)
}
