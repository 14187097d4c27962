package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/lguimbarda/min-fold/fold/observe"
	"github.com/lguimbarda/min-fold/internal/config"
	"github.com/lguimbarda/min-fold/internal/logging"
	"github.com/lguimbarda/min-fold/internal/runner"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [values...]",
		Short: "Fold the configured source and print the result",
		Long: `Runs one reduction over the configured source. Positional values, when
given, replace the source with an inline list.`,
		RunE: runFold,
	}
	cmd.Flags().String("op", "", "Reduction: "+strings.Join(config.Ops, ", "))
	cmd.Flags().String("element", "", "Element type, e.g. int64, decimal or null_float64")
	cmd.Flags().Duration("timeout", 0, "Deadline for the whole fold (0 keeps the configured one)")
	cmd.Flags().Bool("metrics", false, "Write fold metrics in Prometheus text format to stderr")
	return cmd
}

func runFold(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Source.Kind = config.SourceInline
		cfg.Source.Values = args
	}
	if cmd.Flags().Changed("op") {
		cfg.Fold.Op, _ = cmd.Flags().GetString("op")
	}
	if cmd.Flags().Changed("element") {
		cfg.Fold.Element, _ = cmd.Flags().GetString("element")
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Fold.Timeout, _ = cmd.Flags().GetDuration("timeout")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger, err := logging.NewWriter(cmd.ErrOrStderr(), level, cfg.Log.Format)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	if cfg.Fold.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Fold.Timeout)
		defer cancel()
	}

	reg := prometheus.NewRegistry()
	ctx = observe.WithLogging(ctx, logger)
	if ctx, err = observe.WithPrometheus(ctx, reg); err != nil {
		return err
	}

	r, err := runner.New(cfg.Source, logger)
	if err != nil {
		return err
	}
	defer r.Close()

	result, err := r.Run(ctx, cfg.Fold.Element, cfg.Fold.Op)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), result)

	if withMetrics, _ := cmd.Flags().GetBool("metrics"); withMetrics {
		return writeMetrics(cmd.ErrOrStderr(), reg)
	}
	return nil
}

func writeMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
