package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/suhasHere/snailfish"
)

type app struct {
	configPath  string
	workers     int
	selfPairs   bool
	logLevel    string
	maxSteps    int
	dumpMetrics bool

	out      io.Writer
	logger   *slog.Logger
	registry *prometheus.Registry
	homework *snailfish.Homework
}

func (a *app) setup(cmd *cobra.Command) error {
	config, err := snailfish.LoadConfig(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("workers") {
		config.Workers = a.workers
	}
	if flags.Changed("self-pairs") {
		config.IncludeSelfPairs = a.selfPairs
	}
	if flags.Changed("log-level") {
		config.LogLevel = a.logLevel
	}
	if flags.Changed("max-steps") {
		config.MaxReduceSteps = a.maxSteps
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	level, _ := config.Level()
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	a.registry = prometheus.NewRegistry()
	a.homework = snailfish.NewHomework(config, a.logger, snailfish.NewMetrics(a.registry))
	a.out = cmd.OutOrStdout()
	return nil
}

func (a *app) printMetrics() error {
	families, err := a.registry.Gather()
	if err != nil {
		return err
	}

	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				a.logger.Info("metric", "name", mf.GetName(),
					"value", humanize.Comma(int64(m.GetCounter().GetValue())))
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				a.logger.Info("metric", "name", mf.GetName(),
					"count", humanize.Comma(int64(h.GetSampleCount())),
					"sum", humanize.Comma(int64(h.GetSampleSum())))
			}
		}
	}
	return nil
}

func (a *app) sumCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sum [file]",
		Short: "Add every homework number and print the magnitude of the total.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := readLines(args[0])
			if err != nil {
				return err
			}

			since := time.Now()
			magnitude, err := a.homework.SumLines(lines)
			if err != nil {
				return err
			}
			a.logger.Info("sum", "lines", humanize.Comma(int64(len(lines))), "elapsed", time.Since(since))
			fmt.Fprintln(a.out, magnitude)
			return nil
		},
	}
}

func (a *app) maxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "max [file]",
		Short: "Print the largest magnitude of the sum of any two homework numbers.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := readLines(args[0])
			if err != nil {
				return err
			}

			since := time.Now()
			magnitude, err := a.homework.MaxPairLines(cmd.Context(), lines)
			if err != nil {
				return err
			}
			a.logger.Info("max", "lines", humanize.Comma(int64(len(lines))), "elapsed", time.Since(since))
			fmt.Fprintln(a.out, magnitude)
			return nil
		},
	}
}

func (a *app) reduceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reduce [file]",
		Short: "Reduce each homework number on its own and print it with its magnitude.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := readLines(args[0])
			if err != nil {
				return err
			}

			numbers, err := snailfish.ParseAll(lines)
			if err != nil {
				return err
			}

			for i, n := range numbers {
				stats, err := a.homework.Reducer().Reduce(n)
				if err != nil {
					return fmt.Errorf("line %d: %w", i+1, err)
				}
				a.logger.Debug("reduced", "line", i+1, "explodes", stats.Explodes, "splits", stats.Splits)
				fmt.Fprintf(a.out, "%s %d\n", n, n.Magnitude())
			}
			return nil
		},
	}
}

func (a *app) encodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode [file] [out]",
		Short: "Write the homework numbers in binary form.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := readLines(args[0])
			if err != nil {
				return err
			}

			numbers, err := snailfish.ParseAll(lines)
			if err != nil {
				return err
			}

			data, err := snailfish.EncodeHomework(numbers)
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[1], data, 0644); err != nil {
				return fmt.Errorf("error writing %s: %w", args[1], err)
			}
			a.logger.Info("encoded", "numbers", len(numbers), "bytes", humanize.Bytes(uint64(len(data))))
			return nil
		},
	}
}

func (a *app) decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode [file]",
		Short: "Print binary homework numbers in bracket notation.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("error reading %s: %w", args[0], err)
			}

			numbers, err := snailfish.DecodeHomework(data)
			if err != nil {
				return err
			}
			for _, n := range numbers {
				fmt.Fprintln(a.out, n)
			}
			return nil
		},
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:           "homework",
		Short:         "Snailfish homework calculator.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if !a.dumpMetrics {
				return nil
			}
			return a.printMetrics()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML or JSON config file.")
	pf.IntVar(&a.workers, "workers", 0, "Goroutines for the max-pair search.")
	pf.BoolVar(&a.selfPairs, "self-pairs", false, "Also add each number to itself in the max-pair search.")
	pf.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error.")
	pf.IntVar(&a.maxSteps, "max-steps", 0, "Most rewrites allowed in one reduction.")
	pf.BoolVar(&a.dumpMetrics, "metrics", false, "Log reduction metrics when done.")

	cmd.AddCommand(a.sumCmd(), a.maxCmd(), a.reduceCmd(), a.encodeCmd(), a.decodeCmd())
	return cmd
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "homework: %v\n", err)
		os.Exit(1)
	}
}
