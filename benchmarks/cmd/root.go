package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/zeu5/policy-iteration/core"
	"github.com/zeu5/policy-iteration/logging"
	"github.com/zeu5/policy-iteration/util"
)

func RootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "polyiter",
		Short:        "Solve tabular Markov decision processes with policy iteration",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			UpdateFlags()
			if flags.Discount < 0 || flags.Discount > 1 {
				return fmt.Errorf("discount %v is outside [0, 1]", flags.Discount)
			}
			level, err := logging.ParseLevel(flags.LogLevel)
			if err != nil {
				return err
			}
			logger = logging.New(level, os.Stderr)
			return flags.Record()
		},
	}
	AddFlags(cmd)

	cmd.AddCommand(
		TicTacToeCommand(),
		BanditCommand(),
		SolveCommand(),
	)

	return cmd
}

// interruptContext is cancelled on an interrupt from the os or when the
// returned done function is called.
func interruptContext() (context.Context, func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt) // channel for interrupts from os

	doneCh := make(chan struct{}) // channel for done signal from application

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		select {
		case <-sigCh:
		case <-doneCh:
		}
		signal.Stop(sigCh)
		cancel()
	}()
	return ctx, func() { close(doneCh) }
}

// runComparison shows live episode progress on stdout and prints the
// comparators' output collected in summaries once all runs are done.
func runComparison(ctx context.Context, cmp *core.Comparison, summaries *bytes.Buffer, stdout *os.File) error {
	out := util.NewLiveWriter(stdout)
	out.Start()
	results := cmp.Run(ctx, flags.NumRuns, flags.RunConfig(), out)
	out.Stop()

	for name, result := range results {
		if result.IsError() {
			logger.Error("experiment failed", "experiment", name, "error", result.Error)
		}
	}
	if _, err := io.Copy(stdout, summaries); err != nil {
		return fmt.Errorf("printing summaries: %w", err)
	}
	return nil
}
