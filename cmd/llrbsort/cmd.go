package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

type sortConfig struct {
	sentinel   int64
	input      string
	desc       bool
	logLevel   string
	logEncoder string
	// Zero keeps the fx default.
	startTimeout time.Duration
}

func newRootCmd() *cobra.Command {
	return newRootCmdWithConfig(&sortConfig{})
}

func newRootCmdWithConfig(cfg *sortConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "llrbsort",
		Short: "Read integers until the sentinel and print them sorted without duplicates",
		Long: `llrbsort reads whitespace separated integers from stdin (or --input) until the
sentinel value or EOF, stores them in a left-leaning red-black tree and prints
the distinct values in order, separated by a single space.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runE(cmd, cfg)
		},
	}
	flags := cmd.Flags()
	flags.Int64Var(&cfg.sentinel, "sentinel", 0, "The value which terminates the input")
	flags.StringVarP(&cfg.input, "input", "i", "", "The input file, stdin if empty")
	flags.BoolVar(&cfg.desc, "desc", false, "Print the values in descending order")
	flags.StringVar(&cfg.logLevel, "log-level", "", "DEBUG|INFO|WARN|ERROR, XLOG_LVL or WARN if empty")
	flags.StringVar(&cfg.logEncoder, "log-encoder", "json", "json|plain")
	return cmd
}

func runE(cmd *cobra.Command, cfg *sortConfig) (err error) {
	var s *sorter
	app := newApp(cfg, &ioStreams{
		in:     cmd.InOrStdin(),
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
	}, &s)
	if err = app.Err(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	startCtx, cancel := context.WithTimeout(ctx, app.StartTimeout())
	defer cancel()
	if err = app.Start(startCtx); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
		defer cancel()
		if stopErr := app.Stop(stopCtx); err == nil {
			err = stopErr
		}
	}()

	return s.run(ctx)
}
