package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nonme/redblacktree/lib/infra"
	"github.com/nonme/redblacktree/lib/tree"
	"github.com/nonme/redblacktree/lib/xlog"
)

type ioStreams struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// newApp only wires the components. Hooks must not read the input, their
// context carries the start timeout.
func newApp(cfg *sortConfig, streams *ioStreams, s **sorter) *fx.App {
	opts := []fx.Option{
		fx.WithLogger(func(logger xlog.XLogger) fxevent.Logger {
			return xlog.NewFxXLogger(logger)
		}),
		fx.Supply(cfg, streams),
		fx.Provide(
			newLogger,
			newTree,
			newSorter,
		),
		fx.Invoke(registerHooks),
		fx.Populate(s),
	}
	if cfg.startTimeout > 0 {
		opts = append(opts, fx.StartTimeout(cfg.startTimeout))
	}
	return fx.New(opts...)
}

func newLogger(cfg *sortConfig, streams *ioStreams) (xlog.XLogger, error) {
	lvl := cfg.logLevel
	if lvl == "" {
		lvl = os.Getenv("XLOG_LVL")
	}
	if lvl == "" {
		lvl = xlog.LogLevelWarn.String()
	}
	level, ok := xlog.ParseLogLevel(lvl)
	if !ok {
		return nil, infra.NewErrorStack(fmt.Sprintf("unknown log level %q", lvl))
	}
	enc, ok := xlog.ParseLogEncoder(cfg.logEncoder)
	if !ok {
		return nil, infra.NewErrorStack(fmt.Sprintf("unknown log encoder %q", cfg.logEncoder))
	}
	opts := []xlog.XLoggerOption{
		xlog.WithXLoggerWriteSyncer(xlog.Writer(streams.errOut)),
		xlog.WithXLoggerEncoder(enc),
		xlog.WithXLoggerLevel(level),
		xlog.WithXLoggerConsoleCore(),
	}
	if enc == xlog.PlainText {
		opts = append(opts,
			xlog.WithXLoggerLevelEncoder(zapcore.CapitalColorLevelEncoder),
			xlog.WithXLoggerTimeEncoder(zapcore.TimeEncoderOfLayout(time.TimeOnly)),
		)
	}
	return xlog.NewXLogger(opts...), nil
}

func newTree(cfg *sortConfig) tree.LLRBTree[int64, int64] {
	opts := make([]tree.LLRBTreeOpt[int64, int64], 0, 1)
	if cfg.desc {
		opts = append(opts, tree.WithLLRBTreeDesc[int64, int64]())
	}
	return tree.NewLLRBTree[int64, int64](opts...)
}

func registerHooks(lc fx.Lifecycle, s *sorter, logger xlog.XLogger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Debug("sorter ready",
				zap.Int64("sentinel", s.cfg.sentinel),
				zap.String("input", s.cfg.input),
				zap.Bool("desc", s.tree.IsDesc()),
			)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			s.tree.Clear()
			// Sync fails on terminals and pipes.
			_ = logger.Sync()
			return nil
		},
	})
}
