package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/safeopen"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/nonme/redblacktree/lib/infra"
	"github.com/nonme/redblacktree/lib/tree"
	"github.com/nonme/redblacktree/lib/xlog"
)

var errNonIntegerToken = errors.New("[llrbsort] non-integer token")

type sorter struct {
	cfg     *sortConfig
	streams *ioStreams
	logger  xlog.XLogger
	tree    tree.LLRBTree[int64, int64]
}

func newSorter(
	cfg *sortConfig,
	streams *ioStreams,
	logger xlog.XLogger,
	t tree.LLRBTree[int64, int64],
) *sorter {
	return &sorter{
		cfg:     cfg,
		streams: streams,
		logger:  logger.Named("sorter"),
		tree:    t,
	}
}

func (s *sorter) openInput() (io.ReadCloser, error) {
	if s.cfg.input == "" {
		return io.NopCloser(s.streams.in), nil
	}
	dir, base := filepath.Split(filepath.Clean(s.cfg.input))
	if dir == "" {
		dir = "."
	}
	f, err := safeopen.OpenBeneath(dir, base)
	if err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "open input "+s.cfg.input)
	}
	return f, nil
}

// collect inserts (n, n) for every token until the sentinel or EOF.
func (s *sorter) collect(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	for idx := 0; scanner.Scan(); idx++ {
		if err := ctx.Err(); err != nil {
			return infra.WrapErrorStack(err)
		}
		token := scanner.Text()
		n, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return infra.AppendErrorStack(
				infra.WrapErrorStackWithMessage(errNonIntegerToken, fmt.Sprintf("token #%d %q", idx, token)),
				err,
			)
		}
		if n == s.cfg.sentinel {
			s.logger.Debug("sentinel reached", zap.Int("tokens", idx))
			return nil
		}
		s.tree.Insert(n, n)
	}
	if err := scanner.Err(); err != nil {
		return infra.WrapErrorStackWithMessage(err, "scan input")
	}
	s.logger.Debug("input exhausted without sentinel", zap.Int64("sentinel", s.cfg.sentinel))
	return nil
}

func (s *sorter) render(w io.Writer) error {
	values := make([]int64, 0, s.tree.Len())
	s.tree.Foreach(func(idx int64, color tree.Color, key, val int64) bool {
		values = append(values, val)
		return true
	})
	line := strings.Join(lo.Map(values, func(v int64, _ int) string {
		return strconv.FormatInt(v, 10)
	}), " ")
	_, err := io.WriteString(w, line+"\n")
	return infra.WrapErrorStack(err)
}

func (s *sorter) run(ctx context.Context) (err error) {
	r, err := s.openInput()
	if err != nil {
		s.logger.ErrorStack(err, "open input failed")
		return err
	}
	defer func() {
		err = infra.AppendErrorStack(err, r.Close())
	}()

	if err = s.collect(ctx, r); err != nil {
		s.logger.ErrorStack(err, "sort aborted")
		return err
	}
	s.logger.Info("sorted",
		zap.Int64("size", s.tree.Len()),
		zap.Int("height", s.tree.Height()),
		zap.Bool("desc", s.tree.IsDesc()),
	)
	return s.render(s.streams.out)
}
