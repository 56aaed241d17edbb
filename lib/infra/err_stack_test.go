package infra

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

var initPC = caller()

func caller() Frame {
	var PCs [3]uintptr
	n := runtime.Callers(2, PCs[:])
	frames := runtime.CallersFrames(PCs[:n])
	frame, _ := frames.Next()
	return Frame(frame.PC)
}

func TestFrameFormat(t *testing.T) {
	testcases := []struct {
		Frame
		format string
		want   string
	}{
		{initPC, "%s", "err_stack_test.go"},
		{initPC, "%n", "init"},
		{initPC, "%d", "14"},
		{initPC, "%v", "err_stack_test.go:14"},
		{Frame(0), "%s", "unknownFile"},
		{Frame(0), "%n", "unknownFunc"},
		{Frame(0), "%d", "0"},
	}

	for _, tc := range testcases {
		require.Equal(t, tc.want, fmt.Sprintf(tc.format, tc.Frame))
	}
}

func TestFrameMarshalText(t *testing.T) {
	text, err := initPC.MarshalText()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(text), "github.com/nonme/redblacktree/lib/infra.init "))
	require.True(t, strings.HasSuffix(string(text), "err_stack_test.go:14"))

	text, err = Frame(0).MarshalText()
	require.NoError(t, err)
	require.Equal(t, "unknownFrame", string(text))
}

var errTestCause = errors.New("test cause")

func TestNewErrorStack(t *testing.T) {
	err := NewErrorStack("key not found")
	require.EqualError(t, err, "key not found")

	var es ErrorStack
	require.True(t, errors.As(err, &es))
	require.NotEmpty(t, es.Frames())
	require.Contains(t, fmt.Sprintf("%+v", err), "TestNewErrorStack")
	require.Nil(t, es.Unwrap())
}

func TestWrapErrorStack(t *testing.T) {
	require.NoError(t, WrapErrorStack(nil))
	require.NoError(t, WrapErrorStackWithMessage(nil, "ignored"))

	err := WrapErrorStack(errTestCause)
	require.EqualError(t, err, "test cause")
	require.ErrorIs(t, err, errTestCause)

	// Wrapping twice keeps the first stack.
	require.Same(t, err, WrapErrorStack(err))

	err = WrapErrorStackWithMessage(errTestCause, "lookup failed")
	require.EqualError(t, err, "lookup failed: test cause")
	require.ErrorIs(t, err, errTestCause)
	require.Contains(t, fmt.Sprintf("%+v", err), "TestWrapErrorStack")
}

func TestAppendErrorStack(t *testing.T) {
	errA, errB := errors.New("a"), errors.New("b")

	require.NoError(t, AppendErrorStack(nil))
	require.NoError(t, AppendErrorStack(nil, nil, nil))

	err := AppendErrorStack(nil, errA, nil)
	require.ErrorIs(t, err, errA)

	err = AppendErrorStack(err, errB)
	require.ErrorIs(t, err, errA)
	require.ErrorIs(t, err, errB)
	require.EqualError(t, err, "a; b")

	var es ErrorStack
	require.True(t, errors.As(err, &es))
	require.Len(t, es.Unwrap(), 2)

	err = AppendErrorStack(errTestCause, errA)
	require.ErrorIs(t, err, errTestCause)
	require.ErrorIs(t, err, errA)
}

func TestErrorStackMarshalLogObject(t *testing.T) {
	err := WrapErrorStackWithMessage(errTestCause, "marshal")
	var es ErrorStack
	require.True(t, errors.As(err, &es))

	enc := zapcore.NewMapObjectEncoder()
	require.NoError(t, es.MarshalLogObject(enc))
	require.Equal(t, "marshal: test cause", enc.Fields["error"])
	stack, ok := enc.Fields["errorStack"].([]any)
	require.True(t, ok)
	require.Equal(t, len(es.Frames()), len(stack))
}
