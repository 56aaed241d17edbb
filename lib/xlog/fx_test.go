package xlog

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxevent"
)

func TestFxXLoggerAllCases(t *testing.T) {
	testcases := []struct {
		name     string
		event    fxevent.Event
		expected string
	}{
		{
			"onStartExecuting",
			&fxevent.OnStartExecuting{FunctionName: "testFunc1", CallerName: "testCaller1"},
			"HOOK OnStart",
		},
		{
			"onStartExecuted_err",
			&fxevent.OnStartExecuted{FunctionName: "testFunc2", CallerName: "testCaller2", Runtime: 10, Err: errors.New("fx error 1")},
			"HOOK OnStart failed",
		},
		{
			"onStartExecuted_succ",
			&fxevent.OnStartExecuted{FunctionName: "testFunc3", CallerName: "testCaller3", Runtime: 11},
			"HOOK OnStart successfully",
		},
		{
			"onStopExecuting",
			&fxevent.OnStopExecuting{FunctionName: "testFunc4", CallerName: "testCaller4"},
			"HOOK OnStop",
		},
		{
			"onStopExecuted_err",
			&fxevent.OnStopExecuted{FunctionName: "testFunc5", CallerName: "testCaller5", Runtime: 12, Err: errors.New("fx error 2")},
			"HOOK OnStop failed",
		},
		{
			"onStopExecuted_succ",
			&fxevent.OnStopExecuted{FunctionName: "testFunc6", CallerName: "testCaller6", Runtime: 13},
			"HOOK OnStop successfully",
		},
		{
			"supplied_err",
			&fxevent.Supplied{TypeName: "testType1", Err: errors.New("fx error 3")},
			"SUPPLY ERROR",
		},
		{
			"supplied_succ",
			&fxevent.Supplied{TypeName: "testType2"},
			"SUPPLY",
		},
		{
			"provided",
			&fxevent.Provided{ConstructorName: "newTree", OutputTypeNames: []string{"tree.LLRBTree[int64,int64]"}},
			"PROVIDE",
		},
		{
			"provided_err",
			&fxevent.Provided{ConstructorName: "newSorter", Err: errors.New("fx error 4")},
			"Error after options were applied",
		},
		{
			"invoking",
			&fxevent.Invoking{FunctionName: "registerHooks"},
			"INVOKING",
		},
		{
			"invoked_err",
			&fxevent.Invoked{FunctionName: "registerHooks", Err: errors.New("fx error 5")},
			"Error fx.Invoke",
		},
		{
			"stopping",
			&fxevent.Stopping{Signal: os.Interrupt},
			"STOPPING",
		},
		{
			"stopped_err",
			&fxevent.Stopped{Err: errors.New("fx error 6")},
			"Failed to stop cleanly",
		},
		{
			"rollingBack",
			&fxevent.RollingBack{StartErr: errors.New("fx error 7")},
			"Start failed, rolling back",
		},
		{
			"rolledBack_err",
			&fxevent.RolledBack{Err: errors.New("fx error 8")},
			"Couldn't roll back cleanly",
		},
		{
			"started_err",
			&fxevent.Started{Err: errors.New("fx error 9")},
			"Failed to start",
		},
		{
			"started_succ",
			&fxevent.Started{},
			"RUNNING",
		},
		{
			"loggerInitialized_err",
			&fxevent.LoggerInitialized{Err: errors.New("fx error 10")},
			"Failed to initialize custom logger",
		},
		{
			"loggerInitialized_succ",
			&fxevent.LoggerInitialized{ConstructorName: "NewFxXLogger"},
			"LOGGER Initialized custom logger",
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewFxXLogger(NewXLogger(
				WithXLoggerWriteSyncer(Writer(buf)),
				WithXLoggerLevel(LogLevelDebug),
			))
			logger.LogEvent(tc.event)

			lines := decodeLogLines(t, buf)
			require.NotEmpty(t, lines)
			require.Equal(t, tc.expected, lines[0]["msg"])
			require.Equal(t, "Fx", lines[0]["component"])
		})
	}
}

func TestFxXLoggerSilent(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewFxXLogger(NewXLogger(
		WithXLoggerWriteSyncer(Writer(buf)),
		WithXLoggerLevel(LogLevelDebug),
	))
	logger.LogEvent(&fxevent.Invoked{FunctionName: "registerHooks"})
	logger.LogEvent(&fxevent.Stopped{})
	logger.LogEvent(&fxevent.RolledBack{})
	require.Zero(t, buf.Len())

	var nilLogger *FxXLogger
	require.NotPanics(t, func() {
		nilLogger.LogEvent(&fxevent.Started{})
		NewFxXLogger(nil).LogEvent(&fxevent.Started{})
	})
}
