package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/obentoo/vapt/internal/common/apt"
	"github.com/obentoo/vapt/internal/common/config"
	"github.com/obentoo/vapt/internal/common/logger"
	"github.com/obentoo/vapt/internal/common/output"
	"github.com/obentoo/vapt/internal/operation"
)

// newTool returns the adapter every command talks to apt through
var newTool = func() apt.Executor {
	return apt.NewRunner()
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// loadStore opens the configuration selected by --config or the default
// search path
func loadStore() (*config.Store, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.FindConfigPath()
		if err != nil {
			return nil, err
		}
	}
	logger.Debug("using config %s", path)
	return config.NewStore(path)
}

var errNoResult = errors.New("command stream ended without a result")

// runMutations starts a command stream under a context that ignores
// cancellation, so apt-get is never killed mid-transaction. When ctx is
// cancelled the running command gets SIGTERM and later stages are skipped.
func runMutations(ctx context.Context, ex *operation.Executor, start func(context.Context) (<-chan operation.Event, error)) (operation.Event, error) {
	events, err := start(context.WithoutCancel(ctx))
	if err != nil {
		return operation.Event{}, err
	}

	finished := make(chan struct{})
	defer close(finished)
	go func() {
		select {
		case <-ctx.Done():
			if ex.Running() {
				output.PrintWarning("Interrupted, stopping apt-get")
			}
			ex.Terminate()
		case <-finished:
		}
	}()

	return printStream(events), nil
}

// printStream prints the events of a command stream and returns the final
// one. A stream closed without EventDone yields errNoResult.
func printStream(events <-chan operation.Event) operation.Event {
	done := operation.Event{Kind: operation.EventDone, Err: errNoResult}
	for ev := range events {
		switch ev.Kind {
		case operation.EventStage:
			output.PrintInfo("%s", ev.Command)
		case operation.EventLine:
			fmt.Println(ev.Line)
		case operation.EventDone:
			done = ev
		}
	}
	return done
}
