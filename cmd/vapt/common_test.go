package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/obentoo/vapt/internal/common/apt"
	"github.com/obentoo/vapt/internal/operation"
)

func TestPrintStreamWithoutDone(t *testing.T) {
	events := make(chan operation.Event, 1)
	events <- operation.Event{Kind: operation.EventLine, Line: "Reading package lists..."}
	close(events)

	done := printStream(events)
	if !errors.Is(done.Err, errNoResult) {
		t.Errorf("expected errNoResult for a stream without EventDone, got %v", done.Err)
	}
}

// TestRunMutationsInterrupted tests that an interrupt never cancels the
// command context, stops the remaining stages and reports a failure
func TestRunMutationsInterrupted(t *testing.T) {
	var started []apt.MutationKind
	tool := &apt.MockExecutor{
		StartFunc: func(ctx context.Context, m apt.Mutation) (*apt.Process, error) {
			if ctx.Err() != nil {
				t.Errorf("%s started with a cancelled context", m.Kind)
			}
			started = append(started, m.Kind)
			// Leave time for the interrupt to reach the executor
			time.Sleep(100 * time.Millisecond)
			return apt.NewFakeProcess([]string{"Removing nano"}, 0), nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ex := operation.NewExecutor(tool)
	plan := operation.Plan{Removes: []string{"nano:amd64"}, Installs: []string{"htop:amd64=3.3.0-4"}}
	done, err := runMutations(ctx, ex, func(mctx context.Context) (<-chan operation.Event, error) {
		return ex.Execute(mctx, plan, apt.InstallOptions{})
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(started) > 1 {
		t.Errorf("expected the install stage to be skipped, started %v", started)
	}
	if !errors.Is(done.Err, operation.ErrTerminated) {
		t.Errorf("expected ErrTerminated, got %v", done.Err)
	}
}

func TestRunMutationsNothingToDo(t *testing.T) {
	ex := operation.NewExecutor(&apt.MockExecutor{})
	_, err := runMutations(context.Background(), ex, func(mctx context.Context) (<-chan operation.Event, error) {
		return ex.Execute(mctx, operation.Plan{}, apt.InstallOptions{})
	})
	if !errors.Is(err, operation.ErrNothingToDo) {
		t.Errorf("expected ErrNothingToDo, got %v", err)
	}
}
