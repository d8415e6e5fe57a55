package operation

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/obentoo/vapt/internal/common/apt"
	"github.com/obentoo/vapt/internal/common/config"
	"github.com/obentoo/vapt/internal/common/logger"
)

var (
	ErrNothingToDo  = errors.New("nothing to do")
	ErrStageFailed  = errors.New("command failed")
	ErrUpdateFailed = errors.New("package database update failed")
	ErrTerminated   = errors.New("terminated before completion")
)

// EventKind classifies progress events
type EventKind int

const (
	// EventStage announces a command about to start
	EventStage EventKind = iota
	// EventLine carries one output line
	EventLine
	// EventDone is always the last event of a stream
	EventDone
)

// Event is one progress report of a running execution
type Event struct {
	Kind     EventKind
	Stage    apt.MutationKind
	Command  string // EventStage only
	Line     string // EventLine only
	ExitCode int    // EventDone only: exit code of the last command
	Err      error  // EventDone only: joined failures of every stage
}

// OptionsFromConfig returns the install repair flags of cfg
func OptionsFromConfig(cfg config.Config) apt.InstallOptions {
	return apt.InstallOptions{
		FixMissing: cfg.AptInstall.FixMissing,
		FixBroken:  cfg.AptInstall.FixBroken,
		FixPolicy:  cfg.AptInstall.FixPolicy,
	}
}

// Executor runs plans through an apt.Executor, one command at a time
type Executor struct {
	apt apt.Executor

	mu         sync.Mutex
	current    *apt.Process
	terminated bool
}

// NewExecutor creates an Executor backed by tool
func NewExecutor(tool apt.Executor) *Executor {
	return &Executor{apt: tool}
}

// Execute runs plan and streams its progress.
// The removal command runs to completion before the install command starts.
// A failing command does not stop the next one; failures are reported on
// the final EventDone. ErrNothingToDo is returned for an empty plan.
func (e *Executor) Execute(ctx context.Context, plan Plan, opts apt.InstallOptions) (<-chan Event, error) {
	if plan.IsEmpty() {
		return nil, ErrNothingToDo
	}
	return e.stream(ctx, plan.Mutations(opts), ErrStageFailed), nil
}

// Update runs apt-get update and streams its output.
// A non-zero exit is reported as ErrUpdateFailed on EventDone.
func (e *Executor) Update(ctx context.Context) <-chan Event {
	return e.stream(ctx, []apt.Mutation{{Kind: apt.MutationUpdate}}, ErrUpdateFailed)
}

// Terminate signals the running command, if any, without waiting for it.
// Stages that have not started yet are skipped.
func (e *Executor) Terminate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.terminated = true
	if e.current != nil {
		e.current.Terminate()
	}
}

// Running reports whether a command is in progress
func (e *Executor) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current != nil && !e.current.Exited()
}

func (e *Executor) stream(ctx context.Context, mutations []apt.Mutation, failure error) <-chan Event {
	events := make(chan Event, 16)

	go func() {
		defer close(events)

		var errs []error
		exitCode := 0

		for _, m := range mutations {
			if e.isTerminated() {
				errs = append(errs, fmt.Errorf("%s: %w", m.CommandLine(), ErrTerminated))
				continue
			}

			send(ctx, events, Event{Kind: EventStage, Stage: m.Kind, Command: m.CommandLine()})
			logger.Info("running %s", m.CommandLine())

			code, err := e.run(ctx, m, events)
			exitCode = code
			switch {
			case err != nil:
				errs = append(errs, fmt.Errorf("%s: %w", m.CommandLine(), err))
			case code != 0:
				errs = append(errs, fmt.Errorf("%s exited with status %d: %w", m.CommandLine(), code, failure))
			}
		}

		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
		}

		done := Event{Kind: EventDone, ExitCode: exitCode, Err: errors.Join(errs...)}
		if done.Err != nil {
			logger.Warn("%v", done.Err)
		}
		// EventDone is delivered even after ctx is done; consumers drain
		// the channel until it closes.
		events <- done
	}()

	return events
}

// run starts one command and forwards its output until it exits
func (e *Executor) run(ctx context.Context, m apt.Mutation, events chan<- Event) (int, error) {
	p, err := e.apt.Start(ctx, m)
	if err != nil {
		return -1, err
	}

	e.mu.Lock()
	e.current = p
	if e.terminated {
		p.Terminate()
	}
	e.mu.Unlock()

	for line := range p.Lines() {
		send(ctx, events, Event{Kind: EventLine, Stage: m.Kind, Line: line})
	}

	return p.Wait()
}

func (e *Executor) isTerminated() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.terminated
}

// send delivers a progress event unless ctx is done. Output is still drained
// from the command after that.
func send(ctx context.Context, events chan<- Event, ev Event) {
	select {
	case events <- ev:
	case <-ctx.Done():
	}
}
