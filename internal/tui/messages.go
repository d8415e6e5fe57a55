package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/obentoo/vapt/internal/common/apt"
	"github.com/obentoo/vapt/internal/complete"
	"github.com/obentoo/vapt/internal/operation"
	"github.com/obentoo/vapt/internal/selection"
)

// eventMsg carries one progress event of the running command stream
type eventMsg struct {
	event  operation.Event
	events <-chan operation.Event
	ok     bool
}

type archMsg struct {
	arch string
}

type debounceMsg struct {
	ticket complete.Ticket
	query  string
}

type lookupMsg struct {
	query string
	names []string
}

type addMsg struct {
	name  string
	rows  []selection.Row
	found bool
	err   error
}

type listMsg struct {
	tab     tab
	entries []apt.ListEntry
}

type infoMsg struct {
	name   string
	raw    bool
	fields []apt.InfoField
	text   string
}

// waitForEvent reads the next event of a stream
func waitForEvent(events <-chan operation.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		return eventMsg{event: ev, events: events, ok: ok}
	}
}

func architectureCmd(ctx context.Context, tool apt.Executor) tea.Cmd {
	return func() tea.Msg {
		return archMsg{arch: tool.Architecture(ctx)}
	}
}

func lookupCmd(ctx context.Context, tool apt.Executor, query string) tea.Cmd {
	return func() tea.Msg {
		prefix, terms := complete.SplitQuery(query)
		return lookupMsg{query: query, names: tool.LookupPackageNames(ctx, prefix, terms)}
	}
}

// addPackageCmd resolves an exact package name into install rows, one per
// architecture
func addPackageCmd(ctx context.Context, tool apt.Executor, name string) tea.Cmd {
	return func() tea.Msg {
		name = strings.TrimSpace(name)
		if name == "" {
			return addMsg{name: name}
		}

		found := false
		for _, n := range tool.LookupPackageNames(ctx, name, nil) {
			if n == name {
				found = true
				break
			}
		}
		if !found {
			return addMsg{name: name}
		}

		policy, err := tool.Policy(ctx, name)
		if err != nil {
			return addMsg{name: name, err: err}
		}
		rows := selection.RowsFromPolicy(name, policy, true)
		return addMsg{name: name, rows: rows, found: len(rows) > 0}
	}
}

func listCmd(ctx context.Context, tool apt.Executor, t tab) tea.Cmd {
	return func() tea.Msg {
		switch t {
		case tabUpgrade:
			return listMsg{tab: t, entries: tool.ListUpgradable(ctx)}
		default:
			return listMsg{tab: t, entries: tool.ListInstalled(ctx)}
		}
	}
}

func infoCmd(ctx context.Context, tool apt.Executor, name, version string, raw bool) tea.Cmd {
	return func() tea.Msg {
		if raw {
			return infoMsg{name: name, raw: true, text: tool.ShowPackageRaw(ctx, name, version)}
		}
		return infoMsg{name: name, fields: tool.ShowPackage(ctx, name, version)}
	}
}
