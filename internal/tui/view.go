package tui

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/obentoo/vapt/internal/operation"
	"github.com/obentoo/vapt/internal/selection"
)

// View renders the current screen
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.info.active {
		return m.viewInfo()
	}

	switch m.run.State() {
	case operation.StateUpdatingDB, operation.StateError:
		return m.viewStream(m.tr.T("updater.title"))
	case operation.StateExecuting, operation.StateDone:
		return m.viewStream(m.tr.T("executor.title"))
	default:
		return m.viewMain()
	}
}

// viewStream renders the updater and executor screens
func (m Model) viewStream(title string) string {
	var b strings.Builder

	b.WriteString(styleTitle.Render(title))
	b.WriteString("\n\n")

	switch m.run.State() {
	case operation.StateError:
		b.WriteString(styleErr.Render(m.tr.T("updater.failed")))
	case operation.StateDone:
		if m.result != nil && m.result.Err != nil {
			b.WriteString(styleErr.Render(m.tr.T("executor.failed")))
			b.WriteString(" ")
			b.WriteString(styleMuted.Render("exit " + strconv.Itoa(m.result.ExitCode)))
		} else {
			b.WriteString(styleOK.Render(m.tr.T("executor.done")))
		}
	default:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(styleSubtle.Render(m.lastLog()))
	}

	b.WriteString("\n")
	b.WriteString(stylePanel.Render(m.logView.View()))
	b.WriteString("\n")
	b.WriteString(m.help("help.quit"))
	return b.String()
}

func (m Model) lastLog() string {
	if len(m.logs) == 0 {
		return ""
	}
	return strings.TrimSpace(m.logs[len(m.logs)-1])
}

func (m Model) viewMain() string {
	var b strings.Builder

	header := styleTitle.Render("vapt") + styleMuted.Render(" "+m.opts.Version) +
		styleSubtle.Render("  "+m.opts.OSName+" · "+m.arch)
	b.WriteString(header)
	b.WriteString("\n\n")
	b.WriteString(m.viewTabs())
	b.WriteString("\n\n")

	switch m.tab {
	case tabInstall:
		b.WriteString(m.viewInstall())
	case tabUpgrade, tabRemove:
		b.WriteString(m.viewList(m.tab))
	case tabSettings:
		b.WriteString(m.viewSettings())
	}

	b.WriteString("\n")
	if m.status != "" {
		if m.statusErr {
			b.WriteString(styleErr.Render(m.status))
		} else {
			b.WriteString(styleWarn.Render(m.status))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.mainHelp())
	return b.String()
}

func (m Model) viewTabs() string {
	labels := []string{
		m.tr.T("tab.install"),
		m.tr.T("tab.upgrade"),
		m.tr.T("tab.remove"),
		m.tr.T("tab.settings"),
	}

	rendered := make([]string, 0, len(labels))
	for i, label := range labels {
		if tab(i) < tabSettings {
			label = fmt.Sprintf("%s (%d)", label, len(m.lists[i].Selected()))
		}
		if tab(i) == m.tab {
			rendered = append(rendered, styleTabActive.Render(label))
		} else {
			rendered = append(rendered, styleTab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) viewInstall() string {
	var b strings.Builder

	b.WriteString(m.input.View())
	if m.focus == focusInput && m.debouncer.Pending() {
		b.WriteString(" " + styleMuted.Render("…"))
	}
	b.WriteString("\n")

	if m.focus == focusInput && len(m.suggestions) > 0 {
		shown := m.suggestions
		if len(shown) > maxSuggestions {
			shown = shown[:maxSuggestions]
		}
		for i, s := range shown {
			if i == m.suggestionCursor {
				b.WriteString(styleCursor.Render("  ▸ " + s))
			} else {
				b.WriteString(styleSubtle.Render("    " + s))
			}
			b.WriteString("\n")
		}
		if extra := len(m.suggestions) - len(shown); extra > 0 {
			b.WriteString(styleMuted.Render(fmt.Sprintf("    +%d", extra)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.lists[tabInstall].Len() == 0 {
		b.WriteString(styleMuted.Render(m.tr.T("install.empty")))
		return b.String()
	}
	b.WriteString(m.viewList(tabInstall))
	return b.String()
}

// visibleRows returns how many list rows fit on screen
func (m Model) visibleRows() int {
	if m.height == 0 {
		return 20
	}
	return max(3, m.height-12)
}

func (m Model) viewList(t tab) string {
	if m.loading[t] {
		return m.spinner.View() + " " + styleSubtle.Render(m.tr.T("list.loading"))
	}

	rows := m.lists[t].Rows()
	if len(rows) == 0 {
		return styleMuted.Render(m.tr.T("list.empty"))
	}

	nameW, verW := len(m.tr.T("column.name")), len(m.tr.T("column.version"))
	for _, r := range rows {
		nameW = max(nameW, len(r.Name))
		verW = max(verW, len(r.CandidateVersion), len(r.InstalledVersion))
	}
	nameW = min(nameW, 40)
	verW = min(verW, 32)

	var b strings.Builder
	b.WriteString(styleHeaderRow.Render(fmt.Sprintf("    %-5s %-*s %-*s %-*s %s",
		m.tr.T("column.selected"),
		nameW, m.tr.T("column.name"),
		verW, m.tr.T("column.version"),
		verW, m.tr.T("column.installed"),
		m.tr.T("column.arch"))))
	b.WriteString("\n")

	cursor := m.cursors[t]
	listFocused := t != tabInstall || m.focus == focusList
	visible := m.visibleRows()
	start := max(0, cursor-visible+1)
	end := min(len(rows), start+visible)

	for i := start; i < end; i++ {
		line := m.formatRow(rows[i], nameW, verW)
		if listFocused && i == cursor {
			b.WriteString(styleCursor.Render("  ▸ ") + line)
		} else {
			b.WriteString("    " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) formatRow(r selection.Row, nameW, verW int) string {
	check := "[ ]"
	if r.Selected {
		check = styleSelected.Render("[x]")
	}
	return fmt.Sprintf("%s   %-*s %s %s %s",
		check,
		nameW, truncate(r.Name, nameW),
		styleVersion.Render(fmt.Sprintf("%-*s", verW, truncate(r.CandidateVersion, verW))),
		styleSubtle.Render(fmt.Sprintf("%-*s", verW, truncate(r.InstalledVersion, verW))),
		styleMuted.Render(r.Architecture),
	)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}

func (m Model) viewSettings() string {
	cfg := m.opts.Store.Snapshot()
	var b strings.Builder

	for i, line := range settingsLines {
		if line.key == "apt_install/fix_missing" {
			b.WriteString("\n")
			b.WriteString(styleHeaderRow.Render(m.tr.T("settings.install_options")))
			b.WriteString("\n")
		}

		var value string
		if line.key == "" {
			value = m.tr.DisplayName()
			if cfg.Editor.LocalizationFile != "" {
				value += styleMuted.Render(" (" + filepath.Base(cfg.Editor.LocalizationFile) + ")")
			}
			b.WriteString("\n")
		} else {
			v, err := cfg.Get(line.key)
			if err == nil && v == "true" {
				value = styleSelected.Render("[x]")
			} else {
				value = "[ ]"
			}
		}

		prefix := "    "
		if i == m.cursors[tabSettings] {
			prefix = styleCursor.Render("  ▸ ")
		}
		if line.key == "" {
			b.WriteString(prefix + m.tr.T(line.label) + ": " + value)
		} else {
			b.WriteString(prefix + value + " " + m.tr.T(line.label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styleMuted.Render(m.opts.Store.Path()))
	return b.String()
}

func (m Model) viewInfo() string {
	title := styleTitle.Render(m.tr.Tf("info.title", m.info.name))
	body := styleOverlay.Render(m.info.view.View())
	return title + "\n" + body + "\n" + m.help("help.navigate", "help.close")
}

func (m Model) mainHelp() string {
	switch {
	case m.tab == tabSettings:
		return m.help("help.navigate", "help.tabs", "help.toggle", "help.quit")
	case m.tab == tabInstall && m.focus == focusInput:
		return m.help("help.add", "help.tabs", "help.close")
	case m.tab == tabInstall:
		return m.help("help.navigate", "help.tabs", "help.toggle", "help.delete", "help.info", "help.execute", "help.quit")
	default:
		return m.help("help.navigate", "help.tabs", "help.toggle", "help.info", "help.execute", "help.quit")
	}
}

func (m Model) help(keys ...string) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, m.tr.T(k))
	}
	return styleMuted.Render(strings.Join(parts, " • "))
}
