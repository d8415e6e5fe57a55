// Package tui implements the interactive terminal front-end.
package tui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/obentoo/vapt/internal/common/apt"
	"github.com/obentoo/vapt/internal/common/config"
	"github.com/obentoo/vapt/internal/common/logger"
	"github.com/obentoo/vapt/internal/complete"
	"github.com/obentoo/vapt/internal/locale"
	"github.com/obentoo/vapt/internal/operation"
	"github.com/obentoo/vapt/internal/selection"
)

const (
	maxSuggestions = 8
	maxLogLines    = 2000
)

type tab int

const (
	tabInstall tab = iota
	tabUpgrade
	tabRemove
	tabSettings
	tabCount
)

type focus int

const (
	focusInput focus = iota
	focusList
)

// setting is one line of the settings tab
type setting struct {
	key   string // config key, empty for the language line
	label string // locale key
}

var settingsLines = []setting{
	{key: "editor/installs_autocompletion", label: "settings.installs_autocompletion"},
	{key: "editor/upgrades_selected_by_default", label: "settings.upgrades_selected_by_default"},
	{key: "apt_install/fix_missing", label: "settings.fix_missing"},
	{key: "apt_install/fix_broken", label: "settings.fix_broken"},
	{key: "apt_install/fix_policy", label: "settings.fix_policy"},
	{key: "", label: "settings.language"},
}

// Options holds what the interface needs from the rest of the program
type Options struct {
	Apt        apt.Executor
	Store      *config.Store
	Catalog    *locale.Catalog
	LocalesDir string
	OSName     string
	Version    string
}

type infoOverlay struct {
	active bool
	name   string
	raw    bool
	view   viewport.Model
}

// Model is the Bubble Tea model of the whole program
type Model struct {
	ctx         context.Context
	mutationCtx context.Context
	cancel      context.CancelFunc

	opts     Options
	tr       *locale.Catalog
	run      *operation.Run
	executor *operation.Executor

	width  int
	height int

	spinner spinner.Model
	logs    []string
	logView viewport.Model
	result  *operation.Event

	arch  string
	tab   tab
	focus focus

	lists   [3]*selection.List
	cursors [tabCount]int
	loading [3]bool

	input            textinput.Model
	debouncer        *complete.Debouncer
	lastQuery        string
	suggestions      []string
	suggestionCursor int

	languages []*locale.Document

	info infoOverlay

	status    string
	statusErr bool
	quitting  bool
}

// New builds the model. The package database update starts in Init.
func New(ctx context.Context, opts Options) Model {
	ctx, cancel := context.WithCancel(ctx)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleTitle

	ti := textinput.New()
	ti.Placeholder = opts.Catalog.T("install.placeholder")
	ti.CharLimit = 120
	ti.Width = 48
	ti.Focus()

	m := Model{
		ctx:              ctx,
		mutationCtx:      context.WithoutCancel(ctx),
		cancel:           cancel,
		opts:             opts,
		tr:               opts.Catalog,
		run:              operation.NewRun(),
		executor:         operation.NewExecutor(opts.Apt),
		spinner:          sp,
		logView:          viewport.New(80, 10),
		arch:             "…",
		input:            ti,
		debouncer:        complete.NewDebouncer(complete.DefaultDelay),
		suggestionCursor: -1,
		info:             infoOverlay{view: viewport.New(80, 20)},
	}
	for i := range m.lists {
		m.lists[i] = selection.New()
	}

	if opts.LocalesDir != "" {
		docs, err := locale.Discover(opts.LocalesDir)
		if err != nil {
			logger.Debug("discovering locales: %v", err)
		}
		m.languages = docs
	}

	return m
}

// Init starts the spinner, the database update and the architecture query
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		waitForEvent(m.executor.Update(m.mutationCtx)),
		architectureCmd(m.ctx, m.opts.Apt),
		textinput.Blink,
	)
}

// State returns the state of the run
func (m Model) State() operation.State {
	return m.run.State()
}

// Result returns the final event of the last finished command stream
func (m Model) Result() *operation.Event {
	return m.result
}

// Shutdown terminates a running command and cancels pending queries
func (m Model) Shutdown() {
	if m.executor.Running() {
		logger.Warn("terminating the running command")
	}
	m.executor.Terminate()
	m.cancel()
}

// Update handles one message
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.relayout()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case archMsg:
		m.arch = msg.arch

	case eventMsg:
		if !msg.ok {
			break
		}
		cmds = append(cmds, m.handleEvent(msg.event))
		if msg.event.Kind != operation.EventDone {
			cmds = append(cmds, waitForEvent(msg.events))
		}

	case debounceMsg:
		if m.debouncer.Fire(msg.ticket) {
			cmds = append(cmds, lookupCmd(m.ctx, m.opts.Apt, msg.query))
		}

	case lookupMsg:
		if msg.query == m.lastQuery {
			m.suggestions = complete.Filter(msg.query, msg.names)
			m.suggestionCursor = -1
		}

	case addMsg:
		m.handleAdd(msg)

	case listMsg:
		m.handleList(msg)

	case infoMsg:
		m.openInfo(msg)

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleEvent(ev operation.Event) tea.Cmd {
	switch ev.Kind {
	case operation.EventStage:
		m.appendLog("$ " + ev.Command)
	case operation.EventLine:
		m.appendLog(ev.Line)
	case operation.EventDone:
		m.result = &ev
		return m.finishStream(ev)
	}
	return nil
}

// finishStream moves the run forward once a command stream ends
func (m *Model) finishStream(ev operation.Event) tea.Cmd {
	switch m.run.State() {
	case operation.StateUpdatingDB:
		if ev.Err != nil {
			m.transition(operation.StateError)
			return nil
		}
		m.transition(operation.StateReadyForSelection)
		m.loading[tabUpgrade] = true
		m.loading[tabRemove] = true
		return tea.Batch(
			listCmd(m.ctx, m.opts.Apt, tabUpgrade),
			listCmd(m.ctx, m.opts.Apt, tabRemove),
		)
	case operation.StateExecuting:
		m.transition(operation.StateDone)
	}
	return nil
}

func (m *Model) transition(next operation.State) {
	if err := m.run.Transition(next); err != nil {
		logger.Error("%v", err)
	}
}

func (m *Model) appendLog(line string) {
	m.logs = append(m.logs, line)
	if len(m.logs) > maxLogLines {
		m.logs = m.logs[len(m.logs)-maxLogLines:]
	}
	m.logView.SetContent(strings.Join(m.logs, "\n"))
	m.logView.GotoBottom()
}

func (m *Model) handleAdd(msg addMsg) {
	if msg.err != nil {
		m.setStatus(msg.err.Error(), true)
		return
	}
	if !msg.found {
		if msg.name != "" {
			m.setStatus(m.tr.Tf("install.notfound", msg.name), true)
		}
		return
	}

	for _, row := range msg.rows {
		m.lists[tabInstall].AddOrUpdate(row)
	}
	m.input.SetValue("")
	m.lastQuery = ""
	m.suggestions = nil
	m.suggestionCursor = -1
	m.debouncer.Cancel()
}

func (m *Model) handleList(msg listMsg) {
	m.loading[msg.tab] = false
	selected := false
	if msg.tab == tabUpgrade {
		selected = m.opts.Store.Snapshot().Editor.UpgradesSelectedByDefault
	}
	m.lists[msg.tab].RefreshFrom(msg.entries, selected)
	m.clampCursor(msg.tab)
}

func (m *Model) openInfo(msg infoMsg) {
	var content string
	if msg.raw {
		content = msg.text
	} else {
		var b strings.Builder
		for i, f := range msg.fields {
			if i > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(styleField.Render(f.Field + ":"))
			b.WriteByte(' ')
			b.WriteString(f.Value)
		}
		content = b.String()
	}
	if strings.TrimSpace(content) == "" {
		content = m.tr.T("info.empty")
	}

	m.info.active = true
	m.info.name = msg.name
	m.info.raw = msg.raw
	m.info.view.SetContent(content)
	m.info.view.GotoTop()
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.Shutdown()
	return tea.Quit
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key == "ctrl+c" {
		return m.quit()
	}

	if m.info.active {
		switch key {
		case "esc", "q", "i", "I":
			m.info.active = false
			return nil
		}
		var cmd tea.Cmd
		m.info.view, cmd = m.info.view.Update(msg)
		return cmd
	}

	switch m.run.State() {
	case operation.StateReadyForSelection:
		return m.handleSelectionKey(msg)
	case operation.StateExecuting, operation.StateDone, operation.StateUpdatingDB, operation.StateError:
		switch key {
		case "q", "esc":
			return m.quit()
		}
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) handleSelectionKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	m.status = ""

	switch key {
	case "tab":
		m.switchTab((m.tab + 1) % tabCount)
		return nil
	case "shift+tab":
		m.switchTab((m.tab + tabCount - 1) % tabCount)
		return nil
	}

	if m.tab == tabInstall && m.focus == focusInput {
		return m.handleInputKey(msg)
	}
	if m.tab == tabSettings {
		return m.handleSettingsKey(key)
	}

	switch key {
	case "q":
		return m.quit()
	case "left", "h":
		m.switchTab((m.tab + tabCount - 1) % tabCount)
	case "right", "l":
		m.switchTab((m.tab + 1) % tabCount)
	case "/", "esc":
		if m.tab == tabInstall {
			m.focus = focusInput
			return m.input.Focus()
		}
	case "up", "k":
		if m.cursors[m.tab] > 0 {
			m.cursors[m.tab]--
		} else if m.tab == tabInstall {
			m.focus = focusInput
			return m.input.Focus()
		}
	case "down", "j":
		if m.cursors[m.tab] < m.lists[m.tab].Len()-1 {
			m.cursors[m.tab]++
		}
	case "home", "g":
		m.cursors[m.tab] = 0
	case "end", "G":
		m.cursors[m.tab] = max(0, m.lists[m.tab].Len()-1)
	case " ", "space":
		if _, err := m.lists[m.tab].Toggle(m.cursors[m.tab]); err != nil {
			logger.Debug("%v", err)
		}
	case "a":
		m.lists[m.tab].SetAll(len(m.lists[m.tab].Selected()) < m.lists[m.tab].Len())
	case "d", "delete":
		if m.tab == tabInstall {
			if err := m.lists[tabInstall].Remove(m.cursors[tabInstall]); err == nil {
				m.clampCursor(tabInstall)
			}
		}
	case "i", "I":
		row, err := m.lists[m.tab].Row(m.cursors[m.tab])
		if err != nil {
			return nil
		}
		version := row.CandidateVersion
		if m.tab == tabRemove {
			version = row.InstalledVersion
		}
		return infoCmd(m.ctx, m.opts.Apt, row.Name, version, key == "I")
	case "x":
		return m.execute()
	}
	return nil
}

func (m *Model) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		name := m.input.Value()
		if m.suggestionCursor >= 0 && m.suggestionCursor < len(m.suggestions) {
			name = m.suggestions[m.suggestionCursor]
		}
		return addPackageCmd(m.ctx, m.opts.Apt, name)
	case "up":
		if m.suggestionCursor >= 0 {
			m.suggestionCursor--
		}
		return nil
	case "down":
		if m.suggestionCursor < len(m.suggestions)-1 && m.suggestionCursor < maxSuggestions-1 {
			m.suggestionCursor++
			return nil
		}
		if len(m.suggestions) == 0 && m.lists[tabInstall].Len() > 0 {
			m.focus = focusList
			m.input.Blur()
		}
		return nil
	case "esc":
		if len(m.suggestions) > 0 {
			m.suggestions = nil
			m.suggestionCursor = -1
			return nil
		}
		m.focus = focusList
		m.input.Blur()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return tea.Batch(cmd, m.queryChanged())
}

// queryChanged schedules a debounced lookup for the current input text
func (m *Model) queryChanged() tea.Cmd {
	query := m.input.Value()
	if query == m.lastQuery {
		return nil
	}
	m.lastQuery = query

	if strings.TrimSpace(query) == "" || !m.opts.Store.Snapshot().Editor.InstallsAutocompletion {
		m.debouncer.Cancel()
		m.suggestions = nil
		m.suggestionCursor = -1
		return nil
	}

	ticket := m.debouncer.Schedule()
	return tea.Tick(m.debouncer.Delay(), func(time.Time) tea.Msg {
		return debounceMsg{ticket: ticket, query: query}
	})
}

func (m *Model) handleSettingsKey(key string) tea.Cmd {
	switch key {
	case "q":
		return m.quit()
	case "left", "h":
		m.switchTab(tabRemove)
	case "right", "l":
		m.switchTab(tabInstall)
	case "up", "k":
		if m.cursors[tabSettings] > 0 {
			m.cursors[tabSettings]--
		}
	case "down", "j":
		if m.cursors[tabSettings] < len(settingsLines)-1 {
			m.cursors[tabSettings]++
		}
	case " ", "space", "enter":
		line := settingsLines[m.cursors[tabSettings]]
		if line.key == "" {
			m.cycleLanguage()
			return nil
		}
		if _, err := m.opts.Store.Toggle(line.key); err != nil {
			m.setStatus(err.Error(), true)
			return nil
		}
		m.setStatus(m.tr.Tf("settings.saved", m.opts.Store.Path()), false)
	}
	return nil
}

// cycleLanguage selects the next discovered language document
func (m *Model) cycleLanguage() {
	if len(m.languages) == 0 {
		return
	}

	current := m.opts.Store.Snapshot().Editor.LocalizationFile
	next := 0
	for i, doc := range m.languages {
		if sameDocument(doc.Path, current, m.opts.LocalesDir) {
			next = (i + 1) % len(m.languages)
			break
		}
	}

	if err := m.opts.Store.Set("editor/localization_file", m.languages[next].Path); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.setStatus(m.tr.T("settings.restart"), false)
}

func sameDocument(path, configured, dir string) bool {
	if configured == "" {
		return filepath.Base(path) == locale.FallbackFile
	}
	if !filepath.IsAbs(configured) {
		configured = filepath.Join(dir, configured)
	}
	return filepath.Clean(path) == filepath.Clean(configured)
}

func (m *Model) switchTab(t tab) {
	m.tab = t
	if t == tabInstall && m.focus == focusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m *Model) clampCursor(t tab) {
	n := m.lists[t].Len()
	if m.cursors[t] >= n {
		m.cursors[t] = max(0, n-1)
	}
}

// execute builds the plan from the three lists and starts it
func (m *Model) execute() tea.Cmd {
	plan := operation.BuildPlan(
		m.lists[tabInstall].Rows(),
		m.lists[tabUpgrade].Rows(),
		m.lists[tabRemove].Rows(),
	)

	opts := operation.OptionsFromConfig(m.opts.Store.Snapshot())
	events, err := m.executor.Execute(m.mutationCtx, plan, opts)
	if errors.Is(err, operation.ErrNothingToDo) {
		m.setStatus(m.tr.T("executor.nothing"), false)
		return nil
	}
	if err != nil {
		m.setStatus(err.Error(), true)
		return nil
	}

	m.transition(operation.StateExecuting)
	m.logs = nil
	m.result = nil
	m.logView.SetContent("")
	return waitForEvent(events)
}

func (m *Model) relayout() {
	w := max(20, m.width-4)
	m.logView.Width = w
	m.logView.Height = max(3, m.height-8)
	m.info.view.Width = max(20, m.width-8)
	m.info.view.Height = max(3, m.height-8)
	m.input.Width = max(10, min(60, m.width-10))
}
