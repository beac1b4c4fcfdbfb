// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tui is the interactive group manager. Every state change goes
// through groups.Session; the model only keeps cursor, search and display
// state of its own.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vrcgroup/vrcgroup-cli/internal/groups"
	"github.com/vrcgroup/vrcgroup-cli/internal/models"
	"github.com/vrcgroup/vrcgroup-cli/internal/utils"
)

const progressInterval = 100 * time.Millisecond

type groupsLoadedMsg struct{ err error }

type bulkDoneMsg struct {
	outcome *groups.BulkOutcome
	err     error
}

type toggleDoneMsg struct {
	result *groups.ToggleResult
	err    error
}

type progressTickMsg struct{}

// Model is the bubbletea model for the group manager screen
type Model struct {
	ctx     context.Context
	session *groups.Session
	notices *Notices
	keys    KeyMap
	copy    func(string) error

	search    textinput.Model
	searching bool
	bar       progress.Model
	spinner   spinner.Model
	help      help.Model

	cursor   int
	offset   int
	applying bool
	toggling bool
	notice   *Notice
	width    int
	height   int
}

type Option func(*Model)

// WithClipboard replaces the clipboard writer used by the copy key
func WithClipboard(fn func(string) error) Option {
	return func(m *Model) {
		if fn != nil {
			m.copy = fn
		}
	}
}

func New(ctx context.Context, session *groups.Session, notices *Notices, opts ...Option) *Model {
	search := textinput.New()
	search.Placeholder = "search groups"
	search.Prompt = "/ "
	search.CharLimit = 64

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = WarningStyle.Bold(false)

	if notices == nil {
		notices = NewNotices()
	}

	m := &Model{
		ctx:     ctx,
		session: session,
		notices: notices,
		keys:    DefaultKeyMap,
		copy:    utils.WriteToClipboard,
		search:  search,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		spinner: sp,
		help:    help.New(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadGroups())
}

func (m *Model) loadGroups() tea.Cmd {
	return func() tea.Msg {
		return groupsLoadedMsg{err: m.session.Refresh(m.ctx)}
	}
}

func (m *Model) applyBulk() tea.Cmd {
	return func() tea.Msg {
		outcome, err := m.session.BulkUpdate(m.ctx, nil)
		return bulkDoneMsg{outcome: outcome, err: err}
	}
}

func (m *Model) toggleRepresentation(id string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.session.ToggleRepresentation(m.ctx, id)
		return toggleDoneMsg{result: result, err: err}
	}
}

func progressTick() tea.Cmd {
	return tea.Tick(progressInterval, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.bar.Width = max(10, min(60, msg.Width-20))
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progressTickMsg:
		if m.session.Busy() {
			return m, progressTick()
		}
		return m, nil

	case groupsLoadedMsg:
		// load failures are announced by the session itself
		m.drainNotices()
		if errors.Is(msg.err, groups.ErrTogglePending) {
			m.reportErr(msg.err)
		}
		m.clampCursor()
		return m, nil

	case bulkDoneMsg:
		m.applying = false
		m.drainNotices()
		m.reportErr(msg.err)
		m.clampCursor()
		return m, nil

	case toggleDoneMsg:
		m.toggling = false
		m.drainNotices()
		if msg.result == nil {
			m.reportErr(msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.searching {
		switch {
		case msg.Type == tea.KeyCtrlC:
			return tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.searching = false
			m.search.SetValue("")
			m.search.Blur()
			m.cursor, m.offset = 0, 0
			return nil
		case msg.Type == tea.KeyEnter:
			m.searching = false
			m.search.Blur()
			return nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.cursor, m.offset = 0, 0
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Home):
		m.cursor = 0
	case key.Matches(msg, m.keys.End):
		m.cursor = len(m.visibleGroups()) - 1
		m.clampCursor()

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m.search.Focus()

	case key.Matches(msg, m.keys.Back):
		switch {
		case m.search.Value() != "":
			m.search.SetValue("")
			m.cursor, m.offset = 0, 0
		case m.session.RepresentMode():
			m.setRepresentMode(false)
		}

	case key.Matches(msg, m.keys.Refresh):
		if m.session.Loading() {
			return nil
		}
		return m.loadGroups()

	case key.Matches(msg, m.keys.Toggle):
		g, ok := m.current()
		if !ok {
			return nil
		}
		if m.session.RepresentMode() {
			return m.startToggle(g.ID)
		}
		_, err := m.session.ToggleSelected(g.ID)
		m.reportErr(err)

	case key.Matches(msg, m.keys.SelectAll):
		total := len(m.session.Groups())
		all := total > 0 && m.session.Selection().Len() == total
		m.reportErr(m.session.SelectAll(!all))

	case key.Matches(msg, m.keys.CycleTarget):
		m.reportErr(m.session.SetTarget(m.session.Target().Next()))

	case key.Matches(msg, m.keys.Apply):
		if m.applying || m.session.Busy() {
			m.reportErr(groups.ErrBusy)
			return nil
		}
		if m.session.RepresentMode() {
			m.reportErr(groups.ErrRepresentMode)
			return nil
		}
		m.applying = true
		return tea.Batch(m.applyBulk(), progressTick())

	case key.Matches(msg, m.keys.RepresentMode):
		m.setRepresentMode(!m.session.RepresentMode())

	case key.Matches(msg, m.keys.Copy):
		g, ok := m.current()
		if !ok {
			return nil
		}
		if err := m.copy(g.ID); err != nil {
			m.setNotice(NoticeError, fmt.Sprintf("Copy failed: %v", err))
			return nil
		}
		m.setNotice(NoticeSuccess, fmt.Sprintf("Copied %s", g.ID))
	}
	return nil
}

func (m *Model) startToggle(id string) tea.Cmd {
	if m.toggling {
		m.reportErr(groups.ErrTogglePending)
		return nil
	}
	if m.applying || m.session.Busy() {
		m.reportErr(groups.ErrBusy)
		return nil
	}
	m.toggling = true
	return m.toggleRepresentation(id)
}

func (m *Model) setRepresentMode(on bool) {
	if m.toggling {
		m.reportErr(groups.ErrTogglePending)
		return
	}
	if err := m.session.SetRepresentMode(on); err != nil {
		m.reportErr(err)
		return
	}
	if on {
		m.setNotice(NoticeInfo, "Represent mode: press space on the group to represent")
	} else {
		m.setNotice(NoticeInfo, "Visibility mode")
	}
}

func (m *Model) reportErr(err error) {
	switch {
	case err == nil, errors.Is(err, groups.ErrEmptySelection), errors.Is(err, groups.ErrLoading):
		// already announced, or nothing to say
	case errors.Is(err, groups.ErrBusy):
		m.setNotice(NoticeWarn, "Wait for the current update to finish")
	case errors.Is(err, groups.ErrRepresentMode):
		m.setNotice(NoticeWarn, "Leave represent mode (p) to change visibility")
	case errors.Is(err, groups.ErrTogglePending):
		m.setNotice(NoticeWarn, "A representation change is already in progress")
	default:
		m.setNotice(NoticeError, utils.FirstLine(err.Error()))
	}
}

func (m *Model) setNotice(kind NoticeKind, text string) {
	m.notice = &Notice{Kind: kind, Text: text, At: time.Now()}
}

func (m *Model) drainNotices() {
	for _, n := range m.notices.Drain() {
		m.notice = &n
	}
}

// Notice returns the message currently shown in the status bar
func (m *Model) Notice() (Notice, bool) {
	if m.notice == nil {
		return Notice{}, false
	}
	return *m.notice, true
}

func (m *Model) visibleGroups() []models.Group {
	return models.FilterGroups(m.session.Groups(), &models.GroupFilter{
		Query:  m.search.Value(),
		SortBy: models.SortByName,
	})
}

func (m *Model) current() (models.Group, bool) {
	list := m.visibleGroups()
	if len(list) == 0 {
		return models.Group{}, false
	}
	m.clampCursorTo(len(list))
	return list[m.cursor], true
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	m.clampCursorTo(len(m.visibleGroups()))
}

func (m *Model) clampCursorTo(n int) {
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// listHeight is the number of rows available for groups
func (m *Model) listHeight() int {
	if m.height <= 0 {
		return 0
	}
	rows := m.height - 8
	if m.help.ShowAll {
		rows -= 4
	}
	return max(rows, 3)
}

func (m *Model) View() string {
	var b strings.Builder

	all := m.session.Groups()
	selection := m.session.Selection()
	target := m.session.Target()
	representMode := m.session.RepresentMode()

	mode := InfoStyle.Render("Visibility")
	if representMode {
		mode = RepresentStyle.Render("Represent")
	}
	b.WriteString(TitleStyle.Render("VRChat Groups"))
	b.WriteString("  ")
	b.WriteString(InfoStyle.Render(fmt.Sprintf("Target: %s  Selected: %d/%d  Mode: ",
		visibilityStyle(target).Render(target.Label()), selection.Len(), len(all))))
	b.WriteString(mode)
	b.WriteString("\n\n")

	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}

	if m.session.Loading() && len(all) == 0 {
		b.WriteString(m.spinner.View() + " Loading groups...\n")
	}

	list := m.visibleGroups()
	m.clampCursorTo(len(list))
	switch {
	case len(all) == 0 && !m.session.Loading():
		b.WriteString(DimStyle.Render("No groups") + "\n")
	case len(list) == 0 && len(all) > 0:
		b.WriteString(DimStyle.Render("No groups match") + "\n")
	}

	start, end := m.window(len(list))
	nameWidth := 40
	if m.width > 0 {
		nameWidth = max(10, m.width-30)
	}
	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(list[i], i == m.cursor, selection.Has(list[i].ID), representMode, nameWidth))
		b.WriteString("\n")
	}

	if p, ok := m.session.Progress(); ok {
		b.WriteString("\n")
		b.WriteString(m.bar.ViewAs(p.Fraction()))
		b.WriteString(fmt.Sprintf(" %d/%d", p.Done, p.Total))
		b.WriteString("\n")
	}
	if m.toggling {
		b.WriteString(m.spinner.View() + " Updating representation...\n")
	}

	b.WriteString("\n")
	if n, ok := m.Notice(); ok {
		b.WriteString(StatusBarStyle.Render(noticeStyle(n.Kind).Render(noticeIcon(n.Kind) + " " + n.Text)))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// window returns the slice of rows to draw so the cursor stays visible
func (m *Model) window(n int) (int, int) {
	rows := m.listHeight()
	if rows == 0 || n <= rows {
		return 0, n
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	m.offset = min(m.offset, n-rows)
	return m.offset, m.offset + rows
}

func (m *Model) renderRow(g models.Group, focused, selected, representMode bool, nameWidth int) string {
	prefix := "  "
	if focused {
		prefix = "> "
	}

	var box string
	switch {
	case representMode && g.IsRepresenting:
		box = RepresentStyle.Render("(●)")
	case representMode:
		box = "( )"
	case selected:
		box = "[x]"
	default:
		box = "[ ]"
	}

	name := fmt.Sprintf("%-*s", nameWidth, utils.TruncateWithEllipsis(g.Name, nameWidth))
	if focused {
		name = SelectedRowStyle.Render(name)
	}
	line := fmt.Sprintf("%s%s %s %s", prefix, box, name, visibilityStyle(g.Visibility).Render(g.Visibility.Label()))
	if g.IsRepresenting && !representMode {
		line += " " + RepresentStyle.Render("★")
	}
	return line
}

// Run starts the full-screen program and blocks until the user quits
func Run(ctx context.Context, session *groups.Session, notices *Notices, opts ...Option) error {
	p := tea.NewProgram(New(ctx, session, notices, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
