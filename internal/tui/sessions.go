package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/mirandavy/classdeck/internal/export"
	"github.com/mirandavy/classdeck/pkg/client"
	"github.com/mirandavy/classdeck/pkg/domain"
)

// exportSessionsFile is swapped out in tests to avoid touching the filesystem.
var exportSessionsFile = export.WriteSessions

// -- messages --

type sessionsLoadedMsg struct {
	sessions []domain.Session
	noData   string
	err      error
}

type exportDoneMsg struct {
	path string
	err  error
}

type sessionCopyMsg struct{ err error }

// showDetailMsg asks the app root to open the drill-down overlay.
type showDetailMsg struct {
	session domain.Session
}

// -- model --

type sessionsModel struct {
	client *client.Client
	log    *zap.Logger

	sessions []domain.Session
	noData   string
	cursor   int
	loading  bool
	errMsg   string

	statusMsg string
	width     int
	height    int
}

func newSessionsModel(c *client.Client, log *zap.Logger) sessionsModel {
	if log == nil {
		log = zap.NewNop()
	}
	return sessionsModel{client: c, log: log, loading: true}
}

func (m sessionsModel) Init() tea.Cmd {
	return m.loadSessions()
}

func (m sessionsModel) loadSessions() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		sessions, noData, err := c.GetAllSessions(context.Background())
		return sessionsLoadedMsg{sessions: sessions, noData: noData, err: err}
	}
}

func (m sessionsModel) Update(msg tea.Msg) (sessionsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = friendlyError(msg.err)
			m.log.Error("load sessions", zap.Error(msg.err))
			return m, nil
		}
		m.errMsg = ""
		m.sessions = msg.sessions
		m.noData = msg.noData
		if m.cursor >= len(m.sessions) {
			m.cursor = 0
		}
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.statusMsg = "export failed"
			m.log.Error("export sessions", zap.Error(msg.err))
		} else {
			m.statusMsg = "saved " + msg.path
		}
		return m, nil

	case sessionCopyMsg:
		if msg.err != nil {
			m.statusMsg = "copy failed"
		} else {
			m.statusMsg = "session line copied"
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m sessionsModel) handleKey(msg tea.KeyMsg) (sessionsModel, tea.Cmd) {
	m.statusMsg = ""
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.sessions)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g":
		m.cursor = 0
	case "G":
		if len(m.sessions) > 0 {
			m.cursor = len(m.sessions) - 1
		}
	case "enter":
		if m.cursor < len(m.sessions) {
			s := m.sessions[m.cursor]
			return m, func() tea.Msg { return showDetailMsg{session: s} }
		}
	case "x":
		if len(m.sessions) > 0 {
			return m, m.exportSessions()
		}
		m.statusMsg = "nothing to export"
	case "c":
		if m.cursor < len(m.sessions) {
			s := m.sessions[m.cursor]
			line := fmt.Sprintf("session %d  user %d  %s  %s  score %d",
				s.SessionID, s.UserID, s.SessionDate, s.Duration(), s.PlayerScore)
			return m, func() tea.Msg {
				return sessionCopyMsg{err: clipboard.WriteAll(line)}
			}
		}
	case "r":
		m.loading = true
		return m, m.loadSessions()
	}
	return m, nil
}

// exportSessions runs the xlsx export off the update loop.
func (m sessionsModel) exportSessions() tea.Cmd {
	sessions := m.sessions
	return func() tea.Msg {
		path, err := exportSessionsFile(sessions)
		return exportDoneMsg{path: path, err: err}
	}
}

func (m sessionsModel) View() string {
	var sb strings.Builder

	sb.WriteString(" " + sectionHeaderStyle.Render("SESSION HISTORY") + "\n\n")

	if m.errMsg != "" {
		sb.WriteString(" " + errorStyle.Render(m.errMsg) + "\n")
		return sb.String()
	}
	if m.loading {
		sb.WriteString(" " + dimStyle.Render("loading...") + "\n")
		return sb.String()
	}
	if m.noData != "" {
		sb.WriteString(" " + dimStyle.Render(m.noData) + "\n")
		return sb.String()
	}
	if len(m.sessions) == 0 {
		sb.WriteString(" " + dimStyle.Render("No sessions recorded.") + "\n")
		return sb.String()
	}

	head := fmt.Sprintf("  %-8s %-12s %-8s %-7s %-14s %-16s %s",
		"ID", "DATE", "USER", "SCORE", "DURATION", "MODULE", "PLATFORM")
	sb.WriteString(" " + metaStyle.Render(head) + "\n")

	for i, s := range m.sessions {
		module := s.ModuleName
		if module == "" {
			module = fmt.Sprintf("#%d", s.ModuleID)
		}
		line := fmt.Sprintf("  %-8d %-12s %-8d %-7d %-14s %-16s %s",
			s.SessionID, s.SessionDate, s.UserID, s.PlayerScore,
			s.Duration(), truncStr(module, 15), domain.PlatformName(s.Platform))
		if i == m.cursor {
			sb.WriteString(selectedRowBg.Render("▸"+selectedStyle.Render(line)) + "\n")
		} else {
			sb.WriteString(" " + normalStyle.Render(line) + "\n")
		}
	}

	if m.statusMsg != "" {
		sb.WriteString("\n " + statusStyle.Render(m.statusMsg) + "\n")
	}
	return sb.String()
}

func (m sessionsModel) helpLine() string {
	return strings.Join([]string{
		helpEntry("j/k", "move"),
		helpEntry("enter", "open"),
		helpEntry("x", "export"),
		helpEntry("c", "copy"),
		helpEntry("r", "reload"),
	}, "  ")
}
