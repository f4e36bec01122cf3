package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mirandavy/classdeck/pkg/domain"
)

func testSessions() []domain.Session {
	return []domain.Session{
		{SessionID: 101, UserID: 4, SessionDate: "2026-02-10", StartTime: "14", EndTime: "16",
			PlayerScore: 80, ModuleID: 3, ModuleName: "Animals", Platform: "cp"},
		{SessionID: 102, UserID: 5, SessionDate: "2026-02-11", StartTime: "23", EndTime: "1",
			PlayerScore: 40, ModuleID: 7, ModuleName: "Verbs", Platform: "mb"},
		{SessionID: 103, UserID: 6, SessionDate: "2026-02-12",
			PlayerScore: 0, ModuleID: 7, ModuleName: "Verbs", Platform: "vr"},
	}
}

func TestSessionsLoadShowsDurations(t *testing.T) {
	m := newSessionsModel(nil, nil)
	m, _ = m.Update(sessionsLoadedMsg{sessions: testSessions()})

	view := m.View()
	if !strings.Contains(view, "2.00 hrs") {
		t.Errorf("expected derived duration in table, got:\n%s", view)
	}
	if !strings.Contains(view, domain.NoDuration) {
		t.Errorf("expected %q for missing times, got:\n%s", domain.NoDuration, view)
	}
	if !strings.Contains(view, "Mobile") {
		t.Errorf("expected platform name, got:\n%s", view)
	}
}

func TestSessionsNoDataSentinelShown(t *testing.T) {
	m := newSessionsModel(nil, nil)
	m, _ = m.Update(sessionsLoadedMsg{noData: "No sessions found"})

	view := m.View()
	if !strings.Contains(view, "No sessions found") {
		t.Errorf("expected server no-data text verbatim, got:\n%s", view)
	}
	if m.errMsg != "" {
		t.Error("no-data sentinel must not be treated as an error")
	}
}

func TestSessionsErrorShown(t *testing.T) {
	m := newSessionsModel(nil, nil)
	m, _ = m.Update(sessionsLoadedMsg{err: errors.New("connection refused")})

	if view := m.View(); !strings.Contains(view, "error") {
		t.Errorf("expected error in view, got:\n%s", view)
	}
}

func TestSessionsEnterOpensDetail(t *testing.T) {
	m := newSessionsModel(nil, nil)
	m, _ = m.Update(sessionsLoadedMsg{sessions: testSessions()})
	m.cursor = 1

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected command from enter")
	}
	msg, ok := cmd().(showDetailMsg)
	if !ok {
		t.Fatalf("expected showDetailMsg, got %T", cmd())
	}
	if msg.session.SessionID != 102 {
		t.Errorf("opened session %d, want 102", msg.session.SessionID)
	}
}

func TestSessionsCursorNavigation(t *testing.T) {
	m := newSessionsModel(nil, nil)
	m, _ = m.Update(sessionsLoadedMsg{sessions: testSessions()})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want clamped at 2", m.cursor)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	if m.cursor != 0 {
		t.Errorf("g should jump to top, cursor = %d", m.cursor)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")})
	if m.cursor != 2 {
		t.Errorf("G should jump to bottom, cursor = %d", m.cursor)
	}
}

func TestSessionsExport(t *testing.T) {
	saved := exportSessionsFile
	defer func() { exportSessionsFile = saved }()

	var got []domain.Session
	exportSessionsFile = func(sessions []domain.Session) (string, error) {
		got = sessions
		return "/tmp/sessions.xlsx", nil
	}

	m := newSessionsModel(nil, nil)
	m, _ = m.Update(sessionsLoadedMsg{sessions: testSessions()})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if cmd == nil {
		t.Fatal("expected export command")
	}
	msg, ok := cmd().(exportDoneMsg)
	if !ok {
		t.Fatalf("expected exportDoneMsg, got %T", cmd())
	}
	if msg.err != nil || msg.path != "/tmp/sessions.xlsx" {
		t.Errorf("exportDoneMsg = %+v", msg)
	}
	if len(got) != 3 {
		t.Errorf("exported %d sessions, want 3", len(got))
	}

	m, _ = m.Update(msg)
	if !strings.Contains(m.statusMsg, "/tmp/sessions.xlsx") {
		t.Errorf("statusMsg = %q, want saved path", m.statusMsg)
	}
}

func TestSessionsReload(t *testing.T) {
	m := newSessionsModel(nil, nil)
	m, _ = m.Update(sessionsLoadedMsg{sessions: testSessions()})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if !m.loading {
		t.Error("r should set loading while the reload runs")
	}
}
