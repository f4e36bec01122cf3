package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/mirandavy/classdeck/pkg/client"
	"github.com/mirandavy/classdeck/pkg/domain"
)

// promoteState is the state machine for the promotion modal.
type promoteState int

const (
	pmClosed    promoteState = iota
	pmSelecting              // picking a candidate from the eligible pool
)

// -- messages --

type usersLoadedMsg struct {
	users []domain.User
	err   error
}

type promotedMsg struct {
	userID int
	group  string
	err    error
}

type userCopyMsg struct{ err error }

// -- model --

type usersModel struct {
	client *client.Client
	log    *zap.Logger

	part    domain.Partition
	group   string // active tier tab: su, pf or st
	loading bool
	errMsg  string

	search  string
	editing bool
	cursor  int

	// promotion modal
	state        promoteState
	pmCursor     int
	pmErr        string
	pmTarget     string // group granted on confirm; the active tab at open time
	pmCandidates []domain.User

	statusMsg string
	width     int
	height    int
}

func newUsersModel(c *client.Client, log *zap.Logger) usersModel {
	if log == nil {
		log = zap.NewNop()
	}
	return usersModel{client: c, log: log, group: domain.GroupSuperAdmin, loading: true}
}

func (m usersModel) Init() tea.Cmd {
	return m.loadUsers()
}

func (m usersModel) loadUsers() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		users, err := c.GetUsers(context.Background())
		return usersLoadedMsg{users: users, err: err}
	}
}

func (m usersModel) promote(userID int, group string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		err := c.ElevateAccess(context.Background(), userID, group)
		return promotedMsg{userID: userID, group: group, err: err}
	}
}

// visible returns the active tier filtered by the current search text.
func (m usersModel) visible() []domain.User {
	return domain.FilterByUsername(m.part.Group(m.group), m.search)
}

func (m usersModel) Update(msg tea.Msg) (usersModel, tea.Cmd) {
	switch msg := msg.(type) {
	case usersLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = friendlyError(msg.err)
			m.log.Error("load users", zap.Error(msg.err))
			return m, nil
		}
		m.errMsg = ""
		m.part = domain.PartitionUsers(msg.users)
		if m.cursor >= len(m.visible()) {
			m.cursor = 0
		}
		return m, nil

	case promotedMsg:
		if msg.err != nil {
			// Keep the modal open so the admin can retry or pick
			// someone else.
			m.pmErr = friendlyError(msg.err)
			m.log.Error("elevate access",
				zap.Int("userID", msg.userID),
				zap.String("accessLevel", msg.group),
				zap.Error(msg.err))
			return m, nil
		}
		m.log.Info("elevated access",
			zap.Int("userID", msg.userID),
			zap.String("accessLevel", msg.group))
		m.state = pmClosed
		m.pmCandidates = nil
		m.pmErr = ""
		m.statusMsg = fmt.Sprintf("user %d is now a %s", msg.userID, groupSingular(msg.group))
		m.loading = true
		return m, m.loadUsers()

	case userCopyMsg:
		if msg.err != nil {
			m.statusMsg = "copy failed"
		} else {
			m.statusMsg = "username copied"
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

func (m usersModel) handleKey(msg tea.KeyMsg) (usersModel, tea.Cmd) {
	key := msg.String()
	m.statusMsg = ""

	if m.editing {
		switch key {
		case "enter":
			m.editing = false
		case "esc":
			m.editing = false
			m.search = ""
		default:
			m.search = editRune(m.search, key)
			m.cursor = 0
		}
		return m, nil
	}

	if m.state == pmSelecting {
		switch key {
		case "esc", "q":
			m.state = pmClosed
			m.pmCandidates = nil
			m.pmErr = ""
		case "j", "down":
			if m.pmCursor < len(m.pmCandidates)-1 {
				m.pmCursor++
			}
		case "k", "up":
			if m.pmCursor > 0 {
				m.pmCursor--
			}
		case "enter":
			if m.pmCursor < len(m.pmCandidates) {
				u := m.pmCandidates[m.pmCursor]
				m.pmErr = ""
				return m, m.promote(u.UserID, m.pmTarget)
			}
		}
		return m, nil
	}

	switch key {
	case "j", "down":
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "tab":
		m.group = nextGroup(m.group)
		m.search = ""
		m.cursor = 0
	case "/":
		m.editing = true
		m.search = ""
		m.cursor = 0
	case "e":
		pool := m.part.EligibleForPromotion(m.group)
		if len(pool) == 0 {
			m.statusMsg = "no one is eligible for promotion here"
			return m, nil
		}
		m.state = pmSelecting
		m.pmCandidates = pool
		m.pmCursor = 0
		m.pmErr = ""
		m.pmTarget = m.group
	case "c":
		users := m.visible()
		if m.cursor < len(users) {
			name := users[m.cursor].Username
			return m, func() tea.Msg {
				return userCopyMsg{err: clipboard.WriteAll(name)}
			}
		}
	case "r":
		m.loading = true
		return m, m.loadUsers()
	}
	return m, nil
}

func nextGroup(group string) string {
	switch group {
	case domain.GroupSuperAdmin:
		return domain.GroupProfessor
	case domain.GroupProfessor:
		return domain.GroupStudent
	default:
		return domain.GroupSuperAdmin
	}
}

// groupSingular is the display name for one member of a permission group.
func groupSingular(group string) string {
	switch group {
	case domain.GroupSuperAdmin:
		return "Super Admin"
	case domain.GroupProfessor:
		return "Professor"
	case domain.GroupStudent:
		return "Student"
	}
	return group
}

// emptyTierNotice is shown when a tier has no members and no search is active.
func emptyTierNotice(group string) string {
	switch group {
	case domain.GroupSuperAdmin:
		return "There are no other super admins."
	case domain.GroupProfessor:
		return "There are currently no professors."
	default:
		return "There are currently no students."
	}
}

func (m usersModel) View() string {
	var sb strings.Builder

	sb.WriteString(" " + sectionHeaderStyle.Render("USER DIRECTORY") + "\n\n")
	sb.WriteString(m.tierTabs() + "\n")

	// Search line
	if m.editing {
		cursor := accentStyle.Render("█")
		sb.WriteString(" " + inputPromptStyle.Render("search:") + " " + searchStyle.Render(m.search) + cursor + "\n\n")
	} else if m.search != "" {
		sb.WriteString(" " + dimStyle.Render("search:") + " " + searchStyle.Render(m.search) + "\n\n")
	} else {
		sb.WriteString("\n")
	}

	if m.errMsg != "" {
		sb.WriteString(" " + errorStyle.Render(m.errMsg) + "\n")
		return sb.String()
	}
	if m.loading {
		sb.WriteString(" " + dimStyle.Render("loading...") + "\n")
		return sb.String()
	}

	if m.state == pmSelecting {
		sb.WriteString(m.promoteView())
		return sb.String()
	}

	users := m.visible()
	switch {
	case len(users) == 0 && m.search != "":
		sb.WriteString(" " + dimStyle.Render(fmt.Sprintf("%q cannot be found.", m.search)) + "\n")
	case len(users) == 0:
		sb.WriteString(" " + dimStyle.Render(emptyTierNotice(m.group)) + "\n")
	default:
		sb.WriteString(" " + metaStyle.Render(fmt.Sprintf("  %-8s %s", "ID", "USERNAME")) + "\n")
		for i, u := range users {
			line := fmt.Sprintf("  %-8d %s", u.UserID, truncStr(u.Username, 32))
			if i == m.cursor {
				sb.WriteString(selectedRowBg.Render("▸"+selectedStyle.Render(line)) + "\n")
			} else {
				sb.WriteString(" " + normalStyle.Render(line) + "\n")
			}
		}
	}

	if m.statusMsg != "" {
		sb.WriteString("\n " + statusStyle.Render(m.statusMsg) + "\n")
	}
	return sb.String()
}

// tierTabs renders the three tier headers with member counts.
func (m usersModel) tierTabs() string {
	tabs := make([]string, 0, 3)
	for _, g := range []string{domain.GroupSuperAdmin, domain.GroupProfessor, domain.GroupStudent} {
		label := fmt.Sprintf("%s (%d)", domain.GroupName(g), len(m.part.Group(g)))
		if g == m.group {
			tabs = append(tabs, GroupStyle(g).Render(label))
		} else {
			tabs = append(tabs, dimStyle.Render(label))
		}
	}
	return " " + strings.Join(tabs, metaStyle.Render("  ·  "))
}

// promoteView renders the candidate picker card in place of the user table.
func (m usersModel) promoteView() string {
	cardWidth := min(48, m.width-4)
	if cardWidth < 32 {
		cardWidth = 32
	}
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Background(surfaceColor).
		Padding(1, 2).
		Width(cardWidth)

	var sb strings.Builder
	sb.WriteString(selectedStyle.Render("Promote to "+groupSingular(m.pmTarget)) + "\n\n")
	for i, u := range m.pmCandidates {
		line := fmt.Sprintf("%-8d %s %s", u.UserID, truncStr(u.Username, 24), GroupBadge(u.PermissionGroup))
		if i == m.pmCursor {
			sb.WriteString("▸ " + selectedStyle.Render(line) + "\n")
		} else {
			sb.WriteString("  " + normalStyle.Render(line) + "\n")
		}
	}
	if m.pmErr != "" {
		sb.WriteString("\n" + errorStyle.Render(m.pmErr) + "\n")
	}
	sb.WriteString("\n" + helpEntry("enter", "confirm") + "  " + helpEntry("esc", "cancel"))
	return border.Render(sb.String()) + "\n"
}

func (m usersModel) helpLine() string {
	if m.editing {
		return helpEntry("enter", "apply") + "  " + helpEntry("esc", "clear")
	}
	if m.state == pmSelecting {
		return helpEntry("j/k", "move") + "  " + helpEntry("enter", "promote") + "  " + helpEntry("esc", "cancel")
	}
	parts := []string{
		helpEntry("tab", "tier"),
		helpEntry("/", "search"),
		helpEntry("j/k", "move"),
	}
	if m.group != domain.GroupStudent {
		parts = append(parts, helpEntry("e", "promote"))
	}
	parts = append(parts, helpEntry("c", "copy"), helpEntry("r", "reload"))
	return strings.Join(parts, "  ")
}

// friendlyError maps transport errors to something an admin can act on.
func friendlyError(err error) string {
	if client.IsAuthFailure(err) {
		return "session expired: set CLASSDECK_TOKEN and restart"
	}
	return "error: " + err.Error()
}
