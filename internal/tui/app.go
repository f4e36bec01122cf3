package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/mirandavy/classdeck/internal/browser"
	"github.com/mirandavy/classdeck/pkg/client"
)

type view int

const (
	viewUsers view = iota
	viewSessions
)

// App is the root Bubbletea model.
type App struct {
	client     *client.Client
	log        *zap.Logger
	version    string
	view       view
	users      usersModel
	sessions   sessionsModel
	detail     detailModel
	detailOpen bool
	helpOpen   bool
	helpCursor int
	width      int
	height     int
}

// NewApp creates the admin console rooted at the user directory.
func NewApp(c *client.Client, log *zap.Logger, version string) App {
	if log == nil {
		log = zap.NewNop()
	}
	return App{
		client:   c,
		log:      log,
		version:  version,
		users:    newUsersModel(c, log),
		sessions: newSessionsModel(c, log),
	}
}

func (a App) Init() tea.Cmd {
	return a.users.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + help(1) = 4 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 4}
		a.users, _ = a.users.Update(bodyMsg)
		a.sessions, _ = a.sessions.Update(bodyMsg)
		a.detail, _ = a.detail.Update(bodyMsg)
		return a, nil

	case showDetailMsg:
		a.detailOpen = true
		a.detail = newDetailModel(a.client, a.log, msg.session)
		return a, a.detail.load()

	case tea.KeyMsg:
		// Help overlay captures all keys when open
		if a.helpOpen {
			switch msg.String() {
			case "h", "esc":
				a.helpOpen = false
			case "q", "ctrl+c":
				return a, tea.Quit
			case "j", "down":
				if a.helpCursor < len(helpItems)-1 {
					a.helpCursor++
				}
			case "k", "up":
				if a.helpCursor > 0 {
					a.helpCursor--
				}
			case "enter":
				item := helpItems[a.helpCursor]
				if item.url != "" {
					browser.Open(item.url) //nolint:errcheck // best-effort browser open
				}
			}
			return a, nil
		}

		// Detail overlay captures all keys when open
		if a.detailOpen {
			var cmd tea.Cmd
			a.detail, cmd = a.detail.Update(msg)
			if a.detail.closed {
				// Drop the whole model so nothing from this session
				// bleeds into the next one opened.
				a.detailOpen = false
				a.detail = detailModel{}
			}
			return a, cmd
		}

		// Global keys (only when not editing)
		if !a.isEditing() {
			switch msg.String() {
			case "h":
				a.helpOpen = true
				a.helpCursor = 0
				return a, nil
			case "q", "ctrl+c":
				return a, tea.Quit
			case "1":
				if a.view != viewUsers {
					a.view = viewUsers
					return a, a.users.Init()
				}
				return a, nil
			case "2":
				if a.view != viewSessions {
					a.view = viewSessions
					return a, a.sessions.Init()
				}
				return a, nil
			}
		}
	}

	// Route detail fetch results while the overlay is open; everything else
	// goes to the active screen.
	if a.detailOpen {
		switch msg.(type) {
		case answersLoadedMsg, responsesLoadedMsg, questionLoadedMsg:
			var cmd tea.Cmd
			a.detail, cmd = a.detail.Update(msg)
			return a, cmd
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewUsers:
		a.users, cmd = a.users.Update(msg)
	case viewSessions:
		a.sessions, cmd = a.sessions.Update(msg)
	}
	return a, cmd
}

func (a App) isEditing() bool {
	if a.view == viewUsers {
		return a.users.editing || a.users.state != pmClosed
	}
	return false
}

func (a App) View() string {
	logo := logoStyle.Render("C L A S S D E C K")
	logoPad := (a.width - lipgloss.Width(logo)) / 2
	if logoPad < 0 {
		logoPad = 0
	}
	header := strings.Repeat(" ", logoPad) + logo
	if a.version != "" {
		ver := metaStyle.Render("admin console " + a.version)
		verPad := (a.width - lipgloss.Width(ver)) / 2
		if verPad < 0 {
			verPad = 0
		}
		header += "\n" + strings.Repeat(" ", verPad) + ver
	} else {
		header += "\n"
	}

	type tabEntry struct {
		key  string
		name string
		v    view
	}
	tabs := []tabEntry{
		{"1", "Users", viewUsers},
		{"2", "Sessions", viewSessions},
	}
	colWidth := a.width / len(tabs)
	var tabBar strings.Builder
	for _, t := range tabs {
		var label string
		if t.v == a.view {
			label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
		} else {
			label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
		}
		labelWidth := lipgloss.Width(label)
		leftPad := (colWidth - labelWidth) / 2
		if leftPad < 0 {
			leftPad = 0
		}
		rightPad := colWidth - labelWidth - leftPad
		if rightPad < 0 {
			rightPad = 0
		}
		tabBar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
	}

	var body, help string
	switch a.view {
	case viewUsers:
		body = a.users.View()
		help = " " + helpEntry("1/2", "tabs") + "  " + a.users.helpLine() + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
	case viewSessions:
		body = a.sessions.View()
		help = " " + helpEntry("1/2", "tabs") + "  " + a.sessions.helpLine() + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
	}

	if a.detailOpen {
		body = a.detail.View()
		help = " " + helpEntry("esc", "close")
	}
	if a.helpOpen {
		body = helpView(a.helpCursor)
		help = " " + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open") + "  " + helpEntry("esc", "close")
	}

	// Chrome budget: header(2) + tabs(1) + help(1) = 4 lines + body
	body = strings.TrimRight(truncateToHeight(body, a.height-4), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n%s", header, tabBar.String(), body, help)
}
