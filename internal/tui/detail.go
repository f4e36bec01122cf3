package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/mirandavy/classdeck/pkg/client"
	"github.com/mirandavy/classdeck/pkg/domain"
)

// Detail fetch results carry the session they were issued for. Completions
// whose sessionID no longer matches the open session are dropped, so a slow
// response for a previously viewed session can never fill the current card.

type answersLoadedMsg struct {
	sessionID int
	answers   []domain.LoggedAnswer
	noData    string
	err       error
}

type responsesLoadedMsg struct {
	sessionID int
	responses []domain.MentorResponse
	noData    string
	err       error
}

type questionLoadedMsg struct {
	sessionID int
	question  *domain.MentorQuestion
	noData    string
	err       error
}

type detailModel struct {
	client  *client.Client
	log     *zap.Logger
	session *domain.Session

	answers []domain.LoggedAnswer
	ansDone bool
	noAns   string

	responses []domain.MentorResponse
	respDone  bool
	noResp    string

	// Fetched alongside the responses. Not rendered yet; kept for the
	// response context pane.
	question *domain.MentorQuestion
	noQues   string

	errMsg string
	closed bool
	width  int
	height int
}

func newDetailModel(c *client.Client, log *zap.Logger, session domain.Session) detailModel {
	if log == nil {
		log = zap.NewNop()
	}
	return detailModel{client: c, log: log, session: &session}
}

// load fires the three drill-down fetches for the open session.
func (m detailModel) load() tea.Cmd {
	c := m.client
	s := *m.session
	answersCmd := func() tea.Msg {
		answers, noData, err := c.GetLoggedAnswers(context.Background(), s.SessionID)
		return answersLoadedMsg{sessionID: s.SessionID, answers: answers, noData: noData, err: err}
	}
	responsesCmd := func() tea.Msg {
		responses, noData, err := c.GetMentorResponses(context.Background(), s.SessionID)
		return responsesLoadedMsg{sessionID: s.SessionID, responses: responses, noData: noData, err: err}
	}
	questionCmd := func() tea.Msg {
		question, noData, err := c.GetMentorQuestion(context.Background(), s.QuestionID)
		return questionLoadedMsg{sessionID: s.SessionID, question: question, noData: noData, err: err}
	}
	return tea.Batch(answersCmd, responsesCmd, questionCmd)
}

func (m detailModel) Update(msg tea.Msg) (detailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case answersLoadedMsg:
		if m.session == nil || msg.sessionID != m.session.SessionID {
			return m, nil
		}
		m.ansDone = true
		if msg.err != nil {
			m.errMsg = friendlyError(msg.err)
			m.log.Error("load logged answers", zap.Int("sessionID", msg.sessionID), zap.Error(msg.err))
			return m, nil
		}
		m.answers = msg.answers
		m.noAns = msg.noData
		return m, nil

	case responsesLoadedMsg:
		if m.session == nil || msg.sessionID != m.session.SessionID {
			return m, nil
		}
		m.respDone = true
		if msg.err != nil {
			m.errMsg = friendlyError(msg.err)
			m.log.Error("load mentor responses", zap.Int("sessionID", msg.sessionID), zap.Error(msg.err))
			return m, nil
		}
		m.responses = msg.responses
		m.noResp = msg.noData
		return m, nil

	case questionLoadedMsg:
		if m.session == nil || msg.sessionID != m.session.SessionID {
			return m, nil
		}
		if msg.err != nil {
			m.log.Warn("load mentor question", zap.Int("sessionID", msg.sessionID), zap.Error(msg.err))
			return m, nil
		}
		m.question = msg.question
		m.noQues = msg.noData
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			m.closed = true
		}
	}
	return m, nil
}

func (m detailModel) View() string {
	if m.session == nil {
		return "\n " + dimStyle.Render("loading...")
	}
	s := m.session

	cardWidth := min(64, m.width-4)
	if cardWidth < 40 {
		cardWidth = 40
	}
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Background(surfaceColor).
		Padding(1, 2).
		Width(cardWidth)

	var sb strings.Builder

	sb.WriteString(selectedStyle.Render(fmt.Sprintf("SESSION %d", s.SessionID)))
	module := s.ModuleName
	if module == "" {
		module = fmt.Sprintf("module #%d", s.ModuleID)
	}
	sb.WriteString("  " + accentStyle.Render(module) + "\n")

	meta := fmt.Sprintf("%s · user %d · %s · %s",
		s.SessionDate, s.UserID, domain.PlatformName(s.Platform), s.Duration())
	sb.WriteString(metaStyle.Render(meta) + "\n")
	sb.WriteString(metaStyle.Render(fmt.Sprintf("score %d", s.PlayerScore)))
	if s.Mode != "" {
		sb.WriteString(metaStyle.Render(" · " + s.Mode))
	}
	sb.WriteString("\n")

	if m.errMsg != "" {
		sb.WriteString("\n" + errorStyle.Render(m.errMsg) + "\n")
	}

	sb.WriteString("\n" + sectionHeaderStyle.Render("LOGGED ANSWERS") + "\n")
	switch {
	case !m.ansDone:
		sb.WriteString(dimStyle.Render("loading...") + "\n")
	case m.noAns != "":
		sb.WriteString(dimStyle.Render(m.noAns) + "\n")
	case len(m.answers) == 0:
		sb.WriteString(dimStyle.Render("No logged answers.") + "\n")
	default:
		for _, a := range m.answers {
			verdict := correctStyle.Render("correct")
			if !a.Correct {
				verdict = incorrectStyle.Render("incorrect")
			}
			sb.WriteString(fmt.Sprintf("%-6d %-20s %s\n",
				a.TermID, normalStyle.Render(truncStr(a.Front, 19)), verdict))
		}
	}

	sb.WriteString("\n" + sectionHeaderStyle.Render("MENTOR RESPONSES") + "\n")
	switch {
	case !m.respDone:
		sb.WriteString(dimStyle.Render("loading...") + "\n")
	case m.noResp != "":
		sb.WriteString(dimStyle.Render(m.noResp) + "\n")
	case len(m.responses) == 0:
		sb.WriteString(dimStyle.Render("No mentor responses.") + "\n")
	default:
		for _, r := range m.responses {
			sb.WriteString(normalStyle.Render(truncStr(r.Response, cardWidth-8)) + "\n")
		}
	}

	sb.WriteString("\n" + helpEntry("esc", "close"))
	return border.Render(sb.String()) + "\n"
}
