package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/hashdraft/pkg/application"
	"github.com/felixgeelhaar/hashdraft/pkg/domain/draft"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive drafting screen",
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv("HASHDRAFT_SKIP_TUI_RUN") == "true" {
			return nil
		}
		// Logs would tear the alt screen.
		svc, _, err := loadDraftService(io.Discard)
		if err != nil {
			return err
		}
		session, err := application.NewSession(svc)
		if err != nil {
			return fmt.Errorf("failed to start session: %w", err)
		}
		p := tea.NewProgram(newDraftModel(commandContext(cmd), session), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("tui run failed: %w", err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(tuiCmd)
}

const resultPlaceholder = "What's happening?"

// Styles
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#1D9BF0")).
			Padding(0, 1).
			MarginBottom(1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(60).
			Height(6)

	placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	statusOK         = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	statusErr        = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
)

type draftResultMsg struct {
	res draft.Result
}

type copiedMsg struct {
	err error
}

type draftModel struct {
	ctx     context.Context
	session application.Composer
	busy    func() bool

	input   textinput.Model
	spinner spinner.Model

	result string
	status string
	err    error
}

func newDraftModel(ctx context.Context, session *application.Session) draftModel {
	input := textinput.New()
	input.Placeholder = "#hashtags goes here!"
	input.CharLimit = 280
	input.Width = 56
	input.SetValue(session.Text())
	input.CursorEnd()
	input.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))

	return draftModel{
		ctx:     ctx,
		session: session,
		busy:    session.Busy,
		input:   input,
		spinner: s,
	}
}

func (m draftModel) Init() tea.Cmd {
	return textinput.Blink
}

func waitForDraft(ch <-chan draft.Result) tea.Cmd {
	return func() tea.Msg {
		return draftResultMsg{res: <-ch}
	}
}

func copyResult(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: copyToClipboard(text)}
	}
}

func (m draftModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			return m.submit()
		case "ctrl+y":
			if m.result == "" {
				return m, nil
			}
			return m, copyResult(m.result)
		}

	case draftResultMsg:
		if msg.res.OK() {
			m.result = strings.TrimSpace(msg.res.Text)
			m.err = nil
			m.status = ""
		} else {
			m.err = MapError(msg.res.Err)
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.err = NewCLIError("failed to copy to clipboard", "", msg.err)
			return m, nil
		}
		m.status = "Copied to clipboard"
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	prev := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if next := m.input.Value(); next != prev {
		if formatted := m.session.TextChanged(next); formatted != next {
			m.input.SetValue(formatted)
			m.input.CursorEnd()
		}
		m.status = ""
	}
	return m, cmd
}

func (m draftModel) submit() (tea.Model, tea.Cmd) {
	if m.busy() {
		return m, nil
	}
	ch, err := m.session.Commit(m.ctx)
	if err != nil {
		m.err = MapError(err)
		return m, nil
	}
	m.err = nil
	m.status = ""
	return m, tea.Batch(m.spinner.Tick, waitForDraft(ch))
}

func (m draftModel) View() string {
	header := headerStyle.Render("hashdraft")

	var panel string
	switch {
	case m.busy():
		panel = panelStyle.Render(m.spinner.View() + " Drafting...")
	case m.result != "":
		panel = panelStyle.Render(m.result)
	default:
		panel = panelStyle.Render(placeholderStyle.Render(resultPlaceholder))
	}

	lines := []string{header, panel, m.input.View()}
	if m.err != nil {
		msg := m.err.Error()
		var cliErr *CLIError
		if errors.As(m.err, &cliErr) && cliErr.Hint != "" {
			msg += "\n" + cliErr.Hint
		}
		lines = append(lines, statusErr.Render(msg))
	}
	if m.status != "" {
		lines = append(lines, statusOK.Render(m.status))
	}

	help := "[enter] Draft tweet  [esc] Quit"
	if m.result != "" {
		help = "[enter] Draft tweet  [ctrl+y] Copy to clipboard  [esc] Quit"
	}
	lines = append(lines, helpStyle.Render(help))

	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}
