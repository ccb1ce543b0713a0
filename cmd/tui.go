/*
Copyright © 2026 Krzysztof Grykiel
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/KGrykiel/eriast-derby/internal/session"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#D75F00")).
			Padding(0, 1).
			MarginBottom(1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999"))

	standingsBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#D78700")).
				Padding(1, 2)

	logBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#04B575")).
			Padding(0, 1)

	autocompleteStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#F25D94"))

	wreckStyle = lipgloss.NewStyle().
			Strikethrough(true).
			Foreground(lipgloss.Color("#666666"))
)

type suggestion string

func (s suggestion) Title() string       { return string(s) }
func (s suggestion) Description() string { return "" }
func (s suggestion) FilterValue() string { return string(s) }

type raceModel struct {
	app         *session.Session
	textInput   textinput.Model
	viewport    viewport.Model
	suggestions list.Model
	history     []string
	historyIdx  int
	logContent  string

	// standings caches the rendered standings box; it is rebuilt only when
	// the machine reports a visible state change or the window resizes.
	standings string
	width     int
	height    int
	trackName string
	showList  bool
}

func newRaceModel(app *session.Session, trackName string) raceModel {
	ti := textinput.New()
	ti.Placeholder = "Enter command (e.g., attack ironclad)..."
	ti.Focus()
	ti.CharLimit = 128
	ti.Width = 60

	vp := viewport.New(0, 0)

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetHeight(1)
	delegate.SetSpacing(0)
	sugList := list.New([]list.Item{}, delegate, 50, 7)
	sugList.SetShowTitle(false)
	sugList.SetShowStatusBar(false)
	sugList.SetFilteringEnabled(false)
	sugList.SetShowHelp(false)

	return raceModel{
		app:         app,
		textInput:   ti,
		viewport:    vp,
		suggestions: sugList,
		history:     []string{},
		historyIdx:  -1,
		logContent:  "Engines hot. Type 'help' for commands, 'exit' to quit.",
		trackName:   trackName,
	}
}

func (m *raceModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *raceModel) updateSuggestions() {
	val := m.textInput.Value()
	var items []list.Item

	defer func() {
		m.suggestions.SetItems(items)
		m.showList = len(items) > 0
		if m.showList {
			h := len(items)
			if h > 7 {
				h = 7
			}
			if h < 4 {
				h = 4
			}
			m.suggestions.SetHeight(h)
			m.suggestions.ResetSelected()
		}
	}()

	if val == "" {
		return
	}

	baseCmds := []string{"attack ", "move", "pass", "help", "exit", "quit"}
	for _, c := range baseCmds {
		if strings.HasPrefix(strings.ToLower(c), strings.ToLower(val)) && len(val) < len(c) {
			items = append(items, suggestion(c))
		}
	}

	// Target completion when typing "attack "
	if strings.HasPrefix(strings.ToLower(val), "attack ") {
		targetPrefix := strings.ToLower(strings.TrimPrefix(strings.ToLower(val), "attack "))
		actor := m.app.Machine().CurrentActor()
		for _, v := range m.app.Machine().Vehicles() {
			if v == actor || !v.IsOperational() {
				continue
			}
			if strings.HasPrefix(strings.ToLower(v.ID), targetPrefix) {
				items = append(items, suggestion("attack "+v.ID))
			}
		}
	}
}

func (m *raceModel) refreshStandings() {
	m.standings = m.renderStandings()
}

func (m *raceModel) appendMessages() {
	for _, line := range m.app.Messages() {
		m.logContent += line + "\n"
	}
	m.viewport.SetContent(m.logContent)
	m.viewport.GotoBottom()
}

func (m *raceModel) dispatch(input string) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return
	}

	var err error
	switch fields[0] {
	case "attack":
		if len(fields) < 2 {
			err = fmt.Errorf("attack needs a target, e.g. attack ironclad")
		} else {
			err = m.app.Attack(fields[1])
		}
	case "move":
		err = m.app.Move()
	case "pass":
		err = m.app.Pass()
	case "help":
		m.logContent += "Commands:\n" +
			"  attack <vehicle>  fire your weapon at a target\n" +
			"  move              advance along the track\n" +
			"  pass              end your turn without acting\n" +
			"  exit              leave the race\n"
		return
	default:
		err = fmt.Errorf("unknown command %q, try 'help'", fields[0])
	}

	if err != nil {
		m.logContent += fmt.Sprintf("Error: %v\n", err)
	}
	m.appendMessages()

	if m.app.Machine().IsGameOver() {
		if w := m.app.Machine().Winner(); w != nil {
			m.logContent += fmt.Sprintf("\n*** %s takes the derby! ***\n", w.Name)
		} else {
			m.logContent += "\n*** The race is over. ***\n"
		}
		m.viewport.SetContent(m.logContent)
		m.viewport.GotoBottom()
	}
}

func (m *raceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		lsCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyUp:
			if m.showList {
				m.suggestions, lsCmd = m.suggestions.Update(msg)
			} else {
				if len(m.history) > 0 {
					if m.historyIdx == -1 {
						m.historyIdx = len(m.history) - 1
					} else if m.historyIdx > 0 {
						m.historyIdx--
					}
					m.textInput.SetValue(m.history[m.historyIdx])
					m.updateSuggestions()
				}
			}

		case tea.KeyDown:
			if m.showList {
				m.suggestions, lsCmd = m.suggestions.Update(msg)
			} else {
				if len(m.history) > 0 && m.historyIdx != -1 {
					if m.historyIdx < len(m.history)-1 {
						m.historyIdx++
						m.textInput.SetValue(m.history[m.historyIdx])
					} else {
						m.historyIdx = -1
						m.textInput.SetValue("")
					}
					m.updateSuggestions()
				}
			}

		case tea.KeyTab:
			if m.showList {
				if i, ok := m.suggestions.SelectedItem().(suggestion); ok {
					m.textInput.SetValue(string(i))
					m.textInput.SetCursor(len(string(i)))
					m.updateSuggestions()
				}
			}

		case tea.KeyEnter:
			val := strings.TrimSpace(m.textInput.Value())
			if val == "exit" || val == "quit" {
				return m, tea.Quit
			}

			if val != "" {
				if len(m.history) == 0 || m.history[len(m.history)-1] != val {
					m.history = append(m.history, val)
				}
				m.historyIdx = -1
				m.textInput.SetValue("")
				m.updateSuggestions()

				m.logContent += fmt.Sprintf("\n> %s\n", val)
				m.dispatch(val)
				if m.app.Machine().ShouldRefresh() {
					m.refreshStandings()
				}
			}
		default:
			m.textInput, tiCmd = m.textInput.Update(msg)
			m.updateSuggestions()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 30
		if m.viewport.Height < 5 {
			m.viewport.Height = 5
		}
		m.suggestions.SetWidth(msg.Width - 6)
		m.refreshStandings()
	}

	m.viewport, vpCmd = m.viewport.Update(msg)

	titleH := lipgloss.Height(titleStyle.Render("Dummy"))
	standingsH := lipgloss.Height(m.standings)
	inputH := 1

	listAreaHeight := 0
	if m.showList {
		listAreaHeight = m.suggestions.Height() + 2
	}

	infoH := lipgloss.Height(infoStyle.Render("Dummy"))
	paddingH := 7

	overhead := titleH + standingsH + inputH + listAreaHeight + infoH + paddingH + 4

	m.viewport.Height = m.height - overhead
	if m.viewport.Height < 4 {
		m.viewport.Height = 4
	}

	return m, tea.Batch(tiCmd, vpCmd, lsCmd)
}

func (m *raceModel) renderStandings() string {
	machine := m.app.Machine()
	view := fmt.Sprintf("=== Round %d ===\n\n", machine.Round())

	for pos, v := range m.app.Standings() {
		line := fmt.Sprintf("%d. %s  hull %d/%d  energy %d/%d  distance %d",
			pos+1, v.Name, v.Hull, v.MaxHull, v.Energy, v.Core.Capacity, v.Stage)
		if v.Destroyed {
			line = wreckStyle.Render(fmt.Sprintf("%d. %s  WRECKED (%s)", pos+1, v.Name, v.DestroyedBy))
		}
		view += line + "\n"
	}

	if !machine.IsGameOver() && machine.IsPaused() {
		view += fmt.Sprintf("\nWaiting on %s.", machine.CurrentActor().Name)
	}

	return standingsBoxStyle.Width(m.width - 4).Render(view)
}

func (m *raceModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	title := titleStyle.Render(fmt.Sprintf(" Eriast Derby | %s ", m.trackName))
	logBox := logBoxStyle.Width(m.width - 4).Render(m.viewport.View())

	var inputArea string
	if m.showList {
		inputArea = fmt.Sprintf("%s\n%s", m.textInput.View(), autocompleteStyle.Render(m.suggestions.View()))
	} else {
		inputArea = m.textInput.View()
	}

	mainView := lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.standings,
		logBox,
		"\n",
		inputArea,
		infoStyle.Render("(esc to quit, tab to complete, up/down history)"),
	)

	return mainView + strings.Repeat("\n", 7)
}

// RunTUI starts the race and opens the console on top of it.
func RunTUI(app *session.Session, trackName string) error {
	if err := app.Start(); err != nil {
		return err
	}

	m := newRaceModel(app, trackName)
	m.appendMessages()
	m.logContent = strings.TrimRight(m.logContent, "\n") + "\n"

	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
