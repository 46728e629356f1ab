// Package onboarding is the first-run setup wizard. It walks through the
// agent backend, LLM provider, model, Telegram token and middlewares, then
// writes the YAML configuration.
package onboarding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mudabbir/internal/agents"
	"mudabbir/internal/config"
	"mudabbir/internal/httpx"
	"mudabbir/internal/middleware"
	_ "mudabbir/middlewares/autoload"
	mwfastpath "mudabbir/middlewares/fastpath"
)

var (
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	titleStyle   = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")).
			Padding(0, 1).
			Bold(true)

	docStyle = lipgloss.NewStyle().Padding(1, 2)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(lipgloss.Color("205")).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().Padding(0, 1)

	windowStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1)
)

type state int

const (
	stateBackend state = iota
	stateProvider
	stateAPIKey
	stateModel
	stateTelegram
	stateMiddlewares
	stateDone
)

var tabs = []string{"Backend", "Provider", "Model", "Telegram", "Middlewares", "Finish"}

func (s state) tab() int {
	switch {
	case s <= stateProvider:
		return int(s)
	case s == stateAPIKey:
		return 1
	}
	return int(s) - 1
}

type item struct {
	title, desc string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title }

type toggle struct {
	id      string
	enabled bool
}

type savedMsg struct{ err error }

// Model is the bubbletea model of the wizard.
type Model struct {
	state state
	cfg   config.Config
	path  string

	list        list.Model
	input       textinput.Model
	middlewares []toggle
	cursor      int

	discover func() []item
	saved    bool
	err      error
	quitting bool
	width    int
	height   int
}

// NewModel starts the wizard from base, which is written to path at the end.
func NewModel(base *config.Config, path string) Model {
	if base == nil {
		base = config.Default()
	}
	backends := make([]list.Item, 0, len(agents.Infos()))
	for _, info := range agents.Infos() {
		desc := info.DisplayName + ": " + info.Description
		if info.Beta {
			desc += " (beta)"
		}
		backends = append(backends, item{title: info.Name, desc: desc})
	}
	l := list.New(backends, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Select Agent Backend"
	l.SetShowHelp(false)

	ti := textinput.New()
	ti.Focus()

	disabled := make(map[string]bool, len(base.Middlewares.Disabled))
	for _, id := range base.Middlewares.Disabled {
		disabled[id] = true
	}
	ids := []string{mwfastpath.ID}
	for _, mw := range middleware.Registered() {
		ids = append(ids, mw.ID())
	}
	sort.Strings(ids)
	toggles := make([]toggle, 0, len(ids))
	for _, id := range ids {
		toggles = append(toggles, toggle{id: id, enabled: !disabled[id]})
	}

	return Model{
		state:       stateBackend,
		cfg:         *base,
		path:        path,
		list:        l,
		input:       ti,
		middlewares: toggles,
		discover:    func() []item { return ollamaModels(base.LLM.BaseURL) },
	}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "q":
			if m.state != stateAPIKey && m.state != stateTelegram && !m.list.SettingFilter() {
				m.quitting = true
				return m, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width-10, msg.Height-15)
	case savedMsg:
		m.saved, m.err = msg.err == nil, msg.err
		return m, nil
	}

	enter := false
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "enter" {
		enter = true
	}

	var cmd tea.Cmd
	switch m.state {
	case stateBackend:
		m.list, cmd = m.list.Update(msg)
		if i, ok := m.list.SelectedItem().(item); ok && enter {
			m.cfg.Agent.Backend = i.title
			m.state = stateProvider
			m.list.SetItems([]list.Item{
				item{title: "ollama", desc: "Local execution via Ollama"},
				item{title: "openai", desc: "OpenAI GPT models (requires API key)"},
				item{title: "anthropic", desc: "Claude models (requires API key)"},
				item{title: "gemini", desc: "Google Gemini models (requires API key)"},
			})
			m.list.Title = "Select LLM Provider"
			m.list.ResetSelected()
		}

	case stateProvider:
		m.list, cmd = m.list.Update(msg)
		if i, ok := m.list.SelectedItem().(item); ok && enter {
			if i.title != m.cfg.LLM.Provider {
				m.cfg.LLM.BaseURL = ""
				m.cfg.LLM.APIKey = ""
			}
			m.cfg.LLM.Provider = i.title
			if i.title == "ollama" {
				m.toModels(m.discover(), "Select Local Model")
			} else {
				m.state = stateAPIKey
				m.input.Prompt = providerTitle(i.title) + " API key: "
				m.input.Placeholder = "leave empty to use the environment"
				m.input.EchoMode = textinput.EchoPassword
				m.input.SetValue("")
			}
		}

	case stateAPIKey:
		m.input, cmd = m.input.Update(msg)
		if enter {
			m.cfg.LLM.APIKey = strings.TrimSpace(m.input.Value())
			m.toModels(cloudModels(m.cfg.LLM.Provider), "Select Cloud Model")
		}

	case stateModel:
		m.list, cmd = m.list.Update(msg)
		if i, ok := m.list.SelectedItem().(item); ok && enter {
			m.cfg.LLM.Model = i.title
			m.state = stateTelegram
			m.input.Prompt = "Telegram bot token (optional): "
			m.input.Placeholder = ""
			m.input.EchoMode = textinput.EchoPassword
			m.input.SetValue(m.cfg.Telegram.Token)
		}

	case stateTelegram:
		m.input, cmd = m.input.Update(msg)
		if enter {
			m.cfg.Telegram.Token = strings.TrimSpace(m.input.Value())
			m.state = stateMiddlewares
		}

	case stateMiddlewares:
		if k, ok := msg.(tea.KeyMsg); ok {
			switch k.String() {
			case "up", "k":
				if m.cursor > 0 {
					m.cursor--
				}
			case "down", "j":
				if m.cursor < len(m.middlewares)-1 {
					m.cursor++
				}
			case " ":
				m.middlewares[m.cursor].enabled = !m.middlewares[m.cursor].enabled
			case "enter":
				m.cfg.Middlewares.Disabled = nil
				for _, t := range m.middlewares {
					if !t.enabled {
						m.cfg.Middlewares.Disabled = append(m.cfg.Middlewares.Disabled, t.id)
					}
				}
				m.state = stateDone
				return m, m.save()
			}
		}

	case stateDone:
		if _, ok := msg.(tea.KeyMsg); ok {
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, cmd
}

func (m *Model) toModels(models []item, title string) {
	items := make([]list.Item, len(models))
	for i, it := range models {
		items[i] = it
	}
	m.list.SetItems(items)
	m.list.Title = title
	m.list.ResetSelected()
	m.state = stateModel
}

func (m Model) save() tea.Cmd {
	cfg, path := m.cfg, m.path
	return func() tea.Msg {
		return savedMsg{err: cfg.Save(path)}
	}
}

// Config returns the configuration chosen so far.
func (m Model) Config() config.Config { return m.cfg }

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render(" Mudabbir Setup "))
	s.WriteString("\n\n")

	rendered := make([]string, len(tabs))
	for i, t := range tabs {
		if i == m.state.tab() {
			rendered[i] = activeTabStyle.Render(t)
		} else {
			rendered[i] = inactiveTabStyle.Render(t)
		}
	}
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	s.WriteString("\n\n")

	var content string
	switch m.state {
	case stateBackend, stateProvider, stateModel:
		content = m.list.View()
	case stateAPIKey, stateTelegram:
		content = "\n" + m.input.View() + "\n\n" + helpStyle.Render("Press enter to continue")
	case stateMiddlewares:
		var b strings.Builder
		b.WriteString("Toggle middlewares with [SPACE], press [ENTER] to finish.\n\n")
		for i, t := range m.middlewares {
			cursor, checked := " ", " "
			if m.cursor == i {
				cursor = ">"
			}
			if t.enabled {
				checked = "x"
			}
			line := fmt.Sprintf("%s [%s] %s", cursor, checked, t.id)
			if m.cursor == i {
				line = focusedStyle.Render(line)
			}
			b.WriteString(line + "\n")
		}
		content = b.String()
	case stateDone:
		switch {
		case m.err != nil:
			content = errorStyle.Render("Could not save configuration: "+m.err.Error()) + "\n\nPress any key to exit."
		case m.saved:
			content = fmt.Sprintf("\nSaved configuration to %s.\nRun `mudabbir serve` to start. Press any key to exit.", m.path)
		default:
			content = "\nSaving configuration to " + m.path + "..."
		}
	}

	s.WriteString(windowStyle.Width(max(m.width-10, 20)).Render(content))
	if m.state != stateDone {
		s.WriteString("\n\n" + helpStyle.Render("q/ctrl+c: quit • ↑/↓: navigate • enter: select"))
	}
	return docStyle.Render(s.String())
}

func providerTitle(p string) string {
	switch p {
	case "openai":
		return "OpenAI"
	case "anthropic":
		return "Anthropic"
	case "gemini":
		return "Gemini"
	}
	return p
}

func cloudModels(provider string) []item {
	switch provider {
	case "openai":
		return []item{{title: "gpt-4o", desc: "Best OpenAI model"}, {title: "gpt-4o-mini", desc: "Fast OpenAI model"}}
	case "anthropic":
		return []item{{title: "claude-sonnet-4-5", desc: "Best Anthropic model"}, {title: "claude-haiku-4-5", desc: "Fast Anthropic model"}}
	}
	return []item{{title: "gemini-2.5-flash", desc: "Fast Google model"}, {title: "gemini-2.5-pro", desc: "Powerful Google model"}}
}

// ollamaModels lists the models pulled into a local Ollama server.
func ollamaModels(baseURL string) []item {
	fallback := []item{{title: "llama3.2", desc: "Default (Ollama not responding)"}}
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(baseURL, "/")+"/api/tags", nil)
	if err != nil {
		return fallback
	}
	resp, err := httpx.NewClient(0).Do(req)
	if err != nil {
		return fallback
	}
	defer resp.Body.Close()

	var data struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil || len(data.Models) == 0 {
		return fallback
	}
	items := make([]item, len(data.Models))
	for i, m := range data.Models {
		items[i] = item{title: m.Name, desc: "Local Ollama model"}
	}
	return items
}

// Run shows the wizard and returns the saved configuration.
func Run(base *config.Config, path string) (*config.Config, error) {
	final, err := tea.NewProgram(NewModel(base, path), tea.WithAltScreen()).Run()
	if err != nil {
		return nil, err
	}
	m := final.(Model)
	if m.err != nil {
		return nil, m.err
	}
	if !m.saved {
		return nil, fmt.Errorf("setup cancelled")
	}
	cfg := m.cfg
	return &cfg, nil
}
