// Package ui provides interactive terminal I/O for commitgen.
package ui

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Decision represents the user's choice at the review gate.
type Decision int

const (
	DecisionCommit Decision = iota
	DecisionEdit
	DecisionQuit
)

// String returns the string representation of a Decision.
func (d Decision) String() string {
	switch d {
	case DecisionCommit:
		return "commit"
	case DecisionEdit:
		return "edit"
	case DecisionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Spinner provides loading animation functionality.
type Spinner interface {
	Start()
	Stop()
	UpdateText(text string)
}

// Manager defines the interface for UI operations.
type Manager interface {
	ShowMessage(message string)
	PromptDecision() (Decision, error)
	PromptEditLine() (string, error)
	ShowSpinner(text string) Spinner
	ShowError(err error)
	ShowSuccess(message string)
	ShowNotice(message string)
}

// DefaultManager implements the Manager interface using charmbracelet libraries.
type DefaultManager struct {
	colorEnabled bool
	styles       *styles
}

// styles holds the lipgloss styles for UI rendering.
type styles struct {
	title      lipgloss.Style
	message    lipgloss.Style
	success    lipgloss.Style
	errorStyle lipgloss.Style
	notice     lipgloss.Style
}

// NewDefaultManager creates a new DefaultManager with the specified options.
func NewDefaultManager(colorEnabled bool) *DefaultManager {
	m := &DefaultManager{colorEnabled: colorEnabled}
	m.initStyles()
	return m
}

// initStyles initializes the lipgloss styles.
func (m *DefaultManager) initStyles() {
	if !m.colorEnabled {
		m.styles = &styles{
			title:      lipgloss.NewStyle(),
			message:    lipgloss.NewStyle(),
			success:    lipgloss.NewStyle(),
			errorStyle: lipgloss.NewStyle(),
			notice:     lipgloss.NewStyle(),
		}
		return
	}

	m.styles = &styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		message: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220")),
		success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42")),
		errorStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
		notice: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
	}
}

// ShowMessage displays the generated commit message to the user.
func (m *DefaultManager) ShowMessage(message string) {
	fmt.Println()
	fmt.Println(m.styles.title.Render("Generated Commit Message"))
	fmt.Println(strings.Repeat("-", 50))
	fmt.Println(m.styles.message.Render(message))
	fmt.Println(strings.Repeat("-", 50))
	fmt.Println()
}

// PromptDecision waits for a single classified keypress.
// Keys outside {c, e, q} are ignored and the prompt keeps waiting.
func (m *DefaultManager) PromptDecision() (Decision, error) {
	model := newDecisionModel()
	p := tea.NewProgram(model)

	finalModel, err := p.Run()
	if err != nil {
		return DecisionQuit, err
	}

	result := finalModel.(decisionModel)
	return result.selected, nil
}

// Styles for the decision prompt; rendered outside the manager's style
// table because the Bubble Tea model has no handle on the manager.
var (
	decisionKeyStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212"))
	decisionDescStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))
)

// decisionModel is the Bubble Tea model for the commit/edit/quit gate.
type decisionModel struct {
	selected Decision
	done     bool
}

func newDecisionModel() decisionModel {
	return decisionModel{selected: DecisionQuit}
}

func (m decisionModel) Init() tea.Cmd {
	return nil
}

func (m decisionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "c", "C":
			m.selected = DecisionCommit
			m.done = true
			return m, tea.Quit
		case "e", "E":
			m.selected = DecisionEdit
			m.done = true
			return m, tea.Quit
		case "q", "Q", "ctrl+c", "ctrl+d", "esc":
			m.selected = DecisionQuit
			m.done = true
			return m, tea.Quit
		}
		// Any other key: keep waiting.
	}
	return m, nil
}

func (m decisionModel) View() string {
	if m.done {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(decisionKeyStyle.Render("[c]"))
	sb.WriteString(decisionDescStyle.Render("ommit  "))
	sb.WriteString(decisionKeyStyle.Render("[e]"))
	sb.WriteString(decisionDescStyle.Render("dit  "))
	sb.WriteString(decisionKeyStyle.Render("[q]"))
	sb.WriteString(decisionDescStyle.Render("uit"))

	return sb.String()
}

// PromptEditLine collects a replacement commit message as a single line.
func (m *DefaultManager) PromptEditLine() (string, error) {
	var line string

	err := huh.NewInput().
		Title("Commit message").
		Description("Enter the message to commit with. Leave empty to cancel.").
		Value(&line).
		Run()
	if err != nil {
		return "", err
	}

	return line, nil
}

// ShowSpinner creates and returns a spinner for loading states.
func (m *DefaultManager) ShowSpinner(text string) Spinner {
	return newBubbleSpinner(text)
}

// ShowError displays an error message on the error stream.
func (m *DefaultManager) ShowError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, m.styles.errorStyle.Render("Error: "+err.Error()))
}

// ShowSuccess displays a success message to the user.
func (m *DefaultManager) ShowSuccess(message string) {
	fmt.Println(m.styles.success.Render("[OK] " + message))
}

// ShowNotice displays an informational notice.
func (m *DefaultManager) ShowNotice(message string) {
	fmt.Println(m.styles.notice.Render(message))
}

// bubbleSpinner implements Spinner using Bubble Tea.
type bubbleSpinner struct {
	text    string
	program *tea.Program
	model   *spinnerModel
	mu      sync.Mutex
}

// spinnerModel is the Bubble Tea model for the spinner.
type spinnerModel struct {
	spinner  spinner.Model
	text     string
	quitting bool
}

// spinnerTextMsg updates spinner text from outside.
type spinnerTextMsg struct {
	text string
}

// spinnerQuitMsg signals the spinner to quit.
type spinnerQuitMsg struct{}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTextMsg:
		m.text = msg.text
		return m, nil
	case spinnerQuitMsg:
		m.quitting = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.quitting {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), m.text)
}

func newBubbleSpinner(text string) *bubbleSpinner {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	model := &spinnerModel{
		spinner: s,
		text:    text,
	}

	return &bubbleSpinner{
		text:  text,
		model: model,
	}
}

func (s *bubbleSpinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.program = tea.NewProgram(s.model)
	go func() {
		_, _ = s.program.Run()
	}()
}

func (s *bubbleSpinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.program != nil {
		s.program.Send(spinnerQuitMsg{})
		time.Sleep(50 * time.Millisecond)
	}
}

func (s *bubbleSpinner) UpdateText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.text = text
	if s.program != nil {
		s.program.Send(spinnerTextMsg{text: text})
	}
}

// noopSpinner is a no-op implementation of Spinner for quiet contexts.
type noopSpinner struct{}

func (s *noopSpinner) Start()            {}
func (s *noopSpinner) Stop()             {}
func (s *noopSpinner) UpdateText(string) {}

// QuietManager implements Manager without prompts or animations.
// Used when stdout is not a terminal and in tests.
type QuietManager struct{}

// NewQuietManager creates a new QuietManager.
func NewQuietManager() *QuietManager {
	return &QuietManager{}
}

// ShowMessage prints the message with no decoration.
func (m *QuietManager) ShowMessage(message string) {
	fmt.Println(message)
}

// PromptDecision always commits in quiet mode.
func (m *QuietManager) PromptDecision() (Decision, error) {
	return DecisionCommit, nil
}

// PromptEditLine returns an empty line in quiet mode.
func (m *QuietManager) PromptEditLine() (string, error) {
	return "", nil
}

// ShowSpinner returns a no-op spinner.
func (m *QuietManager) ShowSpinner(text string) Spinner {
	return &noopSpinner{}
}

// ShowError displays an error message.
func (m *QuietManager) ShowError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
}

// ShowSuccess displays a success message.
func (m *QuietManager) ShowSuccess(message string) {
	fmt.Println(message)
}

// ShowNotice displays an informational notice.
func (m *QuietManager) ShowNotice(message string) {
	fmt.Println(message)
}
