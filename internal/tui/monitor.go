package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fmg-mcp/internal/task"
)

type TaskUpdate struct {
	TaskID  int
	State   task.State
	Percent int
	Title   string
	Lines   []TaskLine
}

type TaskLine struct {
	Name    string
	State   task.State
	Percent int
	Detail  string
}

type LogMessage struct {
	Message string
}

type WatchDone struct {
	State task.State
	Err   error
}

type Model struct {
	taskID   int
	title    string
	state    task.State
	percent  int
	lines    []TaskLine
	logs     []string
	spinner  spinner.Model
	progress progress.Model
	width    int
	height   int
	done     bool
	err      error
	quit     bool
}

func NewModel(taskID int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	pr := progress.New(progress.WithDefaultGradient())

	return Model{
		taskID:   taskID,
		state:    task.StatePending,
		logs:     []string{},
		spinner:  sp,
		progress: pr,
		width:    80,
		height:   24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.handleKeyMsg(msg) {
			m.quit = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m = m.handleWindowSizeMsg(msg)

	case TaskUpdate:
		m = m.handleTaskUpdate(msg)

	case LogMessage:
		m = m.handleLogMessage(msg)

	case WatchDone:
		m.done = true
		m.state = msg.State
		m.err = msg.Err

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		if progressModel, ok := progressModel.(progress.Model); ok {
			m.progress = progressModel
		}
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "ctrl+c":
		return true
	}
	return false
}

func (m Model) handleWindowSizeMsg(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.progress.Width = msg.Width - 40
	return m
}

func (m Model) handleTaskUpdate(msg TaskUpdate) Model {
	m.state = msg.State
	m.percent = msg.Percent
	if msg.Title != "" {
		m.title = msg.Title
	}
	if msg.Lines != nil {
		m.lines = msg.Lines
	}
	return m
}

func (m Model) handleLogMessage(msg LogMessage) Model {
	m.logs = append(m.logs, fmt.Sprintf("[%s] %s",
		time.Now().Format("15:04:05"), msg.Message))
	if len(m.logs) > 10 {
		m.logs = m.logs[len(m.logs)-10:]
	}
	return m
}

func (m Model) View() string {
	if m.quit {
		return "Shutting down...\n"
	}

	var s strings.Builder

	// Header
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginBottom(1)

	s.WriteString(headerStyle.Render(fmt.Sprintf("📡 Task %d Monitor", m.taskID)))
	s.WriteString("\n\n")

	// Summary
	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("244"))

	title := m.title
	if title == "" {
		title = "(untitled task)"
	}
	summary := fmt.Sprintf("%s | %s %s | %d%%",
		title, stateIcon(m.state), m.state, m.percent)
	s.WriteString(summaryStyle.Render(summary))
	s.WriteString("\n\n")

	// Overall progress
	taskSectionStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1).
		Width(m.width - 2)

	var taskStatus strings.Builder
	taskStatus.WriteString("📊 Progress\n")
	taskStatus.WriteString(strings.Repeat("─", 60) + "\n")

	if m.state.Terminal() {
		taskStatus.WriteString(fmt.Sprintf("%s task finished: %s\n", stateIcon(m.state), m.state))
	} else {
		taskStatus.WriteString(fmt.Sprintf("%s %s\n", m.spinner.View(), m.progress.ViewAs(float64(m.percent)/100)))
	}

	for _, line := range m.lines {
		lineText := fmt.Sprintf("%s %-20s %-10s %3d%%",
			stateIcon(line.State), truncate(line.Name, 20), line.State, line.Percent)
		if line.Detail != "" {
			lineText += " " + line.Detail
		}
		lineStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(stateColor(line.State)))
		taskStatus.WriteString(lineStyle.Render(lineText) + "\n")
	}

	s.WriteString(taskSectionStyle.Render(taskStatus.String()))
	s.WriteString("\n\n")

	// Logs section
	logSectionStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Width(m.width - 2).
		Height(8)

	var logSection strings.Builder
	logSection.WriteString("📝 Recent Updates\n")
	for _, log := range m.logs {
		logSection.WriteString(log + "\n")
	}

	s.WriteString(logSectionStyle.Render(logSection.String()))
	s.WriteString("\n\n")

	// Footer
	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	footer := "Press 'q' to quit | Logs: logs/fmg-mcp_*.log"
	if m.err != nil {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
		footer = errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + " | " + footer
	}
	s.WriteString(footerStyle.Render(footer))

	return s.String()
}

func stateIcon(state task.State) string {
	switch state {
	case task.StatePending:
		return "⏸"
	case task.StateRunning:
		return "🔄"
	case task.StateDone:
		return "✅"
	case task.StateError:
		return "❌"
	case task.StateCancelled:
		return "🚫"
	default:
		return "❓"
	}
}

func stateColor(state task.State) string {
	switch state {
	case task.StateDone:
		return "82"
	case task.StateError:
		return "196"
	case task.StateCancelled:
		return "244"
	default:
		return "39"
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
