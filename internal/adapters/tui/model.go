// Package tui renders build progress as a live task list with spinners.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/preppy/internal/adapters/telemetry"
	"go.trai.ch/preppy/internal/ui/style"
)

// TaskStatus represents the current state of a task.
type TaskStatus string

const (
	// StatusPending indicates the task is waiting to start.
	StatusPending TaskStatus = "Pending"
	// StatusRunning indicates the task is currently executing.
	StatusRunning TaskStatus = "Running"
	// StatusDone indicates the task completed successfully.
	StatusDone TaskStatus = "Done"
	// StatusError indicates the task failed.
	StatusError TaskStatus = "Error"
)

// TaskNode is one row of the task list.
type TaskNode struct {
	Name     string
	Status   TaskStatus
	Summary  string
	Started  time.Time
	Finished time.Time
}

// Model represents the TUI state.
type Model struct {
	Title       string
	Tasks       []*TaskNode
	TaskMap     map[string]*TaskNode
	SpanMap     map[string]*TaskNode
	Spinner     spinner.Model
	DisableTick bool
}

// NewModel creates an empty model.
func NewModel() Model {
	return Model{
		TaskMap: make(map[string]*TaskNode),
		SpanMap: make(map[string]*TaskNode),
		Spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(style.Accent)),
		),
	}
}

// WithDisableTick stops the spinner from scheduling ticks.
// Tests driving the program with synctest use it to avoid a never-ending timer.
func (m Model) WithDisableTick() Model {
	m.DisableTick = true
	return m
}

// Init starts the spinner.
func (m *Model) Init() tea.Cmd {
	if m.DisableTick {
		return nil
	}
	return m.Spinner.Tick
}

// Update handles incoming messages and updates the model state.
//
//nolint:cyclop // message dispatch
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Interrupt
		}

	case spinner.TickMsg:
		if m.DisableTick {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case telemetry.MsgPlan:
		m.Title = msg.Title
		m.Tasks = make([]*TaskNode, len(msg.Tasks))
		m.TaskMap = make(map[string]*TaskNode, len(msg.Tasks))
		m.SpanMap = make(map[string]*TaskNode)
		for i, name := range msg.Tasks {
			m.Tasks[i] = &TaskNode{Name: name, Status: StatusPending}
			m.TaskMap[name] = m.Tasks[i]
		}

	case telemetry.MsgTaskStart:
		node, ok := m.TaskMap[msg.Name]
		if !ok {
			// Watch mode rebuilds may start tasks that were never planned.
			node = &TaskNode{Name: msg.Name}
			m.Tasks = append(m.Tasks, node)
			m.TaskMap[msg.Name] = node
		}
		node.Status = StatusRunning
		node.Summary = ""
		node.Started = msg.StartTime
		m.SpanMap[msg.SpanID] = node

	case telemetry.MsgTaskComplete:
		node, ok := m.SpanMap[msg.SpanID]
		if !ok {
			return m, nil
		}
		delete(m.SpanMap, msg.SpanID)
		node.Finished = msg.EndTime
		node.Summary = msg.Summary
		if msg.Err != nil {
			node.Status = StatusError
		} else {
			node.Status = StatusDone
		}
	}

	return m, nil
}
