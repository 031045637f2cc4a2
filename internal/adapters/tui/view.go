package tui

import (
	"strings"
	"time"

	"go.trai.ch/preppy/internal/ui/style"
)

// View renders the headline followed by one row per task.
func (m *Model) View() string {
	var s strings.Builder

	if m.Title != "" {
		s.WriteString(titleStyle.Render(m.Title) + "\n")
	}

	for _, task := range m.Tasks {
		s.WriteString(m.renderTaskRow(task) + "\n")
	}

	return s.String()
}

func (m *Model) renderTaskRow(task *TaskNode) string {
	switch task.Status {
	case StatusRunning:
		return m.Spinner.View() + " " + taskRunningStyle.Render(task.Name)
	case StatusDone:
		row := taskDoneStyle.Render(style.Check + " " + task.Name)
		if task.Summary != "" {
			row += " " + summaryStyle.Render(task.Summary)
		}
		return row
	case StatusError:
		elapsed := task.Finished.Sub(task.Started).Round(time.Millisecond)
		return taskErrorStyle.Render(style.Cross+" "+task.Name) + " " + summaryStyle.Render("failed after "+elapsed.String())
	default:
		return taskPendingStyle.Render(style.Circle + " " + task.Name)
	}
}
