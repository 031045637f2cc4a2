package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/preppy/internal/ui/style"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(style.Accent)

	taskPendingStyle = lipgloss.NewStyle().
				Foreground(style.Muted)

	taskRunningStyle = lipgloss.NewStyle().
				Foreground(style.Accent).
				Bold(true)

	taskDoneStyle = lipgloss.NewStyle().
			Foreground(style.Green)

	taskErrorStyle = lipgloss.NewStyle().
			Foreground(style.Red)

	summaryStyle = lipgloss.NewStyle().
			Foreground(style.Muted).
			Faint(true)
)
