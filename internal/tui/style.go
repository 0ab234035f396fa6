package tui

import "github.com/charmbracelet/lipgloss"

var (
	borderASCII = lipgloss.Border{
		Top:         "-",
		Bottom:      "-",
		Left:        "|",
		Right:       "|",
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
	}

	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("24")).Bold(true).Padding(0, 1)

	paneStyle       = lipgloss.NewStyle().Border(borderASCII).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
	paneActiveStyle = paneStyle.BorderForeground(lipgloss.Color("33"))

	labelStyle         = lipgloss.NewStyle().Bold(true)
	valueMuted         = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	statusErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	statusSuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	tagStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	overdueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	priorityStyle = map[string]lipgloss.Style{
		"high":   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		"medium": lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		"low":    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	}
)
