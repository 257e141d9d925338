package tui

import (
	"github.com/AlexZinkM/eth-wallet-panel/internal/notify"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	cardStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(64)
	focusedCardStyle = cardStyle.BorderForeground(lipgloss.Color("63"))
	mutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	balanceStyle     = lipgloss.NewStyle().Bold(true)

	toastStyles = map[notify.Kind]lipgloss.Style{
		notify.KindSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		notify.KindInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		notify.KindError:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
)
