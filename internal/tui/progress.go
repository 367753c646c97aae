package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const progressWidth = 40

var (
	userStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	botStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	progressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// ProgressBar renders e.g. "[||||----] 50.00% Complete".
func ProgressBar(step, total int) string {
	if total <= 0 {
		total, step = 1, 0
	}
	step = min(max(step, 0), total)
	filled := progressWidth * step / total
	bar := strings.Repeat("|", filled) + strings.Repeat("-", progressWidth-filled)
	percent := float64(step) / float64(total) * 100
	return progressStyle.Render(fmt.Sprintf("[%s] %.2f%% Complete", bar, percent))
}
