package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/pokertrainer/analysis"
	"github.com/lox/pokertrainer/poker"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	tieStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	redSuitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

// formatCards renders cards with suit symbols, red suits colored
func formatCards(cards []poker.Card) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		if card.Suit.IsRed() {
			parts[i] = redSuitStyle.Render(card.Pretty())
		} else {
			parts[i] = card.Pretty()
		}
	}
	return strings.Join(parts, " ")
}

func formatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p*100)
}

func bucketStyle(b analysis.StrengthBucket) lipgloss.Style {
	switch b {
	case analysis.BucketStrong:
		return winStyle
	case analysis.BucketDecent:
		return tieStyle
	default:
		return lossStyle
	}
}
