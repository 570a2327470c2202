package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"sajumatch/internal/compat"
	"sajumatch/internal/element"
	"sajumatch/internal/outlook"
)

var (
	mutedColor     = lipgloss.Color("#6b7280")
	favorableColor = lipgloss.Color("#16a34a")
	cautionColor   = lipgloss.Color("#ea580c")

	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(mutedColor)
)

// elementColors follows the traditional five-colour scheme.
var elementColors = map[element.Element]lipgloss.Color{
	element.Wood:  lipgloss.Color("#16a34a"),
	element.Fire:  lipgloss.Color("#dc2626"),
	element.Earth: lipgloss.Color("#ca8a04"),
	element.Metal: lipgloss.Color("#9ca3af"),
	element.Water: lipgloss.Color("#2563eb"),
}

func colorsOn() bool { return cfg.Output.Color }

func styled(s lipgloss.Style, text string) string {
	if !colorsOn() {
		return text
	}
	return s.Render(text)
}

// tierBadge renders a tier label in its display colour.
func tierBadge(t compat.Tier) string {
	return styled(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Color())), t.String())
}

func elementLabel(e element.Element) string {
	return styled(lipgloss.NewStyle().Foreground(elementColors[e]), e.String())
}

func relationLabel(r outlook.Relation) string {
	switch {
	case r.Favorable():
		return styled(lipgloss.NewStyle().Foreground(favorableColor), r.String())
	case r == outlook.Neutral:
		return styled(mutedStyle, r.String())
	default:
		return styled(lipgloss.NewStyle().Foreground(cautionColor), r.String())
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return styled(mutedStyle, "-")
}

// writeJSON prints v as indented JSON on stdout.
func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
