package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/ftl/signalatlas/core"
)

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#ff4081")
	borderCol = lipgloss.Color("#243141")

	appStyle   = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)
)

// background of the spectrum, the layer colors are blended onto it
const background core.Color = "#121419"

// blend mixes the color with the background by the given opacity.
func blend(c core.Color, opacity float64) core.Color {
	r, g, b := c.RGB()
	br, bg, bb := background.RGB()
	mix := func(c, b float64) int {
		return int(255*(b+(c-b)*opacity) + 0.5)
	}
	return core.Color(fmt.Sprintf("#%02x%02x%02x", mix(r, br), mix(g, bg), mix(b, bb)))
}
