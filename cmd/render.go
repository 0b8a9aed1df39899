package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"go-soiladvisor/models"
)

const renderWidth = 80

// 终端配色
var (
	colorPrimary = lipgloss.Color("#4caf50")
	colorMuted   = lipgloss.Color("#95a5a6")
	colorWarning = lipgloss.Color("#f39c12")
	colorError   = lipgloss.Color("#e74c3c")
	colorSuccess = lipgloss.Color("#2ecc71")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorMuted)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	errorBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorError).
			Padding(0, 1)
)

// renderer 把建议结果排版成终端文本
type renderer struct {
	md    *glamour.TermRenderer
	width int
}

func newRenderer(width int) (*renderer, error) {
	md, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return &renderer{md: md, width: width}, nil
}

// Result 渲染完整结果
func (r *renderer) Result(res models.AdvisoryResult, actions []models.Action) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Soil Nutrient Management"))
	b.WriteString("\n\n")

	c := res.Current
	fmt.Fprintf(&b, "%s N: %s mg/kg, P: %s mg/kg, K: %s mg/kg, ph: %s, Moisture: %s %%\n",
		labelStyle.Render("Current:  "), c.N, c.P, c.K, c.PH, c.Moisture)

	s := res.Suggested
	fmt.Fprintf(&b, "%s N: %s mg/kg, P: %s mg/kg, K: %s mg/kg, pH Level: %s, Moisture: %s %%\n",
		labelStyle.Render("Suggested:"), s.N, s.P, s.K, s.PH, s.Moisture)
	if !res.Extracted && !res.Failed {
		b.WriteString(warnStyle.Render("suggested levels not found in the reply, showing previous values"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("ESP32 Action"))
	b.WriteString("\n")
	for _, a := range actions {
		style := warnStyle
		if a.Code == models.ActionNormal {
			style = successStyle
		}
		b.WriteString("  ")
		b.WriteString(style.Render(a.Message))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("AI Crop Overview"))
	b.WriteString("\n")
	b.WriteString(r.overview(res))
	return b.String()
}

func (r *renderer) overview(res models.AdvisoryResult) string {
	if res.Failed {
		return errorBoxStyle.Width(r.width-2).Render(errorStyle.Render(res.Overview)) + "\n"
	}
	out, err := r.md.Render(res.Overview)
	if err != nil {
		return res.Overview + "\n"
	}
	return out
}
