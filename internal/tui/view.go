// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/scivector/internal/prompt"
	"github.com/pdiddy/scivector/internal/workspace"
	"github.com/pdiddy/scivector/pkg/types"
)

func (m Model) View() string {
	s := m.ws.State()

	var b strings.Builder
	b.WriteString(m.renderHeader(s))
	b.WriteString("\n\n")
	b.WriteString(m.renderInputs(s))
	b.WriteString("\n")

	switch s.Processing.Status {
	case types.StatusError:
		b.WriteString(errorPanelStyle.Render(
			"Conversion failed\n\n" + s.Processing.Message + "\n\n" + mutedStyle.Render("a: dismiss   enter: retry"),
		))
	case types.StatusProcessing:
		b.WriteString(panelStyle.Render(m.spinner.View() + " Converting to SVG..."))
	case types.StatusCompleted:
		b.WriteString(m.renderArtifact(s))
	default:
		if s.Image == nil {
			b.WriteString(panelStyle.Render(mutedStyle.Render(
				"Drop an image path here, press o to type one, or ctrl+v to paste one.",
			)))
		}
	}
	b.WriteString("\n")

	if m.message != "" {
		style := successStyle
		if m.isError {
			style = errorStyle
		}
		b.WriteString(style.Render(m.message))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderHeader(s workspace.State) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render("SciVector"),
		mutedStyle.Render("  raster diagrams to editable SVG  "),
		statusBadge(s.Processing.Status),
	)
}

func (m Model) renderInputs(s workspace.State) string {
	var b strings.Builder

	switch {
	case m.mode == modePath:
		b.WriteString(m.pathInput.View())
	case s.Image != nil:
		b.WriteString(labelStyle.Render("Image"))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%s  %s  %s", s.Image.Name, s.Image.MIMEType, humanSize(s.Image.Size))))
	default:
		b.WriteString(labelStyle.Render("Image"))
		b.WriteString(mutedStyle.Render("none"))
	}
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Style"))
	for i, info := range prompt.Styles() {
		if i > 0 {
			b.WriteString(mutedStyle.Render(" · "))
		}
		if info.Style == s.Style {
			b.WriteString(selectedStyle.Render("▸ " + info.Label))
		} else {
			b.WriteString(mutedStyle.Render(info.Label))
		}
	}
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Instructions"))
	if m.mode == modeInstruction {
		b.WriteString("\n")
		b.WriteString(m.instruction.View())
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("esc: done"))
	} else if v := strings.TrimSpace(m.instruction.Value()); v != "" {
		b.WriteString(valueStyle.Render(v))
	} else {
		b.WriteString(mutedStyle.Render("(optional)"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderArtifact(s workspace.State) string {
	header := fmt.Sprintf("Generated SVG  %d%%  %s", s.Zoom, s.Artifact.CreatedAt.Format("15:04:05"))
	return panelStyle.Render(titleStyle.Render(header) + "\n" + m.code.View())
}

func statusBadge(st types.ProcessingStatus) string {
	switch st {
	case types.StatusProcessing:
		return titleStyle.Render("[processing]")
	case types.StatusCompleted:
		return successStyle.Render("[completed]")
	case types.StatusError:
		return errorStyle.Render("[error]")
	default:
		return mutedStyle.Render("[" + string(st) + "]")
	}
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMG"[exp])
}
