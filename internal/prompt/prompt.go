// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt composes the instruction sent to the model alongside the
// image: a fixed editability preamble, one style clause, the user's own
// instruction and the output-format directive.
package prompt

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/pdiddy/scivector/pkg/types"
)

// ErrUnknownStyle is returned for a style outside the fixed set.
var ErrUnknownStyle = errors.New("unknown conversion style")

// StyleInfo describes a conversion style for menus and help output.
type StyleInfo struct {
	Style       types.ConversionStyle `json:"style" yaml:"style"`
	Label       string                `json:"label" yaml:"label"`
	Description string                `json:"description" yaml:"description"`
	Clause      string                `json:"-" yaml:"-"`
}

// styles is the single source of truth for style clauses, in menu order.
var styles = []StyleInfo{
	{
		Style:       types.StyleExact,
		Label:       "Paper-grade fidelity",
		Description: "every label editable, original colors kept",
		Clause: "Strictly preserve the original layout and colors. CRITICAL: All text labels must be recognized " +
			"and generated as editable <text> elements, NOT paths. Use standard fonts (Arial, Helvetica) " +
			"for maximum compatibility with research papers.",
	},
	{
		Style:       types.StyleSimplified,
		Label:       "Simplified / flat",
		Description: "cleaned-up lines, good for redrawing old figures",
		Clause: "Simplify the diagram for clarity. Flatten gradients to solid colors, straighten hand-drawn " +
			"lines, and align uneven elements. Ensure all text is editable <text>.",
	},
	{
		Style:       types.StyleWireframe,
		Label:       "Black & white wireframe",
		Description: "structure only, ready to be recolored",
		Clause: "Create a schematic black-and-white wireframe. Remove all fill colors. Use clean strokes for " +
			"boxes and arrows. All text must be editable black <text>.",
	},
}

// clauses indexes styles by key.
var clauses = func() map[types.ConversionStyle]string {
	m := make(map[types.ConversionStyle]string, len(styles))
	for _, s := range styles {
		m[s.Style] = s.Clause
	}
	return m
}()

var promptTmpl = template.Must(template.New("svg").Parse(`You are an expert Scientific Illustrator and SVG Developer specializing in academic publications.

User Goal: The user needs to convert the attached raster image (likely a neural network architecture, flowchart, or data plot) into a fully editable SVG to include in a research paper.

CRITICAL REQUIREMENTS FOR EDITABILITY:
1. Text as Text: NEVER trace text as shapes/paths. You MUST use <text> elements. If the font is unknown, use generic "Arial, sans-serif".
2. Grouping: Logically group related elements (e.g., a rectangle box and the text inside it) using <g> tags.
3. Clean Shapes: Use <rect>, <circle>, and <path> for arrows. Ensure lines connecting boxes are straight and orthogonal where appropriate.
4. Layering: Ensure text is always on top of background shapes.

Task:
1. Analyze the structure of the scientific diagram.
2. Recreate it as a high-quality SVG.
3. {{.Clause}}
{{- if .Instruction}}
4. Specific user instructions: {{.Instruction}}
{{- end}}

Output Format:
- Return ONLY the raw SVG code.
- Start directly with <svg ...>
- End with </svg>
- Do not wrap in markdown blocks.
`))

// Build returns the prompt for style with the optional user instruction
// appended verbatim. The result depends only on its arguments.
func Build(style types.ConversionStyle, instruction string) (string, error) {
	clause, ok := clauses[style]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStyle, style)
	}

	var buf bytes.Buffer
	err := promptTmpl.Execute(&buf, struct {
		Clause      string
		Instruction string
	}{clause, instruction})
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	return buf.String(), nil
}

// Clause returns the style-specific clause for style.
func Clause(style types.ConversionStyle) (string, bool) {
	c, ok := clauses[style]
	return c, ok
}

// Styles lists the supported styles in menu order.
func Styles() []StyleInfo {
	out := make([]StyleInfo, len(styles))
	copy(out, styles)
	return out
}

// ParseStyle maps user input to a style, ignoring case and surrounding
// space. An empty string selects types.StyleExact.
func ParseStyle(s string) (types.ConversionStyle, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return types.StyleExact, nil
	}
	style := types.ConversionStyle(s)
	if _, ok := clauses[style]; !ok {
		return "", fmt.Errorf("%w: %q (use exact, simplified or wireframe)", ErrUnknownStyle, s)
	}
	return style, nil
}

// Next returns the style after s in menu order, wrapping around.
func Next(s types.ConversionStyle) types.ConversionStyle {
	for i, info := range styles {
		if info.Style == s {
			return styles[(i+1)%len(styles)].Style
		}
	}
	return styles[0].Style
}
