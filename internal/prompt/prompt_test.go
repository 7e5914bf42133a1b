// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scivector/pkg/types"
)

var allStyles = []types.ConversionStyle{types.StyleExact, types.StyleSimplified, types.StyleWireframe}

func TestBuildContainsExactlyOneClause(t *testing.T) {
	for _, style := range allStyles {
		for _, instruction := range []string{"", "remove labels", "make Conv2D red"} {
			t.Run(string(style)+"/"+instruction, func(t *testing.T) {
				got, err := Build(style, instruction)
				require.NoError(t, err)

				found := 0
				for _, other := range allStyles {
					clause, ok := Clause(other)
					require.True(t, ok)
					n := strings.Count(got, clause)
					if other == style {
						assert.Equal(t, 1, n, "own clause should appear once")
					} else {
						assert.Zero(t, n, "clause for %s leaked into %s prompt", other, style)
					}
					found += n
				}
				assert.Equal(t, 1, found)
			})
		}
	}
}

func TestBuildStructure(t *testing.T) {
	got, err := Build(types.StyleWireframe, "remove labels")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "You are an expert Scientific Illustrator"))
	assert.Contains(t, got, "NEVER trace text as shapes/paths")
	assert.Contains(t, got, "<g> tags")
	assert.Contains(t, got, "text is always on top of background shapes")
	assert.Contains(t, got, "4. Specific user instructions: remove labels\n")
	assert.Contains(t, got, "Return ONLY the raw SVG code.")
	assert.Contains(t, got, "Start directly with <svg ...>")
	assert.Contains(t, got, "End with </svg>")
	assert.Contains(t, got, "Do not wrap in markdown blocks.")

	clauseAt := strings.Index(got, "Create a schematic black-and-white wireframe")
	instrAt := strings.Index(got, "Specific user instructions")
	formatAt := strings.Index(got, "Output Format:")
	assert.Less(t, clauseAt, instrAt)
	assert.Less(t, instrAt, formatAt)
}

func TestBuildWithoutInstruction(t *testing.T) {
	got, err := Build(types.StyleExact, "")
	require.NoError(t, err)
	assert.NotContains(t, got, "Specific user instructions")
}

func TestBuildKeepsWhitespaceInstruction(t *testing.T) {
	got, err := Build(types.StyleExact, "  ")
	require.NoError(t, err)
	assert.Contains(t, got, "Specific user instructions:   \n")
}

func TestBuildInstructionVerbatim(t *testing.T) {
	instruction := `keep "Conv2D" <b>bold</b> & aligned`
	got, err := Build(types.StyleSimplified, instruction)
	require.NoError(t, err)
	assert.Contains(t, got, instruction)
}

func TestBuildDeterministic(t *testing.T) {
	a, err := Build(types.StyleSimplified, "align boxes")
	require.NoError(t, err)
	b, err := Build(types.StyleSimplified, "align boxes")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildUnknownStyle(t *testing.T) {
	_, err := Build("sketchy", "")
	assert.ErrorIs(t, err, ErrUnknownStyle)
}

func TestParseStyle(t *testing.T) {
	tests := []struct {
		in      string
		want    types.ConversionStyle
		wantErr bool
	}{
		{"exact", types.StyleExact, false},
		{"  Simplified ", types.StyleSimplified, false},
		{"WIREFRAME", types.StyleWireframe, false},
		{"", types.StyleExact, false},
		{"cartoon", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStyle(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownStyle)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStylesAndNext(t *testing.T) {
	infos := Styles()
	require.Len(t, infos, 3)
	for i, info := range infos {
		assert.Equal(t, allStyles[i], info.Style)
		assert.NotEmpty(t, info.Label)
		assert.NotEmpty(t, info.Description)
	}

	infos[0].Clause = "mutated"
	clause, _ := Clause(types.StyleExact)
	assert.NotEqual(t, "mutated", clause)

	assert.Equal(t, types.StyleSimplified, Next(types.StyleExact))
	assert.Equal(t, types.StyleWireframe, Next(types.StyleSimplified))
	assert.Equal(t, types.StyleExact, Next(types.StyleWireframe))
	assert.Equal(t, types.StyleExact, Next("bogus"))
}
