// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package preview

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const highlightStyle = "monokai"

func svgLexer() chroma.Lexer {
	lexer := lexers.Get("xml")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

func style() *chroma.Style {
	s := styles.Get(highlightStyle)
	if s == nil {
		s = styles.Fallback
	}
	return s
}

// Highlight returns code colored for a 256-color terminal. On any
// highlighting failure the code is returned unchanged.
func Highlight(code string) string {
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}
	return format(code, formatter)
}

// HighlightHTML returns code as an HTML <pre> block with inline styles.
func HighlightHTML(code string) string {
	return format(code, chromahtml.New(chromahtml.WithLineNumbers(true)))
}

func format(code string, formatter chroma.Formatter) string {
	iterator, err := svgLexer().Tokenise(nil, code)
	if err != nil {
		return code
	}
	var buf strings.Builder
	if err := formatter.Format(&buf, style(), iterator); err != nil {
		return code
	}
	return buf.String()
}
