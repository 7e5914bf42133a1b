// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package preview renders a generated SVG for viewing: a standalone HTML
// page with the drawing scaled to a zoom level beside its highlighted
// source, and terminal highlighting for the TUI code view.
package preview

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"time"
)

//go:embed page.html.tmpl
var pageTemplate string

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

// Page is the content of one preview page.
type Page struct {
	// Title is shown in the page header, usually the source image name.
	Title string
	// ID identifies the artifact and names the written file.
	ID string
	// Code is the SVG source. It is embedded in the page as markup.
	Code string
	// Zoom is the display scale in percent.
	Zoom int
	// CreatedAt is when the artifact was generated.
	CreatedAt time.Time
}

type pageData struct {
	Title     string
	ID        string
	SVG       template.HTML
	Source    template.HTML
	Scale     string
	Zoom      int
	CreatedAt string
}

// Render writes p as a self-contained HTML document to w.
func Render(w io.Writer, p Page) error {
	zoom := p.Zoom
	if zoom <= 0 {
		zoom = 100
	}
	created := ""
	if !p.CreatedAt.IsZero() {
		created = p.CreatedAt.Format(time.RFC3339)
	}

	return pageTmpl.Execute(w, pageData{
		Title:     p.Title,
		ID:        p.ID,
		SVG:       template.HTML(p.Code),
		Source:    template.HTML(HighlightHTML(p.Code)),
		Scale:     fmt.Sprintf("%.2f", float64(zoom)/100),
		Zoom:      zoom,
		CreatedAt: created,
	})
}

// FileName returns the preview file name for an artifact ID.
func FileName(id string) string {
	if id == "" {
		return "sci-vector-preview.html"
	}
	return "sci-vector-preview-" + id + ".html"
}

// WriteFile renders p into dir and returns the written path.
func WriteFile(dir string, p Page) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, p); err != nil {
		return "", fmt.Errorf("rendering preview: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(dir, FileName(p.ID))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
