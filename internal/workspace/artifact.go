// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pdiddy/scivector/internal/preview"
)

// Zoom bounds for the artifact preview, in percent.
const (
	MinZoom     = 10
	MaxZoom     = 500
	ZoomStep    = 10
	DefaultZoom = 100
)

// Clipboard receives copied SVG source.
type Clipboard interface {
	WriteAll(text string) error
}

// ZoomIn raises the preview zoom by one step and returns the new value.
func (c *Controller) ZoomIn() int {
	return c.adjustZoom(ZoomStep)
}

// ZoomOut lowers the preview zoom by one step and returns the new value.
func (c *Controller) ZoomOut() int {
	return c.adjustZoom(-ZoomStep)
}

// SetZoom sets the preview zoom, clamped to [MinZoom, MaxZoom].
func (c *Controller) SetZoom(pct int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zoom = clampZoom(pct)
	return c.zoom
}

func (c *Controller) adjustZoom(delta int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zoom = clampZoom(c.zoom + delta)
	return c.zoom
}

func clampZoom(pct int) int {
	return max(MinZoom, min(MaxZoom, pct))
}

// DownloadName returns the file name used for an SVG saved at unixMilli.
func DownloadName(unixMilli int64) string {
	return fmt.Sprintf("sci-vector-%d.svg", unixMilli)
}

// downloadAttempts bounds how many later millisecond names Download tries
// when the first one is taken.
const downloadAttempts = 1000

// Download writes the current artifact into dir as
// sci-vector-<unix-ms>.svg and returns the written path. Existing files are
// never overwritten: a taken name moves on to the next millisecond.
func (c *Controller) Download(dir string) (string, error) {
	c.mu.Lock()
	a := c.artifact
	now := c.now()
	c.mu.Unlock()

	if a == nil {
		return "", ErrNoArtifact
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	ms := now.UnixMilli()
	for i := int64(0); i < int64(downloadAttempts); i++ {
		path := filepath.Join(dir, DownloadName(ms+i))
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("creating %s: %w", path, err)
		}
		if _, err := f.WriteString(a.Code); err != nil {
			f.Close()
			return "", fmt.Errorf("writing %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Fprintf(c.log, "saved artifact %s to %s\n", a.ID, path)
		return path, nil
	}
	return "", fmt.Errorf("no free file name in %s after %d attempts", dir, downloadAttempts)
}

// Copy places the artifact's SVG source on cb.
func (c *Controller) Copy(cb Clipboard) error {
	c.mu.Lock()
	a := c.artifact
	c.mu.Unlock()

	if a == nil {
		return ErrNoArtifact
	}
	if err := CheckClipboard(cb); err != nil {
		return err
	}
	if err := cb.WriteAll(a.Code); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	return nil
}

// Preview writes an HTML page showing the artifact at the current zoom into
// dir and returns its path.
func (c *Controller) Preview(dir string) (string, error) {
	c.mu.Lock()
	a := c.artifact
	zoom := c.zoom
	name := ""
	if c.image != nil {
		name = c.image.Name
	}
	c.mu.Unlock()

	if a == nil {
		return "", ErrNoArtifact
	}
	path, err := preview.WriteFile(dir, preview.Page{
		Title:     name,
		ID:        a.ID,
		Code:      a.Code,
		Zoom:      zoom,
		CreatedAt: a.CreatedAt,
	})
	if err != nil {
		return "", err
	}
	fmt.Fprintf(c.log, "wrote preview %s\n", path)
	return path, nil
}
