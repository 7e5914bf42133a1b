// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scivector/internal/convert"
	"github.com/pdiddy/scivector/internal/preview"
	"github.com/pdiddy/scivector/internal/workspace"
)

var previewCmd = &cobra.Command{
	Use:   "preview SVG",
	Short: "Write an HTML preview page for an SVG file",
	Long: `Preview wraps an existing SVG file in a standalone HTML page that shows
the drawing at the requested zoom next to its highlighted source. With
--print the highlighted source is written to the terminal instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func runPreview(cmd *cobra.Command, args []string) error {
	zoom, _ := cmd.Flags().GetInt("zoom")
	printSource, _ := cmd.Flags().GetBool("print")

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	code, ok := convert.ExtractSVG(string(data))
	if !ok {
		return fmt.Errorf("%s contains no <svg> element", args[0])
	}

	if printSource {
		fmt.Fprintln(os.Stdout, preview.Highlight(code))
		return nil
	}

	name := filepath.Base(args[0])
	path, err := preview.WriteFile(cfg.Workspace().OutputDir, preview.Page{
		Title: name,
		ID:    strings.TrimSuffix(name, filepath.Ext(name)),
		Code:  code,
		Zoom:  max(workspace.MinZoom, min(workspace.MaxZoom, zoom)),
	})
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func init() {
	previewCmd.Flags().Int("zoom", workspace.DefaultZoom, "display scale in percent (10-500)")
	previewCmd.Flags().Bool("print", false, "print highlighted source to the terminal")

	rootCmd.AddCommand(previewCmd)
}
