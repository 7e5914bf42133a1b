// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pdiddy/scivector/internal/tui"
	"github.com/pdiddy/scivector/internal/workspace"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [IMAGE]",
	Short: "Open the interactive conversion workspace",
	Long: `Tui opens a full-screen workspace. Pick an image by typing, pasting or
dropping its path, choose a style, add instructions, and convert. The
generated SVG is shown with syntax highlighting and can be zoomed, saved,
copied, or written as an HTML preview.

The terminal is owned by the interface, so diagnostics go to --log-file.`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{needsKey: "true"},
	RunE:        runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	logFile, _ := cmd.Flags().GetString("log-file")

	var log io.Writer = io.Discard
	if logFile != "" {
		f, err := tea.LogToFile(logFile, "scivector")
		if err != nil {
			return err
		}
		defer f.Close()
		log = f
	}

	ws, err := newController(log)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		if err := ws.SelectFile(args[0]); err != nil {
			return err
		}
	}

	return tui.Run(cmd.Context(), ws, tui.Options{
		OutputDir: cfg.Workspace().OutputDir,
		Clipboard: workspace.SystemClipboard{},
		Log:       log,
	})
}

func init() {
	tuiCmd.Flags().String("log-file", "", "append diagnostics to this file")

	rootCmd.AddCommand(tuiCmd)
}
