// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scivector/internal/workspace"
	"github.com/pdiddy/scivector/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert IMAGE",
	Short: "Convert one raster diagram to SVG",
	Long: `Convert reads a JPEG, PNG or WEBP image (10 MB at most), asks Gemini to
redraw it as SVG in the chosen style, and saves the result as
sci-vector-<unix-ms>.svg in the output directory.

Use --prompt to add free-text instructions, --stdout to print the SVG
instead of saving it, --copy to place it on the clipboard, and --preview to
also write an HTML preview page.`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{needsKey: "true"},
	RunE:        runConvert,
}

// convertReport summarizes one conversion for --report.
type convertReport struct {
	Image       string                `yaml:"image"`
	MIMEType    string                `yaml:"mime_type"`
	Size        int64                 `yaml:"size"`
	Style       types.ConversionStyle `yaml:"style"`
	Instruction string                `yaml:"instruction,omitempty"`
	Model       string                `yaml:"model"`
	ArtifactID  string                `yaml:"artifact_id"`
	CreatedAt   time.Time             `yaml:"created_at"`
	Bytes       int                   `yaml:"bytes"`
	SavedTo     string                `yaml:"saved_to,omitempty"`
	Preview     string                `yaml:"preview,omitempty"`
	Copied      bool                  `yaml:"copied"`
}

func runConvert(cmd *cobra.Command, args []string) error {
	instruction, _ := cmd.Flags().GetString("prompt")
	toStdout, _ := cmd.Flags().GetBool("stdout")
	toClipboard, _ := cmd.Flags().GetBool("copy")
	withPreview, _ := cmd.Flags().GetBool("preview")
	report, _ := cmd.Flags().GetBool("report")

	ws, err := newController(os.Stderr)
	if err != nil {
		return err
	}
	if err := ws.SelectFile(args[0]); err != nil {
		return err
	}
	ws.SetInstruction(instruction)

	s := ws.State()
	fmt.Fprintf(os.Stderr, "Converting %s (%s) with style %s using %s\n",
		s.Image.Name, humanBytes(s.Image.Size), s.Style, cfg.Conversion().Model)

	if err := ws.Convert(cmd.Context()); err != nil {
		return err
	}
	s = ws.State()

	r := convertReport{
		Image:       s.Image.Name,
		MIMEType:    s.Image.MIMEType,
		Size:        s.Image.Size,
		Style:       s.Style,
		Instruction: s.Instruction,
		Model:       cfg.Conversion().Model,
		ArtifactID:  s.Artifact.ID,
		CreatedAt:   s.Artifact.CreatedAt,
		Bytes:       len(s.Artifact.Code),
	}

	outDir := cfg.Workspace().OutputDir
	if toStdout {
		fmt.Fprintln(os.Stdout, s.Artifact.Code)
	} else {
		path, err := ws.Download(outDir)
		if err != nil {
			return err
		}
		r.SavedTo = path
		fmt.Fprintf(os.Stderr, "Saved %s\n", path)
	}

	if withPreview {
		path, err := ws.Preview(outDir)
		if err != nil {
			return err
		}
		r.Preview = path
		fmt.Fprintf(os.Stderr, "Preview %s\n", path)
	}

	if toClipboard {
		if err := ws.Copy(workspace.SystemClipboard{}); err != nil {
			return err
		}
		r.Copied = true
		fmt.Fprintln(os.Stderr, "SVG copied to clipboard")
	}

	if report {
		return writeYAML(reportWriter(toStdout), r)
	}
	return nil
}

// reportWriter keeps the report off stdout when stdout carries the SVG.
func reportWriter(toStdout bool) io.Writer {
	if toStdout {
		return os.Stderr
	}
	return os.Stdout
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

func humanBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func init() {
	convertCmd.Flags().StringP("prompt", "p", "", "additional instructions for the model")
	convertCmd.Flags().Bool("stdout", false, "print the SVG to stdout instead of saving it")
	convertCmd.Flags().Bool("copy", false, "copy the SVG to the clipboard")
	convertCmd.Flags().Bool("preview", false, "also write an HTML preview page")
	convertCmd.Flags().Bool("report", false, "print a YAML summary of the conversion")

	rootCmd.AddCommand(convertCmd)
}
