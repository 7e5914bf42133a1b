// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scivector/internal/prompt"
)

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List the available conversion styles",
	RunE: func(cmd *cobra.Command, args []string) error {
		asYAML, _ := cmd.Flags().GetBool("yaml")
		if asYAML {
			return writeYAML(os.Stdout, prompt.Styles())
		}
		for _, s := range prompt.Styles() {
			fmt.Printf("%-11s %-22s %s\n", s.Style, s.Label, s.Description)
		}
		return nil
	},
}

func init() {
	stylesCmd.Flags().Bool("yaml", false, "print styles as YAML")

	rootCmd.AddCommand(stylesCmd)
}
