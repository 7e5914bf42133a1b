// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Config prints the configuration after merging defaults, the config file,
environment variables (SCIVECTOR_*) and flags. API keys are never printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cfg
		c.Gemini = c.Gemini.WithDefaults()
		c.Gemini.APIKey = ""
		c.OutputDir = cfg.Workspace().OutputDir
		if err := writeYAML(os.Stdout, c); err != nil {
			return err
		}
		if f := viper.ConfigFileUsed(); f != "" {
			cmd.PrintErrln("# from", f)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
