// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scivector CLI. It converts raster
// scientific diagrams to editable SVG through the Gemini API, either in one
// shot (convert) or from an interactive terminal workspace (tui).
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scivector/internal/convert"
	"github.com/pdiddy/scivector/internal/prompt"
	"github.com/pdiddy/scivector/internal/secrets"
	"github.com/pdiddy/scivector/internal/workspace"
	"github.com/pdiddy/scivector/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// needsKey marks commands that call the model and therefore require an API key.
const needsKey = "scivector/needs-api-key"

// secretsDir holds one file per secret, named after the key.
const secretsDir = ".secrets/"

var (
	// cfg is the effective configuration, loaded before every command runs.
	cfg types.Config

	// apiKey is the resolved Gemini API key for commands marked needsKey.
	apiKey secrets.Resolution
)

// rootCmd is the base command for the scivector CLI.
var rootCmd = &cobra.Command{
	Use:   "scivector",
	Short: "Turn raster scientific diagrams into editable SVG",
	Long: `scivector sends a JPEG, PNG or WEBP diagram to Gemini together with a
style prompt and returns clean, editable SVG markup.

Use "convert" for a one-shot conversion from the command line and "tui" for
an interactive workspace with a highlighted code view, zoomable preview,
download and clipboard copy.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := secrets.LoadDotEnv(); err != nil {
			return err
		}
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("reading configuration: %w", err)
		}
		if _, ok := cmd.Annotations[needsKey]; !ok {
			return nil
		}
		return resolveAPIKey(cmd)
	},
}

func resolveAPIKey(cmd *cobra.Command) error {
	fileSecrets, err := secrets.Load(secretsDir)
	if err != nil {
		return err
	}
	flagValue, _ := cmd.Flags().GetString("api-key")

	res, err := secrets.ResolveAPIKey(flagValue, os.LookupEnv, fileSecrets)
	if err != nil {
		return fmt.Errorf("%w: pass --api-key, set %s, or write %s%s",
			err, strings.Join(secrets.EnvVars, ", "), secretsDir, secrets.GeminiKeyFile)
	}
	apiKey = res
	if res.Source == secrets.SourceFlag {
		fmt.Fprintln(os.Stderr, "Using API key from --api-key")
	} else {
		fmt.Fprintf(os.Stderr, "Using API key from %s %s\n", res.Source, res.Name)
	}
	return nil
}

// newController wires the Gemini backend, the conversion client and the
// workspace controller from the effective configuration.
func newController(log io.Writer) (*workspace.Controller, error) {
	style, err := prompt.ParseStyle(string(cfg.Style))
	if err != nil {
		return nil, err
	}

	conv := cfg.Conversion()
	conv.APIKey = apiKey.Key
	backend := convert.NewGeminiBackend(conv.AIConfig)
	backend.Log = log
	client := convert.NewClient(backend, conv, log)

	return workspace.New(client,
		workspace.WithLog(log),
		workspace.WithStyle(style),
	), nil
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./scivector.yaml or ~/.config/scivector/scivector.yaml)")
	pf.String("api-key", "", "Gemini API key (overrides environment and .secrets/)")
	pf.String("style", "", "conversion style: exact, simplified or wireframe")
	pf.String("model", "", "Gemini model identifier")
	pf.String("out", "", "directory for saved SVG files and previews")
	pf.Bool("strict", false, "fail when the model answer contains no <svg> element")

	bindFlag("style", "style")
	bindFlag("gemini.model", "model")
	bindFlag("output_dir", "out")
	bindFlag("strict_svg", "strict")

	setDefaults()
}

func bindFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func setDefaults() {
	viper.SetDefault("gemini.model", types.DefaultModel)
	viper.SetDefault("gemini.base_url", types.DefaultBaseURL)
	viper.SetDefault("gemini.thinking_budget", types.DefaultThinkingBudget)
	viper.SetDefault("gemini.timeout", "0s")
	viper.SetDefault("gemini.max_retries", 0)
	viper.SetDefault("output_dir", ".")
	viper.SetDefault("strict_svg", false)
	viper.SetDefault("style", string(types.StyleExact))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("scivector")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "scivector"))
		}
	}

	viper.SetEnvPrefix("SCIVECTOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
