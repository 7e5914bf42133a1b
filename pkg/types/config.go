// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Defaults for the Gemini backend.
const (
	DefaultModel          = "gemini-3-pro-preview"
	DefaultBaseURL        = "https://generativelanguage.googleapis.com"
	DefaultThinkingBudget = 4096
)

// AIConfig holds settings for the Generative AI API that performs the
// conversion.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "gemini-3-pro-preview").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// BaseURL is the API root; requests go to {BaseURL}/v1beta/models/{Model}:generateContent.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// ThinkingBudget bounds the reasoning tokens the model may spend
	// before answering (default 4096).
	ThinkingBudget int `json:"thinking_budget" yaml:"thinking_budget" mapstructure:"thinking_budget"`

	// Timeout is the HTTP request timeout. Zero means no timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// MaxRetries is the number of retries on HTTP 429. Zero disables retries.
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// WithDefaults returns a copy of c with zero-valued fields filled in.
func (c AIConfig) WithDefaults() AIConfig {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.ThinkingBudget <= 0 {
		c.ThinkingBudget = DefaultThinkingBudget
	}
	return c
}

// ConversionConfig holds settings for one conversion run.
type ConversionConfig struct {
	AIConfig `yaml:",inline"`

	// Style is the default conversion style.
	Style ConversionStyle `json:"style" yaml:"style"`

	// StrictSVG treats a response without an <svg> element as a failure
	// instead of passing the raw text through.
	StrictSVG bool `json:"strict_svg" yaml:"strict_svg"`
}

// WorkspaceConfig holds settings for where artifacts are written.
type WorkspaceConfig struct {
	// OutputDir receives downloaded SVG files and preview pages (default ".").
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`
}

// Config groups every setting scivector reads from flags, environment and
// the config file.
type Config struct {
	Gemini    AIConfig        `json:"gemini" yaml:"gemini" mapstructure:"gemini"`
	Style     ConversionStyle `json:"style" yaml:"style" mapstructure:"style"`
	StrictSVG bool            `json:"strict_svg" yaml:"strict_svg" mapstructure:"strict_svg"`
	OutputDir string          `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`
}

// Conversion returns the conversion-related view of c.
func (c Config) Conversion() ConversionConfig {
	return ConversionConfig{
		AIConfig:  c.Gemini.WithDefaults(),
		Style:     c.Style,
		StrictSVG: c.StrictSVG,
	}
}

// Workspace returns the workspace-related view of c.
func (c Config) Workspace() WorkspaceConfig {
	dir := c.OutputDir
	if dir == "" {
		dir = "."
	}
	return WorkspaceConfig{OutputDir: dir}
}
