// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns a raster image into SVG markup by asking a
// generative model to redraw it. The Backend interface isolates the model
// API so tests can supply a mock; Client adds prompt composition, SVG
// extraction and error mapping on top.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"

	"github.com/pdiddy/scivector/internal/imagefile"
	"github.com/pdiddy/scivector/internal/prompt"
	"github.com/pdiddy/scivector/pkg/types"
)

// ErrConversionFailed is the only error callers see when the model call
// fails or returns nothing usable. The cause goes to Client.Log.
var ErrConversionFailed = errors.New("failed to convert image to SVG, please try again")

// errEmptyResponse is logged when the model answers without any text.
var errEmptyResponse = errors.New("model returned no text")

// errNoSVG is logged in strict mode when the answer has no <svg> element.
var errNoSVG = errors.New("model response contains no <svg> element")

// svgPattern matches the first, shortest <svg ...>...</svg> span.
var svgPattern = regexp.MustCompile(`<svg[\s\S]*?</svg>`)

// Request is one image-plus-prompt call to a model backend.
type Request struct {
	// ImageData is the base64-encoded image without a data URI prefix.
	ImageData string
	MIMEType  string
	Prompt    string
}

// Backend abstracts the Generative AI API. Generate returns the concatenated
// text of the model's answer.
type Backend interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Client converts images to SVG through a Backend.
type Client struct {
	Backend Backend

	// Strict rejects responses that contain no <svg> element instead of
	// passing the raw text through.
	Strict bool

	// Log receives the underlying cause of failed conversions. Nil discards.
	Log io.Writer
}

// NewClient returns a Client for backend using the strictness from cfg.
func NewClient(backend Backend, cfg types.ConversionConfig, log io.Writer) *Client {
	return &Client{Backend: backend, Strict: cfg.StrictSVG, Log: log}
}

// Convert encodes img, composes the prompt for style and instruction, and
// returns the SVG extracted from the model's answer. It blocks until the
// backend replies or fails.
func (c *Client) Convert(ctx context.Context, img types.UploadedImage, style types.ConversionStyle, instruction string) (string, error) {
	text, err := prompt.Build(style, instruction)
	if err != nil {
		return "", err
	}

	req := Request{
		ImageData: imagefile.StripDataURI(imagefile.Encode(img)),
		MIMEType:  img.MIMEType,
		Prompt:    text,
	}

	answer, err := c.Backend.Generate(ctx, req)
	if err != nil {
		return "", c.fail(img, err)
	}
	if answer == "" {
		return "", c.fail(img, errEmptyResponse)
	}

	svg, ok := ExtractSVG(answer)
	if !ok && c.Strict {
		return "", c.fail(img, errNoSVG)
	}
	return svg, nil
}

func (c *Client) fail(img types.UploadedImage, cause error) error {
	if c.Log != nil {
		fmt.Fprintf(c.Log, "conversion of %s failed: %v\n", img.Name, cause)
	}
	return ErrConversionFailed
}

// ExtractSVG returns the first <svg>...</svg> span in text. When there is
// none it returns text unchanged and false.
func ExtractSVG(text string) (string, bool) {
	if m := svgPattern.FindString(text); m != "" {
		return m, true
	}
	return text, false
}
