// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workspace holds the state of one conversion session: the selected
// image, the chosen style and instruction, the processing status and the
// generated artifact. Front ends drive it through Controller; the state
// machine is
//
//	idle ──Start──▶ processing ──Complete──▶ completed
//	                     │                       │
//	                     └────────▶ error ◀──────┘ (next Start)
//	error ──Acknowledge──▶ idle,   any ──Clear──▶ idle
//
// Only one conversion may be in flight. Select and Clear invalidate the
// in-flight request so a late response cannot overwrite newer state.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/scivector/internal/imagefile"
	"github.com/pdiddy/scivector/internal/prompt"
	"github.com/pdiddy/scivector/pkg/types"
)

var (
	// ErrNoImage is returned by Start when no image is selected.
	ErrNoImage = errors.New("select an image before converting")
	// ErrBusy is returned by Start while a conversion is in flight.
	ErrBusy = errors.New("a conversion is already in progress")
	// ErrNotInError is returned by Acknowledge outside the error phase.
	ErrNotInError = errors.New("nothing to acknowledge")
	// ErrNoArtifact is returned by artifact actions before a conversion completes.
	ErrNoArtifact = errors.New("no SVG has been generated yet")
	// ErrStale is returned by Convert when the result was discarded because
	// the selection changed while the request was in flight.
	ErrStale = errors.New("conversion result discarded: selection changed")
)

// Converter produces SVG markup for an image. convert.Client satisfies it.
type Converter interface {
	Convert(ctx context.Context, img types.UploadedImage, style types.ConversionStyle, instruction string) (string, error)
}

// State is a snapshot of the workspace.
type State struct {
	Image       *types.UploadedImage
	Style       types.ConversionStyle
	Instruction string
	Processing  types.ProcessingState
	Artifact    *types.GeneratedArtifact
	Zoom        int
}

// Ticket identifies one started conversion and carries its inputs.
type Ticket struct {
	generation  uint64
	Image       types.UploadedImage
	Style       types.ConversionStyle
	Instruction string
}

// Controller owns the workspace state. It is safe for concurrent use; the
// lock is never held while the converter runs.
type Controller struct {
	conv  Converter
	now   func() time.Time
	newID func() string
	log   io.Writer

	mu          sync.Mutex
	image       *types.UploadedImage
	style       types.ConversionStyle
	instruction string
	status      types.ProcessingState
	artifact    *types.GeneratedArtifact
	zoom        int
	generation  uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the time source used for artifact timestamps and download names.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithLog sets the writer that receives diagnostic lines.
func WithLog(w io.Writer) Option {
	return func(c *Controller) { c.log = w }
}

// WithStyle sets the initial conversion style.
func WithStyle(s types.ConversionStyle) Option {
	return func(c *Controller) { c.style = s }
}

// WithIDGenerator replaces the artifact ID generator.
func WithIDGenerator(f func() string) Option {
	return func(c *Controller) { c.newID = f }
}

// New returns an idle Controller that converts through conv.
func New(conv Converter, opts ...Option) *Controller {
	c := &Controller{
		conv:   conv,
		now:    time.Now,
		newID:  uuid.NewString,
		log:    io.Discard,
		style:  types.StyleExact,
		status: types.ProcessingState{Status: types.StatusIdle},
		zoom:   DefaultZoom,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := State{
		Style:       c.style,
		Instruction: c.instruction,
		Processing:  c.status,
		Zoom:        c.zoom,
	}
	if c.image != nil {
		img := *c.image
		s.Image = &img
	}
	if c.artifact != nil {
		a := *c.artifact
		s.Artifact = &a
	}
	return s
}

// Select validates img and makes it the current selection. A rejected
// image leaves the state untouched. A new selection drops the previous
// artifact and abandons any conversion in flight; an error stays visible
// until acknowledged.
func (c *Controller) Select(img types.UploadedImage) error {
	if err := imagefile.Validate(img); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.image = &img
	c.artifact = nil
	c.generation++
	if c.status.Status != types.StatusError {
		c.status = types.ProcessingState{Status: types.StatusIdle}
	}
	fmt.Fprintf(c.log, "selected %s (%s, %d bytes)\n", img.Name, img.MIMEType, img.Size)
	return nil
}

// SelectFile loads the image at path and selects it.
func (c *Controller) SelectFile(path string) error {
	img, err := imagefile.Load(path)
	if err != nil {
		return err
	}
	return c.Select(img)
}

// SetStyle chooses the style for the next conversion.
func (c *Controller) SetStyle(style types.ConversionStyle) error {
	if _, ok := prompt.Clause(style); !ok {
		return fmt.Errorf("%w: %q", prompt.ErrUnknownStyle, style)
	}
	c.mu.Lock()
	c.style = style
	c.mu.Unlock()
	return nil
}

// SetInstruction sets the free-text instruction for the next conversion.
func (c *Controller) SetInstruction(s string) {
	c.mu.Lock()
	c.instruction = s
	c.mu.Unlock()
}

// Start moves the workspace into the processing phase and returns the
// ticket the caller must hand back to Complete. Any previous artifact is
// cleared.
func (c *Controller) Start() (Ticket, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.image == nil {
		return Ticket{}, ErrNoImage
	}
	if c.status.Status == types.StatusProcessing {
		return Ticket{}, ErrBusy
	}

	c.generation++
	c.status = types.ProcessingState{Status: types.StatusProcessing}
	c.artifact = nil

	return Ticket{
		generation:  c.generation,
		Image:       *c.image,
		Style:       c.style,
		Instruction: c.instruction,
	}, nil
}

// Complete records the outcome of the conversion identified by t. It
// reports false, leaving the state alone, when t is stale because the
// selection changed or the workspace was cleared in the meantime.
func (c *Controller) Complete(t Ticket, svg string, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t.generation != c.generation || c.status.Status != types.StatusProcessing {
		fmt.Fprintf(c.log, "discarding stale result for %s\n", t.Image.Name)
		return false
	}

	if err != nil {
		c.status = types.ProcessingState{Status: types.StatusError, Message: err.Error()}
		return true
	}

	c.artifact = &types.GeneratedArtifact{
		ID:        c.newID(),
		Code:      svg,
		CreatedAt: c.now(),
	}
	c.status = types.ProcessingState{Status: types.StatusCompleted}
	c.zoom = DefaultZoom
	fmt.Fprintf(c.log, "completed %s -> artifact %s (%d bytes)\n", t.Image.Name, c.artifact.ID, len(svg))
	return true
}

// Generate runs the converter for t without touching the workspace state.
// Event-loop front ends call it off the loop and hand the result to
// Complete on the loop.
func (c *Controller) Generate(ctx context.Context, t Ticket) (string, error) {
	return c.conv.Convert(ctx, t.Image, t.Style, t.Instruction)
}

// Run executes the conversion for t and records its outcome. It returns the
// converter error, or ErrStale when the result was discarded.
func (c *Controller) Run(ctx context.Context, t Ticket) error {
	svg, err := c.Generate(ctx, t)
	if !c.Complete(t, svg, err) {
		return ErrStale
	}
	return err
}

// Convert starts a conversion and blocks until it finishes.
func (c *Controller) Convert(ctx context.Context) error {
	t, err := c.Start()
	if err != nil {
		return err
	}
	return c.Run(ctx, t)
}

// Acknowledge dismisses an error and returns to idle. The selected image
// is kept so the user can retry.
func (c *Controller) Acknowledge() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status.Status != types.StatusError {
		return ErrNotInError
	}
	c.status = types.ProcessingState{Status: types.StatusIdle}
	return nil
}

// Clear discards the image, artifact and instruction and returns to idle.
// The style is kept. Clearing twice is the same as clearing once.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.image = nil
	c.artifact = nil
	c.instruction = ""
	c.status = types.ProcessingState{Status: types.StatusIdle}
	c.zoom = DefaultZoom
	c.generation++
}
