// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workspace

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scivector/internal/convert"
	"github.com/pdiddy/scivector/internal/imagefile"
	"github.com/pdiddy/scivector/internal/prompt"
	"github.com/pdiddy/scivector/pkg/types"
)

// stubBackend answers every Generate call with a fixed reply.
type stubBackend struct {
	mu     sync.Mutex
	answer string
	err    error
	last   convert.Request
}

func (b *stubBackend) Generate(_ context.Context, req convert.Request) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.last = req
	return b.answer, b.err
}

// gateConverter blocks each Convert call until a reply is sent on release.
type gateConverter struct {
	started chan types.UploadedImage
	release chan string
}

func newGate() *gateConverter {
	return &gateConverter{started: make(chan types.UploadedImage, 4), release: make(chan string, 4)}
}

func (g *gateConverter) Convert(_ context.Context, img types.UploadedImage, _ types.ConversionStyle, _ string) (string, error) {
	g.started <- img
	return <-g.release, nil
}

var fixedNow = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func pngImage(name string, size int) types.UploadedImage {
	data := make([]byte, size)
	copy(data, "\x89PNG\r\n\x1a\n")
	return types.UploadedImage{Name: name, MIMEType: types.MIMEPNG, Size: int64(size), Data: data}
}

func newController(backend convert.Backend, opts ...Option) *Controller {
	client := &convert.Client{Backend: backend}
	return New(client, append([]Option{WithClock(fixedClock)}, opts...)...)
}

func TestNewIsIdle(t *testing.T) {
	c := New(nil)
	s := c.State()

	assert.Equal(t, types.StatusIdle, s.Processing.Status)
	assert.Equal(t, types.StyleExact, s.Style)
	assert.Equal(t, DefaultZoom, s.Zoom)
	assert.Nil(t, s.Image)
	assert.Nil(t, s.Artifact)
}

func TestSelectAcceptsValidImage(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Select(pngImage("a.png", 128)))

	s := c.State()
	require.NotNil(t, s.Image)
	assert.Equal(t, "a.png", s.Image.Name)
}

func TestSelectRejectionKeepsSelection(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Select(pngImage("first.png", 64)))

	tests := []struct {
		name string
		img  types.UploadedImage
	}{
		{"gif", types.UploadedImage{Name: "x.gif", MIMEType: "image/gif", Size: 10}},
		{"too large", types.UploadedImage{Name: "big.png", MIMEType: types.MIMEPNG, Size: types.MaxImageSize + 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Select(tt.img)
			var verr *imagefile.ValidationError
			require.ErrorAs(t, err, &verr)

			s := c.State()
			require.NotNil(t, s.Image)
			assert.Equal(t, "first.png", s.Image.Name)
		})
	}
}

func TestSelectAtLimit(t *testing.T) {
	c := New(nil)
	img := types.UploadedImage{Name: "edge.png", MIMEType: types.MIMEPNG, Size: types.MaxImageSize}
	assert.NoError(t, c.Select(img))
}

func TestStartWithoutImage(t *testing.T) {
	c := New(nil)
	_, err := c.Start()
	assert.ErrorIs(t, err, ErrNoImage)
	assert.Equal(t, types.StatusIdle, c.State().Processing.Status)
}

func TestConvertCompletes(t *testing.T) {
	backend := &stubBackend{answer: "Here you go:\n<svg><rect/></svg>\nDone."}
	var log bytes.Buffer
	c := newController(backend, WithLog(&log), WithIDGenerator(func() string { return "art-1" }))

	require.NoError(t, c.Select(pngImage("diagram.png", 2*1024*1024)))
	require.NoError(t, c.SetStyle(types.StyleWireframe))
	c.SetInstruction("remove labels")
	c.SetZoom(250)

	require.NoError(t, c.Convert(context.Background()))

	s := c.State()
	assert.Equal(t, types.StatusCompleted, s.Processing.Status)
	require.NotNil(t, s.Artifact)
	assert.Equal(t, "<svg><rect/></svg>", s.Artifact.Code)
	assert.Equal(t, "art-1", s.Artifact.ID)
	assert.Equal(t, fixedNow, s.Artifact.CreatedAt)
	assert.Equal(t, DefaultZoom, s.Zoom, "zoom resets on a new artifact")

	clause, _ := prompt.Clause(types.StyleWireframe)
	assert.Contains(t, backend.last.Prompt, clause)
	assert.Contains(t, backend.last.Prompt, "remove labels")
	assert.Equal(t, types.MIMEPNG, backend.last.MIMEType)
	assert.Contains(t, log.String(), "art-1")
}

func TestConvertDefaultIDIsUnique(t *testing.T) {
	c := newController(&stubBackend{answer: "<svg/></svg>"})
	require.NoError(t, c.Select(pngImage("a.png", 16)))

	require.NoError(t, c.Convert(context.Background()))
	first := c.State().Artifact.ID
	require.NoError(t, c.Convert(context.Background()))
	second := c.State().Artifact.ID

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}

func TestConvertPassesThroughTextWithoutSVG(t *testing.T) {
	c := newController(&stubBackend{answer: "I cannot draw that."})
	require.NoError(t, c.Select(pngImage("a.png", 16)))

	require.NoError(t, c.Convert(context.Background()))

	s := c.State()
	assert.Equal(t, types.StatusCompleted, s.Processing.Status)
	require.NotNil(t, s.Artifact)
	assert.Equal(t, "I cannot draw that.", s.Artifact.Code)
}

func TestConvertNetworkFailure(t *testing.T) {
	c := newController(&stubBackend{err: errors.New("dial tcp: connection refused")})
	require.NoError(t, c.Select(pngImage("a.png", 16)))

	err := c.Convert(context.Background())
	assert.ErrorIs(t, err, convert.ErrConversionFailed)

	s := c.State()
	assert.Equal(t, types.StatusError, s.Processing.Status)
	assert.Equal(t, convert.ErrConversionFailed.Error(), s.Processing.Message)
	assert.Nil(t, s.Artifact)
	require.NotNil(t, s.Image)
	assert.Equal(t, "a.png", s.Image.Name)
}

func TestStartClearsPreviousArtifact(t *testing.T) {
	c := newController(&stubBackend{answer: "<svg></svg>"})
	require.NoError(t, c.Select(pngImage("a.png", 16)))
	require.NoError(t, c.Convert(context.Background()))
	require.NotNil(t, c.State().Artifact)

	_, err := c.Start()
	require.NoError(t, err)

	s := c.State()
	assert.Equal(t, types.StatusProcessing, s.Processing.Status)
	assert.Nil(t, s.Artifact)
}

func TestStartWhileBusy(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Select(pngImage("a.png", 16)))

	_, err := c.Start()
	require.NoError(t, err)
	_, err = c.Start()
	assert.ErrorIs(t, err, ErrBusy)
}

func TestConvertWhileBusyDoesNotCallConverter(t *testing.T) {
	gate := newGate()
	c := New(gate)
	require.NoError(t, c.Select(pngImage("a.png", 16)))

	done := make(chan error, 1)
	go func() { done <- c.Convert(context.Background()) }()
	<-gate.started

	assert.ErrorIs(t, c.Convert(context.Background()), ErrBusy)
	assert.Len(t, gate.started, 0)

	gate.release <- "<svg></svg>"
	require.NoError(t, <-done)
	assert.Equal(t, types.StatusCompleted, c.State().Processing.Status)
}

func TestSelectDuringConversionDiscardsLateResult(t *testing.T) {
	gate := newGate()
	var log bytes.Buffer
	c := New(gate, WithLog(&log))
	require.NoError(t, c.Select(pngImage("old.png", 16)))

	done := make(chan error, 1)
	go func() { done <- c.Convert(context.Background()) }()
	<-gate.started

	require.NoError(t, c.Select(pngImage("new.png", 16)))
	assert.Equal(t, types.StatusIdle, c.State().Processing.Status)

	gate.release <- "<svg>old</svg>"
	assert.ErrorIs(t, <-done, ErrStale)

	s := c.State()
	assert.Equal(t, types.StatusIdle, s.Processing.Status)
	assert.Nil(t, s.Artifact)
	assert.Equal(t, "new.png", s.Image.Name)
	assert.Contains(t, log.String(), "discarding stale result for old.png")
}

func TestClearDuringConversionDiscardsLateResult(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Select(pngImage("a.png", 16)))
	ticket, err := c.Start()
	require.NoError(t, err)

	c.Clear()
	assert.False(t, c.Complete(ticket, "<svg></svg>", nil))

	s := c.State()
	assert.Equal(t, types.StatusIdle, s.Processing.Status)
	assert.Nil(t, s.Artifact)
	assert.Nil(t, s.Image)
}

func TestCompleteTwiceIgnoresSecond(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Select(pngImage("a.png", 16)))
	ticket, err := c.Start()
	require.NoError(t, err)

	assert.True(t, c.Complete(ticket, "<svg>1</svg>", nil))
	assert.False(t, c.Complete(ticket, "<svg>2</svg>", nil))
	assert.Equal(t, "<svg>1</svg>", c.State().Artifact.Code)
}

func TestSelectAfterCompletionDropsArtifact(t *testing.T) {
	c := newController(&stubBackend{answer: "<svg></svg>"})
	require.NoError(t, c.Select(pngImage("a.png", 16)))
	require.NoError(t, c.Convert(context.Background()))

	require.NoError(t, c.Select(pngImage("b.png", 16)))

	s := c.State()
	assert.Equal(t, types.StatusIdle, s.Processing.Status)
	assert.Nil(t, s.Artifact)
}

func TestAcknowledge(t *testing.T) {
	c := newController(&stubBackend{err: errors.New("boom")})
	assert.ErrorIs(t, c.Acknowledge(), ErrNotInError)

	require.NoError(t, c.Select(pngImage("a.png", 16)))
	require.Error(t, c.Convert(context.Background()))

	require.NoError(t, c.Acknowledge())
	s := c.State()
	assert.Equal(t, types.StatusIdle, s.Processing.Status)
	assert.Empty(t, s.Processing.Message)
	require.NotNil(t, s.Image, "acknowledge keeps the image for a retry")
}

func TestRetryFromError(t *testing.T) {
	backend := &stubBackend{err: errors.New("timeout")}
	c := newController(backend)
	require.NoError(t, c.Select(pngImage("a.png", 16)))
	require.Error(t, c.Convert(context.Background()))

	backend.mu.Lock()
	backend.err, backend.answer = nil, "<svg></svg>"
	backend.mu.Unlock()

	require.NoError(t, c.Convert(context.Background()))
	assert.Equal(t, types.StatusCompleted, c.State().Processing.Status)
}

func TestClearIsIdempotent(t *testing.T) {
	c := newController(&stubBackend{answer: "<svg></svg>"})
	require.NoError(t, c.SetStyle(types.StyleSimplified))
	require.NoError(t, c.Select(pngImage("a.png", 16)))
	c.SetInstruction("thicker lines")
	require.NoError(t, c.Convert(context.Background()))
	c.ZoomIn()

	c.Clear()
	first := c.State()
	c.Clear()
	second := c.State()

	assert.Equal(t, first, second)
	assert.Nil(t, first.Image)
	assert.Nil(t, first.Artifact)
	assert.Empty(t, first.Instruction)
	assert.Equal(t, types.StatusIdle, first.Processing.Status)
	assert.Equal(t, DefaultZoom, first.Zoom)
	assert.Equal(t, types.StyleSimplified, first.Style, "style survives clear")
}

func TestSetStyleRejectsUnknown(t *testing.T) {
	c := New(nil)
	err := c.SetStyle("sketchy")
	assert.ErrorIs(t, err, prompt.ErrUnknownStyle)
	assert.Equal(t, types.StyleExact, c.State().Style)
}

func TestSelectFile(t *testing.T) {
	c := New(nil)
	err := c.SelectFile("/nonexistent/diagram.png")
	assert.Error(t, err)
	assert.Nil(t, c.State().Image)
}

func TestStateIsSnapshot(t *testing.T) {
	c := newController(&stubBackend{answer: "<svg></svg>"})
	require.NoError(t, c.Select(pngImage("a.png", 16)))
	require.NoError(t, c.Convert(context.Background()))

	s := c.State()
	s.Image.Name = "mutated"
	s.Artifact.Code = "mutated"

	again := c.State()
	assert.Equal(t, "a.png", again.Image.Name)
	assert.Equal(t, "<svg></svg>", again.Artifact.Code)
}

func TestGenerateLeavesStateAlone(t *testing.T) {
	c := newController(&stubBackend{answer: "<svg></svg>"})
	require.NoError(t, c.Select(pngImage("a.png", 16)))
	ticket, err := c.Start()
	require.NoError(t, err)

	svg, err := c.Generate(context.Background(), ticket)
	require.NoError(t, err)
	assert.Equal(t, "<svg></svg>", svg)
	assert.Equal(t, types.StatusProcessing, c.State().Processing.Status)
	assert.Nil(t, c.State().Artifact)

	require.True(t, c.Complete(ticket, svg, err))
	assert.Equal(t, types.StatusCompleted, c.State().Processing.Status)
}
