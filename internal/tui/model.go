// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tui is the interactive terminal front end. It drives a
// workspace.Controller: pick an image, choose a style, add instructions,
// convert, then inspect, zoom, save or copy the generated SVG.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pdiddy/scivector/internal/preview"
	"github.com/pdiddy/scivector/internal/prompt"
	"github.com/pdiddy/scivector/internal/workspace"
	"github.com/pdiddy/scivector/pkg/types"
)

// Clipboard reads pasted paths and receives copied SVG source.
type Clipboard interface {
	WriteAll(text string) error
	ReadAll() (string, error)
}

// Options configures the TUI.
type Options struct {
	// OutputDir receives saved SVG files and preview pages.
	OutputDir string
	// Clipboard defaults to the system clipboard.
	Clipboard Clipboard
	// Log receives diagnostic lines. Nil discards.
	Log io.Writer
}

type mode int

const (
	modeMain mode = iota
	modePath
	modeInstruction
)

// conversionDoneMsg carries the converter result back to the update loop,
// which records it with Complete.
type conversionDoneMsg struct {
	ticket workspace.Ticket
	svg    string
	err    error
}

// Model is the bubbletea model for the conversion screen.
type Model struct {
	ctx  context.Context
	ws   *workspace.Controller
	opts Options

	mode        mode
	pathInput   textinput.Model
	instruction textarea.Model
	spinner     spinner.Model
	code        viewport.Model
	help        help.Model
	keys        keyMap

	width   int
	height  int
	message string
	isError bool
}

// New returns a Model bound to ws.
func New(ctx context.Context, ws *workspace.Controller, opts Options) Model {
	if opts.Clipboard == nil {
		opts.Clipboard = workspace.SystemClipboard{}
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	if opts.Log == nil {
		opts.Log = io.Discard
	}

	pi := textinput.New()
	pi.Prompt = "Image: "
	pi.Placeholder = "path to a JPEG, PNG or WEBP diagram"
	pi.CharLimit = 4096

	ta := textarea.New()
	ta.Placeholder = "e.g. make the lines thicker, remove the legend"
	ta.SetHeight(3)
	ta.SetValue(ws.State().Instruction)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = titleStyle

	vp := viewport.New(80, 20)

	return Model{
		ctx:         ctx,
		ws:          ws,
		opts:        opts,
		pathInput:   pi,
		instruction: ta,
		spinner:     sp,
		code:        vp,
		help:        help.New(),
		keys:        keys,
	}
}

// Run starts the TUI and blocks until the user quits.
func Run(ctx context.Context, ws *workspace.Controller, opts Options) error {
	p := tea.NewProgram(
		New(ctx, ws, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.code.Width = max(msg.Width-4, 20)
		m.code.Height = max(msg.Height-18, 5)
		m.instruction.SetWidth(max(msg.Width-6, 20))
		return m, nil

	case conversionDoneMsg:
		return m.conversionDone(msg)

	case spinner.TickMsg:
		if m.ws.State().Processing.Status != types.StatusProcessing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch m.mode {
		case modePath:
			return m.updatePath(msg)
		case modeInstruction:
			return m.updateInstruction(msg)
		default:
			return m.updateMain(msg)
		}
	}
	return m, nil
}

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A path dropped onto the terminal arrives as a bracketed paste.
	if msg.Paste {
		return m.selectPath(string(msg.Runes)), nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Open):
		m.mode = modePath
		m.pathInput.SetValue("")
		return m, m.pathInput.Focus()

	case key.Matches(msg, m.keys.Paste):
		if err := workspace.CheckClipboard(m.opts.Clipboard); err != nil {
			return m.fail(err), nil
		}
		text, err := m.opts.Clipboard.ReadAll()
		if err != nil {
			return m.fail(fmt.Errorf("reading clipboard: %w", err)), nil
		}
		return m.selectPath(text), nil

	case key.Matches(msg, m.keys.Style):
		next := prompt.Next(m.ws.State().Style)
		if err := m.ws.SetStyle(next); err != nil {
			return m.fail(err), nil
		}
		return m.ok("style: " + string(next)), nil

	case key.Matches(msg, m.keys.Instruction):
		m.mode = modeInstruction
		return m, m.instruction.Focus()

	case key.Matches(msg, m.keys.Convert):
		return m.startConversion()

	case key.Matches(msg, m.keys.ZoomIn):
		return m.ok(fmt.Sprintf("zoom %d%%", m.ws.ZoomIn())), nil

	case key.Matches(msg, m.keys.ZoomOut):
		return m.ok(fmt.Sprintf("zoom %d%%", m.ws.ZoomOut())), nil

	case key.Matches(msg, m.keys.ZoomReset):
		return m.ok(fmt.Sprintf("zoom %d%%", m.ws.SetZoom(workspace.DefaultZoom))), nil

	case key.Matches(msg, m.keys.Save):
		path, err := m.ws.Download(m.opts.OutputDir)
		if err != nil {
			return m.fail(err), nil
		}
		return m.ok("saved " + path), nil

	case key.Matches(msg, m.keys.Copy):
		if err := m.ws.Copy(m.opts.Clipboard); err != nil {
			return m.fail(err), nil
		}
		return m.ok("SVG copied to clipboard"), nil

	case key.Matches(msg, m.keys.Preview):
		path, err := m.ws.Preview(m.opts.OutputDir)
		if err != nil {
			return m.fail(err), nil
		}
		return m.ok("preview written to " + path), nil

	case key.Matches(msg, m.keys.Dismiss):
		if err := m.ws.Acknowledge(); err != nil {
			return m.fail(err), nil
		}
		m.message = ""
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.ws.Clear()
		m.instruction.Reset()
		m.code.SetContent("")
		return m.ok("workspace cleared"), nil
	}

	var cmd tea.Cmd
	m.code, cmd = m.code.Update(msg)
	return m, cmd
}

func (m Model) updatePath(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeMain
		m.pathInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		m.mode = modeMain
		m.pathInput.Blur()
		return m.selectPath(m.pathInput.Value()), nil

	case key.Matches(msg, m.keys.Paste):
		if err := workspace.CheckClipboard(m.opts.Clipboard); err != nil {
			return m.fail(err), nil
		}
		if text, err := m.opts.Clipboard.ReadAll(); err == nil {
			m.pathInput.SetValue(cleanPath(text))
			m.pathInput.CursorEnd()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func (m Model) updateInstruction(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Cancel) {
		m.mode = modeMain
		m.instruction.Blur()
		m.ws.SetInstruction(m.instruction.Value())
		return m, nil
	}

	var cmd tea.Cmd
	m.instruction, cmd = m.instruction.Update(msg)
	return m, cmd
}

func (m Model) selectPath(raw string) Model {
	path := cleanPath(raw)
	if path == "" {
		return m.fail(errors.New("no image path given"))
	}
	if err := m.ws.SelectFile(path); err != nil {
		return m.fail(err)
	}
	m.code.SetContent("")
	return m.ok("selected " + m.ws.State().Image.Name)
}

func (m Model) startConversion() (tea.Model, tea.Cmd) {
	m.ws.SetInstruction(m.instruction.Value())
	t, err := m.ws.Start()
	if err != nil {
		return m.fail(err), nil
	}
	m.message = ""
	m.code.SetContent("")
	return m, tea.Batch(m.spinner.Tick, m.runConversion(t))
}

func (m Model) runConversion(t workspace.Ticket) tea.Cmd {
	ctx, ws := m.ctx, m.ws
	return func() tea.Msg {
		svg, err := ws.Generate(ctx, t)
		return conversionDoneMsg{ticket: t, svg: svg, err: err}
	}
}

func (m Model) conversionDone(msg conversionDoneMsg) (tea.Model, tea.Cmd) {
	if !m.ws.Complete(msg.ticket, msg.svg, msg.err) {
		return m, nil
	}
	s := m.ws.State()
	if s.Artifact != nil {
		m.code.SetContent(preview.Highlight(s.Artifact.Code))
		m.code.GotoTop()
		return m.ok(fmt.Sprintf("converted %s (%d bytes of SVG)", s.Image.Name, len(s.Artifact.Code))), nil
	}
	return m, nil
}

func (m Model) ok(s string) Model {
	m.message, m.isError = s, false
	return m
}

func (m Model) fail(err error) Model {
	fmt.Fprintf(m.opts.Log, "tui: %v\n", err)
	m.message, m.isError = err.Error(), true
	return m
}

// cleanPath trims whitespace and the quotes terminals add around dropped paths.
func cleanPath(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	return strings.TrimPrefix(s, "file://")
}
