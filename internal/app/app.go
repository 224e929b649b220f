package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vistafly/interviewme/internal/logger"
	"github.com/vistafly/interviewme/internal/router"
	"github.com/vistafly/interviewme/internal/screen"
	"github.com/vistafly/interviewme/internal/screens/welcome"
	"github.com/vistafly/interviewme/internal/ui/layout"
)

// Options holds the dependencies needed by the app.
type Options struct {
	// Home builds the screen shown after the splash.
	Home func() screen.Screen
	// NewInterview builds an interview; used with StartInterview.
	NewInterview func() screen.Screen
	// SkipWelcome starts directly on the home screen.
	SkipWelcome bool
	// StartInterview opens an interview on top of the home screen at launch.
	StartInterview bool
	Log            *logger.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router   *router.Router
	log      *logger.Logger
	startNow func() screen.Screen
	width    int
	height   int
	quitting bool
}

// newAppModel creates a new AppModel starting on the welcome screen.
func newAppModel(opts Options) AppModel {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	var first screen.Screen
	if opts.SkipWelcome || opts.StartInterview {
		first = opts.Home()
	} else {
		first = welcome.New(opts.Home)
	}
	m := AppModel{
		router: router.New(first),
		log:    log,
	}
	if opts.StartInterview {
		m.startNow = opts.NewInterview
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	var cmds []tea.Cmd
	if active := m.router.Active(); active != nil {
		cmds = append(cmds, active.Init())
	}
	if m.startNow != nil {
		next := m.startNow
		cmds = append(cmds, func() tea.Msg {
			return router.PushScreenMsg{Screen: next()}
		})
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if m.quitting {
				return m, nil
			}
			m.quitting = true
			m.log.Info("quit requested", "depth", m.router.Depth())
			return m, tea.Sequence(m.router.CloseAll(), tea.Quit)
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	title, status := m.headerParts()
	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// headerParts returns the active screen's title and status line.
func (m AppModel) headerParts() (title, status string) {
	active := m.router.Active()
	if active == nil {
		return "", ""
	}
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}
	return active.Title(), status
}

// footerHints merges the active screen's hints with the global ones.
func (m AppModel) footerHints() []layout.KeyHint {
	var hints []layout.KeyHint
	if kp, ok := m.router.Active().(screen.KeyHintProvider); ok {
		hints = kp.KeyHints()
	}
	if len(hints) == 0 {
		hints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
		}
	}
	if m.router.Depth() > 1 {
		hints = withHint(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	}
	return withHint(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

// withHint appends h unless a hint for the same key is already present.
func withHint(hints []layout.KeyHint, h layout.KeyHint) []layout.KeyHint {
	for _, existing := range hints {
		if existing.Key == h.Key {
			return hints
		}
	}
	return append(hints, h)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
