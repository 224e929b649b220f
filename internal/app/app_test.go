package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vistafly/interviewme/internal/router"
	"github.com/vistafly/interviewme/internal/screen"
	"github.com/vistafly/interviewme/internal/ui/layout"
)

type stubScreen struct {
	title  string
	status string
	closed int
}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "stub body" }
func (s *stubScreen) Title() string                           { return s.title }
func (s *stubScreen) Status() string                          { return s.status }
func (s *stubScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Quit"}}
}
func (s *stubScreen) Close() tea.Cmd { s.closed++; return nil }

func newTestModel(s *stubScreen) AppModel {
	return newAppModel(Options{
		Home:        func() screen.Screen { return s },
		SkipWelcome: true,
	})
}

func TestHeaderParts(t *testing.T) {
	m := newTestModel(&stubScreen{title: "Interview", status: "Q 2/5"})
	title, status := m.headerParts()
	assert.Equal(t, "Interview", title)
	assert.Equal(t, "Q 2/5", status)
}

func TestFooterHints_KeepScreenEsc(t *testing.T) {
	m := newTestModel(&stubScreen{})
	m.router.Push(&stubScreen{})

	hints := m.footerHints()
	require.Len(t, hints, 2)
	assert.Equal(t, layout.KeyHint{Key: "Esc", Description: "Quit"}, hints[0])
	assert.Equal(t, "Ctrl+C", hints[1].Key)
}

func TestEscAtRootDoesNothing(t *testing.T) {
	m := newTestModel(&stubScreen{})
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)
}

func TestCtrlCClosesScreens(t *testing.T) {
	s := &stubScreen{}
	m := newTestModel(s)

	model, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.Equal(t, 1, s.closed)
	assert.True(t, model.(AppModel).quitting)

	_, cmd = model.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, s.closed)
}

func TestStartInterviewPushesOnInit(t *testing.T) {
	home := &stubScreen{title: "Home"}
	iv := &stubScreen{title: "Interview"}
	m := newAppModel(Options{
		Home:           func() screen.Screen { return home },
		NewInterview:   func() screen.Screen { return iv },
		StartInterview: true,
	})
	assert.Equal(t, home, m.router.Active())

	cmd := m.Init()
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, iv, push.Screen)
}

func TestWithHint(t *testing.T) {
	hints := []layout.KeyHint{{Key: "Esc", Description: "Quit"}}
	hints = withHint(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	require.Len(t, hints, 1)
	assert.Equal(t, "Quit", hints[0].Description)

	hints = withHint(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	var keys []string
	for _, h := range hints {
		keys = append(keys, h.Key)
	}
	assert.Equal(t, "Esc Ctrl+C", strings.Join(keys, " "))
}
