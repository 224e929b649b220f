package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/vistafly/interviewme/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func TestPush(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "first" {
		t.Errorf("expected active 'first', got %q", r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestReplace(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Replace(s2)

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after replace, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on replaced screen")
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Update(ReplaceScreenMsg{Screen: s2})

	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
}

func TestReplacePreservesStackDepth(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	s3 := &stubScreen{title: "third"}
	r.Replace(s3)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "third" {
		t.Errorf("expected active 'third', got %q", r.Active().Title())
	}
}

// closingScreen records Close calls.
type closingScreen struct {
	stubScreen
	closed int
}

type closedMsg struct{ title string }

func (c *closingScreen) Close() tea.Cmd {
	c.closed++
	title := c.title
	return func() tea.Msg { return closedMsg{title: title} }
}

func TestPopClosesScreen(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	c := &closingScreen{stubScreen: stubScreen{title: "interview"}}
	r.Push(c)

	cmd := r.Pop()
	if c.closed != 1 {
		t.Fatalf("closed = %d, want 1", c.closed)
	}
	if cmd == nil {
		t.Fatal("expected close command")
	}
	if msg, ok := cmd().(closedMsg); !ok || msg.title != "interview" {
		t.Errorf("close msg = %#v", msg)
	}
}

func TestPopAtBottomDoesNotClose(t *testing.T) {
	c := &closingScreen{stubScreen: stubScreen{title: "home"}}
	r := New(c)
	r.Pop()
	if c.closed != 0 {
		t.Errorf("closed = %d, want 0", c.closed)
	}
}

func TestReplaceClosesPrevious(t *testing.T) {
	c := &closingScreen{stubScreen: stubScreen{title: "first"}}
	r := New(c)
	r.Replace(&stubScreen{title: "second"})
	if c.closed != 1 {
		t.Errorf("closed = %d, want 1", c.closed)
	}
}

func TestCloseAll(t *testing.T) {
	a := &closingScreen{stubScreen: stubScreen{title: "a"}}
	b := &closingScreen{stubScreen: stubScreen{title: "b"}}
	r := New(a)
	r.Push(b)

	if cmd := r.CloseAll(); cmd == nil {
		t.Fatal("expected a command")
	}
	if a.closed != 1 || b.closed != 1 {
		t.Errorf("closed a=%d b=%d, want 1 each", a.closed, b.closed)
	}
	if r.Depth() != 2 {
		t.Errorf("CloseAll changed depth to %d", r.Depth())
	}
}
