package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTooSmall(t *testing.T) {
	assert.True(t, IsTooSmall(MinWidth-1, MinHeight))
	assert.True(t, IsTooSmall(MinWidth, MinHeight-1))
	assert.False(t, IsTooSmall(MinWidth, MinHeight))
}

func TestIsCompact(t *testing.T) {
	assert.True(t, IsCompact(90, 40))
	assert.True(t, IsCompact(120, 18))
	assert.False(t, IsCompact(120, 30))
}

func TestRenderHeader(t *testing.T) {
	out := RenderHeader("Interview", "Q 2/5", 100)
	assert.Contains(t, out, "InterviewMe")
	assert.Contains(t, out, "Interview")
	assert.Contains(t, out, "Q 2/5")
}

func TestRenderFooter(t *testing.T) {
	out := RenderFooter([]KeyHint{{"enter", "Start"}, {"esc", "Back"}}, 100)
	assert.Contains(t, out, "enter")
	assert.Contains(t, out, "Back")
}

func TestRenderFooter_NarrowDropsDescriptions(t *testing.T) {
	hints := []KeyHint{
		{"Enter", "Start the interview now"},
		{"Tab", "Show the tip for this question"},
		{"Esc", "Back"},
	}
	out := fitHints(hints, 30)
	assert.Contains(t, out, "Enter")
	assert.Contains(t, out, "Esc")
	assert.NotContains(t, out, "Start")

	out = fitHints(hints, 10)
	assert.Contains(t, out, "Enter")
	assert.NotContains(t, out, "Esc")

	assert.Equal(t, "", fitHints(hints, 2))
}

func TestRenderFrame(t *testing.T) {
	out := RenderFrame("H", "body", "F", 40, 10)
	assert.True(t, strings.HasPrefix(out, "H\n"))
	assert.True(t, strings.HasSuffix(out, "\nF"))
	assert.Contains(t, out, "body")
}
