package grading

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rubric = []string{"experience", "background", "passionate", "career growth", "skills", "team"}

func TestGrade_Hits(t *testing.T) {
	tests := []struct {
		name     string
		answer   string
		wantHits []string
		wantPct  int
		want     string
	}{
		{"none", "I like turtles", []string{}, 0, "F"},
		{"three", "My background and experience with the team", []string{"experience", "background", "team"}, 50, "F"},
		{"five", "Experience, background, skills, team, and CAREER   GROWTH", []string{"experience", "background", "career growth", "skills", "team"}, 83, "B"},
		{"all", "experience background passionate career growth skills team", rubric, 100, "A"},
		{"substring", "my teammates", []string{"team"}, 17, "F"},
		{"phrase across newline", "looking for career\n\tgrowth", []string{"career growth"}, 17, "F"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Grade(tt.answer, rubric)
			require.NoError(t, err)
			assert.Equal(t, tt.wantHits, got.Hits)
			assert.Equal(t, len(tt.wantHits), got.HitCount)
			assert.Equal(t, 6, got.TotalKeys)
			assert.Equal(t, tt.wantPct, got.Percentage)
			assert.Equal(t, tt.want, got.Letter)
		})
	}
}

func TestGrade_EmptyAnswers(t *testing.T) {
	for _, answer := range []string{"", "   ", "\n\t "} {
		got, err := Grade(answer, rubric)
		require.NoError(t, err)
		assert.Empty(t, got.Hits)
		assert.Equal(t, 0, got.Percentage)
		assert.Equal(t, "F", got.Letter)
	}
}

func TestGrade_EmptyRubric(t *testing.T) {
	_, err := Grade("anything", nil)
	assert.ErrorIs(t, err, ErrEmptyRubric)

	_, err = Grade("anything", []string{})
	assert.ErrorIs(t, err, ErrEmptyRubric)
}

func TestGrade_BlankKeyPhrase(t *testing.T) {
	_, err := Grade("anything", []string{"team", "  "})
	if !errors.Is(err, ErrBlankKeyPhrase) {
		t.Fatalf("err = %v, want ErrBlankKeyPhrase", err)
	}
}

func TestGrade_DuplicateKeysCountOnce(t *testing.T) {
	got, err := Grade("team player", []string{"Team", "team", "player"})
	require.NoError(t, err)
	assert.Equal(t, 2, got.TotalKeys)
	assert.Equal(t, []string{"Team", "player"}, got.Hits)
	assert.Equal(t, 100, got.Percentage)
}

func TestGrade_Deterministic(t *testing.T) {
	answer := "I learned quickly from the documentation and delivered before the deadline"
	keys := []string{"learned quickly", "deadline", "documentation", "hands-on", "delivered", "outcome"}
	first, err := Grade(answer, keys)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Grade(answer, keys)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestGrade_HitsAreSubsetOfRubric(t *testing.T) {
	answers := []string{
		"",
		"team team team",
		strings.Repeat("skills ", 50),
		"PASSIONATE about Career Growth",
		"backgroundexperience",
	}
	for _, a := range answers {
		got, err := Grade(a, rubric)
		require.NoError(t, err)
		for _, h := range got.Hits {
			assert.Contains(t, rubric, h)
		}
		assert.Equal(t, len(got.Hits), got.HitCount)
		assert.GreaterOrEqual(t, got.Percentage, 0)
		assert.LessOrEqual(t, got.Percentage, 100)
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		hits, total, want int
	}{
		{0, 6, 0},
		{1, 6, 17},
		{3, 6, 50},
		{5, 6, 83},
		{6, 6, 100},
		{1, 2, 50},
		{1, 3, 33},
		{2, 3, 67},
		{9, 6, 100},
		{1, 0, 0},
	}
	for _, tt := range tests {
		if got := Percentage(tt.hits, tt.total); got != tt.want {
			t.Errorf("Percentage(%d, %d) = %d, want %d", tt.hits, tt.total, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "root cause analysis", Normalize("  Root\tCause \n ANALYSIS "))
	assert.Equal(t, "", Normalize(" \n "))
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"one", 1},
		{"one two  three", 3},
		{"\tleading and trailing\n", 3},
		{"hyphen-ated words", 2},
	}
	for _, tt := range tests {
		if got := WordCount(tt.in); got != tt.want {
			t.Errorf("WordCount(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
