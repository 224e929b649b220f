package grading

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrEmptyRubric is returned when a rubric has no key phrases.
	ErrEmptyRubric = errors.New("rubric has no key phrases")

	// ErrBlankKeyPhrase is returned when a key phrase normalizes to nothing.
	ErrBlankKeyPhrase = errors.New("rubric contains a blank key phrase")
)

// GradeResult is the outcome of scoring one answer against a rubric.
type GradeResult struct {
	// Hits are the key phrases found in the answer, in rubric order.
	Hits       []string `json:"hits"`
	HitCount   int      `json:"hit_count"`
	TotalKeys  int      `json:"total_keys"`
	Percentage int      `json:"percentage"`
	Letter     string   `json:"letter"`
}

// Grader scores answers with a fixed letter scale.
type Grader struct {
	scale Scale
}

// NewGrader creates a Grader. A nil scale falls back to DefaultScale.
func NewGrader(scale Scale) *Grader {
	if len(scale) == 0 {
		scale = DefaultScale
	}
	return &Grader{scale: scale}
}

// Grade scores answer against keyPhrases using DefaultScale.
func Grade(answer string, keyPhrases []string) (GradeResult, error) {
	return NewGrader(DefaultScale).Grade(answer, keyPhrases)
}

// Grade scores answer against keyPhrases.
//
// A key phrase is a hit when its normalized form occurs anywhere in the
// normalized answer. Matching is a plain substring check, so "test" also
// hits inside "testing". Duplicate phrases (after normalization) count once.
func (g *Grader) Grade(answer string, keyPhrases []string) (GradeResult, error) {
	keys, err := normalizeRubric(keyPhrases)
	if err != nil {
		return GradeResult{}, err
	}

	text := Normalize(answer)
	hits := make([]string, 0, len(keys))
	if text != "" {
		for _, k := range keys {
			if strings.Contains(text, k.norm) {
				hits = append(hits, k.raw)
			}
		}
	}

	pct := Percentage(len(hits), len(keys))
	return GradeResult{
		Hits:       hits,
		HitCount:   len(hits),
		TotalKeys:  len(keys),
		Percentage: pct,
		Letter:     g.scale.Letter(pct),
	}, nil
}

// Percentage returns round(100*hits/total) clamped to [0, 100].
// total must be positive; callers guard against empty rubrics.
func Percentage(hits, total int) int {
	if total <= 0 {
		return 0
	}
	pct := int(math.Round(100 * float64(hits) / float64(total)))
	return clamp(pct)
}

// Normalize lowercases s and collapses runs of whitespace to single spaces.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// WordCount counts whitespace-separated tokens in the raw answer.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

type rubricKey struct {
	raw  string
	norm string
}

func normalizeRubric(keyPhrases []string) ([]rubricKey, error) {
	if len(keyPhrases) == 0 {
		return nil, ErrEmptyRubric
	}
	seen := make(map[string]bool, len(keyPhrases))
	keys := make([]rubricKey, 0, len(keyPhrases))
	for i, kp := range keyPhrases {
		norm := Normalize(kp)
		if norm == "" {
			return nil, fmt.Errorf("key phrase %d: %w", i, ErrBlankKeyPhrase)
		}
		if seen[norm] {
			continue
		}
		seen[norm] = true
		keys = append(keys, rubricKey{raw: strings.TrimSpace(kp), norm: norm})
	}
	return keys, nil
}

func clamp(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
