package question

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoQuestions is returned for an empty question list.
	ErrNoQuestions = errors.New("question list is empty")

	// ErrInvalidQuestion is returned for a question without text or rubric.
	ErrInvalidQuestion = errors.New("invalid question")
)

// Validate checks that questions can be used for a session: the list is
// non-empty, every entry has text, and every rubric has at least one
// non-blank key phrase.
func Validate(questions []Question) error {
	if len(questions) == 0 {
		return ErrNoQuestions
	}
	for i, q := range questions {
		if err := validateOne(q); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return nil
}

func validateOne(q Question) error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: missing text", ErrInvalidQuestion)
	}
	if len(q.KeyPhrases) == 0 {
		return fmt.Errorf("%w: no key phrases", ErrInvalidQuestion)
	}
	for j, kp := range q.KeyPhrases {
		if strings.TrimSpace(kp) == "" {
			return fmt.Errorf("%w: key phrase %d is blank", ErrInvalidQuestion, j+1)
		}
	}
	return nil
}

// Clean trims text and tip, trims key phrases and drops case-insensitive
// duplicates while keeping the first spelling.
func Clean(q Question) Question {
	out := Question{
		Text: strings.TrimSpace(q.Text),
		Tip:  strings.TrimSpace(q.Tip),
	}
	seen := make(map[string]bool, len(q.KeyPhrases))
	for _, kp := range q.KeyPhrases {
		kp = strings.TrimSpace(kp)
		key := strings.ToLower(kp)
		if seen[key] {
			continue
		}
		seen[key] = true
		out.KeyPhrases = append(out.KeyPhrases, kp)
	}
	return out
}
