package question

// Question is one interview prompt with its scoring rubric.
type Question struct {
	// Text is the question shown (and optionally read aloud) to the candidate.
	Text string `json:"q" yaml:"q"`

	// Tip is coaching advice the candidate can reveal before answering.
	Tip string `json:"tip,omitempty" yaml:"tip,omitempty"`

	// KeyPhrases are the phrases a strong answer is expected to mention.
	// Usually 5-6 entries.
	KeyPhrases []string `json:"keys" yaml:"keys"`
}

// Bank is an ordered question list plus the role it was prepared for.
type Bank struct {
	Company   string     `json:"company,omitempty" yaml:"company,omitempty"`
	JobTitle  string     `json:"job_title,omitempty" yaml:"job_title,omitempty"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Format identifies a question bank encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)
