package question

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// bankFile is the on-disk shape of a question bank.
type bankFile struct {
	Company   string         `json:"company"`
	JobTitle  string         `json:"job_title"`
	Questions []questionFile `json:"questions"`
}

type questionFile struct {
	Q          string   `json:"q"`
	Text       string   `json:"text"`
	Tip        string   `json:"tip"`
	Keys       []string `json:"keys"`
	KeyPhrases []string `json:"key_phrases"`
}

// LoadFile reads a question bank from path. The format is chosen by file
// extension: .yaml and .yml are YAML, everything else is JSON.
func LoadFile(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank %s: %w", path, err)
	}
	bank, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("question bank %s: %w", path, err)
	}
	return bank, nil
}

// FormatFromPath guesses the bank format from a file name.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes, schema-checks and validates a question bank.
func Parse(data []byte, format Format) (*Bank, error) {
	raw, err := toJSON(data, format)
	if err != nil {
		return nil, err
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := validateSchema(doc); err != nil {
		return nil, err
	}

	var f bankFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}

	bank := &Bank{
		Company:  strings.TrimSpace(f.Company),
		JobTitle: strings.TrimSpace(f.JobTitle),
	}
	for _, qf := range f.Questions {
		bank.Questions = append(bank.Questions, Clean(qf.toQuestion()))
	}
	if err := Validate(bank.Questions); err != nil {
		return nil, err
	}
	return bank, nil
}

func (qf questionFile) toQuestion() Question {
	text := qf.Q
	if text == "" {
		text = qf.Text
	}
	keys := qf.Keys
	if len(keys) == 0 {
		keys = qf.KeyPhrases
	}
	return Question{Text: text, Tip: qf.Tip, KeyPhrases: keys}
}

// toJSON converts a YAML document to JSON so both formats share one schema.
func toJSON(data []byte, format Format) ([]byte, error) {
	if format != FormatYAML {
		return data, nil
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("convert YAML: %w", err)
	}
	return out, nil
}
