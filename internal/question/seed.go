package question

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed seed/questions.yaml
var seedYAML []byte

type seedEntry struct {
	Category     string     `yaml:"category"`
	Difficulty   Difficulty `yaml:"difficulty"`
	CorrectIndex int        `yaml:"correct_index"`
	Content      Content    `yaml:"content"`
}

// LoadSeed parses the embedded seed bank.
func LoadSeed() ([]*Question, error) {
	return ParseSeed(seedYAML)
}

func ParseSeed(data []byte) ([]*Question, error) {
	var entries []seedEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}

	questions := make([]*Question, 0, len(entries))
	for i, e := range entries {
		q := New(e.Category, e.Content, e.CorrectIndex, e.Difficulty)
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("seed entry %d: %w", i, err)
		}
		questions = append(questions, q)
	}
	return questions, nil
}
