package web

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed examples.yml
var examplesYAML []byte

// Example is a gallery snippet that preloads the form
type Example struct {
	Title string `yaml:"title"`
	Level string `yaml:"level"`
	Code  string `yaml:"code"`
}

func LoadExamples() ([]Example, error) {
	return parseExamples(examplesYAML)
}

func parseExamples(data []byte) ([]Example, error) {
	var examples []Example
	if err := yaml.Unmarshal(data, &examples); err != nil {
		return nil, fmt.Errorf("parsing examples: %w", err)
	}
	for i, ex := range examples {
		if ex.Code == "" {
			return nil, fmt.Errorf("example %d (%s): empty code", i, ex.Title)
		}
	}
	return examples, nil
}
