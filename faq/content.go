package faq

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed faq.yaml
var defaultYAML []byte

type document struct {
	FAQ []Entry `yaml:"faq"`
}

// Parse decodes a YAML document with a top-level "faq" list.
// Every entry needs a question and an answer.
func Parse(data []byte) ([]Entry, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("faq: parse yaml: %w", err)
	}
	if len(doc.FAQ) == 0 {
		return nil, errors.New("faq: no entries")
	}
	for i := range doc.FAQ {
		doc.FAQ[i].Question = strings.TrimSpace(doc.FAQ[i].Question)
		doc.FAQ[i].Answer = strings.TrimSpace(doc.FAQ[i].Answer)
		if doc.FAQ[i].Question == "" || doc.FAQ[i].Answer == "" {
			return nil, fmt.Errorf("faq: entry %d: question and answer are required", i)
		}
	}
	return doc.FAQ, nil
}

// Default returns the questions compiled into the binary.
func Default() []Entry {
	entries, err := Parse(defaultYAML)
	if err != nil {
		panic(err)
	}
	return entries
}
