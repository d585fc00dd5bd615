// Package prompts holds the prompt templates and structured-output schemas sent
// upstream. The catalog is embedded so the binary needs no files at runtime.
package prompts

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/studymate/studymate-backend/internal/study_assistant/llm"
)

const (
	Topic = "topic"
	Quiz  = "quiz"
)

//go:embed catalog.yaml
var catalogYAML []byte

type entry struct {
	Prompt string      `yaml:"prompt"`
	Schema *llm.Schema `yaml:"schema"`
}

// Template renders one prompt and carries its schema.
type Template struct {
	Name   string
	Schema *llm.Schema
	tmpl   *template.Template
}

// Catalog is an immutable set of templates; safe for concurrent use.
type Catalog struct {
	templates map[string]*Template
}

// Default parses the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(catalogYAML)
}

// MustDefault is Default for package init and tests.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

func Parse(data []byte) (*Catalog, error) {
	var raw map[string]entry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse prompt catalog: %w", err)
	}

	c := &Catalog{templates: make(map[string]*Template, len(raw))}
	for name, e := range raw {
		if strings.TrimSpace(e.Prompt) == "" {
			return nil, fmt.Errorf("prompt %q: empty template", name)
		}
		if e.Schema != nil {
			if err := checkSchema(e.Schema); err != nil {
				return nil, fmt.Errorf("prompt %q: %w", name, err)
			}
		}
		t, err := template.New(name).Option("missingkey=error").Parse(e.Prompt)
		if err != nil {
			return nil, fmt.Errorf("prompt %q: %w", name, err)
		}
		c.templates[name] = &Template{Name: name, Schema: e.Schema, tmpl: t}
	}
	return c, nil
}

func (c *Catalog) Get(name string) (*Template, error) {
	t, ok := c.templates[name]
	if !ok {
		return nil, fmt.Errorf("prompt %q not found", name)
	}
	return t, nil
}

// Render substitutes input verbatim into the template.
func (t *Template) Render(input string) (string, error) {
	var b strings.Builder
	if err := t.tmpl.Execute(&b, struct{ Input string }{Input: input}); err != nil {
		return "", fmt.Errorf("render prompt %q: %w", t.Name, err)
	}
	return b.String(), nil
}

// checkSchema rejects required keys that are not declared as properties.
func checkSchema(s *llm.Schema) error {
	for _, k := range s.Required {
		if _, ok := s.Properties[k]; !ok {
			return fmt.Errorf("schema requires undeclared property %q", k)
		}
	}
	return nil
}
