package prompts

import (
	"bytes"
	"fmt"
	"text/template"
)

type PromptData struct {
	Input    string
	Language string
}

// Template is a parsed prompt. Missing fields are an execution error rather
// than "<no value>" in the rendered text.
type Template struct {
	name string
	tmpl *template.Template
}

func Parse(name, source string) (*Template, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parse prompt %q: %w", name, err)
	}
	return &Template{name: name, tmpl: tmpl}, nil
}

func (t *Template) Render(data PromptData) (string, error) {
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render prompt %q: %w", t.name, err)
	}
	return buf.String(), nil
}
