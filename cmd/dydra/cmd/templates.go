package cmd

import (
	"fmt"
	"text/template"
	"time"

	units "github.com/docker/go-units"
)

// templateFuncs are available to all templates
var templateFuncs = template.FuncMap{
	"ago": func(t time.Time) string {
		if t.IsZero() {
			return "never"
		}
		return units.HumanDuration(time.Since(t)) + " ago"
	},
	"size": func(n int64) string {
		return units.HumanSize(float64(n))
	},
}

const (
	listLineTemplateString = `{{.Spec}}`

	infoTemplateString = `{{.Spec}}{{if .Summary}}: {{.Summary}}{{end}}
  url: {{.URL}}
{{- if .Description}}
  description: {{.Description}}{{end}}
{{- if not .Created.IsZero}}
  created: {{.Created.Format "2006-01-02T15:04:05Z07:00"}} ({{ago .Created}}){{end}}
{{- if not .Updated.IsZero}}
  updated: {{.Updated.Format "2006-01-02T15:04:05Z07:00"}} ({{ago .Updated}}){{end}}`
)

// commandTemplate parses the template provided with --template, or falls back to some default
func commandTemplate(name string, opts flagsT, fallback string) (*template.Template, error) {
	text := fallback
	if opts.core.Template != "" {
		text = opts.core.Template
	}
	t, err := template.New(name).Funcs(templateFuncs).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}
	return t, nil
}

func repositoryTemplate(opts flagsT) (*template.Template, error) {
	return commandTemplate("list line", opts, listLineTemplateString)
}

func infoTemplate(opts flagsT) (*template.Template, error) {
	return commandTemplate("info", opts, infoTemplateString)
}
