package changelog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"
)

//go:embed monitored_columns.yaml
var monitoredColumnsYAML []byte

// Field is one canonical monitored column together with every raw header
// spelling that resolves to it.
type Field struct {
	// Label is the canonical identifier, already stripped of any
	// descriptive suffix the raw header may carry.
	Label string
	// Names are the raw spellings, in preference order. A workbook is
	// expected to carry at most one of them.
	Names []string
}

// PresentColumn pairs a canonical field with the header index it was found
// at in a concrete workbook.
type PresentColumn struct {
	Field  string
	Column int
}

// registryDoc mirrors monitored_columns.yaml.
type registryDoc struct {
	Fields []struct {
		Label   string   `yaml:"label"`
		Aliases []string `yaml:"aliases"`
	} `yaml:"fields"`
	Families []struct {
		Blocks      []string `yaml:"blocks"`
		From        int      `yaml:"from"`
		To          int      `yaml:"to"`
		Pattern     string   `yaml:"pattern"`
		StripSuffix string   `yaml:"strip_suffix"`
	} `yaml:"families"`
}

// Registry maps raw monitored-column spellings to canonical fields. It is
// static configuration built once at startup, never derived from data.
type Registry struct {
	fields  []Field
	byAlias map[string]string
}

// NewRegistry builds the registry from the embedded configuration.
func NewRegistry() (*Registry, error) {
	var doc registryDoc
	if err := yaml.Unmarshal(monitoredColumnsYAML, &doc); err != nil {
		return nil, fmt.Errorf("parse monitored column registry: %w", err)
	}

	r := &Registry{byAlias: make(map[string]string)}

	for _, f := range doc.Fields {
		if f.Label == "" || len(f.Aliases) == 0 {
			return nil, fmt.Errorf("registry field %q has no aliases", f.Label)
		}
		r.add(Field{Label: f.Label, Names: f.Aliases})
	}

	for _, fam := range doc.Families {
		if fam.From > fam.To {
			return nil, fmt.Errorf("registry family %q has empty range %d..%d", fam.Pattern, fam.From, fam.To)
		}
		for _, block := range fam.Blocks {
			for n := fam.From; n <= fam.To; n++ {
				raw := fmt.Sprintf(fam.Pattern, block, n)
				label := strings.TrimSpace(strings.TrimSuffix(raw, fam.StripSuffix))
				r.add(Field{Label: label, Names: []string{raw}})
			}
		}
	}

	return r, nil
}

func (r *Registry) add(f Field) {
	r.fields = append(r.fields, f)
	for _, name := range f.Names {
		r.byAlias[name] = f.Label
	}
}

// Fields returns every monitored field in registration order.
func (r *Registry) Fields() []Field {
	return r.fields
}

// Canonical resolves a raw header spelling to its canonical field label.
func (r *Registry) Canonical(raw string) (string, bool) {
	label, ok := r.byAlias[strings.TrimSpace(raw)]
	return label, ok
}

// Present returns the monitored fields found in the given header row, in
// registration order, each with the header index of the alias that matched.
// Fields entirely absent from a workbook are skipped, not errored: older
// generations simply carry fewer monitored columns.
func (r *Registry) Present(headers []string) []PresentColumn {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.TrimSpace(h)] = i
	}

	var present []PresentColumn
	for _, f := range r.fields {
		for _, name := range f.Names {
			if col, ok := index[name]; ok {
				present = append(present, PresentColumn{Field: f.Label, Column: col})
				break
			}
		}
	}
	return present
}
