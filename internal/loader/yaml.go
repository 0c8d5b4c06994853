package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/leapstack-labs/treegen/pkg/core"
	"gopkg.in/yaml.v3"
)

// schemaYAML is the on-disk YAML layout.
type schemaYAML struct {
	Root      string     `yaml:"root"`
	Namespace string     `yaml:"namespace"`
	Types     []typeYAML `yaml:"types"`
}

type typeYAML struct {
	Name     string      `yaml:"name"`
	Kind     string      `yaml:"kind"` // abstract, concrete, value, enum, predefined
	Base     string      `yaml:"base"`
	Validate bool        `yaml:"validate"`
	Fields   []fieldYAML `yaml:"fields"`
}

// fieldYAML uses "nullable" because a bare "null" key decodes as the null scalar.
type fieldYAML struct {
	Name             string `yaml:"name"`
	Type             string `yaml:"type"`
	Nullable         string `yaml:"nullable"`
	New              bool   `yaml:"new"`
	Override         bool   `yaml:"override"`
	PropertyOverride bool   `yaml:"property_override"`
	SkipInVisitor    bool   `yaml:"skip_in_visitor"`
}

func parseYAML(data []byte) (*core.Schema, error) {
	var doc schemaYAML
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	schema := &core.Schema{RootTypeName: doc.Root, Namespace: doc.Namespace}
	for _, t := range doc.Types {
		kind := t.Kind
		if kind == "" {
			kind = "concrete"
		}
		variant, ok := core.ParseTypeVariant(kind)
		if !ok {
			return nil, ValidationErrors{{Type: t.Name, Message: fmt.Sprintf("unknown kind %q", t.Kind)}}
		}
		def := &core.TypeDef{
			Name:            t.Name,
			Variant:         variant,
			BaseTypeName:    t.Base,
			HasValidateHook: t.Validate,
		}
		for _, f := range t.Fields {
			def.Fields = append(def.Fields, &core.Field{
				Name:               f.Name,
				Type:               f.Type,
				Null:               f.Nullable,
				IsNew:              f.New,
				IsOverride:         f.Override,
				IsPropertyOverride: f.PropertyOverride,
				SkipInVisitor:      f.SkipInVisitor,
			})
		}
		schema.Types = append(schema.Types, def)
	}
	return schema, nil
}
