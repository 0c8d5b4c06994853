package loader

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/leapstack-labs/treegen/pkg/core"
)

// xmlVariants maps the legacy element names to type variants.
var xmlVariants = map[string]core.TypeVariant{
	"AbstractNode":   core.VariantAbstractNode,
	"Node":           core.VariantConcreteNode,
	"ValueType":      core.VariantValueType,
	"EnumType":       core.VariantEnumType,
	"PredefinedNode": core.VariantPredefinedType,
}

type typeXML struct {
	Name        string     `xml:"Name,attr"`
	Base        string     `xml:"Base,attr"`
	HasValidate string     `xml:"HasValidate,attr"`
	Fields      []fieldXML `xml:"Field"`
}

type fieldXML struct {
	Name              string `xml:"Name,attr"`
	Type              string `xml:"Type,attr"`
	Null              string `xml:"Null,attr"`
	New               string `xml:"New,attr"`
	Override          string `xml:"Override,attr"`
	PropertyOverrides string `xml:"PropertyOverrides,attr"`
	SkipInVisitor     string `xml:"SkipInVisitor,attr"`
}

// parseXML walks the Tree element token by token so that type order is kept
// across the different element names.
func parseXML(data []byte) (*core.Schema, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var schema *core.Schema
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid XML: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		if schema == nil {
			if start.Name.Local != "Tree" {
				return nil, fmt.Errorf("invalid XML: root element is <%s>, expected <Tree>", start.Name.Local)
			}
			schema = &core.Schema{
				RootTypeName: attr(start, "Root"),
				Namespace:    attr(start, "Namespace"),
			}
			continue
		}

		variant, ok := xmlVariants[start.Name.Local]
		if !ok {
			if err := dec.Skip(); err != nil {
				return nil, fmt.Errorf("invalid XML: %w", err)
			}
			continue
		}
		var t typeXML
		if err := dec.DecodeElement(&t, &start); err != nil {
			return nil, fmt.Errorf("invalid XML in <%s>: %w", start.Name.Local, err)
		}
		schema.Types = append(schema.Types, t.toCore(variant))
	}

	if schema == nil {
		return nil, errors.New("invalid XML: no <Tree> element")
	}
	return schema, nil
}

func (t typeXML) toCore(variant core.TypeVariant) *core.TypeDef {
	def := &core.TypeDef{
		Name:            t.Name,
		Variant:         variant,
		BaseTypeName:    t.Base,
		HasValidateHook: parseBool(t.HasValidate),
	}
	for _, f := range t.Fields {
		def.Fields = append(def.Fields, &core.Field{
			Name:               f.Name,
			Type:               f.Type,
			Null:               f.Null,
			IsNew:              parseBool(f.New),
			IsOverride:         parseBool(f.Override),
			IsPropertyOverride: parseBool(f.PropertyOverrides),
			SkipInVisitor:      parseBool(f.SkipInVisitor),
		})
	}
	return def
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
