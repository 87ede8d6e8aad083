package llm

import (
	"fmt"
	"strings"
)

// Kind enumerates the value types a schema field can take.
type Kind int

const (
	KindString Kind = iota
	KindFloat
	KindBool
	KindEnum
	KindStringList
	KindObject
)

// Field describes one key of a structured response. Enum lists the allowed
// values for KindEnum; Fields holds the nested shape for KindObject.
type Field struct {
	Name        string
	Kind        Kind
	Description string
	Enum        []string
	Fields      Shape
}

// Shape is an ordered structured-response schema. Order is preserved when
// rendering so prompts stay byte-stable across runs.
type Shape []Field

// Render produces the schema text embedded in a synthesis prompt.
func (s Shape) Render() string {
	var b strings.Builder
	s.render(&b, 0)
	return b.String()
}

func (s Shape) render(b *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	b.WriteString("{\n")
	for i, f := range s {
		fmt.Fprintf(b, "%s  %q: ", indent, f.Name)
		switch f.Kind {
		case KindObject:
			f.Fields.render(b, depth+1)
		case KindEnum:
			fmt.Fprintf(b, "%q", strings.Join(f.Enum, " | "))
		case KindStringList:
			b.WriteString(`["string"]`)
		case KindFloat:
			b.WriteString(`"float"`)
		case KindBool:
			b.WriteString(`"boolean"`)
		default:
			if f.Description != "" {
				fmt.Fprintf(b, `{"type": "string", "description": %q}`, f.Description)
			} else {
				b.WriteString(`"string"`)
			}
		}
		if i < len(s)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(indent + "}")
}

// Validate checks a decoded JSON object against the shape. Every field must
// be present with a value of the declared type; enum values must be one of
// the allowed options.
func (s Shape) Validate(obj map[string]any) error {
	return s.validate(obj, "")
}

func (s Shape) validate(obj map[string]any, path string) error {
	for _, f := range s {
		key := f.Name
		if path != "" {
			key = path + "." + f.Name
		}

		val, ok := obj[f.Name]
		if !ok {
			return fmt.Errorf("missing field %q", key)
		}

		switch f.Kind {
		case KindString, KindEnum:
			str, ok := val.(string)
			if !ok {
				return fmt.Errorf("field %q: expected string, got %T", key, val)
			}
			if f.Kind == KindEnum && !containsFold(f.Enum, str) {
				return fmt.Errorf("field %q: %q is not one of %v", key, str, f.Enum)
			}
		case KindFloat:
			if _, ok := val.(float64); !ok {
				return fmt.Errorf("field %q: expected number, got %T", key, val)
			}
		case KindBool:
			if _, ok := val.(bool); !ok {
				return fmt.Errorf("field %q: expected boolean, got %T", key, val)
			}
		case KindStringList:
			list, ok := val.([]any)
			if !ok {
				return fmt.Errorf("field %q: expected array, got %T", key, val)
			}
			for i, item := range list {
				if _, ok := item.(string); !ok {
					return fmt.Errorf("field %q[%d]: expected string, got %T", key, i, item)
				}
			}
		case KindObject:
			nested, ok := val.(map[string]any)
			if !ok {
				return fmt.Errorf("field %q: expected object, got %T", key, val)
			}
			if err := f.Fields.validate(nested, key); err != nil {
				return err
			}
		}
	}
	return nil
}

func containsFold(options []string, v string) bool {
	for _, o := range options {
		if strings.EqualFold(o, v) {
			return true
		}
	}
	return false
}
