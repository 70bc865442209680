// Package skills turns heterogeneous skill fields into comparable tokens and
// scores a candidate's skills against a required skill set.
package skills

import (
	"fmt"
	"strings"
)

// Kind tags the shape a skill field arrived in.
type Kind int

const (
	// KindText is a delimited string such as "Go, Docker; SQL".
	KindText Kind = iota
	// KindJSON is a JSON-encoded array of strings or {name, level} objects.
	KindJSON
	// KindList is an already split list of names.
	KindList
	// KindStructured is a list of named skills with an optional level.
	KindStructured
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindJSON:
		return "json"
	case KindList:
		return "list"
	case KindStructured:
		return "structured"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Skill is a named skill with an optional proficiency level.
type Skill struct {
	Name  string `json:"name" mapstructure:"name"`
	Level string `json:"level,omitempty" mapstructure:"level"`
}

// Input is a skill field in one of the supported shapes.
// The zero value is an empty text input.
type Input struct {
	kind       Kind
	text       string
	list       []string
	structured []Skill
}

// Text wraps a delimited string.
func Text(s string) Input { return Input{kind: KindText, text: s} }

// JSON wraps a JSON-encoded skill array.
func JSON(s string) Input { return Input{kind: KindJSON, text: s} }

// List wraps a list of skill names.
func List(names ...string) Input { return Input{kind: KindList, list: names} }

// Structured wraps a list of named skills.
func Structured(items ...Skill) Input { return Input{kind: KindStructured, structured: items} }

// Kind returns the shape of the input.
func (in Input) Kind() Kind { return in.kind }

// IsEmpty reports whether the input carries no data at all.
func (in Input) IsEmpty() bool {
	return strings.TrimSpace(in.text) == "" && len(in.list) == 0 && len(in.structured) == 0
}

// FromAny builds an Input from a loosely-typed decoded value: a string
// (JSON when it starts with '['), a list of strings, a list of maps with a
// "name" key, or an already built Input. Anything else is rendered with %v
// and treated as text.
func FromAny(v any) Input {
	switch val := v.(type) {
	case nil:
		return Input{}
	case Input:
		return val
	case string:
		if strings.HasPrefix(strings.TrimSpace(val), "[") {
			return JSON(val)
		}
		return Text(val)
	case []string:
		return List(val...)
	case []Skill:
		return Structured(val...)
	case []map[string]any:
		items := make([]Skill, 0, len(val))
		for _, m := range val {
			items = append(items, skillFromMap(m))
		}
		return Structured(items...)
	case []any:
		return fromSlice(val)
	default:
		return Text(fmt.Sprintf("%v", v))
	}
}

func fromSlice(values []any) Input {
	structured := false
	for _, v := range values {
		if _, ok := v.(map[string]any); ok {
			structured = true
			break
		}
	}

	if !structured {
		names := make([]string, 0, len(values))
		for _, v := range values {
			if v == nil {
				continue
			}
			names = append(names, fmt.Sprintf("%v", v))
		}
		return List(names...)
	}

	items := make([]Skill, 0, len(values))
	for _, v := range values {
		switch val := v.(type) {
		case map[string]any:
			items = append(items, skillFromMap(val))
		case nil:
		default:
			items = append(items, Skill{Name: fmt.Sprintf("%v", val)})
		}
	}
	return Structured(items...)
}

func skillFromMap(m map[string]any) Skill {
	var s Skill
	for _, key := range []string{"name", "skill", "title", "label"} {
		if v, ok := m[key]; ok && v != nil {
			s.Name = fmt.Sprintf("%v", v)
			break
		}
	}
	if v, ok := m["level"]; ok && v != nil {
		s.Level = fmt.Sprintf("%v", v)
	}
	return s
}
