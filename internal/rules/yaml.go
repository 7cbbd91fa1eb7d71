package rules

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML decodes a rule document, dispatching on the type key the
// same way component steps do. Function-valued variants (direct mappers,
// computed rules, code combiners) cannot be expressed in YAML and must be
// attached by Go callers.
func (r *Rule) UnmarshalYAML(value *yaml.Node) error {
	// A bare scalar is shorthand for a custom rule by name.
	if value.Kind == yaml.ScalarNode {
		var name string
		if err := value.Decode(&name); err != nil {
			return err
		}
		r.Type = TypeCustom
		r.Name = name
		return nil
	}

	type baseRule struct {
		Type    string `yaml:"type"`
		Target  string `yaml:"target"`
		Library string `yaml:"library"`
	}

	var base baseRule
	if err := value.Decode(&base); err != nil {
		return err
	}

	r.Type = RuleType(base.Type)
	r.Target = base.Target
	r.Library = base.Library

	switch r.Type {
	case TypeDirect:
		// Nothing further; YAML direct rules are identity passes.
	case TypeMapping:
		var body struct {
			Mapping map[string]any `yaml:"mapping"`
			Default any            `yaml:"default"`
		}
		if err := value.Decode(&body); err != nil {
			return err
		}
		r.Mapping = body.Mapping
		r.Default = body.Default
		r.HasDefault = hasYAMLKey(value, "default")
	case TypeConditional:
		var body struct {
			Cases []yamlCase  `yaml:"cases"`
			Else  *yamlBranch `yaml:"else"`
		}
		if err := value.Decode(&body); err != nil {
			return err
		}
		r.Cases = make([]ConditionalCase, len(body.Cases))
		for i, c := range body.Cases {
			r.Cases[i] = ConditionalCase{When: c.When, Then: c.Then.consequence()}
		}
		if body.Else != nil {
			cons := body.Else.consequence()
			r.Else = &cons
		}
	case TypeMultiValue:
		var body struct {
			Inputs  []string         `yaml:"inputs"`
			Outputs map[string]*Rule `yaml:"outputs"`
		}
		if err := value.Decode(&body); err != nil {
			return err
		}
		r.Inputs = body.Inputs
		r.Outputs = body.Outputs
	case TypeCustom:
		var body struct {
			Name string         `yaml:"name"`
			Args map[string]any `yaml:"args"`
		}
		if err := value.Decode(&body); err != nil {
			return err
		}
		r.Name = body.Name
		r.Args = body.Args
	case TypeChain:
		var body struct {
			Steps []*Rule `yaml:"steps"`
		}
		if err := value.Decode(&body); err != nil {
			return err
		}
		r.Steps = body.Steps
	case TypeComputed:
		return fmt.Errorf("computed rules cannot be declared in YAML; attach them in code")
	default:
		// Leave the unknown type in place; evaluation reports it with the
		// owning input location.
	}

	return nil
}

type yamlCase struct {
	When *Condition `yaml:"when"`
	Then yamlBranch `yaml:"then"`
}

// yamlBranch decodes a consequence that is either a nested rule (a mapping
// node carrying a type key) or a literal value.
type yamlBranch struct {
	rule  *Rule
	value any
}

func (b *yamlBranch) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.MappingNode && hasYAMLKey(value, "type") {
		var r Rule
		if err := value.Decode(&r); err != nil {
			return err
		}
		b.rule = &r
		return nil
	}
	return value.Decode(&b.value)
}

func (b yamlBranch) consequence() Consequence {
	return Consequence{Rule: b.rule, Value: b.value}
}

// UnmarshalYAML decodes a condition: a boolean literal, a comparison object
// or a composite all/any/not node.
func (c *Condition) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var b bool
		if err := value.Decode(&b); err != nil {
			return fmt.Errorf("condition scalar must be boolean: %w", err)
		}
		c.Bool = &b
		return nil
	}

	var body struct {
		Prop     string       `yaml:"prop"`
		Operator string       `yaml:"operator"`
		Value    any          `yaml:"value"`
		All      []*Condition `yaml:"all"`
		Any      []*Condition `yaml:"any"`
		Not      *Condition   `yaml:"not"`
	}
	if err := value.Decode(&body); err != nil {
		return err
	}

	c.Prop = body.Prop
	c.Operator = body.Operator
	c.Operand = body.Value
	c.All = body.All
	c.Any = body.Any
	c.Not = body.Not
	return nil
}

func hasYAMLKey(node *yaml.Node, key string) bool {
	if node == nil || node.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i < len(node.Content); i += 2 {
		k := node.Content[i]
		if strings.EqualFold(k.Value, key) {
			return true
		}
	}
	return false
}
