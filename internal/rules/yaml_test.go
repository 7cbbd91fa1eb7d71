package rules

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestUnmarshalMappingRule(t *testing.T) {
	t.Parallel()

	doc := `
type: mapping
target: color
mapping:
  primary: blue
  danger: red
default: grey
`
	var rule Rule
	require.NoError(t, yaml.Unmarshal([]byte(doc), &rule))
	require.Equal(t, TypeMapping, rule.Type)
	require.Equal(t, "color", rule.Target)
	require.Equal(t, "blue", rule.Mapping["primary"])
	require.True(t, rule.HasDefault)
	require.Equal(t, "grey", rule.Default)
}

func TestUnmarshalMappingRuleWithoutDefault(t *testing.T) {
	t.Parallel()

	doc := `
type: mapping
mapping:
  a: X
`
	var rule Rule
	require.NoError(t, yaml.Unmarshal([]byte(doc), &rule))
	require.False(t, rule.HasDefault)
}

func TestUnmarshalConditionalRule(t *testing.T) {
	t.Parallel()

	doc := `
type: conditional
cases:
  - when:
      prop: variant
      operator: eq
      value: primary
    then: elevated
  - when:
      all:
        - prop: size
          operator: eq
          value: large
        - not:
            prop: disabled
            operator: eq
            value: true
    then:
      type: mapping
      mapping:
        large: lg
else: flat
`
	var rule Rule
	require.NoError(t, yaml.Unmarshal([]byte(doc), &rule))
	require.Equal(t, TypeConditional, rule.Type)
	require.Len(t, rule.Cases, 2)

	first := rule.Cases[0]
	require.Equal(t, "variant", first.When.Prop)
	require.Equal(t, "eq", first.When.Operator)
	require.Equal(t, "primary", first.When.Operand)
	require.Nil(t, first.Then.Rule)
	require.Equal(t, "elevated", first.Then.Value)

	second := rule.Cases[1]
	require.Len(t, second.When.All, 2)
	require.NotNil(t, second.When.All[1].Not)
	require.NotNil(t, second.Then.Rule)
	require.Equal(t, TypeMapping, second.Then.Rule.Type)

	require.NotNil(t, rule.Else)
	require.Equal(t, "flat", rule.Else.Value)
}

func TestUnmarshalBooleanCondition(t *testing.T) {
	t.Parallel()

	doc := `
type: conditional
cases:
  - when: true
    then: always
`
	var rule Rule
	require.NoError(t, yaml.Unmarshal([]byte(doc), &rule))
	require.NotNil(t, rule.Cases[0].When.Bool)
	require.True(t, *rule.Cases[0].When.Bool)
}

func TestUnmarshalChainAndCustom(t *testing.T) {
	t.Parallel()

	doc := `
type: chain
steps:
  - type: mapping
    mapping:
      primary: elevated
  - type: custom
    name: kebab-case
    library: vuetify
    args:
      prefix: v
`
	var rule Rule
	require.NoError(t, yaml.Unmarshal([]byte(doc), &rule))
	require.Equal(t, TypeChain, rule.Type)
	require.Len(t, rule.Steps, 2)
	require.Equal(t, TypeCustom, rule.Steps[1].Type)
	require.Equal(t, "kebab-case", rule.Steps[1].Name)
	require.Equal(t, "vuetify", rule.Steps[1].Library)
	require.Equal(t, "v", rule.Steps[1].Args["prefix"])
}

func TestUnmarshalScalarShorthandIsCustom(t *testing.T) {
	t.Parallel()

	var rule Rule
	require.NoError(t, yaml.Unmarshal([]byte(`kebab-case`), &rule))
	require.Equal(t, TypeCustom, rule.Type)
	require.Equal(t, "kebab-case", rule.Name)
}

func TestUnmarshalMultiValueRule(t *testing.T) {
	t.Parallel()

	doc := `
type: multiValue
inputs: [icon, iconPosition]
outputs:
  appendIcon:
    type: conditional
    cases:
      - when:
          prop: iconPosition
          operator: eq
          value: right
        then: from-icon
`
	var rule Rule
	require.NoError(t, yaml.Unmarshal([]byte(doc), &rule))
	require.Equal(t, TypeMultiValue, rule.Type)
	require.Equal(t, []string{"icon", "iconPosition"}, rule.Inputs)
	require.Contains(t, rule.Outputs, "appendIcon")
}

func TestUnmarshalComputedRuleRejected(t *testing.T) {
	t.Parallel()

	var rule Rule
	err := yaml.Unmarshal([]byte("type: computed"), &rule)
	require.Error(t, err)
	require.Contains(t, err.Error(), "computed")
}
