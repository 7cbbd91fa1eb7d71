package rules

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestConditionBooleanLiteral(t *testing.T) {
	t.Parallel()

	require.True(t, testCondition(&Condition{Bool: boolPtr(true)}, nil, nil))
	require.False(t, testCondition(&Condition{Bool: boolPtr(false)}, nil, nil))
	require.False(t, testCondition(nil, nil, nil))
}

func TestConditionPredicateFunc(t *testing.T) {
	t.Parallel()

	cond := &Condition{Fn: func(value any, _ *Context) bool {
		return value == "large"
	}}
	require.True(t, testCondition(cond, "large", nil))
	require.False(t, testCondition(cond, "small", nil))
}

func TestConditionOperators(t *testing.T) {
	t.Parallel()

	ctx := &Context{AllInputs: map[string]any{
		"size":     "large",
		"count":    3,
		"label":    "primary-button",
		"children": []any{"icon", "text"},
	}}

	cases := []struct {
		name string
		cond *Condition
		want bool
	}{
		{"eq match", &Condition{Prop: "size", Operator: "eq", Operand: "large"}, true},
		{"eq loose numeric", &Condition{Prop: "count", Operator: "eq", Operand: "3"}, true},
		{"seq rejects cross-type", &Condition{Prop: "count", Operator: "seq", Operand: "3"}, false},
		{"seq same type", &Condition{Prop: "size", Operator: "seq", Operand: "large"}, true},
		{"neq", &Condition{Prop: "size", Operator: "neq", Operand: "small"}, true},
		{"gt", &Condition{Prop: "count", Operator: "gt", Operand: 2}, true},
		{"gte equal", &Condition{Prop: "count", Operator: "gte", Operand: 3}, true},
		{"lt false", &Condition{Prop: "count", Operator: "lt", Operand: 3}, false},
		{"lte equal", &Condition{Prop: "count", Operator: "lte", Operand: 3}, true},
		{"unorderable is false", &Condition{Prop: "children", Operator: "gt", Operand: 1}, false},
		{"includes string", &Condition{Prop: "label", Operator: "includes", Operand: "button"}, true},
		{"includes slice", &Condition{Prop: "children", Operator: "includes", Operand: "icon"}, true},
		{"startsWith", &Condition{Prop: "label", Operator: "startsWith", Operand: "primary"}, true},
		{"endsWith", &Condition{Prop: "label", Operator: "endsWith", Operand: "button"}, true},
		{"matches", &Condition{Prop: "label", Operator: "matches", Operand: `^primary-\w+$`}, true},
		{"matches bad pattern is false", &Condition{Prop: "label", Operator: "matches", Operand: `([`}, false},
		{"exists", &Condition{Prop: "size", Operator: "exists"}, true},
		{"exists missing prop", &Condition{Prop: "ghost", Operator: "exists"}, false},
		{"empty on missing prop", &Condition{Prop: "ghost", Operator: "empty"}, true},
		{"empty on value", &Condition{Prop: "size", Operator: "empty"}, false},
		{"unknown operator is non-match", &Condition{Prop: "size", Operator: "resembles", Operand: "large"}, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, testCondition(tc.cond, nil, ctx))
		})
	}
}

func TestConditionBareValueOperand(t *testing.T) {
	t.Parallel()

	cond := &Condition{Operator: "eq", Operand: "primary"}
	require.True(t, testCondition(cond, "primary", &Context{}))
	require.False(t, testCondition(cond, "secondary", &Context{}))
}

func TestConditionComposites(t *testing.T) {
	t.Parallel()

	ctx := &Context{AllInputs: map[string]any{"size": "large", "disabled": false}}

	all := &Condition{All: []*Condition{
		{Prop: "size", Operator: "eq", Operand: "large"},
		{Prop: "disabled", Operator: "eq", Operand: false},
	}}
	require.True(t, testCondition(all, nil, ctx))

	anyOf := &Condition{Any: []*Condition{
		{Prop: "size", Operator: "eq", Operand: "tiny"},
		{Prop: "size", Operator: "eq", Operand: "large"},
	}}
	require.True(t, testCondition(anyOf, nil, ctx))

	not := &Condition{Not: &Condition{Prop: "size", Operator: "eq", Operand: "small"}}
	require.True(t, testCondition(not, nil, ctx))

	failing := &Condition{All: []*Condition{
		{Prop: "size", Operator: "eq", Operand: "large"},
		{Prop: "size", Operator: "eq", Operand: "small"},
	}}
	require.False(t, testCondition(failing, nil, ctx))
}

func TestConditionShortCircuit(t *testing.T) {
	t.Parallel()

	calls := 0
	counting := &Condition{Fn: func(any, *Context) bool {
		calls++
		return true
	}}

	anyOf := &Condition{Any: []*Condition{counting, counting}}
	require.True(t, testCondition(anyOf, nil, nil))
	require.Equal(t, 1, calls)
}
