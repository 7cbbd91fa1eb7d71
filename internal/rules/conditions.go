package rules

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// testCondition reports whether a condition holds for the given value and
// context. Unknown operators are treated as a non-match rather than an
// error, so unsatisfiable branches are skipped silently.
func testCondition(cond *Condition, value any, ctx *Context) bool {
	if cond == nil {
		return false
	}

	switch {
	case cond.Bool != nil:
		return *cond.Bool
	case cond.Fn != nil:
		return cond.Fn(value, ctx)
	case len(cond.All) > 0:
		for _, nested := range cond.All {
			if !testCondition(nested, value, ctx) {
				return false
			}
		}
		return true
	case len(cond.Any) > 0:
		for _, nested := range cond.Any {
			if testCondition(nested, value, ctx) {
				return true
			}
		}
		return false
	case cond.Not != nil:
		return !testCondition(cond.Not, value, ctx)
	}

	left := value
	if cond.Prop != "" && ctx != nil {
		left = ctx.AllInputs[cond.Prop]
	}
	return applyOperator(cond.Operator, left, cond.Operand)
}

func applyOperator(operator string, left, right any) bool {
	switch operator {
	case "eq", "==":
		return looseEqual(left, right)
	case "seq", "===":
		return strictEqual(left, right)
	case "neq", "!=":
		return !looseEqual(left, right)
	case "gt", ">":
		return compareOrdered(left, right) > 0
	case "gte", ">=":
		return compareOrdered(left, right) >= 0
	case "lt", "<":
		cmp := compareOrdered(left, right)
		return cmp == -1
	case "lte", "<=":
		cmp := compareOrdered(left, right)
		return cmp == -1 || cmp == 0
	case "includes":
		return includes(left, right)
	case "startsWith":
		ls, lok := left.(string)
		rs, rok := right.(string)
		return lok && rok && strings.HasPrefix(ls, rs)
	case "endsWith":
		ls, lok := left.(string)
		rs, rok := right.(string)
		return lok && rok && strings.HasSuffix(ls, rs)
	case "matches":
		ls, lok := left.(string)
		rs, rok := right.(string)
		if !lok || !rok {
			return false
		}
		re, err := regexp.Compile(rs)
		if err != nil {
			return false
		}
		return re.MatchString(ls)
	case "exists":
		return left != nil
	case "empty":
		return isEmpty(left)
	default:
		return false
	}
}

// looseEqual matches across numeric types and falls back to string
// rendering, mirroring the permissive equality semantic configs rely on.
func looseEqual(left, right any) bool {
	if left == nil || right == nil {
		return left == nil && right == nil
	}
	if reflect.DeepEqual(left, right) {
		return true
	}
	lf, lok := toFloat(left)
	rf, rok := toFloat(right)
	if lok && rok {
		return lf == rf
	}
	return stringify(left) == stringify(right)
}

func strictEqual(left, right any) bool {
	if left == nil || right == nil {
		return left == nil && right == nil
	}
	if reflect.TypeOf(left) != reflect.TypeOf(right) {
		return false
	}
	return reflect.DeepEqual(left, right)
}

// compareOrdered returns -1, 0 or 1 for comparable operands and a sentinel
// outside that range when the operands do not order, so every ordering
// operator reads false.
func compareOrdered(left, right any) int {
	lf, lok := toFloat(left)
	rf, rok := toFloat(right)
	if lok && rok {
		switch {
		case lf < rf:
			return -1
		case lf > rf:
			return 1
		default:
			return 0
		}
	}
	ls, lok := left.(string)
	rs, rok := right.(string)
	if lok && rok {
		return strings.Compare(ls, rs)
	}
	return -2
}

func includes(left, right any) bool {
	switch l := left.(type) {
	case string:
		if sub, ok := right.(string); ok {
			return strings.Contains(l, sub)
		}
		return false
	case []any:
		for _, elem := range l {
			if looseEqual(elem, right) {
				return true
			}
		}
		return false
	case []string:
		for _, elem := range l {
			if looseEqual(elem, right) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	switch val := v.(type) {
	case string:
		return val == ""
	case []any:
		return len(val) == 0
	case []string:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	default:
		return false
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case bool:
		if s {
			return "true"
		}
		return "false"
	default:
		if f, ok := toFloat(v); ok {
			return strconv.FormatFloat(f, 'g', -1, 64)
		}
		return fmt.Sprintf("%v", v)
	}
}
