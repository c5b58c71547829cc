package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formcodec/pkg/visibility"
)

// Evaluator is a small, dependency-free evaluator for persisted boolean
// expressions.
//
// Supported forms:
//   - literals: `true`, `false`, strings, numbers, `null`
//   - comparisons: `["equals", a, b]`, `notEquals`, `greaterThan`,
//     `greaterThanEq`, `lessThan`, `lessThanEq`
//   - composition: `["and", ...]`, `["or", ...]`, `["not", a]`
//   - lookups: `["dataModel", "path"]` and `["component", "id"]` read
//     visibility.Context.Values (with dot-path traversal);
//     `["instanceContext", "key"]` and `["frontendSettings", "key"]` read the
//     matching maps in visibility.Context.Extras.
//
// A null expression is an expression slot that has not been configured yet
// and evaluates to false.
type Evaluator struct{}

func New() *Evaluator { return &Evaluator{} }

func (e *Evaluator) Eval(address string, expression any, ctx visibility.Context) (bool, error) {
	_ = address
	value, err := evaluate(expression, ctx, 0)
	if err != nil {
		return false, err
	}
	return truthy(value), nil
}

const maxDepth = 64

func evaluate(node any, ctx visibility.Context, depth int) (any, error) {
	if depth > maxDepth {
		return nil, errors.New("visibility/expr: expression nested too deeply")
	}
	list, ok := node.([]any)
	if !ok {
		return node, nil
	}
	if len(list) == 0 {
		return nil, errors.New("visibility/expr: empty expression")
	}
	name, ok := list[0].(string)
	if !ok {
		return nil, fmt.Errorf("visibility/expr: expected function name, got %v", list[0])
	}
	args := list[1:]

	switch name {
	case "dataModel", "component":
		key, err := lookupKey(name, args)
		if err != nil {
			return nil, err
		}
		value, _ := lookupMap(ctx.Values, key)
		return value, nil
	case "instanceContext", "frontendSettings":
		key, err := lookupKey(name, args)
		if err != nil {
			return nil, err
		}
		value, _ := lookupMap(ctx.Extras, name+"."+key)
		return value, nil
	case "and", "or":
		if len(args) == 0 {
			return nil, fmt.Errorf("visibility/expr: %s needs at least one argument", name)
		}
		for _, arg := range args {
			value, err := evaluate(arg, ctx, depth+1)
			if err != nil {
				return nil, err
			}
			if name == "and" && !truthy(value) {
				return false, nil
			}
			if name == "or" && truthy(value) {
				return true, nil
			}
		}
		return name == "and", nil
	case "not":
		if len(args) != 1 {
			return nil, errors.New("visibility/expr: not takes exactly one argument")
		}
		value, err := evaluate(args[0], ctx, depth+1)
		if err != nil {
			return nil, err
		}
		return !truthy(value), nil
	case "equals", "notEquals", "greaterThan", "greaterThanEq", "lessThan", "lessThanEq":
		if len(args) != 2 {
			return nil, fmt.Errorf("visibility/expr: %s takes exactly two arguments", name)
		}
		left, err := evaluate(args[0], ctx, depth+1)
		if err != nil {
			return nil, err
		}
		right, err := evaluate(args[1], ctx, depth+1)
		if err != nil {
			return nil, err
		}
		return compare(name, left, right), nil
	default:
		return nil, fmt.Errorf("visibility/expr: unsupported function %q", name)
	}
}

func lookupKey(name string, args []any) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("visibility/expr: %s takes exactly one argument", name)
	}
	key, ok := args[0].(string)
	if !ok || strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("visibility/expr: %s expects a non-empty string key", name)
	}
	return strings.TrimSpace(key), nil
}

func compare(name string, left, right any) bool {
	switch name {
	case "equals":
		return equal(left, right)
	case "notEquals":
		return !equal(left, right)
	}

	l, lok := coerceNumber(left)
	r, rok := coerceNumber(right)
	if !lok || !rok {
		return false
	}
	switch name {
	case "greaterThan":
		return l > r
	case "greaterThanEq":
		return l >= r
	case "lessThan":
		return l < r
	case "lessThanEq":
		return l <= r
	default:
		return false
	}
}

func equal(left, right any) bool {
	if left == nil || right == nil {
		return left == nil && right == nil
	}
	if lb, ok := left.(bool); ok {
		rb, _ := coerceBool(right)
		return lb == rb
	}
	if rb, ok := right.(bool); ok {
		lb, _ := coerceBool(left)
		return lb == rb
	}
	l, lok := coerceNumber(left)
	r, rok := coerceNumber(right)
	if lok && rok {
		return l == r
	}
	return coerceString(left) == coerceString(right)
}

func lookupMap(values map[string]any, path string) (any, bool) {
	if len(values) == 0 || strings.TrimSpace(path) == "" {
		return nil, false
	}
	path = strings.TrimSpace(path)

	// Prefer exact match for dotted keys (common with flattened data like "person.age").
	if v, ok := values[path]; ok {
		return v, true
	}

	parts := strings.Split(path, ".")
	var current any = values
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, false
		}
		switch typed := current.(type) {
		case map[string]any:
			next, ok := typed[part]
			if !ok {
				return nil, false
			}
			current = next
		case map[string]string:
			next, ok := typed[part]
			if !ok {
				return nil, false
			}
			current = next
		default:
			return nil, false
		}
	}
	return current, true
}

func truthy(value any) bool {
	if value == nil {
		return false
	}
	switch v := value.(type) {
	case bool:
		return v
	case string:
		trimmed := strings.TrimSpace(v)
		if parsed, err := strconv.ParseBool(trimmed); err == nil {
			return parsed
		}
		return trimmed != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case float32:
		return v != 0
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}

func coerceBool(value any) (bool, bool) {
	if value == nil {
		return false, false
	}
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err == nil {
			return parsed, true
		}
		return strings.TrimSpace(v) != "", true
	case int:
		return v != 0, true
	case int64:
		return v != 0, true
	case float64:
		return v != 0, true
	default:
		return truthy(value), true
	}
}

func coerceNumber(value any) (float64, bool) {
	if value == nil {
		return 0, false
	}
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func coerceString(value any) string {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(value)
	}
}
