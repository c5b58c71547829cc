package expressions

import "github.com/goliatone/go-formcodec/pkg/component"

// Function is a comparison function usable in an editor friendly expression.
type Function string

const (
	FunctionEquals        Function = "equals"
	FunctionNotEquals     Function = "notEquals"
	FunctionGreaterThan   Function = "greaterThan"
	FunctionGreaterThanEq Function = "greaterThanEq"
	FunctionLessThan      Function = "lessThan"
	FunctionLessThanEq    Function = "lessThanEq"
)

// Functions lists the comparison functions in display order.
var Functions = []Function{
	FunctionEquals,
	FunctionNotEquals,
	FunctionGreaterThan,
	FunctionGreaterThanEq,
	FunctionLessThan,
	FunctionLessThanEq,
}

func isFunction(name string) bool {
	for _, fn := range Functions {
		if string(fn) == name {
			return true
		}
	}
	return false
}

// Operator joins several sub-expressions.
type Operator string

const (
	OperatorAnd Operator = "and"
	OperatorOr  Operator = "or"
)

func isOperator(name string) bool {
	return name == string(OperatorAnd) || name == string(OperatorOr)
}

// DataSource describes where an operand gets its value from. Lookup sources
// are persisted as a [source, key] pair; literal sources as the bare value.
type DataSource string

const (
	DataSourceComponent           DataSource = "component"
	DataSourceDataModel           DataSource = "dataModel"
	DataSourceInstanceContext     DataSource = "instanceContext"
	DataSourceApplicationSettings DataSource = "frontendSettings"
	DataSourceString              DataSource = "string"
	DataSourceNumber              DataSource = "number"
	DataSourceBoolean             DataSource = "boolean"
	DataSourceNull                DataSource = "null"
)

// IsLookup reports whether the source reads a value from runtime context.
func (d DataSource) IsLookup() bool {
	switch d {
	case DataSourceComponent, DataSourceDataModel, DataSourceInstanceContext, DataSourceApplicationSettings:
		return true
	default:
		return false
	}
}

// SubExpression is a single comparison "Function(operand, comparable)".
type SubExpression struct {
	Function             Function   `json:"function,omitempty"`
	DataSource           DataSource `json:"dataSource,omitempty"`
	Value                any        `json:"value,omitempty"`
	ComparableDataSource DataSource `json:"comparableDataSource,omitempty"`
	ComparableValue      any        `json:"comparableValue,omitempty"`
}

// Expression is the editable form of a persisted expression. Expressions the
// editor cannot break down are kept verbatim in Complex.
type Expression struct {
	Address        Address         `json:"property"`
	Operator       Operator        `json:"operator,omitempty"`
	SubExpressions []SubExpression `json:"subExpressions,omitempty"`
	Complex        any             `json:"complexExpression,omitempty"`
}

// IsComplex reports whether the expression is kept verbatim.
func (e Expression) IsComplex() bool {
	return e.Complex != nil
}

// CanBeSaved reports whether e is complete enough to persist: it needs an
// address and either a verbatim expression or at least one sub-expression,
// each with a function.
func CanBeSaved(e Expression) bool {
	if e.Address.Key == "" {
		return false
	}
	if e.IsComplex() {
		return true
	}
	if len(e.SubExpressions) == 0 {
		return false
	}
	for _, sub := range e.SubExpressions {
		if sub.Function == "" {
			return false
		}
	}
	return true
}

// IsSimple reports whether raw can be edited as sub-expressions: either a
// single comparison [function, operand, operand] or an operator followed by
// such comparisons. An empty list is simple so editing can start from
// scratch.
func IsSimple(raw any) bool {
	list, ok := raw.([]any)
	if !ok {
		return false
	}
	if len(list) == 0 {
		return true
	}
	if head, ok := list[0].(string); ok && isOperator(head) {
		for _, item := range list[1:] {
			if !isSimpleComparison(item) {
				return false
			}
		}
		return true
	}
	return isSimpleComparison(list)
}

func isSimpleComparison(raw any) bool {
	list, ok := raw.([]any)
	if !ok || len(list) != 3 {
		return false
	}
	for _, operand := range list[1:] {
		if pair, isList := operand.([]any); isList && len(pair) != 2 {
			return false
		}
	}
	name, ok := list[0].(string)
	return ok && isFunction(name)
}

// ToInternal converts a persisted expression at addr into its editable form.
// A nil value yields an empty expression ready for editing.
func ToInternal(addr Address, raw any) Expression {
	out := Expression{Address: addr}
	if raw == nil {
		return out
	}
	if !IsSimple(raw) {
		out.Complex = raw
		return out
	}
	list := raw.([]any)
	if len(list) == 0 {
		return out
	}
	if head, ok := list[0].(string); ok && isOperator(head) {
		out.Operator = Operator(head)
		for _, item := range list[1:] {
			out.SubExpressions = append(out.SubExpressions, subExpressionToInternal(item.([]any)))
		}
		return out
	}
	out.SubExpressions = []SubExpression{subExpressionToInternal(list)}
	return out
}

func subExpressionToInternal(list []any) SubExpression {
	sub := SubExpression{Function: Function(list[0].(string))}
	sub.DataSource, sub.Value = operandToInternal(list[1])
	sub.ComparableDataSource, sub.ComparableValue = operandToInternal(list[2])
	return sub
}

func operandToInternal(raw any) (DataSource, any) {
	switch typed := raw.(type) {
	case nil:
		return DataSourceNull, nil
	case []any:
		source, _ := typed[0].(string)
		return DataSource(source), typed[1]
	case string:
		return DataSourceString, typed
	case bool:
		return DataSourceBoolean, typed
	case float64, float32, int, int64, int32:
		return DataSourceNumber, typed
	default:
		return DataSourceString, typed
	}
}

// ToExternal converts an editable expression back to its persisted form.
func ToExternal(e Expression) any {
	if e.IsComplex() {
		return e.Complex
	}
	switch len(e.SubExpressions) {
	case 0:
		return []any{}
	case 1:
		return subExpressionToExternal(e.SubExpressions[0])
	}
	operator := e.Operator
	if operator == "" {
		operator = OperatorAnd
	}
	out := make([]any, 0, len(e.SubExpressions)+1)
	out = append(out, string(operator))
	for _, sub := range e.SubExpressions {
		out = append(out, subExpressionToExternal(sub))
	}
	return out
}

func subExpressionToExternal(sub SubExpression) []any {
	return []any{
		string(sub.Function),
		operandToExternal(sub.DataSource, sub.Value),
		operandToExternal(sub.ComparableDataSource, sub.ComparableValue),
	}
}

func operandToExternal(source DataSource, value any) any {
	if source == "" || source == DataSourceNull {
		return nil
	}
	if source.IsLookup() {
		return []any{string(source), value}
	}
	return value
}

// SetExpression stores the persisted form of e on a copy of c.
func SetExpression(c component.Component, e Expression) component.Component {
	return Set(c, e.Address, ToExternal(e))
}

// ExpressionAt reads the value at addr as an editable expression. The boolean
// is false when the address is unset.
func ExpressionAt(c component.Component, addr Address) (Expression, bool) {
	raw, ok := Get(c, addr)
	if !ok {
		return Expression{}, false
	}
	return ToInternal(addr, raw), true
}
