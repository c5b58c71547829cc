package expressions_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcodec/pkg/component"
	"github.com/goliatone/go-formcodec/pkg/expressions"
)

func TestIsSimple(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  any
		want bool
	}{
		{name: "empty", raw: []any{}, want: true},
		{name: "comparison", raw: []any{"equals", []any{"dataModel", "a"}, "x"}, want: true},
		{name: "null operands", raw: []any{"notEquals", nil, nil}, want: true},
		{name: "operator", raw: []any{"and", []any{"equals", 1.0, 2.0}, []any{"lessThan", []any{"component", "c"}, 3.0}}, want: true},
		{name: "unknown function", raw: []any{"concat", "a", "b"}, want: false},
		{name: "too many operands", raw: []any{"equals", "a", "b", "c"}, want: false},
		{name: "lookup with three parts", raw: []any{"equals", []any{"dataModel", "a", "b"}, "x"}, want: false},
		{name: "nested operator", raw: []any{"or", []any{"and", []any{"equals", 1.0, 1.0}}}, want: false},
		{name: "boolean", raw: true, want: false},
		{name: "nil", raw: nil, want: false},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := expressions.IsSimple(tc.raw); got != tc.want {
				t.Fatalf("IsSimple(%v) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestToInternalSingleComparison(t *testing.T) {
	t.Parallel()

	raw := []any{"equals", []any{"dataModel", "person.age"}, 18.0}
	got := expressions.ToInternal(hidden, raw)
	want := expressions.Expression{
		Address: hidden,
		SubExpressions: []expressions.SubExpression{{
			Function:             expressions.FunctionEquals,
			DataSource:           expressions.DataSourceDataModel,
			Value:                "person.age",
			ComparableDataSource: expressions.DataSourceNumber,
			ComparableValue:      18.0,
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ToInternal mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(any(raw), expressions.ToExternal(got)); diff != "" {
		t.Fatalf("ToExternal mismatch (-want +got):\n%s", diff)
	}
}

func TestToInternalOperator(t *testing.T) {
	t.Parallel()

	raw := []any{
		"or",
		[]any{"equals", []any{"component", "consent"}, true},
		[]any{"notEquals", nil, "x"},
	}
	got := expressions.ToInternal(required, raw)
	want := expressions.Expression{
		Address:  required,
		Operator: expressions.OperatorOr,
		SubExpressions: []expressions.SubExpression{
			{
				Function:             expressions.FunctionEquals,
				DataSource:           expressions.DataSourceComponent,
				Value:                "consent",
				ComparableDataSource: expressions.DataSourceBoolean,
				ComparableValue:      true,
			},
			{
				Function:             expressions.FunctionNotEquals,
				DataSource:           expressions.DataSourceNull,
				ComparableDataSource: expressions.DataSourceString,
				ComparableValue:      "x",
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ToInternal mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(any(raw), expressions.ToExternal(got)); diff != "" {
		t.Fatalf("ToExternal mismatch (-want +got):\n%s", diff)
	}
}

func TestComplexExpressionsAreKeptVerbatim(t *testing.T) {
	t.Parallel()

	raw := []any{"if", []any{"equals", 1.0, 1.0}, "a", "else", "b"}
	got := expressions.ToInternal(hidden, raw)
	if !got.IsComplex() || len(got.SubExpressions) != 0 {
		t.Fatalf("expected complex expression, got %+v", got)
	}
	if diff := cmp.Diff(any(raw), expressions.ToExternal(got)); diff != "" {
		t.Fatalf("ToExternal mismatch (-want +got):\n%s", diff)
	}
}

func TestNullExpressionIsEmpty(t *testing.T) {
	t.Parallel()

	got := expressions.ToInternal(hidden, nil)
	if got.IsComplex() || len(got.SubExpressions) != 0 || got.Address != hidden {
		t.Fatalf("unexpected expression %+v", got)
	}
	if expressions.CanBeSaved(got) {
		t.Fatalf("empty expression cannot be saved")
	}
	if diff := cmp.Diff(any([]any{}), expressions.ToExternal(got)); diff != "" {
		t.Fatalf("ToExternal mismatch (-want +got):\n%s", diff)
	}
}

func TestMultipleSubExpressionsDefaultToAnd(t *testing.T) {
	t.Parallel()

	e := expressions.Expression{
		Address: hidden,
		SubExpressions: []expressions.SubExpression{
			{Function: expressions.FunctionLessThan, DataSource: expressions.DataSourceNumber, Value: 1.0, ComparableDataSource: expressions.DataSourceNumber, ComparableValue: 2.0},
			{Function: expressions.FunctionGreaterThanEq, DataSource: expressions.DataSourceInstanceContext, Value: "instanceOwnerPartyId", ComparableDataSource: expressions.DataSourceNumber, ComparableValue: 0.0},
		},
	}
	want := []any{
		"and",
		[]any{"lessThan", 1.0, 2.0},
		[]any{"greaterThanEq", []any{"instanceContext", "instanceOwnerPartyId"}, 0.0},
	}
	if diff := cmp.Diff(any(want), expressions.ToExternal(e)); diff != "" {
		t.Fatalf("ToExternal mismatch (-want +got):\n%s", diff)
	}
}

func TestCanBeSaved(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		expr expressions.Expression
		want bool
	}{
		{name: "no address", expr: expressions.Expression{Complex: true}},
		{name: "complex", expr: expressions.Expression{Address: hidden, Complex: []any{"if"}}, want: true},
		{name: "missing function", expr: expressions.Expression{Address: hidden, SubExpressions: []expressions.SubExpression{{}}}},
		{name: "complete", expr: expressions.Expression{Address: hidden, SubExpressions: []expressions.SubExpression{{Function: expressions.FunctionEquals}}}, want: true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := expressions.CanBeSaved(tc.expr); got != tc.want {
				t.Fatalf("CanBeSaved() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSetExpressionAndExpressionAt(t *testing.T) {
	t.Parallel()

	e := expressions.Expression{
		Address: addButton,
		SubExpressions: []expressions.SubExpression{{
			Function:             expressions.FunctionEquals,
			DataSource:           expressions.DataSourceDataModel,
			Value:                "locked",
			ComparableDataSource: expressions.DataSourceBoolean,
			ComparableValue:      false,
		}},
	}
	c := expressions.SetExpression(component.Component{Type: component.KindRepeatingGroup}, e)

	got, ok := expressions.ExpressionAt(c, addButton)
	if !ok {
		t.Fatalf("expected expression at %s", addButton)
	}
	if diff := cmp.Diff(e, got); diff != "" {
		t.Fatalf("expression mismatch (-want +got):\n%s", diff)
	}
	if _, ok := expressions.ExpressionAt(c, deleteBtn); ok {
		t.Fatalf("expected no expression at %s", deleteBtn)
	}
}
