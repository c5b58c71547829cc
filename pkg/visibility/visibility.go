package visibility

// Evaluator decides the boolean outcome of a persisted expression value found
// at address (for example "hidden" or "edit.addButton").
type Evaluator interface {
	Eval(address string, expression any, ctx Context) (bool, error)
}

// Context provides inputs to an Evaluator. Values holds data model and
// component values keyed by dotted path; Extras carries instance context and
// frontend settings under the "instanceContext" and "frontendSettings" keys.
type Context struct {
	Values map[string]any
	Extras map[string]any
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(address string, expression any, ctx Context) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(address string, expression any, ctx Context) (bool, error) {
	return fn(address, expression, ctx)
}
