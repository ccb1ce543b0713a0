package rules

import (
	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// RollFunc evaluates a dice notation string to a total. The registry binds
// it as the roll() function inside effect expressions.
type RollFunc func(string) int

// Registry manages the CEL environment for data-authored hazard and event
// card effects.
type Registry struct {
	env *cel.Env
}

// NewRegistry initializes the CEL environment with the race-specific
// variables and the roll() helper.
func NewRegistry(rollFunc RollFunc) (*Registry, error) {
	env, err := cel.NewEnv(
		cel.Variable("actor", cel.MapType(cel.StringType, cel.AnyType)),
		cel.Variable("stage", cel.MapType(cel.StringType, cel.AnyType)),
		cel.Variable("round", cel.IntType),

		cel.Function("roll",
			cel.Overload("roll_string",
				[]*cel.Type{cel.StringType},
				cel.IntType,
				cel.UnaryBinding(func(arg ref.Val) ref.Val {
					s := arg.Value().(string)
					return types.Int(rollFunc(s))
				}),
			),
		),
	)
	if err != nil {
		return nil, err
	}
	return &Registry{env: env}, nil
}

// Eval executes a CEL expression against the provided context.
func (r *Registry) Eval(expression string, context map[string]any) (any, error) {
	ast, iss := r.env.Compile(expression)
	if iss.Err() != nil {
		return nil, iss.Err()
	}
	prog, err := r.env.Program(ast)
	if err != nil {
		return nil, err
	}
	out, _, err := prog.Eval(context)
	if err != nil {
		return nil, err
	}
	return out.Value(), nil
}

// EvalInt evaluates an expression expected to yield an integer amount.
// Non-integer results collapse to zero.
func (r *Registry) EvalInt(expression string, context map[string]any) (int, error) {
	out, err := r.Eval(expression, context)
	if err != nil {
		return 0, err
	}
	switch v := out.(type) {
	case int64:
		return int(v), nil
	case int:
		return v, nil
	case float64:
		return int(v), nil
	case bool:
		if v {
			return 1, nil
		}
	}
	return 0, nil
}

// EvalBool evaluates a trigger expression. Anything but true is false.
func (r *Registry) EvalBool(expression string, context map[string]any) (bool, error) {
	out, err := r.Eval(expression, context)
	if err != nil {
		return false, err
	}
	b, ok := out.(bool)
	return ok && b, nil
}
