package schemafile

import (
	"github.com/google/cel-go/cel"

	"github.com/thoreinstein/reqy/internal/errors"
	"github.com/thoreinstein/reqy/pkg/reqy"
)

// exprValidatorName is the validator name of $expr checks.
const exprValidatorName = "expr"

// exprVar is the variable an expression sees the field value as.
const exprVar = "value"

// exprEnv compiles CEL expressions over a single dynamically typed
// variable. Compiled programs are safe for concurrent evaluation.
type exprEnv struct {
	env *cel.Env
}

func newExprEnv() (*exprEnv, error) {
	env, err := cel.NewEnv(cel.Variable(exprVar, cel.DynType))
	if err != nil {
		return nil, errors.Wrap(err, "creating expression environment")
	}
	return &exprEnv{env: env}, nil
}

// compile type-checks src and returns a predicate that passes when the
// expression evaluates to true. Evaluation errors, such as a missing map
// key, fail the check instead of aborting validation.
func (x *exprEnv) compile(src string) (reqy.Predicate, error) {
	ast, iss := x.env.Compile(src)
	if iss != nil && iss.Err() != nil {
		return nil, errors.Wrapf(iss.Err(), "compiling expression %q", src)
	}
	out := ast.OutputType()
	if !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, errors.Newf("expression %q must produce a bool, not %s", src, out)
	}
	prg, err := x.env.Program(ast)
	if err != nil {
		return nil, errors.Wrapf(err, "building expression %q", src)
	}

	return func(value any) (reqy.Verdict, error) {
		result, _, err := prg.Eval(map[string]any{exprVar: value})
		if err != nil {
			return reqy.Failf("expression %q failed: %v", src, err), nil
		}
		ok, isBool := result.Value().(bool)
		switch {
		case !isBool:
			return reqy.Failf("expected expression %q to produce a bool, but got %v", src, result.Value()), nil
		case !ok:
			return reqy.Failf("expected expression %q to hold", src), nil
		default:
			return reqy.Pass, nil
		}
	}, nil
}

// Expr compiles a CEL expression into a validator named "expr" at the
// engine's default level. The expression sees the field value as "value".
func (c *Compiler) Expr(src string) (*reqy.Validator, error) {
	predicate, err := c.exprs.compile(src)
	if err != nil {
		return nil, err
	}
	return reqy.NewValidator(exprValidatorName, c.engine.DefaultLevel(), predicate), nil
}
