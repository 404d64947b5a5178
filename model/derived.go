// Copyright (c) 2024, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"fmt"
	"math"

	"github.com/expr-lang/expr"
)

// mathFuncs are the functions available in derived parameter expressions,
// in addition to the expr builtins (abs, ceil, floor, max, min, round)
var mathFuncs = map[string]any{
	"exp":  math.Exp,
	"log":  math.Log,
	"sqrt": math.Sqrt,
	"pow":  math.Pow,
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tanh": math.Tanh,
}

// EvalDerived evaluates derived parameter expressions in order.  Each
// expression can use the parameters, DT, earlier derived parameters
// and the math functions exp, log, sqrt, pow, sin, cos, tanh.
func EvalDerived(dps []DerivedParam, params map[string]float64, dt float64) (map[string]float64, error) {
	der := make(map[string]float64, len(dps))
	if len(dps) == 0 {
		return der, nil
	}
	env := make(map[string]any, len(params)+len(mathFuncs)+len(dps)+1)
	for k, f := range mathFuncs {
		env[k] = f
	}
	for k, v := range params {
		env[k] = v
	}
	env["DT"] = dt
	for _, dp := range dps {
		prog, err := expr.Compile(dp.Expr, expr.Env(env), expr.AsFloat64())
		if err != nil {
			return nil, fmt.Errorf("derived parameter %q: %w", dp.Name, err)
		}
		out, err := expr.Run(prog, env)
		if err != nil {
			return nil, fmt.Errorf("derived parameter %q: %w", dp.Name, err)
		}
		v := out.(float64)
		der[dp.Name] = v
		env[dp.Name] = v
	}
	return der, nil
}
