// Copyright (c) 2024, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gencpu

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"regexp"
	"strconv"
	"testing"
)

// cEval evaluates the integer index expressions of generated code,
// which are valid Go expressions once the ull suffixes are removed
type cEval struct {
	vars   map[string]int64
	arrays map[string][]int32
	words  map[string][]uint32
}

var ullRe = regexp.MustCompile(`(\d+)ull`)

func newEval() *cEval {
	return &cEval{vars: map[string]int64{}, arrays: map[string][]int32{}, words: map[string][]uint32{}}
}

func (ev *cEval) eval(t *testing.T, expr string) int64 {
	t.Helper()
	e, err := parser.ParseExpr(ullRe.ReplaceAllString(expr, "$1"))
	if err != nil {
		t.Fatalf("parsing %q: %v", expr, err)
	}
	v, err := ev.node(e)
	if err != nil {
		t.Fatalf("evaluating %q: %v", expr, err)
	}
	return v
}

func (ev *cEval) name(e ast.Expr) string {
	switch x := e.(type) {
	case *ast.Ident:
		return x.Name
	case *ast.SelectorExpr:
		return ev.name(x.X) + "." + x.Sel.Name
	}
	return ""
}

func (ev *cEval) node(e ast.Expr) (int64, error) {
	switch x := e.(type) {
	case *ast.BasicLit:
		return strconv.ParseInt(x.Value, 0, 64)
	case *ast.Ident:
		v, ok := ev.vars[x.Name]
		if !ok {
			return 0, fmt.Errorf("undefined: %s", x.Name)
		}
		return v, nil
	case *ast.ParenExpr:
		return ev.node(x.X)
	case *ast.BinaryExpr:
		a, err := ev.node(x.X)
		if err != nil {
			return 0, err
		}
		b, err := ev.node(x.Y)
		if err != nil {
			return 0, err
		}
		switch x.Op {
		case token.ADD:
			return a + b, nil
		case token.SUB:
			return a - b, nil
		case token.MUL:
			return a * b, nil
		case token.QUO:
			return a / b, nil
		case token.REM:
			return a % b, nil
		case token.AND:
			return a & b, nil
		case token.LAND:
			if a != 0 && b != 0 {
				return 1, nil
			}
			return 0, nil
		}
		return 0, fmt.Errorf("operator %v", x.Op)
	case *ast.IndexExpr:
		nm := ev.name(x.X)
		i, err := ev.node(x.Index)
		if err != nil {
			return 0, err
		}
		if ar, ok := ev.arrays[nm]; ok {
			if i < 0 || i >= int64(len(ar)) {
				return 0, fmt.Errorf("%s[%d] out of range %d", nm, i, len(ar))
			}
			return int64(ar[i]), nil
		}
		if wd, ok := ev.words[nm]; ok {
			if i < 0 || i >= int64(len(wd)) {
				return 0, fmt.Errorf("%s[%d] out of range %d", nm, i, len(wd))
			}
			return int64(wd[i]), nil
		}
		return 0, fmt.Errorf("undefined array: %s", nm)
	case *ast.CallExpr:
		if ev.name(x.Fun) != "B" || len(x.Args) != 2 {
			return 0, fmt.Errorf("unknown call: %s", ev.name(x.Fun))
		}
		w, err := ev.node(x.Args[0])
		if err != nil {
			return 0, err
		}
		b, err := ev.node(x.Args[1])
		if err != nil {
			return 0, err
		}
		return (w >> uint(b)) & 1, nil
	}
	return 0, fmt.Errorf("unsupported expression %T", e)
}

// visit is one synapse enumerated by a Loop
type visit struct {
	pre, post, syn int64
}

// run executes lp as the generated code would, returning the synapses visited
func (ev *cEval) run(t *testing.T, lp Loop) []visit {
	t.Helper()
	for _, d := range lp.Decls {
		ev.vars[d.Name] = ev.eval(t, d.Expr)
	}
	var vs []visit
	bound := ev.eval(t, lp.Bound)
	for c := int64(0); c < bound; c++ {
		ev.vars[lp.Counter] = c
		for _, bd := range lp.Binds {
			ev.vars[bd.Name] = ev.eval(t, bd.Expr)
		}
		if lp.Exists != "" && ev.eval(t, lp.Exists) == 0 {
			continue
		}
		vi := visit{pre: ev.eval(t, lp.Pre), post: ev.eval(t, lp.Post), syn: -1}
		if lp.Syn != "" {
			vi.syn = ev.eval(t, lp.Syn)
		}
		vs = append(vs, vi)
	}
	return vs
}
