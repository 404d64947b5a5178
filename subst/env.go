// Copyright (c) 2024, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package subst

import (
	"fmt"
	"strconv"
	"strings"
)

// Func is a function-style substitution: the Pattern is itself a template
// in which $(0), $(1), ... stand for the actual arguments.
type Func struct {
	Arity   int
	Pattern string
}

// Env maps placeholder names to substitutions.  A child Env shadows
// its parent, so per-loop substitutions can be layered on top of
// per-group ones without copying.
type Env struct {
	parent *Env
	vars   map[string]string
	funcs  map[string]Func
}

// NewEnv returns a new empty root environment
func NewEnv() *Env {
	return &Env{vars: map[string]string{}, funcs: map[string]Func{}}
}

// Child returns a new environment layered on top of this one
func (en *Env) Child() *Env {
	ch := NewEnv()
	ch.parent = en
	return ch
}

// Var sets a literal substitution of $(name) by expr
func (en *Env) Var(name, expr string) {
	en.vars[name] = expr
}

// Vars sets an indexed name substitution for each of names,
// replacing $(name) by fun(name), e.g., name + "Syn[ipre]".
func (en *Env) Vars(names []string, fun func(name string) string) {
	for _, nm := range names {
		en.vars[nm] = fun(nm)
	}
}

// Func sets a function-style substitution of $(name, a0, ...)
func (en *Env) Func(name string, arity int, pattern string) {
	en.funcs[name] = Func{Arity: arity, Pattern: pattern}
}

// LookupVar returns the substitution for name, searching parents
func (en *Env) LookupVar(name string) (string, bool) {
	for e := en; e != nil; e = e.parent {
		if v, ok := e.vars[name]; ok {
			return v, true
		}
	}
	return "", false
}

// LookupFunc returns the function substitution for name, searching parents
func (en *Env) LookupFunc(name string) (Func, bool) {
	for e := en; e != nil; e = e.parent {
		if f, ok := e.funcs[name]; ok {
			return f, true
		}
	}
	return Func{}, false
}

// Apply substitutes every placeholder in tm in one pass.
// Any placeholder without a substitution is an error.
func Apply(tm Template, en *Env) (string, error) {
	var b strings.Builder
	for i := range tm.tokens {
		tk := &tm.tokens[i]
		if !tk.IsPlaceholder() {
			b.WriteString(tk.Text)
			continue
		}
		s, err := en.expand(tk)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

// ApplyString parses and applies code in one step
func ApplyString(code string, en *Env) (string, error) {
	tm, err := Parse(code)
	if err != nil {
		return "", err
	}
	return Apply(tm, en)
}

func (en *Env) expand(tk *Token) (string, error) {
	if !tk.IsFunc {
		if v, ok := en.LookupVar(tk.Name); ok {
			return v, nil
		}
		if f, ok := en.LookupFunc(tk.Name); ok {
			if f.Arity != 0 {
				return "", fmt.Errorf("subst: %w: $(%s) takes %d, got 0", ErrArity, tk.Name, f.Arity)
			}
			return ApplyString(f.Pattern, en)
		}
		return "", fmt.Errorf("subst: %w: $(%s)", ErrUnresolved, tk.Name)
	}
	f, ok := en.LookupFunc(tk.Name)
	if !ok {
		return "", fmt.Errorf("subst: %w: function $(%s, ...)", ErrUnresolved, tk.Name)
	}
	if len(tk.Args) != f.Arity {
		return "", fmt.Errorf("subst: %w: $(%s) takes %d, got %d", ErrArity, tk.Name, f.Arity, len(tk.Args))
	}
	args := en.Child()
	for ai, a := range tk.Args {
		as, err := ApplyString(a, en)
		if err != nil {
			return "", err
		}
		args.Var(strconv.Itoa(ai), as)
	}
	return ApplyString(f.Pattern, args)
}
