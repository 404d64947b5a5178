// Copyright (c) 2024, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package subst expands code templates: snippets of C code containing
placeholders of the form $(name) or $(fn, arg0, arg1, ...).

A template is tokenized once by Parse, and Apply replaces every placeholder
in a single pass using an Env. Names are matched as whole tokens, so $(t)
never matches inside $(theta), and substituted text is never re-scanned.
*/
package subst

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnresolved is returned when a placeholder has no substitution
	ErrUnresolved = errors.New("unresolved placeholder")

	// ErrArity is returned when a function placeholder has the wrong number of arguments
	ErrArity = errors.New("wrong number of arguments")

	// ErrSyntax is returned for an unterminated placeholder
	ErrSyntax = errors.New("unterminated placeholder")
)

// Token is one element of a parsed template: either literal Text,
// or a placeholder with a Name and, for function-style placeholders, Args.
type Token struct {
	Text   string
	Name   string
	Args   []string
	IsFunc bool
}

// IsPlaceholder returns true if this token is a placeholder
func (tk *Token) IsPlaceholder() bool {
	return tk.Name != ""
}

// Template is a parsed code template.  It is immutable once parsed.
type Template struct {
	code   string
	tokens []Token
}

// Parse tokenizes code into literal text and placeholders
func Parse(code string) (Template, error) {
	tm := Template{code: code}
	st := 0
	i := 0
	for i < len(code) {
		if code[i] != '$' || i+1 >= len(code) || code[i+1] != '(' {
			i++
			continue
		}
		if i > st {
			tm.tokens = append(tm.tokens, Token{Text: code[st:i]})
		}
		tk, ed, err := parsePlaceholder(code, i)
		if err != nil {
			return tm, err
		}
		tm.tokens = append(tm.tokens, tk)
		i = ed
		st = ed
	}
	if st < len(code) {
		tm.tokens = append(tm.tokens, Token{Text: code[st:]})
	}
	return tm, nil
}

// MustParse is Parse for templates known to be valid, panicking on error
func MustParse(code string) Template {
	tm, err := Parse(code)
	if err != nil {
		panic(err)
	}
	return tm
}

// parsePlaceholder parses the placeholder starting at code[st] == '$',
// returning the token and the index just past its closing paren.
func parsePlaceholder(code string, st int) (Token, int, error) {
	depth := 0
	var fields []string
	fst := st + 2
	for i := st + 1; i < len(code); i++ {
		switch code[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				fields = append(fields, strings.TrimSpace(code[fst:i]))
				tk := Token{Name: fields[0]}
				if len(fields) > 1 {
					tk.IsFunc = true
					tk.Args = fields[1:]
				}
				if tk.Name == "" {
					return tk, i + 1, fmt.Errorf("subst: empty placeholder at offset %d: %w", st, ErrSyntax)
				}
				return tk, i + 1, nil
			}
		case ',':
			if depth == 1 {
				fields = append(fields, strings.TrimSpace(code[fst:i]))
				fst = i + 1
			}
		}
	}
	return Token{}, len(code), fmt.Errorf("subst: %w at offset %d in %q", ErrSyntax, st, code)
}

// Code returns the original template text
func (tm Template) Code() string {
	return tm.code
}

// Tokens returns the token list
func (tm Template) Tokens() []Token {
	return tm.tokens
}

// IsEmpty returns true if the template has no code
func (tm Template) IsEmpty() bool {
	return strings.TrimSpace(tm.code) == ""
}

// Uses returns true if a placeholder with the given name occurs
// anywhere in the template, including inside function arguments.
func (tm Template) Uses(name string) bool {
	for _, nm := range tm.Names() {
		if nm == name {
			return true
		}
	}
	return false
}

// Names returns the names of all placeholders in order of occurrence,
// including those nested in function arguments.
func (tm Template) Names() []string {
	var nms []string
	for i := range tm.tokens {
		tk := &tm.tokens[i]
		if !tk.IsPlaceholder() {
			continue
		}
		nms = append(nms, tk.Name)
		for _, a := range tk.Args {
			at, err := Parse(a)
			if err != nil {
				continue
			}
			nms = append(nms, at.Names()...)
		}
	}
	return nms
}
