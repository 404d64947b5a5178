// Copyright (c) 2024, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package codestream accumulates generated C code, indenting every line by the
current brace depth. Braces written as part of the text (including user code
snippets) adjust the depth, except inside comments and string or character
literals, and explicit scopes opened with OB must be closed with a matching CB.
*/
package codestream

import (
	"bytes"
	"fmt"

	"github.com/goki/ki/indent"
)

// CodeStream is an indentation-aware code buffer.
// It implements io.Writer so it can be passed to fmt.Fprintf.
type CodeStream struct {
	buf       bytes.Buffer
	depth     int
	lineStart bool
	scopes    []int
	nextID    int
	err       error

	// lexical state carried across writes, so braces in comments
	// and literals do not change the depth
	lex  lexState
	prev byte
	esc  bool
}

type lexState int

const (
	lexCode lexState = iota
	lexLineComment
	lexBlockComment
	lexString
	lexChar
)

// New returns a new empty CodeStream
func New() *CodeStream {
	return &CodeStream{lineStart: true, nextID: 1 << 16}
}

// Write writes p, indenting each new line by the current depth.
// Leading blanks on each incoming line are dropped so that snippets
// are re-indented consistently.
func (cs *CodeStream) Write(p []byte) (int, error) {
	for _, c := range p {
		if c == '\n' {
			cs.buf.WriteByte('\n')
			cs.lineStart = true
			if cs.lex != lexBlockComment {
				cs.lex = lexCode
			}
			cs.prev = 0
			cs.esc = false
			continue
		}
		code := cs.lex == lexCode
		if cs.lineStart {
			if c == ' ' || c == '\t' || c == '\r' {
				continue
			}
			if code && c == '}' && cs.depth > 0 {
				cs.depth--
			}
			cs.buf.Write(indent.TabBytes(cs.depth))
			cs.lineStart = false
		} else if code && c == '}' && cs.depth > 0 {
			cs.depth--
		}
		cs.buf.WriteByte(c)
		if code && c == '{' {
			cs.depth++
		}
		cs.scan(c)
	}
	return len(p), nil
}

// scan advances the lexical state past c
func (cs *CodeStream) scan(c byte) {
	prev := cs.prev
	cs.prev = c
	switch cs.lex {
	case lexCode:
		switch {
		case c == '/' && prev == '/':
			cs.lex = lexLineComment
		case c == '*' && prev == '/':
			cs.lex = lexBlockComment
			cs.prev = 0
		case c == '"':
			cs.lex = lexString
		case c == '\'':
			cs.lex = lexChar
		}
	case lexBlockComment:
		if c == '/' && prev == '*' {
			cs.lex = lexCode
			cs.prev = 0
		}
	case lexString, lexChar:
		quote := byte('"')
		if cs.lex == lexChar {
			quote = '\''
		}
		switch {
		case cs.esc:
			cs.esc = false
		case c == '\\':
			cs.esc = true
		case c == quote:
			cs.lex = lexCode
		}
	}
}

// Printf writes formatted text without a trailing newline
func (cs *CodeStream) Printf(format string, args ...any) {
	fmt.Fprintf(cs, format, args...)
}

// Line writes s followed by a newline
func (cs *CodeStream) Line(s string) {
	cs.Write([]byte(s))
	cs.Write([]byte{'\n'})
}

// Linef writes formatted text followed by a newline
func (cs *CodeStream) Linef(format string, args ...any) {
	fmt.Fprintf(cs, format, args...)
	cs.Write([]byte{'\n'})
}

// Blank writes an empty line
func (cs *CodeStream) Blank() {
	if !cs.lineStart {
		cs.Write([]byte{'\n'})
	}
	cs.Write([]byte{'\n'})
}

// OB opens a block scope with the given id, appending the brace
// to the current line if one is in progress.
func (cs *CodeStream) OB(id int) {
	if cs.lineStart {
		cs.Write([]byte("{\n"))
	} else {
		cs.Write([]byte(" {\n"))
	}
	cs.scopes = append(cs.scopes, id)
}

// CB closes the block scope with the given id, which must be the
// innermost open scope. A mismatch is recorded and reported by Err.
func (cs *CodeStream) CB(id int) {
	if !cs.lineStart {
		cs.Write([]byte{'\n'})
	}
	n := len(cs.scopes)
	switch {
	case n == 0:
		cs.setErr(fmt.Errorf("codestream: closing brace %d with no open scope", id))
	case cs.scopes[n-1] != id:
		cs.setErr(fmt.Errorf("codestream: closing brace %d does not match open brace %d", id, cs.scopes[n-1]))
		cs.scopes = cs.scopes[:n-1]
	default:
		cs.scopes = cs.scopes[:n-1]
	}
	cs.Write([]byte("}\n"))
}

// Scope runs fn inside a freshly numbered block scope
func (cs *CodeStream) Scope(fn func()) {
	id := cs.nextID
	cs.nextID++
	cs.OB(id)
	fn()
	cs.CB(id)
}

// Depth returns the current brace depth
func (cs *CodeStream) Depth() int {
	return cs.depth
}

// Err returns the first scope mismatch, or an error if scopes or
// braces are still open.
func (cs *CodeStream) Err() error {
	if cs.err != nil {
		return cs.err
	}
	if len(cs.scopes) > 0 {
		return fmt.Errorf("codestream: %d scopes left open, innermost: %d", len(cs.scopes), cs.scopes[len(cs.scopes)-1])
	}
	if cs.depth != 0 {
		return fmt.Errorf("codestream: unbalanced braces, depth %d at end of stream", cs.depth)
	}
	return nil
}

func (cs *CodeStream) setErr(err error) {
	if cs.err == nil {
		cs.err = err
	}
}

// Bytes returns the accumulated code
func (cs *CodeStream) Bytes() []byte {
	return cs.buf.Bytes()
}

// String returns the accumulated code as a string
func (cs *CodeStream) String() string {
	return cs.buf.String()
}
