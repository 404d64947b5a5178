// Copyright (c) 2024, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package subst

import (
	"math"
	"strconv"
	"strings"
)

// Replace is one math function renaming for single precision code
type Replace struct {
	From, To string
}

// FloatReplaces maps double precision C math functions to their float variants.
// Only calls are renamed: the identifier must be followed by '('.
var FloatReplaces = []Replace{
	{"exp", "expf"},
	{"log", "logf"},
	{"pow", "powf"},
	{"sqrt", "sqrtf"},
	{"sin", "sinf"},
	{"cos", "cosf"},
	{"tan", "tanf"},
	{"tanh", "tanhf"},
	{"fabs", "fabsf"},
	{"fmax", "fmaxf"},
	{"fmin", "fminf"},
	{"fmod", "fmodf"},
	{"floor", "floorf"},
	{"ceil", "ceilf"},
	// {"", ""},
}

var floatFuncs map[string]string

func init() {
	floatFuncs = make(map[string]string, len(FloatReplaces))
	for _, r := range FloatReplaces {
		floatFuncs[r.From] = r.To
	}
}

// EnsureFtype edits code for single precision: floating point literals
// without a suffix get an 'f' and math calls are renamed per FloatReplaces.
// String and character literals and comments are left alone.
func EnsureFtype(code string) string {
	var b strings.Builder
	b.Grow(len(code) + 16)
	n := len(code)
	i := 0
	for i < n {
		c := code[i]
		switch {
		case c == '"' || c == '\'':
			j := i + 1
			for j < n && code[j] != c {
				if code[j] == '\\' {
					j++
				}
				j++
			}
			j = min(j+1, n)
			b.WriteString(code[i:j])
			i = j
		case c == '/' && i+1 < n && code[i+1] == '/':
			j := strings.IndexByte(code[i:], '\n')
			if j < 0 {
				j = n - i
			}
			b.WriteString(code[i : i+j])
			i += j
		case c == '/' && i+1 < n && code[i+1] == '*':
			j := strings.Index(code[i+2:], "*/")
			ed := n
			if j >= 0 {
				ed = i + 2 + j + 2
			}
			b.WriteString(code[i:ed])
			i = ed
		case isIdentStart(c):
			j := i
			for j < n && isIdentChar(code[j]) {
				j++
			}
			id := code[i:j]
			if to, ok := floatFuncs[id]; ok && nextNonSpace(code, j) == '(' {
				id = to
			}
			b.WriteString(id)
			i = j
		case isDigit(c) || (c == '.' && i+1 < n && isDigit(code[i+1])):
			j, isFloat := scanNumber(code, i)
			k := j
			for k < n && isIdentChar(code[k]) {
				k++
			}
			b.WriteString(code[i:k])
			if isFloat && k == j {
				b.WriteByte('f')
			}
			i = k
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// scanNumber scans a numeric literal starting at st, returning the end
// of the number proper (before any suffix) and whether it is floating point.
func scanNumber(code string, st int) (int, bool) {
	n := len(code)
	i := st
	if code[i] == '0' && i+1 < n && (code[i+1] == 'x' || code[i+1] == 'X') {
		i += 2
		for i < n && isHexDigit(code[i]) {
			i++
		}
		return i, false
	}
	isFloat := false
	for i < n && isDigit(code[i]) {
		i++
	}
	if i < n && code[i] == '.' {
		isFloat = true
		i++
		for i < n && isDigit(code[i]) {
			i++
		}
	}
	if i < n && (code[i] == 'e' || code[i] == 'E') {
		j := i + 1
		if j < n && (code[j] == '+' || code[j] == '-') {
			j++
		}
		if j < n && isDigit(code[j]) {
			isFloat = true
			i = j
			for i < n && isDigit(code[i]) {
				i++
			}
		}
	}
	return i, isFloat
}

func nextNonSpace(code string, st int) byte {
	for i := st; i < len(code); i++ {
		if code[i] != ' ' && code[i] != '\t' {
			return code[i]
		}
	}
	return 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

// Literal formats a parameter value as a C floating point literal,
// with an 'f' suffix for single precision.  Negative values are
// parenthesized so they can be substituted into any expression.
func Literal(v float64, single bool) string {
	var s string
	if single {
		s = strconv.FormatFloat(float64(float32(v)), 'g', -1, 32)
	} else {
		s = strconv.FormatFloat(v, 'g', -1, 64)
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		switch {
		case math.IsNaN(v):
			s = "NAN"
		case v > 0:
			s = "INFINITY"
		default:
			s = "(-INFINITY)"
		}
		return s
	}
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	if single {
		s += "f"
	}
	if v < 0 {
		s = "(" + s + ")"
	}
	return s
}
