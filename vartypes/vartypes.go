// Copyright (c) 2024, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vartypes checks the C types of model state variables
// and reports their storage sizes.
package vartypes

import (
	"fmt"
	"strings"
)

// Sizes maps supported C scalar types to their sizes in bytes.
// "scalar" is resolved to the model precision before lookup.
var Sizes = map[string]int{
	"bool":               1,
	"char":               1,
	"int8_t":             1,
	"uint8_t":            1,
	"int16_t":            2,
	"uint16_t":           2,
	"short":              2,
	"unsigned short":     2,
	"int":                4,
	"unsigned int":       4,
	"int32_t":            4,
	"uint32_t":           4,
	"float":              4,
	"long":               8,
	"unsigned long":      8,
	"long long":          8,
	"unsigned long long": 8,
	"int64_t":            8,
	"uint64_t":           8,
	"double":             8,
	"long double":        16,
}

// Resolve returns the concrete C type for typ, mapping "scalar" to prec
func Resolve(typ, prec string) string {
	typ = strings.Join(strings.Fields(typ), " ")
	if typ == "scalar" {
		return prec
	}
	return typ
}

// Sizeof returns the size in bytes of the given C type, and false if unknown.
// Pointer types are 8 bytes.
func Sizeof(typ, prec string) (int, bool) {
	typ = Resolve(typ, prec)
	if strings.HasSuffix(typ, "*") {
		return 8, true
	}
	sz, ok := Sizes[typ]
	return sz, ok
}

// Var is the name and type of one variable, as needed for checking
type Var struct {
	Name string
	Type string
}

// CheckVars checks that each variable has a supported type, returning
// one message per problem.  Pointer types are only allowed where
// ptrOk is true (extra global parameters).
func CheckVars(owner string, vars []Var, prec string, ptrOk bool) []string {
	var msgs []string
	seen := map[string]bool{}
	for _, v := range vars {
		if seen[v.Name] {
			msgs = append(msgs, fmt.Sprintf("%s: %s: duplicate variable name", owner, v.Name))
		}
		seen[v.Name] = true
		typ := Resolve(v.Type, prec)
		if strings.HasSuffix(typ, "*") {
			if !ptrOk {
				msgs = append(msgs, fmt.Sprintf("%s: %s: pointer type not allowed for state variable: %s", owner, v.Name, v.Type))
			}
			continue
		}
		if _, ok := Sizes[typ]; !ok {
			msgs = append(msgs, fmt.Sprintf("%s: %s: unsupported type: %s", owner, v.Name, v.Type))
		}
	}
	return msgs
}

// TotalSize returns the summed size of vars times n elements
func TotalSize(vars []Var, prec string, n int) int {
	tot := 0
	for _, v := range vars {
		sz, _ := Sizeof(v.Type, prec)
		tot += sz * n
	}
	return tot
}
