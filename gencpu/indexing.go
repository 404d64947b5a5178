// Copyright (c) 2024, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gencpu

import (
	"errors"
	"fmt"

	"goki.dev/snngen/codestream"
	"goki.dev/snngen/model"
)

// ErrMatrixType is returned for a synapse group whose connectivity and
// weight type cannot be combined, or whose connectivity is unknown
var ErrMatrixType = errors.New("unsupported synaptic matrix type")

// Binding is a constant local declared in generated code
type Binding struct {
	Type string
	Name string
	Expr string
}

// Stmt returns the declaration statement
func (bd Binding) Stmt() string {
	return "const " + bd.Type + " " + bd.Name + " = " + bd.Expr + ";"
}

// Loop is the traversal of the synapses of one presynaptic neuron (a row)
// or of one postsynaptic neuron (a column), as resolved for one
// connectivity.  Decls are declared before the loop, Binds at the
// start of its body, and Exists, if not empty, guards each candidate.
type Loop struct {
	Decls   []Binding
	Counter string
	Bound   string
	Binds   []Binding
	Exists  string

	// presynaptic neuron index expression
	Pre string

	// postsynaptic neuron index expression
	Post string

	// per-synapse variable subscript, empty for connectivity without individual variables
	Syn string
}

// Header returns the for statement of the loop, without the opening brace
func (lp *Loop) Header() string {
	return fmt.Sprintf("for (unsigned int %s = 0; %s < %s; %s++)", lp.Counter, lp.Counter, lp.Bound, lp.Counter)
}

// Begin writes the declarations, loop header and body bindings, opening scope id
func (lp *Loop) Begin(cs *codestream.CodeStream, id int) {
	for _, bd := range lp.Decls {
		cs.Line(bd.Stmt())
	}
	cs.Printf("%s", lp.Header())
	cs.OB(id)
	for _, bd := range lp.Binds {
		cs.Line(bd.Stmt())
	}
}

// End closes the loop scope id
func (lp *Loop) End(cs *codestream.CodeStream, id int) {
	cs.CB(id)
}

// Indexer resolves synapse index expressions for one synapse group,
// strictly from its connectivity.
type Indexer struct {
	Conn   model.Connectivity
	Name   string
	NPre   int
	NPost  int
	MaxRow int
	MaxCol int
}

// NewIndexer returns the indexer for the given synapse group.
// Bitmask connectivity with individual weights and unknown
// connectivity values are ErrMatrixType errors.
func NewIndexer(sg *model.SynapseGroup) (*Indexer, error) {
	if sg.Connectivity < 0 || sg.Connectivity >= model.ConnectivityN {
		return nil, fmt.Errorf("synapse group %q: %w: connectivity %v", sg.Name, ErrMatrixType, sg.Connectivity)
	}
	if sg.Connectivity == model.Bitmask && sg.Weight == model.Individual && len(sg.WU.Vars) > 0 {
		return nil, fmt.Errorf("synapse group %q: %w: Bitmask connectivity requires Global weights", sg.Name, ErrMatrixType)
	}
	if sg.Weight < 0 || sg.Weight >= model.WeightTypeN {
		return nil, fmt.Errorf("synapse group %q: %w: weight type %v", sg.Name, ErrMatrixType, sg.Weight)
	}
	ix := &Indexer{Conn: sg.Connectivity, Name: sg.Name, NPre: sg.Src.N, NPost: sg.Trg.N, MaxRow: sg.MaxConnections, MaxCol: sg.MaxSourceConnections}
	return ix, nil
}

func (ix *Indexer) conn() string {
	return "C" + ix.Name
}

func (ix *Indexer) bitGuard() string {
	return fmt.Sprintf("B(gp%s[gid / 32], gid & 31)", ix.Name)
}

// Row returns the traversal of the targets of presynaptic neuron pre
func (ix *Indexer) Row(pre string) Loop {
	c := ix.conn()
	lp := Loop{Pre: pre, Post: "ipost"}
	switch ix.Conn {
	case model.Dense:
		lp.Counter = "ipost"
		lp.Bound = fmt.Sprint(ix.NPost)
		lp.Syn = fmt.Sprintf("(%s * %d) + ipost", pre, ix.NPost)
	case model.Bitmask:
		lp.Counter = "ipost"
		lp.Bound = fmt.Sprint(ix.NPost)
		lp.Binds = []Binding{{"uint64_t", "gid", fmt.Sprintf("(%s * %dull + ipost)", pre, ix.NPost)}}
		lp.Exists = ix.bitGuard()
	case model.Sparse:
		lp.Decls = []Binding{{"unsigned int", "npost", fmt.Sprintf("%s.rowStart[%s + 1] - %s.rowStart[%s]", c, pre, c, pre)}}
		lp.Counter = "j"
		lp.Bound = "npost"
		lp.Binds = []Binding{{"unsigned int", "ipost", fmt.Sprintf("%s.ind[%s.rowStart[%s] + j]", c, c, pre)}}
		lp.Syn = fmt.Sprintf("%s.rowStart[%s] + j", c, pre)
	case model.Ragged:
		lp.Decls = []Binding{{"unsigned int", "npost", fmt.Sprintf("%s.rowLength[%s]", c, pre)}}
		lp.Counter = "j"
		lp.Bound = "npost"
		lp.Binds = []Binding{{"unsigned int", "ipost", fmt.Sprintf("%s.ind[(%s * %d) + j]", c, pre, ix.MaxRow)}}
		lp.Syn = fmt.Sprintf("(%s * %d) + j", pre, ix.MaxRow)
	}
	return lp
}

// Column returns the traversal of the sources of postsynaptic neuron post,
// with the synapse subscript remapped to the row order used for storage
func (ix *Indexer) Column(post string) Loop {
	c := ix.conn()
	lp := Loop{Post: post}
	switch ix.Conn {
	case model.Dense:
		lp.Counter = "ipre"
		lp.Bound = fmt.Sprint(ix.NPre)
		lp.Pre = "ipre"
		lp.Syn = fmt.Sprintf("(ipre * %d) + %s", ix.NPost, post)
	case model.Bitmask:
		lp.Counter = "ipre"
		lp.Bound = fmt.Sprint(ix.NPre)
		lp.Pre = "ipre"
		lp.Binds = []Binding{{"uint64_t", "gid", fmt.Sprintf("(ipre * %dull + %s)", ix.NPost, post)}}
		lp.Exists = ix.bitGuard()
	case model.Sparse:
		lp.Decls = []Binding{{"unsigned int", "npre", fmt.Sprintf("%s.revRowStart[%s + 1] - %s.revRowStart[%s]", c, post, c, post)}}
		lp.Counter = "l"
		lp.Bound = "npre"
		lp.Binds = []Binding{{"unsigned int", "ipre", fmt.Sprintf("%s.revRowStart[%s] + l", c, post)}}
		lp.Pre = c + ".revInd[ipre]"
		lp.Syn = c + ".remap[ipre]"
	case model.Ragged:
		lp.Decls = []Binding{{"unsigned int", "npre", fmt.Sprintf("%s.colLength[%s]", c, post)}}
		lp.Counter = "l"
		lp.Bound = "npre"
		lp.Binds = []Binding{{"unsigned int", "ipre", fmt.Sprintf("(%s * %d) + l", post, ix.MaxCol)}}
		lp.Pre = fmt.Sprintf("(%s.remap[ipre] / %d)", c, ix.MaxRow)
		lp.Syn = c + ".remap[ipre]"
	}
	return lp
}
