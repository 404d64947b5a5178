// Copyright (c) 2024, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package gencpu generates the CPU simulation routines of a finalized model:
calcNeuronsCPU in neuronFnct.cc, and calcSynapseDynamicsCPU, calcSynapsesCPU
and learnSynapsesPostHost in synapseFnct.cc, plus supportCode.h holding the
support code namespaces of the models that define any.

Each timestep the generated routines must be called in the order:
synapse dynamics, synapses, learn post, neurons.  Synaptic input
accumulated by calcSynapsesCPU is consumed by calcNeuronsCPU of the same
step, and spikes emitted by calcNeuronsCPU are propagated in the next one.
*/
package gencpu

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"goki.dev/snngen/codestream"
	"goki.dev/snngen/model"
	"goki.dev/snngen/subst"
)

// ErrNotFinalized is returned for a model that has not been finalized
var ErrNotFinalized = errors.New("model is not finalized")

// Output file names
const (
	NeuronFile  = "neuronFnct.cc"
	SynapseFile = "synapseFnct.cc"
	SupportFile = "supportCode.h"
)

// Generator generates the code of one model
type Generator struct {

	// finalized model, which is not modified
	Model *model.Model

	Prefs Prefs

	// advisory messages from the last Generate
	Warnings []string

	plan     *plan
	single   bool
	prec     string
	timePrec string
	zero     string
}

// NewGenerator returns a generator for the finalized model m.
// Unsupported matrix types are reported here.
func NewGenerator(m *model.Model, prefs Prefs) (*Generator, error) {
	if !m.IsFinalized() {
		return nil, fmt.Errorf("model %q: %w", m.Name, ErrNotFinalized)
	}
	pl, err := newPlan(m, prefs)
	if err != nil {
		return nil, err
	}
	g := &Generator{Model: m, Prefs: prefs, plan: pl}
	g.single = m.Precision.IsSingle()
	g.prec = m.Precision.CType()
	g.timePrec = m.TimePrecision.CType()
	g.zero = "0.0"
	if g.single {
		g.zero = "0.0f"
	}
	return g, nil
}

func (g *Generator) warn(msg string, args ...any) {
	slog.Warn(msg, args...)
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i+1 < len(args); i += 2 {
		fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
	}
	g.Warnings = append(g.Warnings, b.String())
}

// Generate returns the generated files keyed by file name.
// On error no files are returned.
func (g *Generator) Generate() (map[string][]byte, error) {
	g.Warnings = nil
	files := map[string][]byte{}
	sup, err := g.SupportCode()
	if err != nil {
		return nil, err
	}
	nc, err := g.NeuronCode(sup != "")
	if err != nil {
		return nil, err
	}
	sc, err := g.SynapseCode(sup != "")
	if err != nil {
		return nil, err
	}
	files[NeuronFile] = []byte(nc)
	files[SynapseFile] = []byte(sc)
	if sup != "" {
		files[SupportFile] = []byte(sup)
	}
	return files, nil
}

// NeuronCode returns the contents of neuronFnct.cc
func (g *Generator) NeuronCode(support bool) (string, error) {
	cs := codestream.New()
	g.header(cs, NeuronFile, "the neuron kernel function", support)
	if err := g.genNeurons(cs); err != nil {
		return "", err
	}
	return g.footer(cs)
}

// SynapseCode returns the contents of synapseFnct.cc
func (g *Generator) SynapseCode(support bool) (string, error) {
	cs := codestream.New()
	g.header(cs, SynapseFile, "the synapse kernel and learning functions", support)
	if err := g.genSynapseDynamics(cs); err != nil {
		return "", err
	}
	if err := g.genSynapses(cs); err != nil {
		return "", err
	}
	if err := g.genLearnPost(cs); err != nil {
		return "", err
	}
	return g.footer(cs)
}

// SupportCode returns the contents of supportCode.h, or "" if no model
// has support code
func (g *Generator) SupportCode() (string, error) {
	cs := codestream.New()
	found := false
	ns := func(name, code string) {
		if code == "" {
			return
		}
		if !found {
			g.header(cs, SupportFile, "the support code of the models", false)
			found = true
		}
		if g.single {
			code = subst.EnsureFtype(code)
		}
		cs.Linef("namespace %s", name)
		cs.OB(80)
		cs.Line(strings.TrimRight(code, " \t\n"))
		cs.CB(80)
		cs.Blank()
	}
	for _, ng := range g.Model.Neurons {
		ns(ng.Name+"_neuron", ng.Model.SupportCode)
	}
	for _, sg := range g.Model.Synapses {
		ns(sg.Name+"_weightupdate_simCode", sg.WU.SimSupportCode)
		ns(sg.Name+"_weightupdate_simLearnPost", sg.WU.LearnPostSupportCode)
		ns(sg.Name+"_weightupdate_synapseDynamics", sg.WU.SynapseDynamicsSupportCode)
		if g.plan.target[sg] == sg.Name {
			ns(sg.Name+"_postsyn", sg.PS.SupportCode)
		}
	}
	if !found {
		return "", nil
	}
	s, err := g.footer(cs)
	if err != nil {
		return "", fmt.Errorf("support code: %w", err)
	}
	return s, nil
}

// guardName returns the include guard of file
func (g *Generator) guardName(file string) string {
	nm := []byte("_" + g.Model.Name + "_" + file)
	for i, c := range nm {
		if !(c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			nm[i] = '_'
		}
	}
	return string(nm)
}

func (g *Generator) header(cs *codestream.CodeStream, file, desc string, support bool) {
	guard := g.guardName(file)
	cs.Linef("#ifndef %s", guard)
	cs.Linef("#define %s", guard)
	cs.Blank()
	cs.Line("//-------------------------------------------------------------------------")
	cs.Linef("/*! \\file %s", file)
	cs.Blank()
	cs.Linef("\\brief File generated by snngen for the model %s containing %s.", g.Model.Name, desc)
	cs.Line("*/")
	cs.Line("//-------------------------------------------------------------------------")
	cs.Blank()
	if support {
		cs.Linef("#include %q", SupportFile)
		cs.Blank()
	}
}

func (g *Generator) footer(cs *codestream.CodeStream) (string, error) {
	cs.Line("#endif")
	if err := cs.Err(); err != nil {
		return "", err
	}
	return cs.String(), nil
}
