// Copyright (c) 2024, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"goki.dev/snngen/vartypes"
)

// Var is a named state variable of a model, with its C type.
// The type "scalar" stands for the model precision.
type Var struct {
	Name string
	Type string
}

// VarSet is an ordered set of variables
type VarSet []Var

// Names returns the variable names in order
func (vs VarSet) Names() []string {
	nms := make([]string, len(vs))
	for i, v := range vs {
		nms[i] = v.Name
	}
	return nms
}

// Index returns the index of the named variable, or -1
func (vs VarSet) Index(name string) int {
	for i, v := range vs {
		if v.Name == name {
			return i
		}
	}
	return -1
}

// Has returns true if the named variable is in the set
func (vs VarSet) Has(name string) bool {
	return vs.Index(name) >= 0
}

func (vs VarSet) typeVars() []vartypes.Var {
	tv := make([]vartypes.Var, len(vs))
	for i, v := range vs {
		tv[i] = vartypes.Var{Name: v.Name, Type: v.Type}
	}
	return tv
}

// DerivedParam is a parameter computed at finalization from an expression
// over the model parameters, earlier derived parameters, and DT,
// e.g., "exp(-DT / tau)".
type DerivedParam struct {
	Name string
	Expr string
}

// AdditionalInput is an extra input variable of a neuron model that
// accumulates alongside Isyn.  Postsynaptic models may add to it.
type AdditionalInput struct {
	Name string
	Type string
	Init string
}

// NeuronModel defines the code and variables of a neuron model
type NeuronModel struct {
	Kind                   ModelKind         `desc:"built-in kind, Custom for user models"`
	Name                   string            `desc:"model name used in diagnostics and model file references"`
	Params                 []string          `desc:"names of parameters, substituted as literals"`
	DerivedParams          []DerivedParam    `desc:"parameters computed from Params and DT"`
	Vars                   VarSet            `desc:"per-neuron state variables"`
	ExtraGlobalParams      VarSet            `desc:"per-population variables set from host code"`
	AdditionalInputVars    []AdditionalInput `desc:"extra input accumulators, reset each step"`
	SimCode                string            `desc:"code updating the state each timestep"`
	ThresholdConditionCode string            `desc:"condition for emitting a spike -- empty means never spikes"`
	ResetCode              string            `desc:"code run after a spike"`
	SupportCode            string            `desc:"functions made available to the code in a namespace"`
	AutoRefractoryRequired bool              `desc:"spike only on the rising edge of the threshold condition -- model files default it to true when absent, models built in Go must set it"`
}

// WeightUpdateModel defines the code and variables of synaptic weight update
type WeightUpdateModel struct {
	Kind                        ModelKind      `desc:"built-in kind, Custom for user models"`
	Name                        string         `desc:"model name used in diagnostics and model file references"`
	Params                      []string       `desc:"names of parameters, substituted as literals"`
	DerivedParams               []DerivedParam `desc:"parameters computed from Params and DT"`
	Vars                        VarSet         `desc:"per-synapse variables (or global constants)"`
	PreVars                     VarSet         `desc:"per presynaptic neuron variables, updated in the neuron kernel"`
	PostVars                    VarSet         `desc:"per postsynaptic neuron variables, updated in the neuron kernel"`
	ExtraGlobalParams           VarSet         `desc:"per-group variables set from host code"`
	SimCode                     string         `desc:"code run for each synapse of a presynaptic spike"`
	EventCode                   string         `desc:"code run for each synapse of a presynaptic spike-like event"`
	LearnPostCode               string         `desc:"code run for each synapse of a postsynaptic spike"`
	SynapseDynamicsCode         string         `desc:"code run for every synapse every timestep"`
	EventThresholdConditionCode string         `desc:"condition for a presynaptic spike-like event"`
	PreSpikeCode                string         `desc:"code run in the presynaptic neuron kernel on a spike"`
	PostSpikeCode               string         `desc:"code run in the postsynaptic neuron kernel on a spike"`
	SimSupportCode              string         `desc:"support code for sim, event and threshold code"`
	LearnPostSupportCode        string         `desc:"support code for learn post code"`
	SynapseDynamicsSupportCode  string         `desc:"support code for synapse dynamics code"`
	NeedsPreSpikeTime           bool           `desc:"presynaptic spike times are recorded"`
	NeedsPostSpikeTime          bool           `desc:"postsynaptic spike times are recorded"`
}

// PostsynapticModel defines how accumulated synaptic input is applied to
// the postsynaptic neuron and decays
type PostsynapticModel struct {
	Kind           ModelKind      `desc:"built-in kind, Custom for user models"`
	Name           string         `desc:"model name used in diagnostics and model file references"`
	Params         []string       `desc:"names of parameters, substituted as literals"`
	DerivedParams  []DerivedParam `desc:"parameters computed from Params and DT"`
	Vars           VarSet         `desc:"per postsynaptic neuron variables (or global constants)"`
	ApplyInputCode string         `desc:"code converting inSyn into input current, typically $(Isyn) += ..."`
	DecayCode      string         `desc:"code decaying inSyn after the neuron update"`
	SupportCode    string         `desc:"functions made available to the code in a namespace"`
}

// KindName returns a diagnostic name such as "Izhikevich" or "Custom(MyNeuron)"
func KindName(kind ModelKind, name string) string {
	if kind != Custom {
		return kind.String()
	}
	return "Custom(" + name + ")"
}
