// Copyright (c) 2024, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package model is the network description consumed by the code generator:
neuron groups, synapse groups, and the model snippets (code templates,
parameters and variables) that govern their update.

A Model is built with AddNeurons and AddSynapses (or loaded from a TOML
or JSON model file with Load), then Finalize computes derived parameters,
spike queue depths, event conditions and the other derived flags, after
which the model is treated as read-only.
*/
package model

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"goki.dev/snngen/connect"
	"goki.dev/snngen/subst"
	"goki.dev/snngen/vartypes"
	"golang.org/x/exp/slices"
)

var (
	// ErrUnknownModel is returned when a group references an undefined model
	ErrUnknownModel = errors.New("unknown model")

	// ErrMissingParam is returned when a group does not set a model parameter
	ErrMissingParam = errors.New("missing parameter value")
)

// Model is a complete spiking network
type Model struct {
	Name          string          `desc:"model name, used in include guards of generated files"`
	DT            float64         `desc:"integration timestep"`
	Precision     Precision       `desc:"floating point type of model state"`
	TimePrecision Precision       `desc:"floating point type of time"`
	Neurons       []*NeuronGroup  `desc:"neuron groups, in declaration order"`
	Synapses      []*SynapseGroup `desc:"synapse groups, in declaration order"`
	Warnings      []string        `desc:"advisory messages from Finalize"`

	finalized bool
}

// NewModel returns a new empty model with DT = 0.1 and single precision
func NewModel(name string) *Model {
	return &Model{Name: name, DT: 0.1}
}

// NeuronGroup returns the named neuron group, or nil
func (m *Model) NeuronGroup(name string) *NeuronGroup {
	for _, ng := range m.Neurons {
		if ng.Name == name {
			return ng
		}
	}
	return nil
}

// SynapseGroup returns the named synapse group, or nil
func (m *Model) SynapseGroup(name string) *SynapseGroup {
	for _, sg := range m.Synapses {
		if sg.Name == name {
			return sg
		}
	}
	return nil
}

// IsFinalized returns true after a successful Finalize
func (m *Model) IsFinalized() bool {
	return m.finalized
}

func (m *Model) checkName(name string) error {
	if name == "" || !isIdent(name) {
		return fmt.Errorf("model %q: group name %q is not a valid C identifier", m.Name, name)
	}
	if m.NeuronGroup(name) != nil || m.SynapseGroup(name) != nil {
		return fmt.Errorf("model %q: duplicate group name %q", m.Name, name)
	}
	return nil
}

// AddNeurons adds a new population of n neurons
func (m *Model) AddNeurons(name string, n int, nm *NeuronModel, params map[string]float64) (*NeuronGroup, error) {
	if err := m.checkName(name); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, fmt.Errorf("neuron group %q: number of neurons must be > 0, got %d", name, n)
	}
	if nm == nil {
		return nil, fmt.Errorf("neuron group %q: %w: nil neuron model", name, ErrUnknownModel)
	}
	ng := &NeuronGroup{Name: name, N: n, Model: nm, Params: params, NumDelaySlots: 1}
	m.Neurons = append(m.Neurons, ng)
	return ng, nil
}

// AddSynapses connects the src population to the trg population.
// The returned group can be further configured before Finalize.
func (m *Model) AddSynapses(name, src, trg string, conn Connectivity, wt WeightType, wu *WeightUpdateModel, ps *PostsynapticModel) (*SynapseGroup, error) {
	if err := m.checkName(name); err != nil {
		return nil, err
	}
	sng := m.NeuronGroup(src)
	if sng == nil {
		return nil, fmt.Errorf("synapse group %q: source population %q not found", name, src)
	}
	tng := m.NeuronGroup(trg)
	if tng == nil {
		return nil, fmt.Errorf("synapse group %q: target population %q not found", name, trg)
	}
	if wu == nil || ps == nil {
		return nil, fmt.Errorf("synapse group %q: %w: nil weight update or postsynaptic model", name, ErrUnknownModel)
	}
	sg := &SynapseGroup{Name: name, Src: sng, Trg: tng, WU: wu, PS: ps, Connectivity: conn, Weight: wt}
	sng.OutSyn = append(sng.OutSyn, sg)
	tng.InSyn = append(tng.InSyn, sg)
	m.Synapses = append(m.Synapses, sg)
	return sg, nil
}

// Finalize validates the model and computes all derived values.
// It must be called once, after all groups have been added.
func (m *Model) Finalize() error {
	if m.finalized {
		return nil
	}
	m.Warnings = nil
	prec := m.Precision.CType()
	for _, ng := range m.Neurons {
		nm := ng.Model
		if err := checkParams("neuron group "+ng.Name, nm.Params, ng.Params); err != nil {
			return err
		}
		der, err := EvalDerived(nm.DerivedParams, ng.Params, m.DT)
		if err != nil {
			return fmt.Errorf("neuron group %q: %w", ng.Name, err)
		}
		ng.Derived = der
		ng.NumDelaySlots = 1
		ng.varQueue = map[string]bool{}
		ng.SpikeEventRequired = false
		ng.TrueSpikeRequired = false
		ng.SpikeEventConditions = nil
		ng.SpikeTimeRequired = false
		m.warn(vartypes.CheckVars(ng.Name+" "+KindName(nm.Kind, nm.Name), nm.Vars.typeVars(), prec, false)...)
		m.warn(vartypes.CheckVars(ng.Name+" extra global params", nm.ExtraGlobalParams.typeVars(), prec, true)...)
	}
	for _, sg := range m.Synapses {
		if err := m.finalizeSynapses(sg, prec); err != nil {
			return err
		}
	}
	m.finalized = true
	return nil
}

func (m *Model) finalizeSynapses(sg *SynapseGroup, prec string) error {
	wu := sg.WU
	ps := sg.PS
	ctx := "synapse group " + sg.Name
	if err := checkParams(ctx+" weight update", wu.Params, sg.WUParams); err != nil {
		return err
	}
	if err := checkParams(ctx+" postsynaptic", ps.Params, sg.PSParams); err != nil {
		return err
	}
	var err error
	if sg.WUDerived, err = EvalDerived(wu.DerivedParams, sg.WUParams, m.DT); err != nil {
		return fmt.Errorf("synapse group %q weight update: %w", sg.Name, err)
	}
	if sg.PSDerived, err = EvalDerived(ps.DerivedParams, sg.PSParams, m.DT); err != nil {
		return fmt.Errorf("synapse group %q postsynaptic: %w", sg.Name, err)
	}
	if sg.DelaySteps < 0 || sg.BackPropDelaySteps < 0 || sg.DendriticDelaySlots < 0 {
		return fmt.Errorf("synapse group %q: delays must be >= 0", sg.Name)
	}
	if sg.Weight == Global {
		for _, v := range wu.Vars {
			if _, ok := sg.VarValues[v.Name]; !ok {
				return fmt.Errorf("synapse group %q: global weight variable %q: %w", sg.Name, v.Name, ErrMissingParam)
			}
		}
	}
	if !sg.IndividualPSM {
		for _, v := range ps.Vars {
			if _, ok := sg.PSVarValues[v.Name]; !ok {
				return fmt.Errorf("synapse group %q: global postsynaptic variable %q: %w", sg.Name, v.Name, ErrMissingParam)
			}
		}
	}

	src := sg.Src
	trg := sg.Trg
	src.NumDelaySlots = max(src.NumDelaySlots, sg.DelaySteps+1)
	trg.NumDelaySlots = max(trg.NumDelaySlots, sg.BackPropDelaySteps+1)

	if sg.SpikeEventRequired() {
		if strings.TrimSpace(wu.EventThresholdConditionCode) == "" {
			return fmt.Errorf("synapse group %q: event code requires an event threshold condition", sg.Name)
		}
		src.SpikeEventRequired = true
		src.SpikeEventConditions = append(src.SpikeEventConditions, EventCondition{Synapses: sg, Code: wu.EventThresholdConditionCode, SupportCode: wu.SimSupportCode})
	}
	if sg.TrueSpikeRequired() {
		src.TrueSpikeRequired = true
	}
	// postsynaptic spikes are queued so learning sees them with the back-propagation delay
	if wu.LearnPostCode != "" {
		trg.TrueSpikeRequired = true
	}

	codes := []string{wu.SimCode, wu.EventCode, wu.EventThresholdConditionCode, wu.LearnPostCode, wu.SynapseDynamicsCode}
	var used []string
	for _, c := range codes {
		tm, err := subst.Parse(c)
		if err != nil {
			return fmt.Errorf("synapse group %q weight update code: %w", sg.Name, err)
		}
		used = append(used, tm.Names()...)
	}
	if wu.NeedsPreSpikeTime || slices.Contains(used, "sT_pre") {
		src.SpikeTimeRequired = true
	}
	if wu.NeedsPostSpikeTime || slices.Contains(used, "sT_post") {
		trg.SpikeTimeRequired = true
	}
	for _, v := range src.Model.Vars {
		if slices.Contains(used, v.Name+"_pre") {
			src.varQueue[v.Name] = true
		}
	}
	for _, v := range trg.Model.Vars {
		if slices.Contains(used, v.Name+"_post") {
			trg.varQueue[v.Name] = true
		}
	}

	if sg.Pattern != "" {
		pat, err := connect.PatternByName(sg.Pattern, sg.PCon, sg.Seed)
		if err != nil {
			return fmt.Errorf("synapse group %q: %w", sg.Name, err)
		}
		sg.Conn = connect.Build(pat, src.N, trg.N)
		if sg.MaxConnections == 0 {
			sg.MaxConnections = sg.Conn.MaxRowLength
		}
		if sg.MaxSourceConnections == 0 {
			sg.MaxSourceConnections = sg.Conn.MaxColLength
		}
	}
	if sg.MaxConnections == 0 {
		sg.MaxConnections = trg.N
	}
	if sg.MaxSourceConnections == 0 {
		sg.MaxSourceConnections = src.N
	}

	wuName := KindName(wu.Kind, wu.Name)
	m.warn(vartypes.CheckVars(sg.Name+" "+wuName, wu.Vars.typeVars(), prec, false)...)
	m.warn(vartypes.CheckVars(sg.Name+" "+wuName+" pre", wu.PreVars.typeVars(), prec, false)...)
	m.warn(vartypes.CheckVars(sg.Name+" "+wuName+" post", wu.PostVars.typeVars(), prec, false)...)
	m.warn(vartypes.CheckVars(sg.Name+" "+KindName(ps.Kind, ps.Name), ps.Vars.typeVars(), prec, false)...)
	return nil
}

func (m *Model) warn(msgs ...string) {
	for _, msg := range msgs {
		slog.Warn("model check", "model", m.Name, "msg", msg)
		m.Warnings = append(m.Warnings, msg)
	}
}

// checkParams checks that every declared parameter has a value,
// and that no value is given for an undeclared one
func checkParams(ctx string, names []string, vals map[string]float64) error {
	for _, nm := range names {
		if _, ok := vals[nm]; !ok {
			return fmt.Errorf("%s: parameter %q: %w", ctx, nm, ErrMissingParam)
		}
	}
	for nm := range vals {
		if !slices.Contains(names, nm) {
			return fmt.Errorf("%s: value given for undeclared parameter %q", ctx, nm)
		}
	}
	return nil
}

func isIdent(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
