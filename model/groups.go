// Copyright (c) 2024, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"goki.dev/snngen/connect"
)

// NeuronGroup is a population of neurons sharing one neuron model.
// The derived fields are computed by Model.Finalize, after which
// the group is not modified.
type NeuronGroup struct {
	Name   string             `desc:"population name, appended to all of its generated variable names"`
	N      int                `desc:"number of neurons"`
	Model  *NeuronModel       `desc:"neuron model"`
	Params map[string]float64 `desc:"values of the model parameters"`

	Derived              map[string]float64 `inactive:"+" desc:"values of the derived parameters"`
	NumDelaySlots        int                `inactive:"+" desc:"depth of the spike queue: 1 + max axonal delay of outgoing groups (and back-propagation delay of incoming ones)"`
	SpikeEventRequired   bool               `inactive:"+" desc:"an outgoing synapse group processes spike-like events"`
	TrueSpikeRequired    bool               `inactive:"+" desc:"an outgoing synapse group processes true spikes, or an incoming one learns on postsynaptic spikes, so spikes are queued with the delay"`
	SpikeTimeRequired    bool               `inactive:"+" desc:"spike times are recorded in sT"`
	InSyn                []*SynapseGroup    `inactive:"+" desc:"incoming synapse groups, in declaration order"`
	OutSyn               []*SynapseGroup    `inactive:"+" desc:"outgoing synapse groups, in declaration order"`
	SpikeEventConditions []EventCondition   `inactive:"+" desc:"spike-like event conditions of outgoing groups"`

	varQueue map[string]bool
}

// EventCondition is the spike-like event threshold of an outgoing
// synapse group, evaluated in the presynaptic neuron kernel
type EventCondition struct {
	Synapses    *SynapseGroup
	Code        string
	SupportCode string
}

// DelayRequired returns true if the population has a spike queue
func (ng *NeuronGroup) DelayRequired() bool {
	return ng.NumDelaySlots > 1
}

// VarQueueRequired returns true if the named variable is read with a
// delay by synapse code, and so is stored once per delay slot
func (ng *NeuronGroup) VarQueueRequired(name string) bool {
	return ng.varQueue[name]
}

// ParamValue returns the value of a parameter or derived parameter
func (ng *NeuronGroup) ParamValue(name string) (float64, bool) {
	if v, ok := ng.Params[name]; ok {
		return v, true
	}
	v, ok := ng.Derived[name]
	return v, ok
}

// SynapseGroup connects a source population to a target one
type SynapseGroup struct {
	Name         string             `desc:"group name, appended to all of its generated variable names"`
	Src          *NeuronGroup       `desc:"presynaptic population"`
	Trg          *NeuronGroup       `desc:"postsynaptic population"`
	WU           *WeightUpdateModel `desc:"weight update model"`
	PS           *PostsynapticModel `desc:"postsynaptic model"`
	WUParams     map[string]float64 `desc:"values of the weight update parameters"`
	PSParams     map[string]float64 `desc:"values of the postsynaptic parameters"`
	Connectivity Connectivity       `desc:"synaptic matrix storage scheme"`
	Weight       WeightType         `desc:"per-synapse or global weight update variables"`

	IndividualPSM        bool               `desc:"postsynaptic model variables are stored per target neuron, otherwise they are the constants in PSVarValues"`
	DelaySteps           int                `desc:"axonal delay in timesteps"`
	BackPropDelaySteps   int                `desc:"back-propagation delay of postsynaptic spikes in timesteps"`
	MaxConnections       int                `desc:"row capacity: max targets per presynaptic neuron, and the row stride of Ragged connectivity"`
	MaxSourceConnections int                `desc:"column capacity: max sources per postsynaptic neuron, and the column stride of Ragged connectivity"`
	DendriticDelaySlots  int                `desc:"number of dendritic delay slots -- 0 means no dendritic delay"`
	VarValues            map[string]float64 `desc:"values of the weight update variables for Global weights"`
	PSVarValues          map[string]float64 `desc:"values of the postsynaptic variables when not IndividualPSM"`
	Pattern              string             `desc:"name of a projection pattern (Full, OneToOne, UnifRnd) used to size the capacities"`
	PCon                 float64            `desc:"probability of connection for the UnifRnd pattern"`
	Seed                 int64              `desc:"random seed for the UnifRnd pattern"`

	WUDerived map[string]float64    `inactive:"+" desc:"values of the weight update derived parameters"`
	PSDerived map[string]float64    `inactive:"+" desc:"values of the postsynaptic derived parameters"`
	Conn      *connect.Connectivity `inactive:"+" desc:"connectivity built from Pattern, if any"`
}

// SpikeEventRequired returns true if the group processes spike-like events
func (sg *SynapseGroup) SpikeEventRequired() bool {
	return sg.WU.EventCode != ""
}

// TrueSpikeRequired returns true if the group processes true spikes
func (sg *SynapseGroup) TrueSpikeRequired() bool {
	return sg.WU.SimCode != ""
}

// DendriticDelayRequired returns true if input is deposited into a dendritic delay buffer
func (sg *SynapseGroup) DendriticDelayRequired() bool {
	return sg.DendriticDelaySlots > 0
}

// WUParamValue returns the value of a weight update parameter or derived parameter
func (sg *SynapseGroup) WUParamValue(name string) (float64, bool) {
	if v, ok := sg.WUParams[name]; ok {
		return v, true
	}
	v, ok := sg.WUDerived[name]
	return v, ok
}

// PSParamValue returns the value of a postsynaptic parameter or derived parameter
func (sg *SynapseGroup) PSParamValue(name string) (float64, bool) {
	if v, ok := sg.PSParams[name]; ok {
		return v, true
	}
	v, ok := sg.PSDerived[name]
	return v, ok
}

// NumSynapses returns the number of synapse slots allocated
// for per-synapse variables
func (sg *SynapseGroup) NumSynapses() int {
	switch sg.Connectivity {
	case Sparse:
		if sg.Conn != nil {
			return sg.Conn.NConn
		}
		return sg.Src.N * sg.MaxConnections
	case Ragged:
		return sg.Src.N * sg.MaxConnections
	}
	return sg.Src.N * sg.Trg.N
}
