// Copyright (c) 2024, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"fmt"
	"strings"

	"github.com/c2h5oh/datasize"
	"goki.dev/snngen/vartypes"
)

// NeuronStateBytes returns the bytes of state allocated for a neuron
// group: variables (queued ones once per delay slot), spike counts and
// buffers, and spike times.
func (m *Model) NeuronStateBytes(ng *NeuronGroup) int {
	prec := m.Precision.CType()
	mem := 0
	for _, v := range ng.Model.Vars {
		sz, _ := vartypes.Sizeof(v.Type, prec)
		n := ng.N
		if ng.DelayRequired() && ng.VarQueueRequired(v.Name) {
			n *= ng.NumDelaySlots
		}
		mem += sz * n
	}
	spkSlots := 1
	if ng.DelayRequired() && ng.TrueSpikeRequired {
		spkSlots = ng.NumDelaySlots
	}
	mem += 4 * spkSlots * (ng.N + 1)
	if ng.SpikeEventRequired {
		mem += 4 * ng.NumDelaySlots * (ng.N + 1)
	}
	if ng.SpikeTimeRequired {
		tsz, _ := vartypes.Sizeof(m.TimePrecision.CType(), prec)
		mem += tsz * ng.NumDelaySlots * ng.N
	}
	return mem
}

// SynapseStateBytes returns the bytes of per-synapse variables,
// connectivity arrays, and postsynaptic input and dendritic delay buffers
func (m *Model) SynapseStateBytes(sg *SynapseGroup) int {
	prec := m.Precision.CType()
	mem := 0
	nsyn := sg.NumSynapses()
	if sg.Weight == Individual {
		mem += vartypes.TotalSize(sg.WU.Vars.typeVars(), prec, nsyn)
	}
	mem += vartypes.TotalSize(sg.WU.PreVars.typeVars(), prec, sg.Src.N)
	mem += vartypes.TotalSize(sg.WU.PostVars.typeVars(), prec, sg.Trg.N)
	switch sg.Connectivity {
	case Bitmask:
		mem += 4 * ((sg.Src.N*sg.Trg.N + 31) / 32)
	case Sparse:
		mem += 4 * (sg.Src.N + 1 + nsyn)
		if sg.WU.LearnPostCode != "" {
			mem += 4 * (sg.Trg.N + 1 + 2*nsyn)
		}
	case Ragged:
		mem += 4 * (sg.Src.N + nsyn)
		if sg.WU.LearnPostCode != "" {
			mem += 4 * (sg.Trg.N + sg.Trg.N*sg.MaxSourceConnections)
		}
	}
	psz, _ := vartypes.Sizeof("scalar", prec)
	mem += psz * sg.Trg.N
	if sg.IndividualPSM {
		mem += vartypes.TotalSize(sg.PS.Vars.typeVars(), prec, sg.Trg.N)
	}
	if sg.DendriticDelayRequired() {
		mem += psz * sg.Trg.N * sg.DendriticDelaySlots
	}
	return mem
}

// SizeReport returns a string reporting the size of each neuron and
// synapse group, and the total memory allocated by the generated code
func (m *Model) SizeReport() string {
	var b strings.Builder
	neur := 0
	neurMem := 0
	syn := 0
	synMem := 0
	for _, ng := range m.Neurons {
		nmem := m.NeuronStateBytes(ng)
		neur += ng.N
		neurMem += nmem
		fmt.Fprintf(&b, "%14s:\t Neurons: %d\t Slots: %d\t NeurMem: %v \t Sends To:\n", ng.Name, ng.N, ng.NumDelaySlots, (datasize.ByteSize)(nmem).HumanReadable())
		for _, sg := range ng.OutSyn {
			ns := sg.NumSynapses()
			pmem := m.SynapseStateBytes(sg)
			syn += ns
			synMem += pmem
			fmt.Fprintf(&b, "\t%14s:\t %v\t Syns: %d\t SynMem: %v\n", sg.Trg.Name, sg.Connectivity, ns, (datasize.ByteSize)(pmem).HumanReadable())
		}
	}
	fmt.Fprintf(&b, "\n\n%14s:\t Neurons: %d\t NeurMem: %v \t Syns: %d \t SynMem: %v\n", m.Name, neur, (datasize.ByteSize)(neurMem).HumanReadable(), syn, (datasize.ByteSize)(synMem).HumanReadable())
	return b.String()
}
