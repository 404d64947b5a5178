// Copyright (c) 2024, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"github.com/goki/ki/kit"
)

//////////////////////////////////////////////////////////////////////////////////////
//  ModelKind

// ModelKind identifies a built-in model, or Custom for user-defined ones.
// Diagnostics report the kind instead of inspecting types.
type ModelKind int

//go:generate stringer -type=ModelKind

var KiT_ModelKind = kit.Enums.AddEnum(ModelKindN, kit.NotBitFlag, nil)

func (ev ModelKind) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *ModelKind) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }
func (ev *ModelKind) UnmarshalText(b []byte) error { return ev.FromString(string(b)) }

const (
	// Custom is a model defined in a model file or in code
	Custom ModelKind = iota

	// SpikeSource neurons only spike when driven externally
	SpikeSource

	// Izhikevich is the Izhikevich (2003) simple neuron
	Izhikevich

	// LIF is a leaky integrate-and-fire neuron with absolute refractory period
	LIF

	// Poisson neurons fire with a given rate using the uniform RNG
	Poisson

	// StaticPulse adds the weight to the postsynaptic input on each presynaptic spike
	StaticPulse

	// StaticPulseDendriticDelay is StaticPulse with a per-synapse dendritic delay
	StaticPulseDendriticDelay

	// StaticGraded transmits graded input from presynaptic spike-like events
	StaticGraded

	// DeltaCurr applies the input as an instantaneous current
	DeltaCurr

	// ExpCurr applies an exponentially decaying current
	ExpCurr

	// ExpCond applies an exponentially decaying conductance with reversal potential
	ExpCond

	ModelKindN
)

//////////////////////////////////////////////////////////////////////////////////////
//  Connectivity

// Connectivity is the synaptic matrix storage scheme of a synapse group,
// which determines how synapses are indexed in generated code.
type Connectivity int

//go:generate stringer -type=Connectivity

var KiT_Connectivity = kit.Enums.AddEnum(ConnectivityN, kit.NotBitFlag, nil)

func (ev Connectivity) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Connectivity) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }
func (ev *Connectivity) UnmarshalText(b []byte) error { return ev.FromString(string(b)) }

const (
	// Dense stores every pre x post synapse, in row major order
	Dense Connectivity = iota

	// Bitmask stores one bit per pre x post pair, with global weights only
	Bitmask

	// Sparse stores rows back to back, with row start offsets (Yale format)
	Sparse

	// Ragged stores each row in a fixed stride of MaxConnections entries
	// with the used row length per row
	Ragged

	ConnectivityN
)

//////////////////////////////////////////////////////////////////////////////////////
//  WeightType

// WeightType determines whether weight update variables are stored per synapse
type WeightType int

//go:generate stringer -type=WeightType

var KiT_WeightType = kit.Enums.AddEnum(WeightTypeN, kit.NotBitFlag, nil)

func (ev WeightType) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *WeightType) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }
func (ev *WeightType) UnmarshalText(b []byte) error { return ev.FromString(string(b)) }

const (
	// Individual stores each variable per synapse
	Individual WeightType = iota

	// Global uses one constant value for all synapses of the group
	Global

	WeightTypeN
)

//////////////////////////////////////////////////////////////////////////////////////
//  Precision

// Precision is the floating point type of model state
type Precision int

//go:generate stringer -type=Precision

var KiT_Precision = kit.Enums.AddEnum(PrecisionN, kit.NotBitFlag, nil)

func (ev Precision) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Precision) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }
func (ev *Precision) UnmarshalText(b []byte) error { return ev.FromString(string(b)) }

const (
	Float Precision = iota
	Double
	LongDouble
	PrecisionN
)

// CType returns the C type name
func (ev Precision) CType() string {
	switch ev {
	case Double:
		return "double"
	case LongDouble:
		return "long double"
	}
	return "float"
}

// IsSingle is true for single precision, where literals need an f suffix
func (ev Precision) IsSingle() bool {
	return ev == Float
}
