// Copyright (c) 2024, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

// Each call to a builtin constructor returns a new model, so callers
// are free to modify the result.

// NewSpikeSource returns a neuron model with no state that never spikes
// on its own: spikes are injected by host code.
func NewSpikeSource() *NeuronModel {
	return &NeuronModel{
		Kind:                   SpikeSource,
		Name:                   "SpikeSource",
		ThresholdConditionCode: "0",
	}
}

// NewIzhikevich returns the Izhikevich (2003) neuron with parameters a, b, c, d
func NewIzhikevich() *NeuronModel {
	return &NeuronModel{
		Kind:   Izhikevich,
		Name:   "Izhikevich",
		Params: []string{"a", "b", "c", "d"},
		Vars:   VarSet{{"V", "scalar"}, {"U", "scalar"}},
		SimCode: `if ($(V) >= 30.0) {
    $(V) = $(c);
    $(U) += $(d);
}
$(V) += 0.5 * (0.04 * $(V) * $(V) + 5.0 * $(V) + 140.0 - $(U) + $(Isyn)) * $(DT); // two half steps for stability
$(V) += 0.5 * (0.04 * $(V) * $(V) + 5.0 * $(V) + 140.0 - $(U) + $(Isyn)) * $(DT);
$(U) += $(a) * ($(b) * $(V) - $(U)) * $(DT);
if ($(V) > 30.0) {
    $(V) = 30.0;
}
`,
		ThresholdConditionCode: "$(V) >= 29.99",
		AutoRefractoryRequired: true,
	}
}

// NewLIF returns a leaky integrate-and-fire neuron with an absolute refractory period
func NewLIF() *NeuronModel {
	return &NeuronModel{
		Kind:   LIF,
		Name:   "LIF",
		Params: []string{"C", "TauM", "Vrest", "Vreset", "Vthresh", "Ioffset", "TauRefrac"},
		DerivedParams: []DerivedParam{
			{"ExpTC", "exp(-DT / TauM)"},
			{"Rmembrane", "TauM / C"},
		},
		Vars: VarSet{{"V", "scalar"}, {"RefracTime", "scalar"}},
		SimCode: `if ($(RefracTime) <= 0.0) {
    scalar alpha = (($(Isyn) + $(Ioffset)) * $(Rmembrane)) + $(Vrest);
    $(V) = alpha - ($(ExpTC) * (alpha - $(V)));
}
else {
    $(RefracTime) -= $(DT);
}
`,
		ThresholdConditionCode: "$(RefracTime) <= 0.0 && $(V) >= $(Vthresh)",
		ResetCode: `$(V) = $(Vreset);
$(RefracTime) = $(TauRefrac);
`,
		AutoRefractoryRequired: true,
	}
}

// NewPoisson returns a Poisson neuron firing at the given rate (Hz, with DT in ms),
// drawing exponential inter-spike intervals from the RNG
func NewPoisson() *NeuronModel {
	return &NeuronModel{
		Kind:   Poisson,
		Name:   "Poisson",
		Params: []string{"rate"},
		DerivedParams: []DerivedParam{
			{"isi", "1000.0 / (rate * DT)"},
		},
		Vars: VarSet{{"timeStepToSpike", "scalar"}},
		SimCode: `if ($(timeStepToSpike) <= 0.0) {
    $(timeStepToSpike) += $(isi) * $(gennrand_exponential);
}
$(timeStepToSpike) -= 1.0;
`,
		ThresholdConditionCode: "$(timeStepToSpike) <= 0.0",
	}
}

// NewStaticPulse returns the weight update model that adds g to the
// postsynaptic input on each presynaptic spike
func NewStaticPulse() *WeightUpdateModel {
	return &WeightUpdateModel{
		Kind:    StaticPulse,
		Name:    "StaticPulse",
		Vars:    VarSet{{"g", "scalar"}},
		SimCode: "$(addToInSyn, $(g));\n",
	}
}

// NewStaticPulseDendriticDelay is StaticPulse with a per-synapse dendritic delay d
func NewStaticPulseDendriticDelay() *WeightUpdateModel {
	return &WeightUpdateModel{
		Kind:    StaticPulseDendriticDelay,
		Name:    "StaticPulseDendriticDelay",
		Vars:    VarSet{{"g", "scalar"}, {"d", "uint8_t"}},
		SimCode: "$(addToInSynDelay, $(g), $(d));\n",
	}
}

// NewStaticGraded returns the graded synapse driven by presynaptic
// spike-like events whenever V_pre is above Epre
func NewStaticGraded() *WeightUpdateModel {
	return &WeightUpdateModel{
		Kind:                        StaticGraded,
		Name:                        "StaticGraded",
		Params:                      []string{"Epre", "Vslope"},
		Vars:                        VarSet{{"g", "scalar"}},
		EventCode:                   "$(addToInSyn, fmax(0.0, $(g) * tanh(($(V_pre) - $(Epre)) / $(Vslope)) * $(DT)));\n",
		EventThresholdConditionCode: "$(V_pre) > $(Epre)",
	}
}

// NewDeltaCurr returns the postsynaptic model applying all input at once
func NewDeltaCurr() *PostsynapticModel {
	return &PostsynapticModel{
		Kind:           DeltaCurr,
		Name:           "DeltaCurr",
		ApplyInputCode: "$(Isyn) += $(inSyn);\n$(inSyn) = 0;\n",
	}
}

// NewExpCurr returns the exponentially decaying current with time constant tau
func NewExpCurr() *PostsynapticModel {
	return &PostsynapticModel{
		Kind:   ExpCurr,
		Name:   "ExpCurr",
		Params: []string{"tau"},
		DerivedParams: []DerivedParam{
			{"expDecay", "exp(-DT / tau)"},
			{"init", "(tau * (1.0 - expDecay)) / DT"},
		},
		ApplyInputCode: "$(Isyn) += $(init) * $(inSyn);\n",
		DecayCode:      "$(inSyn) *= $(expDecay);\n",
	}
}

// NewExpCond returns the exponentially decaying conductance with
// time constant tau and reversal potential E, driving the neuron's V
func NewExpCond() *PostsynapticModel {
	return &PostsynapticModel{
		Kind:   ExpCond,
		Name:   "ExpCond",
		Params: []string{"tau", "E"},
		DerivedParams: []DerivedParam{
			{"expDecay", "exp(-DT / tau)"},
		},
		ApplyInputCode: "$(Isyn) += $(inSyn) * ($(E) - $(V));\n",
		DecayCode:      "$(inSyn) *= $(expDecay);\n",
	}
}

// BuiltinNeuron returns a new instance of the named built-in neuron model
func BuiltinNeuron(name string) (*NeuronModel, bool) {
	switch name {
	case "SpikeSource":
		return NewSpikeSource(), true
	case "Izhikevich":
		return NewIzhikevich(), true
	case "LIF":
		return NewLIF(), true
	case "Poisson":
		return NewPoisson(), true
	}
	return nil, false
}

// BuiltinWeightUpdate returns a new instance of the named built-in weight update model
func BuiltinWeightUpdate(name string) (*WeightUpdateModel, bool) {
	switch name {
	case "StaticPulse":
		return NewStaticPulse(), true
	case "StaticPulseDendriticDelay":
		return NewStaticPulseDendriticDelay(), true
	case "StaticGraded":
		return NewStaticGraded(), true
	}
	return nil, false
}

// BuiltinPostsynaptic returns a new instance of the named built-in postsynaptic model
func BuiltinPostsynaptic(name string) (*PostsynapticModel, bool) {
	switch name {
	case "DeltaCurr":
		return NewDeltaCurr(), true
	case "ExpCurr":
		return NewExpCurr(), true
	case "ExpCond":
		return NewExpCond(), true
	}
	return nil, false
}
