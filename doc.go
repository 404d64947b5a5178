// Copyright (c) 2024, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
snngen generates the CPU simulation code of spiking neural network models.

A model file (TOML or JSON) declares neuron populations and the synapse
groups connecting them, each governed by a built-in or custom model whose
update rules are C code snippets with $(name) placeholders.  For each
model, snngen writes neuronFnct.cc and synapseFnct.cc (and supportCode.h
if any model has support code) into a subdirectory of the output directory
named by the model.  Given a directory, all .toml and .json files in it are
processed, recursively.  (Files starting with a period are ignored.)

Usage:

	snngen [flags] [path ...]

The flags are:

	-out dir
		Output directory, "generated" by default.
	-refractory
		Neurons only spike on the rising edge of their threshold
		condition, for models that require it (default true).
	-merge
		Synapse groups targeting the same population with identical
		postsynaptic models and parameters share one input buffer.
	-v
		Print the state size report and generation times of each model.
	-keep
		Keep processing the remaining model files after one fails.

# Model files

	Name = "decoder"
	DT = 1.0
	Precision = "Float"

	[[Neurons]]
	Name = "Pre"
	N = 10
	Model = "SpikeSource"

	[[Neurons]]
	Name = "Post"
	N = 1
	Model = "Out"

	[NeuronModels.Out]
	Vars = [{Name = "x", Type = "scalar"}]
	SimCode = "$(x) += $(Isyn);"

	[[Synapses]]
	Name = "Syn"
	Src = "Pre"
	Trg = "Post"
	WeightUpdate = "StaticPulse"
	Connectivity = "Dense"

Model references name a model defined in the file, or one of the built-in
models: SpikeSource, Izhikevich, LIF and Poisson neurons, StaticPulse,
StaticPulseDendriticDelay and StaticGraded weight updates, and DeltaCurr,
ExpCurr and ExpCond postsynaptic models (DeltaCurr when none is named).

# Generated code

The generated routines calcSynapseDynamicsCPU, calcSynapsesCPU,
learnSynapsesPostHost and calcNeuronsCPU must be called in that order
every timestep.  They reference the state arrays by the naming convention
<variable><group>, e.g. VExc or gSyn, the spike buffers glbSpkCnt<Pop> and
glbSpk<Pop>, and the connectivity structures C<Group> and bitmasks gp<Group>,
all of which are allocated and initialized by the host program.
*/
package main
