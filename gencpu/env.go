// Copyright (c) 2024, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gencpu

import (
	"fmt"
	"strings"

	"goki.dev/snngen/model"
	"goki.dev/snngen/subst"
)

// rngFuncs map the random number placeholders to the CPU distributions
var rngFuncs = []subst.Replace{
	{From: "gennrand_uniform", To: "standardUniformDistribution(rng)"},
	{From: "gennrand_normal", To: "standardNormalDistribution(rng)"},
	{From: "gennrand_exponential", To: "standardExponentialDistribution(rng)"},
}

// plus returns "name + " if on, for prefixing an index with an offset
func plus(name string, on bool) string {
	if !on {
		return ""
	}
	return name + " + "
}

func (g *Generator) lit(v float64) string {
	return subst.Literal(v, g.single)
}

// newEnv returns a root environment with the time and random numbers
func (g *Generator) newEnv() *subst.Env {
	en := subst.NewEnv()
	en.Var("t", "t")
	en.Var("DT", g.lit(g.Model.DT))
	for _, r := range rngFuncs {
		en.Func(r.From, 0, r.To)
	}
	return en
}

// addValues substitutes each value as a literal, with names suffixed by suffix
func (g *Generator) addValues(en *subst.Env, suffix string, vals ...map[string]float64) {
	for _, vm := range vals {
		for k, v := range vm {
			en.Var(k+suffix, g.lit(v))
		}
	}
}

func addEGPs(en *subst.Env, egps model.VarSet, suffix, owner string) {
	for _, e := range egps {
		en.Var(e.Name+suffix, e.Name+owner)
	}
}

// neuronEnv returns the substitutions for neuron model code in the neuron loop
func (g *Generator) neuronEnv(ng *model.NeuronGroup) *subst.Env {
	nm := ng.Model
	en := g.newEnv()
	en.Var("id", "n")
	en.Vars(nm.Vars.Names(), func(v string) string { return "l" + v })
	g.addValues(en, "", ng.Params, ng.Derived)
	addEGPs(en, nm.ExtraGlobalParams, "", ng.Name)
	en.Var("Isyn", "Isyn")
	for _, a := range nm.AdditionalInputVars {
		en.Var(a.Name, a.Name)
	}
	if ng.SpikeTimeRequired {
		en.Var("sT", "sT"+ng.Name+"["+plus("readDelayOffset", ng.DelayRequired())+"n]")
	}
	return en
}

// psmEnv returns the substitutions for the postsynaptic model code of
// a merged input, layered on the neuron environment
func (g *Generator) psmEnv(nen *subst.Env, mi *mergedInput) *subst.Env {
	sg := mi.Rep
	en := nen.Child()
	en.Var("inSyn", "inSyn"+mi.Target+"[n]")
	g.addValues(en, "", sg.PSParams, sg.PSDerived)
	if sg.IndividualPSM {
		en.Vars(sg.PS.Vars.Names(), func(v string) string { return "lps" + v + mi.Target })
	} else {
		for _, v := range sg.PS.Vars {
			en.Var(v.Name, g.lit(sg.PSVarValues[v.Name]))
		}
	}
	return en
}

// spikeEnv returns the substitutions for weight update code run in the
// neuron kernel of ng: event threshold conditions and pre spike code of
// outgoing groups (pre = true), post spike code of incoming ones.
func (g *Generator) spikeEnv(ng *model.NeuronGroup, sg *model.SynapseGroup, pre bool) *subst.Env {
	sfx := "_post"
	if pre {
		sfx = "_pre"
	}
	en := g.newEnv()
	en.Var("id", "n")
	en.Var("id"+sfx, "n")
	for _, v := range ng.Model.Vars {
		en.Var(v.Name+sfx, "l"+v.Name)
	}
	g.addValues(en, sfx, ng.Params, ng.Derived)
	addEGPs(en, ng.Model.ExtraGlobalParams, sfx, ng.Name)
	g.addWUValues(en, sg)
	vars := sg.WU.PostVars
	if pre {
		vars = sg.WU.PreVars
	}
	en.Vars(vars.Names(), func(v string) string { return v + sg.Name + "[n]" })
	return en
}

func (g *Generator) addWUValues(en *subst.Env, sg *model.SynapseGroup) {
	g.addValues(en, "", sg.WUParams, sg.WUDerived)
	addEGPs(en, sg.WU.ExtraGlobalParams, "", sg.Name)
}

// synIndex are the index expressions of one synapse in synapse code
type synIndex struct {
	pre, post, syn string
}

// synapseEnv returns the substitutions for weight update code in the
// synapse routines.  If deposit is set, the input functions addToInSyn
// or addToInSynDelay are defined.
func (g *Generator) synapseEnv(sg *model.SynapseGroup, idx synIndex, deposit bool) *subst.Env {
	en := g.newEnv()
	en.Var("id_pre", idx.pre)
	en.Var("id_post", idx.post)
	if idx.syn != "" {
		en.Var("id_syn", idx.syn)
	}
	g.addWUValues(en, sg)
	wu := sg.WU
	switch {
	case sg.Weight == model.Global:
		for _, v := range wu.Vars {
			en.Var(v.Name, g.lit(sg.VarValues[v.Name]))
		}
	case idx.syn != "":
		en.Vars(wu.Vars.Names(), func(v string) string { return v + sg.Name + "[" + idx.syn + "]" })
	}
	en.Vars(wu.PreVars.Names(), func(v string) string { return v + sg.Name + "[" + idx.pre + "]" })
	en.Vars(wu.PostVars.Names(), func(v string) string { return v + sg.Name + "[" + idx.post + "]" })
	g.addNeuronAccess(en, sg.Src, "_pre", "preReadDelayOffset", idx.pre)
	g.addNeuronAccess(en, sg.Trg, "_post", "postReadDelayOffset", idx.post)
	if deposit {
		g.addDeposit(en, sg, idx.post)
	}
	return en
}

// addNeuronAccess adds the variables, parameters and spike times of a
// pre or postsynaptic population, read with the delay offset where queued
func (g *Generator) addNeuronAccess(en *subst.Env, ng *model.NeuronGroup, sfx, offset, id string) {
	dly := ng.DelayRequired()
	for _, v := range ng.Model.Vars {
		en.Var(v.Name+sfx, v.Name+ng.Name+"["+plus(offset, dly && ng.VarQueueRequired(v.Name))+id+"]")
	}
	g.addValues(en, sfx, ng.Params, ng.Derived)
	addEGPs(en, ng.Model.ExtraGlobalParams, sfx, ng.Name)
	if ng.SpikeTimeRequired {
		en.Var("sT"+sfx, "sT"+ng.Name+"["+plus(offset, dly)+id+"]")
	}
}

// addDeposit adds the input functions: addToInSynDelay (and its alias
// addToDenDelay) with a dendritic delay, otherwise addToInSyn and the
// legacy $(inSyn), $(updatelinsyn) and $(addtoinSyn).
func (g *Generator) addDeposit(en *subst.Env, sg *model.SynapseGroup, post string) {
	trg := g.plan.target[sg]
	if sg.DendriticDelayRequired() {
		db := DendriticBuffer{Target: trg, NPost: sg.Trg.N, Slots: sg.DendriticDelaySlots}
		pat := db.WriteIndex("$(1)", post) + " += $(0)"
		en.Func("addToInSynDelay", 2, pat)
		en.Func("addToDenDelay", 2, pat)
		return
	}
	insyn := "inSyn" + trg + "[" + post + "]"
	en.Func("addToInSyn", 1, insyn+" += $(0)")
	en.Var("inSyn", insyn)
	en.Var("updatelinsyn", insyn+" += addtoinSyn")
	en.Var("addtoinSyn", "addtoinSyn")
}

// usesLegacy returns true if code uses the legacy addtoinSyn local
func usesLegacy(code string) bool {
	tm, err := subst.Parse(code)
	if err != nil {
		return false
	}
	return tm.Uses("addtoinSyn") || tm.Uses("updatelinsyn")
}

// apply substitutes code in en, reporting errors in the given context,
// and applies single precision edits
func (g *Generator) apply(ctx, code string, en *subst.Env) (string, error) {
	out, err := subst.ApplyString(code, en)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ctx, err)
	}
	if g.single {
		out = subst.EnsureFtype(out)
	}
	return strings.TrimRight(out, " \t\n"), nil
}
