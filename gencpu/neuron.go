// Copyright (c) 2024, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gencpu

import (
	"fmt"

	"goki.dev/snngen/codestream"
	"goki.dev/snngen/model"
	"goki.dev/snngen/subst"
	"goki.dev/snngen/vartypes"
)

// usingScope runs fn inside a block that imports namespace ns, if on
func usingScope(cs *codestream.CodeStream, ns string, on bool, fn func()) {
	if !on {
		fn()
		return
	}
	cs.Linef("{ using namespace %s;", ns)
	fn()
	cs.Line("}")
}

// genNeurons writes calcNeuronsCPU, updating every population in declaration order
func (g *Generator) genNeurons(cs *codestream.CodeStream) error {
	cs.Linef("void calcNeuronsCPU(%s t)", g.timePrec)
	cs.OB(51)
	for _, ng := range g.Model.Neurons {
		if err := g.genNeuronGroup(cs, ng); err != nil {
			return err
		}
	}
	cs.CB(51)
	return nil
}

// neuronCode holds the substituted code of one population
type neuronCode struct {
	sim, thresh, reset string
	events             []string
	preSpike           []string
	postSpike          []string
	apply, decay       []string
}

// substNeuron substitutes all the code run in the neuron kernel of ng
func (g *Generator) substNeuron(ng *model.NeuronGroup) (*neuronCode, error) {
	nm := ng.Model
	nen := g.neuronEnv(ng)
	nc := &neuronCode{}
	var err error
	ctx := func(what string) string {
		return fmt.Sprintf("population %q (%s) %s", ng.Name, model.KindName(nm.Kind, nm.Name), what)
	}
	if nc.sim, err = g.apply(ctx("sim code"), nm.SimCode, nen); err != nil {
		return nil, err
	}
	if nc.thresh, err = g.apply(ctx("threshold condition code"), nm.ThresholdConditionCode, nen); err != nil {
		return nil, err
	}
	if nc.reset, err = g.apply(ctx("reset code"), nm.ResetCode, nen); err != nil {
		return nil, err
	}
	for _, mi := range g.plan.merged[ng] {
		sg := mi.Rep
		pen := g.psmEnv(nen, mi)
		ap, err := g.apply(fmt.Sprintf("synapse group %q apply input code", sg.Name), sg.PS.ApplyInputCode, pen)
		if err != nil {
			return nil, err
		}
		dc, err := g.apply(fmt.Sprintf("synapse group %q decay code", sg.Name), sg.PS.DecayCode, pen)
		if err != nil {
			return nil, err
		}
		nc.apply = append(nc.apply, ap)
		nc.decay = append(nc.decay, dc)
	}
	for _, ec := range ng.SpikeEventConditions {
		sg := ec.Synapses
		c, err := g.apply(fmt.Sprintf("synapse group %q event threshold condition code", sg.Name), ec.Code, g.spikeEnv(ng, sg, true))
		if err != nil {
			return nil, err
		}
		nc.events = append(nc.events, c)
	}
	for _, sg := range ng.OutSyn {
		c, err := g.apply(fmt.Sprintf("synapse group %q pre spike code", sg.Name), sg.WU.PreSpikeCode, g.spikeEnv(ng, sg, true))
		if err != nil {
			return nil, err
		}
		nc.preSpike = append(nc.preSpike, c)
	}
	for _, sg := range ng.InSyn {
		c, err := g.apply(fmt.Sprintf("synapse group %q post spike code", sg.Name), sg.WU.PostSpikeCode, g.spikeEnv(ng, sg, false))
		if err != nil {
			return nil, err
		}
		nc.postSpike = append(nc.postSpike, c)
	}
	return nc, nil
}

func (g *Generator) genNeuronGroup(cs *codestream.CodeStream, ng *model.NeuronGroup) error {
	nm := ng.Model
	nc, err := g.substNeuron(ng)
	if err != nil {
		return err
	}
	if nc.thresh == "" {
		g.warn("no threshold condition code: population never spikes", "population", ng.Name, "model", model.KindName(nm.Kind, nm.Name))
	}
	q := AxonalQueue{Pop: ng.Name, N: ng.N, Slots: ng.NumDelaySlots}
	P := ng.Name
	slot := func(on bool) string {
		if on {
			return q.Ptr()
		}
		return "0"
	}
	spkQueued := q.Required() && ng.TrueSpikeRequired

	cs.Linef("// neuron group %s", P)
	cs.OB(52)
	if nm.SupportCode != "" {
		cs.Linef("using namespace %s_neuron;", P)
	}
	if q.Required() {
		cs.Line(q.Advance())
	}
	if ng.SpikeEventRequired {
		cs.Linef("glbSpkCntEvnt%s[%s] = 0;", P, slot(q.Required()))
	}
	cs.Linef("glbSpkCnt%s[%s] = 0;", P, slot(spkQueued))
	if q.Required() {
		cs.Linef("const unsigned int readDelayOffset = %s;", q.ReadOffset(1))
		cs.Linef("const unsigned int writeDelayOffset = %s;", q.WriteOffset())
	}
	cs.Blank()

	cs.Printf("for (int n = 0; n < %d; n++)", ng.N)
	cs.OB(53)
	for _, v := range nm.Vars {
		cs.Linef("%s l%s = %s%s[%sn];", vartypes.Resolve(v.Type, g.prec), v.Name, v.Name, P, plus("readDelayOffset", q.Required() && ng.VarQueueRequired(v.Name)))
	}
	if ng.SpikeTimeRequired && q.Required() {
		cs.Linef("sT%s[writeDelayOffset + n] = sT%s[readDelayOffset + n];", P, P)
	}
	cs.Blank()

	mis := g.plan.merged[ng]
	if len(mis) > 0 || subst.MustParse(nm.SimCode).Uses("Isyn") {
		cs.Linef("%s Isyn = 0;", g.prec)
	}
	for _, a := range nm.AdditionalInputVars {
		cs.Linef("%s %s = %s;", vartypes.Resolve(a.Type, g.prec), a.Name, a.Init)
	}
	for i, mi := range mis {
		sg := mi.Rep
		cs.Linef("// pull inSyn values for %s", mi.Target)
		if sg.DendriticDelayRequired() {
			db := DendriticBuffer{Target: mi.Target, NPost: ng.N, Slots: sg.DendriticDelaySlots}
			for _, s := range db.Drain(g.prec, g.zero, "n") {
				cs.Line(s)
			}
		}
		if sg.IndividualPSM {
			for _, v := range sg.PS.Vars {
				cs.Linef("%s lps%s%s = %s%s[n];", vartypes.Resolve(v.Type, g.prec), v.Name, mi.Target, v.Name, mi.Target)
			}
		}
		if nc.apply[i] != "" {
			usingScope(cs, mi.Target+"_postsyn", sg.PS.SupportCode != "", func() {
				cs.Line(nc.apply[i])
			})
		}
	}

	autoRef := g.Prefs.AutoRefractory && nm.AutoRefractoryRequired && nc.thresh != ""
	if autoRef {
		cs.Line("// test whether spike condition was fulfilled previously")
		cs.Linef("bool oldSpike = (%s);", nc.thresh)
	}
	if nc.sim != "" {
		cs.Line("// calculate membrane potential")
		cs.Line(nc.sim)
	}

	if ng.SpikeEventRequired {
		cs.Line("bool spikeLikeEvent = false;")
		for i, ec := range ng.SpikeEventConditions {
			usingScope(cs, ec.Synapses.Name+"_weightupdate_simCode", ec.SupportCode != "", func() {
				cs.Linef("spikeLikeEvent |= (%s);", nc.events[i])
			})
		}
		cs.Line("// register a spike-like event")
		cs.Printf("if (spikeLikeEvent)")
		cs.OB(54)
		cs.Linef("glbSpkEvnt%s[%sglbSpkCntEvnt%s[%s]++] = n;", P, plus("writeDelayOffset", q.Required()), P, slot(q.Required()))
		cs.CB(54)
	}

	if nc.thresh != "" {
		cs.Line("// test for and register a true spike")
		if autoRef {
			cs.Printf("if ((%s) && !(oldSpike))", nc.thresh)
		} else {
			cs.Printf("if (%s)", nc.thresh)
		}
		cs.OB(55)
		cs.Linef("glbSpk%s[%sglbSpkCnt%s[%s]++] = n;", P, plus("writeDelayOffset", spkQueued), P, slot(spkQueued))
		for i, sg := range ng.OutSyn {
			if nc.preSpike[i] == "" {
				continue
			}
			usingScope(cs, sg.Name+"_weightupdate_simCode", sg.WU.SimSupportCode != "", func() {
				cs.Line(nc.preSpike[i])
			})
		}
		for i, sg := range ng.InSyn {
			if nc.postSpike[i] == "" {
				continue
			}
			usingScope(cs, sg.Name+"_weightupdate_simCode", sg.WU.SimSupportCode != "", func() {
				cs.Line(nc.postSpike[i])
			})
		}
		if ng.SpikeTimeRequired {
			cs.Linef("sT%s[%sn] = t;", P, plus("writeDelayOffset", q.Required()))
		}
		if nc.reset != "" {
			cs.Line("// spike reset code")
			cs.Line(nc.reset)
		}
		cs.CB(55)
	}

	for i, mi := range mis {
		sg := mi.Rep
		if nc.decay[i] != "" {
			usingScope(cs, mi.Target+"_postsyn", sg.PS.SupportCode != "", func() {
				cs.Line(nc.decay[i])
			})
		}
		if sg.IndividualPSM {
			for _, v := range sg.PS.Vars {
				cs.Linef("%s%s[n] = lps%s%s;", v.Name, mi.Target, v.Name, mi.Target)
			}
		}
	}

	for _, v := range nm.Vars {
		cs.Linef("%s%s[%sn] = l%s;", v.Name, P, plus("writeDelayOffset", q.Required() && ng.VarQueueRequired(v.Name)), v.Name)
	}
	cs.CB(53)

	for _, mi := range mis {
		if mi.Rep.DendriticDelayRequired() {
			db := DendriticBuffer{Target: mi.Target, NPost: ng.N, Slots: mi.Rep.DendriticDelaySlots}
			cs.Line(db.Advance())
		}
	}
	cs.CB(52)
	cs.Blank()
	return nil
}
