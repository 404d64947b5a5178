// Copyright (c) 2024, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gencpu

import (
	"fmt"

	"goki.dev/snngen/codestream"
	"goki.dev/snngen/model"
)

// synOffsets declares the delay slots and offsets read by the synapse code of sg
func (g *Generator) synOffsets(cs *codestream.CodeStream, sg *model.SynapseGroup) {
	src := AxonalQueue{Pop: sg.Src.Name, N: sg.Src.N, Slots: sg.Src.NumDelaySlots}
	if src.Required() {
		cs.Linef("const unsigned int preReadDelaySlot = %s;", src.SlotExpr(sg.DelaySteps))
		cs.Linef("const unsigned int preReadDelayOffset = preReadDelaySlot * %d;", sg.Src.N)
	}
	trg := AxonalQueue{Pop: sg.Trg.Name, N: sg.Trg.N, Slots: sg.Trg.NumDelaySlots}
	if trg.Required() {
		cs.Linef("const unsigned int postReadDelaySlot = %s;", trg.SlotExpr(sg.BackPropDelaySteps))
		cs.Linef("const unsigned int postReadDelayOffset = postReadDelaySlot * %d;", sg.Trg.N)
	}
}

// beginGroup opens the scope of synapse group sg, importing the support
// code namespace ns if code is not empty
func (g *Generator) beginGroup(cs *codestream.CodeStream, sg *model.SynapseGroup, ns, code string) {
	cs.Linef("// synapse group %s", sg.Name)
	cs.OB(61)
	if code != "" {
		cs.Linef("using namespace %s_%s;", sg.Name, ns)
	}
	g.synOffsets(cs, sg)
}

// legacyDecl declares the addtoinSyn local used by legacy weight update code
func (g *Generator) legacyDecl(cs *codestream.CodeStream, sg *model.SynapseGroup, codes ...string) {
	if sg.DendriticDelayRequired() {
		return
	}
	for _, c := range codes {
		if usesLegacy(c) {
			cs.Linef("%s addtoinSyn;", g.prec)
			return
		}
	}
}

// genSynapseDynamics writes calcSynapseDynamicsCPU, if any group has
// synapse dynamics code.  Every synapse of each such group is updated.
func (g *Generator) genSynapseDynamics(cs *codestream.CodeStream) error {
	var sgs []*model.SynapseGroup
	for _, sg := range g.Model.Synapses {
		if sg.WU.SynapseDynamicsCode != "" {
			sgs = append(sgs, sg)
		}
	}
	if len(sgs) == 0 {
		return nil
	}
	cs.Linef("void calcSynapseDynamicsCPU(%s t)", g.timePrec)
	cs.OB(60)
	for _, sg := range sgs {
		ix := g.plan.index[sg]
		lp := ix.Row("ipre")
		code, err := g.apply(fmt.Sprintf("synapse group %q synapse dynamics code", sg.Name), sg.WU.SynapseDynamicsCode, g.synapseEnv(sg, synIndex{pre: lp.Pre, post: lp.Post, syn: lp.Syn}, true))
		if err != nil {
			return err
		}
		g.beginGroup(cs, sg, "weightupdate_synapseDynamics", sg.WU.SynapseDynamicsSupportCode)
		g.legacyDecl(cs, sg, sg.WU.SynapseDynamicsCode)
		cs.Printf("for (unsigned int ipre = 0; ipre < %d; ipre++)", sg.Src.N)
		cs.OB(62)
		lp.Begin(cs, 63)
		g.guarded(cs, lp.Exists, func() {
			cs.Line(code)
		})
		lp.End(cs, 63)
		cs.CB(62)
		cs.CB(61)
	}
	cs.CB(60)
	cs.Blank()
	return nil
}

// guarded writes fn inside an if statement on cond, if cond is not empty
func (g *Generator) guarded(cs *codestream.CodeStream, cond string, fn func()) {
	if cond == "" {
		fn()
		return
	}
	cs.Printf("if (%s)", cond)
	cs.OB(64)
	fn()
	cs.CB(64)
}

// genSynapses writes calcSynapsesCPU, propagating the spike-like events
// and then the true spikes of every group
func (g *Generator) genSynapses(cs *codestream.CodeStream) error {
	cs.Linef("void calcSynapsesCPU(%s t)", g.timePrec)
	cs.OB(65)
	for _, sg := range g.Model.Synapses {
		evnt, tru := sg.SpikeEventRequired(), sg.TrueSpikeRequired()
		if !evnt && !tru {
			continue
		}
		g.beginGroup(cs, sg, "weightupdate_simCode", sg.WU.SimSupportCode)
		g.legacyDecl(cs, sg, sg.WU.SimCode, sg.WU.EventCode)
		if evnt {
			if err := g.spikePass(cs, sg, true); err != nil {
				return err
			}
		}
		if tru {
			if err := g.spikePass(cs, sg, false); err != nil {
				return err
			}
		}
		cs.CB(61)
	}
	cs.CB(65)
	cs.Blank()
	return nil
}

// spikePass writes the loop over the presynaptic spikes (or spike-like
// events) read with the axonal delay, and the row of each
func (g *Generator) spikePass(cs *codestream.CodeStream, sg *model.SynapseGroup, event bool) error {
	src := sg.Src
	q := AxonalQueue{Pop: src.Name, N: src.N, Slots: src.NumDelaySlots}
	lp := g.plan.index[sg].Row("ipre")
	en := g.synapseEnv(sg, synIndex{pre: lp.Pre, post: lp.Post, syn: lp.Syn}, true)
	evnt := ""
	what, tmpl := "sim code", sg.WU.SimCode
	if event {
		evnt = "Evnt"
		what, tmpl = "event code", sg.WU.EventCode
	}
	code, err := g.apply(fmt.Sprintf("synapse group %q %s", sg.Name, what), tmpl, en)
	if err != nil {
		return err
	}
	cond := lp.Exists
	if event {
		ec, err := g.apply(fmt.Sprintf("synapse group %q event threshold condition code", sg.Name), sg.WU.EventThresholdConditionCode, en)
		if err != nil {
			return err
		}
		if cond != "" {
			cond = fmt.Sprintf("(%s) && (%s)", cond, ec)
		} else {
			cond = ec
		}
	}
	slot := "0"
	if q.Required() {
		slot = "preReadDelaySlot"
	}
	if event {
		cs.Line("// process presynaptic events: spike type events")
	} else {
		cs.Line("// process presynaptic events: true spikes")
	}
	cs.Printf("for (unsigned int i = 0; i < glbSpkCnt%s%s[%s]; i++)", evnt, src.Name, slot)
	cs.OB(66)
	cs.Linef("const unsigned int ipre = glbSpk%s%s[%si];", evnt, src.Name, plus("preReadDelayOffset", q.Required()))
	lp.Begin(cs, 67)
	g.guarded(cs, cond, func() {
		cs.Line(code)
	})
	lp.End(cs, 67)
	cs.CB(66)
	return nil
}

// genLearnPost writes learnSynapsesPostHost, if any group has learn
// post code.  Each postsynaptic spike, read with the back-propagation
// delay, runs the code on every synapse of its column.
func (g *Generator) genLearnPost(cs *codestream.CodeStream) error {
	var sgs []*model.SynapseGroup
	for _, sg := range g.Model.Synapses {
		if sg.WU.LearnPostCode != "" {
			sgs = append(sgs, sg)
		}
	}
	if len(sgs) == 0 {
		return nil
	}
	cs.Linef("void learnSynapsesPostHost(%s t)", g.timePrec)
	cs.OB(70)
	for _, sg := range sgs {
		trg := sg.Trg
		q := AxonalQueue{Pop: trg.Name, N: trg.N, Slots: trg.NumDelaySlots}
		lp := g.plan.index[sg].Column("lSpk")
		code, err := g.apply(fmt.Sprintf("synapse group %q learn post code", sg.Name), sg.WU.LearnPostCode, g.synapseEnv(sg, synIndex{pre: lp.Pre, post: lp.Post, syn: lp.Syn}, false))
		if err != nil {
			return err
		}
		slot := "0"
		if q.Required() {
			slot = "postReadDelaySlot"
		}
		g.beginGroup(cs, sg, "weightupdate_simLearnPost", sg.WU.LearnPostSupportCode)
		cs.Printf("for (unsigned int ipost = 0; ipost < glbSpkCnt%s[%s]; ipost++)", trg.Name, slot)
		cs.OB(71)
		cs.Linef("const unsigned int lSpk = glbSpk%s[%sipost];", trg.Name, plus("postReadDelayOffset", q.Required()))
		lp.Begin(cs, 72)
		g.guarded(cs, lp.Exists, func() {
			cs.Line(code)
		})
		lp.End(cs, 72)
		cs.CB(71)
		cs.CB(61)
	}
	cs.CB(70)
	cs.Blank()
	return nil
}
