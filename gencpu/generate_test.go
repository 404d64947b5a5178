// Copyright (c) 2024, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gencpu

import (
	"errors"
	"strings"
	"testing"

	"goki.dev/snngen/model"
	"goki.dev/snngen/subst"
)

// inOrder checks that each of lines appears in code, in order, as a whole
// line ignoring indentation
func inOrder(t *testing.T, code string, lines ...string) {
	t.Helper()
	cl := strings.Split(code, "\n")
	li := 0
	for _, want := range lines {
		found := false
		for li < len(cl) {
			got := strings.TrimSpace(cl[li])
			li++
			if got == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("line not found (in order): %s\ncode:\n%s", want, code)
			return
		}
	}
}

func outModel() *model.NeuronModel {
	return &model.NeuronModel{
		Kind:    model.Custom,
		Name:    "Out",
		Vars:    model.VarSet{{Name: "x", Type: "scalar"}},
		SimCode: "$(x) += $(Isyn);\n",
	}
}

// netModel returns a model with a SpikeSource population Pre of nPre
// neurons connected to a population Post of nPost neurons by group Syn
func netModel(t *testing.T, nPre, nPost int, conn model.Connectivity, wt model.WeightType, wu *model.WeightUpdateModel, post *model.NeuronModel, cfg func(sg *model.SynapseGroup)) *model.Model {
	t.Helper()
	m := model.NewModel("net")
	if _, err := m.AddNeurons("Pre", nPre, model.NewSpikeSource(), nil); err != nil {
		t.Fatal(err)
	}
	if _, err := m.AddNeurons("Post", nPost, post, nil); err != nil {
		t.Fatal(err)
	}
	sg, err := m.AddSynapses("Syn", "Pre", "Post", conn, wt, wu, model.NewDeltaCurr())
	if err != nil {
		t.Fatal(err)
	}
	if cfg != nil {
		cfg(sg)
	}
	if err := m.Finalize(); err != nil {
		t.Fatal(err)
	}
	return m
}

func generate(t *testing.T, m *model.Model, prefs Prefs) (*Generator, map[string]string) {
	t.Helper()
	g, err := NewGenerator(m, prefs)
	if err != nil {
		t.Fatal(err)
	}
	fs, err := g.Generate()
	if err != nil {
		t.Fatal(err)
	}
	out := map[string]string{}
	for k, v := range fs {
		out[k] = string(v)
	}
	return g, out
}

// TestDenseDecoder is a dense 10 -> 1 decoder matrix
func TestDenseDecoder(t *testing.T) {
	m := netModel(t, 10, 1, model.Dense, model.Individual, model.NewStaticPulse(), outModel(), nil)
	g, fs := generate(t, m, DefaultPrefs())
	inOrder(t, fs[SynapseFile],
		"#ifndef _net_synapseFnct_cc",
		"void calcSynapsesCPU(float t)",
		"// synapse group Syn",
		"// process presynaptic events: true spikes",
		"for (unsigned int i = 0; i < glbSpkCntPre[0]; i++) {",
		"const unsigned int ipre = glbSpkPre[i];",
		"for (unsigned int ipost = 0; ipost < 1; ipost++) {",
		"inSynSyn[ipost] += gSyn[(ipre * 1) + ipost];",
		"#endif",
	)
	if strings.Contains(fs[SynapseFile], "learnSynapsesPostHost") || strings.Contains(fs[SynapseFile], "calcSynapseDynamicsCPU") {
		t.Errorf("unused routines generated:\n%s", fs[SynapseFile])
	}
	inOrder(t, fs[NeuronFile],
		"void calcNeuronsCPU(float t)",
		"// neuron group Pre",
		"glbSpkCntPre[0] = 0;",
		"for (int n = 0; n < 10; n++) {",
		"if (0) {",
		"glbSpkPre[glbSpkCntPre[0]++] = n;",
		"// neuron group Post",
		"glbSpkCntPost[0] = 0;",
		"for (int n = 0; n < 1; n++) {",
		"float lx = xPost[n];",
		"float Isyn = 0;",
		"// pull inSyn values for Syn",
		"Isyn += inSynSyn[n];",
		"inSynSyn[n] = 0;",
		"// calculate membrane potential",
		"lx += Isyn;",
		"xPost[n] = lx;",
	)
	if _, ok := fs[SupportFile]; ok {
		t.Errorf("support code generated without any support code")
	}
	if len(g.Warnings) != 1 || !strings.Contains(g.Warnings[0], "Post") || !strings.Contains(g.Warnings[0], "Custom(Out)") {
		t.Errorf("missing threshold warning: %v", g.Warnings)
	}
	if strings.Contains(fs[NeuronFile], "glbSpkPost[") {
		t.Errorf("population without threshold emits spikes")
	}
}

// TestDendriticDelay is sparse connectivity with one target per row and
// a 10 slot dendritic delay
func TestDendriticDelay(t *testing.T) {
	m := netModel(t, 10, 1, model.Sparse, model.Individual, model.NewStaticPulseDendriticDelay(), outModel(), func(sg *model.SynapseGroup) {
		sg.MaxConnections = 1
		sg.DendriticDelaySlots = 10
	})
	_, fs := generate(t, m, DefaultPrefs())
	inOrder(t, fs[SynapseFile],
		"const unsigned int ipre = glbSpkPre[i];",
		"const unsigned int npost = CSyn.rowStart[ipre + 1] - CSyn.rowStart[ipre];",
		"for (unsigned int j = 0; j < npost; j++) {",
		"const unsigned int ipost = CSyn.ind[CSyn.rowStart[ipre] + j];",
		"denDelaySyn[(((denDelayPtrSyn + dSyn[CSyn.rowStart[ipre] + j]) % 10) * 1) + ipost] += gSyn[CSyn.rowStart[ipre] + j];",
	)
	inOrder(t, fs[NeuronFile],
		"// neuron group Post",
		"for (int n = 0; n < 1; n++) {",
		"float Isyn = 0;",
		"float &denDelayFrontSyn = denDelaySyn[(denDelayPtrSyn * 1) + n];",
		"inSynSyn[n] += denDelayFrontSyn;",
		"denDelayFrontSyn = 0.0f;",
		"Isyn += inSynSyn[n];",
		"xPost[n] = lx;",
		"}",
		"denDelayPtrSyn = (denDelayPtrSyn + 1) % 10;",
	)
	if strings.Contains(fs[SynapseFile], "inSynSyn[ipost]") {
		t.Errorf("dendritic delay group adds to inSyn directly")
	}
}

func learnModel() *model.WeightUpdateModel {
	return &model.WeightUpdateModel{
		Kind:          model.Custom,
		Name:          "Learn",
		Vars:          model.VarSet{{Name: "w", Type: "scalar"}},
		SimCode:       "$(addToInSyn, $(w));\n",
		LearnPostCode: "$(w) = $(sT_pre);\n",
	}
}

// TestLearnPostSpikeTime reads presynaptic spike times in learn post code
func TestLearnPostSpikeTime(t *testing.T) {
	post := outModel()
	post.ThresholdConditionCode = "$(x) > 1.0"
	m := netModel(t, 3, 2, model.Dense, model.Individual, learnModel(), post, nil)
	_, fs := generate(t, m, DefaultPrefs())
	inOrder(t, fs[NeuronFile],
		"// neuron group Pre",
		"sTPre[n] = t;",
		"// neuron group Post",
		"if (lx > 1.0f) {",
		"glbSpkPost[glbSpkCntPost[0]++] = n;",
	)
	inOrder(t, fs[SynapseFile],
		"void calcSynapsesCPU(float t)",
		"inSynSyn[ipost] += wSyn[(ipre * 2) + ipost];",
		"void learnSynapsesPostHost(float t)",
		"// synapse group Syn",
		"for (unsigned int ipost = 0; ipost < glbSpkCntPost[0]; ipost++) {",
		"const unsigned int lSpk = glbSpkPost[ipost];",
		"for (unsigned int ipre = 0; ipre < 3; ipre++) {",
		"wSyn[(ipre * 2) + lSpk] = sTPre[ipre];",
	)

	m = netModel(t, 3, 2, model.Ragged, model.Individual, learnModel(), post, nil)
	_, fs = generate(t, m, DefaultPrefs())
	inOrder(t, fs[SynapseFile],
		"const unsigned int npost = CSyn.rowLength[ipre];",
		"const unsigned int ipost = CSyn.ind[(ipre * 2) + j];",
		"inSynSyn[ipost] += wSyn[(ipre * 2) + j];",
		"void learnSynapsesPostHost(float t)",
		"const unsigned int lSpk = glbSpkPost[ipost];",
		"const unsigned int npre = CSyn.colLength[lSpk];",
		"for (unsigned int l = 0; l < npre; l++) {",
		"const unsigned int ipre = (lSpk * 3) + l;",
		"wSyn[CSyn.remap[ipre]] = sTPre[(CSyn.remap[ipre] / 2)];",
	)
}

func TestAxonalDelay(t *testing.T) {
	m := netModel(t, 10, 1, model.Dense, model.Global, model.NewStaticPulse(), outModel(), func(sg *model.SynapseGroup) {
		sg.DelaySteps = 3
		sg.VarValues = map[string]float64{"g": 0.5}
	})
	_, fs := generate(t, m, DefaultPrefs())
	inOrder(t, fs[NeuronFile],
		"// neuron group Pre",
		"spkQuePtrPre = (spkQuePtrPre + 1) % 4;",
		"glbSpkCntPre[spkQuePtrPre] = 0;",
		"const unsigned int readDelayOffset = (((spkQuePtrPre + 3) % 4) * 10);",
		"const unsigned int writeDelayOffset = (spkQuePtrPre * 10);",
		"glbSpkPre[writeDelayOffset + glbSpkCntPre[spkQuePtrPre]++] = n;",
	)
	inOrder(t, fs[SynapseFile],
		"const unsigned int preReadDelaySlot = ((spkQuePtrPre + 1) % 4);",
		"const unsigned int preReadDelayOffset = preReadDelaySlot * 10;",
		"for (unsigned int i = 0; i < glbSpkCntPre[preReadDelaySlot]; i++) {",
		"const unsigned int ipre = glbSpkPre[preReadDelayOffset + i];",
		"inSynSyn[ipost] += 0.5f;",
	)
}

func TestBitmaskGlobal(t *testing.T) {
	m := netModel(t, 4, 3, model.Bitmask, model.Global, model.NewStaticPulse(), outModel(), func(sg *model.SynapseGroup) {
		sg.VarValues = map[string]float64{"g": -0.25}
	})
	m.Precision = model.Double
	_, fs := generate(t, m, DefaultPrefs())
	inOrder(t, fs[SynapseFile],
		"for (unsigned int ipost = 0; ipost < 3; ipost++) {",
		"const uint64_t gid = (ipre * 3ull + ipost);",
		"if (B(gpSyn[gid / 32], gid & 31)) {",
		"inSynSyn[ipost] += (-0.25);",
	)
	inOrder(t, fs[NeuronFile], "double lx = xPost[n];", "double Isyn = 0;")
}

func TestSpikeEvents(t *testing.T) {
	m := model.NewModel("graded")
	izh := map[string]float64{"a": 0.02, "b": 0.2, "c": -65, "d": 8}
	if _, err := m.AddNeurons("Pre", 5, model.NewIzhikevich(), izh); err != nil {
		t.Fatal(err)
	}
	if _, err := m.AddNeurons("Post", 2, outModel(), nil); err != nil {
		t.Fatal(err)
	}
	sg, err := m.AddSynapses("Syn", "Pre", "Post", model.Dense, model.Individual, model.NewStaticGraded(), model.NewDeltaCurr())
	if err != nil {
		t.Fatal(err)
	}
	sg.WUParams = map[string]float64{"Epre": -50, "Vslope": 10}
	if err := m.Finalize(); err != nil {
		t.Fatal(err)
	}
	_, fs := generate(t, m, DefaultPrefs())
	inOrder(t, fs[NeuronFile],
		"// neuron group Pre",
		"glbSpkCntEvntPre[0] = 0;",
		"glbSpkCntPre[0] = 0;",
		"float lV = VPre[n];",
		"bool oldSpike = (lV >= 29.99f);",
		"bool spikeLikeEvent = false;",
		"spikeLikeEvent |= (lV > (-50.0f));",
		"if (spikeLikeEvent) {",
		"glbSpkEvntPre[glbSpkCntEvntPre[0]++] = n;",
		"if ((lV >= 29.99f) && !(oldSpike)) {",
		"VPre[n] = lV;",
	)
	inOrder(t, fs[SynapseFile],
		"// process presynaptic events: spike type events",
		"for (unsigned int i = 0; i < glbSpkCntEvntPre[0]; i++) {",
		"const unsigned int ipre = glbSpkEvntPre[i];",
		"if (VPre[ipre] > (-50.0f)) {",
	)
	if strings.Contains(fs[SynapseFile], "true spikes") {
		t.Errorf("true spike pass generated for event-only group")
	}
	if !strings.Contains(fs[NeuronFile], "lU += 0.02f * (0.2f * lV - lU) * 0.1f;") {
		t.Errorf("timestep not substituted into the Izhikevich update:\n%s", fs[NeuronFile])
	}
	for f, code := range fs {
		if strings.Contains(code, "DT") {
			t.Errorf("%s references DT:\n%s", f, code)
		}
	}
}

func TestAutoRefractoryPref(t *testing.T) {
	post := outModel()
	post.ThresholdConditionCode = "$(x) > 1.0"
	post.AutoRefractoryRequired = true
	m := netModel(t, 2, 2, model.Dense, model.Individual, model.NewStaticPulse(), post, nil)
	_, fs := generate(t, m, Prefs{})
	if strings.Contains(fs[NeuronFile], "oldSpike") {
		t.Errorf("auto refractory test generated with the preference off")
	}
	inOrder(t, fs[NeuronFile], "if (lx > 1.0f) {", "glbSpkPost[glbSpkCntPost[0]++] = n;")
}

func TestMergePostsynaptic(t *testing.T) {
	build := func() *model.Model {
		m := model.NewModel("merge")
		for _, p := range []string{"A", "B", "Post"} {
			nm := model.NewSpikeSource()
			if p == "Post" {
				nm = outModel()
			}
			if _, err := m.AddNeurons(p, 3, nm, nil); err != nil {
				t.Fatal(err)
			}
		}
		for _, s := range []string{"A", "B"} {
			if _, err := m.AddSynapses("Syn"+s, s, "Post", model.Dense, model.Individual, model.NewStaticPulse(), model.NewDeltaCurr()); err != nil {
				t.Fatal(err)
			}
		}
		if err := m.Finalize(); err != nil {
			t.Fatal(err)
		}
		return m
	}
	_, fs := generate(t, build(), Prefs{AutoRefractory: true, MergePostsynapticModels: true})
	if strings.Count(fs[NeuronFile], "// pull inSyn values") != 1 {
		t.Errorf("merged inputs not shared:\n%s", fs[NeuronFile])
	}
	inOrder(t, fs[SynapseFile],
		"// synapse group SynA",
		"inSynSynA[ipost] += gSynA[(ipre * 3) + ipost];",
		"// synapse group SynB",
		"inSynSynA[ipost] += gSynB[(ipre * 3) + ipost];",
	)
	_, fs = generate(t, build(), DefaultPrefs())
	inOrder(t, fs[NeuronFile],
		"// pull inSyn values for SynA",
		"Isyn += inSynSynA[n];",
		"// pull inSyn values for SynB",
		"Isyn += inSynSynB[n];",
	)
}

func TestSupportCode(t *testing.T) {
	post := outModel()
	post.SupportCode = "SUPPORT_CODE_FUNC float sq(float x) { return x * x; }"
	post.SimCode = "$(x) += sq($(Isyn));\n"
	m := netModel(t, 2, 2, model.Dense, model.Individual, model.NewStaticPulse(), post, nil)
	_, fs := generate(t, m, DefaultPrefs())
	sup, ok := fs[SupportFile]
	if !ok {
		t.Fatal("no support code file")
	}
	inOrder(t, sup, "#ifndef _net_supportCode_h", "namespace Post_neuron", "{", "SUPPORT_CODE_FUNC float sq(float x) { return x * x; }", "}")
	inOrder(t, fs[NeuronFile], "#include \"supportCode.h\"", "// neuron group Post", "using namespace Post_neuron;", "lx += sq(Isyn);")
}

func TestSupportCodeBraces(t *testing.T) {
	post := outModel()
	post.SupportCode = "// helper {\nSUPPORT_CODE_FUNC float sq(float x) { return x * x; } /* } */\n"
	post.SimCode = "$(x) += sq($(Isyn)); // \"{\"\n"
	m := netModel(t, 2, 2, model.Dense, model.Individual, model.NewStaticPulse(), post, nil)
	_, fs := generate(t, m, DefaultPrefs())
	inOrder(t, fs[SupportFile], "namespace Post_neuron", "{", "// helper {", "SUPPORT_CODE_FUNC float sq(float x) { return x * x; } /* } */", "}", "#endif")
	inOrder(t, fs[NeuronFile], "#include \"supportCode.h\"", "using namespace Post_neuron;", "lx += sq(Isyn); // \"{\"", "xPost[n] = lx;", "#endif")

	post = outModel()
	post.SupportCode = "SUPPORT_CODE_FUNC float sq(float x) { return x * x;\n"
	m = netModel(t, 2, 2, model.Dense, model.Individual, model.NewStaticPulse(), post, nil)
	g, err := NewGenerator(m, DefaultPrefs())
	if err != nil {
		t.Fatal(err)
	}
	fs2, err := g.Generate()
	if err == nil || !strings.Contains(err.Error(), "support code") {
		t.Errorf("unbalanced support code: expected an error, got %v", err)
	}
	if fs2 != nil {
		t.Errorf("files returned on error")
	}
}

// TestSynapseDynamics updates every synapse of a sparse group each step,
// depositing into the dendritic delay buffer with the legacy name
func TestSynapseDynamics(t *testing.T) {
	m := model.NewModel("cont")
	if _, err := m.AddNeurons("Pre", 4, outModel(), nil); err != nil {
		t.Fatal(err)
	}
	if _, err := m.AddNeurons("Post", 3, outModel(), nil); err != nil {
		t.Fatal(err)
	}
	wu := &model.WeightUpdateModel{
		Kind:                model.Custom,
		Name:                "Cont",
		Vars:                model.VarSet{{Name: "g", Type: "scalar"}},
		SimCode:             "$(addToInSynDelay, $(g), 0);\n",
		LearnPostCode:       "$(g) *= 0.5;\n",
		SynapseDynamicsCode: "$(addToDenDelay, $(g) * $(x_pre), 1);\n",
	}
	sg, err := m.AddSynapses("Syn", "Pre", "Post", model.Sparse, model.Individual, wu, model.NewDeltaCurr())
	if err != nil {
		t.Fatal(err)
	}
	sg.DendriticDelaySlots = 2
	if err := m.Finalize(); err != nil {
		t.Fatal(err)
	}
	_, fs := generate(t, m, DefaultPrefs())
	inOrder(t, fs[SynapseFile],
		"void calcSynapseDynamicsCPU(float t)",
		"// synapse group Syn",
		"for (unsigned int ipre = 0; ipre < 4; ipre++) {",
		"const unsigned int npost = CSyn.rowStart[ipre + 1] - CSyn.rowStart[ipre];",
		"for (unsigned int j = 0; j < npost; j++) {",
		"const unsigned int ipost = CSyn.ind[CSyn.rowStart[ipre] + j];",
		"denDelaySyn[(((denDelayPtrSyn + 1) % 2) * 3) + ipost] += gSyn[CSyn.rowStart[ipre] + j] * xPre[ipre];",
		"void calcSynapsesCPU(float t)",
		"// process presynaptic events: true spikes",
		"denDelaySyn[(((denDelayPtrSyn + 0) % 2) * 3) + ipost] += gSyn[CSyn.rowStart[ipre] + j];",
		"void learnSynapsesPostHost(float t)",
		"const unsigned int npre = CSyn.revRowStart[lSpk + 1] - CSyn.revRowStart[lSpk];",
		"gSyn[CSyn.remap[ipre]] *= 0.5f;",
		"#endif",
	)
	inOrder(t, fs[NeuronFile],
		"// neuron group Post",
		"float &denDelayFrontSyn = denDelaySyn[(denDelayPtrSyn * 3) + n];",
		"inSynSyn[n] += denDelayFrontSyn;",
		"denDelayFrontSyn = 0.0f;",
		"denDelayPtrSyn = (denDelayPtrSyn + 1) % 2;",
	)
}

// TestDelayedAccess reads queued neuron variables with the axonal and
// back-propagation delays
func TestDelayedAccess(t *testing.T) {
	m := model.NewModel("delayed")
	src := &model.NeuronModel{
		Kind:                   model.Custom,
		Name:                   "Src",
		Vars:                   model.VarSet{{Name: "V", Type: "scalar"}},
		SimCode:                "$(V) += 1.0;\n",
		ThresholdConditionCode: "$(V) > 2.0",
	}
	if _, err := m.AddNeurons("Pre", 3, src, nil); err != nil {
		t.Fatal(err)
	}
	post := outModel()
	post.ThresholdConditionCode = "$(x) > 1.0"
	if _, err := m.AddNeurons("Post", 2, post, nil); err != nil {
		t.Fatal(err)
	}
	wu := &model.WeightUpdateModel{
		Kind:          model.Custom,
		Name:          "Delayed",
		Vars:          model.VarSet{{Name: "w", Type: "scalar"}},
		SimCode:       "$(addToInSyn, $(w) * $(V_pre));\n",
		LearnPostCode: "$(w) += $(x_post);\n",
	}
	sg, err := m.AddSynapses("Syn", "Pre", "Post", model.Dense, model.Individual, wu, model.NewDeltaCurr())
	if err != nil {
		t.Fatal(err)
	}
	sg.DelaySteps = 2
	sg.BackPropDelaySteps = 1
	if err := m.Finalize(); err != nil {
		t.Fatal(err)
	}
	_, fs := generate(t, m, DefaultPrefs())
	inOrder(t, fs[NeuronFile],
		"// neuron group Pre",
		"spkQuePtrPre = (spkQuePtrPre + 1) % 3;",
		"glbSpkCntPre[spkQuePtrPre] = 0;",
		"const unsigned int readDelayOffset = (((spkQuePtrPre + 2) % 3) * 3);",
		"const unsigned int writeDelayOffset = (spkQuePtrPre * 3);",
		"float lV = VPre[readDelayOffset + n];",
		"lV += 1.0f;",
		"if (lV > 2.0f) {",
		"glbSpkPre[writeDelayOffset + glbSpkCntPre[spkQuePtrPre]++] = n;",
		"VPre[writeDelayOffset + n] = lV;",
		"// neuron group Post",
		"spkQuePtrPost = (spkQuePtrPost + 1) % 2;",
		"glbSpkCntPost[spkQuePtrPost] = 0;",
		"const unsigned int readDelayOffset = (((spkQuePtrPost + 1) % 2) * 2);",
		"float lx = xPost[readDelayOffset + n];",
		"glbSpkPost[writeDelayOffset + glbSpkCntPost[spkQuePtrPost]++] = n;",
		"xPost[writeDelayOffset + n] = lx;",
	)
	inOrder(t, fs[SynapseFile],
		"void calcSynapsesCPU(float t)",
		"const unsigned int preReadDelaySlot = ((spkQuePtrPre + 1) % 3);",
		"const unsigned int preReadDelayOffset = preReadDelaySlot * 3;",
		"const unsigned int postReadDelaySlot = ((spkQuePtrPost + 1) % 2);",
		"const unsigned int postReadDelayOffset = postReadDelaySlot * 2;",
		"for (unsigned int i = 0; i < glbSpkCntPre[preReadDelaySlot]; i++) {",
		"const unsigned int ipre = glbSpkPre[preReadDelayOffset + i];",
		"inSynSyn[ipost] += wSyn[(ipre * 2) + ipost] * VPre[preReadDelayOffset + ipre];",
		"void learnSynapsesPostHost(float t)",
		"const unsigned int postReadDelaySlot = ((spkQuePtrPost + 1) % 2);",
		"for (unsigned int ipost = 0; ipost < glbSpkCntPost[postReadDelaySlot]; ipost++) {",
		"const unsigned int lSpk = glbSpkPost[postReadDelayOffset + ipost];",
		"for (unsigned int ipre = 0; ipre < 3; ipre++) {",
		"wSyn[(ipre * 2) + lSpk] += xPost[postReadDelayOffset + lSpk];",
	)
}

func TestUnresolved(t *testing.T) {
	post := outModel()
	post.SimCode = "$(x) += $(y);\n"
	m := netModel(t, 2, 2, model.Dense, model.Individual, model.NewStaticPulse(), post, nil)
	g, err := NewGenerator(m, DefaultPrefs())
	if err != nil {
		t.Fatal(err)
	}
	fs, err := g.Generate()
	if !errors.Is(err, subst.ErrUnresolved) {
		t.Fatalf("expected unresolved placeholder error, got %v", err)
	}
	if fs != nil {
		t.Errorf("files returned on error")
	}
	if !strings.Contains(err.Error(), `population "Post"`) || !strings.Contains(err.Error(), "sim code") {
		t.Errorf("error does not name the population and template: %v", err)
	}

	wu := model.NewStaticPulse()
	wu.SimCode = "$(addToInSynDelay, $(g), 1);\n"
	m = netModel(t, 2, 2, model.Dense, model.Individual, wu, outModel(), nil)
	g, err = NewGenerator(m, DefaultPrefs())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.Generate(); !errors.Is(err, subst.ErrUnresolved) || !strings.Contains(err.Error(), `synapse group "Syn" sim code`) {
		t.Errorf("dendritic deposit without a dendritic delay: %v", err)
	}
}

func TestNotFinalized(t *testing.T) {
	m := model.NewModel("raw")
	if _, err := NewGenerator(m, DefaultPrefs()); !errors.Is(err, ErrNotFinalized) {
		t.Errorf("expected ErrNotFinalized, got %v", err)
	}
}
