// Copyright (c) 2024, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gencpu

import (
	"goki.dev/snngen/model"
	"golang.org/x/exp/maps"
)

// mergedInput is one postsynaptic input buffer of a population, shared
// by all the incoming synapse groups merged into it
type mergedInput struct {

	// name appended to inSyn, denDelay and postsynaptic variables
	Target string

	// group whose postsynaptic model and parameters are used
	Rep *model.SynapseGroup

	Groups []*model.SynapseGroup
}

// plan holds the merged inputs of every population, resolved once
// before any code is generated
type plan struct {
	merged map[*model.NeuronGroup][]*mergedInput
	target map[*model.SynapseGroup]string
	index  map[*model.SynapseGroup]*Indexer
}

func newPlan(m *model.Model, prefs Prefs) (*plan, error) {
	pl := &plan{merged: map[*model.NeuronGroup][]*mergedInput{}, target: map[*model.SynapseGroup]string{}, index: map[*model.SynapseGroup]*Indexer{}}
	for _, sg := range m.Synapses {
		ix, err := NewIndexer(sg)
		if err != nil {
			return nil, err
		}
		pl.index[sg] = ix
	}
	for _, ng := range m.Neurons {
		var mis []*mergedInput
		for _, sg := range ng.InSyn {
			var into *mergedInput
			if prefs.MergePostsynapticModels {
				for _, mi := range mis {
					if canMerge(mi.Rep, sg) {
						into = mi
						break
					}
				}
			}
			if into == nil {
				into = &mergedInput{Target: sg.Name, Rep: sg}
				mis = append(mis, into)
			}
			into.Groups = append(into.Groups, sg)
			pl.target[sg] = into.Target
		}
		pl.merged[ng] = mis
	}
	return pl, nil
}

// canMerge returns true if b can deposit its input into a's buffer:
// both have the same postsynaptic model, parameters and constant
// variables, and the same dendritic delay.
func canMerge(a, b *model.SynapseGroup) bool {
	if a.Trg != b.Trg {
		return false
	}
	if a.PS != b.PS && (a.PS.Kind == model.Custom || a.PS.Kind != b.PS.Kind) {
		return false
	}
	if a.IndividualPSM || b.IndividualPSM {
		return false
	}
	if a.DendriticDelaySlots != b.DendriticDelaySlots {
		return false
	}
	return maps.Equal(a.PSParams, b.PSParams) && maps.Equal(a.PSVarValues, b.PSVarValues)
}
