// Copyright (c) 2024, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// File is the declarative form of a Model, as read from a TOML or JSON model file.
// Model references are resolved against the models defined in the file
// first, then the built-in models.
type File struct {
	Name               string
	DT                 float64
	Precision          Precision
	TimePrecision      string
	NeuronModels       map[string]*NeuronModel
	WeightUpdateModels map[string]*WeightUpdateModel
	PostsynapticModels map[string]*PostsynapticModel
	Neurons            []NeuronSpec
	Synapses           []SynapseSpec
}

// NeuronSpec declares one neuron group
type NeuronSpec struct {
	Name   string
	N      int
	Model  string
	Params map[string]float64
}

// SynapseSpec declares one synapse group
type SynapseSpec struct {
	Name                 string
	Src                  string
	Trg                  string
	WeightUpdate         string
	Postsynaptic         string
	Connectivity         Connectivity
	Weight               WeightType
	WUParams             map[string]float64
	PSParams             map[string]float64
	VarValues            map[string]float64
	PSVarValues          map[string]float64
	IndividualPSM        bool
	DelaySteps           int
	BackPropDelaySteps   int
	MaxConnections       int
	MaxSourceConnections int
	DendriticDelaySlots  int
	Pattern              string
	PCon                 float64
	Seed                 int64
}

// Load reads a model file, .toml or .json by extension, and returns
// the finalized model
func Load(path string) (*Model, error) {
	var fl File
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = fl.ReadTOML(path)
	case ".json":
		err = fl.ReadJSON(path)
	default:
		err = fmt.Errorf("model file %s: unknown extension, must be .toml or .json", path)
	}
	if err != nil {
		return nil, err
	}
	if fl.Name == "" {
		fl.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	m, err := fl.Build()
	if err != nil {
		return nil, fmt.Errorf("model file %s: %w", path, err)
	}
	return m, nil
}

// ReadTOML decodes a TOML model file
func (fl *File) ReadTOML(path string) error {
	md, err := toml.DecodeFile(path, fl)
	if err != nil {
		return err
	}
	if und := md.Undecoded(); len(und) > 0 {
		return fmt.Errorf("model file %s: unknown keys: %v", path, und)
	}
	for nm, nmod := range fl.NeuronModels {
		if !md.IsDefined("NeuronModels", nm, "AutoRefractoryRequired") {
			nmod.AutoRefractoryRequired = true
		}
	}
	return nil
}

// ReadJSON decodes a JSON model file
func (fl *File) ReadJSON(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(fl); err != nil {
		return fmt.Errorf("model file %s: %w", path, err)
	}
	var keys struct {
		NeuronModels map[string]map[string]json.RawMessage
	}
	if err := json.Unmarshal(b, &keys); err != nil {
		return fmt.Errorf("model file %s: %w", path, err)
	}
	for nm, nmod := range fl.NeuronModels {
		if _, has := keys.NeuronModels[nm]["AutoRefractoryRequired"]; !has {
			nmod.AutoRefractoryRequired = true
		}
	}
	return nil
}

// Build constructs and finalizes the model described by the file
func (fl *File) Build() (*Model, error) {
	m := NewModel(fl.Name)
	if fl.DT > 0 {
		m.DT = fl.DT
	}
	m.Precision = fl.Precision
	m.TimePrecision = fl.Precision
	if fl.TimePrecision != "" {
		if err := m.TimePrecision.FromString(fl.TimePrecision); err != nil {
			return nil, err
		}
	}
	// file-defined models are Custom unless they say otherwise,
	// and default their Name to the key they are defined under
	for _, nm := range sortedKeys(fl.NeuronModels) {
		if fl.NeuronModels[nm].Name == "" {
			fl.NeuronModels[nm].Name = nm
		}
	}
	for _, nm := range sortedKeys(fl.WeightUpdateModels) {
		if fl.WeightUpdateModels[nm].Name == "" {
			fl.WeightUpdateModels[nm].Name = nm
		}
	}
	for _, nm := range sortedKeys(fl.PostsynapticModels) {
		if fl.PostsynapticModels[nm].Name == "" {
			fl.PostsynapticModels[nm].Name = nm
		}
	}
	for _, ns := range fl.Neurons {
		nm, ok := fl.NeuronModels[ns.Model]
		if !ok {
			nm, ok = BuiltinNeuron(ns.Model)
		}
		if !ok {
			return nil, fmt.Errorf("neuron group %q: %w %q", ns.Name, ErrUnknownModel, ns.Model)
		}
		if _, err := m.AddNeurons(ns.Name, ns.N, nm, ns.Params); err != nil {
			return nil, err
		}
	}
	for _, ss := range fl.Synapses {
		wu, ok := fl.WeightUpdateModels[ss.WeightUpdate]
		if !ok {
			wu, ok = BuiltinWeightUpdate(ss.WeightUpdate)
		}
		if !ok {
			return nil, fmt.Errorf("synapse group %q: %w %q", ss.Name, ErrUnknownModel, ss.WeightUpdate)
		}
		psName := ss.Postsynaptic
		if psName == "" {
			psName = "DeltaCurr"
		}
		ps, ok := fl.PostsynapticModels[psName]
		if !ok {
			ps, ok = BuiltinPostsynaptic(psName)
		}
		if !ok {
			return nil, fmt.Errorf("synapse group %q: %w %q", ss.Name, ErrUnknownModel, psName)
		}
		sg, err := m.AddSynapses(ss.Name, ss.Src, ss.Trg, ss.Connectivity, ss.Weight, wu, ps)
		if err != nil {
			return nil, err
		}
		sg.WUParams = ss.WUParams
		sg.PSParams = ss.PSParams
		sg.VarValues = ss.VarValues
		sg.PSVarValues = ss.PSVarValues
		sg.IndividualPSM = ss.IndividualPSM
		sg.DelaySteps = ss.DelaySteps
		sg.BackPropDelaySteps = ss.BackPropDelaySteps
		sg.MaxConnections = ss.MaxConnections
		sg.MaxSourceConnections = ss.MaxSourceConnections
		sg.DendriticDelaySlots = ss.DendriticDelaySlots
		sg.Pattern = ss.Pattern
		sg.PCon = ss.PCon
		sg.Seed = ss.Seed
	}
	if err := m.Finalize(); err != nil {
		return nil, err
	}
	return m, nil
}

func sortedKeys[V any](mp map[string]V) []string {
	ks := maps.Keys(mp)
	slices.Sort(ks)
	return ks
}
