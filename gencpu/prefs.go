// Copyright (c) 2024, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gencpu

// Prefs are the code generation preferences.  They are fixed for the
// lifetime of a Generator.
type Prefs struct {

	// neurons only spike on the rising edge of their threshold condition, for models that require it
	AutoRefractory bool

	// synapse groups with identical postsynaptic models and parameters targeting the same population share one input buffer
	MergePostsynapticModels bool
}

// DefaultPrefs returns the default preferences: auto refractory on, no merging
func DefaultPrefs() Prefs {
	return Prefs{AutoRefractory: true}
}
