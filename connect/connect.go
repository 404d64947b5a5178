// Copyright (c) 2024, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package connect builds host-side synaptic connectivity arrays in the layouts
the generated code indexes: packed bitmask words, row-offset sparse arrays
(forward and reverse, with remap from reverse to forward synapse index),
and fixed-stride (ragged) arrays with per-row and per-column lengths.

Connectivity is obtained from an emergent projection Pattern, or from an
explicit list of postsynaptic targets per presynaptic neuron.
*/
package connect

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/emer/emergent/prjn"
	"github.com/emer/etable/etensor"
	"github.com/goki/ki/ints"
)

// ErrCapacity is returned when a row or column capacity is too small
var ErrCapacity = errors.New("connectivity exceeds capacity")

// ErrUnknownPattern is returned by PatternByName for an unknown name
var ErrUnknownPattern = errors.New("unknown connectivity pattern")

// Connectivity holds the compressed connectivity between a presynaptic
// population of NPre neurons and a postsynaptic one of NPost neurons.
// Synapses are numbered in row order: all targets of pre 0, then pre 1, ...
type Connectivity struct {

	// number of presynaptic neurons
	NPre int

	// number of postsynaptic neurons
	NPost int

	// total number of connections
	NConn int

	// maximum number of targets of any presynaptic neuron
	MaxRowLength int

	// maximum number of sources of any postsynaptic neuron
	MaxColLength int

	// packed connection bits, bit (pre * NPost + post) in word / 32
	Bits []uint32

	// start of each row in Ind, with NPre+1 entries
	RowStart []int32

	// postsynaptic index of each synapse, in row order
	Ind []int32

	// start of each column in RevInd and Remap, with NPost+1 entries
	RevRowStart []int32

	// presynaptic index of each synapse, in column order
	RevInd []int32

	// row-order synapse index of each synapse, in column order
	Remap []int32
}

// Build connects nPre to nPost neurons according to the given pattern
func Build(pat prjn.Pattern, nPre, nPost int) *Connectivity {
	ssh := etensor.NewShape([]int{nPre}, nil, nil)
	rsh := etensor.NewShape([]int{nPost}, nil, nil)
	_, _, cons := pat.Connect(ssh, rsh, false)
	rows := make([][]int, nPre)
	for ri := 0; ri < nPost; ri++ {
		rbi := ri * nPre // recv bit index
		for si := 0; si < nPre; si++ {
			if cons.Values.Index(rbi + si) {
				rows[si] = append(rows[si], ri)
			}
		}
	}
	cn, err := FromRows(nPre, nPost, rows)
	if err != nil {
		log.Printf("connect: %v programmer error: %v\n", pat.Name(), err)
	}
	return cn
}

// FromRows builds connectivity from the postsynaptic targets of each
// presynaptic neuron, given in ascending order.
func FromRows(nPre, nPost int, rows [][]int) (*Connectivity, error) {
	if len(rows) != nPre {
		return nil, fmt.Errorf("connect: %d rows for %d presynaptic neurons", len(rows), nPre)
	}
	cn := &Connectivity{NPre: nPre, NPost: nPost}
	cn.Bits = make([]uint32, (nPre*nPost+31)/32)
	cn.RowStart = make([]int32, nPre+1)
	colN := make([]int32, nPost)
	for pi, row := range rows {
		cn.RowStart[pi] = int32(len(cn.Ind))
		cn.MaxRowLength = ints.MaxInt(cn.MaxRowLength, len(row))
		for _, po := range row {
			if po < 0 || po >= nPost {
				return nil, fmt.Errorf("connect: pre %d: post index %d out of range [0, %d)", pi, po, nPost)
			}
			gid := pi*nPost + po
			cn.Bits[gid/32] |= 1 << uint(gid&31)
			cn.Ind = append(cn.Ind, int32(po))
			colN[po]++
		}
	}
	cn.NConn = len(cn.Ind)
	cn.RowStart[nPre] = int32(cn.NConn)

	cn.RevRowStart = make([]int32, nPost+1)
	idx := int32(0)
	for po := 0; po < nPost; po++ {
		cn.RevRowStart[po] = idx
		idx += colN[po]
		cn.MaxColLength = ints.MaxInt(cn.MaxColLength, int(colN[po]))
	}
	cn.RevRowStart[nPost] = idx

	cn.RevInd = make([]int32, cn.NConn)
	cn.Remap = make([]int32, cn.NConn)
	colCur := make([]int32, nPost) // cur n of recv cons
	for pi := 0; pi < nPre; pi++ {
		for syn := cn.RowStart[pi]; syn < cn.RowStart[pi+1]; syn++ {
			po := cn.Ind[syn]
			ri := cn.RevRowStart[po] + colCur[po]
			cn.RevInd[ri] = int32(pi)
			cn.Remap[ri] = syn
			colCur[po]++
		}
	}
	return cn, nil
}

// Connected returns true if pre connects to post, reading the packed bits
func (cn *Connectivity) Connected(pre, post int) bool {
	gid := pre*cn.NPost + post
	return cn.Bits[gid/32]&(1<<uint(gid&31)) != 0
}

// Ragged holds fixed-stride connectivity: each row occupies RowStride
// entries of Ind, of which RowLength are used, and each column occupies
// ColStride entries of Remap.
type Ragged struct {
	RowStride int
	ColStride int
	RowLength []int32
	Ind       []int32
	ColLength []int32

	// ragged synapse index (pre * RowStride + j) of each column entry
	Remap []int32
}

// Ragged returns the fixed-stride layout of this connectivity with the
// given row and column capacities.  A capacity of 0 uses the maximum length.
func (cn *Connectivity) Ragged(rowCap, colCap int) (*Ragged, error) {
	if rowCap == 0 {
		rowCap = cn.MaxRowLength
	}
	if colCap == 0 {
		colCap = cn.MaxColLength
	}
	if rowCap < cn.MaxRowLength {
		return nil, fmt.Errorf("connect: %w: row capacity %d < max row length %d", ErrCapacity, rowCap, cn.MaxRowLength)
	}
	if colCap < cn.MaxColLength {
		return nil, fmt.Errorf("connect: %w: column capacity %d < max column length %d", ErrCapacity, colCap, cn.MaxColLength)
	}
	rg := &Ragged{RowStride: rowCap, ColStride: colCap}
	rg.RowLength = make([]int32, cn.NPre)
	rg.Ind = make([]int32, cn.NPre*rowCap)
	rg.ColLength = make([]int32, cn.NPost)
	rg.Remap = make([]int32, cn.NPost*colCap)
	for pi := 0; pi < cn.NPre; pi++ {
		st := cn.RowStart[pi]
		n := cn.RowStart[pi+1] - st
		rg.RowLength[pi] = n
		for j := int32(0); j < n; j++ {
			po := cn.Ind[st+j]
			rsyn := pi*rowCap + int(j)
			rg.Ind[rsyn] = po
			rg.Remap[int(po)*colCap+int(rg.ColLength[po])] = int32(rsyn)
			rg.ColLength[po]++
		}
	}
	return rg, nil
}

// PatternByName returns the emergent projection pattern of the given name:
// Full, OneToOne, or UnifRnd with connection probability pcon and random seed.
func PatternByName(name string, pcon float64, seed int64) (prjn.Pattern, error) {
	switch strings.ToLower(name) {
	case "full":
		return prjn.NewFull(), nil
	case "onetoone":
		return prjn.NewOneToOne(), nil
	case "unifrnd":
		ur := prjn.NewUnifRnd()
		ur.PCon = float32(pcon)
		ur.RndSeed = seed
		return ur, nil
	}
	return nil, fmt.Errorf("connect: %w: %q", ErrUnknownPattern, name)
}
