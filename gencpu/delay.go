// Copyright (c) 2024, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gencpu

import (
	"fmt"
)

// AxonalQueue is the circular spike queue of a population with
// Slots delay slots.  The queue pointer spkQuePtr<Pop> is advanced at
// the start of each neuron update, so it always points at the slot
// being written this step.
type AxonalQueue struct {
	Pop   string
	N     int
	Slots int
}

// Required returns true if the population has more than one slot
func (q AxonalQueue) Required() bool {
	return q.Slots > 1
}

// Ptr returns the name of the queue pointer
func (q AxonalQueue) Ptr() string {
	return "spkQuePtr" + q.Pop
}

// SlotExpr returns the expression for the slot written lag steps ago
func (q AxonalQueue) SlotExpr(lag int) string {
	if !q.Required() {
		return "0"
	}
	back := lag % q.Slots
	if back == 0 {
		return q.Ptr()
	}
	return fmt.Sprintf("((%s + %d) %% %d)", q.Ptr(), q.Slots-back, q.Slots)
}

// ReadOffset returns the offset of the slot written lag steps ago,
// or "" if there is no queue
func (q AxonalQueue) ReadOffset(lag int) string {
	if !q.Required() {
		return ""
	}
	return fmt.Sprintf("(%s * %d)", q.SlotExpr(lag), q.N)
}

// WriteOffset returns the offset of the current slot, or "" if there is no queue
func (q AxonalQueue) WriteOffset() string {
	if !q.Required() {
		return ""
	}
	return fmt.Sprintf("(%s * %d)", q.Ptr(), q.N)
}

// Advance returns the statement moving the queue pointer to the next slot
func (q AxonalQueue) Advance() string {
	return fmt.Sprintf("%s = (%s + 1) %% %d;", q.Ptr(), q.Ptr(), q.Slots)
}

// Slot is the numeric counterpart of SlotExpr for pointer value cur
func Slot(cur, lag, slots int) int {
	return (cur + slots - lag%slots) % slots
}

// DendriticBuffer is the rotating dendritic delay buffer of a
// postsynaptic input target, with Slots rows of NPost inputs
type DendriticBuffer struct {
	Target string
	NPost  int
	Slots  int
}

// Ptr returns the name of the buffer pointer
func (db DendriticBuffer) Ptr() string {
	return "denDelayPtr" + db.Target
}

// WriteIndex returns the buffer element receiving input for post with the given lag
func (db DendriticBuffer) WriteIndex(lag, post string) string {
	return fmt.Sprintf("denDelay%s[(((%s + %s) %% %d) * %d) + %s]", db.Target, db.Ptr(), lag, db.Slots, db.NPost, post)
}

// ReadFront returns the buffer element consumed by post in the current step
func (db DendriticBuffer) ReadFront(post string) string {
	return fmt.Sprintf("denDelay%s[(%s * %d) + %s]", db.Target, db.Ptr(), db.NPost, post)
}

// Front returns the name of the local reference to the current element
func (db DendriticBuffer) Front() string {
	return "denDelayFront" + db.Target
}

// Drain returns the statements adding the current element to inSyn and zeroing it
func (db DendriticBuffer) Drain(prec, zero, post string) []string {
	return []string{
		fmt.Sprintf("%s &%s = %s;", prec, db.Front(), db.ReadFront(post)),
		fmt.Sprintf("inSyn%s[%s] += %s;", db.Target, post, db.Front()),
		fmt.Sprintf("%s = %s;", db.Front(), zero),
	}
}

// Advance returns the statement moving the buffer pointer to the next slot
func (db DendriticBuffer) Advance() string {
	return fmt.Sprintf("%s = (%s + 1) %% %d;", db.Ptr(), db.Ptr(), db.Slots)
}

// DendriticSlot is the numeric slot written with the given lag at pointer value ptr
func DendriticSlot(ptr, lag, slots int) int {
	return (ptr + lag) % slots
}
