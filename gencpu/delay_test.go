// Copyright (c) 2024, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gencpu

import (
	"strings"
	"testing"
)

func TestAxonalQueue(t *testing.T) {
	q := AxonalQueue{Pop: "Exc", N: 8, Slots: 4}
	if got := q.SlotExpr(0); got != "spkQuePtrExc" {
		t.Errorf("lag 0: %s", got)
	}
	if got := q.SlotExpr(4); got != "spkQuePtrExc" {
		t.Errorf("lag 4: %s", got)
	}
	if got := q.SlotExpr(3); got != "((spkQuePtrExc + 1) % 4)" {
		t.Errorf("lag 3: %s", got)
	}
	if got := q.ReadOffset(1); got != "(((spkQuePtrExc + 3) % 4) * 8)" {
		t.Errorf("read offset: %s", got)
	}
	if got := q.WriteOffset(); got != "(spkQuePtrExc * 8)" {
		t.Errorf("write offset: %s", got)
	}
	if got := q.Advance(); got != "spkQuePtrExc = (spkQuePtrExc + 1) % 4;" {
		t.Errorf("advance: %s", got)
	}
	nq := AxonalQueue{Pop: "In", N: 3, Slots: 1}
	if nq.SlotExpr(2) != "0" || nq.ReadOffset(1) != "" || nq.WriteOffset() != "" {
		t.Errorf("no queue: %q %q %q", nq.SlotExpr(2), nq.ReadOffset(1), nq.WriteOffset())
	}
}

// TestQueuePeriodicity checks that a spike written at one step is read
// back exactly lag steps later, for every starting pointer
func TestQueuePeriodicity(t *testing.T) {
	for _, slots := range []int{1, 2, 4, 7} {
		for lag := 0; lag < slots; lag++ {
			for start := 0; start < slots; start++ {
				ptr := start
				written := ptr
				for step := 0; step < lag; step++ {
					ptr = (ptr + 1) % slots
				}
				if got := Slot(ptr, lag, slots); got != written {
					t.Errorf("slots %d lag %d start %d: read slot %d, written %d", slots, lag, start, got, written)
				}
				if got := Slot(ptr, lag+slots, slots); got != written {
					t.Errorf("slots %d lag %d start %d: period: read slot %d, written %d", slots, lag+slots, start, got, written)
				}
			}
		}
	}
}

// TestDendriticPeriodicity checks that input deposited with a lag is
// drained exactly lag steps later
func TestDendriticPeriodicity(t *testing.T) {
	const slots = 10
	for lag := 0; lag < slots; lag++ {
		for start := 0; start < slots; start++ {
			buf := make([]float64, slots)
			ptr := start
			buf[DendriticSlot(ptr, lag, slots)] += 1
			for step := 0; step <= lag; step++ {
				got := buf[ptr]
				buf[ptr] = 0
				if (step == lag) != (got == 1) {
					t.Errorf("lag %d start %d: step %d drained %v", lag, start, step, got)
				}
				ptr = (ptr + 1) % slots
			}
		}
	}
}

func TestDrainOrder(t *testing.T) {
	db := DendriticBuffer{Target: "Syn", NPost: 1, Slots: 10}
	st := db.Drain("float", "0.0f", "n")
	want := []string{
		"float &denDelayFrontSyn = denDelaySyn[(denDelayPtrSyn * 1) + n];",
		"inSynSyn[n] += denDelayFrontSyn;",
		"denDelayFrontSyn = 0.0f;",
	}
	if len(st) != len(want) {
		t.Fatalf("drain: %v", st)
	}
	for i := range want {
		if st[i] != want[i] {
			t.Errorf("drain %d: %s != %s", i, st[i], want[i])
		}
	}
	if got := db.WriteIndex("d", "ipost"); got != "denDelaySyn[(((denDelayPtrSyn + d) % 10) * 1) + ipost]" {
		t.Errorf("write index: %s", got)
	}
	if !strings.HasPrefix(db.Advance(), "denDelayPtrSyn = (denDelayPtrSyn + 1) % 10") {
		t.Errorf("advance: %s", db.Advance())
	}
}
