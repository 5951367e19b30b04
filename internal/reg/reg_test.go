// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package reg

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFieldAccess(t *testing.T) {
	m := NewMap()

	Set(m, 0x10, 3)
	Set(m, 0x10, 0)
	Clear(m, 0x10, 3)
	SetN(m, 0x10, 4, 0xf, 0x1a)

	if got, want := m.Read32(0x10), uint32(0xa1); got != want {
		t.Fatalf("register = %#x, want %#x", got, want)
	}

	if got, want := Get(m, 0x10, 4, 0xf), uint32(0xa); got != want {
		t.Errorf("Get() = %#x, want %#x", got, want)
	}

	want := []uint32{0x8, 0x9, 0x1, 0xa1}

	if diff := cmp.Diff(want, m.Writes(0x10)); diff != "" {
		t.Errorf("unexpected writes (-want +got):\n%s", diff)
	}
}

func TestMapZeroValue(t *testing.T) {
	var m Map

	if got := m.Read32(0x1000); got != 0 {
		t.Errorf("unwritten register = %#x, want 0", got)
	}

	m.Write32(0x1000, 1)
	m.Reset()

	if len(m.Log) != 0 {
		t.Errorf("log not cleared: %v", m.Log)
	}

	if got := m.Read32(0x1000); got != 1 {
		t.Errorf("register lost on Reset: %#x", got)
	}
}
