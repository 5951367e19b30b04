// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package reg

import (
	"fmt"
)

// Write records a single register write.
type Write struct {
	Addr uint32
	Val  uint32
}

func (w Write) String() string {
	return fmt.Sprintf("%#08x <- %#08x", w.Addr, w.Val)
}

// Map is a Bus backed by a plain map, registers never written read as zero.
// Every write is also appended to Log, in order, to allow inspection of
// programming sequences.
type Map struct {
	Regs map[uint32]uint32
	Log  []Write
}

// NewMap returns an empty register map.
func NewMap() *Map {
	return &Map{
		Regs: make(map[uint32]uint32),
	}
}

func (m *Map) Read32(addr uint32) uint32 {
	return m.Regs[addr]
}

func (m *Map) Write32(addr uint32, val uint32) {
	if m.Regs == nil {
		m.Regs = make(map[uint32]uint32)
	}

	m.Regs[addr] = val
	m.Log = append(m.Log, Write{addr, val})
}

// Writes returns the values written to addr, in order.
func (m *Map) Writes(addr uint32) (vals []uint32) {
	for _, w := range m.Log {
		if w.Addr == addr {
			vals = append(vals, w.Val)
		}
	}

	return
}

// Reset clears the write log, register values are preserved.
func (m *Map) Reset() {
	m.Log = nil
}
