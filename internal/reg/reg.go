// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package reg provides 32-bit register access for the APQ8060 peripherals
// programmed during platform bring-up.
package reg

// Bus represents a 32-bit memory mapped register space.
type Bus interface {
	Read32(addr uint32) uint32
	Write32(addr uint32, val uint32)
}

// Set sets bit at position pos of the register at addr.
func Set(b Bus, addr uint32, pos int) {
	b.Write32(addr, b.Read32(addr)|(1<<pos))
}

// Clear clears bit at position pos of the register at addr.
func Clear(b Bus, addr uint32, pos int) {
	b.Write32(addr, b.Read32(addr)&^(1<<pos))
}

// SetN sets the register field of width mask at position pos.
func SetN(b Bus, addr uint32, pos int, mask uint32, val uint32) {
	r := b.Read32(addr)
	r = (r &^ (mask << pos)) | ((val & mask) << pos)
	b.Write32(addr, r)
}

// Get returns the register field of width mask at position pos.
func Get(b Bus, addr uint32, pos int, mask uint32) uint32 {
	return (b.Read32(addr) >> pos) & mask
}

// Wait spins until the register field at position pos matches val.
func Wait(b Bus, addr uint32, pos int, mask uint32, val uint32) {
	for Get(b, addr, pos, mask) != val {
	}
}
