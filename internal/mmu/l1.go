// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package mmu

import (
	"fmt"
)

// First-level translation table layout (ARMv7 short-descriptor format)
const (
	L1_ENTRIES   = 4096
	L1_SIZE      = L1_ENTRIES * 4 // 16KB
	L1_ALIGNMENT = L1_SIZE

	TTE_FAULT   = 0b00
	TTE_SECTION = 0b10
	TTE_TYPE    = 0b11

	TTE_DOMAIN       = 5
	MEMORY_DOMAIN    = 0
	SECTION_BASEMASK = ^uint32(SECTION_SIZE - 1)
)

// Mapping represents an installed section mapping.
type Mapping struct {
	Virtual  uint32
	Physical uint32
	Flags    Flags
}

// TranslationTable is a first-level translation table with one section
// descriptor per 1MB of virtual address space.
type TranslationTable struct {
	Entries [L1_ENTRIES]uint32
}

// SectionDescriptor returns the first-level descriptor mapping a section
// at physical address phys with the passed attributes.
func SectionDescriptor(phys uint32, flags Flags) uint32 {
	return (phys & SECTION_BASEMASK) | (MEMORY_DOMAIN << TTE_DOMAIN) | TTE_SECTION | uint32(flags)
}

// SectionRange returns the end exclusive virtual range and physical alias
// selecting the section at virt, translated to phys, in a range based table
// configuration where a zero alias denotes a flat mapping.
func SectionRange(phys uint32, virt uint32) (start uint32, end uint32, alias uint32, err error) {
	start = virt & SECTION_BASEMASK
	end = start + SECTION_SIZE
	alias = phys & SECTION_BASEMASK

	switch {
	case end == 0:
		err = fmt.Errorf("%w: section %#x has no exclusive end", ErrOverflow, start)
	case alias == 0 && start != 0:
		err = fmt.Errorf("%w: section %#x cannot alias physical 0", ErrAlias, start)
	}

	return
}

// MapSection installs the section descriptor for virtual address virt.
func (tt *TranslationTable) MapSection(phys uint32, virt uint32, flags Flags) {
	tt.Entries[virt>>SECTION_SHIFT] = SectionDescriptor(phys, flags)
}

// Unmap clears the section descriptor for virtual address virt.
func (tt *TranslationTable) Unmap(virt uint32) {
	tt.Entries[virt>>SECTION_SHIFT] = TTE_FAULT
}

// Lookup returns the section mapping covering virtual address virt.
func (tt *TranslationTable) Lookup(virt uint32) (m Mapping, ok bool) {
	e := tt.Entries[virt>>SECTION_SHIFT]

	if e&TTE_TYPE != TTE_SECTION {
		return
	}

	m = Mapping{
		Virtual:  virt & SECTION_BASEMASK,
		Physical: e & SECTION_BASEMASK,
		Flags:    Flags(e) & validFlags,
	}

	return m, true
}

// Translate resolves virtual address virt to its physical address.
func (tt *TranslationTable) Translate(virt uint32) (phys uint32, ok bool) {
	m, ok := tt.Lookup(virt)

	if !ok {
		return
	}

	return m.Physical | (virt &^ SECTION_BASEMASK), true
}

// Mappings returns all installed section mappings ordered by virtual
// address.
func (tt *TranslationTable) Mappings() (mappings []Mapping) {
	for i := range tt.Entries {
		if m, ok := tt.Lookup(uint32(i) << SECTION_SHIFT); ok {
			mappings = append(mappings, m)
		}
	}

	return
}
