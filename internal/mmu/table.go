// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package mmu

import (
	"fmt"
)

// Mapper represents an address translation configuration accepting 1MB
// section mappings. Arguments are guaranteed to be section aligned.
type Mapper interface {
	MapSection(phys uint32, virt uint32, flags Flags)
}

// FlatMapper is a Mapper providing its own default flat mapping.
type FlatMapper interface {
	Mapper
	MapFlat()
}

// Table is an ordered, immutable sequence of region descriptors.
type Table struct {
	regions []Region
}

// NewTable validates the passed regions and returns them as a Table.
// Regions must not overlap in virtual address space.
func NewTable(regions ...Region) (*Table, error) {
	for i, r := range regions {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("region %d: %w", i, err)
		}

		for j := 0; j < i; j++ {
			if r.overlaps(regions[j]) {
				return nil, fmt.Errorf("regions %d and %d: %w", j, i, ErrOverlap)
			}
		}
	}

	t := &Table{
		regions: make([]Region, len(regions)),
	}

	copy(t.regions, regions)

	return t, nil
}

// Len returns the number of regions in the table.
func (t *Table) Len() int {
	return len(t.regions)
}

// Region returns the region at index i.
func (t *Table) Region(i int) (r Region, ok bool) {
	if i < 0 || i >= len(t.regions) {
		return
	}

	return t.regions[i], true
}

// Regions returns a copy of the table entries.
func (t *Table) Regions() []Region {
	return append([]Region(nil), t.regions...)
}

// Sections returns the total number of sections described by the table.
func (t *Table) Sections() (n int) {
	for _, r := range t.regions {
		n += int(r.Count)
	}

	return
}

// Apply installs, in table order, a section mapping for every 1MB section
// of every region.
func (t *Table) Apply(m Mapper) {
	for _, r := range t.regions {
		for i := uint32(0); i < r.Count; i++ {
			phys, virt := r.Section(i)
			m.MapSection(phys, virt, r.Flags)
		}
	}
}

// IdentityMap maps every section of the 32-bit address space to itself.
func IdentityMap(m Mapper, flags Flags) {
	for i := uint32(0); i < L1_ENTRIES; i++ {
		addr := i << SECTION_SHIFT
		m.MapSection(addr, addr, flags)
	}
}

// Flat installs the default flat mapping of the whole address space, mappers
// not providing one receive a strongly-ordered identity map.
func Flat(m Mapper) {
	if f, ok := m.(FlatMapper); ok {
		f.MapFlat()
		return
	}

	IdentityMap(m, DEFAULT_MEMORY)
}
