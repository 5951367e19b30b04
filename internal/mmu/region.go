// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package mmu

import (
	"errors"
	"fmt"
)

// SECTION_SIZE is the first-level translation granularity.
const (
	SECTION_SHIFT = 20
	SECTION_SIZE  = 1 << SECTION_SHIFT // 1MB
)

var (
	ErrMisaligned = errors.New("address not aligned to section size")
	ErrNoSections = errors.New("region spans no sections")
	ErrOverflow   = errors.New("region exceeds 32-bit address space")
	ErrFlags      = errors.New("invalid section attributes")
	ErrOverlap    = errors.New("overlapping virtual regions")
	ErrAlias      = errors.New("unsupported section alias")
)

// Sections returns the number of 1MB sections required to cover size bytes.
func Sections(size uint64) uint32 {
	return uint32((size + SECTION_SIZE - 1) >> SECTION_SHIFT)
}

// Region describes a physically contiguous range mapped, at section
// granularity, to a virtual one.
type Region struct {
	// Physical is the base physical address.
	Physical uint32
	// Virtual is the base virtual address, equal to Physical for identity
	// mapped regions.
	Virtual uint32
	// Count is the number of 1MB sections spanned by the region.
	Count uint32
	// Flags holds the memory type and access attributes.
	Flags Flags
}

// NewRegion returns a validated region descriptor.
func NewRegion(phys uint32, virt uint32, sections uint32, flags Flags) (r Region, err error) {
	r = Region{
		Physical: phys,
		Virtual:  virt,
		Count:    sections,
		Flags:    flags,
	}

	return r, r.Validate()
}

// IdentityRegion returns a validated region descriptor with equal physical
// and virtual addresses, covering size bytes.
func IdentityRegion(addr uint32, size uint64, flags Flags) (Region, error) {
	return NewRegion(addr, addr, Sections(size), flags)
}

// Validate checks the region for section alignment, a non-zero length which
// fits the 32-bit address space and valid attribute flags.
func (r Region) Validate() error {
	switch {
	case r.Physical%SECTION_SIZE != 0:
		return fmt.Errorf("physical address %#x: %w", r.Physical, ErrMisaligned)
	case r.Virtual%SECTION_SIZE != 0:
		return fmt.Errorf("virtual address %#x: %w", r.Virtual, ErrMisaligned)
	case r.Count == 0:
		return fmt.Errorf("region %#x: %w", r.Virtual, ErrNoSections)
	case uint64(r.Physical)+r.Size() > 1<<32:
		return fmt.Errorf("physical region %#x+%#x: %w", r.Physical, r.Size(), ErrOverflow)
	case uint64(r.Virtual)+r.Size() > 1<<32:
		return fmt.Errorf("virtual region %#x+%#x: %w", r.Virtual, r.Size(), ErrOverflow)
	case !r.Flags.Valid():
		return fmt.Errorf("flags %#x: %w", uint32(r.Flags), ErrFlags)
	}

	return nil
}

// Size returns the region size in bytes.
func (r Region) Size() uint64 {
	return uint64(r.Count) << SECTION_SHIFT
}

// Section returns the physical and virtual address of section index i.
func (r Region) Section(i uint32) (phys uint32, virt uint32) {
	off := i << SECTION_SHIFT
	return r.Physical + off, r.Virtual + off
}

// overlaps reports whether the virtual ranges of r and o intersect.
func (r Region) overlaps(o Region) bool {
	rStart, rEnd := uint64(r.Virtual), uint64(r.Virtual)+r.Size()
	oStart, oEnd := uint64(o.Virtual), uint64(o.Virtual)+o.Size()

	return rStart < oEnd && oStart < rEnd
}

func (r Region) String() string {
	return fmt.Sprintf("%#08x-%#08x -> %#08x (%d MB, %s)",
		r.Virtual, uint64(r.Virtual)+r.Size()-1, r.Physical, r.Count, r.Flags)
}
