// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm

package mmu

import (
	"fmt"

	"github.com/usbarmory/tamago/arm"
)

// CPUMapper installs section mappings in the first-level translation table
// of an initialized ARM core.
type CPUMapper struct {
	CPU *arm.CPU
}

// MapSection configures the section at virtual address virt to translate to
// physical address phys.
func (m *CPUMapper) MapSection(phys uint32, virt uint32, flags Flags) {
	start, end, alias, err := SectionRange(phys, virt)

	if err != nil {
		panic(fmt.Sprintf("mmu: %v", err))
	}

	m.CPU.ConfigureMMU(start, end, alias, SectionDescriptor(0, flags))
}

// MapFlat resets the translation table to the runtime flat mapping, device
// memory outside of the runtime RAM is strongly-ordered.
func (m *CPUMapper) MapFlat() {
	m.CPU.InitMMU()
}
