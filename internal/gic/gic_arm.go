// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm

package gic

import (
	armgic "github.com/usbarmory/tamago/arm/gic"
)

// GIC represents the QGIC driven by the ARM GICv2 driver, which masks and
// clears all lines and enables both interfaces once the QGIC specific
// routing is in place.
type GIC struct {
	QGIC

	hw *armgic.GIC
}

// Init routes all interrupts to CPU0 and enables the controller with all
// lines in the secure group and FIQ signalling disabled.
func (g *GIC) Init() {
	g.Route()

	if g.hw == nil {
		g.hw = &armgic.GIC{Base: GIC_BASE}
	}

	g.hw.Init(true, false)

	// the GICv2 driver default mask (0x80) would filter DEFAULT_PRI
	g.Bus.Write32(g.CPUBase+GIC_CPU_PRIMASK, PRIMASK)
}
