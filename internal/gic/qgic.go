// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package gic implements initialization of the Qualcomm Generic Interrupt
// Controller (QGIC) found on the APQ8060.
package gic

import (
	"github.com/usbarmory/apq-touchpad/internal/reg"
)

// QGIC base addresses
const (
	MSM_GIC_DIST_BASE = 0x02080000
	MSM_GIC_CPU_BASE  = 0x02081000

	// GICv2 layout base, distributor at +0x1000 and CPU interface at
	// +0x2000
	GIC_BASE = MSM_GIC_DIST_BASE - 0x1000
)

// Distributor registers
const (
	GIC_DIST_CTRL          = 0x000
	GIC_DIST_CTR           = 0x004
	GIC_DIST_ENABLE_SET    = 0x100
	GIC_DIST_ENABLE_CLEAR  = 0x180
	GIC_DIST_PENDING_CLEAR = 0x280
	GIC_DIST_PRI           = 0x400
	GIC_DIST_TARGET        = 0x800
	GIC_DIST_CONFIG        = 0xc00
)

// CPU interface registers
const (
	GIC_CPU_CTRL    = 0x00
	GIC_CPU_PRIMASK = 0x04
)

const (
	// first Shared Peripheral Interrupt
	SPI_START = 32

	// all SPIs routed to CPU0
	TARGET_CPU0 = 0x01010101
	// level triggered, N:N model
	CONFIG_LEVEL = 0x00000000
	DEFAULT_PRI  = 0xa0a0a0a0
	PRIMASK      = 0xf0
)

// Controller represents the interrupt controller initialization.
type Controller interface {
	Init()
}

// QGIC represents the interrupt controller instance.
type QGIC struct {
	Bus reg.Bus

	// DistBase is the distributor register base address
	DistBase uint32
	// CPUBase is the CPU interface register base address
	CPUBase uint32

	irqs int
}

// Init initializes the distributor and the CPU interface. All interrupts
// are left masked.
func (g *QGIC) Init() {
	g.Route()

	dist := g.DistBase

	for i := 0; i < g.irqs; i += 32 {
		off := uint32(i / 8)
		g.Bus.Write32(dist+GIC_DIST_ENABLE_CLEAR+off, 0xffffffff)
		g.Bus.Write32(dist+GIC_DIST_PENDING_CLEAR+off, 0xffffffff)
	}

	g.Bus.Write32(dist+GIC_DIST_CTRL, 1)

	g.Bus.Write32(g.CPUBase+GIC_CPU_PRIMASK, PRIMASK)
	g.Bus.Write32(g.CPUBase+GIC_CPU_CTRL, 1)
}

// Route disables the distributor, routes all shared peripheral interrupts
// to CPU0 as level triggered and assigns the default priority to every
// line.
func (g *QGIC) Route() {
	if g.DistBase == 0 {
		g.DistBase = MSM_GIC_DIST_BASE
	}

	if g.CPUBase == 0 {
		g.CPUBase = MSM_GIC_CPU_BASE
	}

	dist := g.DistBase

	g.Bus.Write32(dist+GIC_DIST_CTRL, 0)

	// ITLinesNumber encodes 32*(N+1) lines
	g.irqs = int(reg.Get(g.Bus, dist+GIC_DIST_CTR, 0, 0x1f)+1) * 32

	for i := SPI_START; i < g.irqs; i += 4 {
		g.Bus.Write32(dist+GIC_DIST_TARGET+uint32(i), TARGET_CPU0)
	}

	for i := SPI_START; i < g.irqs; i += 16 {
		g.Bus.Write32(dist+GIC_DIST_CONFIG+uint32(i/4), CONFIG_LEVEL)
	}

	for i := 0; i < g.irqs; i += 4 {
		g.Bus.Write32(dist+GIC_DIST_PRI+uint32(i), DEFAULT_PRI)
	}
}

// IRQs returns the number of interrupt lines reported by the distributor.
func (g *QGIC) IRQs() int {
	return g.irqs
}
