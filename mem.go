// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm

package main

import (
	"fmt"
	_ "unsafe"

	"github.com/usbarmory/tamago/dma"

	"github.com/usbarmory/apq-touchpad/internal/platform"
)

// The main memory region (platform.MEMBASE, 96MB) is laid out as follows:
//
//	+0x00000000  exception vector table, L1/L2 page tables, exception stack (64KB)
//	+0x00010000  Go runtime
//	+0x05000000  DMA (16MB)
const (
	runtimeStart = platform.MEMBASE
	runtimeSize  = platform.MEMSIZE - dmaSize

	dmaStart = platform.MEMBASE + platform.MEMSIZE - dmaSize
	dmaSize  = 0x01000000 // 16MB
)

//go:linkname ramStart runtime.ramStart
var ramStart uint32 = runtimeStart

//go:linkname ramSize runtime.ramSize
var ramSize uint32 = runtimeSize

//go:linkname ramStackOffset runtime.ramStackOffset
var ramStackOffset uint32 = 0x100

func initDMA() {
	if err := dma.Init(dmaStart, dmaSize); err != nil {
		panic(fmt.Sprintf("DMA region error, %v\n", err))
	}
}
