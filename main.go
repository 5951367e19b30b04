// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm

package main

import (
	"fmt"
	"log"
	"runtime"
	"strconv"
	"time"

	"github.com/usbarmory/apq-touchpad/internal/display"
	"github.com/usbarmory/apq-touchpad/internal/gic"
	"github.com/usbarmory/apq-touchpad/internal/mmu"
	"github.com/usbarmory/apq-touchpad/internal/platform"
	"github.com/usbarmory/apq-touchpad/internal/reg"
)

var ctx *platform.Context

// interrupt controller
var irq = &gic.GIC{
	QGIC: gic.QGIC{
		Bus: reg.MMIO{},
	},
}

func init() {
	var err error

	initDMA()

	conf := platform.DefaultConfig()

	if len(DebugUART) > 0 {
		if conf.DebugUART, err = strconv.ParseBool(DebugUART); err != nil {
			panic(fmt.Sprintf("invalid DebugUART value, %v\n", err))
		}
	}

	mapper := &mmu.CPUMapper{CPU: ARM}

	if ctx, err = platform.New(conf, reg.MMIO{}, mapper, &display.Framebuffer{}); err != nil {
		panic(fmt.Sprintf("platform configuration error, %v\n", err))
	}

	ctx.GIC = irq
	ctx.EarlyInit()

	ctx.Timer.Enable()
	clock.DGT = ctx.Timer

	if conf.DebugUART {
		console = ctx.UART
		log.SetOutput(ctx.UART)
	}

	ctx.InitMMU()
	ctx.Init()

	log.Printf("apq-touchpad • %s/%s (%s) • %s %s",
		runtime.GOOS, runtime.GOARCH, runtime.Version(),
		Revision, Build)
}

func main() {
	log.Printf("apq-touchpad: timer %d Hz, %d IRQs", ctx.TickRate(), irq.IRQs())

	for {
		runtime.Gosched()
		time.Sleep(1 * time.Second)
	}
}
