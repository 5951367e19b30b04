// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package platform sequences the APQ8060 (HP Touchpad) early hardware
// initialization: debug serial console, interrupt controller, timer, MMU
// section mappings and framebuffer console.
//
// All state is held by a Context, the boot orchestrator is expected to
// invoke EarlyInit, InitMMU (or InitMMUMappings over an existing flat
// mapping) and Init in this order.
package platform

import (
	"fmt"
	"log"

	"github.com/usbarmory/apq-touchpad/internal/display"
	"github.com/usbarmory/apq-touchpad/internal/gic"
	"github.com/usbarmory/apq-touchpad/internal/mmu"
	"github.com/usbarmory/apq-touchpad/internal/reg"
	"github.com/usbarmory/apq-touchpad/internal/timer"
	"github.com/usbarmory/apq-touchpad/internal/uart"
)

// Context represents the platform boot state.
type Context struct {
	Config Config

	// Bus is the peripheral register space
	Bus reg.Bus
	// MMU is the active translation configuration
	MMU mmu.Mapper
	// Table is the memory map applied by InitMMUMappings
	Table *mmu.Table

	Timer   *timer.DGT
	GIC     gic.Controller
	UART    *uart.UART
	Display *display.Display
}

// New validates the configuration and returns a boot context for it.
func New(conf Config, bus reg.Bus, mapper mmu.Mapper, console display.Console) (ctx *Context, err error) {
	table, err := conf.MemoryMap()

	if err != nil {
		return nil, fmt.Errorf("memory map, %w", err)
	}

	if err = conf.Framebuffer.Validate(); err != nil {
		return
	}

	dgt := &timer.DGT{
		Bus:     bus,
		Divider: conf.TimerDivider,
		Freq:    conf.TimerFreq,
	}

	if err = dgt.Validate(); err != nil {
		return nil, fmt.Errorf("timer, %w", err)
	}

	serial := &uart.UART{
		Bus:  bus,
		GSBI: conf.UARTGSBI,
	}

	if err = serial.Validate(); err != nil {
		return nil, fmt.Errorf("debug console, %w", err)
	}

	ctx = &Context{
		Config: conf,
		Bus:    bus,
		MMU:    mapper,
		Table:  table,
		Timer:  dgt,
		GIC: &gic.QGIC{
			Bus: bus,
		},
		UART: serial,
		Display: &display.Display{
			Console: console,
			Config:  conf.Framebuffer,
		},
	}

	return
}

// EarlyInit enables the debug serial console, when configured, and
// initializes the interrupt controller and timer.
func (ctx *Context) EarlyInit() {
	if ctx.Config.DebugUART {
		gpio := &uart.GPIO{
			Bus: ctx.Bus,
			Num: ctx.Config.UARTGPIO,
		}

		gpio.Out()
		gpio.High()

		ctx.UART.Init()
	}

	ctx.GIC.Init()
	ctx.Timer.Init()
}

// InitMMU resets the translation configuration to a flat mapping of the
// whole address space, then installs the platform memory map over it.
func (ctx *Context) InitMMU() {
	mmu.Flat(ctx.MMU)
	ctx.InitMMUMappings()
}

// InitMMUMappings installs the section mappings of the platform memory map.
func (ctx *Context) InitMMUMappings() {
	for i := 0; i < ctx.Table.Len(); i++ {
		r, _ := ctx.Table.Region(i)
		log.Printf("platform: mapping %v", r)
	}

	ctx.Table.Apply(ctx.MMU)
}

// Init performs the late platform initialization.
func (ctx *Context) Init() {
	log.Printf("platform: init")
	ctx.DisplayInit()
}

// TickRate returns the timer ticks per second, it must not be called before
// EarlyInit.
func (ctx *Context) TickRate() uint32 {
	rate, err := ctx.Timer.TickRate()

	if err != nil {
		panic(fmt.Sprintf("platform: tick rate, %v", err))
	}

	return rate
}

// DisplayInit sets up the framebuffer console once, any subsequent
// invocation is a no-op.
func (ctx *Context) DisplayInit() {
	if err := ctx.Display.Init(); err != nil {
		panic(fmt.Sprintf("platform: display, %v", err))
	}
}
