// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uart

import (
	"github.com/usbarmory/apq-touchpad/internal/reg"
)

// TLMM GPIO registers
const (
	TLMM_BASE_ADDR = 0x00800000

	GPIO_CONFIG  = 0x1000
	GPIO_IN_OUT  = 0x1004
	GPIO_STRIDE  = 0x10
	GPIO_OE      = 9
	GPIO_OUT     = 1
	GPIO_FUNC    = 2
	GPIO_FUNC_SZ = 0b1111
)

// GPIO represents a TLMM general purpose I/O line.
type GPIO struct {
	Bus reg.Bus
	Num uint32
}

func (gpio *GPIO) config() uint32 {
	return TLMM_BASE_ADDR + GPIO_CONFIG + gpio.Num*GPIO_STRIDE
}

func (gpio *GPIO) inOut() uint32 {
	return TLMM_BASE_ADDR + GPIO_IN_OUT + gpio.Num*GPIO_STRIDE
}

// Out configures the line as a plain GPIO output.
func (gpio *GPIO) Out() {
	reg.SetN(gpio.Bus, gpio.config(), GPIO_FUNC, GPIO_FUNC_SZ, 0)
	reg.Set(gpio.Bus, gpio.config(), GPIO_OE)
}

// High drives the line high.
func (gpio *GPIO) High() {
	reg.Set(gpio.Bus, gpio.inOut(), GPIO_OUT)
}

// Low drives the line low.
func (gpio *GPIO) Low() {
	reg.Clear(gpio.Bus, gpio.inOut(), GPIO_OUT)
}
