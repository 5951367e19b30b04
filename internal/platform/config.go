// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package platform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/usbarmory/apq-touchpad/internal/display"
	"github.com/usbarmory/apq-touchpad/internal/mmu"
	"github.com/usbarmory/apq-touchpad/internal/timer"
)

const MB = mmu.SECTION_SIZE

// Touchpad memory layout
const (
	MEMBASE = 0x40100000
	MEMSIZE = 0x06000000 // 96MB

	SCRATCH_ADDR = 0x48000000
	SCRATCH_SIZE = 256 // MB

	MSM_IOMAP_BASE = 0x00100000
	MSM_IOMAP_END  = 0x28000000
)

// Debug UART
const (
	UART_GPIO = 58
	UART_GSBI = 12
)

// Config represents the static platform configuration.
type Config struct {
	// MemBase and MemSize describe the main memory region
	MemBase uint32
	MemSize uint32

	// ScratchAddr is the scratch region base, ScratchSize its size in MB
	ScratchAddr uint32
	ScratchSize uint32

	// IOMapBase and IOMapEnd delimit the peripheral register space
	IOMapBase uint32
	IOMapEnd  uint32

	// TimerDivider is the DGT clock divider code
	TimerDivider uint32
	// TimerFreq is the DGT input clock frequency in Hz
	TimerFreq uint32

	// DebugUART enables the serial console
	DebugUART bool
	// UARTGPIO is the line enabling the serial console level shifter
	UARTGPIO uint32
	// UARTGSBI is the serial block hosting the console
	UARTGSBI int

	Framebuffer display.Config
}

// DefaultConfig returns the Touchpad platform configuration.
func DefaultConfig() Config {
	return Config{
		MemBase:      MEMBASE,
		MemSize:      MEMSIZE,
		ScratchAddr:  SCRATCH_ADDR,
		ScratchSize:  SCRATCH_SIZE,
		IOMapBase:    MSM_IOMAP_BASE,
		IOMapEnd:     MSM_IOMAP_END,
		TimerDivider: timer.DIV_4,
		TimerFreq:    timer.LPXO_FREQ,
		UARTGPIO:     UART_GPIO,
		UARTGSBI:     UART_GSBI,
		Framebuffer:  display.DefaultConfig(),
	}
}

// MemoryMap returns the section table for main memory, scratch region and
// peripheral register space.
func (conf *Config) MemoryMap() (*mmu.Table, error) {
	if conf.IOMapEnd < conf.IOMapBase {
		return nil, fmt.Errorf("I/O map end %#x below base %#x", conf.IOMapEnd, conf.IOMapBase)
	}

	regions := []struct {
		name  string
		addr  uint32
		size  uint64
		flags mmu.Flags
	}{
		{"memory", conf.MemBase, uint64(conf.MemSize), mmu.CACHEABLE_MEMORY},
		{"scratch", conf.ScratchAddr, uint64(conf.ScratchSize) * MB, mmu.CACHEABLE_MEMORY},
		{"iomap", conf.IOMapBase, uint64(conf.IOMapEnd - conf.IOMapBase), mmu.IOMAP_MEMORY},
	}

	var table []mmu.Region

	for _, r := range regions {
		region, err := mmu.IdentityRegion(r.addr, r.size, r.flags)

		if err != nil {
			return nil, fmt.Errorf("%s region, %w", r.name, err)
		}

		table = append(table, region)
	}

	return mmu.NewTable(table...)
}

// ParseAddress parses a decimal, or 0x prefixed hexadecimal, 32-bit value
// as passed through linker flags.
func ParseAddress(s string) (uint32, error) {
	base := 10
	digits := s

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base = 16
		digits = s[2:]
	}

	v, err := strconv.ParseUint(digits, base, 32)

	if err != nil {
		return 0, fmt.Errorf("invalid address %q, %w", s, err)
	}

	return uint32(v), nil
}
