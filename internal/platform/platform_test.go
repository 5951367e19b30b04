// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package platform

import (
	"errors"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/usbarmory/apq-touchpad/internal/display"
	"github.com/usbarmory/apq-touchpad/internal/gic"
	"github.com/usbarmory/apq-touchpad/internal/mmu"
	"github.com/usbarmory/apq-touchpad/internal/reg"
	"github.com/usbarmory/apq-touchpad/internal/timer"
	"github.com/usbarmory/apq-touchpad/internal/uart"
)

type fakeConsole struct {
	starts int
	setups int
}

func (c *fakeConsole) Start() error {
	c.starts++
	return nil
}

func (c *fakeConsole) Setup(conf *display.Config) error {
	c.setups++
	return nil
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newContext(t *testing.T, conf Config) (*Context, *reg.Map, *mmu.TranslationTable, *fakeConsole) {
	t.Helper()

	bus := reg.NewMap()
	tt := &mmu.TranslationTable{}
	console := &fakeConsole{}

	ctx, err := New(conf, bus, tt, console)

	if err != nil {
		t.Fatalf("New(): %v", err)
	}

	return ctx, bus, tt, console
}

func TestDefaultMemoryMap(t *testing.T) {
	conf := DefaultConfig()
	table, err := conf.MemoryMap()

	if err != nil {
		t.Fatalf("MemoryMap(): %v", err)
	}

	want := []mmu.Region{
		{Physical: MEMBASE, Virtual: MEMBASE, Count: MEMSIZE / MB, Flags: mmu.CACHEABLE_MEMORY},
		{Physical: SCRATCH_ADDR, Virtual: SCRATCH_ADDR, Count: SCRATCH_SIZE, Flags: mmu.CACHEABLE_MEMORY},
		{Physical: MSM_IOMAP_BASE, Virtual: MSM_IOMAP_BASE, Count: 639, Flags: mmu.IOMAP_MEMORY},
	}

	if diff := cmp.Diff(want, table.Regions()); diff != "" {
		t.Errorf("unexpected memory map (-want +got):\n%s", diff)
	}
}

func TestMemoryMapErrors(t *testing.T) {
	for _, test := range []struct {
		desc    string
		mod     func(*Config)
		wantErr error
	}{
		{"misaligned memory", func(c *Config) { c.MemBase += 0x1000 }, mmu.ErrMisaligned},
		{"empty scratch", func(c *Config) { c.ScratchSize = 0 }, mmu.ErrNoSections},
		{"empty iomap", func(c *Config) { c.IOMapEnd = c.IOMapBase }, mmu.ErrNoSections},
		{"scratch overlaps memory", func(c *Config) { c.ScratchAddr = MEMBASE + MB }, mmu.ErrOverlap},
		{"scratch past 4GB", func(c *Config) { c.ScratchAddr = 0xff000000 }, mmu.ErrOverflow},
		{"timer divider code", func(c *Config) { c.TimerDivider = 4 }, timer.ErrInvalidDivider},
		{"no GSBI", func(c *Config) { c.UARTGSBI = 0 }, uart.ErrInvalidGSBI},
		{"GSBI past 12", func(c *Config) { c.UARTGSBI = 13 }, uart.ErrInvalidGSBI},
	} {
		t.Run(test.desc, func(t *testing.T) {
			conf := DefaultConfig()
			test.mod(&conf)

			_, err := New(conf, reg.NewMap(), &mmu.TranslationTable{}, &fakeConsole{})

			if !errors.Is(err, test.wantErr) {
				t.Errorf("New() = %v, want %v", err, test.wantErr)
			}
		})
	}

	conf := DefaultConfig()
	conf.IOMapEnd = 0

	if _, err := conf.MemoryMap(); err == nil {
		t.Errorf("MemoryMap() with end below base succeeded")
	}

	conf = DefaultConfig()
	conf.Framebuffer.Width = 0

	if _, err := New(conf, reg.NewMap(), &mmu.TranslationTable{}, &fakeConsole{}); !errors.Is(err, display.ErrInvalidConfig) {
		t.Errorf("New() with invalid framebuffer = %v, want %v", err, display.ErrInvalidConfig)
	}
}

func TestEarlyInit(t *testing.T) {
	ctx, bus, _, _ := newContext(t, DefaultConfig())
	ctx.EarlyInit()

	if got := ctx.TickRate(); got != 6750000 {
		t.Errorf("TickRate() = %d, want 6750000", got)
	}

	if got := bus.Read32(timer.MSM_DGT_BASE + timer.DGT_CLK_CTL); got != 3 {
		t.Errorf("DGT_CLK_CTL = %d, want 3", got)
	}

	if got := bus.Read32(gic.MSM_GIC_CPU_BASE + gic.GIC_CPU_CTRL); got != 1 {
		t.Errorf("GIC CPU interface not enabled")
	}

	// the serial console is only enabled on debug builds
	for _, w := range bus.Log {
		if w.Addr >= uart.GSBIBase(UART_GSBI) && w.Addr < uart.GSBIBase(UART_GSBI)+MB {
			t.Fatalf("UART programmed with debug console disabled: %v", w)
		}
	}
}

func TestEarlyInitDebugUART(t *testing.T) {
	conf := DefaultConfig()
	conf.DebugUART = true

	ctx, bus, _, _ := newContext(t, conf)
	ctx.EarlyInit()

	gpio := uint32(uart.TLMM_BASE_ADDR + uart.GPIO_IN_OUT + UART_GPIO*uart.GPIO_STRIDE)
	gsbi := uart.GSBIBase(UART_GSBI)

	var order []string

	for _, w := range bus.Log {
		var step string

		switch {
		case w.Addr == gpio:
			step = "gpio"
		case w.Addr >= gsbi && w.Addr < gsbi+MB:
			step = "uart"
		case w.Addr >= gic.MSM_GIC_DIST_BASE && w.Addr < gic.MSM_GIC_CPU_BASE+0x1000:
			step = "gic"
		case w.Addr >= timer.MSM_TMR_BASE && w.Addr < timer.MSM_TMR_BASE+0x1000:
			step = "timer"
		default:
			continue
		}

		if len(order) == 0 || order[len(order)-1] != step {
			order = append(order, step)
		}
	}

	if diff := cmp.Diff([]string{"gpio", "uart", "gic", "timer"}, order); diff != "" {
		t.Errorf("unexpected initialization order (-want +got):\n%s", diff)
	}

	if got := bus.Read32(gpio); got&(1<<uart.GPIO_OUT) == 0 {
		t.Errorf("UART enable GPIO not driven high")
	}

	bus.Regs[ctx.UART.Base()+uart.UART_DM_SR] = 1<<uart.SR_TXRDY | 1<<uart.SR_TXEMT
	log.New(ctx.UART, "", 0).Print("hi")

	var tx strings.Builder

	for _, c := range bus.Writes(ctx.UART.Base() + uart.UART_DM_TF) {
		tx.WriteByte(byte(c))
	}

	if got := tx.String(); got != "hi\r\n" {
		t.Errorf("console output = %q, want %q", got, "hi\r\n")
	}
}

func TestTickRateBeforeInit(t *testing.T) {
	ctx, _, _, _ := newContext(t, DefaultConfig())

	defer func() {
		if recover() == nil {
			t.Errorf("TickRate() before EarlyInit did not panic")
		}
	}()

	ctx.TickRate()
}

func TestInitMMUMappings(t *testing.T) {
	conf := DefaultConfig()
	ctx, _, tt, _ := newContext(t, conf)
	ctx.InitMMUMappings()

	mappings := tt.Mappings()

	if got, want := len(mappings), 96+256+639; got != want {
		t.Fatalf("%d sections mapped, want %d", got, want)
	}

	for _, test := range []struct {
		virt  uint32
		flags mmu.Flags
	}{
		{MEMBASE, mmu.CACHEABLE_MEMORY},
		{MEMBASE + MEMSIZE - 1, mmu.CACHEABLE_MEMORY},
		{SCRATCH_ADDR + 128*MB, mmu.CACHEABLE_MEMORY},
		{MSM_IOMAP_BASE, mmu.IOMAP_MEMORY},
		{gic.MSM_GIC_DIST_BASE, mmu.IOMAP_MEMORY},
		{MSM_IOMAP_END - 1, mmu.IOMAP_MEMORY},
	} {
		m, ok := tt.Lookup(test.virt)

		if !ok {
			t.Errorf("%#x not mapped", test.virt)
			continue
		}

		if m.Flags != test.flags {
			t.Errorf("%#x flags = %v, want %v", test.virt, m.Flags, test.flags)
		}

		if pa, _ := tt.Translate(test.virt); pa != test.virt {
			t.Errorf("%#x not identity mapped (%#x)", test.virt, pa)
		}
	}

	for _, virt := range []uint32{0, MEMBASE - 1, MEMBASE + MEMSIZE, SCRATCH_ADDR + SCRATCH_SIZE*MB, MSM_IOMAP_END} {
		if _, ok := tt.Lookup(virt); ok {
			t.Errorf("%#x unexpectedly mapped", virt)
		}
	}

	before := tt.Entries
	ctx.InitMMUMappings()

	if before != tt.Entries {
		t.Errorf("second InitMMUMappings() changed the translation table")
	}
}

func TestInitMMU(t *testing.T) {
	ctx, _, tt, _ := newContext(t, DefaultConfig())
	ctx.InitMMU()

	if got := len(tt.Mappings()); got != mmu.L1_ENTRIES {
		t.Fatalf("%d sections mapped, want %d", got, mmu.L1_ENTRIES)
	}

	for _, test := range []struct {
		virt  uint32
		flags mmu.Flags
	}{
		{0, mmu.DEFAULT_MEMORY},
		{display.FB_BASE, mmu.DEFAULT_MEMORY},
		{display.FB_BASE + uint32(display.DefaultConfig().Size()) - 1, mmu.DEFAULT_MEMORY},
		{MSM_IOMAP_END, mmu.DEFAULT_MEMORY},
		{MEMBASE, mmu.CACHEABLE_MEMORY},
		{SCRATCH_ADDR, mmu.CACHEABLE_MEMORY},
		{gic.MSM_GIC_DIST_BASE, mmu.IOMAP_MEMORY},
	} {
		m, ok := tt.Lookup(test.virt)

		if !ok {
			t.Errorf("%#x not mapped", test.virt)
			continue
		}

		if m.Flags != test.flags {
			t.Errorf("%#x flags = %v, want %v", test.virt, m.Flags, test.flags)
		}

		if pa, _ := tt.Translate(test.virt); pa != test.virt {
			t.Errorf("%#x not identity mapped (%#x)", test.virt, pa)
		}
	}

	// the framebuffer console is set up over the flat mapping
	ctx.Init()

	if !ctx.Display.Initialized() {
		t.Errorf("display not initialized")
	}
}

func TestDisplayInitOnce(t *testing.T) {
	ctx, _, _, console := newContext(t, DefaultConfig())

	ctx.Init()
	ctx.DisplayInit()

	if console.starts != 1 || console.setups != 1 {
		t.Errorf("console starts=%d setups=%d, want 1 and 1", console.starts, console.setups)
	}

	// a fresh context starts from an uninitialized display
	ctx, _, _, console = newContext(t, DefaultConfig())
	ctx.DisplayInit()

	if console.starts != 1 {
		t.Errorf("new context console starts=%d, want 1", console.starts)
	}
}

func TestParseAddress(t *testing.T) {
	for _, test := range []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{"0x40100000", 0x40100000, false},
		{"1048576", 0x100000, false},
		{"0xffffffff", 0xffffffff, false},
		{"0X7F600000", 0x7f600000, false},
		// leading zeroes do not select octal
		{"040100000", 40100000, false},
		{"0x100000000", 0, true},
		{"0x", 0, true},
		{"membase", 0, true},
		{"", 0, true},
	} {
		got, err := ParseAddress(test.in)

		if gotErr := err != nil; gotErr != test.wantErr {
			t.Errorf("ParseAddress(%q) err = %v, want err %v", test.in, err, test.wantErr)
		}

		if err != nil && !errors.Is(err, strconv.ErrSyntax) && !errors.Is(err, strconv.ErrRange) {
			t.Errorf("ParseAddress(%q) err = %v, want strconv error", test.in, err)
		}

		if got != test.want {
			t.Errorf("ParseAddress(%q) = %#x, want %#x", test.in, got, test.want)
		}
	}
}
