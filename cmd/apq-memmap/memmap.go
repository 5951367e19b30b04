// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/usbarmory/apq-touchpad/internal/display"
	"github.com/usbarmory/apq-touchpad/internal/mmu"
	"github.com/usbarmory/apq-touchpad/internal/platform"
	"github.com/usbarmory/apq-touchpad/internal/reg"
)

type Region struct {
	Physical uint32 `json:"physical"`
	Virtual  uint32 `json:"virtual"`
	Sections uint32 `json:"sections"`
	Flags    string `json:"flags"`
}

type Section struct {
	Index      int    `json:"index"`
	Virtual    uint32 `json:"virtual"`
	Descriptor uint32 `json:"descriptor"`
}

type MemoryMap struct {
	Regions  []Region  `json:"regions"`
	Sections []Section `json:"sections,omitempty"`
}

// nullConsole satisfies display.Console, the display is never initialized
// on the host.
type nullConsole struct{}

func (nullConsole) Start() error                  { return nil }
func (nullConsole) Setup(_ *display.Config) error { return nil }

// build runs the platform MMU initialization against an in-memory
// translation table.
func build(conf platform.Config) (m *MemoryMap, err error) {
	tt := &mmu.TranslationTable{}

	ctx, err := platform.New(conf, reg.NewMap(), tt, nullConsole{})

	if err != nil {
		return
	}

	ctx.InitMMUMappings()

	m = &MemoryMap{}

	for _, r := range ctx.Table.Regions() {
		m.Regions = append(m.Regions, Region{
			Physical: r.Physical,
			Virtual:  r.Virtual,
			Sections: r.Count,
			Flags:    r.Flags.String(),
		})
	}

	for i, e := range tt.Entries {
		if e == mmu.TTE_FAULT {
			continue
		}

		m.Sections = append(m.Sections, Section{
			Index:      i,
			Virtual:    uint32(i) << mmu.SECTION_SHIFT,
			Descriptor: e,
		})
	}

	return
}

func (m *MemoryMap) WriteText(w io.Writer) (err error) {
	for i, r := range m.Regions {
		end := uint64(r.Virtual) + uint64(r.Sections)<<mmu.SECTION_SHIFT - 1

		if _, err = fmt.Fprintf(w, "%d: %#08x-%#08x -> %#08x %5d MB %s\n", i, r.Virtual, end, r.Physical, r.Sections, r.Flags); err != nil {
			return
		}
	}

	for _, s := range m.Sections {
		if _, err = fmt.Fprintf(w, "L1[%04d] %#08x: %#08x\n", s.Index, s.Virtual, s.Descriptor); err != nil {
			return
		}
	}

	return
}

func (m *MemoryMap) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(m)
}
