// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// apq-memmap prints the platform memory map and the first-level translation
// table it produces.
package main

import (
	"flag"
	"fmt"
	"os"

	"k8s.io/klog/v2"

	"github.com/usbarmory/apq-touchpad/internal/platform"
)

const usage = `apq-memmap - APQ8060 memory map inspection

Usage: apq-memmap [OPTIONS]
`

type Config struct {
	memBase     string
	memSize     string
	scratchAddr string
	scratchSize uint
	ioMapBase   string
	ioMapEnd    string

	l1     bool
	format string
}

var conf *Config

func init() {
	conf = &Config{}

	klog.InitFlags(nil)

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}

	def := platform.DefaultConfig()

	flag.StringVar(&conf.memBase, "membase", fmt.Sprintf("%#x", def.MemBase), "main memory base address")
	flag.StringVar(&conf.memSize, "memsize", fmt.Sprintf("%#x", def.MemSize), "main memory size")
	flag.StringVar(&conf.scratchAddr, "scratch", fmt.Sprintf("%#x", def.ScratchAddr), "scratch region base address")
	flag.UintVar(&conf.scratchSize, "scratch-size", uint(def.ScratchSize), "scratch region size (MB)")
	flag.StringVar(&conf.ioMapBase, "iomap-base", fmt.Sprintf("%#x", def.IOMapBase), "peripheral region base address")
	flag.StringVar(&conf.ioMapEnd, "iomap-end", fmt.Sprintf("%#x", def.IOMapEnd), "peripheral region end address")

	flag.BoolVar(&conf.l1, "l1", false, "print first-level section descriptors")
	flag.StringVar(&conf.format, "o", "text", "output format (text, json)")
}

func main() {
	flag.Parse()
	defer klog.Flush()

	pc, err := conf.platformConfig()

	if err != nil {
		klog.Exitf("Invalid configuration: %v", err)
	}

	m, err := build(pc)

	if err != nil {
		klog.Exitf("Failed to build memory map: %v", err)
	}

	klog.V(1).Infof("%d regions, %d sections", len(m.Regions), len(m.Sections))

	if !conf.l1 {
		m.Sections = nil
	}

	switch conf.format {
	case "text":
		err = m.WriteText(os.Stdout)
	case "json":
		err = m.WriteJSON(os.Stdout)
	default:
		klog.Exitf("Unsupported output format %q", conf.format)
	}

	if err != nil {
		klog.Exitf("Failed to write memory map: %v", err)
	}
}

func (c *Config) platformConfig() (pc platform.Config, err error) {
	pc = platform.DefaultConfig()

	for _, v := range []struct {
		s   string
		dst *uint32
	}{
		{c.memBase, &pc.MemBase},
		{c.memSize, &pc.MemSize},
		{c.scratchAddr, &pc.ScratchAddr},
		{c.ioMapBase, &pc.IOMapBase},
		{c.ioMapEnd, &pc.IOMapEnd},
	} {
		if *v.dst, err = platform.ParseAddress(v.s); err != nil {
			return
		}
	}

	pc.ScratchSize = uint32(c.scratchSize)

	return
}
