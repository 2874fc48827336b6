// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dhtxx

import (
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

// fakeClock is a Platform whose time only moves when the driver waits or
// samples the pin.
type fakeClock struct {
	now      time.Duration
	delays   []time.Duration
	sleeps   int
	yields   int
	critical bool
	sections int
}

func (c *fakeClock) Now() time.Duration { return c.now }

func (c *fakeClock) Delay(d time.Duration) {
	c.delays = append(c.delays, d)
	c.now += d
}

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps++
	c.now += d
}

func (c *fakeClock) Yield() { c.yields++ }

func (c *fakeClock) DisablePreemption() func() {
	c.critical = true
	c.sections++
	return func() { c.critical = false }
}

// pulse is a level held by the sensor for a duration.
type pulse struct {
	l gpio.Level
	d time.Duration
}

// scriptedPin replays one pulse train each time the host releases the line.
// Once a train is exhausted, or when none is queued, the pull-up keeps the
// line high.
type scriptedPin struct {
	gpiotest.Pin
	clk *fakeClock

	// readCost is how much virtual time a single Read takes.
	readCost time.Duration
	scripts  [][]pulse

	input      bool
	releasedAt time.Duration
	current    []pulse
	outs       []gpio.Level
	releases   int
	// outsideReads counts line samples taken outside the critical section.
	outsideReads int
}

func newScriptedPin(clk *fakeClock, scripts ...[]pulse) *scriptedPin {
	return &scriptedPin{
		Pin:      gpiotest.Pin{N: "GPIO4", Num: 4},
		clk:      clk,
		readCost: time.Microsecond,
		scripts:  scripts,
	}
}

func (p *scriptedPin) In(pull gpio.Pull, edge gpio.Edge) error {
	p.input = true
	p.releases++
	p.releasedAt = p.clk.now
	p.current = nil
	if len(p.scripts) != 0 {
		p.current = p.scripts[0]
		p.scripts = p.scripts[1:]
	}
	return p.Pin.In(pull, edge)
}

func (p *scriptedPin) Out(l gpio.Level) error {
	p.input = false
	p.outs = append(p.outs, l)
	return p.Pin.Out(l)
}

func (p *scriptedPin) Read() gpio.Level {
	p.clk.now += p.readCost
	if !p.input {
		return p.Pin.Read()
	}
	if !p.clk.critical {
		p.outsideReads++
	}
	elapsed := p.clk.now - p.releasedAt
	for _, s := range p.current {
		if elapsed < s.d {
			return s.l
		}
		elapsed -= s.d
	}
	return gpio.High
}

// lastOut returns the last level driven by the host.
func (p *scriptedPin) lastOut() gpio.Level {
	if len(p.outs) == 0 {
		return gpio.Low
	}
	return p.outs[len(p.outs)-1]
}

// handshake is the sensor's answer to the wakeup pulse.
func handshake() []pulse {
	return []pulse{
		{gpio.High, 30 * time.Microsecond},
		{gpio.Low, 80 * time.Microsecond},
		{gpio.High, 80 * time.Microsecond},
	}
}

// framePulses returns the full pulse train of a well formed transmission of
// b.
func framePulses(b [5]byte) []pulse {
	out := handshake()
	for i := range frameBits {
		high := 27 * time.Microsecond
		if b[i/8]&(0x80>>(i%8)) != 0 {
			high = 70 * time.Microsecond
		}
		out = append(out, pulse{gpio.Low, 50 * time.Microsecond}, pulse{gpio.High, high})
	}
	return append(out, pulse{gpio.Low, 50 * time.Microsecond})
}

// withChecksum fills b[4] with the sum of the first four bytes.
func withChecksum(b [5]byte) [5]byte {
	b[4] = b[0] + b[1] + b[2] + b[3]
	return b
}
