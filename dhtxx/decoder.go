// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dhtxx

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

const (
	// BitThreshold separates a "0" high pulse (26-28µs) from a "1" high
	// pulse (70µs).
	BitThreshold = 50 * time.Microsecond

	// waitTimeout bounds every wait for a level change. The longest pulse
	// of the protocol is 80µs.
	waitTimeout = 100 * time.Microsecond

	frameBits = 40
)

// decoder captures one raw frame from the sensor.
type decoder struct {
	pin gpio.PinIO
	p   Platform
}

// readFrame wakes the sensor and samples one frame. It makes exactly one
// attempt and always leaves the bus idle (output high).
func (d *decoder) readFrame(wakeup time.Duration) (frame, error) {
	var f frame
	d.p.Yield()
	err := d.request(wakeup)
	if err == nil {
		err = d.sample(&f)
	}
	if errIdle := d.pin.Out(gpio.High); errIdle != nil && err == nil {
		err = fmt.Errorf("dhtxx: releasing bus: %w", errIdle)
	}
	return f, err
}

// request drives the wakeup pulse, with 10% margin for the sensor's timing
// inaccuracy, then hands the line over to the sensor.
func (d *decoder) request(wakeup time.Duration) error {
	if err := d.pin.Out(gpio.Low); err != nil {
		return fmt.Errorf("dhtxx: wakeup: %w", err)
	}
	d.p.Delay(wakeup * 11 / 10)
	if err := d.pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return fmt.Errorf("dhtxx: releasing line to sensor: %w", err)
	}
	return nil
}

// sample clocks in the handshake and the 40 bits with preemption disabled.
func (d *decoder) sample(f *frame) error {
	restore := d.p.DisablePreemption()
	defer restore()

	// The sensor pulls low 20-40µs after release, then answers with ~80µs
	// low and ~80µs high.
	if err := d.waitWhile(gpio.High, ErrSensorNotReady); err != nil {
		return err
	}
	if err := d.waitWhile(gpio.Low, ErrTimeoutA); err != nil {
		return err
	}
	if err := d.waitWhile(gpio.High, ErrTimeoutB); err != nil {
		return err
	}

	// Each bit is ~50µs low followed by a high pulse whose length is the
	// value.
	for i := range frameBits {
		if err := d.waitWhile(gpio.Low, ErrTimeoutC); err != nil {
			return err
		}
		start := d.p.Now()
		if err := d.waitWhile(gpio.High, ErrTimeoutD); err != nil {
			return err
		}
		if d.p.Now()-start > BitThreshold {
			f[i/8] |= 0x80 >> (i % 8)
		}
	}

	// The sensor ends with a ~50µs low pulse. Missing it is harmless.
	_ = d.waitWhile(gpio.Low, ErrTimeoutC)

	// Humidity never needs the top bit (1000 = 0x03e8 for DHT22, 100 for
	// DHT11); when it is set, the sampling slipped by one bit.
	if f[0]&0x80 != 0 {
		return ErrBitShift
	}
	return nil
}

// waitWhile polls the pin until it leaves level l, or returns timeout once
// waitTimeout has elapsed.
func (d *decoder) waitWhile(l gpio.Level, timeout Error) error {
	deadline := d.p.Now() + waitTimeout
	for d.pin.Read() == l {
		if d.p.Now() >= deadline {
			return timeout
		}
	}
	return nil
}
