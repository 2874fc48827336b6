// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dhtxx

import (
	"math"
	"testing"
)

func TestFrame(t *testing.T) {
	var tests = []struct {
		f           frame
		v           Variant
		humidity    float64
		temperature float64
	}{
		{frame{0x02, 0x8c, 0x01, 0x04, 0x93}, DHT22, 65.2, 26.0},
		{frame{0x02, 0x8c, 0x01, 0x04, 0x93}, DHT11, 16.0, 1.4},
		{frame{0x03, 0xe8, 0x80, 0x65, 0xd0}, DHT22, 100.0, -10.1},
		{frame{0x00, 0x00, 0x81, 0x90, 0x11}, DHT22, 0, -40.0},
		{frame{0x28, 0x00, 0x16, 0x05, 0x43}, DHT11, 40.0, 22.5},
		{frame{0x28, 0x03, 0x82, 0x05, 0xb2}, DHT11, 40.3, -130.5},
	}
	for _, test := range tests {
		if !test.f.checksumOK() {
			t.Errorf("% x: checksum rejected", test.f)
		}
		if h := test.f.humidity(test.v); math.Abs(h-test.humidity) > 1e-9 {
			t.Errorf("% x as %s: humidity %g, expected %g", test.f, test.v, h, test.humidity)
		}
		if c := test.f.temperature(test.v); math.Abs(c-test.temperature) > 1e-9 {
			t.Errorf("% x as %s: temperature %g, expected %g", test.f, test.v, c, test.temperature)
		}
	}
}

func TestFrame_checksum(t *testing.T) {
	f := frame{0x02, 0x8c, 0x01, 0x04, 0x93}
	for i := range 5 {
		bad := f
		bad[i] ^= 0x10
		if bad.checksumOK() {
			t.Errorf("corrupted byte %d not detected", i)
		}
	}
}
