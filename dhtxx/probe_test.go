// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dhtxx

import "testing"

func TestProbeState_next(t *testing.T) {
	var tests = []struct {
		from probeState
		ok   bool
		to   probeState
	}{
		{probeIdle, false, probeDHT22},
		{probeIdle, true, probeDHT22},
		{probeDHT22, true, lockedDHT22},
		{probeDHT22, false, probeDHT11},
		{probeDHT11, true, lockedDHT11},
		{probeDHT11, false, probeIdle},
		{lockedDHT22, false, lockedDHT22},
		{lockedDHT11, false, lockedDHT11},
		{lockedDHT11, true, lockedDHT11},
	}
	for _, test := range tests {
		if got := test.from.next(test.ok); got != test.to {
			t.Errorf("%d.next(%t) = %d, expected %d", test.from, test.ok, got, test.to)
		}
	}
}

func TestProbeState_variant(t *testing.T) {
	var tests = []struct {
		s       probeState
		v       Variant
		probing bool
	}{
		{probeIdle, Unknown, false},
		{probeDHT22, DHT22, true},
		{probeDHT11, DHT11, true},
		{lockedDHT22, DHT22, false},
		{lockedDHT11, DHT11, false},
	}
	for _, test := range tests {
		if v := test.s.variant(); v != test.v {
			t.Errorf("%d: variant %s, expected %s", test.s, v, test.v)
		}
		if p := test.s.probing(); p != test.probing {
			t.Errorf("%d: probing %t", test.s, p)
		}
	}
}
