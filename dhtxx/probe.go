// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dhtxx

// probeState tracks variant detection. A DHT22 wakeup pulse is tried first
// since a DHT11 may answer it too, but not the other way around.
type probeState uint8

const (
	probeIdle probeState = iota
	probeDHT22
	probeDHT11
	lockedDHT22
	lockedDHT11
)

// next returns the state following an attempt made in s.
func (s probeState) next(ok bool) probeState {
	switch s {
	case probeIdle:
		return probeDHT22
	case probeDHT22:
		if ok {
			return lockedDHT22
		}
		return probeDHT11
	case probeDHT11:
		if ok {
			return lockedDHT11
		}
		return probeIdle
	default:
		return s
	}
}

// variant returns the variant attempted, or locked, in s.
func (s probeState) variant() Variant {
	switch s {
	case probeDHT22, lockedDHT22:
		return DHT22
	case probeDHT11, lockedDHT11:
		return DHT11
	default:
		return Unknown
	}
}

func (s probeState) probing() bool {
	return s == probeDHT22 || s == probeDHT11
}
