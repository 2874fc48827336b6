// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dhtxx

import "strconv"

// Error is a protocol failure reported by Read. All of them are transient:
// marginal wiring or a missed edge, so the next scheduled read may succeed.
//
// The numeric values are stable and can be reported as status codes.
type Error int

const (
	// ErrChecksum means the frame's fifth byte does not match the sum of the
	// first four.
	ErrChecksum Error = -1
	// ErrTimeoutA means the sensor held its acknowledge low pulse too long.
	ErrTimeoutA Error = -2
	// ErrBitShift means the humidity high bit was set, which only happens when
	// the sampling slipped by one bit.
	ErrBitShift Error = -3
	// ErrSensorNotReady means the sensor never pulled the line low after the
	// wakeup pulse.
	ErrSensorNotReady Error = -4
	// ErrTimeoutC means a bit's leading low pulse was too long.
	ErrTimeoutC Error = -5
	// ErrTimeoutD means a bit's high pulse was too long.
	ErrTimeoutD Error = -6
	// ErrTimeoutB means the sensor held its ready high pulse too long.
	ErrTimeoutB Error = -7
)

// Transient reports whether the next scheduled read may succeed. Every
// protocol failure is.
func (e Error) Transient() bool {
	switch e {
	case ErrChecksum, ErrTimeoutA, ErrBitShift, ErrSensorNotReady, ErrTimeoutC, ErrTimeoutD, ErrTimeoutB:
		return true
	default:
		return false
	}
}

func (e Error) Error() string {
	switch e {
	case ErrChecksum:
		return "dhtxx: checksum mismatch"
	case ErrTimeoutA:
		return "dhtxx: timeout waiting for end of acknowledge pulse"
	case ErrBitShift:
		return "dhtxx: frame bit shift detected"
	case ErrSensorNotReady:
		return "dhtxx: sensor not ready"
	case ErrTimeoutC:
		return "dhtxx: timeout waiting for bit start"
	case ErrTimeoutD:
		return "dhtxx: timeout measuring bit"
	case ErrTimeoutB:
		return "dhtxx: timeout waiting for end of ready pulse"
	default:
		return "dhtxx: error " + strconv.Itoa(int(e))
	}
}
