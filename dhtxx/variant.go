// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dhtxx

import "time"

// Variant is the protocol dialect spoken by the sensor. The numeric values
// match the part numbers so they can be read from configuration as is.
type Variant uint8

const (
	// Unknown lets the driver detect the variant on the next read.
	Unknown Variant = 0
	// DHT11 and compatibles (DHT12) report integer and tenth bytes.
	DHT11 Variant = 11
	// DHT22 and compatibles (AM2302, DHT33, DHT44) report tenths in 16 bits.
	DHT22 Variant = 22
)

func (v Variant) String() string {
	switch v {
	case DHT11:
		return "DHT11"
	case DHT22:
		return "DHT22"
	default:
		return "unknown"
	}
}

func (v Variant) valid() bool {
	return v == Unknown || v == DHT11 || v == DHT22
}

// wakeup returns how long the host holds the line low to request a frame.
func (v Variant) wakeup() time.Duration {
	if v == DHT11 {
		return 18 * time.Millisecond
	}
	return time.Millisecond
}

// readDelay is the datasheet's minimum spacing between two reads. Unknown
// uses the longer DHT22 value.
func (v Variant) readDelay() time.Duration {
	if v == DHT11 {
		return time.Second
	}
	return 2 * time.Second
}
