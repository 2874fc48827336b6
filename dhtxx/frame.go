// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dhtxx

import "github.com/GermanBionicSystems/dhtxx/common"

// frame is the 40 bit payload: humidity high, humidity low, temperature high
// (bit 7 is the sign), temperature low and checksum.
type frame [5]byte

func (f *frame) checksumOK() bool {
	return common.Sum8(f[:4]) == f[4]
}

// humidity returns the relative humidity in percent.
func (f *frame) humidity(v Variant) float64 {
	if v == DHT11 {
		return float64(f[0]) + float64(f[1])/10
	}
	return float64(uint16(f[0])<<8|uint16(f[1])) / 10
}

// temperature returns the temperature in degrees Celsius.
func (f *frame) temperature(v Variant) float64 {
	var t float64
	if v == DHT11 {
		t = float64(f[2]) + float64(f[3])/10
	} else {
		t = float64(uint16(f[2]&0x7f)<<8|uint16(f[3])) / 10
	}
	if f[2]&0x80 != 0 {
		t = -t
	}
	return t
}
