// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package common contains functions used across multiple packages. For
// example, the checksum of a sensor frame.
package common

// Sum8 returns the low 8 bits of the sum of the byte slice parameter. Aosong
// single-wire sensors (DHT11, DHT22) append it to every frame.
func Sum8(bytes []byte) byte {
	var sum byte
	for _, val := range bytes {
		sum += val
	}
	return sum
}
