// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package dhtxx controls DHT11 and DHT22 (AM2302) temperature/humidity
// sensors over their single-wire protocol.
//
// The host bit-bangs the protocol on one GPIO pin: it pulls the line low to
// wake the sensor, releases it, then times the 40 high pulses the sensor sends
// back. The sensor variant is detected on the first read unless it is set
// explicitly. Dev implements physic.SenseEnv; the pressure is never set.
//
// Pulse timing is sensitive to scheduling jitter. The host Platform locks the
// goroutine to its thread and pauses the garbage collector while sampling, but
// a loaded Linux host will still drop frames now and then; callers are
// expected to retry on the next scheduled read.
//
// # Datasheet
//
// https://cdn-shop.adafruit.com/datasheets/Digital+humidity+and+temperature+sensor+AM2302.pdf
//
// https://www.mouser.com/datasheet/2/758/DHT11-Technical-Data-Sheet-Translated-Version-1143054.pdf
package dhtxx
