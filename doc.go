// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package dhtxx is a container for the DHT11/DHT22 single-wire sensor
// driver (package dhtxx) and the dhtread command.
package dhtxx
