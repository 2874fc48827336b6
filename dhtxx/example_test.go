// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dhtxx_test

import (
	"fmt"
	"log"

	"github.com/GermanBionicSystems/dhtxx/dhtxx"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// The sensor type is detected on the first read.
	d, err := dhtxx.NewByName("GPIO4", nil)
	if err != nil {
		log.Fatalf("failed to initialize DHT: %v", err)
	}

	// Flush whatever the sensor was sending when the program started.
	_ = d.PowerUp()

	if err := d.Read(); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s: %.1f%%RH %.1f°C\n", d, d.Humidity(), d.Temperature())
}

func ExampleDev_Sense() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	opts := dhtxx.DefaultOpts
	opts.Type = dhtxx.DHT22
	opts.TemperatureOffset = -0.4
	opts.WaitForRead = true
	d, err := dhtxx.NewByName("GPIO17", &opts)
	if err != nil {
		log.Fatal(err)
	}

	e := physic.Env{}
	for range 3 {
		if err := d.Sense(&e); err != nil {
			log.Println(err)
			continue
		}
		fmt.Printf("%8s %9s\n", e.Temperature, e.Humidity)
	}
}
