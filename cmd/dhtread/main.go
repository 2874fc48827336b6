// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// dhtread reads a DHT11 or DHT22 sensor connected to a GPIO pin.
package main

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GermanBionicSystems/dhtxx/dhtxx"
	"github.com/GermanBionicSystems/dhtxx/screen1d"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"periph.io/x/host/v3"
)

// Temperature bar range, in °C.
const (
	temperatureMin = -20.0
	temperatureMax = 50.0
)

var humidityColor = color.NRGBA{0x20, 0x60, 0xff, 0xff}

func mainImpl() error {
	fs := newFlagSet()
	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return errors.New("unexpected argument, try -help")
	}
	cfg, err := loadConfig(fs.Lookup("config").Value.String())
	if err != nil {
		return err
	}
	applyFlags(fs, &cfg)
	opts, err := cfg.opts()
	if err != nil {
		return err
	}

	if _, err := host.Init(); err != nil {
		return err
	}
	d, err := dhtxx.NewByName(cfg.Pin, opts)
	if err != nil {
		return err
	}
	defer d.Halt()

	var out io.Writer = colorable.NewColorableStdout()
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		out = colorable.NewNonColorable(os.Stdout)
	}
	var g *screen1d.Dev
	if cfg.Gauge {
		if g, err = screen1d.New(&screen1d.Opts{X: 40, W: out}); err != nil {
			return err
		}
		defer g.Halt()
	}

	// The synchronizing read's result is meaningless.
	if err := d.PowerUp(); err != nil {
		log.Printf("power up: %v", err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	// PowerUp just read the sensor, so every read waits one interval first.
	for i := 0; cfg.Count == 0 || i < cfg.Count; i++ {
		select {
		case s := <-sig:
			log.Printf("received %v, stopping", s)
			return nil
		case <-time.After(cfg.Interval):
		}
		if err := report(out, g, d, d.Read()); err != nil {
			return err
		}
	}
	return nil
}

// report prints the outcome of one read.
func report(w io.Writer, g *screen1d.Dev, d *dhtxx.Dev, readErr error) error {
	if readErr != nil {
		code := 0
		var e dhtxx.Error
		if errors.As(readErr, &e) {
			code = int(e)
		}
		log.Printf("%s: %v (status %d)", d, readErr, code)
		return nil
	}
	h, t := d.Humidity(), d.Temperature()
	if g == nil {
		_, err := fmt.Fprintf(w, "%s: %.1f%%RH %.1f°C\n", d, h, t)
		return err
	}
	if err := g.Gauge("humidity", h, 0, 100, "%RH", humidityColor); err != nil {
		return err
	}
	return g.Gauge("temperature", t, temperatureMin, temperatureMax, "°C", screen1d.Ramp(t, temperatureMin, temperatureMax))
}

func main() {
	log.SetFlags(log.Ltime | log.Lmicroseconds)
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "dhtread: %s.\n", err)
		os.Exit(1)
	}
}
