// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/GermanBionicSystems/dhtxx/dhtxx"
	"gopkg.in/yaml.v3"
)

// config holds the settings of a dhtread run. Every key can be set in the
// YAML file and overridden on the command line.
type config struct {
	Pin               string        `yaml:"pin"`
	Type              int           `yaml:"type"`
	ReadDelay         time.Duration `yaml:"read_delay"`
	HumidityOffset    float64       `yaml:"humidity_offset"`
	TemperatureOffset float64       `yaml:"temperature_offset"`
	SuppressError     bool          `yaml:"suppress_error"`
	WaitForRead       bool          `yaml:"wait_for_read"`
	InvalidValue      float64       `yaml:"invalid_value"`
	Count             int           `yaml:"count"`
	Interval          time.Duration `yaml:"interval"`
	Gauge             bool          `yaml:"gauge"`
}

func defaultConfig() config {
	return config{
		Pin:          "GPIO4",
		InvalidValue: dhtxx.DefaultInvalidValue,
		Count:        1,
		Interval:     2 * time.Second,
	}
}

// loadConfig returns the defaults overlaid with the file at path, if any.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func newFlagSet() *flag.FlagSet {
	def := defaultConfig()
	fs := flag.NewFlagSet("dhtread", flag.ContinueOnError)
	fs.String("config", "", "YAML configuration file")
	fs.String("pin", def.Pin, "GPIO pin the sensor data line is connected to")
	fs.Int("type", def.Type, "sensor type: 11, 22 or 0 to detect")
	fs.Duration("delay", def.ReadDelay, "minimum interval between reads, 0 for the sensor default")
	fs.Float64("hum-offset", def.HumidityOffset, "humidity calibration offset in %RH")
	fs.Float64("temp-offset", def.TemperatureOffset, "temperature calibration offset in °C")
	fs.Bool("suppress", def.SuppressError, "keep the previous values when a read fails")
	fs.Bool("wait", def.WaitForRead, "wait for the read delay instead of returning cached values")
	fs.Float64("invalid", def.InvalidValue, "value reported after a failed read, must not be 0")
	fs.Int("n", def.Count, "number of reads, 0 to run until interrupted")
	fs.Duration("interval", def.Interval, "interval between reads")
	fs.Bool("gauge", def.Gauge, "draw colored bars instead of plain lines")
	return fs
}

// applyFlags copies the flags explicitly set on the command line over cfg.
func applyFlags(fs *flag.FlagSet, cfg *config) {
	fs.Visit(func(f *flag.Flag) {
		v := f.Value.(flag.Getter).Get()
		switch f.Name {
		case "pin":
			cfg.Pin = v.(string)
		case "type":
			cfg.Type = v.(int)
		case "delay":
			cfg.ReadDelay = v.(time.Duration)
		case "hum-offset":
			cfg.HumidityOffset = v.(float64)
		case "temp-offset":
			cfg.TemperatureOffset = v.(float64)
		case "suppress":
			cfg.SuppressError = v.(bool)
		case "wait":
			cfg.WaitForRead = v.(bool)
		case "invalid":
			cfg.InvalidValue = v.(float64)
		case "n":
			cfg.Count = v.(int)
		case "interval":
			cfg.Interval = v.(time.Duration)
		case "gauge":
			cfg.Gauge = v.(bool)
		}
	})
}

// opts validates cfg and converts it to driver options.
func (c *config) opts() (*dhtxx.Opts, error) {
	v := dhtxx.Variant(c.Type)
	if c.Type < 0 || c.Type > 255 || (v != dhtxx.Unknown && v != dhtxx.DHT11 && v != dhtxx.DHT22) {
		return nil, fmt.Errorf("invalid sensor type %d, use 11, 22 or 0", c.Type)
	}
	if c.Count < 0 {
		return nil, fmt.Errorf("invalid read count %d", c.Count)
	}
	if c.Interval < 0 || c.ReadDelay < 0 {
		return nil, errors.New("negative interval")
	}
	if c.InvalidValue == 0 {
		// The driver takes 0 as DefaultInvalidValue.
		return nil, errors.New("invalid value cannot be 0, it is a valid reading")
	}
	return &dhtxx.Opts{
		Type:              v,
		ReadDelay:         c.ReadDelay,
		HumidityOffset:    c.HumidityOffset,
		TemperatureOffset: c.TemperatureOffset,
		SuppressError:     c.SuppressError,
		WaitForRead:       c.WaitForRead,
		InvalidValue:      c.InvalidValue,
	}, nil
}
