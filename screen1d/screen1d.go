// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package screen1d renders readings as a 1D bar of ANSI colored cells on the
// terminal (stdout).
//
// Useful to watch a sensor drift without plotting anything.
package screen1d

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
)

// Opts represents the options available for this display.
type Opts struct {
	// X is the number of cells of a full bar.
	X int
	// Palette maps colors to terminal codes. nil means ansi256.Default.
	Palette *ansi256.Palette
	// W receives the output. nil means stdout, with ANSI codes translated on
	// Windows.
	W io.Writer

	_ struct{}
}

// Empty is the color of the unfilled part of a bar.
var Empty = color.NRGBA{0x20, 0x20, 0x20, 255}

// Dev is a bar gauge that outputs to the console.
type Dev struct {
	w       io.Writer
	l       int
	palette *ansi256.Palette

	buf bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) (*Dev, error) {
	if opts.X <= 0 {
		return nil, errors.New("screen1d: X must be positive")
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	return &Dev{w: w, l: opts.X, palette: p}, nil
}

func (d *Dev) String() string {
	return "Screen1D"
}

// Halt implements conn.Resource.
//
// It resets the terminal colors so the console is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// Gauge writes one line: label, a bar filled in proportion to where value
// sits between lo and hi, then the value formatted with unit. Values outside
// the range are clamped for the bar only.
func (d *Dev) Gauge(label string, value, lo, hi float64, unit string, c color.NRGBA) error {
	if hi <= lo {
		return fmt.Errorf("screen1d: invalid range [%g, %g]", lo, hi)
	}
	n := d.Filled(value, lo, hi)

	// This code is designed to minimize the amount of memory allocated per call.
	d.buf.Reset()
	_, _ = fmt.Fprintf(&d.buf, "\r\033[0m%-12s ", label)
	for i := 0; i < d.l; i++ {
		if i < n {
			_, _ = io.WriteString(&d.buf, d.palette.Block(c))
		} else {
			_, _ = io.WriteString(&d.buf, d.palette.Block(Empty))
		}
	}
	_, _ = fmt.Fprintf(&d.buf, "\033[0m %7.1f%s\n", value, unit)
	_, err := d.buf.WriteTo(d.w)
	return err
}

// Filled returns the number of cells lit for value within [lo, hi].
func (d *Dev) Filled(value, lo, hi float64) int {
	if math.IsNaN(value) || value <= lo {
		return 0
	}
	if value >= hi {
		return d.l
	}
	return int(math.Round((value - lo) / (hi - lo) * float64(d.l)))
}

// Ramp returns a color going from blue at lo to red at hi.
func Ramp(value, lo, hi float64) color.NRGBA {
	f := 0.0
	if hi > lo && !math.IsNaN(value) {
		f = math.Max(0, math.Min(1, (value-lo)/(hi-lo)))
	}
	return color.NRGBA{R: byte(math.Round(255 * f)), G: 0x30, B: byte(math.Round(255 * (1 - f))), A: 255}
}

var _ fmt.Stringer = &Dev{}
