// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dhtxx

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
)

// DefaultInvalidValue is stored as humidity and temperature after a failed
// read. No sensor of the family can report it.
const DefaultInvalidValue = -999

// waitStep is the longest single sleep while waiting for the read delay to
// elapse.
const waitStep = 10 * time.Millisecond

// Opts holds the configuration options for the device.
type Opts struct {
	// Type is the sensor variant. Leave Unknown to detect it on the first read.
	Type Variant
	// ReadDelay is the minimum interval between two reads of the sensor. 0
	// uses the variant's datasheet value.
	ReadDelay time.Duration
	// HumidityOffset is added to every humidity reading, in %RH.
	HumidityOffset float64
	// TemperatureOffset is added to every temperature reading, in °C.
	TemperatureOffset float64
	// SuppressError keeps the previous values when a read fails instead of
	// replacing them with InvalidValue.
	SuppressError bool
	// WaitForRead makes Read block until the read delay has elapsed instead
	// of returning the cached values.
	WaitForRead bool
	// InvalidValue replaces the values after a failed read. 0 means
	// DefaultInvalidValue; math.NaN() is accepted.
	InvalidValue float64
	// Platform provides timing and scheduling. nil means Host.
	Platform Platform
}

// DefaultOpts holds the default configuration options for the device.
var DefaultOpts = Opts{
	InvalidValue: DefaultInvalidValue,
}

// Dev is a handle to a DHT11 or DHT22 sensor on a GPIO pin.
type Dev struct {
	mu  sync.Mutex
	pin gpio.PinIO
	p   Platform
	dec decoder

	variant      Variant
	readDelay    time.Duration
	delayDerived bool
	humOffset    float64
	tempOffset   float64
	suppress     bool
	waitForRead  bool
	invalid      float64

	humidity    float64
	temperature float64
	lastRead    time.Duration
	hasRead     bool
	lastErr     error

	stop chan struct{}
	wg   sync.WaitGroup
}

// New returns a Dev reading the sensor on pin p. The pin is driven high, the
// bus idle state. The Opts can be nil.
func New(p gpio.PinIO, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if !opts.Type.valid() {
		return nil, fmt.Errorf("dhtxx: invalid sensor type %d", opts.Type)
	}
	pf := opts.Platform
	if pf == nil {
		pf = Host
	}
	invalid := opts.InvalidValue
	if invalid == 0 {
		invalid = DefaultInvalidValue
	}
	d := &Dev{
		pin:         p,
		p:           pf,
		dec:         decoder{pin: p, p: pf},
		variant:     opts.Type,
		readDelay:   opts.ReadDelay,
		humOffset:   opts.HumidityOffset,
		tempOffset:  opts.TemperatureOffset,
		suppress:    opts.SuppressError,
		waitForRead: opts.WaitForRead,
		invalid:     invalid,
		humidity:    invalid,
		temperature: invalid,
	}
	if err := p.Out(gpio.High); err != nil {
		return nil, fmt.Errorf("dhtxx: pin out high: %w", err)
	}
	return d, nil
}

// NewByName is New with the pin looked up in the gpioreg registry. host.Init
// must have been called.
func NewByName(name string, opts *Opts) (*Dev, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("dhtxx: unknown pin %q", name)
	}
	return New(p, opts)
}

func (d *Dev) String() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.variant.String() + "{" + d.pin.String() + "}"
}

// Type returns the configured or detected variant.
func (d *Dev) Type() Variant {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.variant
}

// SetType sets the sensor variant. Unknown restarts detection on the next
// read. Values other than Unknown, DHT11 and DHT22 are ignored.
func (d *Dev) SetType(v Variant) {
	if !v.valid() {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.variant = v
	if d.delayDerived {
		d.readDelay = 0
		d.delayDerived = false
	}
}

// ReadDelay returns the minimum interval between reads. It is 0 until the
// first read when neither Opts.ReadDelay nor SetReadDelay provided one.
func (d *Dev) ReadDelay() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readDelay
}

// SetReadDelay overrides the minimum interval between reads. Some sensors
// can be read faster than their datasheet states, at the caller's risk. 0
// restores the variant's default.
func (d *Dev) SetReadDelay(delay time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.readDelay = delay
	d.delayDerived = false
}

// HumidityOffset returns the calibration offset added to humidity, in %RH.
func (d *Dev) HumidityOffset() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.humOffset
}

// SetHumidityOffset sets the calibration offset added to humidity, in %RH.
func (d *Dev) SetHumidityOffset(offset float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.humOffset = offset
}

// TemperatureOffset returns the calibration offset added to temperature, in
// °C.
func (d *Dev) TemperatureOffset() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tempOffset
}

// SetTemperatureOffset sets the calibration offset added to temperature, in
// °C.
func (d *Dev) SetTemperatureOffset(offset float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tempOffset = offset
}

// SuppressError reports whether failed reads keep the previous values.
func (d *Dev) SuppressError() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.suppress
}

// SetSuppressError controls whether a failed read keeps the previous values.
// The error is returned either way.
func (d *Dev) SetSuppressError(suppress bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.suppress = suppress
}

// WaitForRead reports whether Read blocks for the read delay.
func (d *Dev) WaitForRead() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.waitForRead
}

// SetWaitForRead controls whether Read blocks until the read delay has
// elapsed.
func (d *Dev) SetWaitForRead(wait bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.waitForRead = wait
}

// Humidity returns the relative humidity of the last read, in %RH.
func (d *Dev) Humidity() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.humidity
}

// Temperature returns the temperature of the last read, in °C.
func (d *Dev) Temperature() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.temperature
}

// LastError returns the result of the last read attempt that reached the
// sensor.
func (d *Dev) LastError() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastErr
}

// Read reads the sensor and updates Humidity and Temperature.
//
// If the read delay has not elapsed since the previous read, Read either
// waits (WaitForRead) or returns the previous result without touching the
// sensor. While the variant is Unknown, a DHT22 then a DHT11 wakeup is
// tried and the first one that succeeds is kept.
//
// The returned error is nil or an Error, except for pin I/O failures.
func (d *Dev) Read() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.read(false, d.waitForRead)
}

// read attempts a measurement. Unless force is set, a call within the read
// delay either sleeps until it elapses (wait) or returns the previous result.
func (d *Dev) read(force, wait bool) error {
	if d.readDelay == 0 {
		d.readDelay = d.variant.readDelay()
		d.delayDerived = true
	}
	if d.variant == Unknown {
		return d.detect()
	}
	if !force && d.hasRead {
		for elapsed := d.p.Now() - d.lastRead; elapsed < d.readDelay; elapsed = d.p.Now() - d.lastRead {
			if !wait {
				return d.lastErr
			}
			d.p.Yield()
			d.p.Sleep(min(d.readDelay-elapsed, waitStep))
		}
	}
	return d.measure(d.variant)
}

// detect probes both variants. On failure the variant stays Unknown and the
// error of the last probe is returned.
func (d *Dev) detect() error {
	var err error
	s := probeIdle.next(false)
	for s.probing() {
		err = d.measure(s.variant())
		s = s.next(err == nil)
	}
	d.variant = s.variant()
	return err
}

// measure does one frame attempt with the timing and scaling of v.
func (d *Dev) measure(v Variant) error {
	f, err := d.dec.readFrame(v.wakeup())
	d.lastRead = d.p.Now()
	d.hasRead = true
	if err == nil && !f.checksumOK() {
		err = ErrChecksum
	}
	d.lastErr = err
	if err != nil {
		if !d.suppress {
			d.humidity = d.invalid
			d.temperature = d.invalid
		}
		return err
	}
	d.humidity = math.Max(0, math.Min(100, f.humidity(v)+d.humOffset))
	d.temperature = f.temperature(v) + d.tempOffset
	return nil
}

// PowerUp drives the bus high and does one read, ignoring the read delay, to
// flush any frame the sensor had half sent.
func (d *Dev) PowerUp() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.pin.Out(gpio.High); err != nil {
		return fmt.Errorf("dhtxx: power up: %w", err)
	}
	return d.read(true, false)
}

// PowerDown drives the bus low. Sensors powered from the data line stop.
func (d *Dev) PowerDown() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.pin.Out(gpio.Low); err != nil {
		return fmt.Errorf("dhtxx: power down: %w", err)
	}
	return nil
}

// Sense implements physic.SenseEnv. It reads the sensor as Read does and
// returns the current humidity and temperature. The pressure is always 0.
func (d *Dev) Sense(e *physic.Env) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sense(e, d.waitForRead)
}

func (d *Dev) sense(e *physic.Env, wait bool) error {
	e.Temperature = 0
	e.Pressure = 0
	e.Humidity = 0
	if err := d.read(false, wait); err != nil {
		return err
	}
	e.Humidity = physic.RelativeHumidity(math.Round(d.humidity * float64(physic.PercentRH)))
	e.Temperature = physic.ZeroCelsius + physic.Temperature(math.Round(d.temperature*float64(physic.Celsius)))
	return nil
}

// SenseContinuous implements physic.SenseEnv. It returns a channel receiving
// a fresh measurement every interval; failed reads are skipped. The interval
// cannot be shorter than the read delay. A tick arriving slightly before the
// read delay has elapsed waits for it. Call Halt() to stop.
func (d *Dev) SenseContinuous(interval time.Duration) (<-chan physic.Env, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop != nil {
		return nil, errors.New("dhtxx: SenseContinuous already running")
	}
	minInterval := d.readDelay
	if minInterval == 0 {
		minInterval = d.variant.readDelay()
	}
	if interval < minInterval {
		return nil, fmt.Errorf("dhtxx: interval %s is shorter than the read delay %s", interval, minInterval)
	}

	d.stop = make(chan struct{})
	ch := make(chan physic.Env, 16)
	d.wg.Add(1)
	go d.senseLoop(interval, d.stop, ch)
	return ch, nil
}

func (d *Dev) senseLoop(interval time.Duration, stop <-chan struct{}, ch chan<- physic.Env) {
	defer d.wg.Done()
	defer close(ch)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			e := physic.Env{}
			d.mu.Lock()
			err := d.sense(&e, true)
			d.mu.Unlock()
			if err != nil {
				continue
			}
			select {
			case ch <- e:
			case <-stop:
				return
			}
		}
	}
}

// Precision implements physic.SenseEnv. Both variants report tenths.
func (d *Dev) Precision(e *physic.Env) {
	e.Temperature = physic.Celsius / 10
	e.Pressure = 0
	e.Humidity = physic.PercentRH / 10
}

// Halt implements conn.Resource. It stops a running SenseContinuous().
func (d *Dev) Halt() error {
	d.mu.Lock()
	stop := d.stop
	d.stop = nil
	d.mu.Unlock()
	if stop != nil {
		close(stop)
		d.wg.Wait()
	}
	return nil
}

var _ conn.Resource = &Dev{}
var _ physic.SenseEnv = &Dev{}
