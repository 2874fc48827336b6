// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dhtxx

import (
	"runtime"
	"runtime/debug"
	"time"

	"periph.io/x/host/v3/cpu"
)

// Platform is the timing and scheduling environment of the driver.
//
// Tests substitute a virtual clock so a scripted pin can replay pulse trains
// deterministically.
type Platform interface {
	// Now returns a monotonic time since an arbitrary origin.
	Now() time.Duration
	// Delay busy-waits for d. Used for the wakeup pulse.
	Delay(d time.Duration)
	// Sleep blocks for d, letting other goroutines run.
	Sleep(d time.Duration)
	// Yield lets pending scheduler work run.
	Yield()
	// DisablePreemption enters the bit-sampling critical section. The
	// returned function leaves it.
	DisablePreemption() (restore func())
}

// Host is the Platform backed by the running process.
var Host Platform = hostPlatform{}

var epoch = time.Now()

type hostPlatform struct{}

func (hostPlatform) Now() time.Duration {
	return time.Since(epoch)
}

func (hostPlatform) Delay(d time.Duration) {
	cpu.Nanospin(d)
}

func (hostPlatform) Sleep(d time.Duration) {
	time.Sleep(d)
}

func (hostPlatform) Yield() {
	runtime.Gosched()
}

// DisablePreemption pins the goroutine to its OS thread and stops the garbage
// collector, the closest a user space Go program gets to masking interrupts.
func (hostPlatform) DisablePreemption() func() {
	runtime.LockOSThread()
	gcPercent := debug.SetGCPercent(-1)
	return func() {
		debug.SetGCPercent(gcPercent)
		runtime.UnlockOSThread()
	}
}
