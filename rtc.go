// Package rtc implements a driver for the real-time clock peripheral of STM32F3-series
// microcontrollers, providing clock source selection, calendar time and date access,
// sub-second reads, and the periodic wakeup timer with interrupt dispatch. The
// peripheral itself also supports alarms A/B, timestamping and calibration, but those
// features remain unimplemented.
//
// The driver talks to the hardware through the Bank interface, so the same core runs
// against the memory-mapped registers (see the stm32 subpackage) or a simulated bank
// in tests.
//
// Reference manual: https://www.st.com/resource/en/reference_manual/rm0316-stm32f303xbcde-stm32f303x68-stm32f328x8-stm32f358xc-stm32f398xe-advanced-armbased-mcus-stmicroelectronics.pdf
package rtc

import "errors"

// Errors returned when a bounded busy-wait runs out of polls. With the default
// unbounded polling these are never returned; the driver blocks until the
// hardware responds, matching the peripheral's own contract.
var (
	ErrClockNotReady = errors.New("rtc: clock source not ready")
	ErrBackupDomain  = errors.New("rtc: backup domain write access not granted")
	ErrInitMode      = errors.New("rtc: init mode handshake timed out")
	ErrWakeupBusy    = errors.New("rtc: wakeup reload register not writable")
	ErrNoInterrupt   = errors.New("rtc: no interrupt controller connected")
)

type sourceKind uint8

const (
	sourceLSI sourceKind = iota
	sourceLSE
	sourceHSE
)

// ClockSource selects the oscillator that drives the RTC. Use one of LSI, LSE
// or HSE to construct a value.
type ClockSource struct {
	kind   sourceKind
	bypass bool
}

// LSI selects the internal low-speed oscillator, roughly 40 kHz. No external
// parts needed, but not very accurate.
func LSI() ClockSource { return ClockSource{kind: sourceLSI} }

// LSE selects the external 32.768 kHz low-speed crystal. With bypass set, an
// externally driven signal is expected on the oscillator input instead of a
// crystal.
func LSE(bypass bool) ClockSource { return ClockSource{kind: sourceLSE, bypass: bypass} }

// HSE selects the external high-speed oscillator, divided by 32 before it
// reaches the RTC. With bypass set, an externally driven signal is expected
// instead of a crystal.
func HSE(bypass bool) ClockSource { return ClockSource{kind: sourceHSE, bypass: bypass} }

// Default prescaler pairs for the usual oscillator frequencies. The product
// (a+1)*(s+1) must match the source frequency in Hz for a 1 Hz calendar tick.
const (
	lsiPredivA, lsiPredivS = 39, 999  // 40 kHz internal oscillator
	lsePredivA, lsePredivS = 127, 255 // 32.768 kHz crystal
	hsePredivA, hsePredivS = 0, 0     // board-specific high-speed input
)

// Device drives one RTC peripheral through a register bank. A Device is the
// sole owner of its bank; it provides no internal locking, and the only
// concurrent access it tolerates is the wakeup interrupt service routine
// (ServiceWakeup) racing foreground reads.
type Device struct {
	bank      Bank
	source    ClockSource
	predivA   uint8
	predivS   uint16
	overrode  bool
	started   bool
	pollLimit uint

	irq     InterruptController
	handler func()
	routed  bool
}

// New returns a Device driving the given register bank. The clock source
// defaults to LSI with its matching prescalers, so a device can be started
// without any further setup.
func New(bank Bank) *Device {
	d := &Device{bank: bank}
	d.SetClockSource(LSI())
	return d
}

// SetClockSource selects the oscillator to route into the RTC and resets the
// prescalers to that source's defaults, unless SetPrescalers was called
// before. Select the source before overriding prescalers, or the override is
// lost. Must be called before StartClock to take effect.
func (d *Device) SetClockSource(src ClockSource) {
	d.source = src
	if d.overrode {
		return
	}
	switch src.kind {
	case sourceLSI:
		d.predivA, d.predivS = lsiPredivA, lsiPredivS
	case sourceLSE:
		d.predivA, d.predivS = lsePredivA, lsePredivS
	case sourceHSE:
		d.predivA, d.predivS = hsePredivA, hsePredivS
	}
}

// SetPrescalers overrides the source-default prescaler pair. The asynchronous
// prescaler a is 7 bits wide, the synchronous prescaler s 15 bits. An explicit
// override always wins over source defaults.
func (d *Device) SetPrescalers(a uint8, s uint16) {
	d.overrode = true
	d.predivA = a & 0x7F
	d.predivS = s & 0x7FFF
}

// SetPollLimit bounds every hardware busy-wait to at most n polls, turning a
// flag that never asserts into a returned error. The default of zero keeps the
// reference behavior: wait forever, treating an unready clock source as a
// board defect rather than a runtime condition.
func (d *Device) SetPollLimit(n uint) { d.pollLimit = n }

// StartClock brings the RTC up: it enables the selected oscillator and waits
// for it to stabilize, grants backup domain write access, pulses the backup
// domain reset while routing the source into the RTC, and finally writes the
// prescalers under the protection protocol. Calling it again after a
// successful start is a no-op, so the backup domain is not reset twice.
func (d *Device) StartClock() error {
	if d.started {
		return nil
	}
	if err := d.enableClockSource(); err != nil {
		return err
	}
	if err := d.enableBackupAccess(); err != nil {
		return err
	}
	d.enableRTC()
	if err := d.writePrescalers(); err != nil {
		return err
	}
	d.started = true
	return nil
}

// Time returns the current calendar time. The hardware shadows the calendar
// registers, so a single register read is a consistent snapshot and no
// locking is needed.
func (d *Device) Time() Time {
	return unpackTime(d.bank.Read(TimeReg))
}

// SetTime writes a new calendar time under the protection protocol.
func (d *Device) SetTime(t Time) error {
	return d.modify(func() {
		replaceBits(d.bank, TimeReg, timeFields, packTime(t))
	})
}

// Date returns the current calendar date.
func (d *Device) Date() Date {
	return unpackDate(d.bank.Read(DateReg))
}

// SetDate writes a new calendar date under the protection protocol. Years
// outside [2000,2154] are stored as 2000; see Date.
func (d *Device) SetDate(dt Date) error {
	return d.modify(func() {
		replaceBits(d.bank, DateReg, dateFields, packDate(dt))
	})
}

// Milliseconds returns the elapsed milliseconds within the current second,
// derived from the sub-second down-counter and the active synchronous
// prescaler. It reports zero when the synchronous prescaler is zero, as with
// the HSE default pair.
func (d *Device) Milliseconds() uint32 {
	return subSecondMillis(d.bank.Read(SubSecond)&subSecondMask, d.bank.Read(Prescaler)&predivSMask)
}

// waitFor polls until ready reports true. With a poll limit set it gives up
// after that many polls and reports false; otherwise it spins forever.
func (d *Device) waitFor(ready func() bool) bool {
	if d.pollLimit == 0 {
		for !ready() {
		}
		return true
	}
	for i := uint(0); i < d.pollLimit; i++ {
		if ready() {
			return true
		}
	}
	return false
}

// modify runs fn with the calendar registers writable, bracketing it with the
// full protection sequence: unlock, enter init mode, fn, leave init mode,
// lock. The hardware silently ignores writes to protected fields outside this
// bracket, so every structural mutation in the driver goes through here.
func (d *Device) modify(fn func()) error {
	d.unlock()
	if err := d.enterInit(); err != nil {
		d.lock()
		return err
	}
	fn()
	err := d.exitInit()
	d.lock()
	return err
}

// unlock disarms the write protection by writing the two-byte key sequence.
// Any other value written in between re-latches the lock.
func (d *Device) unlock() {
	d.bank.Write(WriteProtect, keyFirst)
	d.bank.Write(WriteProtect, keySecond)
}

// lock re-arms the write protection.
func (d *Device) lock() {
	d.bank.Write(WriteProtect, keyLock)
}

// enterInit requests initialization mode and waits for the hardware to
// confirm entry. If init mode is already requested it does nothing.
func (d *Device) enterInit() error {
	if hasBits(d.bank, Status, statInit) {
		return nil
	}
	setBits(d.bank, Status, statInit)
	if !d.waitFor(func() bool { return hasBits(d.bank, Status, statInitf) }) {
		return ErrInitMode
	}
	return nil
}

// exitInit clears the initialization mode request and waits for the calendar
// to resume.
func (d *Device) exitInit() error {
	clearBits(d.bank, Status, statInit)
	if !d.waitFor(func() bool { return !hasBits(d.bank, Status, statInitf) }) {
		return ErrInitMode
	}
	return nil
}

// enableClockSource switches on the selected oscillator and waits for its
// ready flag.
func (d *Device) enableClockSource() error {
	switch d.source.kind {
	case sourceLSI:
		setBits(d.bank, ClockStatus, csLsiOn)
		if !d.waitFor(func() bool { return hasBits(d.bank, ClockStatus, csLsiReady) }) {
			return ErrClockNotReady
		}
	case sourceLSE:
		bits := uint32(bdLseOn)
		if d.source.bypass {
			bits |= bdLseBypass
		}
		setBits(d.bank, BackupDomain, bits)
		if !d.waitFor(func() bool { return hasBits(d.bank, BackupDomain, bdLseReady) }) {
			return ErrClockNotReady
		}
	case sourceHSE:
		bits := uint32(ccHseOn)
		if d.source.bypass {
			bits |= ccHseBypass
		}
		setBits(d.bank, ClockControl, bits)
		if !d.waitFor(func() bool { return hasBits(d.bank, ClockControl, ccHseReady) }) {
			return ErrClockNotReady
		}
	}
	return nil
}

// enableBackupAccess clocks the power interface and lifts the backup domain
// write protection, which guards the RTC and its clock selection.
func (d *Device) enableBackupAccess() error {
	setBits(d.bank, PeriphClock, pcPwrEnable)
	setBits(d.bank, PowerControl, pwrDbp)
	if !d.waitFor(func() bool { return hasBits(d.bank, PowerControl, pwrDbp) }) {
		return ErrBackupDomain
	}
	return nil
}

// enableRTC pulses the backup domain reset, routes the selected source into
// the RTC clock mux and enables the RTC clock, then releases the reset. The
// order matters: selecting a source on a domain still held in reset is
// exactly what the pulse is for.
func (d *Device) enableRTC() {
	setBits(d.bank, BackupDomain, bdReset)
	var sel uint32
	switch d.source.kind {
	case sourceLSI:
		sel = selLSI
	case sourceLSE:
		sel = selLSE
	case sourceHSE:
		sel = selHSE
	}
	replaceBits(d.bank, BackupDomain, bdRtcSel, sel)
	setBits(d.bank, BackupDomain, bdRtcEnable)
	clearBits(d.bank, BackupDomain, bdReset)
}

// writePrescalers stores the active prescaler pair, under the protection
// protocol like every other structural write.
func (d *Device) writePrescalers() error {
	return d.modify(func() {
		d.bank.Write(Prescaler, uint32(d.predivA)<<predivAPos|uint32(d.predivS))
	})
}
