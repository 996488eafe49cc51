package rtc

// Division selects the clock feeding the wakeup down-counter. The zero value
// is the 1 Hz tick from the calendar prescaler chain, so a zero WakeupConfig
// counts seconds.
type Division uint8

const (
	// NoDivision counts 1 Hz calendar ticks, one per second.
	NoDivision Division = iota
	// NoDivisionOffset counts 1 Hz ticks with 0x10000 added to the reload,
	// extending the period beyond the 16-bit reload range.
	NoDivisionOffset
	// Div2 counts the RTC clock divided by 2.
	Div2
	// Div4 counts the RTC clock divided by 4.
	Div4
	// Div8 counts the RTC clock divided by 8.
	Div8
	// Div16 counts the RTC clock divided by 16.
	Div16
)

// bits returns the clock-select field value for the division.
func (dv Division) bits() uint32 {
	switch dv {
	case Div16:
		return 0b000
	case Div8:
		return 0b001
	case Div4:
		return 0b010
	case Div2:
		return 0b011
	case NoDivisionOffset:
		return 0b110
	default:
		return 0b100
	}
}

// Output selects which RTC event drives the alarm output pin.
type Output uint8

const (
	OutputDisabled Output = iota
	OutputAlarmA
	OutputAlarmB
	OutputWakeup
)

// Polarity selects the active level of the alarm output pin.
type Polarity uint8

const (
	PolarityHigh Polarity = iota
	PolarityLow
)

// WakeupConfig describes one wakeup timer setup, consumed by EnableWakeup.
// The timer fires every Reload+1 ticks of the selected clock and auto-reloads.
// With Interrupt set the wakeup event is also delivered through the connected
// interrupt controller; Output and Polarity then configure the alarm pin.
type WakeupConfig struct {
	Division  Division
	Reload    uint16
	Interrupt bool
	Output    Output
	Polarity  Polarity
}

// ConnectInterrupt registers the controller the wakeup event is routed
// through and the handler invoked on each wakeup. Routing the event line
// (rising edge trigger plus unmask) happens once, immediately, and is
// independent of the timer being enabled or disabled. Call this before
// EnableWakeup with Interrupt set; the handler slot is read from the
// interrupt service routine, so don't change it while interrupts are live.
func (d *Device) ConnectInterrupt(ic InterruptController, handler func()) {
	d.irq = ic
	d.handler = handler
	if !d.routed {
		ic.SetRisingEdge(WakeupLine)
		ic.Unmask(WakeupLine)
		d.routed = true
	}
}

// EnableWakeup configures and starts the wakeup timer. Calling it on a
// running timer is safe: the leading disable-and-wait step reopens the reload
// register, so the new configuration replaces the old one cleanly.
func (d *Device) EnableWakeup(cfg WakeupConfig) error {
	if cfg.Interrupt && d.irq == nil {
		return ErrNoInterrupt
	}

	// Stop the counter and wait until the hardware opens the reload register.
	clearBits(d.bank, Control, ctrlWute)
	if !d.waitFor(func() bool { return hasBits(d.bank, Status, statWutwf) }) {
		return ErrWakeupBusy
	}

	if err := d.modify(func() {
		replaceBits(d.bank, Control, ctrlWucksel, cfg.Division.bits())
	}); err != nil {
		return err
	}

	d.unlock()
	if cfg.Interrupt {
		setBits(d.bank, Control, ctrlWutie)
		replaceBits(d.bank, Control, ctrlOsel|ctrlPol,
			uint32(cfg.Output)<<oselPos|uint32(cfg.Polarity)<<polPos)
	} else {
		clearBits(d.bank, Control, ctrlWutie)
	}
	replaceBits(d.bank, WakeupReload, wakeupReloadMask, uint32(cfg.Reload))
	setBits(d.bank, Control, ctrlWute)
	clearBits(d.bank, Status, statWutf)
	d.lock()

	// Wait for the reload register to close again, confirming the timer took
	// the new configuration.
	if !d.waitFor(func() bool { return !hasBits(d.bank, Status, statWutwf) }) {
		return ErrWakeupBusy
	}
	return nil
}

// EnableWakeupEvery starts a plain periodic wakeup every secs seconds, up to
// one day. A zero period or one above the one-day ceiling is silently
// ignored, leaving the timer as it was.
func (d *Device) EnableWakeupEvery(secs uint32) error {
	const day = 24 * 60 * 60
	if secs == 0 || secs > day {
		return nil
	}
	cfg := WakeupConfig{Division: NoDivision, Reload: uint16(secs - 1)}
	if secs > 0x10000 {
		cfg.Division = NoDivisionOffset
		cfg.Reload = uint16(secs - 1 - 0x10000)
	}
	return d.EnableWakeup(cfg)
}

// DisableWakeup stops the wakeup timer, disables its interrupt and clears a
// pending fired flag.
func (d *Device) DisableWakeup() {
	d.unlock()
	clearBits(d.bank, Control, ctrlWute|ctrlWutie)
	clearBits(d.bank, Status, statWutf)
	d.lock()
}

// ServiceWakeup is the wakeup interrupt service body; the platform layer
// calls it from the RTC wakeup vector. It invokes the registered handler,
// then clears the peripheral's fired flag and the controller's pending bit,
// in that order, so a missed clear cannot re-trigger. The handler runs on the
// interrupt stack: it must return quickly and must not touch RTC registers,
// which may be mid-way through a protection sequence in the foreground.
func (d *Device) ServiceWakeup() {
	if d.handler != nil {
		d.handler()
	}
	clearBits(d.bank, Status, statWutf)
	if d.irq != nil {
		d.irq.ClearPending(WakeupLine)
	}
}
