package rtc

import "fmt"

// fakeBank simulates the register bank closely enough to exercise the
// driver's sequencing: the init mode handshake, the wakeup reload handshake,
// oscillator ready flags with configurable latency, and the write protection
// latch that makes the hardware silently drop protected writes while locked.
type fakeBank struct {
	regs [PowerControl + 1]uint32

	// Every write in order, for sequence assertions.
	log []regWrite

	// Raw writes to the protection register in order.
	wprLog []uint8

	unlocked bool
	keyStage int

	// Polls before each oscillator reports ready: 0 is immediately,
	// n is after n status reads, -1 is never.
	lsiReady int
	lseReady int
	hseReady int
}

type regWrite struct {
	reg Register
	val uint32
}

func newFakeBank() *fakeBank {
	return &fakeBank{}
}

func ready(polls *int) bool {
	switch {
	case *polls < 0:
		return false
	case *polls == 0:
		return true
	default:
		*polls--
		return false
	}
}

func (f *fakeBank) Read(r Register) uint32 {
	v := f.regs[r]
	switch r {
	case Status:
		// INITF confirms the INIT request, WUTWF opens while the wakeup
		// timer is stopped.
		if v&statInit != 0 {
			v |= statInitf
		} else {
			v &^= statInitf
		}
		if f.regs[Control]&ctrlWute == 0 {
			v |= statWutwf
		} else {
			v &^= statWutwf
		}
	case ClockStatus:
		if v&csLsiOn != 0 && ready(&f.lsiReady) {
			v |= csLsiReady
		}
	case ClockControl:
		if v&ccHseOn != 0 && ready(&f.hseReady) {
			v |= ccHseReady
		}
	case BackupDomain:
		if v&bdLseOn != 0 && ready(&f.lseReady) {
			v |= bdLseReady
		}
	}
	return v
}

func (f *fakeBank) Write(r Register, v uint32) {
	f.log = append(f.log, regWrite{reg: r, val: v})
	switch r {
	case WriteProtect:
		f.wprLog = append(f.wprLog, uint8(v))
		switch {
		case uint8(v) == keyFirst:
			f.keyStage = 1
			f.unlocked = false
		case f.keyStage == 1 && uint8(v) == keySecond:
			f.keyStage = 0
			f.unlocked = true
		default:
			f.keyStage = 0
			f.unlocked = false
		}
		return
	case Prescaler, TimeReg, DateReg:
		// Calendar-structure writes need the unlock sequence and init mode;
		// otherwise the hardware ignores them without complaint.
		if !f.unlocked || f.regs[Status]&statInit == 0 {
			return
		}
	case WakeupReload:
		// The reload register opens only while unlocked with the timer off.
		if !f.unlocked || f.regs[Control]&ctrlWute != 0 {
			return
		}
	case Control:
		// While locked only the wakeup enable bit reacts.
		if !f.unlocked {
			v = f.regs[Control]&^ctrlWute | v&ctrlWute
		}
	}
	f.regs[r] = v
}

// fakeIRQ records interrupt controller calls. wutfAtClear captures the fired
// flag at the moment ClearPending runs, to pin down the clear ordering.
type fakeIRQ struct {
	bank        *fakeBank
	calls       []string
	wutfAtClear uint32
}

func (f *fakeIRQ) Unmask(line uint8) {
	f.calls = append(f.calls, fmt.Sprintf("unmask %d", line))
}

func (f *fakeIRQ) SetRisingEdge(line uint8) {
	f.calls = append(f.calls, fmt.Sprintf("rising %d", line))
}

func (f *fakeIRQ) ClearPending(line uint8) {
	f.calls = append(f.calls, fmt.Sprintf("clear %d", line))
	if f.bank != nil {
		f.wutfAtClear = f.bank.regs[Status] & statWutf
	}
}
