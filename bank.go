package rtc

// Register names one word of the RTC register block or of the reset, clock and
// power control registers the RTC depends on. A Bank maps these names onto the
// concrete hardware layout.
type Register uint8

const (
	Control       Register = iota // control register (WUCKSEL, WUTE, WUTIE, OSEL, POL)
	Status                        // initialization and status register (INIT, INITF, WUTWF, WUTF)
	WriteProtect                  // write protection key register
	Prescaler                     // asynchronous and synchronous prescaler register
	TimeReg                       // calendar time register, packed BCD
	DateReg                       // calendar date register, packed BCD
	WakeupReload                  // wakeup timer auto-reload register
	SubSecond                     // sub-second down-counter
	ClockStatus                   // clock control/status register (LSION, LSIRDY)
	ClockControl                  // clock control register (HSEON, HSERDY, HSEBYP)
	BackupDomain                  // backup domain control register (LSE, RTCSEL, RTCEN, BDRST)
	PeriphClock                   // peripheral clock enable register (PWREN)
	PowerControl                  // power control register (DBP)
)

// A Bank gives the driver word access to the named registers. Reads and writes
// of a whole register are atomic; the driver never assumes anything about the
// address layout behind the names. The memory-mapped implementation for real
// hardware lives in the stm32 subpackage; tests substitute a simulated bank.
type Bank interface {
	Read(r Register) uint32
	Write(r Register, v uint32)
}

// An InterruptController routes the RTC wakeup event to an external interrupt
// line. On STM32 parts this is the EXTI block plus the NVIC enable for the
// RTC_WKUP vector.
type InterruptController interface {
	// Unmask enables delivery of events on the given line.
	Unmask(line uint8)
	// SetRisingEdge configures the line to trigger on a rising edge.
	SetRisingEdge(line uint8)
	// ClearPending acknowledges a pending event on the line.
	ClearPending(line uint8)
}

// WakeupLine is the external interrupt line the RTC wakeup event is wired to.
const WakeupLine uint8 = 20

func setBits(b Bank, r Register, bits uint32) {
	b.Write(r, b.Read(r)|bits)
}

func clearBits(b Bank, r Register, bits uint32) {
	b.Write(r, b.Read(r)&^bits)
}

func hasBits(b Bank, r Register, bits uint32) bool {
	return b.Read(r)&bits != 0
}

// replaceBits rewrites the masked field of a register, leaving the other bits
// untouched.
func replaceBits(b Bank, r Register, mask, bits uint32) {
	b.Write(r, b.Read(r)&^mask|bits&mask)
}
