package rtc

// Bit layout of the registers named in bank.go, per the STM32F3 reference
// manual (RM0316), RTC and RCC/PWR chapters.
const (
	// Control register
	ctrlWucksel = 0x7 << 0  // wakeup clock division select
	ctrlWute    = 1 << 10   // wakeup timer enable
	ctrlWutie   = 1 << 14   // wakeup timer interrupt enable
	ctrlPol     = 1 << 20   // output polarity
	ctrlOsel    = 0x3 << 21 // output selection
	polPos      = 20
	oselPos     = 21

	// Status register
	statWutwf = 1 << 2  // wakeup timer write allowed
	statInitf = 1 << 6  // initialization mode entered
	statInit  = 1 << 7  // initialization mode request
	statWutf  = 1 << 10 // wakeup timer fired

	// Write protection key register
	keyFirst  = 0xCA // first unlock key
	keySecond = 0x53 // second unlock key
	keyLock   = 0xC0 // any non-key value latches the lock again

	// Prescaler register
	predivSMask = 0x7FFF << 0 // synchronous prescaler, 15 bits
	predivAMask = 0x7F << 16  // asynchronous prescaler, 7 bits
	predivAPos  = 16

	// Time register: seconds in bits 0-6, minutes in 8-14, hours in 16-21,
	// each a BCD tens/units pair, AM/PM flag in bit 22.
	timeFields = 0x7F7F7F

	// Date register: day in bits 0-5, month units in 8-11, month tens flag in
	// bit 12, year in 16-23. The weekday field (bits 13-15) is left alone by
	// the driver.
	dateMonthTens = 1 << 12
	dateFields    = 0xFF1F3F

	// Wakeup reload and sub-second registers
	wakeupReloadMask = 0xFFFF
	subSecondMask    = 0xFFFF

	// Clock control/status register
	csLsiOn    = 1 << 0 // internal low-speed oscillator enable
	csLsiReady = 1 << 1 // internal low-speed oscillator ready

	// Clock control register
	ccHseOn     = 1 << 16 // external high-speed oscillator enable
	ccHseReady  = 1 << 17 // external high-speed oscillator ready
	ccHseBypass = 1 << 18 // external high-speed bypass

	// Backup domain control register
	bdLseOn     = 1 << 0   // external low-speed oscillator enable
	bdLseReady  = 1 << 1   // external low-speed oscillator ready
	bdLseBypass = 1 << 2   // external low-speed bypass
	bdRtcSel    = 0x3 << 8 // RTC clock source selection
	bdRtcEnable = 1 << 15  // RTC clock enable
	bdReset     = 1 << 16  // backup domain software reset

	selLSE = 0x1 << 8 // route LSE into the RTC
	selLSI = 0x2 << 8 // route LSI into the RTC
	selHSE = 0x3 << 8 // route HSE/32 into the RTC

	// Peripheral clock enable register
	pcPwrEnable = 1 << 28 // power interface clock enable

	// Power control register
	pwrDbp = 1 << 8 // disable backup domain write protection
)
