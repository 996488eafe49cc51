//go:build stm32f4

// Package stm32 adapts the memory-mapped RTC, RCC, PWR and EXTI blocks to the
// driver's Bank and InterruptController interfaces. The F3-style RTC block is
// shared by the F4 parts TinyGo supports, so the adapter is gated on those.
package stm32

import (
	"device/stm32"
	"runtime/interrupt"
	"runtime/volatile"

	rtc "github.com/marekjastrzebski/stm32f3-rtc"
)

// Bank is the memory-mapped register bank of the on-chip RTC.
type Bank struct{}

func (Bank) Read(r rtc.Register) uint32 { return reg(r).Get() }

func (Bank) Write(r rtc.Register, v uint32) { reg(r).Set(v) }

func reg(r rtc.Register) *volatile.Register32 {
	switch r {
	case rtc.Control:
		return &stm32.RTC.CR
	case rtc.Status:
		return &stm32.RTC.ISR
	case rtc.WriteProtect:
		return &stm32.RTC.WPR
	case rtc.Prescaler:
		return &stm32.RTC.PRER
	case rtc.TimeReg:
		return &stm32.RTC.TR
	case rtc.DateReg:
		return &stm32.RTC.DR
	case rtc.WakeupReload:
		return &stm32.RTC.WUTR
	case rtc.SubSecond:
		return &stm32.RTC.SSR
	case rtc.ClockStatus:
		return &stm32.RCC.CSR
	case rtc.ClockControl:
		return &stm32.RCC.CR
	case rtc.BackupDomain:
		return &stm32.RCC.BDCR
	case rtc.PeriphClock:
		return &stm32.RCC.APB1ENR
	case rtc.PowerControl:
		return &stm32.PWR.CR
	}
	return nil
}

// Exti routes RTC wakeup events through the EXTI block.
type Exti struct{}

func (Exti) Unmask(line uint8) { stm32.EXTI.IMR.SetBits(1 << line) }

func (Exti) SetRisingEdge(line uint8) { stm32.EXTI.RTSR.SetBits(1 << line) }

// ClearPending acknowledges the line; the pending register is write-1-to-clear.
func (Exti) ClearPending(line uint8) { stm32.EXTI.PR.Set(1 << line) }

var device *rtc.Device

// New returns the device for the on-chip RTC and installs its wakeup vector.
// There is only one RTC per chip; repeated calls return the same device.
func New() *rtc.Device {
	if device == nil {
		device = rtc.New(Bank{})
		interrupt.New(stm32.IRQ_RTC_WKUP, wakeupISR).Enable()
	}
	return device
}

func wakeupISR(interrupt.Interrupt) {
	device.ServiceWakeup()
}
