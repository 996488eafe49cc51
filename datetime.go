package rtc

// Time is a calendar time of day as kept by the RTC. Hour is 0-23, Minute and
// Second 0-59; the driver always runs the hardware in 24-hour mode.
type Time struct {
	Hour   uint8
	Minute uint8
	Second uint8
}

// Date is a calendar date as kept by the RTC. Day is 1-31 and Month 1-12.
// The hardware stores the year as a two-digit offset from 2000, so only years
// in [2000,2154] are representable; anything outside that range is written as
// 2000 (a hardware limitation, not a validation choice).
type Date struct {
	Day   uint8
	Month uint8
	Year  uint16
}

// century is the base year of the two-digit year field.
const century = 2000

// bcd is one tens/units digit pair, the transit format between packed register
// fields and plain integers.
type bcd struct {
	tens  uint8
	units uint8
}

// bcdEncode converts a value in 0-99 to its digit pair.
func bcdEncode(v uint8) bcd {
	if v == 0 {
		return bcd{}
	}
	return bcd{tens: v / 10, units: v % 10}
}

// decode converts a digit pair back to its value in 0-99.
func (b bcd) decode() uint8 {
	if b.tens == 0 && b.units == 0 {
		return 0
	}
	return b.tens*10 + b.units
}

// packTime encodes a Time into the time register field layout.
func packTime(t Time) uint32 {
	h := bcdEncode(t.Hour)
	m := bcdEncode(t.Minute)
	s := bcdEncode(t.Second)
	return uint32(s.units) | uint32(s.tens)<<4 |
		uint32(m.units)<<8 | uint32(m.tens)<<12 |
		uint32(h.units)<<16 | uint32(h.tens)<<20
}

// unpackTime decodes one time register snapshot.
func unpackTime(v uint32) Time {
	return Time{
		Hour:   bcd{tens: uint8(v >> 20 & 0x3), units: uint8(v >> 16 & 0xF)}.decode(),
		Minute: bcd{tens: uint8(v >> 12 & 0x7), units: uint8(v >> 8 & 0xF)}.decode(),
		Second: bcd{tens: uint8(v >> 4 & 0x7), units: uint8(v & 0xF)}.decode(),
	}
}

// packDate encodes a Date into the date register field layout. The month tens
// digit is 0 or 1 and occupies a single flag bit. Years outside [2000,2154]
// clamp to 2000.
func packDate(dt Date) uint32 {
	year := dt.Year
	if year < century || year > century+154 {
		year = century
	}
	d := bcdEncode(dt.Day)
	m := bcdEncode(dt.Month)
	y := bcdEncode(uint8(year - century))
	v := uint32(d.units) | uint32(d.tens)<<4 |
		uint32(m.units)<<8 |
		uint32(y.units)<<16 | uint32(y.tens)<<20
	if m.tens > 0 {
		v |= dateMonthTens
	}
	return v
}

// unpackDate decodes one date register snapshot.
func unpackDate(v uint32) Date {
	var monthTens uint8
	if v&dateMonthTens != 0 {
		monthTens = 1
	}
	return Date{
		Day:   bcd{tens: uint8(v >> 4 & 0x3), units: uint8(v & 0xF)}.decode(),
		Month: bcd{tens: monthTens, units: uint8(v >> 8 & 0xF)}.decode(),
		Year:  century + uint16(bcd{tens: uint8(v >> 20 & 0xF), units: uint8(v >> 16 & 0xF)}.decode()),
	}
}

// subSecondMillis derives elapsed milliseconds within the current second from
// the sub-second down-counter, which counts from the synchronous prescaler
// down to zero once per second. With the synchronous prescaler at zero the
// counter carries no information and the result is zero.
func subSecondMillis(count, predivS uint32) uint32 {
	if predivS == 0 || count > predivS {
		return 0
	}
	return 1000 * (predivS - count) / (predivS + 1)
}
