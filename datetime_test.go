package rtc

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestBcdRoundTrip(t *testing.T) {
	c := qt.New(t)
	for v := uint8(0); v <= 99; v++ {
		c.Assert(bcdEncode(v).decode(), qt.Equals, v)
	}
}

func TestBcdZero(t *testing.T) {
	c := qt.New(t)
	c.Assert(bcdEncode(0), qt.Equals, bcd{})
	c.Assert(bcd{}.decode(), qt.Equals, uint8(0))
}

func TestBcdDigits(t *testing.T) {
	c := qt.New(t)
	c.Assert(bcdEncode(59), qt.Equals, bcd{tens: 5, units: 9})
	c.Assert(bcdEncode(10), qt.Equals, bcd{tens: 1, units: 0})
	c.Assert(bcdEncode(7), qt.Equals, bcd{tens: 0, units: 7})
}

func TestTimePacking(t *testing.T) {
	c := qt.New(t)
	for hour := uint8(0); hour < 24; hour++ {
		for _, minute := range []uint8{0, 1, 9, 10, 30, 59} {
			for _, second := range []uint8{0, 5, 42, 59} {
				in := Time{Hour: hour, Minute: minute, Second: second}
				c.Assert(unpackTime(packTime(in)), qt.Equals, in)
			}
		}
	}
}

func TestDatePacking(t *testing.T) {
	c := qt.New(t)
	dates := []Date{
		{Day: 1, Month: 1, Year: 2000},
		{Day: 1, Month: 1, Year: 2024},
		{Day: 29, Month: 2, Year: 2024},
		{Day: 31, Month: 12, Year: 2099},
		{Day: 15, Month: 6, Year: 2154},
	}
	for _, in := range dates {
		c.Assert(unpackDate(packDate(in)), qt.Equals, in)
	}
}

func TestDateYearClamp(t *testing.T) {
	c := qt.New(t)
	// Anything the two-digit year field cannot hold is stored as 2000, not
	// the nearest representable year.
	for _, year := range []uint16{1999, 1970, 0, 2155, 9999} {
		in := Date{Day: 1, Month: 1, Year: year}
		c.Assert(unpackDate(packDate(in)), qt.Equals, Date{Day: 1, Month: 1, Year: 2000})
	}
}

func TestMonthTensFlag(t *testing.T) {
	c := qt.New(t)
	for month := uint8(1); month <= 12; month++ {
		packed := packDate(Date{Day: 1, Month: month, Year: 2024})
		c.Assert(packed&dateMonthTens != 0, qt.Equals, month >= 10,
			qt.Commentf("month %d", month))
	}
}

func TestSubSecondMillis(t *testing.T) {
	c := qt.New(t)
	tests := []struct {
		count   uint32
		predivS uint32
		want    uint32
	}{
		{count: 999, predivS: 999, want: 0},
		{count: 500, predivS: 999, want: 499},
		{count: 0, predivS: 999, want: 999},
		{count: 255, predivS: 255, want: 0},
		{count: 0, predivS: 255, want: 996},
		// A zero synchronous prescaler (the HSE default) carries no
		// sub-second information.
		{count: 0, predivS: 0, want: 0},
		{count: 42, predivS: 0, want: 0},
		// Counter above the prescaler means the prescaler changed under us.
		{count: 1000, predivS: 999, want: 0},
	}
	for _, tt := range tests {
		c.Assert(subSecondMillis(tt.count, tt.predivS), qt.Equals, tt.want,
			qt.Commentf("count=%d predivS=%d", tt.count, tt.predivS))
	}
}
