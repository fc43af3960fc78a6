// Package bcd implements two-digit packed binary-coded decimal values.
// The high nibble holds the tens digit and the low nibble the ones digit.
package bcd

import (
	"fmt"
	"strconv"
	"strings"
)

// Byte is a packed two-digit decimal value, e.g. 0x23 is 23.
type Byte uint8

// Noon is 12 in packed form, used for 12-hour conversion.
const Noon Byte = 0x12

// FromInt packs n (taken modulo 100) into a Byte.
func FromInt(n int) Byte {
	n %= 100
	if n < 0 {
		n += 100
	}
	return Byte(n/10<<4 | n%10)
}

// Tens returns the high nibble.
func (b Byte) Tens() uint8 { return uint8(b) >> 4 }

// Ones returns the low nibble.
func (b Byte) Ones() uint8 { return uint8(b) & 0x0F }

// Valid reports whether both nibbles are decimal digits.
func (b Byte) Valid() bool { return b.Tens() <= 9 && b.Ones() <= 9 }

// Int returns the decimal value. Invalid nibbles are taken at face value.
func (b Byte) Int() int { return int(b.Tens())*10 + int(b.Ones()) }

// Add returns b+o with decimal carry between nibbles, wrapping at 100.
func (b Byte) Add(o Byte) Byte {
	ones := int(b.Ones()) + int(o.Ones())
	carry := 0
	if ones > 9 {
		ones -= 10
		carry = 1
	}
	tens := (int(b.Tens()) + int(o.Tens()) + carry) % 10
	return Byte(tens<<4 | ones)
}

// Sub returns b-o with decimal borrow between nibbles, wrapping below 0.
func (b Byte) Sub(o Byte) Byte {
	ones := int(b.Ones()) - int(o.Ones())
	borrow := 0
	if ones < 0 {
		ones += 10
		borrow = 1
	}
	tens := int(b.Tens()) - int(o.Tens()) - borrow
	if tens < 0 {
		tens += 10
	}
	return Byte(tens<<4 | ones)
}

// String formats the value as two digits.
func (b Byte) String() string {
	return fmt.Sprintf("%02x", uint8(b))
}

// To12Hour converts a 24-hour packed hour to 12-hour form.
// 0x13-0x23 become 0x01-0x11, 0x00 becomes 0x12, and 0x01-0x12 are unchanged.
// Values outside 0x00-0x23 are returned as-is.
func To12Hour(h Byte) Byte {
	switch {
	case !h.Valid() || h > 0x23:
		return h
	case h >= 0x13:
		return h.Sub(Noon) // PM
	case h >= Noon:
		return h // noon
	case h >= 0x01:
		return h // AM
	default:
		return h.Add(Noon) // midnight
	}
}

// ParseClock parses "HH:MM" (24-hour) into packed hour and minute.
func ParseClock(s string) (hour, minute Byte, err error) {
	hs, ms, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, 0, fmt.Errorf("clock %q: want HH:MM", s)
	}
	h, err := strconv.Atoi(hs)
	if err != nil || h < 0 || h > 23 {
		return 0, 0, fmt.Errorf("clock %q: bad hour", s)
	}
	m, err := strconv.Atoi(ms)
	if err != nil || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("clock %q: bad minute", s)
	}
	return FromInt(h), FromInt(m), nil
}
