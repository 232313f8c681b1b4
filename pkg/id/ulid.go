// Package id generates and validates ULIDs used as draft identifiers.
package id

import (
	"crypto/rand"
	"encoding/binary"
	"time"
)

// Crockford's Base32 alphabet (no I, L, O, U).
const alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// ULIDLength is the length of an encoded ULID.
const ULIDLength = 26

// NewULID returns a 26-character ULID: 48 bits of millisecond time followed
// by 80 random bits, so ids sort by creation time.
func NewULID() string {
	return newULID(time.Now())
}

func newULID(t time.Time) string {
	var raw [16]byte
	ms := uint64(t.UnixMilli())
	raw[0] = byte(ms >> 40)
	raw[1] = byte(ms >> 32)
	raw[2] = byte(ms >> 24)
	raw[3] = byte(ms >> 16)
	raw[4] = byte(ms >> 8)
	raw[5] = byte(ms)
	if _, err := rand.Read(raw[6:]); err != nil {
		binary.BigEndian.PutUint64(raw[8:], uint64(t.UnixNano()))
	}
	return encode(raw)
}

// encode writes the 128-bit value as 26 base32 digits, most significant
// first. The leading digit carries only 3 bits.
func encode(raw [16]byte) string {
	hi := binary.BigEndian.Uint64(raw[:8])
	lo := binary.BigEndian.Uint64(raw[8:])

	var out [ULIDLength]byte
	for i := ULIDLength - 1; i >= 0; i-- {
		out[i] = alphabet[lo&0x1F]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out[:])
}

// Valid reports whether s is a well-formed ULID.
func Valid(s string) bool {
	if len(s) != ULIDLength || s[0] > '7' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

// Time returns the creation time encoded in a valid ULID.
func Time(s string) (time.Time, bool) {
	if !Valid(s) {
		return time.Time{}, false
	}
	var ms uint64
	for i := range 10 {
		ms = ms<<5 | uint64(digitValue(s[i]))
	}
	return time.UnixMilli(int64(ms)), true
}

func isDigit(c byte) bool {
	return digitValue(c) >= 0
}

func digitValue(c byte) int {
	for i := 0; i < len(alphabet); i++ {
		if alphabet[i] == c {
			return i
		}
	}
	return -1
}
