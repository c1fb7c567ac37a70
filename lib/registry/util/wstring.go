package util

import (
	"unicode/utf16"
	"unsafe"
)

// --------------------------------------------------------------------------
// Wide String Helpers
// --------------------------------------------------------------------------

// WideString encodes s as a NUL-terminated UTF-16 string and returns a
// pointer to its first code unit. The returned memory is owned by the Go
// runtime and stays alive as long as the pointer is reachable, which makes
// it suitable as a message payload for tests and tooling.
func WideString(s string) *uint16 {
	units := utf16.Encode([]rune(s))
	units = append(units, 0)
	return &units[0]
}

// GoString decodes a NUL-terminated UTF-16 string into a Go string.
// It returns the empty string for a nil pointer.
//
// The caller must guarantee that p points at a valid NUL-terminated
// sequence; the function reads until the first zero code unit.
func GoString(p *uint16) string {
	if p == nil {
		return ""
	}

	var units []uint16
	for ptr := unsafe.Pointer(p); ; ptr = unsafe.Add(ptr, unsafe.Sizeof(uint16(0))) {
		u := *(*uint16)(ptr)
		if u == 0 {
			break
		}
		units = append(units, u)
	}

	return string(utf16.Decode(units))
}
