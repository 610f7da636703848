// Package osinfo reports the operating system family, release and byte order.
package osinfo

import "encoding/binary"

const (
	BigEndian    = "BE"
	LittleEndian = "LE"
)

type Info struct {
	Type       string `json:"type"`
	Release    string `json:"release"`
	Endianness string `json:"endianness"`
}

// Endianness reports the byte order of the running machine.
func Endianness() string {
	if binary.NativeEndian.Uint16([]byte{0x00, 0x01}) == 0x0001 {
		return BigEndian
	}
	return LittleEndian
}

// Collect gathers Type, Release and Endianness.
func Collect() (Info, error) {
	typ, err := Type()
	if err != nil {
		return Info{}, err
	}
	rel, err := Release()
	if err != nil {
		return Info{}, err
	}
	return Info{Type: typ, Release: rel, Endianness: Endianness()}, nil
}
