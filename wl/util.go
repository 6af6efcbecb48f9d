package wl

import (
	"encoding/binary"
	"unsafe"
)

// hostByteOrder is the native byte order. Wayland arrays (toplevel states,
// wm capabilities) are sequences of native-endian 32-bit words.
var hostByteOrder binary.ByteOrder

func init() {
	var endianCheck uint32 = 0x1
	b := (*[4]byte)(unsafe.Pointer(&endianCheck))
	if b[0] == 1 {
		hostByteOrder = binary.LittleEndian
	} else {
		hostByteOrder = binary.BigEndian
	}
}
