package wlp

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// The wire format is host-endian: both ends of the socket live on the same
// machine and share a byte order.
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

// Wire fixed-point values are signed 24.8.
func fixedToFloat64(fixed int32) float64 {
	i := ((1023 + 44) << 52) + (1 << 51) + uint64(fixed)
	return math.Float64frombits(i) - (3 << 43)
}

func float64ToFixed(float float64) int32 {
	float += 3 << 43
	return int32(math.Float64bits(float))
}

// DecodeHeader splits a message header into its object id, opcode, and total
// message size (header included).
func DecodeHeader(buf []byte) (id uint32, opcode uint16, size int) {
	id = hostByteOrder.Uint32(buf[:4])
	arg2 := hostByteOrder.Uint32(buf[4:8])
	opcode = uint16(arg2 & 0xFFFF)
	size = int(arg2 >> 16)
	return
}
