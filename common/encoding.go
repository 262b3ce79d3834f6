package common

import (
	"encoding/binary"
	"math"
	"unsafe"
)

var littleEndian = binary.LittleEndian
var IsLittleEndian = isLittleEndian()

func isLittleEndian() bool {
	val := uint64(123456)
	buffer := make([]byte, 8)
	binary.LittleEndian.PutUint64(buffer, val)
	valRead := *(*uint64)(unsafe.Pointer(&buffer[0]))
	return val == valRead
}

// Fixed-layout row slots are written and read in place at a schema-computed
// offset, little-endian on the wire regardless of host order.

func PutUint32ToBufferLE(buffer []byte, offset int, v uint32) {
	if IsLittleEndian {
		// nolint: gosec
		*(*uint32)(unsafe.Pointer(&buffer[offset])) = v
		return
	}
	littleEndian.PutUint32(buffer[offset:], v)
}

func PutUint64ToBufferLE(buffer []byte, offset int, v uint64) {
	if IsLittleEndian {
		// nolint: gosec
		*(*uint64)(unsafe.Pointer(&buffer[offset])) = v
		return
	}
	littleEndian.PutUint64(buffer[offset:], v)
}

func PutInt64ToBufferLE(buffer []byte, offset int, v int64) {
	PutUint64ToBufferLE(buffer, offset, uint64(v))
}

func PutFloat64ToBufferLE(buffer []byte, offset int, v float64) {
	PutUint64ToBufferLE(buffer, offset, math.Float64bits(v))
}

func ReadUint32FromBufferLE(buffer []byte, offset int) uint32 {
	if IsLittleEndian {
		// nolint: gosec
		return *(*uint32)(unsafe.Pointer(&buffer[offset]))
	}
	return littleEndian.Uint32(buffer[offset:])
}

func ReadUint64FromBufferLE(buffer []byte, offset int) uint64 {
	if IsLittleEndian {
		// If architecture is little endian we can simply cast to a pointer
		// nolint: gosec
		return *(*uint64)(unsafe.Pointer(&buffer[offset]))
	}
	return littleEndian.Uint64(buffer[offset:])
}

func ReadInt64FromBufferLE(buffer []byte, offset int) int64 {
	return int64(ReadUint64FromBufferLE(buffer, offset))
}

func ReadFloat64FromBufferLE(buffer []byte, offset int) float64 {
	return math.Float64frombits(ReadUint64FromBufferLE(buffer, offset))
}
