package storage

import (
	"fmt"
)

// InvalidHandle is never returned by Allocate. A zero handle in a row slot
// means the column has no out-of-line payload.
const InvalidHandle = uint32(0)

// Pool is an arena for out-of-line column payloads. Rows store a handle into
// the pool instead of the payload itself, and nothing is ever released
// implicitly: the owning tile or table frees payloads explicitly before a row
// is discarded.
type Pool struct {
	payloads [][]byte
}

func NewPool() *Pool {
	return &Pool{}
}

// Allocate copies data into the arena and returns its handle.
func (p *Pool) Allocate(data []byte) uint32 {
	payload := make([]byte, len(data))
	copy(payload, data)
	p.payloads = append(p.payloads, payload)
	return uint32(len(p.payloads))
}

// Payload returns the bytes at handle. The returned slice aliases the arena;
// callers must not mutate it.
func (p *Pool) Payload(handle uint32) []byte {
	p.checkHandle(handle)
	payload := p.payloads[handle-1]
	if payload == nil {
		panic(fmt.Sprintf("pool handle %d already freed", handle))
	}
	return payload
}

func (p *Pool) Free(handle uint32) {
	p.checkHandle(handle)
	p.payloads[handle-1] = nil
}

func (p *Pool) FreeAll() {
	p.payloads = nil
}

// AllocatedBytes reports the total size of live payloads.
func (p *Pool) AllocatedBytes() int {
	total := 0
	for _, payload := range p.payloads {
		total += len(payload)
	}
	return total
}

func (p *Pool) checkHandle(handle uint32) {
	if handle == InvalidHandle || int(handle) > len(p.payloads) {
		panic(fmt.Sprintf("invalid pool handle %d", handle))
	}
}
