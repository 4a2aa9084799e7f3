package security

import (
	"runtime"
	"sync"
)

// SecretBuffer owns a copy of key material and zeroes it on Destroy so the
// secret does not linger in reachable memory after the owner shuts down.
type SecretBuffer struct {
	mu   sync.Mutex
	data []byte
}

// NewSecretBuffer copies data into a fresh buffer. The caller keeps ownership
// of the original slice.
func NewSecretBuffer(data []byte) *SecretBuffer {
	b := &SecretBuffer{data: make([]byte, len(data))}
	copy(b.data, data)
	return b
}

// Bytes returns the live key material. The slice is invalidated by Destroy.
func (b *SecretBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.data
}

// Destroy zeroes the buffer. Safe to call more than once.
func (b *SecretBuffer) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()
	ZeroBytes(b.data)
	b.data = nil
}

// ZeroBytes overwrites data in place.
func ZeroBytes(data []byte) {
	for i := range data {
		data[i] = 0
	}
	runtime.KeepAlive(data)
}
