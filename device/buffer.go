package device

import (
	"errors"
	"fmt"
)

// ErrSizeMismatch is returned when a host slice does not match a buffer's length.
var ErrSizeMismatch = errors.New("device: buffer size mismatch")

// Buffer is device-resident storage for n lanes of T.
//
// The host never shares memory with a buffer: Upload and Download copy.
// At and Lane are for use inside kernels only.
type Buffer[T any] struct {
	dev  *Device
	data []T
}

// NewBuffer allocates a zeroed buffer of n elements on d.
func NewBuffer[T any](d *Device, n int) *Buffer[T] {
	return &Buffer[T]{dev: d, data: make([]T, n)}
}

// Len returns the number of elements.
func (b *Buffer[T]) Len() int {
	return len(b.data)
}

// Device returns the device the buffer lives on.
func (b *Buffer[T]) Device() *Device {
	return b.dev
}

// Upload copies src into the buffer. len(src) must equal Len().
func (b *Buffer[T]) Upload(src []T) error {
	if len(src) != len(b.data) {
		return fmt.Errorf("%w: upload %d into %d", ErrSizeMismatch, len(src), len(b.data))
	}
	copy(b.data, src)
	return nil
}

// Download copies the buffer into dst. len(dst) must equal Len().
func (b *Buffer[T]) Download(dst []T) error {
	if len(dst) != len(b.data) {
		return fmt.Errorf("%w: download %d into %d", ErrSizeMismatch, len(b.data), len(dst))
	}
	copy(dst, b.data)
	return nil
}

// At reads element i.
func (b *Buffer[T]) At(i int) T {
	return b.data[i]
}

// Lane returns a pointer to element i. The pointer must not outlive the kernel.
func (b *Buffer[T]) Lane(i int) *T {
	return &b.data[i]
}

// ForEach launches fn over every element of b on b's device.
func ForEach[T any](b *Buffer[T], fn func(i int, v *T)) {
	b.dev.Launch(len(b.data), func(i0, i1 int) {
		for i := i0; i < i1; i++ {
			fn(i, &b.data[i])
		}
	})
}
