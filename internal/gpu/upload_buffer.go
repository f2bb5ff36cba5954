package gpu

// UploadBuffer is a CPU-writable array of constant or vertex data read by
// the queue worker when a command list that references it executes. The
// host must not write an element while a submission referencing it is in
// flight; the frame-resource ring guarantees that by fencing.
type UploadBuffer[T any] struct {
	data []T
}

// NewUploadBuffer allocates a buffer of count elements.
func NewUploadBuffer[T any](count int) *UploadBuffer[T] {
	return &UploadBuffer[T]{data: make([]T, count)}
}

// CopyData writes one element.
func (b *UploadBuffer[T]) CopyData(i int, v T) {
	b.data[i] = v
}

// At returns the element at i.
func (b *UploadBuffer[T]) At(i int) T {
	return b.data[i]
}

// Len returns the element count.
func (b *UploadBuffer[T]) Len() int {
	return len(b.data)
}

// Slice returns the backing storage. The executor reads it directly.
func (b *UploadBuffer[T]) Slice() []T {
	return b.data
}
