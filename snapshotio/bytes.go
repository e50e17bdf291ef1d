package snapshotio

import "unsafe"

// asBytes reinterprets s as a byte slice without copying, for bulk
// binary I/O of fixed-width numeric columns. Adapted from the teacher's
// asBytes/resize helper pair (common.go), generalized for the Snapshot's
// own float64/int column types.
func asBytes[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	sizeInBytes := len(s) * int(unsafe.Sizeof(s[0]))
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), sizeInBytes)
}

// resize reuses an existing backing array when it already has enough
// capacity, avoiding an allocation on repeated decodes into pooled buffers.
func resize[T any](s []T, n int) []T {
	if cap(s) < n {
		return make([]T, n)
	}
	return s[:n]
}
