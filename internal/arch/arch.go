// Package arch contains types used as a bridge between the routine reader and
// the architecture specific decoding code.
package arch

// ByteReader reads operand bytes sequentially from the current cursor position.
// Multi byte reads are little endian.
type ByteReader interface {
	// ReadU8 reads a single byte.
	ReadU8() (byte, error)
	// ReadU16 reads a 16 bit word.
	ReadU16() (uint16, error)
	// ReadU24 reads a 24 bit long address.
	ReadU24() (uint32, error)
}

// ByteSource is a seekable ByteReader that is addressed in CPU address space.
type ByteSource interface {
	ByteReader

	// Seek moves the cursor to the given CPU address.
	Seek(address uint32) error
	// Tell returns the CPU address of the cursor.
	Tell() uint32
}
