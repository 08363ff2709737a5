// Package rom provides a cursor based reader of SNES cartridge images that is
// addressed in CPU address space.
package rom

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned for reads or seeks outside of the image.
var ErrOutOfBounds = errors.New("address outside of ROM image")

// Tracer is called for every read with the image offset and the read bytes.
type Tracer func(offset int, data []byte)

// Rom is a cursor over a ROM image. Copies created with Clone share the
// image data but move independently.
type Rom struct {
	data    []byte
	mapping Mapping
	offset  int
	tracer  Tracer
}

// New returns a new ROM reader for the image data using the given mapping.
func New(data []byte, mapping Mapping) *Rom {
	return &Rom{
		data:    data,
		mapping: mapping,
	}
}

// Clone returns a reader that shares the image and starts at the current
// cursor position.
func (r *Rom) Clone() *Rom {
	c := *r
	return &c
}

// SetTracer sets the read tracer, nil disables tracing.
func (r *Rom) SetTracer(tracer Tracer) {
	r.tracer = tracer
}

// Mapping returns the address mapping of the image.
func (r *Rom) Mapping() Mapping {
	return r.mapping
}

// Size returns the image size in bytes.
func (r *Rom) Size() int {
	return len(r.data)
}

// Seek moves the cursor to the given CPU address.
func (r *Rom) Seek(address uint32) error {
	offset, ok := r.mapping.ToOffset(address)
	if !ok || offset >= len(r.data) {
		return fmt.Errorf("seeking to %06X: %w", address, ErrOutOfBounds)
	}
	r.offset = offset
	return nil
}

// Tell returns the CPU address of the cursor.
func (r *Rom) Tell() uint32 {
	return r.mapping.ToAddress(r.offset)
}

// ReadBuf reads count bytes and advances the cursor. The returned slice
// references the image data and must not be modified.
func (r *Rom) ReadBuf(count int) ([]byte, error) {
	end := r.offset + count
	if count < 0 || end > len(r.data) {
		return nil, fmt.Errorf("reading %d bytes at %06X: %w", count, r.Tell(), ErrOutOfBounds)
	}

	buf := r.data[r.offset:end]
	if r.tracer != nil {
		r.tracer(r.offset, buf)
	}
	r.offset = end
	return buf, nil
}

// ReadU8 reads an unsigned byte.
func (r *Rom) ReadU8() (byte, error) {
	buf, err := r.ReadBuf(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadI8 reads a signed byte.
func (r *Rom) ReadI8() (int8, error) {
	b, err := r.ReadU8()
	if err != nil {
		return 0, err
	}
	return int8(b), nil
}

// ReadU16 reads a little endian word.
func (r *Rom) ReadU16() (uint16, error) {
	return r.ReadU16Order(binary.LittleEndian)
}

// ReadU16Order reads a word with the given byte order.
func (r *Rom) ReadU16Order(order binary.ByteOrder) (uint16, error) {
	buf, err := r.ReadBuf(2)
	if err != nil {
		return 0, err
	}
	return order.Uint16(buf), nil
}

// ReadU24 reads a little endian long address.
func (r *Rom) ReadU24() (uint32, error) {
	buf, err := r.ReadBuf(3)
	if err != nil {
		return 0, err
	}
	return uint32(buf[2])<<16 | uint32(buf[1])<<8 | uint32(buf[0]), nil
}

// ReadAddrFromPtr reads entry index of a table of 16 bit pointers located at
// tableBase and combines it with the given bank to a long address.
func (r *Rom) ReadAddrFromPtr(tableBase uint32, index int, bank byte) (uint32, error) {
	if err := r.Seek(tableBase + 2*uint32(index)); err != nil {
		return 0, fmt.Errorf("reading pointer %d: %w", index, err)
	}
	ptr, err := r.ReadU16()
	if err != nil {
		return 0, fmt.Errorf("reading pointer %d: %w", index, err)
	}
	return uint32(bank)<<16 | uint32(ptr), nil
}
