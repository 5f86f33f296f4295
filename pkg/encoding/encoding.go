// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package encoding

import "fmt"

const WordBits = 16

// Returns the mask covering the low bitcount bits
func Mask(bitcount uint) uint32 {
	return (uint32(1) << bitcount) - 1
}

// Returns the inclusive range of a two's-complement field of bitcount bits
func SignedRange(bitcount uint) (min, max int) {
	limit := 1 << (bitcount - 1)
	return -limit, limit - 1
}

// Returns the inclusive range of an unsigned field of bitcount bits
func UnsignedRange(bitcount uint) (min, max int) {
	return 0, (1 << bitcount) - 1
}

func FitsSigned(value int, bitcount uint) bool {
	min, max := SignedRange(bitcount)
	return value >= min && value <= max
}

func FitsUnsigned(value int, bitcount uint) bool {
	min, max := UnsignedRange(bitcount)
	return value >= min && value <= max
}

// Places the low bitcount bits of value at bit position pos. Negative values
// come out in two's complement. Panics if the field does not fit in a word,
// which only happens for a broken layout.
func Pack(value int, bitcount, pos uint) uint16 {
	if bitcount == 0 || bitcount+pos > WordBits {
		panic(fmt.Sprintf(
			"field [%d:%d] exceeds %d-bit word", pos+bitcount-1, pos, WordBits,
		))
	}

	return uint16((uint32(value) & Mask(bitcount)) << pos)
}

// Returns the bitcount bits of word starting at bit position pos
func Extract(word uint16, bitcount, pos uint) uint16 {
	return uint16((uint32(word) >> pos) & Mask(bitcount))
}

func SignExtend(value uint16, bitcount uint16) uint16 {
	if (value>>(bitcount-1))&0x1 == 1 {
		value |= (0xFFFF << bitcount)
	}

	return value
}
