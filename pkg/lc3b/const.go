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

package lc3b

const (
	OP_BR   Opcode = 0b0000
	OP_ADD  Opcode = 0b0001
	OP_LDB  Opcode = 0b0010
	OP_STB  Opcode = 0b0011
	OP_JSR  Opcode = 0b0100
	OP_AND  Opcode = 0b0101
	OP_LDW  Opcode = 0b0110
	OP_STW  Opcode = 0b0111
	OP_RTI  Opcode = 0b1000
	OP_XOR  Opcode = 0b1001
	OP_JMP  Opcode = 0b1100
	OP_SHF  Opcode = 0b1101
	OP_LEA  Opcode = 0b1110
	OP_TRAP Opcode = 0b1111

	// Unused
	OP_RES1 Opcode = 0b1010
	OP_RES2 Opcode = 0b1011
)

// Field widths in bits
const (
	WIDTH_REGISTER   uint = 3
	WIDTH_IMM5       uint = 5
	WIDTH_OFFSET6    uint = 6
	WIDTH_PCOFFSET9  uint = 9
	WIDTH_PCOFFSET11 uint = 11
	WIDTH_AMOUNT4    uint = 4
	WIDTH_TRAPVECT8  uint = 8
	WIDTH_SHIFT      uint = 2
)

// Field positions (lowest bit)
const (
	POS_OPCODE uint = 12
	POS_DR     uint = 9
	POS_SR1    uint = 6
	POS_BASER  uint = 6
	POS_MODE   uint = 5
	POS_N      uint = 11
	POS_Z      uint = 10
	POS_P      uint = 9
	POS_JSR    uint = 11
	POS_SHIFT  uint = 4
)

const (
	SHIFT_LSHF  ShiftType = 0b00
	SHIFT_RSHFL ShiftType = 0b01
	SHIFT_RSHFA ShiftType = 0b11
)

const (
	TRAP_GETC uint8 = 0x20
	TRAP_OUT  uint8 = 0x21
	TRAP_PUTS uint8 = 0x22
	TRAP_IN   uint8 = 0x23
	TRAP_HALT uint8 = 0x25
)

const (
	CONSTRAINT_MISSING Constraint = iota
	CONSTRAINT_CONFLICT
	CONSTRAINT_REGISTER
	CONSTRAINT_SIGNED
	CONSTRAINT_UNSIGNED
	CONSTRAINT_SHIFT
)

// Register used by RET as its implicit base register
const REG_LINK = 7
