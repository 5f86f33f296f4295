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

import (
	"fmt"

	"github.com/pkg/errors"
)

type Opcode uint16
type ShiftType uint8
type Constraint uint

func (op Opcode) String() string {
	switch op {
	case OP_BR:
		return "BR"
	case OP_ADD:
		return "ADD"
	case OP_LDB:
		return "LDB"
	case OP_STB:
		return "STB"
	case OP_JSR:
		return "JSR"
	case OP_AND:
		return "AND"
	case OP_LDW:
		return "LDW"
	case OP_STW:
		return "STW"
	case OP_RTI:
		return "RTI"
	case OP_XOR:
		return "XOR"
	case OP_JMP:
		return "JMP"
	case OP_SHF:
		return "SHF"
	case OP_LEA:
		return "LEA"
	case OP_TRAP:
		return "TRAP"
	}

	return "<invalid>"
}

func (kind ShiftType) String() string {
	switch kind {
	case SHIFT_LSHF:
		return "LSHF"
	case SHIFT_RSHFL:
		return "RSHFL"
	case SHIFT_RSHFA:
		return "RSHFA"
	}

	return "<invalid>"
}

func (c Constraint) String() string {
	switch c {
	case CONSTRAINT_MISSING:
		return "missing"
	case CONSTRAINT_CONFLICT:
		return "conflicting"
	case CONSTRAINT_REGISTER:
		return "register"
	case CONSTRAINT_SIGNED:
		return "signed range"
	case CONSTRAINT_UNSIGNED:
		return "unsigned range"
	case CONSTRAINT_SHIFT:
		return "shift type"
	}

	return "<invalid>"
}

// An Instruction is a fully validated LC3b instruction. The set of
// implementations is closed to this package.
type Instruction interface {
	fmt.Stringer

	Opcode() Opcode

	// Returns the 16-bit machine encoding
	Encode() uint16

	instruction()
}

// Source is the second operand of ADD, AND and XOR: either a register (SR2)
// or a 5-bit immediate, never both.
type Source interface {
	fmt.Stringer

	source()
}

type registerSource struct {
	reg int
}

type immediateSource struct {
	imm int
}

func (s registerSource) source() {}

func (s registerSource) String() string {
	return fmt.Sprintf("R%d", s.reg)
}

func (s immediateSource) source() {}

func (s immediateSource) String() string {
	return fmt.Sprintf("#%d", s.imm)
}

var ErrInvalidOperand = errors.New("invalid operand")

type InvalidOperandError struct {
	Field      string
	Value      int
	Constraint Constraint
	Min        int
	Max        int
}

func (err *InvalidOperandError) Is(target error) bool {
	return target == ErrInvalidOperand
}

func (err *InvalidOperandError) Error() string {
	switch err.Constraint {
	case CONSTRAINT_MISSING:
		return fmt.Sprintf("Missing operand '%s'", err.Field)
	case CONSTRAINT_CONFLICT:
		return fmt.Sprintf("Conflicting operands '%s'", err.Field)
	case CONSTRAINT_REGISTER:
		return fmt.Sprintf(
			"Invalid register '%s'\n\twant:R%d-R%d\n\thave:%d",
			err.Field,
			err.Min,
			err.Max,
			err.Value,
		)
	case CONSTRAINT_SHIFT:
		return fmt.Sprintf(
			"Invalid shift type '%s'\n\thave:%#02b",
			err.Field,
			err.Value,
		)
	}

	return fmt.Sprintf(
		"Operand '%s' exceeds allowed size\n\twant:[%d, %d]\n\thave:%d",
		err.Field,
		err.Min,
		err.Max,
		err.Value,
	)
}
