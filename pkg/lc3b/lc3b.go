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

// Package lc3b encodes single LC3b instructions into their 16-bit machine
// words. Every constructor validates its operands; a constructed
// Instruction always encodes.
package lc3b

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/lassandro/golc3b/pkg/encoding"
)

// Returns the machine word for inst
func Encode(inst Instruction) uint16 {
	return inst.Encode()
}

func checkRegister(field string, value int) error {
	min, max := encoding.UnsignedRange(WIDTH_REGISTER)

	if value < min || value > max {
		return &InvalidOperandError{
			Field:      field,
			Value:      value,
			Constraint: CONSTRAINT_REGISTER,
			Min:        min,
			Max:        max,
		}
	}

	return nil
}

func checkSigned(field string, value int, bits uint) error {
	if !encoding.FitsSigned(value, bits) {
		min, max := encoding.SignedRange(bits)

		return &InvalidOperandError{
			Field:      field,
			Value:      value,
			Constraint: CONSTRAINT_SIGNED,
			Min:        min,
			Max:        max,
		}
	}

	return nil
}

func checkUnsigned(field string, value int, bits uint) error {
	if !encoding.FitsUnsigned(value, bits) {
		min, max := encoding.UnsignedRange(bits)

		return &InvalidOperandError{
			Field:      field,
			Value:      value,
			Constraint: CONSTRAINT_UNSIGNED,
			Min:        min,
			Max:        max,
		}
	}

	return nil
}

// Returns the first non-nil error
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	return nil
}

func opcodeBits(op Opcode) uint16 {
	return encoding.Pack(int(op), 4, POS_OPCODE)
}

func flagBit(set bool, pos uint) uint16 {
	if set {
		return encoding.Pack(1, 1, pos)
	}

	return 0
}

// SR2 selects register mode for the second operand
func SR2(reg int) Source {
	return registerSource{reg}
}

// Imm5 selects immediate mode for the second operand
func Imm5(value int) Source {
	return immediateSource{value}
}

// SourceOf builds a Source from optionally present operands, as collected by
// a parser. Exactly one of sr2 and imm5 must be non-nil.
func SourceOf(sr2, imm5 *int) (Source, error) {
	switch {
	case sr2 != nil && imm5 != nil:
		return nil, &InvalidOperandError{
			Field:      "sr2 and imm5",
			Constraint: CONSTRAINT_CONFLICT,
		}
	case sr2 != nil:
		if err := checkRegister("sr2", *sr2); err != nil {
			return nil, err
		}

		return SR2(*sr2), nil
	case imm5 != nil:
		if err := checkSigned("imm5", *imm5, WIDTH_IMM5); err != nil {
			return nil, err
		}

		return Imm5(*imm5), nil
	}

	return nil, &InvalidOperandError{
		Field:      "sr2 or imm5",
		Constraint: CONSTRAINT_MISSING,
	}
}

// ADD  |0001    |DR   |SR1  |0|00 |SR2   |
// ADD  |0001    |DR   |SR1  |1|imm5      |
// AND  |0101    |DR   |SR1  |0|00 |SR2   |
// AND  |0101    |DR   |SR1  |1|imm5      |
// XOR  |1001    |DR   |SR1  |0|00 |SR2   |
// XOR  |1001    |DR   |SR1  |1|imm5      |
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
type operate struct {
	dr  int
	sr1 int
	src Source
}

func newOperate(dr, sr1 int, src Source) (operate, error) {
	var srcErr error

	switch s := src.(type) {
	case registerSource:
		srcErr = checkRegister("sr2", s.reg)
	case immediateSource:
		srcErr = checkSigned("imm5", s.imm, WIDTH_IMM5)
	default:
		srcErr = &InvalidOperandError{
			Field:      "sr2 or imm5",
			Constraint: CONSTRAINT_MISSING,
		}
	}

	err := firstError(
		checkRegister("dr", dr),
		checkRegister("sr1", sr1),
		srcErr,
	)

	if err != nil {
		return operate{}, err
	}

	return operate{dr, sr1, src}, nil
}

func (i operate) DR() int        { return i.dr }
func (i operate) SR1() int       { return i.sr1 }
func (i operate) Source() Source { return i.src }

// Reports whether the second operand is an immediate
func (i operate) Immediate() bool {
	_, ok := i.src.(immediateSource)
	return ok
}

func (i operate) encode(op Opcode) uint16 {
	scratch := opcodeBits(op)
	scratch |= encoding.Pack(i.dr, WIDTH_REGISTER, POS_DR)
	scratch |= encoding.Pack(i.sr1, WIDTH_REGISTER, POS_SR1)

	switch s := i.src.(type) {
	case registerSource:
		scratch |= encoding.Pack(s.reg, WIDTH_REGISTER, 0)
	case immediateSource:
		scratch |= flagBit(true, POS_MODE)
		scratch |= encoding.Pack(s.imm, WIDTH_IMM5, 0)
	}

	return scratch
}

func (i operate) format(op Opcode) string {
	return fmt.Sprintf("%s R%d, R%d, %s", op, i.dr, i.sr1, i.src)
}

type ADD struct{ operate }
type AND struct{ operate }
type XOR struct{ operate }

func NewADD(dr, sr1 int, src Source) (ADD, error) {
	op, err := newOperate(dr, sr1, src)
	if err != nil {
		return ADD{}, errors.Wrap(err, "ADD")
	}

	return ADD{op}, nil
}

func NewAND(dr, sr1 int, src Source) (AND, error) {
	op, err := newOperate(dr, sr1, src)
	if err != nil {
		return AND{}, errors.Wrap(err, "AND")
	}

	return AND{op}, nil
}

func NewXOR(dr, sr1 int, src Source) (XOR, error) {
	op, err := newOperate(dr, sr1, src)
	if err != nil {
		return XOR{}, errors.Wrap(err, "XOR")
	}

	return XOR{op}, nil
}

func (i ADD) instruction()   {}
func (i ADD) Opcode() Opcode { return OP_ADD }
func (i ADD) Encode() uint16 { return i.encode(OP_ADD) }
func (i ADD) String() string { return i.format(OP_ADD) }
func (i AND) instruction()   {}
func (i AND) Opcode() Opcode { return OP_AND }
func (i AND) Encode() uint16 { return i.encode(OP_AND) }
func (i AND) String() string { return i.format(OP_AND) }
func (i XOR) instruction()   {}
func (i XOR) Opcode() Opcode { return OP_XOR }
func (i XOR) Encode() uint16 { return i.encode(OP_XOR) }
func (i XOR) String() string { return i.format(OP_XOR) }

// NOT  |1001    |DR   |SR   |1|11111     |
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
type NOT struct {
	dr int
	sr int
}

func NewNOT(dr, sr int) (NOT, error) {
	err := firstError(checkRegister("dr", dr), checkRegister("sr", sr))
	if err != nil {
		return NOT{}, errors.Wrap(err, "NOT")
	}

	return NOT{dr, sr}, nil
}

func (i NOT) instruction()   {}
func (i NOT) Opcode() Opcode { return OP_XOR }
func (i NOT) DR() int        { return i.dr }
func (i NOT) SR() int        { return i.sr }

func (i NOT) Encode() uint16 {
	scratch := opcodeBits(OP_XOR)
	scratch |= encoding.Pack(i.dr, WIDTH_REGISTER, POS_DR)
	scratch |= encoding.Pack(i.sr, WIDTH_REGISTER, POS_SR1)
	scratch |= flagBit(true, POS_MODE)
	scratch |= encoding.Pack(-1, WIDTH_IMM5, 0)
	return scratch
}

func (i NOT) String() string {
	return fmt.Sprintf("NOT R%d, R%d", i.dr, i.sr)
}

// BR   |0000    |N|Z|P|PCoffset9         |
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
type BR struct {
	n, z, p bool
	offset  int
}

func NewBR(n, z, p bool, pcoffset9 int) (BR, error) {
	if err := checkSigned("pcoffset9", pcoffset9, WIDTH_PCOFFSET9); err != nil {
		return BR{}, errors.Wrap(err, "BR")
	}

	return BR{n, z, p, pcoffset9}, nil
}

func (i BR) instruction()   {}
func (i BR) Opcode() Opcode { return OP_BR }
func (i BR) N() bool        { return i.n }
func (i BR) Z() bool        { return i.z }
func (i BR) P() bool        { return i.p }
func (i BR) Offset() int    { return i.offset }

func (i BR) Encode() uint16 {
	scratch := opcodeBits(OP_BR)
	scratch |= flagBit(i.n, POS_N)
	scratch |= flagBit(i.z, POS_Z)
	scratch |= flagBit(i.p, POS_P)
	scratch |= encoding.Pack(i.offset, WIDTH_PCOFFSET9, 0)
	return scratch
}

func (i BR) String() string {
	mnemonic := "BR"

	if i.n {
		mnemonic += "n"
	}

	if i.z {
		mnemonic += "z"
	}

	if i.p {
		mnemonic += "p"
	}

	return fmt.Sprintf("%s #%d", mnemonic, i.offset)
}

// JMP  |1100    |000  |BaseR|000000      |
// RET  |1100    |000  |111  |000000      |
// JSRR |0100    |0|00 |BaseR|000000      |
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
type JMP struct {
	baseR int
}

type JSRR struct {
	baseR int
}

func NewJMP(baseR int) (JMP, error) {
	if err := checkRegister("baser", baseR); err != nil {
		return JMP{}, errors.Wrap(err, "JMP")
	}

	return JMP{baseR}, nil
}

// NewRET returns JMP R7
func NewRET() JMP {
	return JMP{REG_LINK}
}

func NewJSRR(baseR int) (JSRR, error) {
	if err := checkRegister("baser", baseR); err != nil {
		return JSRR{}, errors.Wrap(err, "JSRR")
	}

	return JSRR{baseR}, nil
}

func (i JMP) instruction()   {}
func (i JMP) Opcode() Opcode { return OP_JMP }
func (i JMP) BaseR() int     { return i.baseR }

func (i JMP) Encode() uint16 {
	return opcodeBits(OP_JMP) | encoding.Pack(i.baseR, WIDTH_REGISTER, POS_BASER)
}

func (i JMP) String() string {
	if i.baseR == REG_LINK {
		return "RET"
	}

	return fmt.Sprintf("JMP R%d", i.baseR)
}

func (i JSRR) instruction()   {}
func (i JSRR) Opcode() Opcode { return OP_JSR }
func (i JSRR) BaseR() int     { return i.baseR }

func (i JSRR) Encode() uint16 {
	return opcodeBits(OP_JSR) | encoding.Pack(i.baseR, WIDTH_REGISTER, POS_BASER)
}

func (i JSRR) String() string {
	return fmt.Sprintf("JSRR R%d", i.baseR)
}

// JSR  |0100    |1|PCoffset11            |
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
type JSR struct {
	offset int
}

func NewJSR(pcoffset11 int) (JSR, error) {
	err := checkSigned("pcoffset11", pcoffset11, WIDTH_PCOFFSET11)
	if err != nil {
		return JSR{}, errors.Wrap(err, "JSR")
	}

	return JSR{pcoffset11}, nil
}

func (i JSR) instruction()   {}
func (i JSR) Opcode() Opcode { return OP_JSR }
func (i JSR) Offset() int    { return i.offset }

func (i JSR) Encode() uint16 {
	scratch := opcodeBits(OP_JSR)
	scratch |= flagBit(true, POS_JSR)
	scratch |= encoding.Pack(i.offset, WIDTH_PCOFFSET11, 0)
	return scratch
}

func (i JSR) String() string {
	return fmt.Sprintf("JSR #%d", i.offset)
}

// LDB  |0010    |DR   |BaseR|boffset6    |
// STB  |0011    |SR   |BaseR|boffset6    |
// LDW  |0110    |DR   |BaseR|offset6     |
// STW  |0111    |SR   |BaseR|offset6     |
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
type memory struct {
	reg    int
	baseR  int
	offset int
}

func newMemory(regField string, reg, baseR, offset6 int) (memory, error) {
	err := firstError(
		checkRegister(regField, reg),
		checkRegister("baser", baseR),
		checkSigned("offset6", offset6, WIDTH_OFFSET6),
	)

	if err != nil {
		return memory{}, err
	}

	return memory{reg, baseR, offset6}, nil
}

func (i memory) BaseR() int  { return i.baseR }
func (i memory) Offset() int { return i.offset }

func (i memory) encode(op Opcode) uint16 {
	scratch := opcodeBits(op)
	scratch |= encoding.Pack(i.reg, WIDTH_REGISTER, POS_DR)
	scratch |= encoding.Pack(i.baseR, WIDTH_REGISTER, POS_BASER)
	scratch |= encoding.Pack(i.offset, WIDTH_OFFSET6, 0)
	return scratch
}

func (i memory) format(op Opcode) string {
	return fmt.Sprintf("%s R%d, R%d, #%d", op, i.reg, i.baseR, i.offset)
}

type LDB struct{ memory }
type STB struct{ memory }
type LDW struct{ memory }
type STW struct{ memory }

func NewLDB(dr, baseR, boffset6 int) (LDB, error) {
	m, err := newMemory("dr", dr, baseR, boffset6)
	if err != nil {
		return LDB{}, errors.Wrap(err, "LDB")
	}

	return LDB{m}, nil
}

func NewSTB(sr, baseR, boffset6 int) (STB, error) {
	m, err := newMemory("sr", sr, baseR, boffset6)
	if err != nil {
		return STB{}, errors.Wrap(err, "STB")
	}

	return STB{m}, nil
}

func NewLDW(dr, baseR, offset6 int) (LDW, error) {
	m, err := newMemory("dr", dr, baseR, offset6)
	if err != nil {
		return LDW{}, errors.Wrap(err, "LDW")
	}

	return LDW{m}, nil
}

func NewSTW(sr, baseR, offset6 int) (STW, error) {
	m, err := newMemory("sr", sr, baseR, offset6)
	if err != nil {
		return STW{}, errors.Wrap(err, "STW")
	}

	return STW{m}, nil
}

func (i LDB) instruction()   {}
func (i LDB) Opcode() Opcode { return OP_LDB }
func (i LDB) DR() int        { return i.reg }
func (i LDB) Encode() uint16 { return i.encode(OP_LDB) }
func (i LDB) String() string { return i.format(OP_LDB) }
func (i STB) instruction()   {}
func (i STB) Opcode() Opcode { return OP_STB }
func (i STB) SR() int        { return i.reg }
func (i STB) Encode() uint16 { return i.encode(OP_STB) }
func (i STB) String() string { return i.format(OP_STB) }
func (i LDW) instruction()   {}
func (i LDW) Opcode() Opcode { return OP_LDW }
func (i LDW) DR() int        { return i.reg }
func (i LDW) Encode() uint16 { return i.encode(OP_LDW) }
func (i LDW) String() string { return i.format(OP_LDW) }
func (i STW) instruction()   {}
func (i STW) Opcode() Opcode { return OP_STW }
func (i STW) SR() int        { return i.reg }
func (i STW) Encode() uint16 { return i.encode(OP_STW) }
func (i STW) String() string { return i.format(OP_STW) }

// LEA  |1110    |DR   |PCoffset9         |
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
type LEA struct {
	dr     int
	offset int
}

func NewLEA(dr, pcoffset9 int) (LEA, error) {
	err := firstError(
		checkRegister("dr", dr),
		checkSigned("pcoffset9", pcoffset9, WIDTH_PCOFFSET9),
	)

	if err != nil {
		return LEA{}, errors.Wrap(err, "LEA")
	}

	return LEA{dr, pcoffset9}, nil
}

func (i LEA) instruction()   {}
func (i LEA) Opcode() Opcode { return OP_LEA }
func (i LEA) DR() int        { return i.dr }
func (i LEA) Offset() int    { return i.offset }

func (i LEA) Encode() uint16 {
	scratch := opcodeBits(OP_LEA)
	scratch |= encoding.Pack(i.dr, WIDTH_REGISTER, POS_DR)
	scratch |= encoding.Pack(i.offset, WIDTH_PCOFFSET9, 0)
	return scratch
}

func (i LEA) String() string {
	return fmt.Sprintf("LEA R%d, #%d", i.dr, i.offset)
}

// SHF  |1101    |DR   |SR   |A|D|amount4 |
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
type SHF struct {
	dr     int
	sr     int
	kind   ShiftType
	amount int
}

func NewSHF(dr, sr int, kind ShiftType, amount4 int) (SHF, error) {
	var kindErr error

	switch kind {
	case SHIFT_LSHF, SHIFT_RSHFL, SHIFT_RSHFA:
	default:
		kindErr = &InvalidOperandError{
			Field:      "type",
			Value:      int(kind),
			Constraint: CONSTRAINT_SHIFT,
		}
	}

	err := firstError(
		checkRegister("dr", dr),
		checkRegister("sr", sr),
		kindErr,
		checkUnsigned("amount4", amount4, WIDTH_AMOUNT4),
	)

	if err != nil {
		mnemonic := kind.String()
		if kindErr != nil {
			mnemonic = "SHF"
		}

		return SHF{}, errors.Wrap(err, mnemonic)
	}

	return SHF{dr, sr, kind, amount4}, nil
}

func NewLSHF(dr, sr, amount4 int) (SHF, error) {
	return NewSHF(dr, sr, SHIFT_LSHF, amount4)
}

func NewRSHFL(dr, sr, amount4 int) (SHF, error) {
	return NewSHF(dr, sr, SHIFT_RSHFL, amount4)
}

func NewRSHFA(dr, sr, amount4 int) (SHF, error) {
	return NewSHF(dr, sr, SHIFT_RSHFA, amount4)
}

func (i SHF) instruction()    {}
func (i SHF) Opcode() Opcode  { return OP_SHF }
func (i SHF) DR() int         { return i.dr }
func (i SHF) SR() int         { return i.sr }
func (i SHF) Type() ShiftType { return i.kind }
func (i SHF) Amount() int     { return i.amount }

func (i SHF) Encode() uint16 {
	scratch := opcodeBits(OP_SHF)
	scratch |= encoding.Pack(i.dr, WIDTH_REGISTER, POS_DR)
	scratch |= encoding.Pack(i.sr, WIDTH_REGISTER, POS_SR1)
	scratch |= encoding.Pack(int(i.kind), WIDTH_SHIFT, POS_SHIFT)
	scratch |= encoding.Pack(i.amount, WIDTH_AMOUNT4, 0)
	return scratch
}

func (i SHF) String() string {
	return fmt.Sprintf("%s R%d, R%d, #%d", i.kind, i.dr, i.sr, i.amount)
}

// TRAP |1111    |0000   |trapvect8       |
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
type TRAP struct {
	vector int
}

func NewTRAP(trapvect8 int) (TRAP, error) {
	err := checkUnsigned("trapvect8", trapvect8, WIDTH_TRAPVECT8)
	if err != nil {
		return TRAP{}, errors.Wrap(err, "TRAP")
	}

	return TRAP{trapvect8}, nil
}

func (i TRAP) instruction()   {}
func (i TRAP) Opcode() Opcode { return OP_TRAP }
func (i TRAP) Vector() int    { return i.vector }

func (i TRAP) Encode() uint16 {
	return opcodeBits(OP_TRAP) | encoding.Pack(i.vector, WIDTH_TRAPVECT8, 0)
}

func (i TRAP) String() string {
	return fmt.Sprintf("TRAP x%02X", i.vector)
}

// RTI  |1000    |000000000000            |
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
type RTI struct{}

func NewRTI() RTI {
	return RTI{}
}

func (i RTI) instruction()   {}
func (i RTI) Opcode() Opcode { return OP_RTI }
func (i RTI) Encode() uint16 { return opcodeBits(OP_RTI) }
func (i RTI) String() string { return "RTI" }
