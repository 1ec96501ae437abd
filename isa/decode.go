package isa

// Decode converts a raw 32-bit RV32I machine-code word into a structured
// Instruction. Decode is a pure function: the same word always produces
// a bitwise-equal Instruction, and an unrecognized encoding decodes to
// Op == OpInvalid with a zeroed control-relevant payload (so it can flow
// through the pipeline as an architectural no-op).
func Decode(word uint32) Instruction {
	inst := Instruction{Raw: word}

	opcode := word & 0x7F
	rd := uint8((word >> 7) & 0x1F)
	rs1 := uint8((word >> 15) & 0x1F)
	rs2 := uint8((word >> 20) & 0x1F)
	funct3 := (word >> 12) & 0x7
	funct7 := (word >> 25) & 0x7F

	switch opcode {
	case 0x33: // R-type
		inst.Format = FormatR
		inst.Rd, inst.Rs1, inst.Rs2 = rd, rs1, rs2
		switch {
		case funct7 == 0x00:
			switch funct3 {
			case 0x0:
				inst.Op = OpADD
			case 0x1:
				inst.Op = OpSLL
			case 0x2:
				inst.Op = OpSLT
			case 0x3:
				inst.Op = OpSLTU
			case 0x4:
				inst.Op = OpXOR
			case 0x5:
				inst.Op = OpSRL
			case 0x6:
				inst.Op = OpOR
			case 0x7:
				inst.Op = OpAND
			default:
				inst.Op = OpInvalid
			}
		case funct7 == 0x20:
			switch funct3 {
			case 0x0:
				inst.Op = OpSUB
			case 0x5:
				inst.Op = OpSRA
			default:
				inst.Op = OpInvalid
			}
		default:
			inst.Op = OpInvalid
		}

	case 0x13: // I-type, ALU-immediate
		inst.Format = FormatI
		inst.Rd, inst.Rs1 = rd, rs1
		inst.Imm = signExtend(word>>20, 12)
		switch funct3 {
		case 0x0:
			inst.Op = OpADDI
		case 0x2:
			inst.Op = OpSLTI
		case 0x3:
			inst.Op = OpSLTIU
		case 0x4:
			inst.Op = OpXORI
		case 0x6:
			inst.Op = OpORI
		case 0x7:
			inst.Op = OpANDI
		case 0x1:
			inst.Op = OpSLLI
		case 0x5:
			switch funct7 {
			case 0x00:
				inst.Op = OpSRLI
			case 0x20:
				inst.Op = OpSRAI
			default:
				inst.Op = OpInvalid
			}
		default:
			inst.Op = OpInvalid
		}

	case 0x03: // I-type, loads
		inst.Format = FormatI
		inst.Rd, inst.Rs1 = rd, rs1
		inst.Imm = signExtend(word>>20, 12)
		switch funct3 {
		case 0x0:
			inst.Op = OpLB
		case 0x1:
			inst.Op = OpLH
		case 0x2:
			inst.Op = OpLW
		case 0x4:
			inst.Op = OpLBU
		case 0x5:
			inst.Op = OpLHU
		default:
			inst.Op = OpInvalid
		}

	case 0x23: // S-type
		inst.Format = FormatS
		inst.Rs1, inst.Rs2 = rs1, rs2
		imm := (funct7 << 5) | uint32(rd)
		inst.Imm = signExtend(imm, 12)
		switch funct3 {
		case 0x0:
			inst.Op = OpSB
		case 0x1:
			inst.Op = OpSH
		case 0x2:
			inst.Op = OpSW
		default:
			inst.Op = OpInvalid
		}

	case 0x63: // B-type
		inst.Format = FormatB
		inst.Rs1, inst.Rs2 = rs1, rs2
		imm := ((word >> 31) & 0x1) << 12
		imm |= ((word >> 7) & 0x1) << 11
		imm |= ((word >> 25) & 0x3F) << 5
		imm |= ((word >> 8) & 0xF) << 1
		inst.Imm = signExtend(imm, 13)
		switch funct3 {
		case 0x0:
			inst.Op = OpBEQ
		case 0x1:
			inst.Op = OpBNE
		case 0x4:
			inst.Op = OpBLT
		case 0x5:
			inst.Op = OpBGE
		case 0x6:
			inst.Op = OpBLTU
		case 0x7:
			inst.Op = OpBGEU
		default:
			inst.Op = OpInvalid
		}

	case 0x37: // U-type, LUI
		inst.Format = FormatU
		inst.Rd = rd
		inst.Imm = int32(word & 0xFFFFF000)
		inst.Op = OpLUI

	case 0x17: // U-type, AUIPC
		inst.Format = FormatU
		inst.Rd = rd
		inst.Imm = int32(word & 0xFFFFF000)
		inst.Op = OpAUIPC

	case 0x6F: // J-type, JAL
		inst.Format = FormatJ
		inst.Rd = rd
		imm := ((word >> 31) & 0x1) << 20
		imm |= ((word >> 12) & 0xFF) << 12
		imm |= ((word >> 20) & 0x1) << 11
		imm |= ((word >> 21) & 0x3FF) << 1
		inst.Imm = signExtend(imm, 21)
		inst.Op = OpJAL

	case 0x67: // I-type, JALR
		inst.Format = FormatI
		inst.Rd, inst.Rs1 = rd, rs1
		inst.Imm = signExtend(word>>20, 12)
		inst.Op = OpJALR

	default:
		inst.Op = OpInvalid
	}

	return inst
}

// signExtend sign-extends the low `bits` bits of v (already right-aligned
// at bit 0) to a full 32-bit int32, per the bit layouts in spec.md §4.1.
func signExtend(v uint32, bits uint) int32 {
	shift := 32 - bits
	return int32(v<<shift) >> shift
}
