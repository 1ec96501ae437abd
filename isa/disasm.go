package isa

import "fmt"

// regNames are the RV32I integer ABI register names, matching the
// mapping xyproto-vibe67's riscv64_instructions.go documents for the
// RISC-V calling convention (RV32 and RV64 share it).
var regNames = [32]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

// RegName returns the ABI name of register r (r is masked to 5 bits).
func RegName(r uint8) string {
	return regNames[r&0x1F]
}

// Disassemble renders a human-readable mnemonic and operand list for
// inst. Per spec.md §6, its exact textual form is not part of any
// contract — only the trace recorder's stage-label column is.
func Disassemble(inst Instruction) string {
	if inst.Op == OpInvalid {
		return "unknown"
	}

	mnemonic := inst.Op.String()

	switch inst.Format {
	case FormatR:
		return fmt.Sprintf("%-6s %s, %s, %s", mnemonic, RegName(inst.Rd), RegName(inst.Rs1), RegName(inst.Rs2))
	case FormatI:
		if inst.Op == OpLB || inst.Op == OpLH || inst.Op == OpLW || inst.Op == OpLBU || inst.Op == OpLHU {
			return fmt.Sprintf("%-6s %s, %d(%s)", mnemonic, RegName(inst.Rd), inst.Imm, RegName(inst.Rs1))
		}
		return fmt.Sprintf("%-6s %s, %s, %d", mnemonic, RegName(inst.Rd), RegName(inst.Rs1), inst.Imm)
	case FormatS:
		return fmt.Sprintf("%-6s %s, %d(%s)", mnemonic, RegName(inst.Rs2), inst.Imm, RegName(inst.Rs1))
	case FormatB:
		return fmt.Sprintf("%-6s %s, %s, %d", mnemonic, RegName(inst.Rs1), RegName(inst.Rs2), inst.Imm)
	case FormatU:
		return fmt.Sprintf("%-6s %s, 0x%x", mnemonic, RegName(inst.Rd), uint32(inst.Imm)>>12)
	case FormatJ:
		return fmt.Sprintf("%-6s %s, %d", mnemonic, RegName(inst.Rd), inst.Imm)
	default:
		return mnemonic
	}
}
