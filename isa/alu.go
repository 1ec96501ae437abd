package isa

// ALUResult is the output of Execute: the 32-bit result plus the two
// flags the pipeline tracks (spec.md §4.3 names only zero/negative; the
// datapath this simulator teaches from has no overflow flag).
type ALUResult struct {
	Result   int32
	Zero     bool
	Negative bool
}

// Execute computes the ALU result for op given its two operands and the
// PC of the instruction in EX. pc is only consulted by JAL/JALR/AUIPC.
//
// Operand 2 is the immediate when Control.ALUSrc is set, otherwise the
// (possibly forwarded) second register value — that selection happens
// one layer up, in the pipeline's EX stage; Execute itself just takes
// whatever two 32-bit words it's handed.
func Execute(op Op, pc uint32, in1, in2 int32) ALUResult {
	var result int32

	switch op {
	case OpADD, OpADDI, OpLB, OpLH, OpLW, OpLBU, OpLHU, OpSB, OpSH, OpSW:
		result = in1 + in2
	case OpSUB:
		result = in1 - in2
	case OpAND, OpANDI:
		result = in1 & in2
	case OpOR, OpORI:
		result = in1 | in2
	case OpXOR, OpXORI:
		result = in1 ^ in2
	case OpSLL, OpSLLI:
		result = in1 << (uint32(in2) & 0x1F)
	case OpSRL, OpSRLI:
		result = int32(uint32(in1) >> (uint32(in2) & 0x1F))
	case OpSRA, OpSRAI:
		result = in1 >> (uint32(in2) & 0x1F)
	case OpSLT, OpSLTI, OpBLT:
		result = boolToWord(in1 < in2)
	case OpBGE:
		result = boolToWord(in1 >= in2)
	case OpSLTU, OpSLTIU, OpBLTU:
		result = boolToWord(uint32(in1) < uint32(in2))
	case OpBGEU:
		result = boolToWord(uint32(in1) >= uint32(in2))
	case OpBEQ:
		result = boolToWord(in1 == in2)
	case OpBNE:
		result = boolToWord(in1 != in2)
	case OpJAL, OpJALR:
		result = int32(pc + 4) // return address, per spec.md §4.3
	case OpLUI:
		result = in2 // immediate, passed through as operand 2
	case OpAUIPC:
		result = int32(pc) + in2
	default:
		result = 0
	}

	return ALUResult{
		Result:   result,
		Zero:     result == 0,
		Negative: result < 0,
	}
}

func boolToWord(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
