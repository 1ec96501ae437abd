// Package pipeline implements the classic five-stage in-order RV32I
// pipeline: the four inter-stage latches, the per-stage datapath, the
// hazard/forwarding units, and the PC update logic.
package pipeline

import "github.com/archsim/rv32pipe/isa"

// IFIDRegister latches the Fetch→Decode boundary.
type IFIDRegister struct {
	Valid bool
	PC    uint32
	Inst  isa.Instruction
}

// IDEXRegister latches the Decode→Execute boundary.
type IDEXRegister struct {
	Valid        bool
	PC           uint32
	Inst         isa.Instruction
	ReadData1    int32
	ReadData2    int32
	Imm          int32
	Control      isa.Control
	BranchTaken  bool   // resolved in ID; carried through for EX/MEM bookkeeping
	BranchTarget uint32 // resolved in ID; carried through for EX/MEM bookkeeping
}

// EXMEMRegister latches the Execute→Memory boundary.
type EXMEMRegister struct {
	Valid        bool
	PC           uint32
	Inst         isa.Instruction
	ALUResult    int32
	Zero         bool
	Negative     bool
	ReadData2    int32 // forwarded store-data operand
	BranchTarget uint32
	BranchTaken  bool
	Control      isa.Control
}

// MEMWBRegister latches the Memory→Writeback boundary.
type MEMWBRegister struct {
	Valid     bool
	PC        uint32
	Inst      isa.Instruction
	ALUResult int32
	MemData   int32
	Control   isa.Control
}

// WritebackValue returns the value the instruction in this latch will
// commit to its destination register: the loaded data for MemToReg
// instructions, the ALU result otherwise.
func (r *MEMWBRegister) WritebackValue() int32 {
	if r.Control.MemToReg {
		return r.MemData
	}
	return r.ALUResult
}
