package pipeline

import (
	"github.com/archsim/rv32pipe/isa"
	"github.com/archsim/rv32pipe/machine"
)

// fetch reads one instruction word from instruction memory at pc and
// returns the IF/ID latch it produces, or a bubble if pc runs past the
// end of the loaded program.
func fetch(instMem *machine.InstructionMemory, pc uint32) IFIDRegister {
	if int(pc/4) >= instMem.Len() {
		return IFIDRegister{}
	}
	word := instMem.Read(pc)
	return IFIDRegister{
		Valid: true,
		PC:    pc,
		Inst:  isa.Decode(word),
	}
}

// decode reads the register file, generates the control bundle, and —
// for branches and jumps — resolves the control transfer immediately
// (§4.7). exmem and memwb are the latches as they stood at the start of
// the current cycle, the same snapshot EX forwards from. A branch operand
// whose producer sits in MEM/WB is forwarded from that latch; since
// writeback always commits before decode runs (§2), this matches what a
// plain regFile read would return.
func decode(ifid *IFIDRegister, regFile *machine.RegisterFile, forwardingEnabled bool, exmem *EXMEMRegister, memwb *MEMWBRegister) (idex IDEXRegister, branchTaken bool, branchTarget uint32) {
	inst := ifid.Inst
	control := isa.GenerateControl(inst)

	rd1 := regFile.Read(inst.Rs1)
	rd2 := regFile.Read(inst.Rs2)

	idex = IDEXRegister{
		Valid:     true,
		PC:        ifid.PC,
		Inst:      inst,
		ReadData1: rd1,
		ReadData2: rd2,
		Imm:       inst.Imm,
		Control:   control,
	}

	if !inst.IsBranchOrJump() {
		return idex, false, 0
	}

	v1 := rd1
	if forwardingEnabled {
		v1 = branchOperand(inst.Rs1, rd1, exmem, memwb)
	}

	switch inst.Op {
	case isa.OpBEQ, isa.OpBNE, isa.OpBLT, isa.OpBGE, isa.OpBLTU, isa.OpBGEU:
		v2 := rd2
		if forwardingEnabled {
			v2 = branchOperand(inst.Rs2, rd2, exmem, memwb)
		}
		result := isa.Execute(inst.Op, ifid.PC, v1, v2)
		if result.Result != 0 {
			branchTaken = true
			branchTarget = uint32(int32(ifid.PC) + inst.Imm)
		}

	case isa.OpJAL:
		branchTaken = true
		branchTarget = uint32(int32(ifid.PC) + inst.Imm)

	case isa.OpJALR:
		branchTaken = true
		branchTarget = (uint32(v1 + inst.Imm)) &^ 1
	}

	// The transfer has been effected here; clear branch/jump so EX/MEM
	// never re-applies it (§4.7). BranchTaken/BranchTarget are retained
	// on the latch purely as bookkeeping for the EX/MEM payload §3 names.
	idex.Control.Branch = false
	idex.Control.Jump = false
	idex.BranchTaken = branchTaken
	idex.BranchTarget = branchTarget

	return idex, branchTaken, branchTarget
}

// branchOperand returns reg's value as seen by an ID-stage branch
// comparison, forwarding from EX/MEM or MEM/WB ahead of the ordinary EX
// forwarding path when a producer is in flight.
func branchOperand(reg uint8, registerValue int32, exmem *EXMEMRegister, memwb *MEMWBRegister) int32 {
	switch forwardSourceFor(reg, exmem, memwb) {
	case ForwardFromEXMEM:
		return exmemForwardValue(exmem)
	case ForwardFromMEMWB:
		return memwbForwardValue(memwb)
	default:
		return registerValue
	}
}

// execute runs the Forwarding Unit and the ALU for the instruction in
// idex, producing the EX/MEM latch.
func execute(idex *IDEXRegister, forwarding *ForwardingUnit, exmem *EXMEMRegister, memwb *MEMWBRegister) EXMEMRegister {
	if !idex.Valid {
		return EXMEMRegister{}
	}

	fwd := forwarding.Resolve(idex, exmem, memwb)

	in1 := idex.ReadData1
	switch fwd.ForwardRs1 {
	case ForwardFromEXMEM:
		in1 = exmemForwardValue(exmem)
	case ForwardFromMEMWB:
		in1 = memwbForwardValue(memwb)
	}

	rs2Value := idex.ReadData2
	switch fwd.ForwardRs2 {
	case ForwardFromEXMEM:
		rs2Value = exmemForwardValue(exmem)
	case ForwardFromMEMWB:
		rs2Value = memwbForwardValue(memwb)
	}

	in2 := rs2Value
	if idex.Control.ALUSrc {
		in2 = idex.Imm
	}

	result := isa.Execute(idex.Inst.Op, idex.PC, in1, in2)

	return EXMEMRegister{
		Valid:        true,
		PC:           idex.PC,
		Inst:         idex.Inst,
		ALUResult:    result.Result,
		Zero:         result.Zero,
		Negative:     result.Negative,
		ReadData2:    rs2Value,
		BranchTarget: idex.BranchTarget,
		BranchTaken:  idex.BranchTaken,
		Control:      idex.Control,
	}
}

// memoryAccess performs the load/store for the instruction in exmem,
// producing the MEM/WB latch.
func memoryAccess(exmem *EXMEMRegister, dataMem *machine.DataMemory) MEMWBRegister {
	if !exmem.Valid {
		return MEMWBRegister{}
	}

	var loaded int32
	addr := uint32(exmem.ALUResult)

	if exmem.Control.MemRead {
		switch exmem.Inst.Op {
		case isa.OpLB:
			loaded = dataMem.ReadByte(addr)
		case isa.OpLH:
			loaded = dataMem.ReadHalf(addr)
		case isa.OpLBU:
			loaded = dataMem.ReadByteUnsigned(addr)
		case isa.OpLHU:
			loaded = dataMem.ReadHalfUnsigned(addr)
		default:
			loaded = dataMem.ReadWord(addr)
		}
	}

	if exmem.Control.MemWrite {
		switch exmem.Inst.Op {
		case isa.OpSB:
			dataMem.WriteByte(addr, exmem.ReadData2)
		case isa.OpSH:
			dataMem.WriteHalf(addr, exmem.ReadData2)
		default:
			dataMem.WriteWord(addr, exmem.ReadData2)
		}
	}

	return MEMWBRegister{
		Valid:     true,
		PC:        exmem.PC,
		Inst:      exmem.Inst,
		ALUResult: exmem.ALUResult,
		MemData:   loaded,
		Control:   exmem.Control,
	}
}

// writeback commits the instruction in memwb to the register file.
func writeback(memwb *MEMWBRegister, regFile *machine.RegisterFile) {
	if !memwb.Valid || !memwb.Control.RegWrite || memwb.Inst.Rd == 0 {
		return
	}
	regFile.Write(memwb.Inst.Rd, memwb.WritebackValue())
}
