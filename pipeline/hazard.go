package pipeline

import "github.com/archsim/rv32pipe/isa"

// ForwardSource indicates where a forwarded operand value should come from.
type ForwardSource int

const (
	// ForwardNone means no forwarding needed - use the value already
	// latched in ID/EX (the register-file read).
	ForwardNone ForwardSource = iota
	// ForwardFromEXMEM means forward from the EX/MEM pipeline register.
	ForwardFromEXMEM
	// ForwardFromMEMWB means forward from the MEM/WB pipeline register.
	ForwardFromMEMWB
)

// ForwardingResult carries the forwarding decision for both ALU source
// operands of the instruction currently in ID/EX.
type ForwardingResult struct {
	ForwardRs1 ForwardSource
	ForwardRs2 ForwardSource
}

// ForwardingUnit selects, for each ALU source operand, whether its value
// should come from the register file, the EX/MEM latch, or the MEM/WB
// latch. EX/MEM takes priority over MEM/WB: it holds the more recently
// produced value.
type ForwardingUnit struct{}

// NewForwardingUnit returns a ready-to-use forwarding unit. It carries no
// state of its own; the decision is a pure function of the latches handed
// to Resolve.
func NewForwardingUnit() *ForwardingUnit {
	return &ForwardingUnit{}
}

// Resolve computes the forwarding decision for the instruction latched in
// idex, consulting the EX/MEM and MEM/WB latches as they stand at the
// start of the current cycle's EX stage.
func (u *ForwardingUnit) Resolve(idex *IDEXRegister, exmem *EXMEMRegister, memwb *MEMWBRegister) ForwardingResult {
	if !idex.Valid {
		return ForwardingResult{}
	}
	return ForwardingResult{
		ForwardRs1: forwardSourceFor(idex.Inst.Rs1, exmem, memwb),
		ForwardRs2: forwardSourceFor(idex.Inst.Rs2, exmem, memwb),
	}
}

func forwardSourceFor(reg uint8, exmem *EXMEMRegister, memwb *MEMWBRegister) ForwardSource {
	if exmem.Valid && exmem.Control.RegWrite && exmem.Inst.Rd != 0 && exmem.Inst.Rd == reg {
		return ForwardFromEXMEM
	}
	if memwb.Valid && memwb.Control.RegWrite && memwb.Inst.Rd != 0 && memwb.Inst.Rd == reg {
		return ForwardFromMEMWB
	}
	return ForwardNone
}

// exmemForwardValue returns the value the EX/MEM latch would forward: its
// ALU result (branch/jump targets do not feed the forwarding network).
func exmemForwardValue(exmem *EXMEMRegister) int32 {
	return exmem.ALUResult
}

// memwbForwardValue returns the value the MEM/WB latch would forward: the
// loaded data for a load, the ALU result otherwise.
func memwbForwardValue(memwb *MEMWBRegister) int32 {
	return memwb.WritebackValue()
}

// HazardUnit decides whether Fetch/Decode must stall for the current
// cycle, given the instruction sitting in IF/ID and the state of the three
// downstream latches.
type HazardUnit struct {
	forwardingEnabled bool
}

// NewHazardUnit returns a hazard unit configured for the given forwarding
// mode; the stall rule differs materially between the two modes (§4.5).
func NewHazardUnit(forwardingEnabled bool) *HazardUnit {
	return &HazardUnit{forwardingEnabled: forwardingEnabled}
}

// ShouldStall implements the stall rule of §4.5. ifid is the instruction
// potentially stalled; idex and exmem are the latches as they stood at the
// start of the current cycle, before this cycle's EX/MEM/WB have run
// (their producers have not yet committed to the register file).
//
// A latch is dropped from consideration once its instruction reaches
// MEM/WB: writeback always runs before this check within the same cycle
// (§2), so a producer sitting in MEM/WB has already committed by the time
// this function is consulted — a plain register read already sees it.
func (h *HazardUnit) ShouldStall(ifid *IFIDRegister, idex *IDEXRegister, exmem *EXMEMRegister) bool {
	if !ifid.Valid {
		return false
	}
	rs1, rs2, usesRs1, usesRs2 := sourceRegisters(ifid.Inst)
	isBJ := ifid.Inst.IsBranchOrJump()

	if h.forwardingEnabled {
		if idex.Valid && idex.Control.MemRead && idex.Inst.Rd != 0 {
			if (usesRs1 && idex.Inst.Rd == rs1) || (usesRs2 && idex.Inst.Rd == rs2) {
				return true
			}
		}
		if isBJ {
			// A load still sitting in EX/MEM only carries an address, not
			// loaded data; an ID-stage consumer cannot use it yet, unlike
			// an EX-stage consumer, which condition (a) already delays
			// long enough to find the load safely in MEM/WB.
			if exmem.Valid && exmem.Control.MemRead && exmem.Inst.Rd != 0 {
				if (usesRs1 && exmem.Inst.Rd == rs1) || (usesRs2 && exmem.Inst.Rd == rs2) {
					return true
				}
			}
			if idex.Valid && idex.Control.RegWrite && idex.Inst.Rd != 0 {
				if (usesRs1 && idex.Inst.Rd == rs1) || (usesRs2 && idex.Inst.Rd == rs2) {
					return true
				}
			}
		}
		return false
	}

	for _, writer := range [...]struct {
		valid    bool
		regWrite bool
		rd       uint8
	}{
		{idex.Valid, idex.Control.RegWrite, idex.Inst.Rd},
		{exmem.Valid, exmem.Control.RegWrite, exmem.Inst.Rd},
	} {
		if !writer.valid || !writer.regWrite || writer.rd == 0 {
			continue
		}
		if (usesRs1 && writer.rd == rs1) || (usesRs2 && writer.rd == rs2) {
			return true
		}
	}
	return false
}

// sourceRegisters returns the rs1/rs2 fields of inst along with whether
// each is actually consulted, per the format rules of §4.5.
func sourceRegisters(inst isa.Instruction) (rs1, rs2 uint8, usesRs1, usesRs2 bool) {
	return inst.Rs1, inst.Rs2, inst.UsesRs1(), inst.UsesRs2()
}
