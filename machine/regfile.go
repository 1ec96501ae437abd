// Package machine provides the three storage components the pipeline
// reads and writes each cycle: the register file, the instruction
// memory, and the data memory. None of them are pipeline-aware — they
// are the "physical" resources the pipeline stages serialize access to.
package machine

// RegisterFile holds the 32 RV32I architectural registers. x0 is
// hardwired to zero: reads of register 0 always return 0, and writes to
// register 0 are silently discarded (spec.md §3, invariants 1 and 5).
type RegisterFile struct {
	regs [32]int32
}

// NewRegisterFile returns a register file with all 32 registers zeroed.
func NewRegisterFile() *RegisterFile {
	return &RegisterFile{}
}

// Read returns the value of register r. Register 0 always reads as 0.
func (rf *RegisterFile) Read(r uint8) int32 {
	if r == 0 {
		return 0
	}
	return rf.regs[r&0x1F]
}

// Write stores value into register r. Writes to register 0 are no-ops.
func (rf *RegisterFile) Write(r uint8, value int32) {
	if r == 0 {
		return
	}
	rf.regs[r&0x1F] = value
}

// Snapshot returns a copy of all 32 registers, x0 included, for display
// and debugging (e.g. the driver's -debug dump).
func (rf *RegisterFile) Snapshot() [32]int32 {
	return rf.regs
}
