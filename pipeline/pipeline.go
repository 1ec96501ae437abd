package pipeline

import (
	"github.com/archsim/rv32pipe/machine"
	"github.com/archsim/rv32pipe/trace"
)

// Statistics holds pipeline performance counters accumulated across a run.
type Statistics struct {
	// Cycles is the total number of cycles simulated.
	Cycles uint64
	// Instructions is the number of instructions retired (committed WB).
	Instructions uint64
	// StallCycles is the number of cycles the hazard unit held Fetch/Decode.
	StallCycles uint64
	// SquashCycles is the number of taken branches and jumps resolved in
	// ID; each one clears IF/ID, discarding whatever IF fetched that cycle
	// (it is counted even when IF fetched nothing past the program's end).
	SquashCycles uint64
}

// CPI returns cycles per retired instruction.
func (s Statistics) CPI() float64 {
	if s.Instructions == 0 {
		return 0
	}
	return float64(s.Cycles) / float64(s.Instructions)
}

// Option is a functional option for configuring a Pipeline.
type Option func(*Pipeline)

// WithForwarding selects whether the Forwarding Unit is active. Disabling
// it switches the Hazard Detection Unit to the conservative any-writer
// stall rule of §4.5.
func WithForwarding(enabled bool) Option {
	return func(p *Pipeline) {
		p.forwardingEnabled = enabled
	}
}

// WithDataMemorySize overrides the byte size of the data memory backing
// loads and stores; size <= 0 keeps machine.DefaultDataMemorySize.
func WithDataMemorySize(size int) Option {
	return func(p *Pipeline) {
		p.dataMem = machine.NewDataMemory(size)
	}
}

// WithRecorder attaches a trace recorder; every stage transition a cycle
// produces is reported to it. Without one, Tick still runs correctly —
// the trace is simply not collected.
func WithRecorder(r *trace.Recorder) Option {
	return func(p *Pipeline) {
		p.trace = r
	}
}

// Pipeline is a classic five-stage in-order RV32I pipeline: four latches,
// one register file, one instruction memory, one data memory, a hazard
// unit and a forwarding unit.
type Pipeline struct {
	ifid  IFIDRegister
	idex  IDEXRegister
	exmem EXMEMRegister
	memwb MEMWBRegister

	regFile *machine.RegisterFile
	instMem *machine.InstructionMemory
	dataMem *machine.DataMemory

	hazardUnit     *HazardUnit
	forwardingUnit *ForwardingUnit

	forwardingEnabled bool

	pc    uint32
	cycle int

	trace *trace.Recorder
	stats Statistics
}

// NewPipeline returns a pipeline with words loaded into instruction
// memory starting at address 0 and forwarding enabled by default (spec.md
// §9 open question 2: the reference driver hard-codes forwarding on; this
// implementation exposes it as WithForwarding instead of hard-coding it).
func NewPipeline(words []uint32, opts ...Option) *Pipeline {
	p := &Pipeline{
		regFile:           machine.NewRegisterFile(),
		instMem:           machine.NewInstructionMemory(words),
		dataMem:           machine.NewDataMemory(machine.DefaultDataMemorySize),
		forwardingUnit:    NewForwardingUnit(),
		forwardingEnabled: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.hazardUnit = NewHazardUnit(p.forwardingEnabled)
	return p
}

// PC returns the current program counter.
func (p *Pipeline) PC() uint32 {
	return p.pc
}

// Registers returns a snapshot of the 32 architectural registers.
func (p *Pipeline) Registers() [32]int32 {
	return p.regFile.Snapshot()
}

// DataMemory exposes the byte-addressed data memory, primarily for tests
// and debug dumps.
func (p *Pipeline) DataMemory() *machine.DataMemory {
	return p.dataMem
}

// Statistics returns the counters accumulated so far.
func (p *Pipeline) Statistics() Statistics {
	return p.stats
}

// Run advances the pipeline for the given number of cycles, the host
// program's entire scope of work: there is no halt instruction, so
// termination is purely by cycle budget (§5).
func (p *Pipeline) Run(cycles int) {
	for i := 0; i < cycles; i++ {
		p.Tick()
	}
}

// Tick advances every stage by exactly one cycle, evaluated in reverse
// pipeline order (WB, MEM, EX, ID, IF) so each stage consumes the
// previous cycle's state of the latch behind it (§4.6, §5).
func (p *Pipeline) Tick() {
	p.cycle++
	p.stats.Cycles++

	oldIFID := p.ifid
	oldIDEX := p.idex
	oldEXMEM := p.exmem
	oldMEMWB := p.memwb

	// WB reads the old MEM/WB latch and commits to the register file.
	writeback(&oldMEMWB, p.regFile)
	if oldMEMWB.Valid {
		p.stats.Instructions++
		p.record(oldMEMWB.PC, "WB")
	}

	// MEM reads the old EX/MEM latch and produces the new MEM/WB latch.
	newMEMWB := memoryAccess(&oldEXMEM, p.dataMem)
	if oldEXMEM.Valid {
		p.record(oldEXMEM.PC, "MEM")
	}

	// EX reads the old ID/EX latch and forwards from the old EX/MEM and
	// old MEM/WB latches — the pipeline state as it stood at the start of
	// this cycle, before any stage produced a new value. A producer
	// retiring to the register file this same cycle (old MEM/WB,
	// committed by the writeback call above) is still a valid forward
	// source here, since EX's own decode ran a full cycle earlier and
	// could not have observed that commit.
	newEXMEM := execute(&oldIDEX, p.forwardingUnit, &oldEXMEM, &oldMEMWB)
	if oldIDEX.Valid {
		p.record(oldIDEX.PC, "EX")
	}

	// ID reads the old IF/ID latch. Hazard detection consults only the
	// old ID/EX and old EX/MEM latches; MEM/WB is not needed there, since
	// a producer that has already reached MEM/WB is retired to the
	// register file (by the writeback call above) before this decode runs
	// in the same cycle. Branch forwarding in decode also checks the old
	// MEM/WB latch, which yields the same value the register file now holds.
	stall := p.hazardUnit.ShouldStall(&oldIFID, &oldIDEX, &oldEXMEM)
	if oldIFID.Valid {
		p.record(oldIFID.PC, "ID")
	}

	var (
		newIDEX      IDEXRegister
		branchTaken  bool
		branchTarget uint32
	)
	switch {
	case stall:
		p.stats.StallCycles++
		newIDEX = IDEXRegister{}
	case oldIFID.Valid:
		newIDEX, branchTaken, branchTarget = decode(&oldIFID, p.regFile, p.forwardingEnabled, &oldEXMEM, &oldMEMWB)
	default:
		newIDEX = IDEXRegister{}
	}

	// IF reads the PC. A stall holds IF/ID and the PC; otherwise a new
	// word is fetched and the PC advances by 4.
	var newIFID IFIDRegister
	if stall {
		newIFID = oldIFID
		p.record(p.pc, "IF")
	} else if int(p.pc/4) < p.instMem.Len() {
		newIFID = fetch(p.instMem, p.pc)
		p.record(p.pc, "IF")
		p.pc += 4
	}

	// A taken branch/jump resolved in ID overrides the PC and squashes
	// the instruction IF speculatively fetched this same cycle — exactly
	// one bubble, never more (§4.6, property S7).
	if branchTaken {
		p.pc = branchTarget
		newIFID = IFIDRegister{}
		p.stats.SquashCycles++
	}

	p.memwb = newMEMWB
	p.exmem = newEXMEM
	p.idex = newIDEX
	p.ifid = newIFID
}

func (p *Pipeline) record(pc uint32, label string) {
	if p.trace == nil {
		return
	}
	p.trace.Record(pc, p.cycle, label)
}
